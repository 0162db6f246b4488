package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"eco-electric-api/internal/client"
	"eco-electric-api/internal/dto"

	"github.com/shopspring/decimal"
)

// ErrInvalidPrice rejects a non-positive or non-finite price before the
// processor is ever contacted.
var ErrInvalidPrice = errors.New("price must be a positive amount")

type PaymentService interface {
	CreateIntent(ctx context.Context, price float64) (*dto.PaymentIntentResponse, error)
}

type paymentServiceImpl struct {
	paymentClient client.PaymentClient
	currency      string
}

func NewPaymentService(paymentClient client.PaymentClient, currency string) PaymentService {
	return &paymentServiceImpl{
		paymentClient: paymentClient,
		currency:      currency,
	}
}

func (s *paymentServiceImpl) CreateIntent(ctx context.Context, price float64) (*dto.PaymentIntentResponse, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return nil, ErrInvalidPrice
	}

	// minor units, rounded to the nearest cent rather than truncated
	amount := decimal.NewFromFloat(price).
		Mul(decimal.NewFromInt(100)).
		Round(0).
		IntPart()

	intent, err := s.paymentClient.CreatePaymentIntent(ctx, amount, s.currency)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	return &dto.PaymentIntentResponse{
		ClientSecret: intent.ClientSecret,
	}, nil
}
