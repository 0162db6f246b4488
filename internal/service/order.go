package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"eco-electric-api/internal/model"
	"eco-electric-api/internal/repository"
)

var (
	ErrMissingEmail = errors.New("order email is required")
	ErrEmptyPayload = errors.New("order payload is required")
)

type OrderService interface {
	Create(ctx context.Context, email string, items json.RawMessage) (*model.Order, error)
	ListByOwner(ctx context.Context, email string) ([]*model.Order, error)
	ListAll(ctx context.Context) ([]*model.Order, error)
	Get(ctx context.Context, id uint) (*model.Order, error)
	Replace(ctx context.Context, id uint, items json.RawMessage) (*model.Order, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type orderServiceImpl struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderServiceImpl{
		orderRepo: orderRepo,
	}
}

func (s *orderServiceImpl) Create(ctx context.Context, email string, items json.RawMessage) (*model.Order, error) {
	if strings.TrimSpace(email) == "" {
		return nil, ErrMissingEmail
	}
	if emptyPayload(items) {
		return nil, ErrEmptyPayload
	}

	order := &model.Order{
		Email: email,
		Items: items,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("store order: %w", err)
	}

	return order, nil
}

func (s *orderServiceImpl) ListByOwner(ctx context.Context, email string) ([]*model.Order, error) {
	return s.orderRepo.ListByOwner(ctx, email)
}

func (s *orderServiceImpl) ListAll(ctx context.Context) ([]*model.Order, error) {
	return s.orderRepo.ListAll(ctx)
}

func (s *orderServiceImpl) Get(ctx context.Context, id uint) (*model.Order, error) {
	return s.orderRepo.FindByID(ctx, id)
}

func (s *orderServiceImpl) Replace(ctx context.Context, id uint, items json.RawMessage) (*model.Order, error) {
	if emptyPayload(items) {
		return nil, ErrEmptyPayload
	}

	return s.orderRepo.Replace(ctx, id, items)
}

func (s *orderServiceImpl) Delete(ctx context.Context, id uint) (bool, error) {
	return s.orderRepo.Delete(ctx, id)
}

func emptyPayload(items json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(items))
	return trimmed == "" || trimmed == "null" || trimmed == "{}" || trimmed == "[]"
}
