package handler

import (
	"errors"
	"net/http"

	"eco-electric-api/internal/client"
	"eco-electric-api/internal/dto"
	"eco-electric-api/internal/service"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) CreatePaymentIntent(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.PaymentIntentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	resp, err := h.paymentService.CreateIntent(ctx, req.Price)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPrice) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if errors.Is(err, client.ErrProvider) {
			return echo.NewHTTPError(http.StatusBadGateway, "payment provider rejected the request")
		}
		return err
	}

	return c.JSON(http.StatusOK, resp)
}
