package handler

import (
	"errors"
	"net/http"
	"strconv"

	"eco-electric-api/internal/dto"
	"eco-electric-api/internal/middleware"
	"eco-electric-api/internal/service"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type OrderHandler struct {
	orderService service.OrderService
	userService  service.UserService
}

func NewOrderHandler(orderService service.OrderService, userService service.UserService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		userService:  userService,
	}
}

// idFromParam maps a non-numeric identifier to the same outcome as a missing
// record.
func idFromParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	return uint(id), nil
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	order, err := h.orderService.Create(ctx, req.Email, req.Order)
	if err != nil {
		if errors.Is(err, service.ErrMissingEmail) || errors.Is(err, service.ErrEmptyPayload) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}

	return c.JSON(http.StatusCreated, order)
}

// ListOrders serves both listing modes on one path, split by the email query
// flag: with ?email= the route is owner-scoped, without it the caller must
// hold the admin role.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	email := c.QueryParam("email")
	if email != "" {
		if err := middleware.RequireOwner(c, email); err != nil {
			return err
		}

		orders, err := h.orderService.ListByOwner(ctx, email)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, orders)
	}

	id, ok := middleware.IdentityFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, "forbidden")
	}
	admin, err := h.userService.IsAdmin(ctx, id.Email)
	if err != nil {
		return err
	}
	if !admin {
		return echo.NewHTTPError(http.StatusForbidden, "admin access required")
	}

	orders, err := h.orderService.ListAll(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idFromParam(c)
	if err != nil {
		return err
	}

	order, err := h.orderService.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) ReplaceOrder(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idFromParam(c)
	if err != nil {
		return err
	}

	var req dto.ReplaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	order, err := h.orderService.Replace(ctx, id, req.Order)
	if err != nil {
		if errors.Is(err, service.ErrEmptyPayload) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idFromParam(c)
	if err != nil {
		return err
	}

	existed, err := h.orderService.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !existed {
		return echo.NewHTTPError(http.StatusNotFound, "order not found")
	}

	return c.NoContent(http.StatusNoContent)
}
