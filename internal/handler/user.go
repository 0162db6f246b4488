package handler

import (
	"errors"
	"net/http"

	"eco-electric-api/internal/dto"
	"eco-electric-api/internal/service"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// UpsertUser stores the profile under the email path param and mints a token
// for that email. Identity is trusted here: the caller arrives after a
// federated sign-in, there is no password exchange.
func (h *UserHandler) UpsertUser(c echo.Context) error {
	ctx := c.Request().Context()

	email := c.Param("email")
	if email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing email")
	}

	var req dto.UpsertUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	user, tk, err := h.userService.Upsert(ctx, email, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.UpsertUserResponse{
		Result: user,
		Token:  tk,
	})
}

func (h *UserHandler) PromoteAdmin(c echo.Context) error {
	ctx := c.Request().Context()

	email := c.Param("email")
	if email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing email")
	}

	if err := h.userService.PromoteAdmin(ctx, email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "promoted"})
}

func (h *UserHandler) CheckAdmin(c echo.Context) error {
	ctx := c.Request().Context()

	admin, err := h.userService.IsAdmin(ctx, c.Param("email"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.AdminCheckResponse{Admin: admin})
}

func (h *UserHandler) DeleteUser(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idFromParam(c)
	if err != nil {
		return err
	}

	existed, err := h.userService.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !existed {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}

	return c.NoContent(http.StatusNoContent)
}
