package handler

import (
	"errors"
	"net/http"

	"eco-electric-api/internal/dto"
	"eco-electric-api/internal/middleware"
	"eco-electric-api/internal/model"
	"eco-electric-api/internal/service"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

func (h *CatalogHandler) ListTools(c echo.Context) error {
	tools, err := h.catalogService.ListTools(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tools)
}

func (h *CatalogHandler) GetTool(c echo.Context) error {
	id, err := idFromParam(c)
	if err != nil {
		return err
	}

	tool, err := h.catalogService.GetTool(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "tool not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, tool)
}

func (h *CatalogHandler) AddTool(c echo.Context) error {
	var tool model.Tool
	if err := c.Bind(&tool); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if tool.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "tool name is required")
	}

	if err := h.catalogService.AddTool(c.Request().Context(), &tool); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, tool)
}

func (h *CatalogHandler) DeleteTool(c echo.Context) error {
	id, err := idFromParam(c)
	if err != nil {
		return err
	}

	existed, err := h.catalogService.DeleteTool(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !existed {
		return echo.NewHTTPError(http.StatusNotFound, "tool not found")
	}

	return c.NoContent(http.StatusNoContent)
}

// DecrementToolQuantity is a separate, uncoordinated update relative to order
// creation; callers issue it after submitting a checkout.
func (h *CatalogHandler) DecrementToolQuantity(c echo.Context) error {
	id, err := idFromParam(c)
	if err != nil {
		return err
	}

	var req dto.DecrementQuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.Quantity <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "quantity must be positive")
	}

	tool, err := h.catalogService.DecrementToolQuantity(c.Request().Context(), id, req.Quantity)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "tool not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, tool)
}

func (h *CatalogHandler) ListReviews(c echo.Context) error {
	reviews, err := h.catalogService.ListReviews(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, reviews)
}

// AddReview records a review under the authenticated identity's email.
func (h *CatalogHandler) AddReview(c echo.Context) error {
	id, ok := middleware.IdentityFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, "forbidden")
	}

	var req dto.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return echo.NewHTTPError(http.StatusBadRequest, "rating must be between 1 and 5")
	}

	review := &model.Review{
		Email:   id.Email,
		Name:    req.Name,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := h.catalogService.AddReview(c.Request().Context(), review); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, review)
}
