package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"healthtrack/internal/service"
)

// SpecializationHandler serves the specialization catalogue.
type SpecializationHandler struct {
	svc service.SpecializationService
}

// NewSpecializationHandler creates a handler layer.
func NewSpecializationHandler(svc service.SpecializationService) *SpecializationHandler {
	return &SpecializationHandler{svc: svc}
}

// CreateSpecializationRequest names a new specialization.
type CreateSpecializationRequest struct {
	Name string `json:"name" validate:"required"`
}

// List godoc
// @Summary List specializations
// @Tags specializations
// @Produce json
// @Success 200 {array} model.Specialization
// @Router /specializations [get]
func (h *SpecializationHandler) List(c echo.Context) error {
	specs, err := h.svc.List(c.Request().Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, specs)
}

// Get godoc
// @Summary Get a specialization
// @Tags specializations
// @Produce json
// @Param id path int true "Specialization ID"
// @Success 200 {object} model.Specialization
// @Failure 404 {object} httperr.ErrorResponse
// @Router /specializations/{id} [get]
func (h *SpecializationHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	spec, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, spec)
}

// Create godoc
// @Summary Create a specialization
// @Tags specializations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateSpecializationRequest true "Specialization"
// @Success 201 {object} model.Specialization
// @Failure 400 {object} httperr.ErrorResponse
// @Router /specializations [post]
func (h *SpecializationHandler) Create(c echo.Context) error {
	var req CreateSpecializationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	spec, err := h.svc.Create(c.Request().Context(), req.Name)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, spec)
}

// Delete godoc
// @Summary Delete a specialization
// @Tags specializations
// @Security BearerAuth
// @Param id path int true "Specialization ID"
// @Success 204
// @Failure 404 {object} httperr.ErrorResponse
// @Router /specializations/{id} [delete]
func (h *SpecializationHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return domainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
