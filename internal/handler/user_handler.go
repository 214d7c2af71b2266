package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"healthtrack/internal/service"
)

// UserHandler handles profile and directory endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// UpdateProfileRequest carries the mutable profile fields.
type UpdateProfileRequest struct {
	Name             *string `json:"name,omitempty"`
	PhoneNumber      *string `json:"phoneNumber,omitempty"`
	Birthday         *string `json:"birthday,omitempty"`
	SpecializationID *uint   `json:"specializationId,omitempty"`
}

// GetProfile godoc
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} httperr.ErrorResponse
// @Failure 404 {object} httperr.ErrorResponse
// @Router /users/profile [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	user, err := h.svc.GetProfile(c.Request().Context(), claims.UserID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary Update the authenticated user's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} model.User
// @Failure 400 {object} httperr.ErrorResponse
// @Failure 404 {object} httperr.ErrorResponse
// @Router /users/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	var birthday *time.Time
	if req.Birthday != nil {
		birthday, err = parseBirthday(req.Birthday)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "birthday must be formatted yyyy-mm-dd")
		}
	}

	user, err := h.svc.UpdateProfile(c.Request().Context(), claims.UserID, service.ProfileUpdate{
		Name:             req.Name,
		PhoneNumber:      req.PhoneNumber,
		Birthday:         birthday,
		SpecializationID: req.SpecializationID,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// PatientCount godoc
// @Summary Count registered patients
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]int64
// @Router /users/patientCount [get]
func (h *UserHandler) PatientCount(c echo.Context) error {
	count, err := h.svc.PatientCount(c.Request().Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"count": count})
}

// ListDoctors godoc
// @Summary List all doctors
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.DoctorDTO
// @Router /doctors [get]
func (h *UserHandler) ListDoctors(c echo.Context) error {
	doctors, err := h.svc.ListDoctors(c.Request().Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, doctors)
}

// ListPatients godoc
// @Summary List all patients
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.PatientDTO
// @Router /patients [get]
func (h *UserHandler) ListPatients(c echo.Context) error {
	patients, err := h.svc.ListPatients(c.Request().Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, patients)
}
