package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"healthtrack/internal/service"
)

// AppointmentHandler serves appointment booking and review.
type AppointmentHandler struct {
	svc service.AppointmentService
}

// NewAppointmentHandler creates a handler layer.
func NewAppointmentHandler(svc service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{svc: svc}
}

// AppointmentRequest is a patient's booking request.
type AppointmentRequest struct {
	DoctorID        uint      `json:"doctorId" validate:"required"`
	AppointmentDate time.Time `json:"appointmentDate" validate:"required"`
	Reason          string    `json:"reason"`
}

// AppointmentStatusRequest accepts or declines a pending appointment.
type AppointmentStatusRequest struct {
	Accepted bool `json:"accepted"`
}

// Create godoc
// @Summary Book an appointment for a patient
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Patient user ID"
// @Param request body AppointmentRequest true "Appointment"
// @Success 201 {object} model.Appointment
// @Failure 400 {object} httperr.ErrorResponse
// @Failure 404 {object} httperr.ErrorResponse
// @Router /appointments/user/{userId} [post]
func (h *AppointmentHandler) Create(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}

	var req AppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	appt, err := h.svc.Create(c.Request().Context(), userID, service.AppointmentInput{
		DoctorID:        req.DoctorID,
		AppointmentDate: req.AppointmentDate,
		Reason:          req.Reason,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, appt)
}

// ListByUser godoc
// @Summary List a patient's appointments
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Patient user ID"
// @Success 200 {array} model.Appointment
// @Router /appointments/user/{userId} [get]
func (h *AppointmentHandler) ListByUser(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	appts, err := h.svc.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, appts)
}

// ListByDoctor godoc
// @Summary List a doctor's appointments
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param doctorId path int true "Doctor user ID"
// @Success 200 {array} model.Appointment
// @Router /appointments/doctor/{doctorId} [get]
func (h *AppointmentHandler) ListByDoctor(c echo.Context) error {
	doctorID, err := pathID(c, "doctorId")
	if err != nil {
		return err
	}
	appts, err := h.svc.ListByDoctor(c.Request().Context(), doctorID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, appts)
}

// UpdateStatus godoc
// @Summary Accept or decline an appointment
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param appointmentId path int true "Appointment ID"
// @Param doctorId path int true "Doctor user ID"
// @Param request body AppointmentStatusRequest true "Status"
// @Success 200 {object} model.Appointment
// @Failure 403 {object} httperr.ErrorResponse
// @Failure 404 {object} httperr.ErrorResponse
// @Router /appointments/{appointmentId}/doctor/{doctorId}/status [put]
func (h *AppointmentHandler) UpdateStatus(c echo.Context) error {
	appointmentID, err := pathID(c, "appointmentId")
	if err != nil {
		return err
	}
	doctorID, err := pathID(c, "doctorId")
	if err != nil {
		return err
	}

	var req AppointmentStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	appt, err := h.svc.UpdateStatus(c.Request().Context(), appointmentID, doctorID, req.Accepted)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, appt)
}

// Delete godoc
// @Summary Cancel an appointment
// @Tags appointments
// @Security BearerAuth
// @Param id path int true "Appointment ID"
// @Success 204
// @Failure 404 {object} httperr.ErrorResponse
// @Router /appointments/{id} [delete]
func (h *AppointmentHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return domainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
