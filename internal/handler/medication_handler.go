package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"healthtrack/internal/service"
)

// MedicationHandler serves medication CRUD and intake logging.
type MedicationHandler struct {
	svc service.MedicationService
}

// NewMedicationHandler creates a handler layer.
func NewMedicationHandler(svc service.MedicationService) *MedicationHandler {
	return &MedicationHandler{svc: svc}
}

// MedicationRequest carries the writable medication fields.
type MedicationRequest struct {
	Name              string     `json:"name" validate:"required"`
	Dosage            string     `json:"dosage"`
	NextReminderTime  *time.Time `json:"nextReminderTime,omitempty"`
	Recurring         bool       `json:"recurring"`
	RecurrencePattern string     `json:"recurrencePattern" validate:"omitempty,oneof=DAILY WEEKLY"`
}

// IntakeRequest logs a dose. Time defaults to now.
type IntakeRequest struct {
	IntakeTime *time.Time `json:"intakeTime,omitempty"`
}

func (r MedicationRequest) toInput() service.MedicationInput {
	return service.MedicationInput{
		Name:              r.Name,
		Dosage:            r.Dosage,
		NextReminderTime:  r.NextReminderTime,
		Recurring:         r.Recurring,
		RecurrencePattern: r.RecurrencePattern,
	}
}

// Add godoc
// @Summary Add a medication for a user
// @Tags medications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Param request body MedicationRequest true "Medication"
// @Success 201 {object} model.Medication
// @Failure 400 {object} httperr.ErrorResponse
// @Router /medications/user/{userId} [post]
func (h *MedicationHandler) Add(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}

	var req MedicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	med, err := h.svc.Add(c.Request().Context(), userID, req.toInput())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, med)
}

// ListByUser godoc
// @Summary List a user's medications
// @Tags medications
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {array} model.Medication
// @Router /medications/user/{userId} [get]
func (h *MedicationHandler) ListByUser(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	meds, err := h.svc.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, meds)
}

// Get godoc
// @Summary Get a medication
// @Tags medications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Medication ID"
// @Success 200 {object} model.Medication
// @Failure 404 {object} httperr.ErrorResponse
// @Router /medications/{id} [get]
func (h *MedicationHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	med, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, med)
}

// Update godoc
// @Summary Update a medication
// @Tags medications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Medication ID"
// @Param request body MedicationRequest true "Medication"
// @Success 200 {object} model.Medication
// @Failure 404 {object} httperr.ErrorResponse
// @Router /medications/{id} [put]
func (h *MedicationHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req MedicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	med, err := h.svc.Update(c.Request().Context(), id, req.toInput())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, med)
}

// Delete godoc
// @Summary Delete a medication
// @Tags medications
// @Security BearerAuth
// @Param id path int true "Medication ID"
// @Success 204
// @Failure 404 {object} httperr.ErrorResponse
// @Router /medications/{id} [delete]
func (h *MedicationHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return domainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RecordIntake godoc
// @Summary Log a dose taken for a medication
// @Tags medications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Medication ID"
// @Param request body IntakeRequest true "Intake time"
// @Success 201 {object} model.MedicationIntake
// @Failure 404 {object} httperr.ErrorResponse
// @Router /medications/{id}/intake [post]
func (h *MedicationHandler) RecordIntake(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req IntakeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	var at time.Time
	if req.IntakeTime != nil {
		at = *req.IntakeTime
	}
	intake, err := h.svc.RecordIntake(c.Request().Context(), id, at)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, intake)
}

// ListIntakes godoc
// @Summary List doses logged for a medication
// @Tags medications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Medication ID"
// @Success 200 {array} model.MedicationIntake
// @Failure 404 {object} httperr.ErrorResponse
// @Router /medications/{id}/intake [get]
func (h *MedicationHandler) ListIntakes(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	intakes, err := h.svc.ListIntakes(c.Request().Context(), id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, intakes)
}
