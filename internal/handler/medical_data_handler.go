package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"healthtrack/internal/service"
)

// MedicalDataHandler serves vitals readings.
type MedicalDataHandler struct {
	svc service.MedicalDataService
}

// NewMedicalDataHandler creates a handler layer.
func NewMedicalDataHandler(svc service.MedicalDataService) *MedicalDataHandler {
	return &MedicalDataHandler{svc: svc}
}

// MedicalDataRequest carries one vitals reading.
type MedicalDataRequest struct {
	RecordedAt             *time.Time `json:"recordedAt,omitempty"`
	BloodSugar             *float64   `json:"bloodSugar,omitempty"`
	SystolicBloodPressure  *int       `json:"systolicBloodPressure,omitempty"`
	DiastolicBloodPressure *int       `json:"diastolicBloodPressure,omitempty"`
	HeartRate              *int       `json:"heartRate,omitempty"`
}

// Add godoc
// @Summary Record a vitals reading for a user
// @Tags medical-data
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Param request body MedicalDataRequest true "Reading"
// @Success 201 {object} model.MedicalData
// @Failure 400 {object} httperr.ErrorResponse
// @Router /medical-data/user/{userId} [post]
func (h *MedicalDataHandler) Add(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}

	var req MedicalDataRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.BloodSugar == nil && req.SystolicBloodPressure == nil &&
		req.DiastolicBloodPressure == nil && req.HeartRate == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "reading must carry at least one measurement")
	}

	reading, err := h.svc.Add(c.Request().Context(), userID, service.MedicalDataInput{
		RecordedAt:             req.RecordedAt,
		BloodSugar:             req.BloodSugar,
		SystolicBloodPressure:  req.SystolicBloodPressure,
		DiastolicBloodPressure: req.DiastolicBloodPressure,
		HeartRate:              req.HeartRate,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, reading)
}

// ListByUser godoc
// @Summary List a user's vitals readings
// @Tags medical-data
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {array} model.MedicalData
// @Router /medical-data/user/{userId} [get]
func (h *MedicalDataHandler) ListByUser(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	readings, err := h.svc.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, readings)
}

// ListAll godoc
// @Summary List all vitals readings
// @Tags medical-data
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.MedicalData
// @Router /medical-data [get]
func (h *MedicalDataHandler) ListAll(c echo.Context) error {
	readings, err := h.svc.ListAll(c.Request().Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, readings)
}
