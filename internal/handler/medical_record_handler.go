package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"healthtrack/internal/service"
)

// MedicalRecordHandler serves per-patient history records.
type MedicalRecordHandler struct {
	svc service.MedicalRecordService
}

// NewMedicalRecordHandler creates a handler layer.
func NewMedicalRecordHandler(svc service.MedicalRecordService) *MedicalRecordHandler {
	return &MedicalRecordHandler{svc: svc}
}

// MedicalRecordRequest replaces a record's lists wholesale.
type MedicalRecordRequest struct {
	DiseaseHistory []string `json:"diseaseHistory"`
	Symptoms       []string `json:"symptoms"`
}

// GetByUser godoc
// @Summary Get a user's medical record
// @Tags medical-records
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} model.MedicalRecord
// @Failure 404 {object} httperr.ErrorResponse
// @Router /medical-records/user/{userId} [get]
func (h *MedicalRecordHandler) GetByUser(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	record, err := h.svc.GetByUser(c.Request().Context(), userID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, record)
}

// Get godoc
// @Summary Get a medical record by ID
// @Tags medical-records
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Success 200 {object} model.MedicalRecord
// @Failure 404 {object} httperr.ErrorResponse
// @Router /medical-records/{id} [get]
func (h *MedicalRecordHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	record, err := h.svc.GetByID(c.Request().Context(), id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, record)
}

// Update godoc
// @Summary Replace a user's medical record
// @Tags medical-records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Param request body MedicalRecordRequest true "Record"
// @Success 200 {object} model.MedicalRecord
// @Failure 400 {object} httperr.ErrorResponse
// @Router /medical-records/user/{userId} [put]
func (h *MedicalRecordHandler) Update(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}

	var req MedicalRecordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	record, err := h.svc.Update(c.Request().Context(), userID, req.DiseaseHistory, req.Symptoms)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, record)
}
