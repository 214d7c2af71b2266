package httperr

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrRoleMismatch is returned when the submitted role does not match the account.
	ErrRoleMismatch = errors.New("invalid role for this user")
	// ErrNotAppointmentDoctor is returned when a doctor touches an appointment assigned to someone else.
	ErrNotAppointmentDoctor = errors.New("appointment is assigned to another doctor")
	// ErrAppointmentNotFound is returned when an appointment is not found.
	ErrAppointmentNotFound = errors.New("appointment not found")
	// ErrMedicationNotFound is returned when a medication is not found.
	ErrMedicationNotFound = errors.New("medication not found")
	// ErrRecordNotFound is returned when a medical record is not found.
	ErrRecordNotFound = errors.New("medical record not found")
	// ErrSpecializationNotFound is returned when a specialization is not found.
	ErrSpecializationNotFound = errors.New("specialization not found")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// New creates a new HTTP error.
func New(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// Map maps domain errors to HTTP errors.
func Map(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return New(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrAppointmentNotFound):
		return New(http.StatusNotFound, err.Error(), "APPOINTMENT_NOT_FOUND")
	case errors.Is(err, ErrMedicationNotFound):
		return New(http.StatusNotFound, err.Error(), "MEDICATION_NOT_FOUND")
	case errors.Is(err, ErrRecordNotFound):
		return New(http.StatusNotFound, err.Error(), "MEDICAL_RECORD_NOT_FOUND")
	case errors.Is(err, ErrSpecializationNotFound):
		return New(http.StatusNotFound, err.Error(), "SPECIALIZATION_NOT_FOUND")
	case errors.Is(err, ErrRoleMismatch):
		return New(http.StatusBadRequest, err.Error(), "ROLE_MISMATCH")
	case errors.Is(err, ErrNotAppointmentDoctor):
		return New(http.StatusForbidden, err.Error(), "NOT_APPOINTMENT_DOCTOR")
	default:
		return New(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
