package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"healthtrack/internal/httperr"
	"healthtrack/internal/model"
	"healthtrack/internal/service"
)

const birthdayLayout = "2006-01-02"

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignupRequest represents a registration request. Doctors reference a
// specialization either by specializationId or by a nested {id} object,
// matching what the web and mobile clients send.
type SignupRequest struct {
	Email            string              `json:"email" validate:"required,email"`
	Password         string              `json:"password" validate:"required,min=6"`
	Role             model.Role          `json:"role" validate:"required,oneof=PATIENT DOCTOR"`
	Name             string              `json:"name" validate:"required"`
	PhoneNumber      string              `json:"phoneNumber" validate:"required"`
	Birthday         *string             `json:"birthday,omitempty"`
	SpecializationID *uint               `json:"specializationId,omitempty"`
	Specialization   *SpecializationRef  `json:"specialization,omitempty"`
}

// SpecializationRef is the nested form of a specialization reference.
type SpecializationRef struct {
	ID uint `json:"id"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required"`
	Role     model.Role `json:"role" validate:"required,oneof=PATIENT DOCTOR"`
}

// AuthResponse is the auth contract both frontends parse. Every outcome,
// success or failure, carries a message field.
type AuthResponse struct {
	Message        string                `json:"message"`
	Jwt            string                `json:"jwt,omitempty"`
	Role           model.Role            `json:"role,omitempty"`
	UserID         uint                  `json:"userId,omitempty"`
	Name           string                `json:"name,omitempty"`
	Email          string                `json:"email,omitempty"`
	Birthday       *string               `json:"birthday,omitempty"`
	PhoneNumber    string                `json:"phoneNumber,omitempty"`
	Specialization *model.Specialization `json:"specialization,omitempty"`
}

func authResponse(message, token string, user *model.User) AuthResponse {
	return AuthResponse{
		Message:        message,
		Jwt:            token,
		Role:           user.Role,
		UserID:         user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Birthday:       formatBirthday(user.Birthday),
		PhoneNumber:    user.PhoneNumber,
		Specialization: user.Specialization,
	}
}

func formatBirthday(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(birthdayLayout)
	return &s
}

func parseBirthday(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	// clients send either yyyy-mm-dd or a full timestamp
	raw := *s
	if i := strings.IndexByte(raw, 'T'); i >= 0 {
		raw = raw[:i]
	}
	t, err := time.Parse(birthdayLayout, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Signup godoc
// @Summary Register a new patient or doctor account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Registration data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} AuthResponse
// @Failure 500 {object} AuthResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, AuthResponse{Message: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, AuthResponse{Message: err.Error()})
	}

	specID := req.SpecializationID
	if specID == nil && req.Specialization != nil {
		specID = &req.Specialization.ID
	}

	switch req.Role {
	case model.RolePatient:
		if req.Birthday == nil || *req.Birthday == "" {
			return c.JSON(http.StatusBadRequest, AuthResponse{Message: "birthday is required for patients"})
		}
	case model.RoleDoctor:
		if specID == nil {
			return c.JSON(http.StatusBadRequest, AuthResponse{Message: "specialization is required for doctors"})
		}
	}

	birthday, err := parseBirthday(req.Birthday)
	if err != nil {
		return c.JSON(http.StatusBadRequest, AuthResponse{Message: "birthday must be formatted yyyy-mm-dd"})
	}

	token, user, err := h.authService.Signup(c.Request().Context(), service.SignupInput{
		Email:            req.Email,
		Password:         req.Password,
		Role:             req.Role,
		Name:             req.Name,
		PhoneNumber:      req.PhoneNumber,
		Birthday:         birthday,
		SpecializationID: specID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			return c.JSON(http.StatusBadRequest, AuthResponse{Message: "Email already exists with another account"})
		case errors.Is(err, httperr.ErrSpecializationNotFound):
			return c.JSON(http.StatusBadRequest, AuthResponse{Message: "Unknown specialization"})
		default:
			return c.JSON(http.StatusInternalServerError, AuthResponse{Message: "Signup failed"})
		}
	}

	res := authResponse("Signup success", token, user)
	return c.JSON(http.StatusCreated, res)
}

// Login godoc
// @Summary Authenticate and receive a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} AuthResponse
// @Failure 401 {object} AuthResponse
// @Failure 500 {object} AuthResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, AuthResponse{Message: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, AuthResponse{Message: err.Error()})
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, AuthResponse{Message: "Invalid email or password"})
		case errors.Is(err, httperr.ErrRoleMismatch):
			return c.JSON(http.StatusBadRequest, AuthResponse{Message: "Invalid role for this user"})
		default:
			return c.JSON(http.StatusInternalServerError, AuthResponse{Message: "Login failed"})
		}
	}

	res := authResponse("Login success", token, user)
	return c.JSON(http.StatusOK, res)
}

// Logout godoc
// @Summary Revoke the presented bearer token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 400 {object} AuthResponse
// @Failure 401 {object} AuthResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return c.JSON(http.StatusBadRequest, AuthResponse{Message: "Missing or invalid Authorization header"})
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")

	if err := h.authService.Logout(c.Request().Context(), token); err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			return c.JSON(http.StatusUnauthorized, AuthResponse{Message: "Invalid token"})
		}
		return c.JSON(http.StatusInternalServerError, AuthResponse{Message: "Logout failed"})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Logged out successfully",
	})
}
