package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"healthtrack/internal/httperr"
	"healthtrack/internal/model"
	"healthtrack/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, in service.SignupInput) (string, *model.User, error) {
	args := m.Called(ctx, in)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*model.User), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string, role model.Role) (string, *model.User, error) {
	args := m.Called(ctx, email, password, role)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*model.User), args.Error(2)
}

func (m *MockAuthService) Logout(ctx context.Context, tokenString string) error {
	args := m.Called(ctx, tokenString)
	return args.Error(0)
}

type testValidator struct {
	validate *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func newAuthContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = &testValidator{validate: validator.New()}
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeAuthResponse(t *testing.T, rec *httptest.ResponseRecorder) AuthResponse {
	t.Helper()
	var res AuthResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res
}

func TestLoginHandlerSuccess(t *testing.T) {
	svc := new(MockAuthService)
	h := NewAuthHandler(svc)

	user := &model.User{
		ID:    7,
		Name:  "Dr. Smith",
		Email: "doc@example.com",
		Role:  model.RoleDoctor,
		Specialization: &model.Specialization{
			ID:   2,
			Name: "Cardiology",
		},
	}
	svc.On("Login", mock.Anything, "doc@example.com", "pw123456", model.RoleDoctor).
		Return("signed-token", user, nil)

	c, rec := newAuthContext(http.MethodPost, "/api/auth/login",
		`{"email":"doc@example.com","password":"pw123456","role":"DOCTOR"}`)

	assert.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	res := decodeAuthResponse(t, rec)
	assert.Equal(t, "Login success", res.Message)
	assert.Equal(t, "signed-token", res.Jwt)
	assert.Equal(t, uint(7), res.UserID)
	assert.Equal(t, model.RoleDoctor, res.Role)
	assert.Nil(t, res.Birthday)
	if assert.NotNil(t, res.Specialization) {
		assert.Equal(t, "Cardiology", res.Specialization.Name)
	}
}

func TestLoginHandlerFailures(t *testing.T) {
	tests := []struct {
		name        string
		serviceErr  error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "invalid credentials",
			serviceErr:  service.ErrInvalidCredentials,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid email or password",
		},
		{
			name:        "role mismatch",
			serviceErr:  httperr.ErrRoleMismatch,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid role for this user",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockAuthService)
			h := NewAuthHandler(svc)
			svc.On("Login", mock.Anything, "doc@example.com", "wrong", model.RoleDoctor).
				Return("", nil, tt.serviceErr)

			c, rec := newAuthContext(http.MethodPost, "/api/auth/login",
				`{"email":"doc@example.com","password":"wrong","role":"DOCTOR"}`)

			assert.NoError(t, h.Login(c))
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMessage, decodeAuthResponse(t, rec).Message)
		})
	}
}

func TestSignupHandlerRoleSpecificValidation(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantMessage string
	}{
		{
			name:        "patient without birthday",
			body:        `{"email":"pat@example.com","password":"pw123456","role":"PATIENT","name":"Pat","phoneNumber":"0601020304"}`,
			wantMessage: "birthday is required for patients",
		},
		{
			name:        "doctor without specialization",
			body:        `{"email":"doc@example.com","password":"pw123456","role":"DOCTOR","name":"Doc","phoneNumber":"0601020304"}`,
			wantMessage: "specialization is required for doctors",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockAuthService)
			h := NewAuthHandler(svc)

			c, rec := newAuthContext(http.MethodPost, "/api/auth/signup", tt.body)

			assert.NoError(t, h.Signup(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantMessage, decodeAuthResponse(t, rec).Message)
			svc.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything)
		})
	}
}

func TestSignupHandlerSuccess(t *testing.T) {
	svc := new(MockAuthService)
	h := NewAuthHandler(svc)

	birthday := time.Date(1990, 6, 1, 0, 0, 0, 0, time.UTC)
	user := &model.User{
		ID:       11,
		Name:     "Pat",
		Email:    "pat@example.com",
		Role:     model.RolePatient,
		Birthday: &birthday,
	}
	svc.On("Signup", mock.Anything, mock.MatchedBy(func(in service.SignupInput) bool {
		return in.Email == "pat@example.com" &&
			in.Role == model.RolePatient &&
			in.Birthday != nil && in.Birthday.Equal(birthday)
	})).Return("signed-token", user, nil)

	// timestamp-style birthday, as the mobile client sends it
	c, rec := newAuthContext(http.MethodPost, "/api/auth/signup",
		`{"email":"pat@example.com","password":"pw123456","role":"PATIENT","name":"Pat","phoneNumber":"0601020304","birthday":"1990-06-01T00:00:00.000Z"}`)

	assert.NoError(t, h.Signup(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	res := decodeAuthResponse(t, rec)
	assert.Equal(t, "Signup success", res.Message)
	if assert.NotNil(t, res.Birthday) {
		assert.Equal(t, "1990-06-01", *res.Birthday)
	}
	svc.AssertExpectations(t)
}

func TestSignupHandlerNestedSpecializationRef(t *testing.T) {
	svc := new(MockAuthService)
	h := NewAuthHandler(svc)

	user := &model.User{ID: 7, Name: "Doc", Email: "doc@example.com", Role: model.RoleDoctor}
	svc.On("Signup", mock.Anything, mock.MatchedBy(func(in service.SignupInput) bool {
		return in.SpecializationID != nil && *in.SpecializationID == 2
	})).Return("signed-token", user, nil)

	c, rec := newAuthContext(http.MethodPost, "/api/auth/signup",
		`{"email":"doc@example.com","password":"pw123456","role":"DOCTOR","name":"Doc","phoneNumber":"0601020304","specialization":{"id":2}}`)

	assert.NoError(t, h.Signup(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

func TestSignupHandlerEmailTaken(t *testing.T) {
	svc := new(MockAuthService)
	h := NewAuthHandler(svc)
	svc.On("Signup", mock.Anything, mock.Anything).Return("", nil, service.ErrEmailTaken)

	c, rec := newAuthContext(http.MethodPost, "/api/auth/signup",
		`{"email":"taken@example.com","password":"pw123456","role":"PATIENT","name":"Pat","phoneNumber":"0601020304","birthday":"1990-06-01"}`)

	assert.NoError(t, h.Signup(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email already exists with another account", decodeAuthResponse(t, rec).Message)
}

func TestLogoutHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(MockAuthService)
		h := NewAuthHandler(svc)
		svc.On("Logout", mock.Anything, "some-token").Return(nil)

		c, rec := newAuthContext(http.MethodPost, "/api/auth/logout", "")
		c.Request().Header.Set(echo.HeaderAuthorization, "Bearer some-token")

		assert.NoError(t, h.Logout(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var res map[string]string
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "Logged out successfully", res["message"])
	})

	t.Run("missing header", func(t *testing.T) {
		svc := new(MockAuthService)
		h := NewAuthHandler(svc)

		c, rec := newAuthContext(http.MethodPost, "/api/auth/logout", "")

		assert.NoError(t, h.Logout(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Missing or invalid Authorization header", decodeAuthResponse(t, rec).Message)
		svc.AssertNotCalled(t, "Logout", mock.Anything, mock.Anything)
	})

	t.Run("invalid token", func(t *testing.T) {
		svc := new(MockAuthService)
		h := NewAuthHandler(svc)
		svc.On("Logout", mock.Anything, "bad-token").Return(service.ErrInvalidToken)

		c, rec := newAuthContext(http.MethodPost, "/api/auth/logout", "")
		c.Request().Header.Set(echo.HeaderAuthorization, "Bearer bad-token")

		assert.NoError(t, h.Logout(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid token", decodeAuthResponse(t, rec).Message)
	})
}
