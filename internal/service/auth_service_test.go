package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"healthtrack/internal/auth"
	"healthtrack/internal/httperr"
	"healthtrack/internal/model"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) CountByRole(ctx context.Context, role model.Role) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

type MockSpecializationRepository struct {
	mock.Mock
}

func (m *MockSpecializationRepository) Create(ctx context.Context, spec *model.Specialization) error {
	args := m.Called(ctx, spec)
	return args.Error(0)
}

func (m *MockSpecializationRepository) FindByID(ctx context.Context, id uint) (*model.Specialization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Specialization), args.Error(1)
}

func (m *MockSpecializationRepository) FindByName(ctx context.Context, name string) (*model.Specialization, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Specialization), args.Error(1)
}

func (m *MockSpecializationRepository) List(ctx context.Context) ([]model.Specialization, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Specialization), args.Error(1)
}

func (m *MockSpecializationRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockBlacklistStore struct {
	mock.Mock
}

func (m *MockBlacklistStore) Blacklist(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockBlacklistStore) IsBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func TestSignupSuccess(t *testing.T) {
	userRepo := new(MockUserRepository)
	specRepo := new(MockSpecializationRepository)
	jwtService := auth.NewJWTService("test-secret")
	svc := NewAuthService(userRepo, specRepo, jwtService, new(MockBlacklistStore))

	userRepo.On("FindByEmail", mock.Anything, "doc@example.com").Return(nil, gorm.ErrRecordNotFound)
	specRepo.On("FindByID", mock.Anything, uint(2)).Return(&model.Specialization{ID: 2, Name: "Cardiology"}, nil)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Run(func(args mock.Arguments) {
		args.Get(1).(*model.User).ID = 7
	}).Return(nil)

	specID := uint(2)
	token, user, err := svc.Signup(context.Background(), SignupInput{
		Email:            "doc@example.com",
		Password:         "pw123456",
		Role:             model.RoleDoctor,
		Name:             "Dr. Smith",
		PhoneNumber:      "0601020304",
		SpecializationID: &specID,
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, uint(7), user.ID)
	assert.Equal(t, model.RoleDoctor, user.Role)
	assert.NotEqual(t, "pw123456", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw123456")))

	claims, err := jwtService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, model.RoleDoctor, claims.Role)

	userRepo.AssertExpectations(t)
	specRepo.AssertExpectations(t)
}

func TestSignupEmailTaken(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo, new(MockSpecializationRepository), auth.NewJWTService("test-secret"), new(MockBlacklistStore))

	userRepo.On("FindByEmail", mock.Anything, "taken@example.com").
		Return(&model.User{ID: 1, Email: "taken@example.com"}, nil)

	token, user, err := svc.Signup(context.Background(), SignupInput{
		Email:    "taken@example.com",
		Password: "pw123456",
		Role:     model.RolePatient,
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Empty(t, token)
	assert.Nil(t, user)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSignupUnknownSpecialization(t *testing.T) {
	userRepo := new(MockUserRepository)
	specRepo := new(MockSpecializationRepository)
	svc := NewAuthService(userRepo, specRepo, auth.NewJWTService("test-secret"), new(MockBlacklistStore))

	userRepo.On("FindByEmail", mock.Anything, "doc@example.com").Return(nil, gorm.ErrRecordNotFound)
	specRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	specID := uint(99)
	_, _, err := svc.Signup(context.Background(), SignupInput{
		Email:            "doc@example.com",
		Password:         "pw123456",
		Role:             model.RoleDoctor,
		SpecializationID: &specID,
	})

	assert.ErrorIs(t, err, httperr.ErrSpecializationNotFound)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	stored := &model.User{
		ID:           7,
		Email:        "doc@example.com",
		PasswordHash: hashPassword(t, "pw123456"),
		Role:         model.RoleDoctor,
		Name:         "Dr. Smith",
	}

	tests := []struct {
		name     string
		email    string
		password string
		role     model.Role
		found    *model.User
		wantErr  error
	}{
		{name: "success", email: "doc@example.com", password: "pw123456", role: model.RoleDoctor, found: stored},
		{name: "unknown email", email: "nobody@example.com", password: "pw123456", role: model.RoleDoctor, wantErr: ErrInvalidCredentials},
		{name: "wrong password", email: "doc@example.com", password: "nope", role: model.RoleDoctor, found: stored, wantErr: ErrInvalidCredentials},
		{name: "role mismatch", email: "doc@example.com", password: "pw123456", role: model.RolePatient, found: stored, wantErr: httperr.ErrRoleMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			svc := NewAuthService(userRepo, new(MockSpecializationRepository), auth.NewJWTService("test-secret"), new(MockBlacklistStore))

			if tt.found != nil {
				userRepo.On("FindByEmail", mock.Anything, tt.email).Return(tt.found, nil)
			} else {
				userRepo.On("FindByEmail", mock.Anything, tt.email).Return(nil, gorm.ErrRecordNotFound)
			}

			token, user, err := svc.Login(context.Background(), tt.email, tt.password, tt.role)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				assert.Nil(t, user)
				return
			}
			assert.NoError(t, err)
			assert.NotEmpty(t, token)
			assert.Equal(t, stored.ID, user.ID)
		})
	}
}

func TestLogoutBlacklistsToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	tokenStore := new(MockBlacklistStore)
	svc := NewAuthService(new(MockUserRepository), new(MockSpecializationRepository), jwtService, tokenStore)

	token, err := jwtService.GenerateToken(7, "doc@example.com", model.RoleDoctor)
	assert.NoError(t, err)
	claims, err := jwtService.ValidateToken(token)
	assert.NoError(t, err)

	tokenStore.On("Blacklist", mock.Anything, claims.ID, mock.MatchedBy(func(ttl time.Duration) bool {
		return ttl > 0 && ttl <= auth.TokenExpiry
	})).Return(nil)

	assert.NoError(t, svc.Logout(context.Background(), token))
	tokenStore.AssertExpectations(t)
}

func TestLogoutRejectsInvalidToken(t *testing.T) {
	tokenStore := new(MockBlacklistStore)
	svc := NewAuthService(new(MockUserRepository), new(MockSpecializationRepository), auth.NewJWTService("test-secret"), tokenStore)

	err := svc.Logout(context.Background(), "not-a-jwt")

	assert.ErrorIs(t, err, ErrInvalidToken)
	tokenStore.AssertNotCalled(t, "Blacklist", mock.Anything, mock.Anything, mock.Anything)
}
