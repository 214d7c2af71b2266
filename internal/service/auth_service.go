package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"healthtrack/internal/auth"
	"healthtrack/internal/httperr"
	"healthtrack/internal/model"
	"healthtrack/internal/repository"
)

const bcryptCost = 10

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken is returned when registering an email that already has an account.
	ErrEmailTaken = errors.New("email already exists with another account")
	// ErrInvalidToken is returned when a token fails validation on logout.
	ErrInvalidToken = errors.New("invalid token")
)

// SignupInput carries the fields of a registration request.
type SignupInput struct {
	Email            string
	Password         string
	Role             model.Role
	Name             string
	PhoneNumber      string
	Birthday         *time.Time
	SpecializationID *uint
}

// AuthService handles authentication operations.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (token string, user *model.User, err error)
	Login(ctx context.Context, email, password string, role model.Role) (token string, user *model.User, err error)
	Logout(ctx context.Context, tokenString string) error
}

type authService struct {
	userRepo   repository.UserRepository
	specRepo   repository.SpecializationRepository
	jwtService *auth.JWTService
	tokenStore auth.BlacklistStore
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	specRepo repository.SpecializationRepository,
	jwtService *auth.JWTService,
	tokenStore auth.BlacklistStore,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		specRepo:   specRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Signup creates a new account with hashed password and signs the user in.
func (s *authService) Signup(ctx context.Context, in SignupInput) (string, *model.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, in.Email)
	if err == nil && existing != nil {
		return "", nil, ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, fmt.Errorf("check user existence: %w", err)
	}

	var spec *model.Specialization
	if in.Role == model.RoleDoctor {
		spec, err = s.specRepo.FindByID(ctx, *in.SpecializationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", nil, httperr.ErrSpecializationNotFound
			}
			return "", nil, fmt.Errorf("find specialization: %w", err)
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:            in.Email,
		PasswordHash:     string(hashedPassword),
		Role:             in.Role,
		Name:             in.Name,
		PhoneNumber:      in.PhoneNumber,
		Birthday:         in.Birthday,
		SpecializationID: in.SpecializationID,
		Specialization:   spec,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	return token, user, nil
}

// Login authenticates a user, checks the requested role, and returns a token.
func (s *authService) Login(ctx context.Context, email, password string, role model.Role) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if user.Role != role {
		return "", nil, httperr.ErrRoleMismatch
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	return token, user, nil
}

// Logout revokes a token by blacklisting its ID until expiry.
func (s *authService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.jwtService.ValidateToken(tokenString)
	if err != nil {
		return ErrInvalidToken
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	return s.tokenStore.Blacklist(ctx, claims.ID, ttl)
}
