package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"healthtrack/internal/cache"
	"healthtrack/internal/httperr"
	"healthtrack/internal/model"
	"healthtrack/internal/repository"
)

const doctorListCacheTTL = 5 * time.Minute

const doctorListCacheKey = "doctors:all"

// DoctorDTO is the listing shape patients see when picking a doctor.
type DoctorDTO struct {
	ID                 uint   `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	PhoneNumber        string `json:"phoneNumber"`
	SpecializationName string `json:"specializationName,omitempty"`
}

// PatientDTO is the listing shape doctors see.
type PatientDTO struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	PhoneNumber string     `json:"phoneNumber"`
	Birthday    *time.Time `json:"birthday,omitempty"`
}

// ProfileUpdate carries the mutable profile fields. Nil means keep current.
type ProfileUpdate struct {
	Name             *string
	PhoneNumber      *string
	Birthday         *time.Time
	SpecializationID *uint
}

// UserService exposes profile and directory operations.
type UserService interface {
	GetProfile(ctx context.Context, userID uint) (*model.User, error)
	UpdateProfile(ctx context.Context, userID uint, update ProfileUpdate) (*model.User, error)
	PatientCount(ctx context.Context) (int64, error)
	ListDoctors(ctx context.Context) ([]DoctorDTO, error)
	ListPatients(ctx context.Context) ([]PatientDTO, error)
}

type userService struct {
	repo  repository.UserRepository
	specs repository.SpecializationRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, specs repository.SpecializationRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, specs: specs, cache: cache}
}

func (s *userService) GetProfile(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uint, update ProfileUpdate) (*model.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.PhoneNumber != nil {
		user.PhoneNumber = *update.PhoneNumber
	}
	if update.Birthday != nil {
		user.Birthday = update.Birthday
	}
	if update.SpecializationID != nil {
		if user.Role != model.RoleDoctor {
			return nil, httperr.ErrRoleMismatch
		}
		spec, err := s.specs.FindByID(ctx, *update.SpecializationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, httperr.ErrSpecializationNotFound
			}
			return nil, err
		}
		user.SpecializationID = update.SpecializationID
		user.Specialization = spec
		_ = s.cache.Delete(ctx, doctorListCacheKey)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

func (s *userService) PatientCount(ctx context.Context) (int64, error) {
	return s.repo.CountByRole(ctx, model.RolePatient)
}

func (s *userService) ListDoctors(ctx context.Context) ([]DoctorDTO, error) {
	if data, _ := s.cache.Get(ctx, doctorListCacheKey); data != nil {
		var cached []DoctorDTO
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	doctors, err := s.repo.ListByRole(ctx, model.RoleDoctor)
	if err != nil {
		return nil, err
	}

	dtos := make([]DoctorDTO, 0, len(doctors))
	for _, d := range doctors {
		dto := DoctorDTO{
			ID:          d.ID,
			Name:        d.Name,
			Email:       d.Email,
			PhoneNumber: d.PhoneNumber,
		}
		if d.Specialization != nil {
			dto.SpecializationName = d.Specialization.Name
		}
		dtos = append(dtos, dto)
	}

	if payload, err := json.Marshal(dtos); err == nil {
		_ = s.cache.Set(ctx, doctorListCacheKey, payload, doctorListCacheTTL)
	}
	return dtos, nil
}

func (s *userService) ListPatients(ctx context.Context) ([]PatientDTO, error) {
	patients, err := s.repo.ListByRole(ctx, model.RolePatient)
	if err != nil {
		return nil, err
	}

	dtos := make([]PatientDTO, 0, len(patients))
	for _, p := range patients {
		dtos = append(dtos, PatientDTO{
			ID:          p.ID,
			Name:        p.Name,
			Email:       p.Email,
			PhoneNumber: p.PhoneNumber,
			Birthday:    p.Birthday,
		})
	}
	return dtos, nil
}
