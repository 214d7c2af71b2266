package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"healthtrack/internal/httperr"
	"healthtrack/internal/model"
	"healthtrack/internal/repository"
)

// SpecializationService exposes the specialization catalogue.
type SpecializationService interface {
	List(ctx context.Context) ([]model.Specialization, error)
	Get(ctx context.Context, id uint) (*model.Specialization, error)
	Create(ctx context.Context, name string) (*model.Specialization, error)
	Delete(ctx context.Context, id uint) error
}

type specializationService struct {
	repo repository.SpecializationRepository
}

// NewSpecializationService builds a SpecializationService.
func NewSpecializationService(repo repository.SpecializationRepository) SpecializationService {
	return &specializationService{repo: repo}
}

func (s *specializationService) List(ctx context.Context) ([]model.Specialization, error) {
	return s.repo.List(ctx)
}

func (s *specializationService) Get(ctx context.Context, id uint) (*model.Specialization, error) {
	spec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrSpecializationNotFound
		}
		return nil, err
	}
	return spec, nil
}

func (s *specializationService) Create(ctx context.Context, name string) (*model.Specialization, error) {
	spec := &model.Specialization{Name: name}
	if err := s.repo.Create(ctx, spec); err != nil {
		return nil, err
	}
	return spec, nil
}

func (s *specializationService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
