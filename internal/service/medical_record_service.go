package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"healthtrack/internal/httperr"
	"healthtrack/internal/model"
	"healthtrack/internal/repository"
)

// MedicalRecordService manages per-patient history records.
type MedicalRecordService interface {
	GetByUser(ctx context.Context, userID uint) (*model.MedicalRecord, error)
	GetByID(ctx context.Context, id uint) (*model.MedicalRecord, error)
	Update(ctx context.Context, userID uint, diseaseHistory, symptoms []string) (*model.MedicalRecord, error)
}

type medicalRecordService struct {
	repo repository.MedicalRecordRepository
}

// NewMedicalRecordService builds a MedicalRecordService.
func NewMedicalRecordService(repo repository.MedicalRecordRepository) MedicalRecordService {
	return &medicalRecordService{repo: repo}
}

func (s *medicalRecordService) GetByUser(ctx context.Context, userID uint) (*model.MedicalRecord, error) {
	record, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrRecordNotFound
		}
		return nil, err
	}
	return record, nil
}

func (s *medicalRecordService) GetByID(ctx context.Context, id uint) (*model.MedicalRecord, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrRecordNotFound
		}
		return nil, err
	}
	return record, nil
}

// Update replaces the user's record wholesale, creating it on first write.
func (s *medicalRecordService) Update(ctx context.Context, userID uint, diseaseHistory, symptoms []string) (*model.MedicalRecord, error) {
	record := &model.MedicalRecord{
		UserID:         userID,
		DiseaseHistory: diseaseHistory,
		Symptoms:       symptoms,
	}
	if err := s.repo.Upsert(ctx, record); err != nil {
		return nil, fmt.Errorf("upsert medical record: %w", err)
	}
	return s.GetByUser(ctx, userID)
}
