package service

import (
	"context"
	"fmt"
	"time"

	"healthtrack/internal/model"
	"healthtrack/internal/repository"
)

// MedicalDataInput carries one vitals reading. All measurements optional.
type MedicalDataInput struct {
	RecordedAt             *time.Time
	BloodSugar             *float64
	SystolicBloodPressure  *int
	DiastolicBloodPressure *int
	HeartRate              *int
}

// MedicalDataService manages patients' vitals readings.
type MedicalDataService interface {
	Add(ctx context.Context, userID uint, in MedicalDataInput) (*model.MedicalData, error)
	ListByUser(ctx context.Context, userID uint) ([]model.MedicalData, error)
	ListAll(ctx context.Context) ([]model.MedicalData, error)
}

type medicalDataService struct {
	repo repository.MedicalDataRepository
}

// NewMedicalDataService builds a MedicalDataService.
func NewMedicalDataService(repo repository.MedicalDataRepository) MedicalDataService {
	return &medicalDataService{repo: repo}
}

func (s *medicalDataService) Add(ctx context.Context, userID uint, in MedicalDataInput) (*model.MedicalData, error) {
	recordedAt := time.Now()
	if in.RecordedAt != nil {
		recordedAt = *in.RecordedAt
	}
	reading := &model.MedicalData{
		UserID:                 userID,
		RecordedAt:             recordedAt,
		BloodSugar:             in.BloodSugar,
		SystolicBloodPressure:  in.SystolicBloodPressure,
		DiastolicBloodPressure: in.DiastolicBloodPressure,
		HeartRate:              in.HeartRate,
	}
	if err := s.repo.Create(ctx, reading); err != nil {
		return nil, fmt.Errorf("create medical data: %w", err)
	}
	return reading, nil
}

func (s *medicalDataService) ListByUser(ctx context.Context, userID uint) ([]model.MedicalData, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *medicalDataService) ListAll(ctx context.Context) ([]model.MedicalData, error) {
	return s.repo.ListAll(ctx)
}
