package repository

import (
	"context"

	"gorm.io/gorm"

	"healthtrack/internal/model"
)

// MedicalDataRepository defines vitals persistence operations.
type MedicalDataRepository interface {
	Create(ctx context.Context, data *model.MedicalData) error
	ListByUser(ctx context.Context, userID uint) ([]model.MedicalData, error)
	ListAll(ctx context.Context) ([]model.MedicalData, error)
}

type medicalDataRepository struct {
	db *gorm.DB
}

// NewMedicalDataRepository builds a GORM-backed repository.
func NewMedicalDataRepository(db *gorm.DB) MedicalDataRepository {
	return &medicalDataRepository{db: db}
}

func (r *medicalDataRepository) Create(ctx context.Context, data *model.MedicalData) error {
	return r.db.WithContext(ctx).Create(data).Error
}

func (r *medicalDataRepository) ListByUser(ctx context.Context, userID uint) ([]model.MedicalData, error) {
	var readings []model.MedicalData
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("recorded_at").Find(&readings).Error; err != nil {
		return nil, err
	}
	return readings, nil
}

func (r *medicalDataRepository) ListAll(ctx context.Context) ([]model.MedicalData, error) {
	var readings []model.MedicalData
	if err := r.db.WithContext(ctx).Order("recorded_at").Find(&readings).Error; err != nil {
		return nil, err
	}
	return readings, nil
}
