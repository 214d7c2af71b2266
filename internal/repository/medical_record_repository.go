package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"healthtrack/internal/model"
)

// MedicalRecordRepository defines medical record persistence operations.
type MedicalRecordRepository interface {
	FindByID(ctx context.Context, id uint) (*model.MedicalRecord, error)
	FindByUser(ctx context.Context, userID uint) (*model.MedicalRecord, error)
	Upsert(ctx context.Context, record *model.MedicalRecord) error
}

type medicalRecordRepository struct {
	db *gorm.DB
}

// NewMedicalRecordRepository builds a GORM-backed repository.
func NewMedicalRecordRepository(db *gorm.DB) MedicalRecordRepository {
	return &medicalRecordRepository{db: db}
}

func (r *medicalRecordRepository) FindByID(ctx context.Context, id uint) (*model.MedicalRecord, error) {
	var record model.MedicalRecord
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *medicalRecordRepository) FindByUser(ctx context.Context, userID uint) (*model.MedicalRecord, error) {
	var record model.MedicalRecord
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// Upsert replaces the user's record, creating it on first write.
func (r *medicalRecordRepository) Upsert(ctx context.Context, record *model.MedicalRecord) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"disease_history", "symptoms", "updated_at"}),
	}).Create(record).Error
}
