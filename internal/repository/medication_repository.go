package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"healthtrack/internal/model"
)

// MedicationRepository defines medication, reminder, and intake persistence.
type MedicationRepository interface {
	Create(ctx context.Context, med *model.Medication) error
	Update(ctx context.Context, med *model.Medication) error
	FindByID(ctx context.Context, id uint) (*model.Medication, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Medication, error)
	Delete(ctx context.Context, id uint) error

	CreateReminder(ctx context.Context, reminder *model.MedicationReminder) error
	UpdateReminder(ctx context.Context, reminder *model.MedicationReminder) error
	DueReminders(ctx context.Context, from, to time.Time) ([]model.MedicationReminder, error)

	CreateIntake(ctx context.Context, intake *model.MedicationIntake) error
	ListIntakes(ctx context.Context, medicationID uint) ([]model.MedicationIntake, error)
}

type medicationRepository struct {
	db *gorm.DB
}

// NewMedicationRepository builds a GORM-backed repository.
func NewMedicationRepository(db *gorm.DB) MedicationRepository {
	return &medicationRepository{db: db}
}

func (r *medicationRepository) Create(ctx context.Context, med *model.Medication) error {
	return r.db.WithContext(ctx).Create(med).Error
}

func (r *medicationRepository) Update(ctx context.Context, med *model.Medication) error {
	return r.db.WithContext(ctx).Save(med).Error
}

func (r *medicationRepository) FindByID(ctx context.Context, id uint) (*model.Medication, error) {
	var med model.Medication
	if err := r.db.WithContext(ctx).First(&med, id).Error; err != nil {
		return nil, err
	}
	return &med, nil
}

func (r *medicationRepository) ListByUser(ctx context.Context, userID uint) ([]model.Medication, error) {
	var meds []model.Medication
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&meds).Error; err != nil {
		return nil, err
	}
	return meds, nil
}

func (r *medicationRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Medication{}, id).Error
}

func (r *medicationRepository) CreateReminder(ctx context.Context, reminder *model.MedicationReminder) error {
	return r.db.WithContext(ctx).Create(reminder).Error
}

func (r *medicationRepository) UpdateReminder(ctx context.Context, reminder *model.MedicationReminder) error {
	return r.db.WithContext(ctx).Save(reminder).Error
}

// DueReminders returns unsent reminders falling in [from, to).
func (r *medicationRepository) DueReminders(ctx context.Context, from, to time.Time) ([]model.MedicationReminder, error) {
	var reminders []model.MedicationReminder
	if err := r.db.WithContext(ctx).Preload("Medication").
		Where("sent = ? AND reminder_time >= ? AND reminder_time < ?", false, from, to).
		Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

func (r *medicationRepository) CreateIntake(ctx context.Context, intake *model.MedicationIntake) error {
	return r.db.WithContext(ctx).Create(intake).Error
}

func (r *medicationRepository) ListIntakes(ctx context.Context, medicationID uint) ([]model.MedicationIntake, error) {
	var intakes []model.MedicationIntake
	if err := r.db.WithContext(ctx).Where("medication_id = ?", medicationID).
		Order("intake_time DESC").Find(&intakes).Error; err != nil {
		return nil, err
	}
	return intakes, nil
}
