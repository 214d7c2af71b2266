package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"healthtrack/internal/httperr"
	"healthtrack/internal/model"
	"healthtrack/internal/repository"
)

// MedicationInput carries the writable fields of a medication.
type MedicationInput struct {
	Name              string
	Dosage            string
	NextReminderTime  *time.Time
	Recurring         bool
	RecurrencePattern string
}

// MedicationService manages medications, their reminders, and intake logs.
type MedicationService interface {
	Add(ctx context.Context, userID uint, in MedicationInput) (*model.Medication, error)
	Get(ctx context.Context, id uint) (*model.Medication, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Medication, error)
	Update(ctx context.Context, id uint, in MedicationInput) (*model.Medication, error)
	Delete(ctx context.Context, id uint) error

	RecordIntake(ctx context.Context, medicationID uint, at time.Time) (*model.MedicationIntake, error)
	ListIntakes(ctx context.Context, medicationID uint) ([]model.MedicationIntake, error)

	DueReminders(ctx context.Context, from, to time.Time) ([]model.MedicationReminder, error)
	CompleteReminder(ctx context.Context, reminder *model.MedicationReminder) error
}

type medicationService struct {
	repo repository.MedicationRepository
}

// NewMedicationService builds a MedicationService.
func NewMedicationService(repo repository.MedicationRepository) MedicationService {
	return &medicationService{repo: repo}
}

func (s *medicationService) Add(ctx context.Context, userID uint, in MedicationInput) (*model.Medication, error) {
	med := &model.Medication{
		UserID:           userID,
		Name:             in.Name,
		Dosage:           in.Dosage,
		NextReminderTime: in.NextReminderTime,
	}
	if err := s.repo.Create(ctx, med); err != nil {
		return nil, fmt.Errorf("create medication: %w", err)
	}

	if in.NextReminderTime != nil {
		reminder := &model.MedicationReminder{
			MedicationID:      med.ID,
			ReminderTime:      *in.NextReminderTime,
			Recurring:         in.Recurring,
			RecurrencePattern: in.RecurrencePattern,
		}
		if err := s.repo.CreateReminder(ctx, reminder); err != nil {
			return nil, fmt.Errorf("create reminder: %w", err)
		}
	}
	return med, nil
}

func (s *medicationService) Get(ctx context.Context, id uint) (*model.Medication, error) {
	med, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrMedicationNotFound
		}
		return nil, err
	}
	return med, nil
}

func (s *medicationService) ListByUser(ctx context.Context, userID uint) ([]model.Medication, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *medicationService) Update(ctx context.Context, id uint, in MedicationInput) (*model.Medication, error) {
	med, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	rescheduled := in.NextReminderTime != nil &&
		(med.NextReminderTime == nil || !med.NextReminderTime.Equal(*in.NextReminderTime))

	med.Name = in.Name
	med.Dosage = in.Dosage
	med.NextReminderTime = in.NextReminderTime
	if err := s.repo.Update(ctx, med); err != nil {
		return nil, fmt.Errorf("update medication: %w", err)
	}

	if rescheduled {
		reminder := &model.MedicationReminder{
			MedicationID:      med.ID,
			ReminderTime:      *in.NextReminderTime,
			Recurring:         in.Recurring,
			RecurrencePattern: in.RecurrencePattern,
		}
		if err := s.repo.CreateReminder(ctx, reminder); err != nil {
			return nil, fmt.Errorf("create reminder: %w", err)
		}
	}
	return med, nil
}

func (s *medicationService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *medicationService) RecordIntake(ctx context.Context, medicationID uint, at time.Time) (*model.MedicationIntake, error) {
	if _, err := s.Get(ctx, medicationID); err != nil {
		return nil, err
	}
	if at.IsZero() {
		at = time.Now()
	}
	intake := &model.MedicationIntake{
		MedicationID: medicationID,
		IntakeTime:   at,
	}
	if err := s.repo.CreateIntake(ctx, intake); err != nil {
		return nil, fmt.Errorf("record intake: %w", err)
	}
	return intake, nil
}

func (s *medicationService) ListIntakes(ctx context.Context, medicationID uint) ([]model.MedicationIntake, error) {
	if _, err := s.Get(ctx, medicationID); err != nil {
		return nil, err
	}
	return s.repo.ListIntakes(ctx, medicationID)
}

func (s *medicationService) DueReminders(ctx context.Context, from, to time.Time) ([]model.MedicationReminder, error) {
	return s.repo.DueReminders(ctx, from, to)
}

// CompleteReminder marks a one-shot reminder sent, or advances a recurring
// one to its next occurrence and keeps the medication's next-reminder field
// in step.
func (s *medicationService) CompleteReminder(ctx context.Context, reminder *model.MedicationReminder) error {
	if !reminder.Recurring {
		reminder.Sent = true
		return s.repo.UpdateReminder(ctx, reminder)
	}

	switch reminder.RecurrencePattern {
	case model.RecurrenceWeekly:
		reminder.ReminderTime = reminder.ReminderTime.AddDate(0, 0, 7)
	default:
		// DAILY is the default for recurring reminders
		reminder.ReminderTime = reminder.ReminderTime.AddDate(0, 0, 1)
	}
	if err := s.repo.UpdateReminder(ctx, reminder); err != nil {
		return err
	}

	med, err := s.repo.FindByID(ctx, reminder.MedicationID)
	if err != nil {
		return err
	}
	next := reminder.ReminderTime
	med.NextReminderTime = &next
	return s.repo.Update(ctx, med)
}
