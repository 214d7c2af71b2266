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

// appointmentReminderLead is how far before an accepted appointment the
// patient is notified.
const appointmentReminderLead = 24 * time.Hour

// AppointmentInput carries a booking request made by a patient.
type AppointmentInput struct {
	DoctorID        uint
	AppointmentDate time.Time
	Reason          string
}

// AppointmentService manages bookings between patients and doctors.
type AppointmentService interface {
	Create(ctx context.Context, userID uint, in AppointmentInput) (*model.Appointment, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID uint) ([]model.Appointment, error)
	UpdateStatus(ctx context.Context, appointmentID, doctorID uint, accepted bool) (*model.Appointment, error)
	Delete(ctx context.Context, id uint) error

	DueReminders(ctx context.Context, from, to time.Time) ([]model.AppointmentReminder, error)
	MarkReminderSent(ctx context.Context, reminder *model.AppointmentReminder) error
}

type appointmentService struct {
	repo     repository.AppointmentRepository
	userRepo repository.UserRepository
}

// NewAppointmentService builds an AppointmentService.
func NewAppointmentService(repo repository.AppointmentRepository, userRepo repository.UserRepository) AppointmentService {
	return &appointmentService{repo: repo, userRepo: userRepo}
}

func (s *appointmentService) Create(ctx context.Context, userID uint, in AppointmentInput) (*model.Appointment, error) {
	doctor, err := s.userRepo.FindByID(ctx, in.DoctorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrUserNotFound
		}
		return nil, err
	}
	if doctor.Role != model.RoleDoctor {
		return nil, httperr.ErrRoleMismatch
	}

	appt := &model.Appointment{
		UserID:          userID,
		DoctorID:        in.DoctorID,
		AppointmentDate: in.AppointmentDate,
		Reason:          in.Reason,
	}
	if err := s.repo.Create(ctx, appt); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	appt.Doctor = doctor
	return appt, nil
}

func (s *appointmentService) ListByUser(ctx context.Context, userID uint) ([]model.Appointment, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *appointmentService) ListByDoctor(ctx context.Context, doctorID uint) ([]model.Appointment, error) {
	return s.repo.ListByDoctor(ctx, doctorID)
}

// UpdateStatus lets the assigned doctor accept or decline. Accepting
// schedules a reminder for the patient ahead of the visit.
func (s *appointmentService) UpdateStatus(ctx context.Context, appointmentID, doctorID uint, accepted bool) (*model.Appointment, error) {
	appt, err := s.repo.FindByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrAppointmentNotFound
		}
		return nil, err
	}
	if appt.DoctorID != doctorID {
		return nil, httperr.ErrNotAppointmentDoctor
	}

	wasAccepted := appt.Accepted
	appt.Accepted = accepted
	if err := s.repo.Update(ctx, appt); err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}

	if accepted && !wasAccepted {
		reminderTime := appt.AppointmentDate.Add(-appointmentReminderLead)
		if reminderTime.After(time.Now()) {
			reminder := &model.AppointmentReminder{
				AppointmentID: appt.ID,
				ReminderTime:  reminderTime,
			}
			if err := s.repo.CreateReminder(ctx, reminder); err != nil {
				return nil, fmt.Errorf("create reminder: %w", err)
			}
		}
	}
	return appt, nil
}

func (s *appointmentService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrAppointmentNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *appointmentService) DueReminders(ctx context.Context, from, to time.Time) ([]model.AppointmentReminder, error) {
	return s.repo.DueReminders(ctx, from, to)
}

func (s *appointmentService) MarkReminderSent(ctx context.Context, reminder *model.AppointmentReminder) error {
	reminder.Sent = true
	return s.repo.UpdateReminder(ctx, reminder)
}
