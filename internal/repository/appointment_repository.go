package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"healthtrack/internal/model"
)

// AppointmentRepository defines appointment and reminder persistence.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *model.Appointment) error
	Update(ctx context.Context, appt *model.Appointment) error
	FindByID(ctx context.Context, id uint) (*model.Appointment, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID uint) ([]model.Appointment, error)
	Delete(ctx context.Context, id uint) error

	CreateReminder(ctx context.Context, reminder *model.AppointmentReminder) error
	UpdateReminder(ctx context.Context, reminder *model.AppointmentReminder) error
	DueReminders(ctx context.Context, from, to time.Time) ([]model.AppointmentReminder, error)
}

type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository builds a GORM-backed repository.
func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appt *model.Appointment) error {
	return r.db.WithContext(ctx).Create(appt).Error
}

func (r *appointmentRepository) Update(ctx context.Context, appt *model.Appointment) error {
	return r.db.WithContext(ctx).Save(appt).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, id uint) (*model.Appointment, error) {
	var appt model.Appointment
	if err := r.db.WithContext(ctx).Preload("Doctor").First(&appt, id).Error; err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *appointmentRepository) ListByUser(ctx context.Context, userID uint) ([]model.Appointment, error) {
	var appts []model.Appointment
	if err := r.db.WithContext(ctx).Preload("Doctor").
		Where("user_id = ?", userID).Order("appointment_date").Find(&appts).Error; err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *appointmentRepository) ListByDoctor(ctx context.Context, doctorID uint) ([]model.Appointment, error) {
	var appts []model.Appointment
	if err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).Order("appointment_date").Find(&appts).Error; err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Appointment{}, id).Error
}

func (r *appointmentRepository) CreateReminder(ctx context.Context, reminder *model.AppointmentReminder) error {
	return r.db.WithContext(ctx).Create(reminder).Error
}

func (r *appointmentRepository) UpdateReminder(ctx context.Context, reminder *model.AppointmentReminder) error {
	return r.db.WithContext(ctx).Save(reminder).Error
}

// DueReminders returns unsent reminders falling in [from, to), with the
// appointment and its patient preloaded for the notification email.
func (r *appointmentRepository) DueReminders(ctx context.Context, from, to time.Time) ([]model.AppointmentReminder, error) {
	var reminders []model.AppointmentReminder
	if err := r.db.WithContext(ctx).
		Preload("Appointment").Preload("Appointment.Doctor").Preload("Appointment.Patient").
		Where("sent = ? AND reminder_time >= ? AND reminder_time < ?", false, from, to).
		Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}
