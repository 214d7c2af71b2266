package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"healthtrack/internal/mailer"
	"healthtrack/internal/repository"
	"healthtrack/internal/service"
)

// interval is how often due reminders are checked. Each tick scans the
// window [now, now+interval) so a reminder fires exactly once.
const interval = time.Minute

// ReminderScheduler delivers medication and appointment reminders by email.
type ReminderScheduler struct {
	medications  service.MedicationService
	appointments service.AppointmentService
	users        repository.UserRepository
	mailer       mailer.Mailer
	log          *zap.Logger
	now          func() time.Time
}

// NewReminderScheduler wires the scheduler.
func NewReminderScheduler(
	medications service.MedicationService,
	appointments service.AppointmentService,
	users repository.UserRepository,
	m mailer.Mailer,
	log *zap.Logger,
) *ReminderScheduler {
	return &ReminderScheduler{
		medications:  medications,
		appointments: appointments,
		users:        users,
		mailer:       m,
		log:          log,
		now:          time.Now,
	}
}

// Run ticks until ctx is cancelled.
func (s *ReminderScheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.Info("reminder scheduler started", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			s.log.Info("reminder scheduler stopped")
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick processes one reminder window. Exported for tests.
func (s *ReminderScheduler) Tick(ctx context.Context) {
	from := s.now()
	to := from.Add(interval)
	s.sendMedicationReminders(ctx, from, to)
	s.sendAppointmentReminders(ctx, from, to)
}

func (s *ReminderScheduler) sendMedicationReminders(ctx context.Context, from, to time.Time) {
	reminders, err := s.medications.DueReminders(ctx, from, to)
	if err != nil {
		s.log.Error("list medication reminders", zap.Error(err))
		return
	}

	for i := range reminders {
		reminder := &reminders[i]
		if reminder.Medication == nil {
			s.log.Warn("reminder without medication", zap.Uint("reminder_id", reminder.ID))
			continue
		}
		patient, err := s.users.FindByID(ctx, reminder.Medication.UserID)
		if err != nil {
			s.log.Error("find patient for reminder",
				zap.Uint("reminder_id", reminder.ID), zap.Error(err))
			continue
		}

		body := fmt.Sprintf("Time to take %s (%s).",
			reminder.Medication.Name, reminder.Medication.Dosage)
		if err := s.mailer.Send(patient.Email, "Medication Reminder", body); err != nil {
			s.log.Error("send medication reminder",
				zap.Uint("reminder_id", reminder.ID), zap.Error(err))
			continue
		}

		if err := s.medications.CompleteReminder(ctx, reminder); err != nil {
			s.log.Error("complete medication reminder",
				zap.Uint("reminder_id", reminder.ID), zap.Error(err))
			continue
		}
		s.log.Info("medication reminder sent",
			zap.Uint("reminder_id", reminder.ID),
			zap.String("medication", reminder.Medication.Name))
	}
}

func (s *ReminderScheduler) sendAppointmentReminders(ctx context.Context, from, to time.Time) {
	reminders, err := s.appointments.DueReminders(ctx, from, to)
	if err != nil {
		s.log.Error("list appointment reminders", zap.Error(err))
		return
	}

	for i := range reminders {
		reminder := &reminders[i]
		appt := reminder.Appointment
		if appt == nil || appt.Patient == nil {
			s.log.Warn("reminder without appointment data", zap.Uint("reminder_id", reminder.ID))
			continue
		}

		doctorName := "your doctor"
		if appt.Doctor != nil {
			doctorName = "Dr. " + appt.Doctor.Name
		}
		body := fmt.Sprintf("Reminder: you have an appointment with %s on %s.",
			doctorName, appt.AppointmentDate.Format("Mon, 02 Jan 2006 15:04"))
		if appt.Reason != "" {
			body += "\nNotes: " + appt.Reason
		}

		if err := s.mailer.Send(appt.Patient.Email, "Appointment Reminder", body); err != nil {
			s.log.Error("send appointment reminder",
				zap.Uint("reminder_id", reminder.ID), zap.Error(err))
			continue
		}

		if err := s.appointments.MarkReminderSent(ctx, reminder); err != nil {
			s.log.Error("mark appointment reminder sent",
				zap.Uint("reminder_id", reminder.ID), zap.Error(err))
			continue
		}
		s.log.Info("appointment reminder sent",
			zap.Uint("reminder_id", reminder.ID),
			zap.Uint("appointment_id", reminder.AppointmentID))
	}
}
