package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"healthtrack/internal/model"
	"healthtrack/internal/service"
)

type MockMedicationService struct {
	mock.Mock
}

func (m *MockMedicationService) Add(ctx context.Context, userID uint, in service.MedicationInput) (*model.Medication, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Medication), args.Error(1)
}

func (m *MockMedicationService) Get(ctx context.Context, id uint) (*model.Medication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Medication), args.Error(1)
}

func (m *MockMedicationService) ListByUser(ctx context.Context, userID uint) ([]model.Medication, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Medication), args.Error(1)
}

func (m *MockMedicationService) Update(ctx context.Context, id uint, in service.MedicationInput) (*model.Medication, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Medication), args.Error(1)
}

func (m *MockMedicationService) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMedicationService) RecordIntake(ctx context.Context, medicationID uint, at time.Time) (*model.MedicationIntake, error) {
	args := m.Called(ctx, medicationID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MedicationIntake), args.Error(1)
}

func (m *MockMedicationService) ListIntakes(ctx context.Context, medicationID uint) ([]model.MedicationIntake, error) {
	args := m.Called(ctx, medicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MedicationIntake), args.Error(1)
}

func (m *MockMedicationService) DueReminders(ctx context.Context, from, to time.Time) ([]model.MedicationReminder, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MedicationReminder), args.Error(1)
}

func (m *MockMedicationService) CompleteReminder(ctx context.Context, reminder *model.MedicationReminder) error {
	args := m.Called(ctx, reminder)
	return args.Error(0)
}

type MockAppointmentService struct {
	mock.Mock
}

func (m *MockAppointmentService) Create(ctx context.Context, userID uint, in service.AppointmentInput) (*model.Appointment, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Appointment), args.Error(1)
}

func (m *MockAppointmentService) ListByUser(ctx context.Context, userID uint) ([]model.Appointment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Appointment), args.Error(1)
}

func (m *MockAppointmentService) ListByDoctor(ctx context.Context, doctorID uint) ([]model.Appointment, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Appointment), args.Error(1)
}

func (m *MockAppointmentService) UpdateStatus(ctx context.Context, appointmentID, doctorID uint, accepted bool) (*model.Appointment, error) {
	args := m.Called(ctx, appointmentID, doctorID, accepted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Appointment), args.Error(1)
}

func (m *MockAppointmentService) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAppointmentService) DueReminders(ctx context.Context, from, to time.Time) ([]model.AppointmentReminder, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AppointmentReminder), args.Error(1)
}

func (m *MockAppointmentService) MarkReminderSent(ctx context.Context, reminder *model.AppointmentReminder) error {
	args := m.Called(ctx, reminder)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) CountByRole(ctx context.Context, role model.Role) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

// fakeMailer records sent messages.
type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	fail bool
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (f *fakeMailer) Send(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("smtp unavailable")
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func newTestScheduler(meds *MockMedicationService, appts *MockAppointmentService, users *MockUserRepository, m *fakeMailer) *ReminderScheduler {
	s := NewReminderScheduler(meds, appts, users, m, zap.NewNop())
	s.now = func() time.Time { return time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC) }
	return s
}

func TestTickSendsMedicationReminder(t *testing.T) {
	meds := new(MockMedicationService)
	appts := new(MockAppointmentService)
	users := new(MockUserRepository)
	mail := &fakeMailer{}
	s := newTestScheduler(meds, appts, users, mail)

	from := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	to := from.Add(time.Minute)
	reminder := model.MedicationReminder{
		ID:           4,
		MedicationID: 9,
		Medication:   &model.Medication{ID: 9, UserID: 3, Name: "Aspirin", Dosage: "100mg"},
		ReminderTime: from.Add(30 * time.Second),
	}

	meds.On("DueReminders", mock.Anything, from, to).Return([]model.MedicationReminder{reminder}, nil)
	users.On("FindByID", mock.Anything, uint(3)).Return(&model.User{ID: 3, Email: "pat@example.com"}, nil)
	meds.On("CompleteReminder", mock.Anything, mock.AnythingOfType("*model.MedicationReminder")).Return(nil)
	appts.On("DueReminders", mock.Anything, from, to).Return([]model.AppointmentReminder{}, nil)

	s.Tick(context.Background())

	if assert.Len(t, mail.sent, 1) {
		assert.Equal(t, "pat@example.com", mail.sent[0].to)
		assert.Equal(t, "Medication Reminder", mail.sent[0].subject)
		assert.Contains(t, mail.sent[0].body, "Aspirin")
		assert.Contains(t, mail.sent[0].body, "100mg")
	}
	meds.AssertExpectations(t)
}

func TestTickSendsAppointmentReminder(t *testing.T) {
	meds := new(MockMedicationService)
	appts := new(MockAppointmentService)
	users := new(MockUserRepository)
	mail := &fakeMailer{}
	s := newTestScheduler(meds, appts, users, mail)

	from := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	to := from.Add(time.Minute)
	reminder := model.AppointmentReminder{
		ID:            6,
		AppointmentID: 12,
		Appointment: &model.Appointment{
			ID:              12,
			Patient:         &model.User{ID: 3, Email: "pat@example.com"},
			Doctor:          &model.User{ID: 7, Name: "Smith"},
			AppointmentDate: time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC),
			Reason:          "Annual checkup",
		},
		ReminderTime: from,
	}

	meds.On("DueReminders", mock.Anything, from, to).Return([]model.MedicationReminder{}, nil)
	appts.On("DueReminders", mock.Anything, from, to).Return([]model.AppointmentReminder{reminder}, nil)
	appts.On("MarkReminderSent", mock.Anything, mock.AnythingOfType("*model.AppointmentReminder")).Return(nil)

	s.Tick(context.Background())

	if assert.Len(t, mail.sent, 1) {
		assert.Equal(t, "pat@example.com", mail.sent[0].to)
		assert.Equal(t, "Appointment Reminder", mail.sent[0].subject)
		assert.Contains(t, mail.sent[0].body, "Dr. Smith")
		assert.Contains(t, mail.sent[0].body, "Annual checkup")
	}
	appts.AssertExpectations(t)
}

func TestTickKeepsReminderWhenMailFails(t *testing.T) {
	meds := new(MockMedicationService)
	appts := new(MockAppointmentService)
	users := new(MockUserRepository)
	mail := &fakeMailer{fail: true}
	s := newTestScheduler(meds, appts, users, mail)

	from := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	to := from.Add(time.Minute)
	reminder := model.MedicationReminder{
		ID:           4,
		MedicationID: 9,
		Medication:   &model.Medication{ID: 9, UserID: 3, Name: "Aspirin"},
		ReminderTime: from,
	}

	meds.On("DueReminders", mock.Anything, from, to).Return([]model.MedicationReminder{reminder}, nil)
	users.On("FindByID", mock.Anything, uint(3)).Return(&model.User{ID: 3, Email: "pat@example.com"}, nil)
	appts.On("DueReminders", mock.Anything, from, to).Return([]model.AppointmentReminder{}, nil)

	s.Tick(context.Background())

	// Delivery failed, so the reminder stays due for the next tick.
	meds.AssertNotCalled(t, "CompleteReminder", mock.Anything, mock.Anything)
}
