package model

import "time"

// Recurrence patterns accepted on medication reminders.
const (
	RecurrenceDaily  = "DAILY"
	RecurrenceWeekly = "WEEKLY"
)

// MedicationReminder schedules a notification for a medication. Recurring
// reminders are advanced by the scheduler instead of being marked sent.
type MedicationReminder struct {
	ID                uint        `json:"id" gorm:"primaryKey"`
	MedicationID      uint        `json:"medicationId" gorm:"not null;index"`
	Medication        *Medication `json:"medication,omitempty" gorm:"foreignKey:MedicationID"`
	ReminderTime      time.Time   `json:"reminderTime" gorm:"not null;index"`
	Recurring         bool        `json:"recurring"`
	RecurrencePattern string      `json:"recurrencePattern,omitempty" gorm:"size:20"`
	Sent              bool        `json:"sent" gorm:"default:false;index"`
}
