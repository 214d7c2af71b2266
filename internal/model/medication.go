package model

import "time"

// Medication is a drug a patient is taking, with an optional next reminder.
type Medication struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	UserID           uint       `json:"userId" gorm:"not null;index"`
	Name             string     `json:"name" gorm:"size:255;not null"`
	Dosage           string     `json:"dosage" gorm:"size:255"`
	NextReminderTime *time.Time `json:"nextReminderTime,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// MedicationIntake logs a single dose taken by the patient.
type MedicationIntake struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	MedicationID uint      `json:"medicationId" gorm:"not null;index"`
	IntakeTime   time.Time `json:"intakeTime" gorm:"not null"`
}
