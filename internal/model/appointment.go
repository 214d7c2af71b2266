package model

import "time"

// Appointment is a visit requested by a patient with a doctor. It stays
// pending until the assigned doctor accepts it.
type Appointment struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	UserID          uint      `json:"userId" gorm:"not null;index"`
	Patient         *User     `json:"patient,omitempty" gorm:"foreignKey:UserID"`
	DoctorID        uint      `json:"doctorId" gorm:"not null;index"`
	Doctor          *User     `json:"doctor,omitempty" gorm:"foreignKey:DoctorID"`
	AppointmentDate time.Time `json:"appointmentDate" gorm:"not null;index"`
	Reason          string    `json:"reason" gorm:"size:500"`
	Accepted        bool      `json:"accepted" gorm:"default:false"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// AppointmentReminder notifies the patient ahead of an accepted appointment.
type AppointmentReminder struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	AppointmentID uint         `json:"appointmentId" gorm:"not null;index"`
	Appointment   *Appointment `json:"appointment,omitempty" gorm:"foreignKey:AppointmentID"`
	ReminderTime  time.Time    `json:"reminderTime" gorm:"not null;index"`
	Sent          bool         `json:"sent" gorm:"default:false;index"`
}
