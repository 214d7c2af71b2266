package model

import (
	"time"

	"gorm.io/gorm"
)

// Role determines which dashboard and permissions apply to a user.
type Role string

const (
	RolePatient Role = "PATIENT"
	RoleDoctor  Role = "DOCTOR"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RolePatient || r == RoleDoctor
}

// User represents a patient or doctor account.
type User struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	Email            string          `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash     string          `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role             Role            `json:"role" gorm:"size:20;not null;index"`
	Name             string          `json:"name" gorm:"size:255;not null"`
	PhoneNumber      string          `json:"phoneNumber" gorm:"size:50;not null"`
	Birthday         *time.Time      `json:"birthday,omitempty"`
	SpecializationID *uint           `json:"-" gorm:"index"`
	Specialization   *Specialization `json:"specialization,omitempty" gorm:"foreignKey:SpecializationID"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
	DeletedAt        gorm.DeletedAt  `json:"-" gorm:"index"`
}
