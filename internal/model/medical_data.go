package model

import "time"

// MedicalData is one reading of a patient's vitals. All measurements are
// optional so a reading can carry any subset of them.
type MedicalData struct {
	ID                     uint      `json:"id" gorm:"primaryKey"`
	UserID                 uint      `json:"userId" gorm:"not null;index"`
	RecordedAt             time.Time `json:"recordedAt" gorm:"not null;index"`
	BloodSugar             *float64  `json:"bloodSugar,omitempty"`
	SystolicBloodPressure  *int      `json:"systolicBloodPressure,omitempty"`
	DiastolicBloodPressure *int      `json:"diastolicBloodPressure,omitempty"`
	HeartRate              *int      `json:"heartRate,omitempty"`
}

// TableName pins the table name; GORM's pluralizer mangles "data".
func (MedicalData) TableName() string {
	return "medical_data"
}
