package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList stores a list of strings as a JSON column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(value interface{}) error {
	switch data := value.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(data, l)
	case string:
		return json.Unmarshal([]byte(data), l)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}
}

// MedicalRecord holds a patient's disease history and current symptoms.
// Each user has at most one record; updates replace both lists.
type MedicalRecord struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	UserID         uint       `json:"userId" gorm:"not null;uniqueIndex"`
	DiseaseHistory StringList `json:"diseaseHistory" gorm:"type:json"`
	Symptoms       StringList `json:"symptoms" gorm:"type:json"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}
