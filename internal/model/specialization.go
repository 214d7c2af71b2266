package model

// Specialization is a medical specialty doctors are attached to.
type Specialization struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;size:255;not null"`
}
