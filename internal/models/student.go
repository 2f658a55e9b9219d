package models

import "time"

// Student is an identity record created by the roster importer (or direct admin
// action) and never deleted by core flows. StudentID is the human-facing code in
// the form "YY-NNNNNN"; ID is the internal row identifier.
type Student struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	StudentID string `json:"student_id" gorm:"uniqueIndex;not null;size:20"`
	Name      string `json:"name" gorm:"not null;size:100;index" validate:"required,max=100"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Student) TableName() string {
	return "students"
}
