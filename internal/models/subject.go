package models

import "time"

// Grade levels run from kindergarten (0) through grade 12.
const (
	GradeLevelKinder = 0
	GradeLevelMax    = 12
)

type Subject struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"not null;size:100" validate:"required,max=100"`
	Code        string  `json:"code" gorm:"uniqueIndex;not null;size:20" validate:"required,max=20"`
	Description *string `json:"description" gorm:"type:text"`
	GradeLevel  int     `json:"grade_level" gorm:"default:6" validate:"min=0,max=12"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Subject) TableName() string {
	return "subjects"
}
