package models

import (
	"time"

	"gorm.io/gorm"
)

// Classroom is one class being taught: a teacher plus a subject plus a section.
// The roster is a many-to-many set of students with no ordering guarantee beyond
// the sort keys applied at read time.
type Classroom struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	TeacherID   uint   `json:"teacher_id" gorm:"not null;index"`
	SubjectID   uint   `json:"subject_id" gorm:"not null;index" validate:"required"`
	SectionName string `json:"section_name" gorm:"not null;size:50" validate:"required,max=50"`
	SchoolYear  string `json:"school_year" gorm:"not null;size:20" validate:"required,max=20"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Teacher  User      `json:"-" gorm:"foreignKey:TeacherID"`
	Subject  Subject   `json:"subject" gorm:"foreignKey:SubjectID"`
	Students []Student `json:"students,omitempty" gorm:"many2many:classroom_students"`

	// Computed at read time, not stored.
	StudentCount int `json:"student_count" gorm:"-"`
}

func (Classroom) TableName() string {
	return "classrooms"
}
