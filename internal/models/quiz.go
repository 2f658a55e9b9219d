package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Quiz belongs to one classroom. The four statistics fields are a denormalized
// cache over the quiz's result set; they are recomputed and stored every time a
// result is created, updated or deleted, and are never trusted without that
// recompute.
type Quiz struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	ClassroomID uint           `json:"classroom_id" gorm:"not null;index" validate:"required"`
	Title       string         `json:"title" gorm:"not null;size:200" validate:"required,max=200"`
	TotalScore  int            `json:"total_score" gorm:"default:100" validate:"min=1"`
	AnswerKey   datatypes.JSON `json:"answer_key" gorm:"type:jsonb"`

	MeanScore      float64 `json:"mean_score" gorm:"default:0"`
	MinScore       float64 `json:"min_score" gorm:"default:0"`
	MaxScore       float64 `json:"max_score" gorm:"default:0"`
	AttendeesCount int     `json:"attendees_count" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Classroom Classroom    `json:"-" gorm:"foreignKey:ClassroomID"`
	Results   []QuizResult `json:"-" gorm:"foreignKey:QuizID"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuizStats is the denormalized statistics snapshot stored on a Quiz.
type QuizStats struct {
	MeanScore      float64 `json:"mean_score"`
	MinScore       float64 `json:"min_score"`
	MaxScore       float64 `json:"max_score"`
	AttendeesCount int     `json:"attendees_count"`
}

// QuizResult records one student's attempt at a quiz. At most one row exists per
// (quiz, student) pair; saving an existing pair overwrites it.
type QuizResult struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	QuizID    uint `json:"quiz_id" gorm:"not null;uniqueIndex:idx_quiz_student"`
	StudentID uint `json:"student_id" gorm:"not null;uniqueIndex:idx_quiz_student"`

	ScoreObtained   float64        `json:"score_obtained" gorm:"type:decimal(5,2);not null"`
	StudentAnswers  datatypes.JSON `json:"student_answers" gorm:"type:jsonb"`
	ScannedImageURL *string        `json:"scanned_image_url" gorm:"size:500"`
	DateTaken       time.Time      `json:"date_taken" gorm:"autoCreateTime"`

	Quiz    Quiz    `json:"-" gorm:"foreignKey:QuizID"`
	Student Student `json:"-" gorm:"foreignKey:StudentID"`
}

func (QuizResult) TableName() string {
	return "quiz_results"
}

// AnswersMap decodes the per-question answer breakdown. Keys are question
// identifiers; values carry at least a "correct" flag but tolerate arbitrary
// extra fields from the scanning pipeline. A nil or malformed payload decodes
// to an empty map rather than an error: a result with unreadable answers still
// counts as a respondent.
func (r *QuizResult) AnswersMap() map[string]map[string]any {
	answers := make(map[string]map[string]any)
	if len(r.StudentAnswers) == 0 {
		return answers
	}
	if err := json.Unmarshal(r.StudentAnswers, &answers); err != nil {
		return map[string]map[string]any{}
	}
	return answers
}
