package events

import "time"

// EventType represents the grading events published to the rest of the platform
type EventType string

const (
	// Roster events
	EventRosterImported EventType = "roster.imported"
	EventRosterCopied   EventType = "roster.copied"

	// Quiz events
	EventQuizResultsSaved  EventType = "quiz.results.saved"
	EventQuizStatsUpdated  EventType = "quiz.stats.updated"
	EventQuizResultDeleted EventType = "quiz.result.deleted"
)

// GradingEvent is the envelope for all events emitted by this service
type GradingEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type RosterImportedEvent struct {
	ClassroomID     uint `json:"classroom_id"`
	TeacherID       uint `json:"teacher_id"`
	StudentsCreated int  `json:"students_created"`
	StudentsReused  int  `json:"students_reused"`
	RowsSkipped     int  `json:"rows_skipped"`
}

type RosterCopiedEvent struct {
	SourceClassroomID uint `json:"source_classroom_id"`
	TargetClassroomID uint `json:"target_classroom_id"`
	StudentsCopied    int  `json:"students_copied"`
}

type QuizResultsSavedEvent struct {
	QuizID     uint     `json:"quiz_id"`
	SavedCount int      `json:"saved_count"`
	Errors     []string `json:"errors,omitempty"`
}

type QuizStatsUpdatedEvent struct {
	QuizID         uint    `json:"quiz_id"`
	MeanScore      float64 `json:"mean_score"`
	MinScore       float64 `json:"min_score"`
	MaxScore       float64 `json:"max_score"`
	AttendeesCount int     `json:"attendees_count"`
}

type QuizResultDeletedEvent struct {
	QuizID   uint `json:"quiz_id"`
	ResultID uint `json:"result_id"`
}
