package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gradely-app/grading-service/internal/cache"
	"github.com/gradely-app/grading-service/internal/events"
	"github.com/gradely-app/grading-service/internal/models"
	"github.com/gradely-app/grading-service/internal/repositories"
	"github.com/gradely-app/grading-service/internal/utils"
	"gorm.io/datatypes"
)

const quizDetailCacheTTL = 5 * time.Minute

// QuizService manages quizzes, their results and the derived statistics cache.
type QuizService interface {
	Create(ctx context.Context, req *CreateQuizRequest, teacherID uint) (*models.Quiz, error)
	GetByID(ctx context.Context, quizID, teacherID uint) (*models.Quiz, error)
	List(ctx context.Context, teacherID uint) ([]*models.Quiz, error)
	Update(ctx context.Context, quizID uint, req *UpdateQuizRequest, teacherID uint) (*models.Quiz, error)
	Delete(ctx context.Context, quizID, teacherID uint) error

	// GetDetail returns the full quiz report: summary fields, the roster-aligned
	// result view and the item analysis.
	GetDetail(ctx context.Context, quizID, teacherID uint) (*QuizDetailResponse, error)

	// SaveResults bulk-upserts result entries for one quiz with partial-success
	// semantics, then recomputes the statistics cache exactly once.
	SaveResults(ctx context.Context, quizID, teacherID uint, entries []ResultEntry) (*SaveResultsResponse, error)

	DeleteResult(ctx context.Context, quizID, resultID, teacherID uint) error

	// UpdateStatistics recomputes and persists the cached statistics from the
	// live result set. Called synchronously after every result mutation.
	UpdateStatistics(ctx context.Context, quizID uint) (models.QuizStats, error)
}

type quizService struct {
	repo      repositories.Repository
	logger    utils.Logger
	validator *utils.Validator
	cache     cache.CacheService
	publisher events.EventPublisher
}

func NewQuizService(
	repo repositories.Repository,
	logger utils.Logger,
	validator *utils.Validator,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
) QuizService {
	return &quizService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		cache:     cacheService,
		publisher: publisher,
	}
}

// ===== REQUEST / RESPONSE STRUCTURES =====

type CreateQuizRequest struct {
	ClassroomID uint            `json:"classroom_id" validate:"required"`
	Title       string          `json:"title" validate:"required,max=200"`
	TotalScore  int             `json:"total_score" validate:"omitempty,min=1"`
	AnswerKey   json.RawMessage `json:"answer_key"`
}

type UpdateQuizRequest struct {
	Title      *string         `json:"title" validate:"omitempty,max=200"`
	TotalScore *int            `json:"total_score" validate:"omitempty,min=1"`
	AnswerKey  json.RawMessage `json:"answer_key"`
}

// ResultEntry is one row of a bulk result save. StudentID is the external
// "YY-NNNNNN" code, not the internal row id.
type ResultEntry struct {
	StudentID      string                    `json:"student_id"`
	Score          float64                   `json:"score"`
	StudentAnswers map[string]map[string]any `json:"student_answers"`
}

type SaveResultsResponse struct {
	Status string   `json:"status"`
	Saved  int      `json:"saved"`
	Errors []string `json:"errors"`
}

type QuizDetailResponse struct {
	ID             uint           `json:"id"`
	Title          string         `json:"title"`
	TotalScore     int            `json:"total_score"`
	MeanScore      float64        `json:"mean_score"`
	MinScore       float64        `json:"min_score"`
	MaxScore       float64        `json:"max_score"`
	AttendeesCount int            `json:"attendees_count"`
	ClassroomName  string         `json:"classroom_name"`
	Results        []MergedResult `json:"results"`
	ItemAnalysis   []QuestionStat `json:"item_analysis"`
	CreatedAt      time.Time      `json:"created_at"`
}

// ===== CRUD =====

func (s *quizService) Create(ctx context.Context, req *CreateQuizRequest, teacherID uint) (*models.Quiz, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, toValidationErrors(err)
	}

	// Teachers can only attach quizzes to classrooms they own.
	if _, err := s.repo.Classroom().GetByIDForTeacher(ctx, req.ClassroomID, teacherID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrClassroomNotFound
		}
		return nil, fmt.Errorf("failed to get classroom: %w", err)
	}

	quiz := &models.Quiz{
		ClassroomID: req.ClassroomID,
		Title:       req.Title,
		TotalScore:  100,
	}
	if req.TotalScore > 0 {
		quiz.TotalScore = req.TotalScore
	}
	if len(req.AnswerKey) > 0 {
		quiz.AnswerKey = datatypes.JSON(req.AnswerKey)
	}

	if err := s.repo.Quiz().Create(ctx, quiz); err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	s.logger.Info("Quiz created", "quiz_id", quiz.ID, "classroom_id", quiz.ClassroomID, "teacher_id", teacherID)
	return quiz, nil
}

func (s *quizService) GetByID(ctx context.Context, quizID, teacherID uint) (*models.Quiz, error) {
	quiz, err := s.repo.Quiz().GetByIDForTeacher(ctx, quizID, teacherID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	return quiz, nil
}

func (s *quizService) List(ctx context.Context, teacherID uint) ([]*models.Quiz, error) {
	quizzes, err := s.repo.Quiz().ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	return quizzes, nil
}

func (s *quizService) Update(ctx context.Context, quizID uint, req *UpdateQuizRequest, teacherID uint) (*models.Quiz, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, toValidationErrors(err)
	}

	quiz, err := s.GetByID(ctx, quizID, teacherID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		quiz.Title = *req.Title
	}
	if req.TotalScore != nil {
		quiz.TotalScore = *req.TotalScore
	}
	if len(req.AnswerKey) > 0 {
		quiz.AnswerKey = datatypes.JSON(req.AnswerKey)
	}

	if err := s.repo.Quiz().Update(ctx, quiz); err != nil {
		return nil, fmt.Errorf("failed to update quiz: %w", err)
	}

	s.invalidateDetail(ctx, quizID)
	return quiz, nil
}

func (s *quizService) Delete(ctx context.Context, quizID, teacherID uint) error {
	if _, err := s.GetByID(ctx, quizID, teacherID); err != nil {
		return err
	}
	if err := s.repo.Quiz().Delete(ctx, quizID); err != nil {
		return fmt.Errorf("failed to delete quiz: %w", err)
	}
	s.invalidateDetail(ctx, quizID)
	return nil
}

// ===== STATISTICS =====

func (s *quizService) UpdateStatistics(ctx context.Context, quizID uint) (models.QuizStats, error) {
	results, err := s.repo.QuizResult().GetByQuiz(ctx, quizID)
	if err != nil {
		return models.QuizStats{}, fmt.Errorf("failed to load quiz results: %w", err)
	}

	stats := ComputeStatistics(results)
	if err := s.repo.Quiz().UpdateStats(ctx, quizID, stats); err != nil {
		return models.QuizStats{}, fmt.Errorf("failed to persist quiz statistics: %w", err)
	}

	s.publishEvent(ctx, events.NewGradingEvent(events.EventQuizStatsUpdated, events.QuizStatsUpdatedEvent{
		QuizID:         quizID,
		MeanScore:      stats.MeanScore,
		MinScore:       stats.MinScore,
		MaxScore:       stats.MaxScore,
		AttendeesCount: stats.AttendeesCount,
	}))

	return stats, nil
}

// ===== RESULTS =====

func (s *quizService) SaveResults(ctx context.Context, quizID, teacherID uint, entries []ResultEntry) (*SaveResultsResponse, error) {
	quiz, err := s.GetByID(ctx, quizID, teacherID)
	if err != nil {
		return nil, err
	}

	saved := 0
	rowErrors := []string{}

	for _, entry := range entries {
		if entry.StudentID == "" {
			continue
		}

		student, err := s.repo.Student().GetByCode(ctx, entry.StudentID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				rowErrors = append(rowErrors, fmt.Sprintf("Student ID '%s' not registered in the system.", entry.StudentID))
				continue
			}
			return nil, fmt.Errorf("failed to look up student %q: %w", entry.StudentID, err)
		}

		answers, err := json.Marshal(entry.StudentAnswers)
		if err != nil {
			return nil, fmt.Errorf("failed to encode answers for student %q: %w", entry.StudentID, err)
		}

		result := &models.QuizResult{
			QuizID:         quiz.ID,
			StudentID:      student.ID,
			ScoreObtained:  entry.Score,
			StudentAnswers: datatypes.JSON(answers),
			DateTaken:      time.Now(),
		}
		if err := s.repo.QuizResult().Upsert(ctx, result); err != nil {
			return nil, fmt.Errorf("failed to save result for student %q: %w", entry.StudentID, err)
		}
		saved++
	}

	// One recompute for the whole batch, not one per entry.
	if _, err := s.UpdateStatistics(ctx, quizID); err != nil {
		return nil, err
	}
	s.invalidateDetail(ctx, quizID)

	s.publishEvent(ctx, events.NewGradingEvent(events.EventQuizResultsSaved, events.QuizResultsSavedEvent{
		QuizID:     quizID,
		SavedCount: saved,
		Errors:     rowErrors,
	}))

	s.logger.Info("Quiz results saved",
		"quiz_id", quizID,
		"saved", saved,
		"errors", len(rowErrors))

	return &SaveResultsResponse{
		Status: "success",
		Saved:  saved,
		Errors: rowErrors,
	}, nil
}

func (s *quizService) DeleteResult(ctx context.Context, quizID, resultID, teacherID uint) error {
	if _, err := s.GetByID(ctx, quizID, teacherID); err != nil {
		return err
	}

	result, err := s.repo.QuizResult().GetByID(ctx, resultID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrQuizResultNotFound
		}
		return fmt.Errorf("failed to get quiz result: %w", err)
	}
	if result.QuizID != quizID {
		return ErrQuizResultNotFound
	}

	if err := s.repo.QuizResult().Delete(ctx, resultID); err != nil {
		return fmt.Errorf("failed to delete quiz result: %w", err)
	}

	if _, err := s.UpdateStatistics(ctx, quizID); err != nil {
		return err
	}
	s.invalidateDetail(ctx, quizID)

	s.publishEvent(ctx, events.NewGradingEvent(events.EventQuizResultDeleted, events.QuizResultDeletedEvent{
		QuizID:   quizID,
		ResultID: resultID,
	}))

	return nil
}

// ===== DETAIL VIEW =====

func (s *quizService) GetDetail(ctx context.Context, quizID, teacherID uint) (*QuizDetailResponse, error) {
	// Ownership check comes before the cache: a hit must not leak another
	// teacher's quiz.
	quiz, err := s.GetByID(ctx, quizID, teacherID)
	if err != nil {
		return nil, err
	}

	cacheKey := quizDetailCacheKey(quizID)

	var cached QuizDetailResponse
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	roster, err := s.repo.Classroom().GetRoster(ctx, quiz.ClassroomID)
	if err != nil {
		return nil, fmt.Errorf("failed to load classroom roster: %w", err)
	}

	results, err := s.repo.QuizResult().GetByQuiz(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to load quiz results: %w", err)
	}

	detail := &QuizDetailResponse{
		ID:             quiz.ID,
		Title:          quiz.Title,
		TotalScore:     quiz.TotalScore,
		MeanScore:      quiz.MeanScore,
		MinScore:       quiz.MinScore,
		MaxScore:       quiz.MaxScore,
		AttendeesCount: quiz.AttendeesCount,
		ClassroomName:  quiz.Classroom.SectionName,
		Results:        MergeRosterResults(roster, results),
		ItemAnalysis:   BuildItemAnalysis(results),
		CreatedAt:      quiz.CreatedAt,
	}

	if err := s.cache.Set(ctx, cacheKey, detail, quizDetailCacheTTL); err != nil {
		s.logger.Warn("Failed to cache quiz detail", "quiz_id", quizID, "error", err)
	}

	return detail, nil
}

// ===== HELPERS =====

func quizDetailCacheKey(quizID uint) string {
	return fmt.Sprintf("quiz:detail:%d", quizID)
}

func (s *quizService) invalidateDetail(ctx context.Context, quizID uint) {
	if err := s.cache.Delete(ctx, quizDetailCacheKey(quizID)); err != nil {
		s.logger.Warn("Failed to invalidate quiz detail cache", "quiz_id", quizID, "error", err)
	}
}

func (s *quizService) publishEvent(ctx context.Context, event *events.GradingEvent) {
	if err := s.publisher.PublishGradingEvent(ctx, event); err != nil {
		// Event delivery is best effort; the write already happened.
		s.logger.Error("Failed to publish grading event", "event_type", event.Type, "error", err)
	}
}
