package services

import (
	"context"
	"fmt"

	"github.com/gradely-app/grading-service/internal/events"
	"github.com/gradely-app/grading-service/internal/models"
	"github.com/gradely-app/grading-service/internal/repositories"
	"github.com/gradely-app/grading-service/internal/utils"
)

const recentQuizLimit = 5

// ClassroomService manages classrooms and their rosters. Every operation is
// scoped to the requesting teacher.
type ClassroomService interface {
	Create(ctx context.Context, req *CreateClassroomRequest, teacherID uint) (*models.Classroom, error)
	GetByID(ctx context.Context, classroomID, teacherID uint) (*models.Classroom, error)
	List(ctx context.Context, teacherID uint) ([]*models.Classroom, error)
	Update(ctx context.Context, classroomID uint, req *UpdateClassroomRequest, teacherID uint) (*models.Classroom, error)
	Delete(ctx context.Context, classroomID, teacherID uint) error

	// CopyRoster enrolls every student of the source classroom into the target.
	CopyRoster(ctx context.Context, targetID, sourceID, teacherID uint) (int, error)
	RemoveStudent(ctx context.Context, classroomID, studentID, teacherID uint) error

	GetDashboard(ctx context.Context, teacherID uint) (*DashboardResponse, error)
}

type classroomService struct {
	repo      repositories.Repository
	logger    utils.Logger
	validator *utils.Validator
	publisher events.EventPublisher
}

func NewClassroomService(
	repo repositories.Repository,
	logger utils.Logger,
	validator *utils.Validator,
	publisher events.EventPublisher,
) ClassroomService {
	return &classroomService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

// ===== REQUEST / RESPONSE STRUCTURES =====

type CreateClassroomRequest struct {
	SubjectID   uint   `json:"subject_id" validate:"required"`
	SectionName string `json:"section_name" validate:"required,max=50"`
	SchoolYear  string `json:"school_year" validate:"required,school_year"`
}

type UpdateClassroomRequest struct {
	SubjectID   *uint   `json:"subject_id"`
	SectionName *string `json:"section_name" validate:"omitempty,max=50"`
	SchoolYear  *string `json:"school_year" validate:"omitempty,school_year"`
}

type DashboardResponse struct {
	Classrooms    []*models.Classroom `json:"classes"`
	RecentQuizzes []*models.Quiz      `json:"recent_quizzes"`
	ClassCount    int                 `json:"class_count"`
	StudentCount  int64               `json:"student_count"`
}

// ===== CRUD =====

func (s *classroomService) Create(ctx context.Context, req *CreateClassroomRequest, teacherID uint) (*models.Classroom, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, toValidationErrors(err)
	}

	if _, err := s.repo.Subject().GetByID(ctx, req.SubjectID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSubjectNotFound
		}
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}

	classroom := &models.Classroom{
		TeacherID:   teacherID,
		SubjectID:   req.SubjectID,
		SectionName: req.SectionName,
		SchoolYear:  req.SchoolYear,
	}
	if err := s.repo.Classroom().Create(ctx, classroom); err != nil {
		return nil, fmt.Errorf("failed to create classroom: %w", err)
	}

	s.logger.Info("Classroom created", "classroom_id", classroom.ID, "teacher_id", teacherID)
	return classroom, nil
}

func (s *classroomService) GetByID(ctx context.Context, classroomID, teacherID uint) (*models.Classroom, error) {
	classroom, err := s.repo.Classroom().GetByIDWithStudents(ctx, classroomID, teacherID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrClassroomNotFound
		}
		return nil, fmt.Errorf("failed to get classroom: %w", err)
	}
	classroom.StudentCount = len(classroom.Students)
	return classroom, nil
}

func (s *classroomService) List(ctx context.Context, teacherID uint) ([]*models.Classroom, error) {
	classrooms, err := s.repo.Classroom().ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to list classrooms: %w", err)
	}
	for _, classroom := range classrooms {
		count, err := s.repo.Classroom().CountStudents(ctx, classroom.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count students: %w", err)
		}
		classroom.StudentCount = int(count)
	}
	return classrooms, nil
}

func (s *classroomService) Update(ctx context.Context, classroomID uint, req *UpdateClassroomRequest, teacherID uint) (*models.Classroom, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, toValidationErrors(err)
	}

	classroom, err := s.repo.Classroom().GetByIDForTeacher(ctx, classroomID, teacherID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrClassroomNotFound
		}
		return nil, fmt.Errorf("failed to get classroom: %w", err)
	}

	if req.SubjectID != nil {
		if _, err := s.repo.Subject().GetByID(ctx, *req.SubjectID); err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, ErrSubjectNotFound
			}
			return nil, fmt.Errorf("failed to get subject: %w", err)
		}
		classroom.SubjectID = *req.SubjectID
	}
	if req.SectionName != nil {
		classroom.SectionName = *req.SectionName
	}
	if req.SchoolYear != nil {
		classroom.SchoolYear = *req.SchoolYear
	}

	if err := s.repo.Classroom().Update(ctx, classroom); err != nil {
		return nil, fmt.Errorf("failed to update classroom: %w", err)
	}
	return classroom, nil
}

func (s *classroomService) Delete(ctx context.Context, classroomID, teacherID uint) error {
	if _, err := s.repo.Classroom().GetByIDForTeacher(ctx, classroomID, teacherID); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrClassroomNotFound
		}
		return fmt.Errorf("failed to get classroom: %w", err)
	}

	// Quizzes and their results reference the classroom; require deleting
	// those first instead of cascading silently.
	quizCount, err := s.repo.Quiz().CountByClassroom(ctx, classroomID)
	if err != nil {
		return fmt.Errorf("failed to count quizzes: %w", err)
	}
	if quizCount > 0 {
		return ErrClassroomHasQuizzes
	}

	if err := s.repo.Classroom().Delete(ctx, classroomID); err != nil {
		return fmt.Errorf("failed to delete classroom: %w", err)
	}
	s.logger.Info("Classroom deleted", "classroom_id", classroomID, "teacher_id", teacherID)
	return nil
}

// ===== ROSTER OPERATIONS =====

func (s *classroomService) CopyRoster(ctx context.Context, targetID, sourceID, teacherID uint) (int, error) {
	// Both ends must belong to the same teacher.
	target, err := s.repo.Classroom().GetByIDForTeacher(ctx, targetID, teacherID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return 0, ErrClassroomNotFound
		}
		return 0, fmt.Errorf("failed to get target classroom: %w", err)
	}
	source, err := s.repo.Classroom().GetByIDForTeacher(ctx, sourceID, teacherID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return 0, ErrClassroomNotFound
		}
		return 0, fmt.Errorf("failed to get source classroom: %w", err)
	}

	roster, err := s.repo.Classroom().GetRoster(ctx, source.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to load source roster: %w", err)
	}
	if len(roster) == 0 {
		return 0, ErrSourceRosterEmpty
	}

	if err := s.repo.Classroom().AddStudents(ctx, target.ID, roster); err != nil {
		return 0, fmt.Errorf("failed to enroll students: %w", err)
	}

	s.publishEvent(ctx, events.NewGradingEvent(events.EventRosterCopied, events.RosterCopiedEvent{
		SourceClassroomID: source.ID,
		TargetClassroomID: target.ID,
		StudentsCopied:    len(roster),
	}))

	s.logger.Info("Roster copied", "source_id", source.ID, "target_id", target.ID, "students", len(roster))
	return len(roster), nil
}

func (s *classroomService) RemoveStudent(ctx context.Context, classroomID, studentID, teacherID uint) error {
	if _, err := s.repo.Classroom().GetByIDForTeacher(ctx, classroomID, teacherID); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrClassroomNotFound
		}
		return fmt.Errorf("failed to get classroom: %w", err)
	}

	enrolled, err := s.repo.Classroom().IsEnrolled(ctx, classroomID, studentID)
	if err != nil {
		return fmt.Errorf("failed to check enrollment: %w", err)
	}
	if !enrolled {
		return ErrStudentNotEnrolled
	}

	// Unenrollment only. The student record and any quiz results stay.
	if err := s.repo.Classroom().RemoveStudent(ctx, classroomID, studentID); err != nil {
		return fmt.Errorf("failed to remove student: %w", err)
	}

	s.logger.Info("Student removed from classroom", "classroom_id", classroomID, "student_id", studentID)
	return nil
}

// ===== DASHBOARD =====

func (s *classroomService) GetDashboard(ctx context.Context, teacherID uint) (*DashboardResponse, error) {
	classrooms, err := s.List(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	recent, err := s.repo.Quiz().RecentByTeacher(ctx, teacherID, recentQuizLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent quizzes: %w", err)
	}

	studentCount, err := s.repo.Classroom().CountDistinctStudents(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}

	return &DashboardResponse{
		Classrooms:    classrooms,
		RecentQuizzes: recent,
		ClassCount:    len(classrooms),
		StudentCount:  studentCount,
	}, nil
}

func (s *classroomService) publishEvent(ctx context.Context, event *events.GradingEvent) {
	if err := s.publisher.PublishGradingEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish grading event", "event_type", event.Type, "error", err)
	}
}
