package repositories

import (
	"context"

	"github.com/gradely-app/grading-service/internal/models"
)

// StudentRepository manages the global student table. Students are created by
// the roster importer and direct admin action only.
type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id uint) (*models.Student, error)
	// GetByCode looks a student up by the external "YY-NNNNNN" code.
	GetByCode(ctx context.Context, code string) (*models.Student, error)
	// GetByName looks a student up by exact (already normalized) name.
	GetByName(ctx context.Context, name string) (*models.Student, error)
	List(ctx context.Context) ([]*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id uint) error

	// AcquireIDAllocationLock serializes student-code allocation for one year
	// prefix. Callers must hold it for the whole read-max-then-create sequence,
	// so it is only meaningful inside WithTransaction.
	AcquireIDAllocationLock(ctx context.Context, prefix string) error
	// MaxSequenceForPrefix returns the highest allocated sequence number among
	// codes starting with "<prefix>-", or 0 when none exist.
	MaxSequenceForPrefix(ctx context.Context, prefix string) (int, error)
}

type ClassroomRepository interface {
	Create(ctx context.Context, classroom *models.Classroom) error
	GetByID(ctx context.Context, id uint) (*models.Classroom, error)
	// GetByIDForTeacher scopes the lookup to classrooms owned by the teacher.
	GetByIDForTeacher(ctx context.Context, id, teacherID uint) (*models.Classroom, error)
	// GetByIDWithStudents also loads the roster sorted by student code.
	GetByIDWithStudents(ctx context.Context, id, teacherID uint) (*models.Classroom, error)
	ListByTeacher(ctx context.Context, teacherID uint) ([]*models.Classroom, error)
	Update(ctx context.Context, classroom *models.Classroom) error
	Delete(ctx context.Context, id uint) error

	// AddStudents enrolls the given students; already-enrolled students are a no-op.
	AddStudents(ctx context.Context, classroomID uint, students []*models.Student) error
	RemoveStudent(ctx context.Context, classroomID, studentID uint) error
	IsEnrolled(ctx context.Context, classroomID, studentID uint) (bool, error)
	GetRoster(ctx context.Context, classroomID uint) ([]*models.Student, error)
	CountStudents(ctx context.Context, classroomID uint) (int64, error)
	// CountDistinctStudents counts unique students across all of a teacher's classrooms.
	CountDistinctStudents(ctx context.Context, teacherID uint) (int64, error)
}

type QuizRepository interface {
	Create(ctx context.Context, quiz *models.Quiz) error
	GetByID(ctx context.Context, id uint) (*models.Quiz, error)
	// GetByIDForTeacher scopes the lookup through classroom ownership.
	GetByIDForTeacher(ctx context.Context, id, teacherID uint) (*models.Quiz, error)
	ListByTeacher(ctx context.Context, teacherID uint) ([]*models.Quiz, error)
	RecentByTeacher(ctx context.Context, teacherID uint, limit int) ([]*models.Quiz, error)
	CountByClassroom(ctx context.Context, classroomID uint) (int64, error)
	Update(ctx context.Context, quiz *models.Quiz) error
	Delete(ctx context.Context, id uint) error

	// UpdateStats replaces the cached statistics in a single write.
	UpdateStats(ctx context.Context, quizID uint, stats models.QuizStats) error
}

type QuizResultRepository interface {
	GetByID(ctx context.Context, id uint) (*models.QuizResult, error)
	// GetByQuiz returns all results for a quiz with students preloaded.
	GetByQuiz(ctx context.Context, quizID uint) ([]*models.QuizResult, error)
	GetByQuizAndStudent(ctx context.Context, quizID, studentID uint) (*models.QuizResult, error)
	// Upsert creates the result or overwrites score and answers for an
	// existing (quiz, student) pair.
	Upsert(ctx context.Context, result *models.QuizResult) error
	Delete(ctx context.Context, id uint) error
}

type SubjectRepository interface {
	Create(ctx context.Context, subject *models.Subject) error
	GetByID(ctx context.Context, id uint) (*models.Subject, error)
	List(ctx context.Context) ([]*models.Subject, error)
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id uint) error
}

type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// Repository aggregates all entity repositories. WithTransaction runs fn
// against a repository bound to one database transaction; returning an error
// rolls everything back.
type Repository interface {
	Student() StudentRepository
	Classroom() ClassroomRepository
	Quiz() QuizRepository
	QuizResult() QuizResultRepository
	Subject() SubjectRepository
	User() UserRepository

	WithTransaction(ctx context.Context, fn func(Repository) error) error
}
