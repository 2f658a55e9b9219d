package services

import (
	"context"
	"time"

	"github.com/gradely-app/grading-service/internal/models"
	"github.com/gradely-app/grading-service/internal/repositories"
	"github.com/stretchr/testify/mock"
)

// ===== REPOSITORY MOCKS =====

type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) Create(ctx context.Context, student *models.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockStudentRepository) GetByCode(ctx context.Context, code string) (*models.Student, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockStudentRepository) GetByName(ctx context.Context, name string) (*models.Student, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockStudentRepository) List(ctx context.Context) ([]*models.Student, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Student), args.Error(1)
}

func (m *MockStudentRepository) Update(ctx context.Context, student *models.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStudentRepository) AcquireIDAllocationLock(ctx context.Context, prefix string) error {
	args := m.Called(ctx, prefix)
	return args.Error(0)
}

func (m *MockStudentRepository) MaxSequenceForPrefix(ctx context.Context, prefix string) (int, error) {
	args := m.Called(ctx, prefix)
	return args.Int(0), args.Error(1)
}

type MockClassroomRepository struct {
	mock.Mock
}

func (m *MockClassroomRepository) Create(ctx context.Context, classroom *models.Classroom) error {
	args := m.Called(ctx, classroom)
	return args.Error(0)
}

func (m *MockClassroomRepository) GetByID(ctx context.Context, id uint) (*models.Classroom, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Classroom), args.Error(1)
}

func (m *MockClassroomRepository) GetByIDForTeacher(ctx context.Context, id, teacherID uint) (*models.Classroom, error) {
	args := m.Called(ctx, id, teacherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Classroom), args.Error(1)
}

func (m *MockClassroomRepository) GetByIDWithStudents(ctx context.Context, id, teacherID uint) (*models.Classroom, error) {
	args := m.Called(ctx, id, teacherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Classroom), args.Error(1)
}

func (m *MockClassroomRepository) ListByTeacher(ctx context.Context, teacherID uint) ([]*models.Classroom, error) {
	args := m.Called(ctx, teacherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Classroom), args.Error(1)
}

func (m *MockClassroomRepository) Update(ctx context.Context, classroom *models.Classroom) error {
	args := m.Called(ctx, classroom)
	return args.Error(0)
}

func (m *MockClassroomRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockClassroomRepository) AddStudents(ctx context.Context, classroomID uint, students []*models.Student) error {
	args := m.Called(ctx, classroomID, students)
	return args.Error(0)
}

func (m *MockClassroomRepository) RemoveStudent(ctx context.Context, classroomID, studentID uint) error {
	args := m.Called(ctx, classroomID, studentID)
	return args.Error(0)
}

func (m *MockClassroomRepository) IsEnrolled(ctx context.Context, classroomID, studentID uint) (bool, error) {
	args := m.Called(ctx, classroomID, studentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockClassroomRepository) GetRoster(ctx context.Context, classroomID uint) ([]*models.Student, error) {
	args := m.Called(ctx, classroomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Student), args.Error(1)
}

func (m *MockClassroomRepository) CountStudents(ctx context.Context, classroomID uint) (int64, error) {
	args := m.Called(ctx, classroomID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClassroomRepository) CountDistinctStudents(ctx context.Context, teacherID uint) (int64, error) {
	args := m.Called(ctx, teacherID)
	return args.Get(0).(int64), args.Error(1)
}

type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) Create(ctx context.Context, quiz *models.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) GetByID(ctx context.Context, id uint) (*models.Quiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quiz), args.Error(1)
}

func (m *MockQuizRepository) GetByIDForTeacher(ctx context.Context, id, teacherID uint) (*models.Quiz, error) {
	args := m.Called(ctx, id, teacherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quiz), args.Error(1)
}

func (m *MockQuizRepository) ListByTeacher(ctx context.Context, teacherID uint) ([]*models.Quiz, error) {
	args := m.Called(ctx, teacherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Quiz), args.Error(1)
}

func (m *MockQuizRepository) RecentByTeacher(ctx context.Context, teacherID uint, limit int) ([]*models.Quiz, error) {
	args := m.Called(ctx, teacherID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Quiz), args.Error(1)
}

func (m *MockQuizRepository) CountByClassroom(ctx context.Context, classroomID uint) (int64, error) {
	args := m.Called(ctx, classroomID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuizRepository) Update(ctx context.Context, quiz *models.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuizRepository) UpdateStats(ctx context.Context, quizID uint, stats models.QuizStats) error {
	args := m.Called(ctx, quizID, stats)
	return args.Error(0)
}

type MockQuizResultRepository struct {
	mock.Mock
}

func (m *MockQuizResultRepository) GetByID(ctx context.Context, id uint) (*models.QuizResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuizResult), args.Error(1)
}

func (m *MockQuizResultRepository) GetByQuiz(ctx context.Context, quizID uint) ([]*models.QuizResult, error) {
	args := m.Called(ctx, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.QuizResult), args.Error(1)
}

func (m *MockQuizResultRepository) GetByQuizAndStudent(ctx context.Context, quizID, studentID uint) (*models.QuizResult, error) {
	args := m.Called(ctx, quizID, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuizResult), args.Error(1)
}

func (m *MockQuizResultRepository) Upsert(ctx context.Context, result *models.QuizResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockQuizResultRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockSubjectRepository struct {
	mock.Mock
}

func (m *MockSubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	args := m.Called(ctx, subject)
	return args.Error(0)
}

func (m *MockSubjectRepository) GetByID(ctx context.Context, id uint) (*models.Subject, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subject), args.Error(1)
}

func (m *MockSubjectRepository) List(ctx context.Context) ([]*models.Subject, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subject), args.Error(1)
}

func (m *MockSubjectRepository) Update(ctx context.Context, subject *models.Subject) error {
	args := m.Called(ctx, subject)
	return args.Error(0)
}

func (m *MockSubjectRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockRepository aggregates the entity mocks. WithTransaction runs fn against
// the same mock set, which is enough to test transactional call sequences.
type MockRepository struct {
	StudentRepo    *MockStudentRepository
	ClassroomRepo  *MockClassroomRepository
	QuizRepo       *MockQuizRepository
	QuizResultRepo *MockQuizResultRepository
	SubjectRepo    *MockSubjectRepository
	UserRepo       *MockUserRepository
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		StudentRepo:    &MockStudentRepository{},
		ClassroomRepo:  &MockClassroomRepository{},
		QuizRepo:       &MockQuizRepository{},
		QuizResultRepo: &MockQuizResultRepository{},
		SubjectRepo:    &MockSubjectRepository{},
		UserRepo:       &MockUserRepository{},
	}
}

func (m *MockRepository) Student() repositories.StudentRepository       { return m.StudentRepo }
func (m *MockRepository) Classroom() repositories.ClassroomRepository   { return m.ClassroomRepo }
func (m *MockRepository) Quiz() repositories.QuizRepository             { return m.QuizRepo }
func (m *MockRepository) QuizResult() repositories.QuizResultRepository { return m.QuizResultRepo }
func (m *MockRepository) Subject() repositories.SubjectRepository       { return m.SubjectRepo }
func (m *MockRepository) User() repositories.UserRepository             { return m.UserRepo }

func (m *MockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

// ===== CACHE MOCK =====

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheService) Get(ctx context.Context, key string, dest interface{}) error {
	args := m.Called(ctx, key, dest)
	return args.Error(0)
}

func (m *MockCacheService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheService) DeletePattern(ctx context.Context, pattern string) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}
