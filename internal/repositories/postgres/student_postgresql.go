package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gradely-app/grading-service/internal/models"
	"github.com/gradely-app/grading-service/internal/repositories"
	"gorm.io/gorm"
)

type StudentPostgreSQL struct {
	db *gorm.DB
}

func NewStudentPostgreSQL(db *gorm.DB) repositories.StudentRepository {
	return &StudentPostgreSQL{db: db}
}

func (s StudentPostgreSQL) Create(ctx context.Context, student *models.Student) error {
	return s.db.WithContext(ctx).Create(student).Error
}

func (s StudentPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	var student models.Student
	if err := s.db.WithContext(ctx).First(&student, id).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (s StudentPostgreSQL) GetByCode(ctx context.Context, code string) (*models.Student, error) {
	var student models.Student
	if err := s.db.WithContext(ctx).Where("student_id = ?", code).First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (s StudentPostgreSQL) GetByName(ctx context.Context, name string) (*models.Student, error) {
	var student models.Student
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (s StudentPostgreSQL) List(ctx context.Context) ([]*models.Student, error) {
	var students []*models.Student
	if err := s.db.WithContext(ctx).Order("student_id").Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func (s StudentPostgreSQL) Update(ctx context.Context, student *models.Student) error {
	return s.db.WithContext(ctx).Save(student).Error
}

func (s StudentPostgreSQL) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.Student{}, id).Error
}

// AcquireIDAllocationLock takes a transaction-scoped advisory lock keyed on the
// year prefix. Concurrent imports for the same prefix queue up here, which keeps
// the read-max-then-create sequence from allocating duplicate codes. The lock is
// released automatically on commit or rollback.
func (s StudentPostgreSQL) AcquireIDAllocationLock(ctx context.Context, prefix string) error {
	key := fmt.Sprintf("student_id_alloc:%s", prefix)
	return s.db.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error
}

func (s StudentPostgreSQL) MaxSequenceForPrefix(ctx context.Context, prefix string) (int, error) {
	var code string
	err := s.db.WithContext(ctx).
		Model(&models.Student{}).
		Select("student_id").
		Where("student_id LIKE ?", prefix+"-%").
		Order("student_id DESC").
		Limit(1).
		Scan(&code).Error
	if err != nil {
		return 0, err
	}
	if code == "" {
		return 0, nil
	}

	parts := strings.SplitN(code, "-", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed student code %q", code)
	}
	seq, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed student code %q: %w", code, err)
	}
	return seq, nil
}
