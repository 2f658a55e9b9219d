package services

import (
	"context"
	"fmt"

	"github.com/gradely-app/grading-service/internal/models"
	"github.com/gradely-app/grading-service/internal/repositories"
	"github.com/gradely-app/grading-service/internal/utils"
)

// StudentService is a read surface over the global student table. Creation
// happens through the roster importer.
type StudentService interface {
	GetByID(ctx context.Context, id uint) (*models.Student, error)
	GetByCode(ctx context.Context, code string) (*models.Student, error)
	List(ctx context.Context) ([]*models.Student, error)
}

type studentService struct {
	repo   repositories.Repository
	logger utils.Logger
}

func NewStudentService(repo repositories.Repository, logger utils.Logger) StudentService {
	return &studentService{repo: repo, logger: logger}
}

func (s *studentService) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	student, err := s.repo.Student().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return student, nil
}

func (s *studentService) GetByCode(ctx context.Context, code string) (*models.Student, error) {
	student, err := s.repo.Student().GetByCode(ctx, code)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return student, nil
}

func (s *studentService) List(ctx context.Context) ([]*models.Student, error) {
	students, err := s.repo.Student().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}
