package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/gradely-app/grading-service/internal/models"
	"github.com/gradely-app/grading-service/internal/repositories"
	"github.com/gradely-app/grading-service/internal/utils"
)

type SubjectService interface {
	Create(ctx context.Context, req *CreateSubjectRequest) (*models.Subject, error)
	GetByID(ctx context.Context, id uint) (*models.Subject, error)
	List(ctx context.Context) ([]*models.Subject, error)
	Update(ctx context.Context, id uint, req *UpdateSubjectRequest) (*models.Subject, error)
	Delete(ctx context.Context, id uint) error
}

type subjectService struct {
	repo      repositories.Repository
	logger    utils.Logger
	validator *utils.Validator
}

func NewSubjectService(repo repositories.Repository, logger utils.Logger, validator *utils.Validator) SubjectService {
	return &subjectService{repo: repo, logger: logger, validator: validator}
}

type CreateSubjectRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Code        string  `json:"code" validate:"required,max=20"`
	Description *string `json:"description"`
	GradeLevel  int     `json:"grade_level" validate:"grade_level"`
}

type UpdateSubjectRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description"`
	GradeLevel  *int    `json:"grade_level" validate:"omitempty,grade_level"`
}

func (s *subjectService) Create(ctx context.Context, req *CreateSubjectRequest) (*models.Subject, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, toValidationErrors(err)
	}

	subject := &models.Subject{
		Name:        req.Name,
		Code:        strings.ToUpper(strings.TrimSpace(req.Code)),
		Description: req.Description,
		GradeLevel:  req.GradeLevel,
	}
	if err := s.repo.Subject().Create(ctx, subject); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrSubjectDuplicateCode
		}
		return nil, fmt.Errorf("failed to create subject: %w", err)
	}

	s.logger.Info("Subject created", "subject_id", subject.ID, "code", subject.Code)
	return subject, nil
}

func (s *subjectService) GetByID(ctx context.Context, id uint) (*models.Subject, error) {
	subject, err := s.repo.Subject().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSubjectNotFound
		}
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}
	return subject, nil
}

func (s *subjectService) List(ctx context.Context) ([]*models.Subject, error) {
	subjects, err := s.repo.Subject().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	return subjects, nil
}

func (s *subjectService) Update(ctx context.Context, id uint, req *UpdateSubjectRequest) (*models.Subject, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, toValidationErrors(err)
	}

	subject, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		subject.Name = *req.Name
	}
	if req.Description != nil {
		subject.Description = req.Description
	}
	if req.GradeLevel != nil {
		subject.GradeLevel = *req.GradeLevel
	}

	if err := s.repo.Subject().Update(ctx, subject); err != nil {
		return nil, fmt.Errorf("failed to update subject: %w", err)
	}
	return subject, nil
}

func (s *subjectService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Subject().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete subject: %w", err)
	}
	return nil
}

// isDuplicateKeyError matches the unique-violation text surfaced by the
// postgres driver.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "SQLSTATE 23505")
}
