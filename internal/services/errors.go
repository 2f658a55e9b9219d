package services

import (
	"errors"

	apperrors "github.com/gradely-app/grading-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrForbidden        = errors.New("forbidden - insufficient permissions")
	ErrValidationFailed = errors.New("validation failed")

	// Classroom specific errors
	ErrClassroomNotFound   = errors.New("classroom not found")
	ErrClassroomNotOwned   = errors.New("classroom does not belong to this teacher")
	ErrSourceRosterEmpty   = errors.New("source classroom has no students")
	ErrStudentNotEnrolled  = errors.New("student is not enrolled in this class")
	ErrClassroomHasQuizzes = errors.New("classroom cannot be deleted - has existing quizzes")

	// Student specific errors
	ErrStudentNotFound = errors.New("student not found")

	// Subject specific errors
	ErrSubjectNotFound      = errors.New("subject not found")
	ErrSubjectDuplicateCode = errors.New("subject code already exists")

	// Quiz specific errors
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrQuizResultNotFound = errors.New("quiz result not found")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// ===== ERROR HELPERS =====

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// toValidationErrors wraps raw validator output in the shared type so handlers
// can map it to a 400 with field details.
func toValidationErrors(err error) error {
	return apperrors.ToValidationErrors(err)
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrClassroomNotFound) ||
		errors.Is(err, ErrStudentNotFound) ||
		errors.Is(err, ErrSubjectNotFound) ||
		errors.Is(err, ErrQuizNotFound) ||
		errors.Is(err, ErrQuizResultNotFound)
}

// IsForbidden checks if error represents a permission failure
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden) || errors.Is(err, ErrClassroomNotOwned)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve apperrors.ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single *apperrors.ValidationError
	return errors.As(err, &single)
}

// IsConflict checks if error represents a resource conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrSubjectDuplicateCode) ||
		errors.Is(err, ErrClassroomHasQuizzes)
}
