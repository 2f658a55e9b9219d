package postgres

import (
	"context"

	"github.com/gradely-app/grading-service/internal/models"
	"github.com/gradely-app/grading-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuizResultPostgreSQL struct {
	db *gorm.DB
}

func NewQuizResultPostgreSQL(db *gorm.DB) repositories.QuizResultRepository {
	return &QuizResultPostgreSQL{db: db}
}

func (r QuizResultPostgreSQL) GetByID(ctx context.Context, id uint) (*models.QuizResult, error) {
	var result models.QuizResult
	if err := r.db.WithContext(ctx).Preload("Student").First(&result, id).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r QuizResultPostgreSQL) GetByQuiz(ctx context.Context, quizID uint) ([]*models.QuizResult, error) {
	var results []*models.QuizResult
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Where("quiz_id = ?", quizID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r QuizResultPostgreSQL) GetByQuizAndStudent(ctx context.Context, quizID, studentID uint) (*models.QuizResult, error) {
	var result models.QuizResult
	if err := r.db.WithContext(ctx).
		Where("quiz_id = ? AND student_id = ?", quizID, studentID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

// Upsert relies on the unique (quiz_id, student_id) index: a conflicting save
// overwrites score and answers instead of inserting a duplicate row.
func (r QuizResultPostgreSQL) Upsert(ctx context.Context, result *models.QuizResult) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "quiz_id"}, {Name: "student_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"score_obtained", "student_answers", "date_taken"}),
		}).
		Create(result).Error
}

func (r QuizResultPostgreSQL) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.QuizResult{}, id).Error
}
