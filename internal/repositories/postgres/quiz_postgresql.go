package postgres

import (
	"context"

	"github.com/gradely-app/grading-service/internal/models"
	"github.com/gradely-app/grading-service/internal/repositories"
	"gorm.io/gorm"
)

type QuizPostgreSQL struct {
	db *gorm.DB
}

func NewQuizPostgreSQL(db *gorm.DB) repositories.QuizRepository {
	return &QuizPostgreSQL{db: db}
}

func (q QuizPostgreSQL) Create(ctx context.Context, quiz *models.Quiz) error {
	return q.db.WithContext(ctx).Create(quiz).Error
}

func (q QuizPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := q.db.WithContext(ctx).
		Preload("Classroom").
		Preload("Classroom.Subject").
		First(&quiz, id).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (q QuizPostgreSQL) GetByIDForTeacher(ctx context.Context, id, teacherID uint) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := q.db.WithContext(ctx).
		Preload("Classroom").
		Preload("Classroom.Subject").
		Joins("JOIN classrooms ON classrooms.id = quizzes.classroom_id").
		Where("quizzes.id = ? AND classrooms.teacher_id = ?", id, teacherID).
		First(&quiz).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (q QuizPostgreSQL) ListByTeacher(ctx context.Context, teacherID uint) ([]*models.Quiz, error) {
	var quizzes []*models.Quiz
	if err := q.db.WithContext(ctx).
		Preload("Classroom").
		Preload("Classroom.Subject").
		Joins("JOIN classrooms ON classrooms.id = quizzes.classroom_id").
		Where("classrooms.teacher_id = ?", teacherID).
		Order("quizzes.created_at DESC").
		Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (q QuizPostgreSQL) RecentByTeacher(ctx context.Context, teacherID uint, limit int) ([]*models.Quiz, error) {
	var quizzes []*models.Quiz
	if err := q.db.WithContext(ctx).
		Preload("Classroom").
		Preload("Classroom.Subject").
		Joins("JOIN classrooms ON classrooms.id = quizzes.classroom_id").
		Where("classrooms.teacher_id = ?", teacherID).
		Order("quizzes.created_at DESC").
		Limit(limit).
		Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (q QuizPostgreSQL) CountByClassroom(ctx context.Context, classroomID uint) (int64, error) {
	var count int64
	if err := q.db.WithContext(ctx).
		Model(&models.Quiz{}).
		Where("classroom_id = ?", classroomID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (q QuizPostgreSQL) Update(ctx context.Context, quiz *models.Quiz) error {
	return q.db.WithContext(ctx).Save(quiz).Error
}

func (q QuizPostgreSQL) Delete(ctx context.Context, id uint) error {
	return q.db.WithContext(ctx).Delete(&models.Quiz{}, id).Error
}

// UpdateStats writes the whole statistics snapshot in one UPDATE so readers
// never observe a half-updated cache.
func (q QuizPostgreSQL) UpdateStats(ctx context.Context, quizID uint, stats models.QuizStats) error {
	return q.db.WithContext(ctx).
		Model(&models.Quiz{}).
		Where("id = ?", quizID).
		Updates(map[string]interface{}{
			"mean_score":      stats.MeanScore,
			"min_score":       stats.MinScore,
			"max_score":       stats.MaxScore,
			"attendees_count": stats.AttendeesCount,
		}).Error
}
