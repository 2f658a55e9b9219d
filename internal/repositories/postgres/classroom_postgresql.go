package postgres

import (
	"context"

	"github.com/gradely-app/grading-service/internal/models"
	"github.com/gradely-app/grading-service/internal/repositories"
	"gorm.io/gorm"
)

type ClassroomPostgreSQL struct {
	db *gorm.DB
}

func NewClassroomPostgreSQL(db *gorm.DB) repositories.ClassroomRepository {
	return &ClassroomPostgreSQL{db: db}
}

func (c ClassroomPostgreSQL) Create(ctx context.Context, classroom *models.Classroom) error {
	return c.db.WithContext(ctx).Create(classroom).Error
}

func (c ClassroomPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Classroom, error) {
	var classroom models.Classroom
	if err := c.db.WithContext(ctx).Preload("Subject").First(&classroom, id).Error; err != nil {
		return nil, err
	}
	return &classroom, nil
}

func (c ClassroomPostgreSQL) GetByIDForTeacher(ctx context.Context, id, teacherID uint) (*models.Classroom, error) {
	var classroom models.Classroom
	if err := c.db.WithContext(ctx).
		Preload("Subject").
		Where("id = ? AND teacher_id = ?", id, teacherID).
		First(&classroom).Error; err != nil {
		return nil, err
	}
	return &classroom, nil
}

func (c ClassroomPostgreSQL) GetByIDWithStudents(ctx context.Context, id, teacherID uint) (*models.Classroom, error) {
	var classroom models.Classroom
	if err := c.db.WithContext(ctx).
		Preload("Subject").
		Preload("Students", func(db *gorm.DB) *gorm.DB {
			return db.Order("students.student_id")
		}).
		Where("id = ? AND teacher_id = ?", id, teacherID).
		First(&classroom).Error; err != nil {
		return nil, err
	}
	classroom.StudentCount = len(classroom.Students)
	return &classroom, nil
}

func (c ClassroomPostgreSQL) ListByTeacher(ctx context.Context, teacherID uint) ([]*models.Classroom, error) {
	var classrooms []*models.Classroom
	if err := c.db.WithContext(ctx).
		Preload("Subject").
		Where("teacher_id = ?", teacherID).
		Order("created_at DESC").
		Find(&classrooms).Error; err != nil {
		return nil, err
	}

	for _, classroom := range classrooms {
		count, err := c.CountStudents(ctx, classroom.ID)
		if err != nil {
			return nil, err
		}
		classroom.StudentCount = int(count)
	}
	return classrooms, nil
}

func (c ClassroomPostgreSQL) Update(ctx context.Context, classroom *models.Classroom) error {
	return c.db.WithContext(ctx).Save(classroom).Error
}

func (c ClassroomPostgreSQL) Delete(ctx context.Context, id uint) error {
	return c.db.WithContext(ctx).Delete(&models.Classroom{}, id).Error
}

func (c ClassroomPostgreSQL) AddStudents(ctx context.Context, classroomID uint, students []*models.Student) error {
	if len(students) == 0 {
		return nil
	}
	classroom := models.Classroom{ID: classroomID}
	return c.db.WithContext(ctx).Model(&classroom).Association("Students").Append(students)
}

func (c ClassroomPostgreSQL) RemoveStudent(ctx context.Context, classroomID, studentID uint) error {
	classroom := models.Classroom{ID: classroomID}
	student := models.Student{ID: studentID}
	return c.db.WithContext(ctx).Model(&classroom).Association("Students").Delete(&student)
}

func (c ClassroomPostgreSQL) IsEnrolled(ctx context.Context, classroomID, studentID uint) (bool, error) {
	var count int64
	if err := c.db.WithContext(ctx).
		Table("classroom_students").
		Where("classroom_id = ? AND student_id = ?", classroomID, studentID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (c ClassroomPostgreSQL) GetRoster(ctx context.Context, classroomID uint) ([]*models.Student, error) {
	var students []*models.Student
	if err := c.db.WithContext(ctx).
		Joins("JOIN classroom_students cs ON cs.student_id = students.id").
		Where("cs.classroom_id = ?", classroomID).
		Order("students.name").
		Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func (c ClassroomPostgreSQL) CountStudents(ctx context.Context, classroomID uint) (int64, error) {
	var count int64
	if err := c.db.WithContext(ctx).
		Table("classroom_students").
		Where("classroom_id = ?", classroomID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (c ClassroomPostgreSQL) CountDistinctStudents(ctx context.Context, teacherID uint) (int64, error) {
	var count int64
	if err := c.db.WithContext(ctx).
		Table("classroom_students cs").
		Joins("JOIN classrooms c ON c.id = cs.classroom_id").
		Where("c.teacher_id = ? AND c.deleted_at IS NULL", teacherID).
		Distinct("cs.student_id").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
