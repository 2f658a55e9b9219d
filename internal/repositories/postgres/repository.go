package postgres

import (
	"context"

	"github.com/gradely-app/grading-service/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	db         *gorm.DB
	student    repositories.StudentRepository
	classroom  repositories.ClassroomRepository
	quiz       repositories.QuizRepository
	quizResult repositories.QuizResultRepository
	subject    repositories.SubjectRepository
	user       repositories.UserRepository
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		db:         db,
		student:    NewStudentPostgreSQL(db),
		classroom:  NewClassroomPostgreSQL(db),
		quiz:       NewQuizPostgreSQL(db),
		quizResult: NewQuizResultPostgreSQL(db),
		subject:    NewSubjectPostgreSQL(db),
		user:       NewUserPostgreSQL(db),
	}
}

func (r *repository) Student() repositories.StudentRepository       { return r.student }
func (r *repository) Classroom() repositories.ClassroomRepository   { return r.classroom }
func (r *repository) Quiz() repositories.QuizRepository             { return r.quiz }
func (r *repository) QuizResult() repositories.QuizResultRepository { return r.quizResult }
func (r *repository) Subject() repositories.SubjectRepository       { return r.subject }
func (r *repository) User() repositories.UserRepository             { return r.user }

func (r *repository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
