package services

import (
	"github.com/gradely-app/grading-service/internal/cache"
	"github.com/gradely-app/grading-service/internal/events"
	"github.com/gradely-app/grading-service/internal/repositories"
	"github.com/gradely-app/grading-service/internal/utils"
)

// ServiceManager bundles all services for handler wiring.
type ServiceManager interface {
	Classroom() ClassroomService
	Quiz() QuizService
	RosterImport() RosterImportService
	Subject() SubjectService
	Student() StudentService
}

type serviceManager struct {
	classroom    ClassroomService
	quiz         QuizService
	rosterImport RosterImportService
	subject      SubjectService
	student      StudentService
}

func NewServiceManager(
	repo repositories.Repository,
	logger utils.Logger,
	validator *utils.Validator,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
) ServiceManager {
	return &serviceManager{
		classroom:    NewClassroomService(repo, logger, validator, publisher),
		quiz:         NewQuizService(repo, logger, validator, cacheService, publisher),
		rosterImport: NewRosterImportService(repo, logger, publisher),
		subject:      NewSubjectService(repo, logger, validator),
		student:      NewStudentService(repo, logger),
	}
}

func (m *serviceManager) Classroom() ClassroomService       { return m.classroom }
func (m *serviceManager) Quiz() QuizService                 { return m.quiz }
func (m *serviceManager) RosterImport() RosterImportService { return m.rosterImport }
func (m *serviceManager) Subject() SubjectService           { return m.subject }
func (m *serviceManager) Student() StudentService           { return m.student }
