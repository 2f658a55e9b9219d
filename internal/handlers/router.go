package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/gradely-app/grading-service/internal/services"
	"github.com/gradely-app/grading-service/internal/utils"
)

type HandlerManager struct {
	classroomHandler *ClassroomHandler
	quizHandler      *QuizHandler
	subjectHandler   *SubjectHandler
	studentHandler   *StudentHandler
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		classroomHandler: NewClassroomHandler(serviceManager.Classroom(), serviceManager.RosterImport(), logger),
		quizHandler:      NewQuizHandler(serviceManager.Quiz(), logger),
		subjectHandler:   NewSubjectHandler(serviceManager.Subject(), logger),
		studentHandler:   NewStudentHandler(serviceManager.Student(), logger),
	}
}

// SetupRoutes sets up all API routes. authMiddleware guards everything under
// /api/v1; pass nil to mount the API unauthenticated (tests, local tooling).
func (hm *HandlerManager) SetupRoutes(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "grading-service",
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	if authMiddleware != nil {
		v1.Use(authMiddleware)
	}
	{
		// Classroom routes
		classrooms := v1.Group("/classrooms")
		{
			classrooms.POST("", hm.classroomHandler.CreateClassroom)
			classrooms.GET("", hm.classroomHandler.ListClassrooms)
			classrooms.GET("/:id", hm.classroomHandler.GetClassroom)
			classrooms.PUT("/:id", hm.classroomHandler.UpdateClassroom)
			classrooms.DELETE("/:id", hm.classroomHandler.DeleteClassroom)

			// Roster management
			classrooms.POST("/:id/upload-students", hm.classroomHandler.UploadStudents)
			classrooms.POST("/:id/copy-list", hm.classroomHandler.CopyList)
			classrooms.POST("/:id/remove-student", hm.classroomHandler.RemoveStudent)
		}

		// Quiz routes
		quizzes := v1.Group("/quizzes")
		{
			quizzes.POST("", hm.quizHandler.CreateQuiz)
			quizzes.GET("", hm.quizHandler.ListQuizzes)
			quizzes.GET("/:id", hm.quizHandler.GetQuiz)
			quizzes.PUT("/:id", hm.quizHandler.UpdateQuiz)
			quizzes.DELETE("/:id", hm.quizHandler.DeleteQuiz)

			// Result management
			quizzes.POST("/:id/results", hm.quizHandler.SaveResults)
			quizzes.DELETE("/:id/results/:result_id", hm.quizHandler.DeleteResult)
		}

		// Subject routes
		subjects := v1.Group("/subjects")
		{
			subjects.POST("", hm.subjectHandler.CreateSubject)
			subjects.GET("", hm.subjectHandler.ListSubjects)
			subjects.GET("/:id", hm.subjectHandler.GetSubject)
			subjects.PUT("/:id", hm.subjectHandler.UpdateSubject)
			subjects.DELETE("/:id", hm.subjectHandler.DeleteSubject)
		}

		// Student routes
		students := v1.Group("/students")
		{
			students.GET("", hm.studentHandler.ListStudents)
			students.GET("/:id", hm.studentHandler.GetStudent)
		}

		// Teacher dashboard
		v1.GET("/dashboard", hm.classroomHandler.GetDashboard)
	}
}
