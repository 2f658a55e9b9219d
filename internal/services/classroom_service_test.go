package services

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/gradely-app/grading-service/internal/events"
	"github.com/gradely-app/grading-service/internal/models"
	"github.com/gradely-app/grading-service/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newClassroomServiceForTest(t *testing.T) (ClassroomService, *MockRepository, *events.MockEventPublisher) {
	t.Helper()

	repo := NewMockRepository()
	publisher := events.NewMockEventPublisher(slog.New(slog.NewTextHandler(os.Stdout, nil)))
	service := NewClassroomService(repo, utils.NewDevelopmentLogger(), utils.NewValidator(), publisher)
	return service, repo, publisher
}

func TestClassroomService_Create_ValidatesSchoolYear(t *testing.T) {
	service, _, _ := newClassroomServiceForTest(t)

	_, err := service.Create(context.Background(), &CreateClassroomRequest{
		SubjectID:   1,
		SectionName: "Section A",
		SchoolYear:  "2025/2026",
	}, 1)

	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestClassroomService_CopyRoster(t *testing.T) {
	service, repo, publisher := newClassroomServiceForTest(t)

	repo.ClassroomRepo.On("GetByIDForTeacher", mock.Anything, uint(2), uint(1)).
		Return(&models.Classroom{ID: 2, TeacherID: 1}, nil)
	repo.ClassroomRepo.On("GetByIDForTeacher", mock.Anything, uint(1), uint(1)).
		Return(&models.Classroom{ID: 1, TeacherID: 1}, nil)

	roster := []*models.Student{
		{ID: 11, StudentID: "26-000001", Name: "Ana Cruz"},
		{ID: 12, StudentID: "26-000002", Name: "Ben Lee"},
	}
	repo.ClassroomRepo.On("GetRoster", mock.Anything, uint(1)).Return(roster, nil)
	repo.ClassroomRepo.On("AddStudents", mock.Anything, uint(2), roster).Return(nil)

	copied, err := service.CopyRoster(context.Background(), 2, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, copied)

	published := publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventRosterCopied, published[0].Type)
}

func TestClassroomService_CopyRoster_EmptySource(t *testing.T) {
	service, repo, _ := newClassroomServiceForTest(t)

	repo.ClassroomRepo.On("GetByIDForTeacher", mock.Anything, uint(2), uint(1)).
		Return(&models.Classroom{ID: 2, TeacherID: 1}, nil)
	repo.ClassroomRepo.On("GetByIDForTeacher", mock.Anything, uint(1), uint(1)).
		Return(&models.Classroom{ID: 1, TeacherID: 1}, nil)
	repo.ClassroomRepo.On("GetRoster", mock.Anything, uint(1)).Return([]*models.Student{}, nil)

	_, err := service.CopyRoster(context.Background(), 2, 1, 1)
	assert.ErrorIs(t, err, ErrSourceRosterEmpty)
	repo.ClassroomRepo.AssertNotCalled(t, "AddStudents", mock.Anything, mock.Anything, mock.Anything)
}

func TestClassroomService_CopyRoster_UnownedSource(t *testing.T) {
	service, repo, _ := newClassroomServiceForTest(t)

	repo.ClassroomRepo.On("GetByIDForTeacher", mock.Anything, uint(2), uint(1)).
		Return(&models.Classroom{ID: 2, TeacherID: 1}, nil)
	repo.ClassroomRepo.On("GetByIDForTeacher", mock.Anything, uint(9), uint(1)).
		Return(nil, gorm.ErrRecordNotFound)

	_, err := service.CopyRoster(context.Background(), 2, 9, 1)
	assert.ErrorIs(t, err, ErrClassroomNotFound)
}

func TestClassroomService_Delete_BlockedByExistingQuizzes(t *testing.T) {
	service, repo, _ := newClassroomServiceForTest(t)

	repo.ClassroomRepo.On("GetByIDForTeacher", mock.Anything, uint(2), uint(1)).
		Return(&models.Classroom{ID: 2, TeacherID: 1}, nil)
	repo.QuizRepo.On("CountByClassroom", mock.Anything, uint(2)).Return(int64(3), nil)

	err := service.Delete(context.Background(), 2, 1)
	assert.ErrorIs(t, err, ErrClassroomHasQuizzes)
	assert.True(t, IsConflict(err))
	repo.ClassroomRepo.AssertNotCalled(t, "Delete", mock.Anything, uint(2))
}

func TestClassroomService_Delete(t *testing.T) {
	service, repo, _ := newClassroomServiceForTest(t)

	repo.ClassroomRepo.On("GetByIDForTeacher", mock.Anything, uint(2), uint(1)).
		Return(&models.Classroom{ID: 2, TeacherID: 1}, nil)
	repo.QuizRepo.On("CountByClassroom", mock.Anything, uint(2)).Return(int64(0), nil)
	repo.ClassroomRepo.On("Delete", mock.Anything, uint(2)).Return(nil)

	err := service.Delete(context.Background(), 2, 1)
	assert.NoError(t, err)
	repo.ClassroomRepo.AssertExpectations(t)
}

func TestClassroomService_RemoveStudent_NotEnrolled(t *testing.T) {
	service, repo, _ := newClassroomServiceForTest(t)

	repo.ClassroomRepo.On("GetByIDForTeacher", mock.Anything, uint(2), uint(1)).
		Return(&models.Classroom{ID: 2, TeacherID: 1}, nil)
	repo.ClassroomRepo.On("IsEnrolled", mock.Anything, uint(2), uint(11)).Return(false, nil)

	err := service.RemoveStudent(context.Background(), 2, 11, 1)
	assert.ErrorIs(t, err, ErrStudentNotEnrolled)
	repo.ClassroomRepo.AssertNotCalled(t, "RemoveStudent", mock.Anything, mock.Anything, mock.Anything)
}

func TestClassroomService_RemoveStudent(t *testing.T) {
	service, repo, _ := newClassroomServiceForTest(t)

	repo.ClassroomRepo.On("GetByIDForTeacher", mock.Anything, uint(2), uint(1)).
		Return(&models.Classroom{ID: 2, TeacherID: 1}, nil)
	repo.ClassroomRepo.On("IsEnrolled", mock.Anything, uint(2), uint(11)).Return(true, nil)
	repo.ClassroomRepo.On("RemoveStudent", mock.Anything, uint(2), uint(11)).Return(nil)

	err := service.RemoveStudent(context.Background(), 2, 11, 1)
	assert.NoError(t, err)
	repo.ClassroomRepo.AssertExpectations(t)
}

func TestClassroomService_GetDashboard(t *testing.T) {
	service, repo, _ := newClassroomServiceForTest(t)

	classrooms := []*models.Classroom{
		{ID: 1, TeacherID: 1, SectionName: "Section A"},
		{ID: 2, TeacherID: 1, SectionName: "Section B"},
	}
	repo.ClassroomRepo.On("ListByTeacher", mock.Anything, uint(1)).Return(classrooms, nil)
	repo.ClassroomRepo.On("CountStudents", mock.Anything, uint(1)).Return(int64(30), nil)
	repo.ClassroomRepo.On("CountStudents", mock.Anything, uint(2)).Return(int64(25), nil)
	repo.QuizRepo.On("RecentByTeacher", mock.Anything, uint(1), 5).
		Return([]*models.Quiz{{ID: 10, Title: "Latest"}}, nil)
	repo.ClassroomRepo.On("CountDistinctStudents", mock.Anything, uint(1)).Return(int64(48), nil)

	dashboard, err := service.GetDashboard(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 2, dashboard.ClassCount)
	assert.Equal(t, int64(48), dashboard.StudentCount)
	require.Len(t, dashboard.RecentQuizzes, 1)
	assert.Equal(t, 30, dashboard.Classrooms[0].StudentCount)
	assert.Equal(t, 25, dashboard.Classrooms[1].StudentCount)
}
