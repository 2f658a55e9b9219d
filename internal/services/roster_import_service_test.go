package services

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gradely-app/grading-service/internal/events"
	"github.com/gradely-app/grading-service/internal/models"
	"github.com/gradely-app/grading-service/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

func newRosterServiceForTest(t *testing.T) (*rosterImportService, *MockRepository, *events.MockEventPublisher) {
	t.Helper()

	repo := NewMockRepository()
	publisher := events.NewMockEventPublisher(slog.New(slog.NewTextHandler(os.Stdout, nil)))
	service := NewRosterImportService(repo, utils.NewDevelopmentLogger(), publisher).(*rosterImportService)

	// Pin the school-year prefix.
	service.now = func() time.Time {
		return time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	}
	return service, repo, publisher
}

func expectOwnedClassroom(repo *MockRepository, classroomID, teacherID uint) {
	repo.ClassroomRepo.On("GetByIDForTeacher", mock.Anything, classroomID, teacherID).
		Return(&models.Classroom{ID: classroomID, TeacherID: teacherID}, nil)
}

func TestRosterImport_CreatesStudentsWithSequentialCodes(t *testing.T) {
	service, repo, publisher := newRosterServiceForTest(t)
	expectOwnedClassroom(repo, 3, 1)

	repo.StudentRepo.On("AcquireIDAllocationLock", mock.Anything, "26").Return(nil)
	repo.StudentRepo.On("MaxSequenceForPrefix", mock.Anything, "26").Return(0, nil)
	repo.StudentRepo.On("GetByName", mock.Anything, "Ana Cruz").Return(nil, gorm.ErrRecordNotFound)
	repo.StudentRepo.On("GetByName", mock.Anything, "Ben Lee").Return(nil, gorm.ErrRecordNotFound)

	var created []*models.Student
	repo.StudentRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Student")).
		Run(func(args mock.Arguments) {
			created = append(created, args.Get(1).(*models.Student))
		}).Return(nil)

	repo.ClassroomRepo.On("AddStudents", mock.Anything, uint(3), mock.AnythingOfType("[]*models.Student")).Return(nil)

	// Leading whitespace, lowercase and an in-file duplicate all normalize
	// away. The whitespace-only row survives the CSV reader as a record and
	// is skipped after normalization; a fully empty line would never reach
	// the service.
	file := strings.NewReader("name\n  ana cruz  \nAna Cruz\nben lee\n   \n")

	result, err := service.ImportRoster(context.Background(), 3, 1, file, "grade6.csv")
	require.NoError(t, err)

	assert.Equal(t, 4, result.TotalRows)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.Reused)
	assert.Equal(t, 1, result.Skipped)

	require.Len(t, created, 2)
	assert.Equal(t, "Ana Cruz", created[0].Name)
	assert.Equal(t, "26-000001", created[0].StudentID)
	assert.Equal(t, "Ben Lee", created[1].Name)
	assert.Equal(t, "26-000002", created[1].StudentID)

	published := publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventRosterImported, published[0].Type)
}

func TestRosterImport_ReuseDoesNotConsumeSequence(t *testing.T) {
	service, repo, _ := newRosterServiceForTest(t)
	expectOwnedClassroom(repo, 3, 1)

	existing := &models.Student{ID: 9, StudentID: "25-000017", Name: "Ana Cruz"}

	repo.StudentRepo.On("AcquireIDAllocationLock", mock.Anything, "26").Return(nil)
	repo.StudentRepo.On("MaxSequenceForPrefix", mock.Anything, "26").Return(41, nil)
	repo.StudentRepo.On("GetByName", mock.Anything, "Ana Cruz").Return(existing, nil)
	repo.StudentRepo.On("GetByName", mock.Anything, "Ben Lee").Return(nil, gorm.ErrRecordNotFound)

	var created []*models.Student
	repo.StudentRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Student")).
		Run(func(args mock.Arguments) {
			created = append(created, args.Get(1).(*models.Student))
		}).Return(nil)

	repo.ClassroomRepo.On("AddStudents", mock.Anything, uint(3), mock.MatchedBy(func(students []*models.Student) bool {
		return len(students) == 2
	})).Return(nil)

	file := strings.NewReader("name\nAna Cruz\nBen Lee\n")

	result, err := service.ImportRoster(context.Background(), 3, 1, file, "roster.csv")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Reused)

	// The new student picks up right after the existing maximum.
	require.Len(t, created, 1)
	assert.Equal(t, "26-000042", created[0].StudentID)
}

func TestRosterImport_ExcelFile(t *testing.T) {
	service, repo, _ := newRosterServiceForTest(t)
	expectOwnedClassroom(repo, 3, 1)

	repo.StudentRepo.On("AcquireIDAllocationLock", mock.Anything, "26").Return(nil)
	repo.StudentRepo.On("MaxSequenceForPrefix", mock.Anything, "26").Return(0, nil)
	repo.StudentRepo.On("GetByName", mock.Anything, "Mia Chen").Return(nil, gorm.ErrRecordNotFound)
	repo.StudentRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Student")).Return(nil)
	repo.ClassroomRepo.On("AddStudents", mock.Anything, uint(3), mock.Anything).Return(nil)

	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "name"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "mia chen"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	result, err := service.ImportRoster(context.Background(), 3, 1, bytes.NewReader(buf.Bytes()), "roster.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
}

func TestRosterImport_RejectsUnsupportedExtension(t *testing.T) {
	service, repo, _ := newRosterServiceForTest(t)

	_, err := service.ImportRoster(context.Background(), 3, 1, strings.NewReader("name\nAna\n"), "roster.pdf")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	repo.ClassroomRepo.AssertNotCalled(t, "GetByIDForTeacher", mock.Anything, mock.Anything, mock.Anything)
}

func TestRosterImport_RequiresNameColumn(t *testing.T) {
	service, _, _ := newRosterServiceForTest(t)

	file := strings.NewReader("first,last\nAna,Cruz\n")
	_, err := service.ImportRoster(context.Background(), 3, 1, file, "roster.csv")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestRosterImport_RequiresDataRows(t *testing.T) {
	service, _, _ := newRosterServiceForTest(t)

	_, err := service.ImportRoster(context.Background(), 3, 1, strings.NewReader("name\n"), "roster.csv")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestRosterImport_UnownedClassroom(t *testing.T) {
	service, repo, _ := newRosterServiceForTest(t)

	repo.ClassroomRepo.On("GetByIDForTeacher", mock.Anything, uint(3), uint(2)).
		Return(nil, gorm.ErrRecordNotFound)

	_, err := service.ImportRoster(context.Background(), 3, 2, strings.NewReader("name\nAna Cruz\n"), "roster.csv")
	assert.ErrorIs(t, err, ErrClassroomNotFound)
}

func TestNormalizeStudentName(t *testing.T) {
	titleCase := cases.Title(language.Und)

	inputs := map[string]string{
		"  ana cruz  ":    "Ana Cruz",
		"BEN LEE":         "Ben Lee",
		"maria dela cruz": "Maria Dela Cruz",
		"":                "",
		"   ":             "",
	}
	for input, want := range inputs {
		assert.Equal(t, want, NormalizeStudentName(titleCase, input), "input %q", input)
	}
}
