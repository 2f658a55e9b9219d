package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gradely-app/grading-service/internal/events"
	"github.com/gradely-app/grading-service/internal/models"
	"github.com/gradely-app/grading-service/internal/repositories"
	"github.com/gradely-app/grading-service/internal/utils"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RosterImportService merges a tabular file of student names into a classroom
// roster, creating new student records with auto-generated codes only for names
// not already in the global student table.
type RosterImportService interface {
	ImportRoster(ctx context.Context, classroomID, teacherID uint, file io.Reader, filename string) (*RosterImportResult, error)
}

type RosterImportResult struct {
	TotalRows int `json:"total_rows"`
	Created   int `json:"created"`
	Reused    int `json:"reused"`
	Skipped   int `json:"skipped"`
}

type rosterImportService struct {
	repo      repositories.Repository
	logger    utils.Logger
	publisher events.EventPublisher

	// Overridable for deterministic prefix tests.
	now func() time.Time
}

func NewRosterImportService(
	repo repositories.Repository,
	logger utils.Logger,
	publisher events.EventPublisher,
) RosterImportService {
	return &rosterImportService{
		repo:      repo,
		logger:    logger,
		publisher: publisher,
		now:       time.Now,
	}
}

// NormalizeStudentName is the single canonical-key function used for both
// lookup and creation: trimmed, title-cased. Two raw names that normalize
// identically are treated as the same student, which means legitimately
// distinct students sharing a name will collide. That trade-off is inherited
// from the roster format, which carries no other identity column.
// A Caser is stateful, so the caller provides one per batch.
func NormalizeStudentName(titleCase cases.Caser, raw string) string {
	return titleCase.String(strings.TrimSpace(raw))
}

func (s *rosterImportService) ImportRoster(ctx context.Context, classroomID, teacherID uint, file io.Reader, filename string) (*RosterImportResult, error) {
	s.logger.Info("Starting roster import", "classroom_id", classroomID, "teacher_id", teacherID, "filename", filename)

	names, err := s.parseRosterFile(file, filename)
	if err != nil {
		return nil, err
	}

	classroom, err := s.repo.Classroom().GetByIDForTeacher(ctx, classroomID, teacherID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrClassroomNotFound
		}
		return nil, fmt.Errorf("failed to get classroom: %w", err)
	}

	result := &RosterImportResult{TotalRows: len(names)}
	prefix := s.now().Format("06")

	// The read-max-then-create-all sequence runs inside one transaction under
	// an allocation lock, so concurrent imports cannot hand out the same code.
	// Any failure rolls the whole import back.
	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Student().AcquireIDAllocationLock(ctx, prefix); err != nil {
			return fmt.Errorf("failed to acquire id allocation lock: %w", err)
		}

		lastSeq, err := tx.Student().MaxSequenceForPrefix(ctx, prefix)
		if err != nil {
			return fmt.Errorf("failed to read max student sequence: %w", err)
		}
		currentSeq := lastSeq + 1

		resolved := make([]*models.Student, 0, len(names))
		seen := make(map[string]*models.Student, len(names))
		titleCase := cases.Title(language.Und)

		for _, raw := range names {
			name := NormalizeStudentName(titleCase, raw)
			if name == "" {
				result.Skipped++
				continue
			}
			if _, ok := seen[name]; ok {
				// Duplicate row within the same file.
				result.Reused++
				continue
			}

			student, err := tx.Student().GetByName(ctx, name)
			switch {
			case err == nil:
				result.Reused++
			case repositories.IsNotFoundError(err):
				student = &models.Student{
					StudentID: fmt.Sprintf("%s-%06d", prefix, currentSeq),
					Name:      name,
				}
				if err := tx.Student().Create(ctx, student); err != nil {
					return fmt.Errorf("failed to create student %q: %w", name, err)
				}
				// The sequence advances on creation only, never on reuse.
				currentSeq++
				result.Created++
			default:
				return fmt.Errorf("failed to look up student %q: %w", name, err)
			}

			seen[name] = student
			resolved = append(resolved, student)
		}

		return tx.Classroom().AddStudents(ctx, classroom.ID, resolved)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.NewGradingEvent(events.EventRosterImported, events.RosterImportedEvent{
		ClassroomID:     classroom.ID,
		TeacherID:       teacherID,
		StudentsCreated: result.Created,
		StudentsReused:  result.Reused,
		RowsSkipped:     result.Skipped,
	}))

	s.logger.Info("Roster import completed",
		"classroom_id", classroom.ID,
		"total_rows", result.TotalRows,
		"created", result.Created,
		"reused", result.Reused,
		"skipped", result.Skipped)

	return result, nil
}

// ===== FILE PARSING =====

// parseRosterFile dispatches on the filename extension and returns the raw
// values of the "name" column, one per data row. Rows are not normalized here.
func (s *rosterImportService) parseRosterFile(file io.Reader, filename string) ([]string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".csv":
		return s.parseCSV(file)
	case ".xlsx", ".xls":
		return s.parseExcel(file)
	default:
		return nil, NewValidationError("file", "unsupported file format", ext)
	}
}

func (s *rosterImportService) parseCSV(file io.Reader) ([]string, error) {
	csvReader := csv.NewReader(file)
	csvReader.TrimLeadingSpace = true

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	return extractNameColumn(records)
}

func (s *rosterImportService) parseExcel(file io.Reader) ([]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, NewValidationError("file", "Excel file has no sheets", nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read Excel rows: %w", err)
	}

	return extractNameColumn(rows)
}

func extractNameColumn(rows [][]string) ([]string, error) {
	if len(rows) < 2 {
		return nil, NewValidationError("file", "file must have a header row and at least one data row", len(rows))
	}

	nameIndex := -1
	for i, header := range rows[0] {
		if strings.ToLower(strings.TrimSpace(header)) == "name" {
			nameIndex = i
			break
		}
	}
	if nameIndex == -1 {
		return nil, NewValidationError("headers", "missing required column: name", "name")
	}

	names := make([]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if nameIndex < len(row) {
			names = append(names, row[nameIndex])
		} else {
			// Short row; treated as a blank name and skipped downstream.
			names = append(names, "")
		}
	}
	return names, nil
}

func (s *rosterImportService) publishEvent(ctx context.Context, event *events.GradingEvent) {
	if err := s.publisher.PublishGradingEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish grading event", "event_type", event.Type, "error", err)
	}
}
