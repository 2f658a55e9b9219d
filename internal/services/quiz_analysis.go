package services

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/gradely-app/grading-service/internal/models"
)

// QuestionStat is one row of the per-question item analysis.
type QuestionStat struct {
	Question         string  `json:"question"`
	CorrectCount     int     `json:"correct_count"`
	TotalRespondents int     `json:"total_respondents"`
	Percentage       float64 `json:"percentage"`
}

// MergedResult is one row of the roster-aligned result view. ID is the stored
// result row id for students who took the quiz, or the synthesized string
// "temp-<student id>" for enrolled students with no result yet.
type MergedResult struct {
	ID            any        `json:"id"`
	StudentName   string     `json:"student_name"`
	StudentCode   string     `json:"student_id"`
	ScoreObtained *float64   `json:"score_obtained"`
	DateTaken     *time.Time `json:"date_taken"`
}

// ComputeStatistics derives the denormalized quiz statistics from the live
// result set. An empty set yields all zeros.
func ComputeStatistics(results []*models.QuizResult) models.QuizStats {
	if len(results) == 0 {
		return models.QuizStats{}
	}

	stats := models.QuizStats{
		AttendeesCount: len(results),
		MinScore:       results[0].ScoreObtained,
		MaxScore:       results[0].ScoreObtained,
	}

	var sum float64
	for _, result := range results {
		score := result.ScoreObtained
		sum += score
		if score < stats.MinScore {
			stats.MinScore = score
		}
		if score > stats.MaxScore {
			stats.MaxScore = score
		}
	}
	stats.MeanScore = sum / float64(len(results))

	return stats
}

// BuildItemAnalysis counts, per question, how many respondents answered it
// correctly. Every question divides by the total number of results, not by the
// number of students who attempted that particular question: a question only
// half the class saw still has its correctness rate measured against the whole
// class. A missing or non-boolean "correct" flag counts as incorrect.
func BuildItemAnalysis(results []*models.QuizResult) []QuestionStat {
	totalRespondents := len(results)
	if totalRespondents == 0 {
		return []QuestionStat{}
	}

	correctCounts := make(map[string]int)
	for _, result := range results {
		for question, details := range result.AnswersMap() {
			if _, seen := correctCounts[question]; !seen {
				correctCounts[question] = 0
			}
			if correct, ok := details["correct"].(bool); ok && correct {
				correctCounts[question]++
			}
		}
	}

	questions := make([]string, 0, len(correctCounts))
	for question := range correctCounts {
		questions = append(questions, question)
	}
	sortQuestionKeys(questions)

	analysis := make([]QuestionStat, 0, len(questions))
	for _, question := range questions {
		count := correctCounts[question]
		analysis = append(analysis, QuestionStat{
			Question:         question,
			CorrectCount:     count,
			TotalRespondents: totalRespondents,
			Percentage:       roundTo1(float64(count) / float64(totalRespondents) * 100),
		})
	}
	return analysis
}

// sortQuestionKeys orders question identifiers numerically where both sides
// parse as integers, places numeric keys before non-numeric ones, and falls
// back to lexical order otherwise.
func sortQuestionKeys(keys []string) {
	sort.Slice(keys, func(i, j int) bool {
		a, aErr := strconv.Atoi(keys[i])
		b, bErr := strconv.Atoi(keys[j])
		switch {
		case aErr == nil && bErr == nil:
			return a < b
		case aErr == nil:
			return true
		case bErr == nil:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}

// MergeRosterResults joins the classroom roster against the recorded results,
// producing one entry per enrolled student sorted by name. Students without a
// result get a placeholder entry with a null score.
func MergeRosterResults(roster []*models.Student, results []*models.QuizResult) []MergedResult {
	sorted := make([]*models.Student, len(roster))
	copy(sorted, roster)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	byStudent := make(map[uint]*models.QuizResult, len(results))
	for _, result := range results {
		byStudent[result.StudentID] = result
	}

	merged := make([]MergedResult, 0, len(sorted))
	for _, student := range sorted {
		if result, ok := byStudent[student.ID]; ok {
			score := result.ScoreObtained
			taken := result.DateTaken
			merged = append(merged, MergedResult{
				ID:            result.ID,
				StudentName:   student.Name,
				StudentCode:   student.StudentID,
				ScoreObtained: &score,
				DateTaken:     &taken,
			})
			continue
		}
		merged = append(merged, MergedResult{
			ID:          fmt.Sprintf("temp-%d", student.ID),
			StudentName: student.Name,
			StudentCode: student.StudentID,
		})
	}
	return merged
}
