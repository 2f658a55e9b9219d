package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gradely-app/grading-service/internal/services"
	"github.com/gradely-app/grading-service/internal/utils"
)

type QuizHandler struct {
	BaseHandler
	quizService services.QuizService
}

func NewQuizHandler(quizService services.QuizService, logger utils.Logger) *QuizHandler {
	return &QuizHandler{
		BaseHandler: NewBaseHandler(logger),
		quizService: quizService,
	}
}

// CreateQuiz creates a new quiz in one of the teacher's classrooms
// @Summary Create quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Param quiz body services.CreateQuizRequest true "Quiz data"
// @Success 201 {object} models.Quiz
// @Failure 400 {object} ErrorResponse
// @Router /quizzes [post]
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var req services.CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	teacherID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	quiz, err := h.quizService.Create(c.Request.Context(), &req, teacherID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, quiz)
}

// ListQuizzes lists the teacher's quizzes across all classrooms
// @Summary List quizzes
// @Tags quizzes
// @Produce json
// @Success 200 {array} models.Quiz
// @Router /quizzes [get]
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	teacherID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	quizzes, err := h.quizService.List(c.Request.Context(), teacherID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quizzes)
}

// GetQuiz retrieves the full quiz report with merged roster results and item analysis
// @Summary Get quiz detail
// @Tags quizzes
// @Produce json
// @Param id path uint true "Quiz ID"
// @Success 200 {object} services.QuizDetailResponse
// @Failure 404 {object} ErrorResponse
// @Router /quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	teacherID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	detail, err := h.quizService.GetDetail(c.Request.Context(), id, teacherID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// UpdateQuiz updates quiz fields
// @Summary Update quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Param id path uint true "Quiz ID"
// @Param quiz body services.UpdateQuizRequest true "Quiz update data"
// @Success 200 {object} models.Quiz
// @Failure 404 {object} ErrorResponse
// @Router /quizzes/{id} [put]
func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	teacherID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	quiz, err := h.quizService.Update(c.Request.Context(), id, &req, teacherID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// DeleteQuiz deletes a quiz and its results
// @Summary Delete quiz
// @Tags quizzes
// @Param id path uint true "Quiz ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /quizzes/{id} [delete]
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	teacherID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	if err := h.quizService.Delete(c.Request.Context(), id, teacherID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SaveResultsRequest is the bulk result payload, typically produced by the
// answer sheet scanner.
type SaveResultsRequest struct {
	Results []services.ResultEntry `json:"results"`
}

// SaveResults bulk-saves quiz results with partial-success semantics
// @Summary Save quiz results
// @Description Upserts one result per recognized student; unknown student IDs are reported per row
// @Tags quizzes
// @Accept json
// @Produce json
// @Param id path uint true "Quiz ID"
// @Param request body SaveResultsRequest true "Result rows"
// @Success 200 {object} services.SaveResultsResponse
// @Failure 400 {object} ErrorResponse
// @Router /quizzes/{id}/results [post]
func (h *QuizHandler) SaveResults(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req SaveResultsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	teacherID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Saving quiz results", "quiz_id", id, "rows", len(req.Results))

	resp, err := h.quizService.SaveResults(c.Request.Context(), id, teacherID, req.Results)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteResult removes one student's result from a quiz
// @Summary Delete quiz result
// @Tags quizzes
// @Param id path uint true "Quiz ID"
// @Param result_id path uint true "Result ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /quizzes/{id}/results/{result_id} [delete]
func (h *QuizHandler) DeleteResult(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	resultID := h.parseIDParam(c, "result_id")
	if resultID == 0 {
		return
	}

	teacherID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	if err := h.quizService.DeleteResult(c.Request.Context(), id, resultID, teacherID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
