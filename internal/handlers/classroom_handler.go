package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gradely-app/grading-service/internal/services"
	"github.com/gradely-app/grading-service/internal/utils"
)

// 10 MB cap on uploaded roster files.
const maxRosterFileSize = 10 << 20

type ClassroomHandler struct {
	BaseHandler
	classroomService    services.ClassroomService
	rosterImportService services.RosterImportService
}

func NewClassroomHandler(
	classroomService services.ClassroomService,
	rosterImportService services.RosterImportService,
	logger utils.Logger,
) *ClassroomHandler {
	return &ClassroomHandler{
		BaseHandler:         NewBaseHandler(logger),
		classroomService:    classroomService,
		rosterImportService: rosterImportService,
	}
}

// CreateClassroom creates a new classroom for the authenticated teacher
// @Summary Create classroom
// @Tags classrooms
// @Accept json
// @Produce json
// @Param classroom body services.CreateClassroomRequest true "Classroom data"
// @Success 201 {object} models.Classroom
// @Failure 400 {object} ErrorResponse
// @Router /classrooms [post]
func (h *ClassroomHandler) CreateClassroom(c *gin.Context) {
	var req services.CreateClassroomRequest
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

	classroom, err := h.classroomService.Create(c.Request.Context(), &req, teacherID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, classroom)
}

// GetClassroom retrieves a classroom with its roster
// @Summary Get classroom
// @Tags classrooms
// @Produce json
// @Param id path uint true "Classroom ID"
// @Success 200 {object} models.Classroom
// @Failure 404 {object} ErrorResponse
// @Router /classrooms/{id} [get]
func (h *ClassroomHandler) GetClassroom(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	teacherID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	classroom, err := h.classroomService.GetByID(c.Request.Context(), id, teacherID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, classroom)
}

// ListClassrooms lists the authenticated teacher's classrooms
// @Summary List classrooms
// @Tags classrooms
// @Produce json
// @Success 200 {array} models.Classroom
// @Router /classrooms [get]
func (h *ClassroomHandler) ListClassrooms(c *gin.Context) {
	teacherID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	classrooms, err := h.classroomService.List(c.Request.Context(), teacherID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, classrooms)
}

// UpdateClassroom updates classroom fields
// @Summary Update classroom
// @Tags classrooms
// @Accept json
// @Produce json
// @Param id path uint true "Classroom ID"
// @Param classroom body services.UpdateClassroomRequest true "Classroom update data"
// @Success 200 {object} models.Classroom
// @Failure 404 {object} ErrorResponse
// @Router /classrooms/{id} [put]
func (h *ClassroomHandler) UpdateClassroom(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateClassroomRequest
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

	classroom, err := h.classroomService.Update(c.Request.Context(), id, &req, teacherID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, classroom)
}

// DeleteClassroom deletes a classroom
// @Summary Delete classroom
// @Tags classrooms
// @Param id path uint true "Classroom ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /classrooms/{id} [delete]
func (h *ClassroomHandler) DeleteClassroom(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	teacherID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	if err := h.classroomService.Delete(c.Request.Context(), id, teacherID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadStudents imports a roster file into a classroom
// @Summary Upload student roster
// @Description Accepts a CSV or Excel file with a "name" column and enrolls the students
// @Tags classrooms
// @Accept multipart/form-data
// @Produce json
// @Param id path uint true "Classroom ID"
// @Param file formData file true "Roster file (.csv, .xlsx, .xls)"
// @Success 200 {object} SuccessResponse{data=services.RosterImportResult}
// @Failure 400 {object} ErrorResponse
// @Router /classrooms/{id}/upload-students [post]
func (h *ClassroomHandler) UploadStudents(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	teacherID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Missing roster file",
			Details: err.Error(),
		})
		return
	}
	if fileHeader.Size > maxRosterFileSize {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Roster file too large",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Cannot read roster file",
			Details: err.Error(),
		})
		return
	}
	defer file.Close()

	h.LogRequest(c, "Importing roster", "classroom_id", id, "filename", fileHeader.Filename)

	result, err := h.rosterImportService.ImportRoster(c.Request.Context(), id, teacherID, file, fileHeader.Filename)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Student list uploaded successfully",
		Data:    result,
	})
}

// CopyListRequest names the classroom to copy students from.
type CopyListRequest struct {
	SourceClassID uint `json:"source_class_id" validate:"required"`
}

// CopyList copies the roster of another classroom into this one
// @Summary Copy roster from another classroom
// @Tags classrooms
// @Accept json
// @Produce json
// @Param id path uint true "Target classroom ID"
// @Param request body CopyListRequest true "Source classroom"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /classrooms/{id}/copy-list [post]
func (h *ClassroomHandler) CopyList(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req CopyListRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SourceClassID == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
		})
		return
	}

	teacherID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	copied, err := h.classroomService.CopyRoster(c.Request.Context(), id, req.SourceClassID, teacherID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Student list copied successfully",
		Data:    gin.H{"students_copied": copied},
	})
}

// RemoveStudentRequest names the student to unenroll.
type RemoveStudentRequest struct {
	StudentID uint `json:"student_id" validate:"required"`
}

// RemoveStudent unenrolls a student from a classroom
// @Summary Remove student from classroom
// @Tags classrooms
// @Accept json
// @Produce json
// @Param id path uint true "Classroom ID"
// @Param request body RemoveStudentRequest true "Student to remove"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /classrooms/{id}/remove-student [post]
func (h *ClassroomHandler) RemoveStudent(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req RemoveStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.StudentID == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
		})
		return
	}

	teacherID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	if err := h.classroomService.RemoveStudent(c.Request.Context(), id, req.StudentID, teacherID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Student removed from class",
	})
}

// GetDashboard returns the teacher's landing page data
// @Summary Teacher dashboard
// @Tags dashboard
// @Produce json
// @Success 200 {object} services.DashboardResponse
// @Router /dashboard [get]
func (h *ClassroomHandler) GetDashboard(c *gin.Context) {
	teacherID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	dashboard, err := h.classroomService.GetDashboard(c.Request.Context(), teacherID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
