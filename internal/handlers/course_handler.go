package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KSRM-F-2025/feedback-service/internal/services"
	"github.com/KSRM-F-2025/feedback-service/internal/utils"
	"github.com/KSRM-F-2025/feedback-service/internal/validator"
)

type CourseHandler struct {
	BaseHandler
	service services.CourseService
}

func NewCourseHandler(service services.CourseService, logger utils.Logger) *CourseHandler {
	return &CourseHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== COURSE ENDPOINTS =====

// ListCourses returns all courses
// @Summary List courses
// @Tags courses
// @Produce json
// @Success 200 {array} models.Course
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /courses [get]
func (h *CourseHandler) ListCourses(c *gin.Context) {
	h.LogRequest(c, "Listing courses")

	courses, err := h.service.ListCourses(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, courses)
}

// CreateCourse adds a course
// @Summary Create course
// @Tags courses
// @Accept json
// @Produce json
// @Param request body validator.CourseCreateRequest true "Course"
// @Success 201 {object} models.Course
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 409 {object} ErrorResponse "Already exists"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /courses [post]
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	h.LogRequest(c, "Creating course")

	var req validator.CourseCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	course, err := h.service.CreateCourse(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, course)
}

// DeleteCourse removes a course
// @Summary Delete course
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 204 "Deleted"
// @Failure 404 {object} ErrorResponse "Not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /courses/{id} [delete]
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id := c.Param("id")
	h.LogRequest(c, "Deleting course", "course_id", id)

	if err := h.service.DeleteCourse(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ===== COURSE ASSIGNMENT ENDPOINTS =====

// ListAssignments returns course assignments with optional filters
// @Summary List course assignments
// @Tags courses
// @Produce json
// @Param faculty_id query string false "Filter by faculty"
// @Param section query string false "Filter by section"
// @Param semester query string false "Filter by semester"
// @Param academic_year query string false "Filter by academic year"
// @Success 200 {array} models.CourseAssignment
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /courses/assignments [get]
func (h *CourseHandler) ListAssignments(c *gin.Context) {
	h.LogRequest(c, "Listing course assignments")

	req := services.AssignmentListRequest{}
	if v := c.Query("faculty_id"); v != "" {
		req.FacultyID = &v
	}
	if v := c.Query("section"); v != "" {
		req.Section = &v
	}
	if v := c.Query("semester"); v != "" {
		req.Semester = &v
	}
	if v := c.Query("academic_year"); v != "" {
		req.AcademicYear = &v
	}

	assignments, err := h.service.ListAssignments(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignments)
}

// CreateAssignment maps a faculty member to a course section
// @Summary Create course assignment
// @Tags courses
// @Accept json
// @Produce json
// @Param request body validator.CourseAssignmentCreateRequest true "Assignment"
// @Success 201 {object} models.CourseAssignment
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 404 {object} ErrorResponse "Course or faculty not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /courses/assignments [post]
func (h *CourseHandler) CreateAssignment(c *gin.Context) {
	h.LogRequest(c, "Creating course assignment")

	var req validator.CourseAssignmentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	assignment, err := h.service.CreateAssignment(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, assignment)
}

// DeleteAssignment removes a course assignment
// @Summary Delete course assignment
// @Tags courses
// @Produce json
// @Param id path string true "Assignment ID"
// @Success 204 "Deleted"
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /courses/assignments/{id} [delete]
func (h *CourseHandler) DeleteAssignment(c *gin.Context) {
	id := c.Param("id")
	h.LogRequest(c, "Deleting course assignment", "assignment_id", id)

	if err := h.service.DeleteAssignment(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
