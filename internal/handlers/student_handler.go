package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KSRM-F-2025/feedback-service/internal/services"
	"github.com/KSRM-F-2025/feedback-service/internal/utils"
)

type StudentHandler struct {
	BaseHandler
	service services.FeedbackService
}

func NewStudentHandler(service services.FeedbackService, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== STUDENT ENDPOINTS =====

// GetMyCourses lists the courses the student can rate this term
// @Summary Get eligible courses
// @Description List course assignments for the student's section with submission flags
// @Tags students
// @Produce json
// @Param semester query string false "Semester (default: 3rd)"
// @Param academic_year query string false "Academic year (default: 2024-25)"
// @Success 200 {array} services.EligibleCourseResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /students/me/courses [get]
func (h *StudentHandler) GetMyCourses(c *gin.Context) {
	h.LogRequest(c, "Getting eligible courses")

	session, err := GetSessionFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Unauthorized",
		})
		return
	}

	semester := c.DefaultQuery("semester", "3rd")
	academicYear := c.DefaultQuery("academic_year", "2024-25")

	courses, err := h.service.GetEligibleCourses(c.Request.Context(), session, semester, academicYear)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, courses)
}
