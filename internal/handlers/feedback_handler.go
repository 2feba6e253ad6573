package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/KSRM-F-2025/feedback-service/internal/services"
	"github.com/KSRM-F-2025/feedback-service/internal/utils"
	"github.com/KSRM-F-2025/feedback-service/internal/validator"
)

type FeedbackHandler struct {
	BaseHandler
	service services.FeedbackService
}

func NewFeedbackHandler(service services.FeedbackService, logger utils.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== FEEDBACK ENDPOINTS =====

// SubmitFeedback stores one student submission
// @Summary Submit feedback
// @Description Submit feedback for one faculty member and subject; one submission per term
// @Tags feedback
// @Accept json
// @Produce json
// @Param request body validator.SubmitFeedbackRequest true "Feedback submission"
// @Success 201 {object} services.FeedbackResponse
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 409 {object} ErrorResponse "Duplicate submission"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /feedback [post]
func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	h.LogRequest(c, "Submitting feedback")

	session, err := GetSessionFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Unauthorized",
		})
		return
	}

	var req validator.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), session, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListFeedback serves the admin review screen
// @Summary List feedback
// @Description List stored feedback with filters and pagination
// @Tags feedback
// @Produce json
// @Param faculty_id query string false "Filter by faculty"
// @Param semester query string false "Filter by semester"
// @Param academic_year query string false "Filter by academic year"
// @Param anonymous query bool false "Filter by anonymity"
// @Param page query int false "Page number (default: 1)"
// @Param page_size query int false "Page size (default: 20, max: 100)"
// @Success 200 {object} services.FeedbackListResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /feedback [get]
func (h *FeedbackHandler) ListFeedback(c *gin.Context) {
	h.LogRequest(c, "Listing feedback")

	req := services.FeedbackListRequest{}

	if v := c.Query("faculty_id"); v != "" {
		req.FacultyID = &v
	}
	if v := c.Query("semester"); v != "" {
		req.Semester = &v
	}
	if v := c.Query("academic_year"); v != "" {
		req.AcademicYear = &v
	}
	if v := c.Query("anonymous"); v != "" {
		anonymous, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid anonymous parameter",
				Details: "must be true or false",
			})
			return
		}
		req.Anonymous = &anonymous
	}

	req.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	req.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	resp, err := h.service.List(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
