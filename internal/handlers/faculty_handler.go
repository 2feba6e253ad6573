package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KSRM-F-2025/feedback-service/internal/services"
	"github.com/KSRM-F-2025/feedback-service/internal/utils"
	"github.com/KSRM-F-2025/feedback-service/internal/validator"
)

type FacultyHandler struct {
	BaseHandler
	service services.FacultyService
}

func NewFacultyHandler(service services.FacultyService, logger utils.Logger) *FacultyHandler {
	return &FacultyHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== FACULTY ENDPOINTS =====

// ListFaculty returns all faculty members
// @Summary List faculty
// @Tags faculty
// @Produce json
// @Success 200 {array} models.Faculty
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /faculty [get]
func (h *FacultyHandler) ListFaculty(c *gin.Context) {
	h.LogRequest(c, "Listing faculty")

	faculty, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, faculty)
}

// GetFaculty returns one faculty member
// @Summary Get faculty
// @Tags faculty
// @Produce json
// @Param id path string true "Faculty ID"
// @Success 200 {object} models.Faculty
// @Failure 404 {object} ErrorResponse "Not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /faculty/{id} [get]
func (h *FacultyHandler) GetFaculty(c *gin.Context) {
	id := c.Param("id")
	h.LogRequest(c, "Getting faculty", "faculty_id", id)

	faculty, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, faculty)
}

// CreateFaculty adds a faculty member
// @Summary Create faculty
// @Tags faculty
// @Accept json
// @Produce json
// @Param request body validator.FacultyCreateRequest true "Faculty"
// @Success 201 {object} models.Faculty
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 409 {object} ErrorResponse "Already exists"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /faculty [post]
func (h *FacultyHandler) CreateFaculty(c *gin.Context) {
	h.LogRequest(c, "Creating faculty")

	var req validator.FacultyCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	faculty, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, faculty)
}

// UpdateFaculty updates mutable faculty fields
// @Summary Update faculty
// @Tags faculty
// @Accept json
// @Produce json
// @Param id path string true "Faculty ID"
// @Param request body validator.FacultyUpdateRequest true "Fields to update"
// @Success 200 {object} models.Faculty
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 404 {object} ErrorResponse "Not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /faculty/{id} [put]
func (h *FacultyHandler) UpdateFaculty(c *gin.Context) {
	id := c.Param("id")
	h.LogRequest(c, "Updating faculty", "faculty_id", id)

	var req validator.FacultyUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	faculty, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, faculty)
}

// DeleteFaculty removes a faculty member without feedback records
// @Summary Delete faculty
// @Tags faculty
// @Produce json
// @Param id path string true "Faculty ID"
// @Success 204 "Deleted"
// @Failure 404 {object} ErrorResponse "Not found"
// @Failure 409 {object} ErrorResponse "Faculty has feedback"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /faculty/{id} [delete]
func (h *FacultyHandler) DeleteFaculty(c *gin.Context) {
	id := c.Param("id")
	h.LogRequest(c, "Deleting faculty", "faculty_id", id)

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
