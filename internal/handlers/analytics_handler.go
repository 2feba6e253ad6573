package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KSRM-F-2025/feedback-service/internal/services"
	"github.com/KSRM-F-2025/feedback-service/internal/utils"
)

type AnalyticsHandler struct {
	BaseHandler
	service services.AnalyticsService
}

func NewAnalyticsHandler(service services.AnalyticsService, logger utils.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== ANALYTICS ENDPOINTS =====

// GetSnapshot returns the aggregate analytics view
// @Summary Get analytics snapshot
// @Description Get totals, faculty rankings, rating distribution and monthly trends
// @Tags analytics
// @Produce json
// @Success 200 {object} services.AnalyticsSnapshot
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /analytics/snapshot [get]
func (h *AnalyticsHandler) GetSnapshot(c *gin.Context) {
	h.LogRequest(c, "Getting analytics snapshot")

	snapshot, err := h.service.GetSnapshot(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// GetOverview returns the dashboard headline counters
// @Summary Get overview
// @Description Get entity counts and the portal-wide average rating
// @Tags analytics
// @Produce json
// @Success 200 {object} services.OverviewResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /analytics/overview [get]
func (h *AnalyticsHandler) GetOverview(c *gin.Context) {
	h.LogRequest(c, "Getting analytics overview")

	overview, err := h.service.GetOverview(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}

// GetFacultyAnalytics returns the per-faculty drill-down
// @Summary Get faculty analytics
// @Description Get per-criterion averages and recent comments for one faculty member
// @Tags analytics
// @Produce json
// @Param faculty_id path string true "Faculty ID"
// @Success 200 {object} services.FacultyAnalyticsResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /analytics/faculty/{faculty_id} [get]
func (h *AnalyticsHandler) GetFacultyAnalytics(c *gin.Context) {
	facultyID := c.Param("faculty_id")
	h.LogRequest(c, "Getting faculty analytics", "faculty_id", facultyID)

	session, err := GetSessionFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Unauthorized",
		})
		return
	}

	resp, err := h.service.GetFacultyAnalytics(c.Request.Context(), session, facultyID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
