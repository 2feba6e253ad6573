package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KSRM-F-2025/feedback-service/internal/services"
	"github.com/KSRM-F-2025/feedback-service/internal/utils"
	"github.com/KSRM-F-2025/feedback-service/internal/validator"
)

type SettingsHandler struct {
	BaseHandler
	service services.SettingsService
}

func NewSettingsHandler(service services.SettingsService, logger utils.Logger) *SettingsHandler {
	return &SettingsHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== SETTINGS ENDPOINTS =====

// GetSettings returns all portal settings
// @Summary Get settings
// @Tags settings
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	h.LogRequest(c, "Getting settings")

	settings, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateSetting upserts one portal setting
// @Summary Update setting
// @Tags settings
// @Accept json
// @Produce json
// @Param key path string true "Setting key"
// @Param request body validator.SettingUpdateRequest true "Setting value"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /settings/{key} [put]
func (h *SettingsHandler) UpdateSetting(c *gin.Context) {
	key := c.Param("key")
	h.LogRequest(c, "Updating setting", "key", key)

	var req validator.SettingUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	if err := h.service.Update(c.Request.Context(), key, &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "updated", "key": key})
}
