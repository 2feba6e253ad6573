package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KSRM-F-2025/feedback-service/internal/services"
	"github.com/KSRM-F-2025/feedback-service/internal/utils"
	"github.com/KSRM-F-2025/feedback-service/internal/validator"
)

type AuthHandler struct {
	BaseHandler
	service services.AuthService
}

func NewAuthHandler(service services.AuthService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== AUTH ENDPOINTS =====

// StudentLogin verifies a student's email plus one secondary factor
// @Summary Student login
// @Description Verify a student with college email plus date of birth or roll number
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validator.StudentLoginRequest true "Login request"
// @Success 200 {object} services.StudentLoginResponse
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /auth/student/login [post]
func (h *AuthHandler) StudentLogin(c *gin.Context) {
	h.LogRequest(c, "Student login attempt")

	var req validator.StudentLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.service.VerifyStudent(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// StaffLogin verifies an admin or faculty email + password
// @Summary Staff login
// @Description Verify an admin or faculty account with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validator.StaffLoginRequest true "Login request"
// @Success 200 {object} services.StaffLoginResponse
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /auth/staff/login [post]
func (h *AuthHandler) StaffLogin(c *gin.Context) {
	h.LogRequest(c, "Staff login attempt")

	var req validator.StaffLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.service.VerifyStaff(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Me returns the authenticated session
// @Summary Current session
// @Description Return the identity bound to the presented token
// @Tags auth
// @Produce json
// @Success 200 {object} services.SessionContext
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	session, err := GetSessionFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Unauthorized",
		})
		return
	}

	c.JSON(http.StatusOK, session)
}
