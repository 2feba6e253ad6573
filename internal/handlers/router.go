package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/KSRM-F-2025/feedback-service/internal/models"
	"github.com/KSRM-F-2025/feedback-service/internal/services"
	"github.com/KSRM-F-2025/feedback-service/internal/utils"
)

type HandlerManager struct {
	authHandler      *AuthHandler
	feedbackHandler  *FeedbackHandler
	studentHandler   *StudentHandler
	analyticsHandler *AnalyticsHandler
	reportHandler    *ReportHandler
	facultyHandler   *FacultyHandler
	courseHandler    *CourseHandler
	settingsHandler  *SettingsHandler
	authMiddleware   *JWTAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	jwt *utils.JWTService,
) *HandlerManager {
	return &HandlerManager{
		authHandler:      NewAuthHandler(serviceManager.Auth(), logger),
		feedbackHandler:  NewFeedbackHandler(serviceManager.Feedback(), logger),
		studentHandler:   NewStudentHandler(serviceManager.Feedback(), logger),
		analyticsHandler: NewAnalyticsHandler(serviceManager.Analytics(), logger),
		reportHandler:    NewReportHandler(serviceManager.Report(), logger),
		facultyHandler:   NewFacultyHandler(serviceManager.Faculty(), logger),
		courseHandler:    NewCourseHandler(serviceManager.Course(), logger),
		settingsHandler:  NewSettingsHandler(serviceManager.Settings(), logger),
		authMiddleware:   NewJWTAuthMiddleware(jwt),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")

	// Auth routes (no token required)
	auth := v1.Group("/auth")
	{
		auth.POST("/student/login", hm.authHandler.StudentLogin)
		auth.POST("/staff/login", hm.authHandler.StaffLogin)
		auth.GET("/me", hm.authMiddleware.AuthMiddleware(), hm.authHandler.Me)
	}

	// Authenticated routes
	api := v1.Group("")
	api.Use(hm.authMiddleware.AuthMiddleware())
	{
		// Feedback submission - Students only; review - Admins only
		feedback := api.Group("/feedback")
		{
			feedback.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleStudent), hm.feedbackHandler.SubmitFeedback)
			feedback.GET("", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.feedbackHandler.ListFeedback)
		}

		// Student routes - Students only
		students := api.Group("/students")
		students.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleStudent))
		{
			students.GET("/me/courses", hm.studentHandler.GetMyCourses)
		}

		// Analytics routes - Faculty see their own record, Admins see all
		analytics := api.Group("/analytics")
		{
			analytics.GET("/snapshot", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.analyticsHandler.GetSnapshot)
			analytics.GET("/overview", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.analyticsHandler.GetOverview)
			analytics.GET("/faculty/:faculty_id", hm.authMiddleware.RequireRoleMiddleware(models.RoleFaculty, models.RoleAdmin), hm.analyticsHandler.GetFacultyAnalytics)
		}

		// Report routes - Admins only
		reports := api.Group("/reports")
		reports.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin))
		{
			reports.GET("/export", hm.reportHandler.ExportReport)
		}

		// Faculty catalog - reads for any authenticated user, writes Admins only
		faculty := api.Group("/faculty")
		{
			faculty.GET("", hm.facultyHandler.ListFaculty)
			faculty.GET("/:id", hm.facultyHandler.GetFaculty)
			faculty.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.facultyHandler.CreateFaculty)
			faculty.PUT("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.facultyHandler.UpdateFaculty)
			faculty.DELETE("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.facultyHandler.DeleteFaculty)
		}

		// Course catalog - reads for any authenticated user, writes Admins only
		courses := api.Group("/courses")
		{
			courses.GET("", hm.courseHandler.ListCourses)
			courses.GET("/assignments", hm.courseHandler.ListAssignments)
			courses.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.courseHandler.CreateCourse)
			courses.DELETE("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.courseHandler.DeleteCourse)
			courses.POST("/assignments", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.courseHandler.CreateAssignment)
			courses.DELETE("/assignments/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.courseHandler.DeleteAssignment)
		}

		// Settings - Admins only
		settings := api.Group("/settings")
		settings.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin))
		{
			settings.GET("", hm.settingsHandler.GetSettings)
			settings.PUT("/:key", hm.settingsHandler.UpdateSetting)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "feedback-service",
		})
	})
}
