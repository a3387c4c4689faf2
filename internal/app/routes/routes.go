package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pioneer/admissions/internal/app/controllers"
	"github.com/pioneer/admissions/internal/middleware"
	"github.com/pioneer/admissions/internal/pkg/filestorage"
)

// Pinger reports whether a backing service answers
type Pinger interface {
	Ping(ctx context.Context) error
}

// SetupRouter configures all application routes. db may be nil, in which case
// the health check does not ping the database.
func SetupRouter(router *gin.Engine, ctrl *controllers.Controllers, authMiddleware *middleware.AuthMiddleware, uploadsDir string, db Pinger) {
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	if uploadsDir != "" {
		router.Static("/"+filestorage.PublicPrefix, uploadsDir)
	}

	api := router.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Applicant (public) surface ---
	auth := api.Group("/auth")
	{
		auth.POST("/register", ctrl.Applicant.Register)
		auth.POST("/login", ctrl.Applicant.Login)
		auth.POST("/contact", ctrl.Contact.Submit)

		auth.GET("/syllabus", ctrl.Syllabus.List)
		auth.GET("/datesheet", ctrl.Datesheet.List)
		auth.GET("/messages", ctrl.Message.List)
		auth.GET("/assignments", ctrl.Assignment.List)
		auth.GET("/assignments/:className", ctrl.Assignment.GetByClass)

		applicant := auth.Group("")
		applicant.Use(authMiddleware.ApplicantAuth())
		{
			applicant.GET("/user", ctrl.Applicant.User)
			applicant.POST("/logout", ctrl.Applicant.Logout)
			applicant.GET("/admitCard", ctrl.Applicant.AdmitCard)
		}
	}

	// --- Administrator surface ---
	admin := api.Group("/admin")
	{
		admin.POST("/register", ctrl.Admin.Register)
		admin.POST("/login", ctrl.Admin.Login)
		admin.GET("/validate-token", ctrl.Admin.ValidateToken)
	}

	protected := admin.Group("")
	protected.Use(authMiddleware.AdminAuth())
	{
		protected.POST("/logout", ctrl.Admin.Logout)

		protected.GET("/admissionApplications", ctrl.Application.List)
		application := protected.Group("/admissionApplication/:id")
		{
			application.GET("", ctrl.Application.Get)
			application.PUT("/status", ctrl.Application.UpdateStatus)
			application.PUT("/markAsRead", ctrl.Application.MarkAsRead)
			application.DELETE("", ctrl.Application.Delete)
			application.GET("/downloadPDF", ctrl.Application.DownloadPDF)
		}
		protected.GET("/admitCard", ctrl.Application.AdmitCard)

		protected.GET("/totals", ctrl.Dashboard.Totals)
		protected.GET("/total-users", ctrl.Dashboard.TotalUsers)
		protected.GET("/total-contacts", ctrl.Dashboard.TotalContacts)
		protected.GET("/total-datesheets", ctrl.Dashboard.TotalDatesheets)
		protected.GET("/total-messages", ctrl.Dashboard.TotalMessages)
		protected.GET("/total-applications", ctrl.Dashboard.TotalApplications)
		protected.GET("/total-syllabus", ctrl.Dashboard.TotalSyllabus)
		protected.GET("/total-assignments", ctrl.Dashboard.TotalAssignments)

		syllabus := protected.Group("/syllabus")
		{
			syllabus.GET("", ctrl.Syllabus.List)
			syllabus.POST("", ctrl.Syllabus.Create)
			syllabus.GET("/:id", ctrl.Syllabus.Get)
			syllabus.PUT("/:id", ctrl.Syllabus.Update)
			syllabus.DELETE("/:id", ctrl.Syllabus.Delete)
		}

		datesheet := protected.Group("/datesheet")
		{
			datesheet.GET("", ctrl.Datesheet.List)
			datesheet.POST("", ctrl.Datesheet.Create)
			datesheet.GET("/:id", ctrl.Datesheet.Get)
			datesheet.PUT("/:id", ctrl.Datesheet.Update)
			datesheet.DELETE("/:id", ctrl.Datesheet.Delete)
		}

		messages := protected.Group("/messages")
		{
			messages.GET("", ctrl.Message.List)
			messages.POST("", ctrl.Message.Create)
			messages.GET("/:id", ctrl.Message.Get)
			messages.PUT("/:id", ctrl.Message.Update)
			messages.DELETE("/:id", ctrl.Message.Delete)
		}

		// "/contacts" is an alias of "/contact"
		for _, path := range []string{"/contact", "/contacts"} {
			contacts := protected.Group(path)
			contacts.GET("", ctrl.Contact.List)
			contacts.DELETE("/:id", ctrl.Contact.Delete)
		}

		assignments := protected.Group("/assignments")
		{
			assignments.GET("", ctrl.Assignment.List)
			assignments.GET("/:className", ctrl.Assignment.GetByClass)
			assignments.POST("/:className", ctrl.Assignment.Create)
			assignments.PUT("/:className/:assignmentId", ctrl.Assignment.Update)
			assignments.DELETE("/:className/:assignmentId", ctrl.Assignment.Delete)
		}
	}
}
