package routes

import (
	"document-review-api/controllers"
	"document-review-api/middleware"
	"document-review-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)
			public.POST("/password-reset", controllers.ForgotPassword)
			public.POST("/password-reset/confirm", controllers.ResetPassword)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Document Review API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)
			protected.PUT("/users/:id", controllers.UpdateUser) // self-service or admin

			// Notices
			protected.GET("/announcements", controllers.GetAnnouncements)
			protected.GET("/instructions", controllers.GetInstructions)

			// Review events (visibility resolved per user)
			protected.GET("/events", controllers.GetEvents)
			protected.GET("/events/:id", controllers.GetEvent)

			// Documents
			documents := protected.Group("/documents")
			{
				documents.GET("", controllers.GetDocuments)
				documents.GET("/:id", controllers.GetDocument)
				documents.GET("/:id/file", controllers.DownloadDocument)
				documents.GET("/:id/scores", controllers.GetDocumentScores)

				// Teachers and admins upload; uploader replaces
				documents.POST("", middleware.RequireRole(models.RoleTeacher, models.RoleAdmin), controllers.UploadDocument)
				documents.PUT("/:id/file", middleware.RequireRole(models.RoleTeacher, models.RoleAdmin), controllers.ReplaceDocumentFile)

				// Reviewers score
				documents.POST("/:id/review", middleware.RequireRole(models.RoleReviewer), controllers.SubmitReview)
				documents.GET("/:id/review", middleware.RequireRole(models.RoleReviewer), controllers.GetMyReview)

				// Admins delete
				documents.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), controllers.DeleteDocument)
			}

			// Dashboard
			protected.GET("/dashboard/stats", controllers.GetDashboardStats)

			// Admin console
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				// Users
				admin.GET("/users", controllers.GetUsers)
				admin.POST("/users", controllers.CreateUser)
				admin.DELETE("/users/:id", controllers.DeleteUser)

				// Scoring templates
				admin.GET("/templates", controllers.GetTemplates)
				admin.GET("/templates/:id", controllers.GetTemplate)
				admin.POST("/templates", controllers.CreateTemplate)
				admin.PUT("/templates/:id", controllers.RenameTemplate)
				admin.PUT("/templates/:id/dimensions", controllers.UpdateTemplateDimensions)
				admin.DELETE("/templates/:id", controllers.DeleteTemplate)

				// Review events
				admin.POST("/events", controllers.CreateEvent)
				admin.PUT("/events/:id", controllers.UpdateEvent)
				admin.PUT("/events/:id/active", controllers.SetEventActive)
				admin.DELETE("/events/:id", controllers.DeleteEvent)

				// Whitelists
				admin.POST("/events/:id/teachers", controllers.AddEventTeacher)
				admin.DELETE("/events/:id/teachers/:user_id", controllers.RemoveEventTeacher)
				admin.POST("/events/:id/reviewers", controllers.AddEventReviewer)
				admin.DELETE("/events/:id/reviewers/:user_id", controllers.RemoveEventReviewer)

				// Reviewer-teacher scoping
				admin.POST("/reviewer-teachers", controllers.AssignReviewerTeacher)
				admin.DELETE("/reviewer-teachers/:reviewer_id/:teacher_id", controllers.RemoveReviewerTeacher)

				// Settings
				admin.GET("/settings", controllers.GetSettings)
				admin.PUT("/settings/global-template", controllers.UpdateGlobalTemplate)

				// Notices
				admin.POST("/announcements", controllers.CreateAnnouncement)
				admin.PUT("/announcements/:id", controllers.UpdateAnnouncement)
				admin.DELETE("/announcements/:id", controllers.DeleteAnnouncement)
				admin.POST("/instructions", controllers.CreateInstruction)
				admin.PUT("/instructions/:id", controllers.UpdateInstruction)
				admin.DELETE("/instructions/:id", controllers.DeleteInstruction)
			}
		}
	}
}
