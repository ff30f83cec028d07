package routes

import (
	"smart-emr-server/internal/ai"
	"smart-emr-server/internal/config"
	"smart-emr-server/internal/handlers"
	"smart-emr-server/internal/middleware"
	"smart-emr-server/internal/models"
	"smart-emr-server/internal/patients"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, log zerolog.Logger) {
	// Shared services
	aiClient := ai.NewClient(cfg.Groq.APIKey, cfg.Groq.BaseURL, log)
	repo := patients.NewGormRepository(db)
	adapter := patients.NewAdapter(repo, patients.NewRecordSource(db), log)
	builder := patients.NewBuilder(repo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	recordHandler := handlers.NewRecordHandler(db)
	progressHandler := handlers.NewProgressHandler(adapter, builder, repo, aiClient, log)
	aiHandler := handlers.NewAIHandler(aiClient)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg)) // Apply JWT authentication middleware
	{
		// Auth related (e.g., profile, logout if it needs auth)
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
		}

		// User management routes (typically admin-only)
		userRoutes := private.Group("/users")
		{
			// Special endpoint to get doctors - accessible by all authenticated users
			userRoutes.GET("/doctors", userHandler.GetDoctors)

			// Special endpoint to get patient accounts - accessible by doctors and admins
			userRoutes.GET("/doctor-patients", userHandler.GetDoctorPatients)

			// Admin-only routes
			adminRoutes := userRoutes.Group("")
			adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin)) // Only Admins
			{
				adminRoutes.POST("", userHandler.CreateUser)
				adminRoutes.GET("", userHandler.GetUsers)
				adminRoutes.GET("/:id", userHandler.GetUserByID)
				adminRoutes.PUT("/:id", userHandler.UpdateUser)
				adminRoutes.DELETE("/:id", userHandler.DeleteUser)
			}
		}

		// Consultation EMR record routes
		recordRoutes := private.Group("/records")
		{
			// Doctors create consultation records
			recordRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleDoctor), recordHandler.CreateRecord)

			// Role-scoped listing: doctors see their own, patients see theirs
			recordRoutes.GET("/my", recordHandler.GetMyRecords)

			// Get specific record (ownership checked in handler)
			recordRoutes.GET("/:id", recordHandler.GetRecordByID)

			// Doctors update their records, Admins can update any
			recordRoutes.PUT("/:id", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), recordHandler.UpdateRecord)

			// Doctors delete their records, Admins can delete any
			recordRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), recordHandler.DeleteRecord)

			// Audio attachment upload for a specific record
			audioRoutes := recordRoutes.Group("/:id/audio")
			audioRoutes.Use(middleware.RoleAuthMiddleware(models.RoleDoctor)) // Only Doctors can attach audio
			{
				audioRoutes.POST("", recordHandler.UploadRecordAudio)
			}

			// Attachment download by its own globally unique ID; access is
			// checked against the parent record in the handler.
			private.GET("/records/audio/:attachmentId", recordHandler.GetRecordAudio)
		}

		// Progress tracking routes (doctor-facing)
		patientRoutes := private.Group("/patients")
		patientRoutes.Use(middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin))
		{
			patientRoutes.GET("", progressHandler.ListPatients)
			patientRoutes.GET("/search", progressHandler.SearchPatients)
			patientRoutes.POST("/visits", progressHandler.RecordVisit)
			patientRoutes.GET("/:id/progress", progressHandler.GetPatientProgress)
			patientRoutes.GET("/:id/insights", progressHandler.GetPatientInsights)
		}

		// AI assistance routes (doctor-facing)
		aiRoutes := private.Group("/ai")
		aiRoutes.Use(middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin))
		{
			aiRoutes.POST("/transcribe", aiHandler.Transcribe)
			aiRoutes.POST("/extract", aiHandler.Extract)
			aiRoutes.POST("/patient-summary", aiHandler.PatientSummary)
			aiRoutes.POST("/translate", aiHandler.Translate)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
