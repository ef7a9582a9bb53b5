package api

import (
	"net/http"

	"lfmachado/gym-app/internal/repository"
	"lfmachado/gym-app/internal/service"
	"lfmachado/gym-app/internal/session"
	"lfmachado/gym-app/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	gate *session.Gate,
	studentService service.StudentService,
	trainingService service.TrainingService,
	fileStorage storage.FileStorage,
	userRepo repository.UserRepository,
) {
	authHandler := NewAuthHandler(gate)
	studentHandler := NewStudentHandler(studentService)
	trainingHandler := NewTrainingHandler(trainingService)
	uploadHandler := NewUploadHandler(fileStorage)
	adminHandler := NewAdminHandler(userRepo)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.Use(RequestIDMiddleware())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/forgot-password", authHandler.ForgotPassword)
			authGroup.POST("/reset-password", authHandler.ResetPassword)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.POST("/auth/logout", authHandler.Logout)

		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr})
		})

		// --- Student Routes ---
		studentGroup := protected.Group("/students")
		{
			studentGroup.POST("", studentHandler.CreateStudent)
			studentGroup.GET("", studentHandler.ListStudents)
			studentGroup.DELETE("/:studentId", studentHandler.DeleteStudent)

			// GET /api/v1/students/{studentId}/trainings
			studentGroup.GET("/:studentId/trainings", trainingHandler.ListTrainingsByStudent)
		}

		// --- Training Routes ---
		trainingGroup := protected.Group("/trainings")
		{
			trainingGroup.POST("", trainingHandler.CreateTraining)
			trainingGroup.GET("/:id", trainingHandler.GetTraining)
			trainingGroup.PUT("/:id", trainingHandler.UpdateTraining)
			trainingGroup.DELETE("/:id", trainingHandler.DeleteTraining)
		}

		// --- Upload Routes ---
		uploadGroup := protected.Group("/uploads")
		{
			uploadGroup.POST("/video-url", uploadHandler.CreateVideoUploadURL)
			uploadGroup.GET("/video-url", uploadHandler.GetVideoDownloadURL)
			uploadGroup.DELETE("/video-url", uploadHandler.DeleteVideo)
		}

		// --- Admin Routes ---
		adminGroup := protected.Group("/admin")
		adminGroup.Use(AdminMiddleware())
		{
			adminGroup.GET("/users", adminHandler.ListTrainers)
		}
	}
}
