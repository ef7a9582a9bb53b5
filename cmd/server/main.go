package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lfmachado/gym-app/internal/api"
	"lfmachado/gym-app/internal/config"
	"lfmachado/gym-app/internal/domain"
	"lfmachado/gym-app/internal/messaging"
	"lfmachado/gym-app/internal/metrics"
	"lfmachado/gym-app/internal/repository/mongo"
	redisrepo "lfmachado/gym-app/internal/repository/redis"
	"lfmachado/gym-app/internal/service"
	"lfmachado/gym-app/internal/session"
	"lfmachado/gym-app/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	log.Println("Starting Gym App Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureStudentIndexes(ctx, appDB.Collection("students"))
		mongo.EnsureTrainingIndexes(ctx, appDB.Collection("trainings"))
		log.Println("Index creation process completed.")
	}()

	// --- Redis (reset tokens) ---
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	resetTokens := redisrepo.NewResetTokenStore(redisClient, config.NewCircuitBreaker("Redis-ResetTokens"))

	// --- Event Broker (optional) ---
	var publisher messaging.EventPublisher = messaging.NopPublisher{}
	if cfg.AMQP.URL != "" {
		broker, err := messaging.NewRabbitMQPublisher(cfg.AMQP.URL, cfg.AMQP.Queue, config.NewCircuitBreaker("RabbitMQ-Publisher"))
		if err != nil {
			log.Fatalf("FATAL: Could not connect to RabbitMQ: %v", err)
		}
		publisher = broker
		defer broker.Close()
		log.Printf("Event broker connected, queue %q.", cfg.AMQP.Queue)
	} else {
		log.Println("No AMQP URL configured, student events disabled.")
	}

	// --- File Storage ---
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	studentRepo := mongo.NewMongoStudentRepository(appDB)
	trainingRepo := mongo.NewMongoTrainingRepository(appDB)

	// --- Services ---
	authService := service.NewAuthService(userRepo, resetTokens, cfg.JWT.Secret, cfg.JWT.Expiration)
	studentService := service.NewStudentService(studentRepo, publisher)
	trainingService := service.NewTrainingService(trainingRepo)

	// --- Session Gate ---
	gate := session.NewGate(authService)
	defer gate.Close()
	unsubscribe := gate.Subscribe(func(user *domain.User) {
		if user != nil {
			metrics.ActiveSessions.Set(1)
		} else {
			metrics.ActiveSessions.Set(0)
		}
	})
	defer unsubscribe()
	gate.Start()

	// --- HTTP ---
	router := gin.Default() // Includes Logger and Recovery middleware
	api.SetupRoutes(router, cfg.JWT.Secret, gate, studentService, trainingService, fileStorage, userRepo)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
