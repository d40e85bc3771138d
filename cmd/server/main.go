package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fittrack/gym-app/internal/api"
	"fittrack/gym-app/internal/config"
	"fittrack/gym-app/internal/logger"
	"fittrack/gym-app/internal/repository/mongo"
	"fittrack/gym-app/internal/service"
	"fittrack/gym-app/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	logger.Init()
	log.Info().Msg("starting FitTrack gym server")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatal().Err(err).Msg("could not connect to MongoDB")
	}
	defer func() {
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Error().Err(err).Msg("failed to disconnect MongoDB")
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Info().Str("database", cfg.Database.Name).Msg("database connection established")

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		ensure := func(name string, err error) {
			if err != nil {
				log.Error().Err(err).Str("collection", name).Msg("index creation failed")
			}
		}
		ensure("users", mongo.EnsureUserIndexes(ctx, appDB.Collection("users")))
		ensure("memberships", mongo.EnsureMembershipIndexes(ctx, appDB.Collection("memberships")))
		ensure("sessions", mongo.EnsureSessionIndexes(ctx, appDB.Collection("sessions")))
		ensure("bookings", mongo.EnsureBookingIndexes(ctx, appDB.Collection("bookings")))
		ensure("workouts", mongo.EnsureWorkoutIndexes(ctx, appDB.Collection("workouts")))
		ensure("progress", mongo.EnsureProgressIndexes(ctx, appDB.Collection("progress")))
		ensure("checkins", mongo.EnsureCheckInIndexes(ctx, appDB.Collection("checkins")))
		ensure("staff", mongo.EnsureStaffIndexes(ctx, appDB.Collection("staff")))
		ensure("workout_plans", mongo.EnsureWorkoutPlanIndexes(ctx, appDB.Collection("workout_plans")))
		ensure("payments", mongo.EnsurePaymentIndexes(ctx, appDB.Collection("payments")))
		log.Info().Msg("index creation process completed")
	}()

	// --- Initialize Storage ---
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize S3 storage")
	}

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	membershipRepo := mongo.NewMongoMembershipRepository(appDB)
	sessionRepo := mongo.NewMongoSessionRepository(appDB)
	bookingRepo := mongo.NewMongoBookingRepository(appDB)
	workoutRepo := mongo.NewMongoWorkoutRepository(appDB)
	progressRepo := mongo.NewMongoProgressRepository(appDB)
	checkInRepo := mongo.NewMongoCheckInRepository(appDB)
	staffRepo := mongo.NewMongoStaffRepository(appDB)
	planRepo := mongo.NewMongoWorkoutPlanRepository(appDB)
	paymentRepo := mongo.NewMongoPaymentRepository(appDB)

	// --- Initialize Services ---
	streakWindow := cfg.Stats.StreakWindow
	services := api.Services{
		Auth:      service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration),
		Session:   service.NewSessionService(sessionRepo, bookingRepo, userRepo),
		Workout:   service.NewWorkoutService(workoutRepo, streakWindow),
		Progress:  service.NewProgressService(progressRepo, fileStorage),
		CheckIn:   service.NewCheckInService(checkInRepo),
		Home:      service.NewHomeService(membershipRepo, checkInRepo, workoutRepo, bookingRepo, sessionRepo, userRepo, streakWindow),
		Member:    service.NewMemberService(userRepo, membershipRepo, paymentRepo),
		Staff:     service.NewStaffService(staffRepo, userRepo),
		Trainer:   service.NewTrainerService(sessionRepo, bookingRepo, workoutRepo, userRepo, streakWindow),
		Plan:      service.NewWorkoutPlanService(planRepo, userRepo),
		Analytics: service.NewAnalyticsService(membershipRepo, paymentRepo, checkInRepo),
	}

	// --- Initialize Gin Engine ---
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// --- Setup Routes ---
	api.SetupRoutes(router, services)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("address", cfg.Server.Address).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen and serve failed")
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}
