package api

import (
	"net/http"

	"fittrack/gym-app/internal/domain"
	"fittrack/gym-app/internal/service"

	"github.com/gin-gonic/gin"
)

// Services bundles everything SetupRoutes wires handlers to.
type Services struct {
	Auth      service.AuthService
	Session   service.SessionService
	Workout   service.WorkoutService
	Progress  service.ProgressService
	CheckIn   service.CheckInService
	Home      service.HomeService
	Member    service.MemberService
	Staff     service.StaffService
	Trainer   service.TrainerService
	Plan      service.WorkoutPlanService
	Analytics service.AnalyticsService
}

func SetupRoutes(router *gin.Engine, svc Services) {
	authHandler := NewAuthHandler(svc.Auth)
	sessionHandler := NewSessionHandler(svc.Session)
	workoutHandler := NewWorkoutHandler(svc.Workout)
	progressHandler := NewProgressHandler(svc.Progress)
	checkInHandler := NewCheckInHandler(svc.CheckIn)
	homeHandler := NewHomeHandler(svc.Home)
	memberHandler := NewMemberHandler(svc.Member)
	staffHandler := NewStaffHandler(svc.Staff)
	trainerHandler := NewTrainerHandler(svc.Trainer)
	planHandler := NewPlanHandler(svc.Plan)
	analyticsHandler := NewAnalyticsHandler(svc.Analytics)

	authMiddleware := AuthMiddleware(svc.Auth)
	staffOnly := RoleMiddleware(domain.RoleTrainer, domain.RoleAdmin)
	adminOnly := RoleMiddleware(domain.RoleAdmin)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.GET("/me", authMiddleware, authHandler.Me)
	}

	protected := api.Group("")
	protected.Use(authMiddleware)
	{
		sessions := protected.Group("/sessions")
		{
			sessions.GET("/available", sessionHandler.ListAvailable)
			sessions.GET("/my-bookings", sessionHandler.MyBookings)
			sessions.POST("/book", sessionHandler.Book)
			sessions.PATCH("/cancel/:id", sessionHandler.CancelBooking)
			sessions.GET("/trainer", staffOnly, sessionHandler.TrainerSessions)
			sessions.POST("", staffOnly, sessionHandler.Create)
			sessions.PATCH("/:id", staffOnly, sessionHandler.Update)
			sessions.DELETE("/:id", staffOnly, sessionHandler.Delete)
		}

		workouts := protected.Group("/workouts")
		{
			workouts.GET("", workoutHandler.List)
			workouts.POST("", workoutHandler.Create)
			workouts.GET("/stats", workoutHandler.Stats)
			workouts.PATCH("/:id", workoutHandler.Update)
			workouts.DELETE("/:id", workoutHandler.Delete)
		}

		progress := protected.Group("/progress")
		{
			progress.GET("", progressHandler.List)
			progress.POST("", progressHandler.Create)
			progress.GET("/stats", progressHandler.Stats)
			progress.POST("/:id/photo-url", progressHandler.RequestPhotoUpload)
			progress.POST("/:id/photo", progressHandler.ConfirmPhoto)
			progress.GET("/:id/photo-url", progressHandler.PhotoDownloadURL)
		}

		checkins := protected.Group("/checkins")
		{
			checkins.POST("", checkInHandler.CheckIn)
			checkins.GET("", checkInHandler.List)
		}

		protected.GET("/member-home", homeHandler.Summary)

		plans := protected.Group("/plans")
		{
			plans.GET("", planHandler.List)
			plans.POST("", staffOnly, planHandler.Create)
			plans.PATCH("/:id", staffOnly, planHandler.Update)
			plans.DELETE("/:id", staffOnly, planHandler.Delete)
			plans.POST("/:id/assign", staffOnly, planHandler.Assign)
		}

		trainer := protected.Group("/trainer")
		trainer.Use(staffOnly)
		{
			trainer.GET("/clients", trainerHandler.Clients)
		}

		members := protected.Group("/members")
		members.Use(adminOnly)
		{
			members.GET("", memberHandler.List)
			members.POST("", memberHandler.Create)
			members.GET("/:id", memberHandler.Get)
			members.PATCH("/:id", memberHandler.Update)
			members.DELETE("/:id", memberHandler.Delete)
		}

		staff := protected.Group("/staff")
		staff.Use(adminOnly)
		{
			staff.GET("", staffHandler.List)
			staff.POST("", staffHandler.Create)
		}

		analytics := protected.Group("/analytics")
		analytics.Use(adminOnly)
		{
			analytics.GET("/dashboard", analyticsHandler.Dashboard)
			analytics.GET("/revenue", analyticsHandler.Revenue)
		}
	}
}
