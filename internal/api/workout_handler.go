package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"fittrack/gym-app/internal/domain"
	"fittrack/gym-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutHandler holds the workout service dependency.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- Request Structs ---

type ExerciseRequest struct {
	Name   string  `json:"name" binding:"required"`
	Sets   int     `json:"sets" binding:"required,min=1"`
	Reps   int     `json:"reps" binding:"required,min=1"`
	Weight float64 `json:"weight" binding:"min=0"`
	Notes  string  `json:"notes"`
}

type WorkoutRequest struct {
	Date           *time.Time        `json:"date"`
	Exercises      []ExerciseRequest `json:"exercises" binding:"required,min=1,dive"`
	Duration       int               `json:"duration" binding:"min=0"`
	CaloriesBurned int               `json:"caloriesBurned" binding:"min=0"`
	Notes          string            `json:"notes"`
}

func (r *WorkoutRequest) toInput() service.WorkoutInput {
	exercises := make([]domain.Exercise, len(r.Exercises))
	for i, ex := range r.Exercises {
		exercises[i] = domain.Exercise{
			Name:   ex.Name,
			Sets:   ex.Sets,
			Reps:   ex.Reps,
			Weight: ex.Weight,
			Notes:  ex.Notes,
		}
	}
	return service.WorkoutInput{
		Date:           r.Date,
		Exercises:      exercises,
		Duration:       r.Duration,
		CaloriesBurned: r.CaloriesBurned,
		Notes:          r.Notes,
	}
}

// --- Handler Methods ---

// List returns the caller's workouts, newest first.
func (h *WorkoutHandler) List(c *gin.Context) {
	user, err := getUserFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	workouts, err := h.workoutService.List(c.Request.Context(), user.ID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to list workouts")
		return
	}
	respondList(c, http.StatusOK, "workouts", workouts, len(workouts))
}

// Create logs a new workout for the caller.
func (h *WorkoutHandler) Create(c *gin.Context) {
	user, err := getUserFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithFail(c, http.StatusBadRequest, fmt.Sprintf("validation error: %v", err))
		return
	}

	workout, err := h.workoutService.Create(c.Request.Context(), user.ID, req.toInput())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to log workout")
		return
	}
	respondData(c, http.StatusCreated, gin.H{"workout": workout})
}

// Update replaces a workout owned by the caller.
func (h *WorkoutHandler) Update(c *gin.Context) {
	user, err := getUserFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	workoutID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithFail(c, http.StatusBadRequest, "invalid workout id")
		return
	}

	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithFail(c, http.StatusBadRequest, fmt.Sprintf("validation error: %v", err))
		return
	}

	workout, err := h.workoutService.Update(c.Request.Context(), user.ID, workoutID, req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrWorkoutNotFound) {
			abortWithFail(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "failed to update workout")
		}
		return
	}
	respondData(c, http.StatusOK, gin.H{"workout": workout})
}

// Delete removes a workout owned by the caller.
func (h *WorkoutHandler) Delete(c *gin.Context) {
	user, err := getUserFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	workoutID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithFail(c, http.StatusBadRequest, "invalid workout id")
		return
	}

	if err := h.workoutService.Delete(c.Request.Context(), user.ID, workoutID); err != nil {
		if errors.Is(err, service.ErrWorkoutNotFound) {
			abortWithFail(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "failed to delete workout")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// Stats returns the caller's derived workout statistics.
func (h *WorkoutHandler) Stats(c *gin.Context) {
	user, err := getUserFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	stats, err := h.workoutService.Stats(c.Request.Context(), user.ID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	respondData(c, http.StatusOK, gin.H{"stats": stats})
}
