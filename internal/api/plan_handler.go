package api

import (
	"errors"
	"fmt"
	"net/http"

	"fittrack/gym-app/internal/domain"
	"fittrack/gym-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanHandler holds the workout plan service dependency.
type PlanHandler struct {
	planService service.WorkoutPlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.WorkoutPlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- Request Structs ---

type PlanExerciseRequest struct {
	Name   string   `json:"name" binding:"required"`
	Sets   int      `json:"sets" binding:"required,min=1"`
	Reps   int      `json:"reps" binding:"required,min=1"`
	Weight *float64 `json:"weight" binding:"omitempty,min=0"`
	Notes  string   `json:"notes"`
}

type PlanRequest struct {
	Name        string                `json:"name" binding:"required"`
	Description string                `json:"description"`
	Duration    string                `json:"duration"`
	Difficulty  string                `json:"difficulty" binding:"omitempty,oneof=Beginner Intermediate Advanced"`
	Category    string                `json:"category" binding:"omitempty,oneof=strength cardio flexibility mixed"`
	Exercises   []PlanExerciseRequest `json:"exercises" binding:"required,min=1,dive"`
}

type AssignPlanRequest struct {
	MemberID string `json:"memberId" binding:"required"`
}

func (r *PlanRequest) toInput() service.PlanInput {
	exercises := make([]domain.PlanExercise, len(r.Exercises))
	for i, ex := range r.Exercises {
		exercises[i] = domain.PlanExercise{
			Name:   ex.Name,
			Sets:   ex.Sets,
			Reps:   ex.Reps,
			Weight: ex.Weight,
			Notes:  ex.Notes,
		}
	}
	return service.PlanInput{
		Name:        r.Name,
		Description: r.Description,
		Duration:    r.Duration,
		Difficulty:  domain.PlanDifficulty(r.Difficulty),
		Category:    domain.PlanCategory(r.Category),
		Exercises:   exercises,
	}
}

// --- Handler Methods ---

// List returns workout plans, optionally filtered by category.
func (h *PlanHandler) List(c *gin.Context) {
	category := domain.PlanCategory(c.Query("category"))

	plans, err := h.planService.List(c.Request.Context(), category)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to list plans")
		return
	}
	respondList(c, http.StatusOK, "plans", plans, len(plans))
}

// Create adds a new workout plan owned by the caller.
func (h *PlanHandler) Create(c *gin.Context) {
	user, err := getUserFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithFail(c, http.StatusBadRequest, fmt.Sprintf("validation error: %v", err))
		return
	}

	plan, err := h.planService.Create(c.Request.Context(), user.ID, req.toInput())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to create plan")
		return
	}
	respondData(c, http.StatusCreated, gin.H{"plan": plan})
}

// Update modifies a plan created by the caller.
func (h *PlanHandler) Update(c *gin.Context) {
	user, err := getUserFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	planID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithFail(c, http.StatusBadRequest, "invalid plan id")
		return
	}

	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithFail(c, http.StatusBadRequest, fmt.Sprintf("validation error: %v", err))
		return
	}

	plan, err := h.planService.Update(c.Request.Context(), user.ID, planID, req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithFail(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "failed to update plan")
		}
		return
	}
	respondData(c, http.StatusOK, gin.H{"plan": plan})
}

// Delete removes a plan created by the caller.
func (h *PlanHandler) Delete(c *gin.Context) {
	user, err := getUserFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	planID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithFail(c, http.StatusBadRequest, "invalid plan id")
		return
	}

	if err := h.planService.Delete(c.Request.Context(), user.ID, planID); err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithFail(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "failed to delete plan")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// Assign adds a member to a plan's assignee list.
func (h *PlanHandler) Assign(c *gin.Context) {
	planID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithFail(c, http.StatusBadRequest, "invalid plan id")
		return
	}

	var req AssignPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithFail(c, http.StatusBadRequest, "memberId is required")
		return
	}
	memberID, err := primitive.ObjectIDFromHex(req.MemberID)
	if err != nil {
		abortWithFail(c, http.StatusBadRequest, "invalid member id")
		return
	}

	plan, err := h.planService.Assign(c.Request.Context(), planID, memberID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			abortWithFail(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrMemberNotFound):
			abortWithFail(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "failed to assign plan")
		}
		return
	}
	respondData(c, http.StatusOK, gin.H{"plan": plan})
}
