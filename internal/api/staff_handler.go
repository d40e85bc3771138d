package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"fittrack/gym-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StaffHandler holds the staff administration service dependency.
type StaffHandler struct {
	staffService service.StaffService
}

// NewStaffHandler creates a new StaffHandler.
func NewStaffHandler(staffService service.StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService}
}

type CreateStaffRequest struct {
	UserID          string            `json:"userId" binding:"required"`
	Role            string            `json:"role" binding:"required"`
	Specializations []string          `json:"specialization"`
	Availability    map[string]string `json:"availability"`
	JoinDate        *time.Time        `json:"joinDate"`
}

// List returns staff profiles, optionally filtered to trainers or non-trainer staff.
func (h *StaffHandler) List(c *gin.Context) {
	filter := service.StaffFilter(c.Query("filter"))

	staff, err := h.staffService.List(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to list staff")
		return
	}
	respondList(c, http.StatusOK, "staff", staff, len(staff))
}

// Create attaches a staff profile to an existing user.
func (h *StaffHandler) Create(c *gin.Context) {
	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithFail(c, http.StatusBadRequest, fmt.Sprintf("validation error: %v", err))
		return
	}

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		abortWithFail(c, http.StatusBadRequest, "invalid user id")
		return
	}

	staff, err := h.staffService.Create(c.Request.Context(), service.CreateStaffInput{
		UserID:          userID,
		Role:            req.Role,
		Specializations: req.Specializations,
		Availability:    req.Availability,
		JoinDate:        req.JoinDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStaffUserNotFound):
			abortWithFail(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrStaffExists):
			abortWithFail(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "failed to create staff profile")
		}
		return
	}
	respondData(c, http.StatusCreated, gin.H{"staff": staff})
}
