package api

import (
	"errors"
	"net/http"

	"fittrack/gym-app/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckInHandler holds the check-in service dependency.
type CheckInHandler struct {
	checkInService service.CheckInService
}

// NewCheckInHandler creates a new CheckInHandler.
func NewCheckInHandler(checkInService service.CheckInService) *CheckInHandler {
	return &CheckInHandler{checkInService: checkInService}
}

type CheckInRequest struct {
	Location string `json:"location"`
}

// CheckIn records the caller entering the gym. At most one per calendar day.
func (h *CheckInHandler) CheckIn(c *gin.Context) {
	user, err := getUserFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	// Body is optional; an empty one means the default location.
	var req CheckInRequest
	_ = c.ShouldBindJSON(&req)

	checkIn, err := h.checkInService.CheckIn(c.Request.Context(), user.ID, req.Location)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyCheckedIn) {
			abortWithFail(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "failed to check in")
		}
		return
	}
	respondData(c, http.StatusCreated, gin.H{"checkIn": checkIn})
}

// List returns the caller's check-in history, newest first.
func (h *CheckInHandler) List(c *gin.Context) {
	user, err := getUserFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	checkIns, err := h.checkInService.List(c.Request.Context(), user.ID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to list check-ins")
		return
	}
	respondList(c, http.StatusOK, "checkIns", checkIns, len(checkIns))
}
