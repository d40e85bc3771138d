package api

import (
	"net/http"

	"fittrack/gym-app/internal/service"

	"github.com/gin-gonic/gin"
)

// TrainerHandler holds the trainer service dependency.
type TrainerHandler struct {
	trainerService service.TrainerService
}

// NewTrainerHandler creates a new TrainerHandler.
func NewTrainerHandler(trainerService service.TrainerService) *TrainerHandler {
	return &TrainerHandler{trainerService: trainerService}
}

// Clients returns the caller's client roster, derived from confirmed
// bookings on their sessions.
func (h *TrainerHandler) Clients(c *gin.Context) {
	user, err := getUserFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	clients, err := h.trainerService.Clients(c.Request.Context(), user.ID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to list clients")
		return
	}
	respondList(c, http.StatusOK, "clients", clients, len(clients))
}
