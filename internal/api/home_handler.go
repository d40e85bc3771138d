package api

import (
	"net/http"

	"fittrack/gym-app/internal/service"

	"github.com/gin-gonic/gin"
)

// HomeHandler holds the member home service dependency.
type HomeHandler struct {
	homeService service.HomeService
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(homeService service.HomeService) *HomeHandler {
	return &HomeHandler{homeService: homeService}
}

// Summary returns the member landing screen payload.
func (h *HomeHandler) Summary(c *gin.Context) {
	user, err := getUserFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	summary, err := h.homeService.Summary(c.Request.Context(), user.ID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to load home summary")
		return
	}
	respondData(c, http.StatusOK, gin.H{"home": summary})
}
