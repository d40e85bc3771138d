package api

import (
	"net/http"
	"strconv"

	"fittrack/gym-app/internal/service"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler holds the analytics service dependency.
type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// Dashboard returns today's activity and membership counts.
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	stats, err := h.analyticsService.Dashboard(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to load dashboard")
		return
	}
	respondData(c, http.StatusOK, gin.H{"stats": stats})
}

// Revenue returns the monthly revenue trend and plan distribution.
func (h *AnalyticsHandler) Revenue(c *gin.Context) {
	months, err := strconv.Atoi(c.DefaultQuery("months", "6"))
	if err != nil || months <= 0 {
		abortWithFail(c, http.StatusBadRequest, "months must be a positive integer")
		return
	}

	analytics, err := h.analyticsService.Revenue(c.Request.Context(), months)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to load revenue analytics")
		return
	}
	respondData(c, http.StatusOK, gin.H{"analytics": analytics})
}
