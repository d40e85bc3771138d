package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"fittrack/gym-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressHandler holds the progress service dependency.
type ProgressHandler struct {
	progressService service.ProgressService
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(progressService service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// --- Request Structs ---

type ProgressRequest struct {
	Date    *time.Time `json:"date"`
	Weight  *float64   `json:"weight" binding:"omitempty,gt=0"`
	BodyFat *float64   `json:"bodyFat" binding:"omitempty,gte=0"`
	Muscle  *float64   `json:"muscle" binding:"omitempty,gte=0"`
	Chest   *float64   `json:"chest" binding:"omitempty,gt=0"`
	Waist   *float64   `json:"waist" binding:"omitempty,gt=0"`
	Arms    *float64   `json:"arms" binding:"omitempty,gt=0"`
	Notes   string     `json:"notes"`
}

type PhotoUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type PhotoConfirmRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
}

// --- Handler Methods ---

// List returns the caller's progress entries, newest first.
func (h *ProgressHandler) List(c *gin.Context) {
	user, err := getUserFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "0"), 10, 64)
	entries, err := h.progressService.List(c.Request.Context(), user.ID, limit)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to list progress")
		return
	}
	respondList(c, http.StatusOK, "progress", entries, len(entries))
}

// Create records a new measurement entry for the caller.
func (h *ProgressHandler) Create(c *gin.Context) {
	user, err := getUserFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	var req ProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithFail(c, http.StatusBadRequest, fmt.Sprintf("validation error: %v", err))
		return
	}

	entry, err := h.progressService.Create(c.Request.Context(), user.ID, service.ProgressInput{
		Date:    req.Date,
		Weight:  req.Weight,
		BodyFat: req.BodyFat,
		Muscle:  req.Muscle,
		Chest:   req.Chest,
		Waist:   req.Waist,
		Arms:    req.Arms,
		Notes:   req.Notes,
	})
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to record progress")
		return
	}
	respondData(c, http.StatusCreated, gin.H{"progress": entry})
}

// Stats compares the caller's newest entry against their oldest.
func (h *ProgressHandler) Stats(c *gin.Context) {
	user, err := getUserFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	stats, err := h.progressService.Stats(c.Request.Context(), user.ID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	respondData(c, http.StatusOK, gin.H{"stats": stats})
}

// RequestPhotoUpload issues a presigned PUT URL for a progress photo.
func (h *ProgressHandler) RequestPhotoUpload(c *gin.Context) {
	user, err := getUserFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	progressID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithFail(c, http.StatusBadRequest, "invalid progress id")
		return
	}

	var req PhotoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithFail(c, http.StatusBadRequest, "contentType is required")
		return
	}

	grant, err := h.progressService.RequestPhotoUploadURL(c.Request.Context(), user.ID, progressID, req.ContentType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProgressNotFound):
			abortWithFail(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrPhotoURLFailed):
			abortWithError(c, http.StatusInternalServerError, err.Error())
		default:
			abortWithFail(c, http.StatusBadRequest, err.Error())
		}
		return
	}
	respondData(c, http.StatusOK, gin.H{"uploadUrl": grant.UploadURL, "objectKey": grant.ObjectKey})
}

// ConfirmPhoto records the uploaded object key on the progress entry.
func (h *ProgressHandler) ConfirmPhoto(c *gin.Context) {
	user, err := getUserFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	progressID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithFail(c, http.StatusBadRequest, "invalid progress id")
		return
	}

	var req PhotoConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithFail(c, http.StatusBadRequest, "objectKey is required")
		return
	}

	if err := h.progressService.ConfirmPhoto(c.Request.Context(), user.ID, progressID, req.ObjectKey); err != nil {
		if errors.Is(err, service.ErrProgressNotFound) {
			abortWithFail(c, http.StatusNotFound, err.Error())
		} else {
			abortWithFail(c, http.StatusBadRequest, err.Error())
		}
		return
	}
	respondSuccess(c, http.StatusOK, nil)
}

// PhotoDownloadURL issues a presigned GET URL for the entry's photo.
func (h *ProgressHandler) PhotoDownloadURL(c *gin.Context) {
	user, err := getUserFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	progressID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithFail(c, http.StatusBadRequest, "invalid progress id")
		return
	}

	url, err := h.progressService.PhotoDownloadURL(c.Request.Context(), user.ID, progressID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProgressNotFound), errors.Is(err, service.ErrNoPhoto):
			abortWithFail(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "failed to generate photo URL")
		}
		return
	}
	respondData(c, http.StatusOK, gin.H{"downloadUrl": url})
}
