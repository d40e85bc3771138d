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

// SessionHandler holds the session service dependency.
type SessionHandler struct {
	sessionService service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// --- Request Structs ---

type BookSessionRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
}

type SessionRequest struct {
	Type     string `json:"type" binding:"required"`
	Date     string `json:"date" binding:"required"` // YYYY-MM-DD
	Time     string `json:"time" binding:"required"` // HH:MM
	Duration int    `json:"duration" binding:"required,min=1"`
	MaxSpots int    `json:"maxSpots" binding:"required,min=1"`
	Status   string `json:"status" binding:"omitempty,oneof=scheduled completed cancelled"`
}

// parseDateQuery reads an optional YYYY-MM-DD query parameter.
func parseDateQuery(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid %s, expected YYYY-MM-DD", name)
	}
	return &t, nil
}

// --- Handler Methods ---

// ListAvailable returns bookable sessions with remaining spots.
func (h *SessionHandler) ListAvailable(c *gin.Context) {
	after, err := parseDateQuery(c, "date")
	if err != nil {
		abortWithFail(c, http.StatusBadRequest, err.Error())
		return
	}

	sessions, err := h.sessionService.ListAvailable(c.Request.Context(), after)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to list sessions")
		return
	}
	respondList(c, http.StatusOK, "sessions", sessions, len(sessions))
}

// MyBookings returns the caller's bookings with session details.
func (h *SessionHandler) MyBookings(c *gin.Context) {
	user, err := getUserFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	bookings, err := h.sessionService.MyBookings(c.Request.Context(), user.ID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to list bookings")
		return
	}
	respondList(c, http.StatusOK, "bookings", bookings, len(bookings))
}

// Book creates a confirmed booking on a session for the caller.
func (h *SessionHandler) Book(c *gin.Context) {
	user, err := getUserFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	var req BookSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithFail(c, http.StatusBadRequest, "sessionId is required")
		return
	}
	sessionID, err := primitive.ObjectIDFromHex(req.SessionID)
	if err != nil {
		abortWithFail(c, http.StatusBadRequest, "invalid session id")
		return
	}

	booking, err := h.sessionService.Book(c.Request.Context(), user.ID, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			abortWithFail(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrAlreadyBooked), errors.Is(err, service.ErrSessionFull):
			abortWithFail(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "failed to book session")
		}
		return
	}

	respondData(c, http.StatusCreated, gin.H{"booking": booking})
}

// CancelBooking cancels a confirmed booking owned by the caller.
func (h *SessionHandler) CancelBooking(c *gin.Context) {
	user, err := getUserFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithFail(c, http.StatusBadRequest, "invalid booking id")
		return
	}

	booking, err := h.sessionService.CancelBooking(c.Request.Context(), user.ID, bookingID)
	if err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			abortWithFail(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "failed to cancel booking")
		}
		return
	}

	respondData(c, http.StatusOK, gin.H{"booking": booking})
}

// TrainerSessions returns the caller's own sessions with attendees.
func (h *SessionHandler) TrainerSessions(c *gin.Context) {
	user, err := getUserFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	date, err := parseDateQuery(c, "date")
	if err != nil {
		abortWithFail(c, http.StatusBadRequest, err.Error())
		return
	}

	sessions, err := h.sessionService.TrainerSessions(c.Request.Context(), user.ID, date)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to list sessions")
		return
	}
	respondList(c, http.StatusOK, "sessions", sessions, len(sessions))
}

// Create schedules a new session owned by the caller.
func (h *SessionHandler) Create(c *gin.Context) {
	user, err := getUserFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	in, ok := h.bindSessionInput(c)
	if !ok {
		return
	}

	session, err := h.sessionService.Create(c.Request.Context(), user.ID, *in)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to create session")
		return
	}
	respondData(c, http.StatusCreated, gin.H{"session": session})
}

// Update modifies a session owned by the caller.
func (h *SessionHandler) Update(c *gin.Context) {
	user, err := getUserFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	sessionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithFail(c, http.StatusBadRequest, "invalid session id")
		return
	}

	in, ok := h.bindSessionInput(c)
	if !ok {
		return
	}

	session, err := h.sessionService.Update(c.Request.Context(), user.ID, sessionID, *in)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			abortWithFail(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "failed to update session")
		}
		return
	}
	respondData(c, http.StatusOK, gin.H{"session": session})
}

// Delete removes a session owned by the caller.
func (h *SessionHandler) Delete(c *gin.Context) {
	user, err := getUserFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	sessionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithFail(c, http.StatusBadRequest, "invalid session id")
		return
	}

	if err := h.sessionService.Delete(c.Request.Context(), user.ID, sessionID); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			abortWithFail(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "failed to delete session")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SessionHandler) bindSessionInput(c *gin.Context) (*service.SessionInput, bool) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithFail(c, http.StatusBadRequest, fmt.Sprintf("validation error: %v", err))
		return nil, false
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		abortWithFail(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return nil, false
	}

	status := domain.SessionScheduled
	if req.Status != "" {
		status = domain.SessionStatus(req.Status)
	}

	return &service.SessionInput{
		Type:     req.Type,
		Date:     date,
		Time:     req.Time,
		Duration: req.Duration,
		MaxSpots: req.MaxSpots,
		Status:   status,
	}, true
}
