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

// MemberHandler holds the member administration service dependency.
type MemberHandler struct {
	memberService service.MemberService
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(memberService service.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// --- Request Structs ---

type CreateMemberRequest struct {
	Name      string     `json:"name" binding:"required"`
	Email     string     `json:"email" binding:"required,email"`
	Password  string     `json:"password" binding:"omitempty,min=6"`
	Phone     string     `json:"phone"`
	PlanType  string     `json:"planType"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	Price     float64    `json:"price" binding:"min=0"`
}

type UpdateMemberRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`
}

// --- Handler Methods ---

// List returns all members with their current memberships.
func (h *MemberHandler) List(c *gin.Context) {
	members, err := h.memberService.List(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to list members")
		return
	}
	respondList(c, http.StatusOK, "members", members, len(members))
}

// Get returns one member with their current membership.
func (h *MemberHandler) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithFail(c, http.StatusBadRequest, "invalid member id")
		return
	}

	member, err := h.memberService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			abortWithFail(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "failed to load member")
		}
		return
	}
	respondData(c, http.StatusOK, gin.H{"member": member})
}

// Create registers a member account, optionally with a membership and its
// payment.
func (h *MemberHandler) Create(c *gin.Context) {
	var req CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithFail(c, http.StatusBadRequest, fmt.Sprintf("validation error: %v", err))
		return
	}

	member, err := h.memberService.Create(c.Request.Context(), service.CreateMemberInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Phone:     req.Phone,
		PlanType:  req.PlanType,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Price:     req.Price,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			abortWithFail(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "failed to create member")
		}
		return
	}
	respondData(c, http.StatusCreated, gin.H{"member": member})
}

// Update patches a member's profile fields.
func (h *MemberHandler) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithFail(c, http.StatusBadRequest, "invalid member id")
		return
	}

	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithFail(c, http.StatusBadRequest, fmt.Sprintf("validation error: %v", err))
		return
	}

	member, err := h.memberService.Update(c.Request.Context(), id, service.UpdateMemberInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			abortWithFail(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "failed to update member")
		}
		return
	}
	respondData(c, http.StatusOK, gin.H{"member": member})
}

// Delete removes a member and their memberships.
func (h *MemberHandler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithFail(c, http.StatusBadRequest, "invalid member id")
		return
	}

	if err := h.memberService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			abortWithFail(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "failed to delete member")
		}
		return
	}
	c.Status(http.StatusNoContent)
}
