package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionStatus type for class/training slot lifecycle
type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

// Session represents a class or training slot offered by a trainer.
// BookedSpots is a denormalized counter kept in sync with the number of
// confirmed bookings by explicit increment/decrement on book/cancel.
type Session struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Type        string               `bson:"type" json:"type"`
	TrainerID   primitive.ObjectID   `bson:"trainer" json:"trainerId"`
	Date        time.Time            `bson:"date" json:"date"`
	Time        string               `bson:"time" json:"time"` // e.g. "18:30"
	Duration    int                  `bson:"duration" json:"duration"` // minutes
	MaxSpots    int                  `bson:"maxSpots" json:"maxSpots"`
	BookedSpots int                  `bson:"bookedSpots" json:"bookedSpots"`
	Status      SessionStatus        `bson:"status" json:"status"`
	BookingIDs  []primitive.ObjectID `bson:"bookings,omitempty" json:"bookings,omitempty"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}
