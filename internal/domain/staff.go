package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Staff is the employment profile attached to a user account. A user has at
// most one staff profile.
type Staff struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"user" json:"userId"`
	Role            string             `bson:"role" json:"role"` // job title, e.g. "Head Trainer"
	Specializations []string           `bson:"specialization,omitempty" json:"specialization,omitempty"`
	Rating          float64            `bson:"rating" json:"rating"`
	ActiveClients   int                `bson:"activeClients" json:"activeClients"`
	JoinDate        time.Time          `bson:"joinDate" json:"joinDate"`
	Availability    map[string]string  `bson:"availability,omitempty" json:"availability,omitempty"` // weekday -> hours
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
