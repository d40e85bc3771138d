package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CheckIn records a member entering a gym location. Day is CheckInTime
// truncated to local midnight; the (member, day) pair is unique so a member
// can check in at most once per calendar day.
type CheckIn struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemberID    primitive.ObjectID `bson:"member" json:"memberId"`
	Location    string             `bson:"location" json:"location"`
	CheckInTime time.Time          `bson:"checkInTime" json:"checkInTime"`
	Day         time.Time          `bson:"day" json:"-"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
