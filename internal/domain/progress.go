package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Progress is a dated body-measurement entry for a member.
// PhotoKey, when set, is the object-storage key of an attached progress photo.
type Progress struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemberID  primitive.ObjectID `bson:"member" json:"memberId"`
	Date      time.Time          `bson:"date" json:"date"`
	Weight    *float64           `bson:"weight,omitempty" json:"weight,omitempty"`
	BodyFat   *float64           `bson:"bodyFat,omitempty" json:"bodyFat,omitempty"`
	Muscle    *float64           `bson:"muscle,omitempty" json:"muscle,omitempty"`
	Chest     *float64           `bson:"chest,omitempty" json:"chest,omitempty"`
	Waist     *float64           `bson:"waist,omitempty" json:"waist,omitempty"`
	Arms      *float64           `bson:"arms,omitempty" json:"arms,omitempty"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
	PhotoKey  string             `bson:"photoKey,omitempty" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
