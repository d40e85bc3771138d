package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentType type for what a payment was for
type PaymentType string

const (
	PaymentMembership PaymentType = "membership"
	PaymentSession    PaymentType = "session"
	PaymentPlan       PaymentType = "plan"
)

// PaymentStatus type for payment lifecycle
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// Payment records money received from a member. Only completed payments
// count towards revenue aggregations.
type Payment struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	MemberID     primitive.ObjectID  `bson:"member" json:"memberId"`
	Amount       float64             `bson:"amount" json:"amount"`
	Type         PaymentType         `bson:"type" json:"type"`
	Status       PaymentStatus       `bson:"status" json:"status"`
	PaymentDate  time.Time           `bson:"paymentDate" json:"paymentDate"`
	MembershipID *primitive.ObjectID `bson:"membership,omitempty" json:"membershipId,omitempty"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt" json:"updatedAt"`
}
