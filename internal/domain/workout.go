package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise is a single exercise entry within a logged workout.
type Exercise struct {
	Name   string  `bson:"name" json:"name"`
	Sets   int     `bson:"sets" json:"sets"`
	Reps   int     `bson:"reps" json:"reps"`
	Weight float64 `bson:"weight" json:"weight"`
	Notes  string  `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Workout is a member's logged training session.
type Workout struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemberID       primitive.ObjectID `bson:"member" json:"memberId"`
	Date           time.Time          `bson:"date" json:"date"`
	Exercises      []Exercise         `bson:"exercises" json:"exercises"`
	Duration       int                `bson:"duration" json:"duration"` // minutes
	TotalVolume    float64            `bson:"totalVolume" json:"totalVolume"`
	CaloriesBurned int                `bson:"caloriesBurned,omitempty" json:"caloriesBurned,omitempty"`
	Notes          string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ComputeTotalVolume recalculates TotalVolume as the sum over all exercises
// of sets x reps x weight. Called on every save so the stored value never
// drifts from the exercise list.
func (w *Workout) ComputeTotalVolume() {
	var total float64
	for _, ex := range w.Exercises {
		total += float64(ex.Sets) * float64(ex.Reps) * ex.Weight
	}
	w.TotalVolume = total
}
