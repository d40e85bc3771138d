package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanDifficulty type for workout plan difficulty levels
type PlanDifficulty string

const (
	DifficultyBeginner     PlanDifficulty = "Beginner"
	DifficultyIntermediate PlanDifficulty = "Intermediate"
	DifficultyAdvanced     PlanDifficulty = "Advanced"
)

// PlanCategory type for workout plan categories
type PlanCategory string

const (
	CategoryStrength    PlanCategory = "strength"
	CategoryCardio      PlanCategory = "cardio"
	CategoryFlexibility PlanCategory = "flexibility"
	CategoryMixed       PlanCategory = "mixed"
)

// PlanExercise is an exercise template within a workout plan. Weight is a
// pointer because plan templates may leave it open.
type PlanExercise struct {
	Name   string   `bson:"name" json:"name"`
	Sets   int      `bson:"sets" json:"sets"`
	Reps   int      `bson:"reps" json:"reps"`
	Weight *float64 `bson:"weight,omitempty" json:"weight,omitempty"`
	Notes  string   `bson:"notes,omitempty" json:"notes,omitempty"`
}

// WorkoutPlan is a reusable training program created by a trainer or admin
// and assignable to members.
type WorkoutPlan struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	Description string               `bson:"description" json:"description"`
	Duration    string               `bson:"duration" json:"duration"` // e.g. "8 weeks"
	Difficulty  PlanDifficulty       `bson:"difficulty" json:"difficulty"`
	Category    PlanCategory         `bson:"category" json:"category"`
	Exercises   []PlanExercise       `bson:"exercises" json:"exercises"`
	CreatedBy   primitive.ObjectID   `bson:"createdBy" json:"createdBy"`
	AssignedTo  []primitive.ObjectID `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}
