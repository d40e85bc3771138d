package service

import (
	"context"
	"errors"

	"fittrack/gym-app/internal/domain"
	"fittrack/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrPlanNotFound = errors.New("workout plan not found")

// PlanInput carries the writable fields of a workout plan.
type PlanInput struct {
	Name        string
	Description string
	Duration    string
	Difficulty  domain.PlanDifficulty
	Category    domain.PlanCategory
	Exercises   []domain.PlanExercise
}

// WorkoutPlanService covers the workout plan catalog.
type WorkoutPlanService interface {
	List(ctx context.Context, category domain.PlanCategory) ([]domain.WorkoutPlan, error)
	Create(ctx context.Context, creatorID primitive.ObjectID, in PlanInput) (*domain.WorkoutPlan, error)
	Update(ctx context.Context, creatorID, planID primitive.ObjectID, in PlanInput) (*domain.WorkoutPlan, error)
	Delete(ctx context.Context, creatorID, planID primitive.ObjectID) error
	Assign(ctx context.Context, planID, memberID primitive.ObjectID) (*domain.WorkoutPlan, error)
}

// workoutPlanService implements the WorkoutPlanService interface.
type workoutPlanService struct {
	planRepo repository.WorkoutPlanRepository
	userRepo repository.UserRepository
}

// NewWorkoutPlanService creates a new instance of workoutPlanService.
func NewWorkoutPlanService(planRepo repository.WorkoutPlanRepository, userRepo repository.UserRepository) WorkoutPlanService {
	return &workoutPlanService{
		planRepo: planRepo,
		userRepo: userRepo,
	}
}

// List returns plans, optionally filtered by category ("all" means no filter).
func (s *workoutPlanService) List(ctx context.Context, category domain.PlanCategory) ([]domain.WorkoutPlan, error) {
	if category == "all" {
		category = ""
	}
	return s.planRepo.List(ctx, category)
}

// Create adds a plan to the catalog, owned by its creator.
func (s *workoutPlanService) Create(ctx context.Context, creatorID primitive.ObjectID, in PlanInput) (*domain.WorkoutPlan, error) {
	if len(in.Exercises) == 0 {
		return nil, errors.New("a plan needs at least one exercise")
	}

	plan := &domain.WorkoutPlan{
		Name:        in.Name,
		Description: in.Description,
		Duration:    in.Duration,
		Difficulty:  in.Difficulty,
		Category:    in.Category,
		Exercises:   in.Exercises,
		CreatedBy:   creatorID,
	}

	id, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	plan.ID = id
	return plan, nil
}

// Update modifies a plan created by the caller.
func (s *workoutPlanService) Update(ctx context.Context, creatorID, planID primitive.ObjectID, in PlanInput) (*domain.WorkoutPlan, error) {
	fields := map[string]interface{}{
		"name":        in.Name,
		"description": in.Description,
		"duration":    in.Duration,
		"difficulty":  in.Difficulty,
		"category":    in.Category,
		"exercises":   in.Exercises,
	}

	plan, err := s.planRepo.UpdateOwned(ctx, planID, creatorID, fields)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

// Delete removes a plan created by the caller.
func (s *workoutPlanService) Delete(ctx context.Context, creatorID, planID primitive.ObjectID) error {
	err := s.planRepo.DeleteOwned(ctx, planID, creatorID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPlanNotFound
	}
	return err
}

// Assign adds a member to a plan's assignment list.
func (s *workoutPlanService) Assign(ctx context.Context, planID, memberID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	if _, err := s.userRepo.GetByID(ctx, memberID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	plan, err := s.planRepo.Assign(ctx, planID, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}
