package service

import (
	"context"
	"errors"
	"time"

	"fittrack/gym-app/internal/domain"
	"fittrack/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrStaffUserNotFound = errors.New("user for staff profile not found")
	ErrStaffExists       = errors.New("user already has a staff profile")
)

// StaffFilter selects which staff profiles to list.
type StaffFilter string

const (
	StaffFilterAll      StaffFilter = ""
	StaffFilterTrainers StaffFilter = "trainers"
	StaffFilterStaff    StaffFilter = "staff"
)

// StaffDetails is a staff profile joined with its user account.
type StaffDetails struct {
	domain.Staff
	User *domain.User `json:"user,omitempty"`
}

// CreateStaffInput carries the fields for creating a staff profile.
type CreateStaffInput struct {
	UserID          primitive.ObjectID
	Role            string
	Specializations []string
	Availability    map[string]string
	JoinDate        *time.Time
}

// StaffService covers admin-side staff administration.
type StaffService interface {
	List(ctx context.Context, filter StaffFilter) ([]StaffDetails, error)
	Create(ctx context.Context, in CreateStaffInput) (*domain.Staff, error)
}

// staffService implements the StaffService interface.
type staffService struct {
	staffRepo repository.StaffRepository
	userRepo  repository.UserRepository
}

// NewStaffService creates a new instance of staffService.
func NewStaffService(staffRepo repository.StaffRepository, userRepo repository.UserRepository) StaffService {
	return &staffService{
		staffRepo: staffRepo,
		userRepo:  userRepo,
	}
}

// List returns staff profiles with user details. "trainers" keeps only
// trainer accounts; "staff" keeps admin/trainer accounts whose staff role
// label is not "trainer".
func (s *staffService) List(ctx context.Context, filter StaffFilter) ([]StaffDetails, error) {
	var userIDs []primitive.ObjectID
	excludeRole := ""

	switch filter {
	case StaffFilterTrainers:
		users, err := s.userRepo.GetByRole(ctx, domain.RoleTrainer)
		if err != nil {
			return nil, err
		}
		userIDs = userObjectIDs(users)
	case StaffFilterStaff:
		users, err := s.userRepo.GetByRole(ctx, domain.RoleAdmin, domain.RoleTrainer)
		if err != nil {
			return nil, err
		}
		userIDs = userObjectIDs(users)
		excludeRole = "trainer"
	}

	staff, err := s.staffRepo.List(ctx, userIDs, excludeRole)
	if err != nil {
		return nil, err
	}

	out := make([]StaffDetails, 0, len(staff))
	for _, profile := range staff {
		details := StaffDetails{Staff: profile}
		if user, err := s.userRepo.GetByID(ctx, profile.UserID); err == nil {
			user.PasswordHash = ""
			details.User = user
		}
		out = append(out, details)
	}
	return out, nil
}

// Create attaches a staff profile to an existing user.
func (s *staffService) Create(ctx context.Context, in CreateStaffInput) (*domain.Staff, error) {
	if in.Role == "" {
		return nil, errors.New("staff role is required")
	}

	if _, err := s.userRepo.GetByID(ctx, in.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStaffUserNotFound
		}
		return nil, err
	}

	staff := &domain.Staff{
		UserID:          in.UserID,
		Role:            in.Role,
		Specializations: in.Specializations,
		Availability:    in.Availability,
	}
	if in.JoinDate != nil {
		staff.JoinDate = *in.JoinDate
	}

	id, err := s.staffRepo.Create(ctx, staff)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrStaffExists
		}
		return nil, err
	}
	staff.ID = id
	return staff, nil
}

func userObjectIDs(users []domain.User) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return ids
}
