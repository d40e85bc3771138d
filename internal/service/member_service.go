package service

import (
	"context"
	"errors"
	"time"

	"fittrack/gym-app/internal/domain"
	"fittrack/gym-app/internal/repository"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

var ErrMemberNotFound = errors.New("member not found")

// defaultMemberPassword is assigned when an admin creates a member without
// one; the member is expected to change it on first login.
const defaultMemberPassword = "changeme123"

// MemberDetails is a member joined with their current membership.
type MemberDetails struct {
	domain.User
	Membership *domain.Membership `json:"membership,omitempty"`
}

// CreateMemberInput carries the fields for admin member creation. When plan
// details are present a membership and its completed payment are recorded
// alongside the user.
type CreateMemberInput struct {
	Name      string
	Email     string
	Password  string
	Phone     string
	PlanType  string
	StartDate *time.Time
	EndDate   *time.Time
	Price     float64
}

// UpdateMemberInput carries the admin-editable profile fields.
type UpdateMemberInput struct {
	Name  string
	Email string
	Phone string
}

// MemberService covers admin-side member administration.
type MemberService interface {
	List(ctx context.Context) ([]MemberDetails, error)
	Get(ctx context.Context, id primitive.ObjectID) (*MemberDetails, error)
	Create(ctx context.Context, in CreateMemberInput) (*MemberDetails, error)
	Update(ctx context.Context, id primitive.ObjectID, in UpdateMemberInput) (*domain.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// memberService implements the MemberService interface.
type memberService struct {
	userRepo       repository.UserRepository
	membershipRepo repository.MembershipRepository
	paymentRepo    repository.PaymentRepository
}

// NewMemberService creates a new instance of memberService.
func NewMemberService(
	userRepo repository.UserRepository,
	membershipRepo repository.MembershipRepository,
	paymentRepo repository.PaymentRepository,
) MemberService {
	return &memberService{
		userRepo:       userRepo,
		membershipRepo: membershipRepo,
		paymentRepo:    paymentRepo,
	}
}

// List returns all member-role users with their current memberships.
func (s *memberService) List(ctx context.Context) ([]MemberDetails, error) {
	users, err := s.userRepo.GetByRole(ctx, domain.RoleMember)
	if err != nil {
		return nil, err
	}

	out := make([]MemberDetails, 0, len(users))
	for _, user := range users {
		user.PasswordHash = ""
		details := MemberDetails{User: user}
		if membership, err := s.membershipRepo.GetCurrentByMember(ctx, user.ID); err == nil {
			details.Membership = membership
		}
		out = append(out, details)
	}
	return out, nil
}

// Get returns one member with their current membership.
func (s *memberService) Get(ctx context.Context, id primitive.ObjectID) (*MemberDetails, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	if !user.IsMember() {
		return nil, ErrMemberNotFound
	}
	user.PasswordHash = ""

	details := &MemberDetails{User: *user}
	if membership, err := s.membershipRepo.GetCurrentByMember(ctx, user.ID); err == nil {
		details.Membership = membership
	}
	return details, nil
}

// Create registers a member account and, when plan details are given, its
// membership and the completed membership payment.
func (s *memberService) Create(ctx context.Context, in CreateMemberInput) (*MemberDetails, error) {
	if in.Name == "" || in.Email == "" {
		return nil, errors.New("name and email are required")
	}

	password := in.Password
	if password == "" {
		password = defaultMemberPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	user := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hashed),
		Role:         domain.RoleMember,
		Phone:        in.Phone,
	}
	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}
	user.ID = userID
	user.PasswordHash = ""

	details := &MemberDetails{User: *user}
	if in.PlanType != "" {
		start := time.Now()
		if in.StartDate != nil {
			start = *in.StartDate
		}
		end := start.AddDate(0, 1, 0)
		if in.EndDate != nil {
			end = *in.EndDate
		}

		membership := &domain.Membership{
			MemberID:  userID,
			PlanType:  in.PlanType,
			Status:    domain.MembershipActive,
			StartDate: start,
			EndDate:   end,
			Price:     in.Price,
		}
		membershipID, err := s.membershipRepo.Create(ctx, membership)
		if err != nil {
			return nil, err
		}
		membership.ID = membershipID
		details.Membership = membership

		if in.Price > 0 {
			payment := &domain.Payment{
				MemberID:     userID,
				Amount:       in.Price,
				Type:         domain.PaymentMembership,
				Status:       domain.PaymentCompleted,
				PaymentDate:  time.Now(),
				MembershipID: &membershipID,
			}
			if _, err := s.paymentRepo.Create(ctx, payment); err != nil {
				log.Error().Err(err).Str("member", userID.Hex()).Msg("failed to record membership payment")
			}
		}
	}

	return details, nil
}

// Update modifies a member's profile fields.
func (s *memberService) Update(ctx context.Context, id primitive.ObjectID, in UpdateMemberInput) (*domain.User, error) {
	fields := map[string]interface{}{}
	if in.Name != "" {
		fields["name"] = in.Name
	}
	if in.Email != "" {
		fields["email"] = in.Email
	}
	if in.Phone != "" {
		fields["phone"] = in.Phone
	}
	if len(fields) == 0 {
		return nil, errors.New("nothing to update")
	}

	user, err := s.userRepo.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// Delete removes a member and their membership history.
func (s *memberService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMemberNotFound
		}
		return err
	}
	if err := s.membershipRepo.DeleteByMember(ctx, id); err != nil {
		log.Error().Err(err).Str("member", id.Hex()).Msg("failed to delete member memberships")
	}
	return nil
}
