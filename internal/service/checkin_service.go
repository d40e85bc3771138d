package service

import (
	"context"
	"errors"
	"time"

	"fittrack/gym-app/internal/domain"
	"fittrack/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrAlreadyCheckedIn = errors.New("you have already checked in today")

// DefaultLocation is used when a check-in does not name a gym location.
const DefaultLocation = "FitTrack Downtown"

// checkInHistoryLimit caps the number of check-ins returned by listing.
const checkInHistoryLimit = 50

// CheckInService covers member gym check-ins.
type CheckInService interface {
	CheckIn(ctx context.Context, memberID primitive.ObjectID, location string) (*domain.CheckIn, error)
	List(ctx context.Context, memberID primitive.ObjectID) ([]domain.CheckIn, error)
}

// checkInService implements the CheckInService interface.
type checkInService struct {
	checkInRepo repository.CheckInRepository
}

// NewCheckInService creates a new instance of checkInService.
func NewCheckInService(checkInRepo repository.CheckInRepository) CheckInService {
	return &checkInService{checkInRepo: checkInRepo}
}

// CheckIn records the member entering the gym. The unique (member, day)
// index enforces one check-in per calendar day at the storage level.
func (s *checkInService) CheckIn(ctx context.Context, memberID primitive.ObjectID, location string) (*domain.CheckIn, error) {
	if location == "" {
		location = DefaultLocation
	}

	now := time.Now()
	checkIn := &domain.CheckIn{
		MemberID:    memberID,
		Location:    location,
		CheckInTime: now,
		Day:         startOfDay(now),
	}

	id, err := s.checkInRepo.Create(ctx, checkIn)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyCheckedIn
		}
		return nil, err
	}
	checkIn.ID = id
	return checkIn, nil
}

// List returns the member's check-in history, newest first.
func (s *checkInService) List(ctx context.Context, memberID primitive.ObjectID) ([]domain.CheckIn, error) {
	return s.checkInRepo.ListByMember(ctx, memberID, checkInHistoryLimit)
}
