package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fittrack/gym-app/internal/domain"
	"fittrack/gym-app/internal/repository"
	"fittrack/gym-app/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrProgressNotFound = errors.New("progress entry not found")
	ErrNoPhoto          = errors.New("progress entry has no photo")
	ErrPhotoURLFailed   = errors.New("failed to generate photo URL")
)

// progressHistoryDefault is the listing cap when the caller does not set one.
const progressHistoryDefault = 50

// ProgressInput carries the writable fields of a progress entry.
type ProgressInput struct {
	Date    *time.Time
	Weight  *float64
	BodyFat *float64
	Muscle  *float64
	Chest   *float64
	Waist   *float64
	Arms    *float64
	Notes   string
}

// MetricStats is the current/start/change triple for one body metric.
type MetricStats struct {
	Current *float64 `json:"current"`
	Start   *float64 `json:"start"`
	Change  *float64 `json:"change"`
}

// ProgressStats summarises a member's measurement history.
type ProgressStats struct {
	Weight  MetricStats `json:"weight"`
	BodyFat MetricStats `json:"bodyFat"`
	Muscle  MetricStats `json:"muscle"`
}

// PhotoUploadGrant is a presigned upload slot for a progress photo.
type PhotoUploadGrant struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// ProgressService covers body-measurement tracking and progress photos.
type ProgressService interface {
	List(ctx context.Context, memberID primitive.ObjectID, limit int64) ([]domain.Progress, error)
	Create(ctx context.Context, memberID primitive.ObjectID, in ProgressInput) (*domain.Progress, error)
	Stats(ctx context.Context, memberID primitive.ObjectID) (*ProgressStats, error)

	// Photo flow: the client PUTs the image to a presigned URL, then
	// confirms the object key, after which a download URL can be issued.
	RequestPhotoUploadURL(ctx context.Context, memberID, progressID primitive.ObjectID, contentType string) (*PhotoUploadGrant, error)
	ConfirmPhoto(ctx context.Context, memberID, progressID primitive.ObjectID, objectKey string) error
	PhotoDownloadURL(ctx context.Context, memberID, progressID primitive.ObjectID) (string, error)
}

// progressService implements the ProgressService interface.
type progressService struct {
	progressRepo repository.ProgressRepository
	fileStorage  storage.FileStorage
}

// NewProgressService creates a new instance of progressService.
func NewProgressService(progressRepo repository.ProgressRepository, fileStorage storage.FileStorage) ProgressService {
	return &progressService{
		progressRepo: progressRepo,
		fileStorage:  fileStorage,
	}
}

// List returns the member's progress entries, newest first.
func (s *progressService) List(ctx context.Context, memberID primitive.ObjectID, limit int64) ([]domain.Progress, error) {
	if limit <= 0 {
		limit = progressHistoryDefault
	}
	return s.progressRepo.ListByMember(ctx, memberID, limit)
}

// Create records a new measurement entry for the member.
func (s *progressService) Create(ctx context.Context, memberID primitive.ObjectID, in ProgressInput) (*domain.Progress, error) {
	date := time.Now()
	if in.Date != nil {
		date = *in.Date
	}

	progress := &domain.Progress{
		MemberID: memberID,
		Date:     date,
		Weight:   in.Weight,
		BodyFat:  in.BodyFat,
		Muscle:   in.Muscle,
		Chest:    in.Chest,
		Waist:    in.Waist,
		Arms:     in.Arms,
		Notes:    in.Notes,
	}

	id, err := s.progressRepo.Create(ctx, progress)
	if err != nil {
		return nil, err
	}
	progress.ID = id
	return progress, nil
}

// Stats compares the member's newest entry against their oldest.
func (s *progressService) Stats(ctx context.Context, memberID primitive.ObjectID) (*ProgressStats, error) {
	entries, err := s.progressRepo.ListByMember(ctx, memberID, 0)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return &ProgressStats{}, nil
	}

	latest := entries[0]
	earliest := entries[len(entries)-1]

	return &ProgressStats{
		Weight:  metricStats(latest.Weight, earliest.Weight),
		BodyFat: metricStats(latest.BodyFat, earliest.BodyFat),
		Muscle:  metricStats(latest.Muscle, earliest.Muscle),
	}, nil
}

func metricStats(current, start *float64) MetricStats {
	stats := MetricStats{Current: current, Start: start}
	if current != nil && start != nil {
		change := *current - *start
		stats.Change = &change
	}
	return stats
}

// RequestPhotoUploadURL issues a presigned PUT URL for a progress photo.
func (s *progressService) RequestPhotoUploadURL(ctx context.Context, memberID, progressID primitive.ObjectID, contentType string) (*PhotoUploadGrant, error) {
	if !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return nil, errors.New("invalid or missing image content type")
	}

	if _, err := s.progressRepo.GetOwned(ctx, progressID, memberID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgressNotFound
		}
		return nil, err
	}

	objectKey := fmt.Sprintf("progress-photos/%s/%s/%s", memberID.Hex(), progressID.Hex(), uuid.NewString())
	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrPhotoURLFailed
	}

	return &PhotoUploadGrant{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}

// ConfirmPhoto records the uploaded object key on the progress entry.
func (s *progressService) ConfirmPhoto(ctx context.Context, memberID, progressID primitive.ObjectID, objectKey string) error {
	if objectKey == "" {
		return errors.New("object key is required")
	}
	// Keys are minted by RequestPhotoUploadURL under the member's own
	// prefix; reject confirmations for anything else.
	expectedPrefix := fmt.Sprintf("progress-photos/%s/%s/", memberID.Hex(), progressID.Hex())
	if !strings.HasPrefix(objectKey, expectedPrefix) {
		return errors.New("object key does not match this progress entry")
	}

	err := s.progressRepo.SetPhotoKey(ctx, progressID, memberID, objectKey)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrProgressNotFound
	}
	return err
}

// PhotoDownloadURL issues a presigned GET URL for the entry's photo.
func (s *progressService) PhotoDownloadURL(ctx context.Context, memberID, progressID primitive.ObjectID) (string, error) {
	progress, err := s.progressRepo.GetOwned(ctx, progressID, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrProgressNotFound
		}
		return "", err
	}
	if progress.PhotoKey == "" {
		return "", ErrNoPhoto
	}

	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, progress.PhotoKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", ErrPhotoURLFailed
	}
	return url, nil
}
