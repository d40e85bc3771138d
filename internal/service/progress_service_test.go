package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"fittrack/gym-app/internal/domain"
	"fittrack/gym-app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeProgressRepo keeps entries sorted newest first.
type fakeProgressRepo struct {
	repository.ProgressRepository
	entries []*domain.Progress
}

func (r *fakeProgressRepo) Create(_ context.Context, progress *domain.Progress) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	copied := *progress
	copied.ID = id
	// prepend: listing is newest first
	r.entries = append([]*domain.Progress{&copied}, r.entries...)
	return id, nil
}

func (r *fakeProgressRepo) ListByMember(_ context.Context, memberID primitive.ObjectID, limit int64) ([]domain.Progress, error) {
	var out []domain.Progress
	for _, e := range r.entries {
		if e.MemberID == memberID {
			out = append(out, *e)
			if limit > 0 && int64(len(out)) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *fakeProgressRepo) GetOwned(_ context.Context, id, memberID primitive.ObjectID) (*domain.Progress, error) {
	for _, e := range r.entries {
		if e.ID == id && e.MemberID == memberID {
			copied := *e
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeProgressRepo) SetPhotoKey(_ context.Context, id, memberID primitive.ObjectID, key string) error {
	for _, e := range r.entries {
		if e.ID == id && e.MemberID == memberID {
			e.PhotoKey = key
			return nil
		}
	}
	return repository.ErrNotFound
}

// fakeFileStorage returns deterministic URLs.
type fakeFileStorage struct{}

func (fakeFileStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, _ string, _ time.Duration) (string, error) {
	return "https://storage.test/upload/" + objectKey, nil
}

func (fakeFileStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://storage.test/download/" + objectKey, nil
}

func (fakeFileStorage) DeleteObject(context.Context, string) error { return nil }

func ptr(v float64) *float64 { return &v }

func TestProgressStats(t *testing.T) {
	repo := &fakeProgressRepo{}
	svc := NewProgressService(repo, fakeFileStorage{})
	member := primitive.NewObjectID()
	ctx := context.Background()

	start := time.Now().AddDate(0, -2, 0)
	_, err := svc.Create(ctx, member, ProgressInput{Date: &start, Weight: ptr(90), BodyFat: ptr(25)})
	require.NoError(t, err)
	_, err = svc.Create(ctx, member, ProgressInput{Weight: ptr(85), BodyFat: ptr(22), Muscle: ptr(40)})
	require.NoError(t, err)

	stats, err := svc.Stats(ctx, member)
	require.NoError(t, err)

	require.NotNil(t, stats.Weight.Change)
	assert.Equal(t, -5.0, *stats.Weight.Change)
	assert.Equal(t, 85.0, *stats.Weight.Current)
	assert.Equal(t, 90.0, *stats.Weight.Start)

	require.NotNil(t, stats.BodyFat.Change)
	assert.Equal(t, -3.0, *stats.BodyFat.Change)

	// muscle was only recorded once; no change computable
	assert.Nil(t, stats.Muscle.Change)
}

func TestProgressStatsEmptyHistory(t *testing.T) {
	svc := NewProgressService(&fakeProgressRepo{}, fakeFileStorage{})

	stats, err := svc.Stats(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	assert.Nil(t, stats.Weight.Current)
	assert.Nil(t, stats.Weight.Change)
}

func TestProgressPhotoFlow(t *testing.T) {
	repo := &fakeProgressRepo{}
	svc := NewProgressService(repo, fakeFileStorage{})
	member := primitive.NewObjectID()
	ctx := context.Background()

	entry, err := svc.Create(ctx, member, ProgressInput{Weight: ptr(80)})
	require.NoError(t, err)

	t.Run("rejects non-image content type", func(t *testing.T) {
		_, err := svc.RequestPhotoUploadURL(ctx, member, entry.ID, "application/pdf")
		assert.Error(t, err)
	})

	t.Run("upload then confirm then download", func(t *testing.T) {
		grant, err := svc.RequestPhotoUploadURL(ctx, member, entry.ID, "image/jpeg")
		require.NoError(t, err)
		assert.Contains(t, grant.UploadURL, grant.ObjectKey)

		require.NoError(t, svc.ConfirmPhoto(ctx, member, entry.ID, grant.ObjectKey))

		url, err := svc.PhotoDownloadURL(ctx, member, entry.ID)
		require.NoError(t, err)
		assert.Contains(t, url, grant.ObjectKey)
	})

	t.Run("rejects a key minted for another entry", func(t *testing.T) {
		foreignKey := fmt.Sprintf("progress-photos/%s/%s/some-object", primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex())
		err := svc.ConfirmPhoto(ctx, member, entry.ID, foreignKey)
		assert.Error(t, err)
	})

	t.Run("owner scoping", func(t *testing.T) {
		_, err := svc.RequestPhotoUploadURL(ctx, primitive.NewObjectID(), entry.ID, "image/png")
		assert.ErrorIs(t, err, ErrProgressNotFound)
	})
}

func TestProgressPhotoDownloadWithoutPhoto(t *testing.T) {
	repo := &fakeProgressRepo{}
	svc := NewProgressService(repo, fakeFileStorage{})
	member := primitive.NewObjectID()

	entry, err := svc.Create(context.Background(), member, ProgressInput{Weight: ptr(80)})
	require.NoError(t, err)

	_, err = svc.PhotoDownloadURL(context.Background(), member, entry.ID)
	assert.ErrorIs(t, err, ErrNoPhoto)
}
