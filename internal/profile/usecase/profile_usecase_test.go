package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"mindmaker-backend/internal/auth/identity"
	"mindmaker-backend/internal/profile/domain"
	"mindmaker-backend/pkg/storage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memProfiles struct {
	rows    map[string]domain.Profile
	creates int
	updates int
}

func (m *memProfiles) FindByID(_ context.Context, id string) (*domain.Profile, error) {
	p, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *memProfiles) Create(_ context.Context, profile *domain.Profile) error {
	m.creates++
	m.rows[profile.ID] = *profile
	return nil
}

func (m *memProfiles) Update(_ context.Context, id string, fields map[string]interface{}) error {
	m.updates++
	p := m.rows[id]
	if v, ok := fields["username"].(string); ok {
		p.Username = v
	}
	if v, ok := fields["avatar_url"].(string); ok {
		p.AvatarURL = v
	}
	if v, ok := fields["updated_at"].(time.Time); ok {
		p.UpdatedAt = v
	}
	m.rows[id] = p
	return nil
}

type brokenDelete struct{ *storage.MemoryBucket }

func (brokenDelete) Delete(context.Context, string) error { return errors.New("denied") }

var ann = identity.Identity{UserID: "ann"}

func newTestProfiles(bucket storage.Store) (*profileUsecase, *memProfiles) {
	repo := &memProfiles{rows: map[string]domain.Profile{}}
	uc := NewProfileUsecase(repo, bucket, zerolog.Nop()).(*profileUsecase)
	ids := []string{"id-1", "id-2", "id-3"}
	uc.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	return uc, repo
}

func TestGetEmptyProfile(t *testing.T) {
	uc, _ := newTestProfiles(storage.NewMemoryBucket("avatars", "http://cdn"))

	p, err := uc.Get(context.Background(), ann)
	require.NoError(t, err)
	assert.Equal(t, "ann", p.ID)
	assert.Empty(t, p.Username)

	_, err = uc.Get(context.Background(), identity.Anonymous)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestUpdateCreatesThenReplacesAvatar(t *testing.T) {
	bucket := storage.NewMemoryBucket("avatars", "http://cdn")
	uc, repo := newTestProfiles(bucket)
	ctx := context.Background()

	p, err := uc.Update(ctx, ann, " ann ", Avatar{Filename: "me.PNG", Size: 3, Body: strings.NewReader("one")})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.creates)
	assert.Equal(t, "ann", p.Username)
	assert.Equal(t, "http://cdn/avatars/ann/id-1.png", p.AvatarURL)

	p, err = uc.Update(ctx, ann, "ann", Avatar{Filename: "new.jpg", Size: 3, Body: strings.NewReader("two")})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.updates)
	assert.Equal(t, "http://cdn/avatars/ann/id-2.jpg", p.AvatarURL)

	_, ok := bucket.Get("ann/id-1.png")
	assert.False(t, ok, "old avatar removed")
	data, ok := bucket.Get("ann/id-2.jpg")
	require.True(t, ok)
	assert.Equal(t, "two", string(data))
}

func TestUpdateWithoutAvatarKeepsURL(t *testing.T) {
	bucket := storage.NewMemoryBucket("avatars", "http://cdn")
	uc, repo := newTestProfiles(bucket)
	repo.rows["ann"] = domain.Profile{ID: "ann", Username: "old", AvatarURL: "http://cdn/avatars/ann/keep.png"}

	p, err := uc.Update(context.Background(), ann, "new", Avatar{})
	require.NoError(t, err)
	assert.Equal(t, "new", p.Username)
	assert.Equal(t, "http://cdn/avatars/ann/keep.png", p.AvatarURL)
	assert.Empty(t, bucket.Keys())
}

func TestUpdateContinuesWhenOldAvatarDeleteFails(t *testing.T) {
	bucket := brokenDelete{storage.NewMemoryBucket("avatars", "http://cdn")}
	uc, repo := newTestProfiles(bucket)
	repo.rows["ann"] = domain.Profile{ID: "ann", Username: "ann", AvatarURL: "http://cdn/avatars/ann/old.png"}

	p, err := uc.Update(context.Background(), ann, "ann", Avatar{Filename: "x.webp", Size: 1, Body: strings.NewReader("x")})
	require.NoError(t, err)
	assert.Equal(t, "http://cdn/avatars/ann/id-1.webp", p.AvatarURL)
}

func TestUpdateRejections(t *testing.T) {
	uc, repo := newTestProfiles(storage.NewMemoryBucket("avatars", "http://cdn"))

	_, err := uc.Update(context.Background(), identity.Anonymous, "x", Avatar{})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	_, err = uc.Update(context.Background(), ann, "  ", Avatar{})
	assert.ErrorIs(t, err, domain.ErrEmptyUsername)
	assert.Zero(t, repo.creates+repo.updates)
}

func TestAvatarKey(t *testing.T) {
	assert.Equal(t, "u/abc.png", avatarKey("u", "abc", "Photo.PNG"))
	assert.Equal(t, "u/abc", avatarKey("u", "abc", "noext"))
}
