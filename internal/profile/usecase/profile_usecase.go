package usecase

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"mindmaker-backend/internal/auth/identity"
	"mindmaker-backend/internal/profile/domain"
	"mindmaker-backend/internal/profile/repository"
	"mindmaker-backend/pkg/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Avatar is an uploaded avatar image. A zero Size means no new avatar.
type Avatar struct {
	Filename string
	Size     int64
	Body     io.Reader
}

// ProfileUsecase defines the profile operations
type ProfileUsecase interface {
	Get(ctx context.Context, who identity.Identity) (*domain.Profile, error)
	Update(ctx context.Context, who identity.Identity, username string, avatar Avatar) (*domain.Profile, error)
}

// profileUsecase implements ProfileUsecase interface
type profileUsecase struct {
	profiles repository.ProfileRepository
	avatars  storage.Store
	log      zerolog.Logger
	now      func() time.Time
	newID    func() string
}

// NewProfileUsecase creates a new instance of profileUsecase
func NewProfileUsecase(profiles repository.ProfileRepository, avatars storage.Store, log zerolog.Logger) ProfileUsecase {
	return &profileUsecase{
		profiles: profiles,
		avatars:  avatars,
		log:      log,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Get returns the caller's profile, or an empty one when none was saved yet.
func (u *profileUsecase) Get(ctx context.Context, who identity.Identity) (*domain.Profile, error) {
	if !who.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	profile, err := u.profiles.FindByID(ctx, who.UserID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return &domain.Profile{ID: who.UserID}, nil
	}
	return profile, nil
}

// Update saves the username and, when avatar carries a file, replaces the
// avatar in two steps: the old file is deleted (a failure is only logged) and
// the new one uploaded as "<user id>/<uuid>.<ext>". The profile row is created
// on first save.
func (u *profileUsecase) Update(ctx context.Context, who identity.Identity, username string, avatar Avatar) (*domain.Profile, error) {
	if !who.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, domain.ErrEmptyUsername
	}

	existing, err := u.profiles.FindByID(ctx, who.UserID)
	if err != nil {
		return nil, err
	}

	now := u.now()
	fields := map[string]interface{}{
		"username":   username,
		"updated_at": now,
	}

	if avatar.Size > 0 {
		if existing != nil && existing.AvatarURL != "" {
			u.removeAvatar(ctx, existing.AvatarURL)
		}

		key := avatarKey(who.UserID, u.newID(), avatar.Filename)
		if err := u.avatars.Put(ctx, key, avatar.Body, avatar.Size, storage.ContentTypeFor(key)); err != nil {
			return nil, fmt.Errorf("upload avatar: %w", err)
		}
		fields["avatar_url"] = u.avatars.PublicURL(key)
	}

	if existing == nil {
		profile := &domain.Profile{ID: who.UserID, Username: username, UpdatedAt: now}
		if url, ok := fields["avatar_url"].(string); ok {
			profile.AvatarURL = url
		}
		if err := u.profiles.Create(ctx, profile); err != nil {
			return nil, err
		}
		return profile, nil
	}

	if err := u.profiles.Update(ctx, who.UserID, fields); err != nil {
		return nil, err
	}
	return u.profiles.FindByID(ctx, who.UserID)
}

func (u *profileUsecase) removeAvatar(ctx context.Context, avatarURL string) {
	key, ok := u.avatars.KeyFromURL(avatarURL)
	if !ok {
		return
	}
	if err := u.avatars.Delete(ctx, key); err != nil {
		u.log.Warn().Err(err).Str("key", key).Msg("failed to delete old avatar")
	}
}

func avatarKey(userID, id, filename string) string {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(filename)), ".")
	if ext == "" {
		return userID + "/" + id
	}
	return userID + "/" + id + "." + ext
}
