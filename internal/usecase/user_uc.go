package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mehedihasanwd/easy-cart-api-v2/internal/domain"
)

// UserUC handles the profile mutations whose denormalized copies live inside
// reviews. Propagation is best effort: a failed bulk update is logged and the
// profile change still stands.
type UserUC struct {
	Users   domain.UserRepo
	Reviews domain.ReviewRepo
	Storage domain.FileStorage
}

// Rename changes the display name and pushes it into the user's reviews.
// A no-op rename skips the bulk update entirely.
func (uc *UserUC) Rename(ctx context.Context, id uuid.UUID, name string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	u, err := uc.Users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Name == name {
		return u, nil
	}
	if err := uc.Users.UpdateName(ctx, id, name); err != nil {
		return nil, err
	}
	u.Name = name
	if err := uc.Reviews.UpdateUserName(ctx, id, name); err != nil {
		log.Error().Err(err).Str("user_id", id.String()).Msg("propagate user name to reviews")
	}
	return u, nil
}

// UpdateImage replaces the profile image and pushes the new key/url into the
// user's reviews.
func (uc *UserUC) UpdateImage(ctx context.Context, id uuid.UUID, data []byte, contentType string) (*domain.User, error) {
	u, err := uc.Users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Image.Key != "" {
		if err := uc.Storage.Delete(u.Image.Key); err != nil {
			log.Warn().Err(err).Str("key", u.Image.Key).Msg("remove old user image")
		}
	}
	obj, err := uc.Storage.Put(data, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload user image: %w", err)
	}
	img := domain.Image{Key: obj.Key, URL: obj.URL}
	if err := uc.Users.UpdateImage(ctx, id, img); err != nil {
		return nil, err
	}
	u.Image = img
	if err := uc.Reviews.UpdateUserImage(ctx, id, img); err != nil {
		log.Error().Err(err).Str("user_id", id.String()).Msg("propagate user image to reviews")
	}
	return u, nil
}

func (uc *UserUC) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return uc.Users.FindByID(ctx, id)
}
