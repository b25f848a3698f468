package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mehedihasanwd/easy-cart-api-v2/internal/domain"
)

func TestRenamePropagatesToReviews(t *testing.T) {
	users := newFakeUserRepo()
	reviews := newFakeReviewRepo()
	uc := &UserUC{Users: users, Reviews: reviews, Storage: newFakeStorage()}

	user := seedUser(t, users)
	other := &domain.User{ID: uuid.New(), Name: "Someone Else", Email: "other@example.com"}
	require.NoError(t, users.Save(context.Background(), other))

	mine := &domain.Review{ID: uuid.New(), UserID: user.ID, UserName: user.Name, ProductID: uuid.New(), ProductUID: uuid.New(), Review: "ok", Rating: 4}
	theirs := &domain.Review{ID: uuid.New(), UserID: other.ID, UserName: other.Name, ProductID: uuid.New(), ProductUID: uuid.New(), Review: "ok", Rating: 3}
	require.NoError(t, reviews.Create(context.Background(), mine))
	require.NoError(t, reviews.Create(context.Background(), theirs))

	renamed, err := uc.Rename(context.Background(), user.ID, "Jane Renamed")
	require.NoError(t, err)
	assert.Equal(t, "Jane Renamed", renamed.Name)

	got, err := reviews.FindByID(context.Background(), mine.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Renamed", got.UserName)

	untouched, err := reviews.FindByID(context.Background(), theirs.ID)
	require.NoError(t, err)
	assert.Equal(t, other.Name, untouched.UserName)
}

func TestRenameValidation(t *testing.T) {
	users := newFakeUserRepo()
	uc := &UserUC{Users: users, Reviews: newFakeReviewRepo(), Storage: newFakeStorage()}
	user := seedUser(t, users)

	_, err := uc.Rename(context.Background(), user.ID, "  ")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Rename(context.Background(), uuid.New(), "Name")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Renaming to the current name is a no-op.
	got, err := uc.Rename(context.Background(), user.ID, user.Name)
	require.NoError(t, err)
	assert.Equal(t, user.Name, got.Name)
}

func TestUserUpdateImagePropagatesToReviews(t *testing.T) {
	users := newFakeUserRepo()
	reviews := newFakeReviewRepo()
	storage := newFakeStorage()
	uc := &UserUC{Users: users, Reviews: reviews, Storage: storage}

	user := seedUser(t, users)
	r := &domain.Review{ID: uuid.New(), UserID: user.ID, UserName: user.Name, ProductID: uuid.New(), ProductUID: uuid.New(), Review: "ok", Rating: 4}
	require.NoError(t, reviews.Create(context.Background(), r))

	updated, err := uc.UpdateImage(context.Background(), user.ID, []byte("avatar"), "image/png")
	require.NoError(t, err)
	assert.NotEmpty(t, updated.Image.Key)

	got, err := reviews.FindByID(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.Image, got.UserImage)
}
