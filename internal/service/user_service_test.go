package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Konaisya/build-service/internal/auth"
	"github.com/Konaisya/build-service/internal/model"
	"github.com/Konaisya/build-service/internal/repository"
)

func TestUpdateUserPartialAndEmailCollision(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewUserService(db)

	users := repository.New[model.User](db)
	ann := &model.User{Name: "Ann", Role: model.RoleUser, Email: "ann@example.com", Password: "x"}
	_, err := users.Add(ctx, ann)
	require.NoError(t, err)
	bob := &model.User{Name: "Bob", Role: model.RoleUser, Email: "bob@example.com", Password: "x"}
	_, err = users.Add(ctx, bob)
	require.NoError(t, err)

	name := "Ann Q."
	updated, err := svc.Update(ctx, ann.ID, UpdateUserInput{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Ann Q.", updated.Name)
	require.Equal(t, "ann@example.com", updated.Email)

	// Taking another account's email is rejected; keeping your own is fine.
	taken := "bob@example.com"
	_, err = svc.Update(ctx, ann.ID, UpdateUserInput{Email: &taken})
	require.ErrorIs(t, err, ErrDuplicateEmail)

	own := "ann@example.com"
	_, err = svc.Update(ctx, ann.ID, UpdateUserInput{Email: &own})
	require.NoError(t, err)
}

func TestUpdateUserRehashesPassword(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewUserService(db)

	users := repository.New[model.User](db)
	hash, err := auth.HashPassword("old-password")
	require.NoError(t, err)
	ann := &model.User{Name: "Ann", Role: model.RoleUser, Email: "ann@example.com", Password: hash}
	_, err = users.Add(ctx, ann)
	require.NoError(t, err)

	password := "new-password"
	wrong := "not-the-old-password"
	_, err = svc.Update(ctx, ann.ID, UpdateUserInput{Password: &password, OldPassword: &wrong})
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Update(ctx, ann.ID, UpdateUserInput{Password: &password})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	old := "old-password"
	updated, err := svc.Update(ctx, ann.ID, UpdateUserInput{Password: &password, OldPassword: &old})
	require.NoError(t, err)
	require.NotEqual(t, "new-password", updated.Password)
	require.True(t, auth.VerifyPassword("new-password", updated.Password))
	require.False(t, auth.VerifyPassword("old-password", updated.Password))
}

func TestUserServiceMissingRows(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newTestDB(t))

	_, err := svc.Get(ctx, 999)
	require.ErrorIs(t, err, ErrNotFound)

	name := "X"
	_, err = svc.Update(ctx, 999, UpdateUserInput{Name: &name})
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, svc.Delete(ctx, 999), ErrNotFound)
}
