package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Konaisya/build-service/internal/auth"
	"github.com/Konaisya/build-service/internal/model"
)

func newAuthFixture(t *testing.T) (*gorm.DB, *AuthService) {
	t.Helper()
	db := newTestDB(t)
	tokens := auth.NewManager("test-secret", 30*time.Minute, 7*24*time.Hour)
	return db, NewAuthService(db, tokens)
}

func TestRegisterDefaultsToUserRole(t *testing.T) {
	ctx := context.Background()
	_, svc := newAuthFixture(t)

	user, err := svc.Register(ctx, RegisterInput{
		Name:     "Ann",
		Email:    "ann@example.com",
		Password: "strong-password",
	})
	require.NoError(t, err)
	require.Equal(t, model.RoleUser, user.Role)
	require.NotEqual(t, "strong-password", user.Password)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	_, svc := newAuthFixture(t)

	_, err := svc.Register(ctx, RegisterInput{Name: "Ann", Email: "ann@example.com", Password: "strong-password"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Name: "Bob", Email: "ann@example.com", Password: "other-password"})
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestLoginIssuesTokenPair(t *testing.T) {
	ctx := context.Background()
	_, svc := newAuthFixture(t)

	_, err := svc.Register(ctx, RegisterInput{Name: "Ann", Email: "ann@example.com", Password: "strong-password"})
	require.NoError(t, err)

	pair, err := svc.Login(ctx, "ann@example.com", "strong-password")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := svc.VerifyToken(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, string(model.RoleUser), claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	_, svc := newAuthFixture(t)

	_, err := svc.Register(ctx, RegisterInput{Name: "Ann", Email: "ann@example.com", Password: "strong-password"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "ann@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown account fails the same way as a wrong password.
	_, err = svc.Login(ctx, "nobody@example.com", "strong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyTokenRejectsGarbageAndExpired(t *testing.T) {
	_, svc := newAuthFixture(t)

	_, err := svc.VerifyToken("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)

	expired := auth.NewManager("test-secret", -time.Minute, -time.Minute)
	pair, err := expired.IssuePair(1, string(model.RoleUser))
	require.NoError(t, err)

	_, err = svc.VerifyToken(pair.AccessToken)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestRefreshReissuesForCurrentRole(t *testing.T) {
	ctx := context.Background()
	db, svc := newAuthFixture(t)

	user, err := svc.Register(ctx, RegisterInput{Name: "Ann", Email: "ann@example.com", Password: "strong-password"})
	require.NoError(t, err)
	pair, err := svc.Login(ctx, "ann@example.com", "strong-password")
	require.NoError(t, err)

	// Promote the user; the refreshed pair must carry the new role.
	users := NewUserService(db)
	admin := model.RoleAdmin
	_, err = users.Update(ctx, user.ID, UpdateUserInput{Role: &admin})
	require.NoError(t, err)

	fresh, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)

	claims, err := svc.VerifyToken(fresh.AccessToken)
	require.NoError(t, err)
	require.Equal(t, string(model.RoleAdmin), claims.Role)
}

func TestRequireRoleChecksStoredRole(t *testing.T) {
	ctx := context.Background()
	_, svc := newAuthFixture(t)

	_, err := svc.Register(ctx, RegisterInput{Name: "Ann", Email: "ann@example.com", Password: "strong-password"})
	require.NoError(t, err)
	pair, err := svc.Login(ctx, "ann@example.com", "strong-password")
	require.NoError(t, err)

	_, err = svc.RequireRole(ctx, pair.AccessToken, model.RoleAdmin)
	require.ErrorIs(t, err, ErrForbidden)

	user, err := svc.RequireRole(ctx, pair.AccessToken, model.RoleUser)
	require.NoError(t, err)
	require.Equal(t, "ann@example.com", user.Email)
}
