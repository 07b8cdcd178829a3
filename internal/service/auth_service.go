package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Konaisya/build-service/internal/auth"
	"github.com/Konaisya/build-service/internal/model"
	"github.com/Konaisya/build-service/internal/repository"
)

type AuthService struct {
	users  *repository.Repository[model.User]
	tokens *auth.Manager
}

func NewAuthService(db *gorm.DB, tokens *auth.Manager) *AuthService {
	return &AuthService{
		users:  repository.New[model.User](db),
		tokens: tokens,
	}
}

type RegisterInput struct {
	Name     string
	OrgName  *string
	Email    string
	Password string
	Role     model.Role
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	_, err := s.users.GetOne(ctx, repository.Fields{"email": input.Email})
	if err == nil {
		return nil, ErrDuplicateEmail
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	role := input.Role
	if role == "" {
		role = model.RoleUser
	}
	user := &model.User{
		Name:     input.Name,
		OrgName:  input.OrgName,
		Role:     role,
		Email:    input.Email,
		Password: hash,
	}
	if _, err := s.users.Add(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: create user: %v", ErrValidation, err)
	}
	return user, nil
}

// Login verifies credentials and issues an access/refresh token pair. A
// missing user and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*auth.Pair, error) {
	user, err := s.users.GetOne(ctx, repository.Fields{"email": email})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.VerifyPassword(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return s.tokens.IssuePair(user.ID, string(user.Role))
}

// Refresh verifies the refresh token and re-issues both tokens for the same
// subject, picking up the user's current role.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*auth.Pair, error) {
	claims, err := s.VerifyToken(refreshToken)
	if err != nil {
		return nil, err
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return s.tokens.IssuePair(user.ID, string(user.Role))
}

func (s *AuthService) VerifyToken(token string) (*auth.Claims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrTokenExpired):
			return nil, ErrTokenExpired
		default:
			return nil, ErrInvalidToken
		}
	}
	return claims, nil
}

// UserFromToken resolves the token subject to a stored user.
func (s *AuthService) UserFromToken(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.VerifyToken(token)
	if err != nil {
		return nil, err
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

// RequireRole resolves the user and checks the stored role, not the claim,
// so a role change invalidates old tokens' privileges immediately.
func (s *AuthService) RequireRole(ctx context.Context, token string, role model.Role) (*model.User, error) {
	user, err := s.UserFromToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if user.Role != role {
		return nil, ErrForbidden
	}
	return user, nil
}
