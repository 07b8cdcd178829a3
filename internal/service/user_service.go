package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Konaisya/build-service/internal/auth"
	"github.com/Konaisya/build-service/internal/model"
	"github.com/Konaisya/build-service/internal/repository"
)

type UserService struct {
	users *repository.Repository[model.User]
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{users: repository.New[model.User](db)}
}

type UpdateUserInput struct {
	Name    *string
	OrgName *string
	Email   *string
	Role    *model.Role
	// Password changes must present the current password in OldPassword.
	Password    *string
	OldPassword *string
}

func (s *UserService) List(ctx context.Context, filter repository.Fields) ([]model.User, error) {
	return s.users.GetAll(ctx, filter)
}

func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id int64, input UpdateUserInput) (*model.User, error) {
	current, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	fields := repository.Fields{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.OrgName != nil {
		fields["org_name"] = *input.OrgName
	}
	if input.Role != nil {
		fields["role"] = *input.Role
	}
	if input.Email != nil {
		existing, err := s.users.GetOne(ctx, repository.Fields{"email": *input.Email})
		if err == nil && existing.ID != id {
			return nil, ErrDuplicateEmail
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		fields["email"] = *input.Email
	}
	if input.Password != nil {
		if input.OldPassword == nil || !auth.VerifyPassword(*input.OldPassword, current.Password) {
			return nil, ErrInvalidCredentials
		}
		hash, err := auth.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		fields["password"] = hash
	}

	return s.users.Update(ctx, id, fields)
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.users.Delete(ctx, id)
}
