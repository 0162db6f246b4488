package service

import (
	"context"
	"fmt"

	"eco-electric-api/internal/dto"
	"eco-electric-api/internal/model"
	"eco-electric-api/internal/repository"
	"eco-electric-api/internal/token"
)

type UserService interface {
	// Upsert writes the profile keyed by email and mints a fresh token for
	// that email. Returns the stored record and the token.
	Upsert(ctx context.Context, email string, profile dto.UpsertUserRequest) (*model.User, string, error)
	IsAdmin(ctx context.Context, email string) (bool, error)
	PromoteAdmin(ctx context.Context, email string) error
	Delete(ctx context.Context, id uint) (bool, error)
}

type userServiceImpl struct {
	userRepo repository.UserRepository
	issuer   *token.Issuer
}

func NewUserService(userRepo repository.UserRepository, issuer *token.Issuer) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		issuer:   issuer,
	}
}

func (s *userServiceImpl) Upsert(ctx context.Context, email string, profile dto.UpsertUserRequest) (*model.User, string, error) {
	user, err := s.userRepo.Upsert(ctx, &model.User{
		Email:     email,
		Name:      profile.Name,
		Phone:     profile.Phone,
		Address:   profile.Address,
		Education: profile.Education,
	})
	if err != nil {
		return nil, "", fmt.Errorf("upsert user: %w", err)
	}

	tk, err := s.issuer.Issue(email)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return user, tk, nil
}

func (s *userServiceImpl) IsAdmin(ctx context.Context, email string) (bool, error) {
	role, err := s.userRepo.FindRole(ctx, email)
	if err != nil {
		return false, fmt.Errorf("find role: %w", err)
	}

	return role == model.RoleAdmin, nil
}

func (s *userServiceImpl) PromoteAdmin(ctx context.Context, email string) error {
	return s.userRepo.SetRole(ctx, email, model.RoleAdmin)
}

func (s *userServiceImpl) Delete(ctx context.Context, id uint) (bool, error) {
	return s.userRepo.Delete(ctx, id)
}
