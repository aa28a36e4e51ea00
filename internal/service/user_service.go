package service

import (
	"context"
	"strings"

	"skill_quiz_backend/internal/model"
	"skill_quiz_backend/internal/repository"
)

// UserService 管理员维护用户
type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{
		UserRepo: userRepo,
	}
}

func (s *UserService) List(ctx context.Context, page, limit int, q string) ([]model.User, int64, error) {
	return s.UserRepo.List(ctx, page, limit, strings.TrimSpace(q))
}

// Create 角色缺省为 user
func (s *UserService) Create(ctx context.Context, in RegisterInput) (*model.User, error) {
	if in.Role == "" {
		in.Role = model.RoleUser
	}
	return createAccount(ctx, s.UserRepo, in)
}
