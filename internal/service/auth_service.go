package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"skill_quiz_backend/internal/config"
	"skill_quiz_backend/internal/model"
	"skill_quiz_backend/internal/repository"
	"skill_quiz_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Name     string         `json:"name" binding:"required"`
	Email    string         `json:"email" binding:"required,email"`
	Password string         `json:"password" binding:"required"`
	Role     model.UserRole `json:"role"`
}

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

// Register 自助注册，角色必须显式给出
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if in.Role == "" {
		return nil, util.InvalidInput("Missing fields")
	}
	return createAccount(ctx, s.UserRepo, in)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.UserRepo.FindByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", util.ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", util.ErrInvalidCredentials
	}

	return util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

// Authenticate resolves a bearer token to the caller identity.
func (s *AuthService) Authenticate(token string) (*model.Identity, error) {
	if token == "" {
		return nil, util.ErrUnauthenticated
	}
	claims, err := util.ParseJWT(token, s.Cfg.JWT.Secret)
	if err != nil {
		return nil, util.ErrUnauthenticated
	}
	if claims.UserID == 0 || !claims.Role.Valid() {
		return nil, util.ErrUnauthenticated
	}
	id := claims.Identity()
	return &id, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, caller *model.Identity) (*model.User, error) {
	user, err := s.UserRepo.FindByID(ctx, caller.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// Authorize allows the call when the roles match or the caller is an admin.
func Authorize(caller *model.Identity, required model.UserRole) error {
	if caller == nil {
		return util.ErrUnauthenticated
	}
	if !caller.HasRole(required) {
		return util.ErrPermissionDenied
	}
	return nil
}

func createAccount(ctx context.Context, repo *repository.UserRepository, in RegisterInput) (*model.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, util.InvalidInput("Missing fields")
	}
	if !in.Role.Valid() {
		return nil, util.ErrInvalidRole
	}

	exists, err := repo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, util.ErrEmailRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hash),
		Role:     in.Role,
	}
	if err := repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrEmailRegistered
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}
