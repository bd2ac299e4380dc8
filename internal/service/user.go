package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"storefront-backend/internal/auth"
	"storefront-backend/internal/config"
	"storefront-backend/internal/dto"
	"storefront-backend/internal/model"
	"storefront-backend/internal/repository"
)

type UserService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*model.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	List(ctx context.Context) ([]*model.User, error)
	Update(ctx context.Context, userID uint, req *dto.UpdateUserRequest) (*model.User, error)
	Delete(ctx context.Context, userID uint) error

	CreateSubAdmin(ctx context.Context, req *dto.CreateSubAdminRequest) (*model.User, error)
	ListSubAdmins(ctx context.Context) ([]*model.User, error)
}

type userServiceImpl struct {
	authCfg  config.Auth
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

func NewUserService(
	authCfg config.Auth,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
) UserService {
	return &userServiceImpl{
		authCfg:  authCfg,
		userRepo: userRepo,
		roleRepo: roleRepo,
	}
}

func (s *userServiceImpl) Signup(ctx context.Context, req *dto.SignupRequest) (*model.User, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         auth.RoleCustomer,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func (s *userServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := auth.IssueToken(s.authCfg.JWTSecret, user.Email, user.Role, s.authCfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		Email: user.Email,
		Role:  user.Role,
	}, nil
}

func (s *userServiceImpl) List(ctx context.Context) ([]*model.User, error) {
	return s.userRepo.FindAll(ctx)
}

func (s *userServiceImpl) Update(ctx context.Context, userID uint, req *dto.UpdateUserRequest) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Role != "" {
		if _, err := s.roleRepo.FindByName(ctx, req.Role); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrRoleNotFound
			}
			return nil, fmt.Errorf("find role: %w", err)
		}
		user.Role = req.Role
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	return user, nil
}

func (s *userServiceImpl) Delete(ctx context.Context, userID uint) error {
	err := s.userRepo.Delete(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}

	return err
}

// CreateSubAdmin creates an account bound to an existing role.
func (s *userServiceImpl) CreateSubAdmin(ctx context.Context, req *dto.CreateSubAdminRequest) (*model.User, error) {
	if req.Email == "" || req.Password == "" || req.Role == "" {
		return nil, fmt.Errorf("%w: email, password and role are required", ErrInvalidInput)
	}

	if _, err := s.roleRepo.FindByName(ctx, req.Role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role: %w", err)
	}

	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create sub-admin: %w", err)
	}

	return user, nil
}

func (s *userServiceImpl) ListSubAdmins(ctx context.Context) ([]*model.User, error) {
	return s.userRepo.FindByRoleNot(ctx, auth.RoleCustomer)
}
