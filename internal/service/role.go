package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"storefront-backend/internal/dto"
	"storefront-backend/internal/model"
	"storefront-backend/internal/repository"
)

type RoleService interface {
	Create(ctx context.Context, req *dto.RoleRequest) (*model.Role, error)
	Get(ctx context.Context, roleID uint) (*model.Role, error)
	List(ctx context.Context) ([]*model.Role, error)
	Update(ctx context.Context, roleID uint, req *dto.RoleRequest) (*model.Role, error)
	Delete(ctx context.Context, roleID uint) error
}

type roleServiceImpl struct {
	roleRepo repository.RoleRepository
}

func NewRoleService(roleRepo repository.RoleRepository) RoleService {
	return &roleServiceImpl{
		roleRepo: roleRepo,
	}
}

func (s *roleServiceImpl) Create(ctx context.Context, req *dto.RoleRequest) (*model.Role, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: role name is required", ErrInvalidInput)
	}

	if _, err := s.roleRepo.FindByName(ctx, req.Name); err == nil {
		return nil, ErrRoleExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find role: %w", err)
	}

	role := &model.Role{
		Name:        req.Name,
		Description: req.Description,
		Permissions: req.Permissions,
	}

	if err := s.roleRepo.Create(ctx, role); err != nil {
		return nil, fmt.Errorf("create role: %w", err)
	}

	return role, nil
}

func (s *roleServiceImpl) Get(ctx context.Context, roleID uint) (*model.Role, error) {
	role, err := s.roleRepo.FindByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role: %w", err)
	}

	return role, nil
}

func (s *roleServiceImpl) List(ctx context.Context) ([]*model.Role, error) {
	return s.roleRepo.FindAll(ctx)
}

func (s *roleServiceImpl) Update(ctx context.Context, roleID uint, req *dto.RoleRequest) (*model.Role, error) {
	role := &model.Role{
		ID:          roleID,
		Name:        req.Name,
		Description: req.Description,
		Permissions: req.Permissions,
	}

	if err := s.roleRepo.Update(ctx, role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, fmt.Errorf("update role: %w", err)
	}

	return role, nil
}

func (s *roleServiceImpl) Delete(ctx context.Context, roleID uint) error {
	err := s.roleRepo.Delete(ctx, roleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRoleNotFound
	}

	return err
}
