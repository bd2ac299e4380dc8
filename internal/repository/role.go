package repository

import (
	"context"

	"gorm.io/gorm"

	"storefront-backend/internal/model"
)

type RoleRepository interface {
	Create(ctx context.Context, role *model.Role) error
	FindByID(ctx context.Context, roleID uint) (*model.Role, error)
	FindByName(ctx context.Context, name string) (*model.Role, error)
	FindAll(ctx context.Context) ([]*model.Role, error)
	Update(ctx context.Context, role *model.Role) error
	Delete(ctx context.Context, roleID uint) error
}

type roleRepoImpl struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepoImpl{
		db: db,
	}
}

func (r *roleRepoImpl) Create(ctx context.Context, role *model.Role) error {
	return r.db.WithContext(ctx).Create(role).Error
}

func (r *roleRepoImpl) FindByID(ctx context.Context, roleID uint) (*model.Role, error) {
	var role model.Role
	err := r.db.WithContext(ctx).
		Where("id = ?", roleID).
		First(&role).Error

	if err != nil {
		return nil, err
	}

	return &role, nil
}

func (r *roleRepoImpl) FindByName(ctx context.Context, name string) (*model.Role, error) {
	var role model.Role
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&role).Error

	if err != nil {
		return nil, err
	}

	return &role, nil
}

func (r *roleRepoImpl) FindAll(ctx context.Context) ([]*model.Role, error) {
	var roles []*model.Role
	err := r.db.WithContext(ctx).Find(&roles).Error
	if err != nil {
		return nil, err
	}

	return roles, nil
}

func (r *roleRepoImpl) Update(ctx context.Context, role *model.Role) error {
	result := r.db.WithContext(ctx).Model(&model.Role{}).
		Where("id = ?", role.ID).
		Select("name", "description", "permissions").
		Updates(role)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *roleRepoImpl) Delete(ctx context.Context, roleID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", roleID).
		Delete(&model.Role{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
