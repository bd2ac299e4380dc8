package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"storefront-backend/internal/model"
)

type CouponRepository interface {
	Create(ctx context.Context, coupon *model.Coupon) error
	FindByCode(ctx context.Context, code string) (*model.Coupon, error)
	FindAll(ctx context.Context) ([]*model.Coupon, error)
	IncrementUsage(ctx context.Context, code string) (bool, error)
	Delete(ctx context.Context, code string) error
}

type couponRepoImpl struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) CouponRepository {
	return &couponRepoImpl{
		db: db,
	}
}

func (r *couponRepoImpl) Create(ctx context.Context, coupon *model.Coupon) error {
	return r.db.WithContext(ctx).Create(coupon).Error
}

func (r *couponRepoImpl) FindByCode(ctx context.Context, code string) (*model.Coupon, error) {
	var coupon model.Coupon
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&coupon).Error

	if err != nil {
		return nil, err
	}

	return &coupon, nil
}

func (r *couponRepoImpl) FindAll(ctx context.Context) ([]*model.Coupon, error) {
	var coupons []*model.Coupon
	err := r.db.WithContext(ctx).Find(&coupons).Error
	if err != nil {
		return nil, err
	}

	return coupons, nil
}

// IncrementUsage bumps the counter only while the coupon is still valid.
// The guard lives in the WHERE clause so two concurrent applications
// cannot push the counter past the limit.
func (r *couponRepoImpl) IncrementUsage(ctx context.Context, code string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Coupon{}).
		Where("code = ? AND usage_count < usage_limit AND expiry_date > ?", code, time.Now()).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1"))

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (r *couponRepoImpl) Delete(ctx context.Context, code string) error {
	result := r.db.WithContext(ctx).
		Where("code = ?", code).
		Delete(&model.Coupon{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
