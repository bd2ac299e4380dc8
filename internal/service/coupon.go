package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"storefront-backend/internal/dto"
	"storefront-backend/internal/model"
	"storefront-backend/internal/repository"
)

type CouponService interface {
	Validate(ctx context.Context, code string) (*dto.CouponValidity, error)
	Apply(ctx context.Context, code string) (*dto.ApplyCouponResponse, error)
	List(ctx context.Context) ([]*model.Coupon, error)
	Create(ctx context.Context, req *dto.CreateCouponRequest) (*model.Coupon, error)
	Delete(ctx context.Context, code string) error
}

type couponServiceImpl struct {
	couponRepo repository.CouponRepository
}

func NewCouponService(couponRepo repository.CouponRepository) CouponService {
	return &couponServiceImpl{
		couponRepo: couponRepo,
	}
}

// Validate reports whether the code can be redeemed without touching the
// usage counter.
func (s *couponServiceImpl) Validate(ctx context.Context, code string) (*dto.CouponValidity, error) {
	coupon, err := s.couponRepo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.CouponValidity{Reason: "Coupon does not exist."}, nil
		}
		return nil, fmt.Errorf("find coupon: %w", err)
	}

	if coupon.ExpiryDate.Before(time.Now()) {
		return &dto.CouponValidity{Reason: "Coupon has expired."}, nil
	}
	if coupon.UsageCount >= coupon.UsageLimit {
		return &dto.CouponValidity{Reason: "Usage limit exceeded."}, nil
	}

	return &dto.CouponValidity{
		IsValid:            true,
		DiscountPercentage: coupon.DiscountPercentage,
	}, nil
}

// Apply increments the usage counter. The increment is conditional at
// the storage layer, so an expired or exhausted coupon never moves.
func (s *couponServiceImpl) Apply(ctx context.Context, code string) (*dto.ApplyCouponResponse, error) {
	applied, err := s.couponRepo.IncrementUsage(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("increment coupon usage: %w", err)
	}

	if !applied {
		coupon, err := s.couponRepo.FindByCode(ctx, code)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCouponNotFound
			}
			return nil, fmt.Errorf("find coupon: %w", err)
		}

		message := "Cannot use coupon. Usage limit exceeded."
		if coupon.ExpiryDate.Before(time.Now()) {
			message = "Cannot use coupon. Coupon has expired."
		}
		return &dto.ApplyCouponResponse{
			Success: false,
			Message: message,
		}, nil
	}

	coupon, err := s.couponRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("find coupon: %w", err)
	}

	return &dto.ApplyCouponResponse{
		Success:    true,
		Message:    "Coupon applied successfully",
		UsageCount: coupon.UsageCount,
	}, nil
}

func (s *couponServiceImpl) List(ctx context.Context) ([]*model.Coupon, error) {
	return s.couponRepo.FindAll(ctx)
}

func (s *couponServiceImpl) Create(ctx context.Context, req *dto.CreateCouponRequest) (*model.Coupon, error) {
	if _, err := s.couponRepo.FindByCode(ctx, req.Code); err == nil {
		return nil, ErrCouponExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find coupon: %w", err)
	}

	coupon := &model.Coupon{
		Code:               req.Code,
		DiscountPercentage: decimal.NewFromFloat(req.DiscountPercentage),
		ExpiryDate:         req.ExpiryDate,
		UsageLimit:         req.UsageLimit,
	}

	if err := s.couponRepo.Create(ctx, coupon); err != nil {
		return nil, fmt.Errorf("create coupon: %w", err)
	}

	return coupon, nil
}

func (s *couponServiceImpl) Delete(ctx context.Context, code string) error {
	err := s.couponRepo.Delete(ctx, code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCouponNotFound
	}

	return err
}
