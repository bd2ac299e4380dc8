package repository

import (
	"context"

	"gorm.io/gorm"

	"storefront-backend/internal/model"
)

type PaymentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, payment *model.Payment) error
	Exists(ctx context.Context, paymentID string) (bool, error)
	FindByOrderID(ctx context.Context, orderID string) (*model.Payment, error)
	SetReceiptURL(ctx context.Context, paymentID, receiptURL string) error
}

type paymentRepoImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepoImpl{
		db: db,
	}
}

func (r *paymentRepoImpl) Create(ctx context.Context, tx *gorm.DB, payment *model.Payment) error {
	return tx.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepoImpl) Exists(ctx context.Context, paymentID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("payment_id = ?", paymentID).
		Count(&count).Error

	return count > 0, err
}

func (r *paymentRepoImpl) FindByOrderID(ctx context.Context, orderID string) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&payment).Error

	if err != nil {
		return nil, err
	}

	return &payment, nil
}

func (r *paymentRepoImpl) SetReceiptURL(ctx context.Context, paymentID, receiptURL string) error {
	return r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("payment_id = ?", paymentID).
		Update("receipt_url", receiptURL).Error
}
