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

type OrderService interface {
	ListOrders(ctx context.Context) ([]*model.Order, error)
	GetOrder(ctx context.Context, orderID string) (*dto.OrderDetailResponse, error)
	DeleteOrder(ctx context.Context, orderID string) error
	GetPaymentByOrderID(ctx context.Context, orderID string) (*model.Payment, error)
}

type orderServiceImpl struct {
	db          *gorm.DB
	orderRepo   repository.OrderRepository
	paymentRepo repository.PaymentRepository
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
) OrderService {
	return &orderServiceImpl{
		db:          db,
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
	}
}

func (s *orderServiceImpl) ListOrders(ctx context.Context) ([]*model.Order, error) {
	return s.orderRepo.FindAll(ctx)
}

func (s *orderServiceImpl) GetOrder(ctx context.Context, orderID string) (*dto.OrderDetailResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}

	items, err := s.orderRepo.GetOrderItems(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}

	return &dto.OrderDetailResponse{
		Order: order,
		Items: items,
	}, nil
}

// DeleteOrder removes the order and its dependent items and payments in
// one transaction.
func (s *orderServiceImpl) DeleteOrder(ctx context.Context, orderID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.Delete(ctx, tx, orderID)
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrOrderNotFound
	}

	return err
}

func (s *orderServiceImpl) GetPaymentByOrderID(ctx context.Context, orderID string) (*model.Payment, error) {
	payment, err := s.paymentRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("find payment: %w", err)
	}

	return payment, nil
}
