package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"storefront-backend/internal/client"
	"storefront-backend/internal/dto"
	"storefront-backend/internal/model"
	"storefront-backend/internal/repository"
)

const eventCheckoutCompleted = "checkout.session.completed"

type CheckoutService interface {
	CreateCheckoutSession(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	HandleWebhook(ctx context.Context, body []byte, sigHeader string) error
}

type checkoutServiceImpl struct {
	db               *gorm.DB
	stripeClient     client.StripeClient
	orderRepo        repository.OrderRepository
	paymentRepo      repository.PaymentRepository
	webhookEventRepo repository.WebhookEventRepository
}

func NewCheckoutService(
	db *gorm.DB,
	stripeClient client.StripeClient,
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	webhookEventRepo repository.WebhookEventRepository,
) CheckoutService {
	return &checkoutServiceImpl{
		db:               db,
		stripeClient:     stripeClient,
		orderRepo:        orderRepo,
		paymentRepo:      paymentRepo,
		webhookEventRepo: webhookEventRepo,
	}
}

func (s *checkoutServiceImpl) CreateCheckoutSession(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if err := ValidateCheckoutRequest(req); err != nil {
		return nil, err
	}

	totals := ComputeOrderTotals(req.CartItems, req.ShippingCost, req.DiscountPercentage)
	orderID := uuid.NewString()

	// Call the processor before touching the database. A session nobody
	// pays for expires on its own; an order without a session id can
	// never be reconciled.
	session, err := s.stripeClient.CreateCheckoutSession(ctx, &client.CheckoutSessionParams{
		Amount:    totals.Total,
		Currency:  "USD",
		OrderID:   orderID,
		UserEmail: req.UserEmail,
	})
	if err != nil {
		return nil, fmt.Errorf("stripe create checkout session: %w", err)
	}

	order := &model.Order{
		ID:                 orderID,
		UserEmail:          req.UserEmail,
		Subtotal:           totals.Subtotal,
		ShippingCost:       totals.ShippingCost,
		DiscountPercentage: totals.DiscountPercentage,
		TotalAmount:        totals.Total,
		CouponCode:         req.CouponCode,
		SessionID:          session.ID,
		Status:             model.OrderStatusPending,
	}

	orderItems := make([]*model.OrderItem, len(req.CartItems))
	for i, item := range req.CartItems {
		orderItems[i] = &model.OrderItem{
			OrderID:       orderID,
			ProductID:     item.ProductID,
			Name:          item.Name,
			Price:         decimal.NewFromFloat(item.Price).Round(2),
			Quantity:      item.Quantity,
			ImageURL:      item.ImageURL,
			Description:   item.Description,
			Brand:         item.Brand,
			Category:      item.Category,
			SKU:           item.SKU,
			SelectedSize:  item.SelectedSize,
			SelectedColor: item.SelectedColor,
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("store order in db: %w", err)
		}
		if err := s.orderRepo.CreateOrderItems(ctx, tx, orderItems); err != nil {
			return fmt.Errorf("store order items in db: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.CheckoutResponse{ID: session.ID}, nil
}

func (s *checkoutServiceImpl) HandleWebhook(ctx context.Context, body []byte, sigHeader string) error {
	event, err := s.stripeClient.ConstructEvent(body, sigHeader)
	if err != nil {
		return fmt.Errorf("verify webhook signature: %w", err)
	}

	switch event.Type {
	case eventCheckoutCompleted:
		return s.handleSessionCompleted(ctx, event)
	default:
		slog.Info("unhandled webhook event type", "event_id", event.ID, "event_type", event.Type)
	}

	return nil
}

// handleSessionCompleted reconciles a completed session onto the local
// order: one Payment row, one Pending → Paid flip, exactly once per
// logical event no matter how often the processor redelivers it.
func (s *checkoutServiceImpl) handleSessionCompleted(ctx context.Context, event *model.StripeWebhookEvent) error {
	processed, err := s.webhookEventRepo.Exists(ctx, event.ID)
	if err != nil {
		return fmt.Errorf("check processed events: %w", err)
	}
	if processed {
		slog.Info("webhook event already processed", "event_id", event.ID)
		return nil
	}

	session := event.Data.Object

	order, err := s.orderRepo.FindBySessionID(ctx, session.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("session %s: %w", session.ID, ErrOrderNotFound)
		}
		return fmt.Errorf("find order by session id: %w", err)
	}

	// A payment for this session under a different event id also counts
	// as a duplicate delivery.
	exists, err := s.paymentRepo.Exists(ctx, session.ID)
	if err != nil {
		return fmt.Errorf("check existing payment: %w", err)
	}
	if exists {
		slog.Info("payment already recorded for session", "session_id", session.ID)
		return nil
	}

	method := "card"
	if len(session.PaymentMethodTypes) > 0 {
		method = session.PaymentMethodTypes[0]
	}

	payment := &model.Payment{
		PaymentID: session.ID,
		OrderID:   order.ID,
		Amount:    decimal.New(session.AmountTotal, -2),
		Currency:  session.Currency,
		Status:    session.PaymentStatus,
		Method:    method,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.paymentRepo.Create(ctx, tx, payment); err != nil {
			return fmt.Errorf("store payment in db: %w", err)
		}
		if err := s.orderRepo.MarkPaid(ctx, tx, order.ID); err != nil {
			return fmt.Errorf("mark order paid: %w", err)
		}
		if err := s.webhookEventRepo.MarkProcessed(ctx, tx, event.ID, event.Type); err != nil {
			return fmt.Errorf("mark event processed: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.attachReceipt(ctx, session.ID, session.PaymentIntent)

	return nil
}

// attachReceipt is a best-effort follow-up lookup. The webhook has
// already been applied, so a failure here only logs.
func (s *checkoutServiceImpl) attachReceipt(ctx context.Context, sessionID, paymentIntentID string) {
	if paymentIntentID == "" {
		return
	}

	receiptURL, err := s.stripeClient.GetReceiptURL(ctx, paymentIntentID)
	if err != nil {
		slog.Warn("fetch receipt url", "session_id", sessionID, "error", err)
		return
	}
	if receiptURL == "" {
		return
	}

	if err := s.paymentRepo.SetReceiptURL(ctx, sessionID, receiptURL); err != nil {
		slog.Warn("store receipt url", "session_id", sessionID, "error", err)
	}
}
