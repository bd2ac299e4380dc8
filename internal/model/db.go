package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending = "Pending"
	OrderStatusPaid    = "Paid"
)

type Order struct {
	ID                 string          `gorm:"primaryKey;size:64;not null" json:"orderId"`
	UserEmail          string          `gorm:"size:255;index;not null" json:"userEmail"`
	Subtotal           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"totalProductPrice"`
	ShippingCost       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"shippingCost"`
	DiscountPercentage decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"discountPercentage"`
	TotalAmount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"totalAmount"`
	CouponCode         string          `gorm:"size:64" json:"couponCode,omitempty"`
	// stripe checkout session id, set once at creation
	SessionID string `gorm:"size:128;uniqueIndex;not null" json:"sessionId"`
	Status    string `gorm:"size:32;index;not null" json:"status"` // Pending, Paid
	CreatedAt time.Time                                            `json:"createdAt"`
	UpdatedAt time.Time                                            `json:"-"`
}

// OrderItem is a denormalized snapshot of a catalog product at purchase time.
type OrderItem struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// FK → orders.id
	OrderID       string          `gorm:"size:64;index;not null" json:"orderId"`
	ProductID     uint            `gorm:"index;not null" json:"productId"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity      int             `gorm:"not null" json:"quantity"`
	ImageURL      string          `gorm:"size:512" json:"imageUrl"`
	Description   string          `json:"description,omitempty"`
	Brand         string          `gorm:"size:128" json:"brand,omitempty"`
	Category      string          `gorm:"size:128" json:"category,omitempty"`
	SKU           string          `gorm:"size:64" json:"sku,omitempty"`
	SelectedSize  string          `gorm:"size:32" json:"selectedSize,omitempty"`
	SelectedColor string          `gorm:"size:32" json:"selectedColor,omitempty"`
	CreatedAt     time.Time       `json:"-"`
}

type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// external session id, one payment per session
	PaymentID string `gorm:"size:128;uniqueIndex;not null" json:"paymentId"`
	// FK → orders.id
	OrderID    string          `gorm:"size:64;index;not null" json:"orderId"`
	Amount     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Currency   string          `gorm:"size:8;not null" json:"currency"`
	Status     string          `gorm:"size:32;not null" json:"paymentStatus"`
	Method     string          `gorm:"size:32;not null" json:"paymentMethod"`
	ReceiptURL string          `gorm:"size:512" json:"receiptUrl,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

type Coupon struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	Code               string          `gorm:"size:64;uniqueIndex;not null" json:"code"`
	DiscountPercentage decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"discountPercentage"`
	ExpiryDate         time.Time       `gorm:"not null" json:"expiryDate"`
	UsageLimit         int             `gorm:"not null" json:"usageLimit"`
	UsageCount         int             `gorm:"not null;default:0" json:"usageCount"`
	CreatedAt          time.Time       `json:"-"`
	UpdatedAt          time.Time       `json:"-"`
}

type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:255;index;not null" json:"name"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);index;not null" json:"price"`
	Description string          `gorm:"not null" json:"description"`
	SKU         string          `gorm:"size:64;not null" json:"sku"`
	Brand       string          `gorm:"size:128;index;not null" json:"brand"`
	Category    string          `gorm:"size:128;index;not null" json:"category"`
	ImageURL    string          `gorm:"size:512;not null" json:"imageUrl"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"`
	Name         string    `gorm:"size:255" json:"name,omitempty"`
	Role         string    `gorm:"size:64;index;not null;default:customer" json:"role"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// Role maps a role name to the set of actions it may perform.
type Role struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:64;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"size:255" json:"description,omitempty"`
	Permissions []string  `gorm:"serializer:json" json:"permissions"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// WebhookEvent records processed webhook deliveries so redelivered
// events are acknowledged without being applied twice.
type WebhookEvent struct {
	EventID     string `gorm:"primaryKey;size:128;not null"`
	EventType   string `gorm:"size:64;index"`
	ProcessedAt time.Time
	CreatedAt   time.Time
}
