package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"storefront-backend/internal/model"
)

type CartItem struct {
	ProductID     uint    `json:"productId"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Quantity      int     `json:"quantity"`
	ImageURL      string  `json:"imageUrl"`
	Description   string  `json:"description"`
	Brand         string  `json:"brand"`
	Category      string  `json:"category"`
	SKU           string  `json:"sku"`
	SelectedSize  string  `json:"selectedSize"`
	SelectedColor string  `json:"selectedColor"`
}

type CheckoutRequest struct {
	CartItems          []*CartItem `json:"cartItems"`
	UserEmail          string      `json:"userEmail"`
	ShippingCost       float64     `json:"shippingCost"`
	DiscountPercentage float64     `json:"discountPercentage"`
	CouponCode         string      `json:"couponCode"`
}

// CheckoutResponse carries the session id the client redirects with.
type CheckoutResponse struct {
	ID string `json:"id"`
}

type OrderDetailResponse struct {
	Order *model.Order       `json:"order"`
	Items []*model.OrderItem `json:"items"`
}

type CouponCodeRequest struct {
	Code string `json:"code"`
}

type CouponValidity struct {
	IsValid            bool            `json:"isValid"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	Reason             string          `json:"reason,omitempty"`
}

type ApplyCouponResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	UsageCount int    `json:"usageCount,omitempty"`
}

type CreateCouponRequest struct {
	Code               string    `json:"code"`
	DiscountPercentage float64   `json:"discountPercentage"`
	ExpiryDate         time.Time `json:"expiryDate"`
	UsageLimit         int       `json:"usageLimit"`
}

type ProductRequest struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	SKU         string  `json:"sku"`
	Brand       string  `json:"brand"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"imageUrl"`
}

type ProductListResponse struct {
	Products      []*model.Product `json:"products"`
	Page          int              `json:"page"`
	PageSize      int              `json:"pageSize"`
	TotalPages    int              `json:"totalPages"`
	TotalProducts int64            `json:"totalProducts"`
}

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type UpdateUserRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type CreateSubAdminRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type RoleRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}
