package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"storefront-backend/internal/dto"
)

var oneHundred = decimal.NewFromInt(100)

// OrderTotals is the monetary breakdown of a checkout, computed once at
// order creation and never recomputed afterwards.
type OrderTotals struct {
	Subtotal           decimal.Decimal
	ShippingCost       decimal.Decimal
	DiscountPercentage decimal.Decimal
	Total              decimal.Decimal
}

// ComputeOrderTotals applies shipping and a flat percentage discount:
// total = (subtotal + shipping) × (1 − discount/100), rounded to cents.
func ComputeOrderTotals(items []*dto.CartItem, shippingCost, discountPercentage float64) OrderTotals {
	subtotal := decimal.Zero
	for _, item := range items {
		price := decimal.NewFromFloat(item.Price)
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	shipping := decimal.NewFromFloat(shippingCost)
	discount := decimal.NewFromFloat(discountPercentage)

	preDiscount := subtotal.Add(shipping)
	discountAmount := preDiscount.Mul(discount).Div(oneHundred)

	return OrderTotals{
		Subtotal:           subtotal.Round(2),
		ShippingCost:       shipping.Round(2),
		DiscountPercentage: discount,
		Total:              preDiscount.Sub(discountAmount).Round(2),
	}
}

// ValidateCheckoutRequest rejects malformed carts before anything is
// persisted or sent upstream.
func ValidateCheckoutRequest(req *dto.CheckoutRequest) error {
	if len(req.CartItems) == 0 {
		return ErrEmptyCart
	}
	if req.UserEmail == "" {
		return fmt.Errorf("%w: user email is required", ErrInvalidCart)
	}
	if req.ShippingCost < 0 {
		return fmt.Errorf("%w: shipping cost must not be negative", ErrInvalidCart)
	}
	if req.DiscountPercentage < 0 || req.DiscountPercentage > 100 {
		return fmt.Errorf("%w: discount percentage must be between 0 and 100", ErrInvalidCart)
	}

	for _, item := range req.CartItems {
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: item quantity must be positive", ErrInvalidCart)
		}
		if item.Price < 0 {
			return fmt.Errorf("%w: item price must not be negative", ErrInvalidCart)
		}
	}

	return nil
}
