package service

import "errors"

var (
	ErrEmptyCart          = errors.New("no items in the cart")
	ErrInvalidCart        = errors.New("invalid cart input")
	ErrInvalidInput       = errors.New("invalid input")
	ErrOrderNotFound      = errors.New("order not found")
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrCouponNotFound     = errors.New("coupon not found")
	ErrCouponExists       = errors.New("coupon code already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("user already exists with this email")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrRoleNotFound       = errors.New("role not found")
	ErrRoleExists         = errors.New("role already exists")
)
