package domain

import "errors"

var (
	ErrItemNotFound     = errors.New("cart item not found")
	ErrCurrencyMismatch = errors.New("currency mismatch")
	ErrPriceScale       = errors.New("price has too many decimal places")
	ErrCouponNotFound   = errors.New("coupon not found")
	ErrCouponNotValid   = errors.New("coupon is not valid")
)
