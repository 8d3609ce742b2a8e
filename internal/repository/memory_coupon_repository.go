package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/RR-LN/comercio-cart/internal/domain"
	"github.com/RR-LN/comercio-cart/internal/port"
)

type memoryCouponRepository struct {
	mu      sync.Mutex
	coupons map[string]domain.Coupon
}

func NewMemoryCoupon() port.CouponRepository {
	return &memoryCouponRepository{coupons: make(map[string]domain.Coupon)}
}

func (r *memoryCouponRepository) CreateCoupon(_ context.Context, coupon domain.Coupon) (domain.Coupon, error) {
	if err := validateCoupon(coupon); err != nil {
		return domain.Coupon{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.coupons[coupon.Code]; ok {
		return domain.Coupon{}, fmt.Errorf("code[%s] already exists", coupon.Code)
	}
	r.coupons[coupon.Code] = coupon

	return coupon, nil
}

func (r *memoryCouponRepository) RedeemCoupon(_ context.Context, code string, now time.Time) (domain.Coupon, error) {
	if code == "" {
		return domain.Coupon{}, fmt.Errorf("code is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	coupon, ok := r.coupons[code]
	if !ok {
		return domain.Coupon{}, fmt.Errorf("code[%s]: %w", code, domain.ErrCouponNotFound)
	}
	if !coupon.Valid(now) {
		return domain.Coupon{}, fmt.Errorf("code[%s]: %w", code, domain.ErrCouponNotValid)
	}

	coupon.TimesUsed++
	r.coupons[code] = coupon

	return coupon, nil
}
