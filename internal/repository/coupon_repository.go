package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RR-LN/comercio-cart/internal/db"
	"github.com/RR-LN/comercio-cart/internal/domain"
	"github.com/RR-LN/comercio-cart/internal/port"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type couponRepository struct {
	q *db.Queries
}

func NewCoupon(pool *pgxpool.Pool) port.CouponRepository {
	return &couponRepository{q: db.New(pool)}
}

func (r *couponRepository) CreateCoupon(ctx context.Context, coupon domain.Coupon) (domain.Coupon, error) {
	if err := validateCoupon(coupon); err != nil {
		return domain.Coupon{}, err
	}

	row, err := r.q.CreateCoupon(ctx, db.CreateCouponParams{
		Code:            coupon.Code,
		DiscountPercent: int32(coupon.DiscountPercent),
		ValidFrom:       coupon.ValidFrom,
		ValidTo:         coupon.ValidTo,
		MaxUses:         int32(coupon.MaxUses),
		TimesUsed:       int32(coupon.TimesUsed),
	})
	if err != nil {
		return domain.Coupon{}, fmt.Errorf("q.CreateCoupon: %w", err)
	}

	return mapCouponRowToDomain(db.GetCouponRow(row)), nil
}

// RedeemCoupon checks validity and counts the use in one statement, so two
// concurrent redemptions cannot both take the last use.
func (r *couponRepository) RedeemCoupon(ctx context.Context, code string, now time.Time) (domain.Coupon, error) {
	if code == "" {
		return domain.Coupon{}, fmt.Errorf("code is empty")
	}

	row, err := r.q.RedeemCoupon(ctx, db.RedeemCouponParams{Code: code, Now: now})
	if err == nil {
		return mapCouponRowToDomain(db.GetCouponRow(row)), nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.Coupon{}, fmt.Errorf("q.RedeemCoupon: %w", err)
	}

	_, err = r.q.GetCoupon(ctx, code)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Coupon{}, fmt.Errorf("code[%s]: %w", code, domain.ErrCouponNotFound)
	}
	if err != nil {
		return domain.Coupon{}, fmt.Errorf("q.GetCoupon: %w", err)
	}

	return domain.Coupon{}, fmt.Errorf("code[%s]: %w", code, domain.ErrCouponNotValid)
}

func validateCoupon(coupon domain.Coupon) error {
	switch {
	case coupon.Code == "":
		return fmt.Errorf("code is empty")
	case coupon.DiscountPercent < 0 || coupon.DiscountPercent > 100:
		return fmt.Errorf("discountPercent[%d] is out of range", coupon.DiscountPercent)
	case coupon.ValidTo.Before(coupon.ValidFrom):
		return fmt.Errorf("validTo is before validFrom")
	case coupon.MaxUses < 0 || coupon.TimesUsed < 0:
		return fmt.Errorf("uses must not be negative")
	}
	return nil
}

func mapCouponRowToDomain(row db.GetCouponRow) domain.Coupon {
	return domain.Coupon{
		Code:            row.Code,
		DiscountPercent: int(row.DiscountPercent),
		ValidFrom:       row.ValidFrom,
		ValidTo:         row.ValidTo,
		MaxUses:         int(row.MaxUses),
		TimesUsed:       int(row.TimesUsed),
	}
}
