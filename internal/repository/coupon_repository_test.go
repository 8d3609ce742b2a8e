package repository_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/RR-LN/comercio-cart/internal/domain"
	"github.com/RR-LN/comercio-cart/internal/port"
	"github.com/RR-LN/comercio-cart/internal/repository"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

type couponRepositorySuite struct {
	suite.Suite

	repo      port.CouponRepository
	pool      *pgxpool.Pool
	container *postgres.PostgresContainer
}

func TestCouponRepositorySuite(t *testing.T) {
	suite.Run(t, new(couponRepositorySuite))
}

func (suite *couponRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	var (
		connStr string
		err     error
	)
	suite.container, connStr, err = startPostgres(ctx)
	suite.Require().NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)

	suite.repo = repository.NewCoupon(suite.pool)
}

func (suite *couponRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *couponRepositorySuite) TestRedeemCoupon() {
	defer suite.deleteAll()

	now := time.Now().UTC().Truncate(time.Second)

	tests := []struct {
		name      string
		coupon    *domain.Coupon
		code      string
		wantUsed  int
		wantError error
	}{
		{
			name:     "valid coupon: use counted",
			coupon:   randomCoupon(now, 3, 0),
			wantUsed: 1,
		},
		{
			name:      "last use taken: not valid",
			coupon:    randomCoupon(now, 1, 1),
			wantError: domain.ErrCouponNotValid,
		},
		{
			name: "expired coupon: not valid",
			coupon: func() *domain.Coupon {
				c := randomCoupon(now, 5, 0)
				c.ValidFrom = now.Add(-48 * time.Hour)
				c.ValidTo = now.Add(-24 * time.Hour)
				return c
			}(),
			wantError: domain.ErrCouponNotValid,
		},
		{
			name:      "unknown code: not found",
			code:      "NOPE-" + gofakeit.LetterN(6),
			wantError: domain.ErrCouponNotFound,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			code := tt.code
			if tt.coupon != nil {
				created, err := suite.repo.CreateCoupon(ctx, *tt.coupon)
				require.NoError(t, err)
				code = created.Code
			}

			coupon, err := suite.repo.RedeemCoupon(ctx, code, now)
			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUsed, coupon.TimesUsed)
			assert.Equal(t, tt.coupon.DiscountPercent, coupon.DiscountPercent)
		})
	}
}

func (suite *couponRepositorySuite) TestRedeemCoupon_ConcurrentLastUse() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	now := time.Now().UTC()

	coupon, err := suite.repo.CreateCoupon(ctx, *randomCoupon(now, 1, 0))
	require.NoError(t, err)

	const n = 10
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		redeemed int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := suite.repo.RedeemCoupon(ctx, coupon.Code, now)
			if err == nil {
				mu.Lock()
				redeemed++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, domain.ErrCouponNotValid)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, redeemed)
}

func (suite *couponRepositorySuite) TestCreateCoupon_Validation() {
	now := time.Now()

	bad := randomCoupon(now, 1, 0)
	bad.DiscountPercent = 101
	_, err := suite.repo.CreateCoupon(suite.T().Context(), *bad)
	suite.EqualError(err, "discountPercent[101] is out of range")
}

func (suite *couponRepositorySuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE coupons")
	suite.NoError(err)
}

func TestMemoryCoupon(t *testing.T) {
	ctx := t.Context()
	repo := repository.NewMemoryCoupon()
	now := time.Now()

	coupon, err := repo.CreateCoupon(ctx, *randomCoupon(now, 1, 0))
	require.NoError(t, err)

	_, err = repo.CreateCoupon(ctx, coupon)
	require.Error(t, err)

	redeemed, err := repo.RedeemCoupon(ctx, coupon.Code, now)
	require.NoError(t, err)
	assert.Equal(t, 1, redeemed.TimesUsed)

	_, err = repo.RedeemCoupon(ctx, coupon.Code, now)
	require.ErrorIs(t, err, domain.ErrCouponNotValid)

	_, err = repo.RedeemCoupon(ctx, "missing", now)
	require.ErrorIs(t, err, domain.ErrCouponNotFound)
}

func randomCoupon(now time.Time, maxUses, timesUsed int) *domain.Coupon {
	return &domain.Coupon{
		Code:            gofakeit.LetterN(8),
		DiscountPercent: gofakeit.IntRange(1, 100),
		ValidFrom:       now.Add(-time.Hour),
		ValidTo:         now.Add(time.Hour),
		MaxUses:         maxUses,
		TimesUsed:       timesUsed,
	}
}
