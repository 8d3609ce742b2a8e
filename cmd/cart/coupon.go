package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/RR-LN/comercio-cart/internal/domain"
	"github.com/RR-LN/comercio-cart/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

func newCouponCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coupon",
		Short: "Manage discount coupons of the remote cart service",
	}

	cmd.AddCommand(newCouponCreateCmd(a))

	return cmd
}

func newCouponCreateCmd(a *app) *cobra.Command {
	var (
		validFor time.Duration
		maxUses  int
	)

	cmd := &cobra.Command{
		Use:   "create <code> <percent>",
		Short: "Create a percentage coupon in the postgres cart store",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			percent, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("percent[%s] is not a number", args[1])
			}

			pool, err := pgxpool.New(ctx, a.cfg.Database.URL)
			if err != nil {
				return fmt.Errorf("pgxpool.New: %w", err)
			}
			defer pool.Close()

			now := time.Now().UTC()
			coupon, err := repository.NewCoupon(pool).CreateCoupon(ctx, domain.Coupon{
				Code:            args[0],
				DiscountPercent: percent,
				ValidFrom:       now,
				ValidTo:         now.Add(validFor),
				MaxUses:         maxUses,
			})
			if err != nil {
				return err
			}

			a.log.Info("coupon created", "code", coupon.Code, "percent", coupon.DiscountPercent, "valid_to", coupon.ValidTo)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d%% off, %d use(s) until %s\n",
				coupon.Code, coupon.DiscountPercent, coupon.MaxUses, coupon.ValidTo.Format(time.RFC3339))
			return err
		},
	}

	cmd.Flags().DurationVar(&validFor, "valid-for", 30*24*time.Hour, "how long the coupon stays valid")
	cmd.Flags().IntVar(&maxUses, "max-uses", 1, "number of times the coupon can be redeemed")

	return cmd
}
