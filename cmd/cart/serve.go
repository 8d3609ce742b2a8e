package main

import (
	"context"
	"fmt"

	"github.com/RR-LN/comercio-cart/internal/httpapi"
	"github.com/RR-LN/comercio-cart/internal/port"
	"github.com/RR-LN/comercio-cart/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var storage string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the remote cart service",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var (
				repo    port.CartRepository
				coupons port.CouponRepository
				ping    func(ctx context.Context) error
			)
			switch storage {
			case "postgres":
				pool, err := pgxpool.New(ctx, a.cfg.Database.URL)
				if err != nil {
					return fmt.Errorf("pgxpool.New: %w", err)
				}
				defer pool.Close()

				if err := pool.Ping(ctx); err != nil {
					return fmt.Errorf("pool.Ping: %w", err)
				}
				repo = repository.NewCart(pool)
				coupons = repository.NewCoupon(pool)
				ping = pool.Ping
			case "memory":
				repo = repository.NewMemoryCart()
				coupons = repository.NewMemoryCoupon()
			default:
				return fmt.Errorf("storage[%s] is not supported", storage)
			}

			if a.cfg.AppEnv == "prod" || a.cfg.AppEnv == "production" {
				gin.SetMode(gin.ReleaseMode)
			}

			router := httpapi.NewRouter(httpapi.RouterConfig{
				CartHandler:   httpapi.NewCartHandler(repo, coupons),
				HealthHandler: httpapi.NewHealthHandler(ping),
				Logger:        a.log.With("service", "cart-api"),
			})

			srv := httpapi.NewServer(a.cfg.HTTP.Addr, router, a.cfg.HTTP.ShutdownTimeout, a.log)
			if err := srv.Run(ctx); err != nil {
				return err
			}

			a.log.Info("bye")
			return nil
		},
	}

	cmd.Flags().StringVar(&storage, "storage", "postgres", "cart storage: postgres or memory")

	return cmd
}
