package main

import (
	"fmt"

	"github.com/RR-LN/comercio-cart/internal/config"
	"github.com/RR-LN/comercio-cart/internal/logger"
	"github.com/spf13/cobra"
)

type app struct {
	configPath string
	sessionID  string
	userID     string

	cfg config.Config
	log *logger.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "cart",
		Short: "Storefront cart service and session cart client",
		Long: `cart runs the remote cart service (serve) and drives a session cart
against it. The session cart lives in redis under --session; commands that
talk to the remote service need --user.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return fmt.Errorf("config.Load: %w", err)
			}
			a.cfg = cfg

			a.log, err = logger.New(cfg.AppEnv, cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("logger.New: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				a.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "cart.yaml", "path to the YAML config file")
	root.PersistentFlags().StringVarP(&a.sessionID, "session", "s", "default", "session the local cart belongs to")
	root.PersistentFlags().StringVarP(&a.userID, "user", "u", "", "user id on the remote cart service")

	root.AddCommand(
		newServeCmd(a),
		newShowCmd(a),
		newAddCmd(a),
		newUpdateCmd(a),
		newRemoveCmd(a),
		newClearCmd(a),
		newSyncCmd(a),
		newDiscountCmd(a),
		newCouponCmd(a),
	)

	return root
}
