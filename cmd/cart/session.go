package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/RR-LN/comercio-cart/internal/cart"
	"github.com/RR-LN/comercio-cart/internal/cartsync"
	"github.com/RR-LN/comercio-cart/internal/domain"
	"github.com/RR-LN/comercio-cart/internal/remote"
	"github.com/RR-LN/comercio-cart/internal/session"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/text/currency"
)

// sessionCart is the cart of the current --session, loaded from redis and
// saved back on every change.
type sessionCart struct {
	store  *cart.Store
	close  func()
	syncer *cartsync.Syncer
}

func (a *app) openSession(ctx context.Context) (*sessionCart, error) {
	rdb, err := session.Connect(ctx, a.cfg.Redis.Addr, a.cfg.Redis.Password, a.cfg.Redis.DB)
	if err != nil {
		return nil, fmt.Errorf("session.Connect: %w", err)
	}

	sessions := session.NewStore(rdb, a.cfg.Redis.SessionTTL)

	snap, err := sessions.Load(ctx, a.sessionID)
	if err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("sessions.Load: %w", err)
	}

	store := cart.NewStore(snap)
	unbind := session.Bind(ctx, sessions, a.sessionID, store, a.log)

	sc := &sessionCart{
		store: store,
		close: func() {
			unbind()
			_ = rdb.Close()
		},
	}

	if a.userID != "" {
		client, err := remote.NewClient(a.cfg.Remote.BaseURL, a.cfg.Remote.Timeout)
		if err != nil {
			sc.close()
			return nil, fmt.Errorf("remote.NewClient: %w", err)
		}
		sc.syncer = cartsync.New(a.userID, store, client, a.log)
	}

	return sc, nil
}

func newShowCmd(a *app) *cobra.Command {
	var currencyCode string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the session cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer sc.close()

			return printCart(cmd.OutOrStdout(), sc.store.Snapshot(), currencyCode)
		},
	}

	cmd.Flags().StringVar(&currencyCode, "currency", "", "ISO currency for the total; empty skips the total")

	return cmd
}

func newAddCmd(a *app) *cobra.Command {
	var (
		req          domain.AddItemRequest
		price        string
		currencyCode string
	)

	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Long: `Adds a product to the session cart. With --user the line is posted to
the remote cart service first and the stored line is merged locally.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.ProductID = args[0]
			if req.Quantity <= 0 {
				return fmt.Errorf("quantity[%d] must be positive", req.Quantity)
			}

			money, err := parseMoney(price, currencyCode)
			if err != nil {
				return err
			}
			req.Price = money

			sc, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer sc.close()

			if sc.syncer != nil {
				if _, err := sc.syncer.Add(cmd.Context(), req); err != nil {
					return errors.New(sc.syncer.Err())
				}
			} else {
				sc.store.AddItem(domain.CartItem{
					ID:        lineID(req),
					ProductID: req.ProductID,
					Quantity:  req.Quantity,
					Color:     req.Color,
					Size:      req.Size,
					Price:     req.Price,
				})
			}

			return printCart(cmd.OutOrStdout(), sc.store.Snapshot(), "")
		},
	}

	cmd.Flags().IntVarP(&req.Quantity, "qty", "q", 1, "quantity to add")
	cmd.Flags().StringVar(&req.Color, "color", "", "color option")
	cmd.Flags().StringVar(&req.Size, "size", "", "size option")
	cmd.Flags().StringVar(&price, "price", "", "unit price, e.g. 19.99")
	cmd.Flags().StringVar(&currencyCode, "currency", "USD", "ISO currency of --price")

	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update <item-id> <quantity>",
		Short: "Set the quantity of a cart line; 0 removes it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("quantity[%s] is not a number", args[1])
			}

			sc, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer sc.close()

			if sc.syncer != nil {
				if err := sc.syncer.UpdateQuantity(cmd.Context(), args[0], quantity); err != nil {
					return errors.New(sc.syncer.Err())
				}
				return printCart(cmd.OutOrStdout(), sc.store.Snapshot(), "")
			}

			if !sc.store.Snapshot().Has(args[0]) {
				a.log.Warn("update of unknown cart line ignored", "item_id", args[0])
			}
			return printCart(cmd.OutOrStdout(), sc.store.UpdateQuantity(args[0], quantity), "")
		},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <item-id>",
		Short: "Remove a line from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer sc.close()

			if sc.syncer != nil {
				if err := sc.syncer.RemoveItem(cmd.Context(), args[0]); err != nil {
					return errors.New(sc.syncer.Err())
				}
				return printCart(cmd.OutOrStdout(), sc.store.Snapshot(), "")
			}

			return printCart(cmd.OutOrStdout(), sc.store.RemoveItem(args[0]), "")
		},
	}
}

func newClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer sc.close()

			if sc.syncer != nil {
				if err := sc.syncer.Clear(cmd.Context()); err != nil {
					return errors.New(sc.syncer.Err())
				}
			} else {
				sc.store.Clear()
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "cart cleared")
			return err
		},
	}
}

func newSyncCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Replace the session cart with the remote cart of --user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.userID == "" {
				return errors.New("--user is required")
			}

			sc, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer sc.close()

			if err := sc.syncer.Load(cmd.Context()); err != nil {
				return errors.New(sc.syncer.Err())
			}

			return printCart(cmd.OutOrStdout(), sc.store.Snapshot(), "")
		},
	}
}

func newDiscountCmd(a *app) *cobra.Command {
	var currencyCode string

	cmd := &cobra.Command{
		Use:   "discount <code>",
		Short: "Redeem a coupon against the remote cart of --user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.userID == "" {
				return errors.New("--user is required")
			}

			unit, err := currency.ParseISO(currencyCode)
			if err != nil {
				return fmt.Errorf("currency[%s] is not valid: %w", currencyCode, err)
			}

			sc, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer sc.close()

			totals, err := sc.syncer.ApplyDiscount(cmd.Context(), args[0], unit)
			if err != nil {
				return errors.New(sc.syncer.Err())
			}

			if err := printCart(cmd.OutOrStdout(), sc.store.Snapshot(), ""); err != nil {
				return err
			}
			return printTotals(cmd.OutOrStdout(), totals)
		},
	}

	cmd.Flags().StringVar(&currencyCode, "currency", "USD", "ISO currency the cart is priced in")

	return cmd
}

// lineID identifies a local line by its product configuration, so adding the
// same configuration twice merges into one line. Parts are escaped, so a ':'
// inside an id cannot collide with the separator.
func lineID(req domain.AddItemRequest) string {
	parts := []string{url.QueryEscape(req.ProductID)}
	if req.Color != "" || req.Size != "" {
		parts = append(parts, url.QueryEscape(req.Color), url.QueryEscape(req.Size))
	}
	return strings.Join(parts, ":")
}

func parseMoney(amount, code string) (domain.Money, error) {
	if amount == "" {
		return domain.Money{}, nil
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return domain.Money{}, fmt.Errorf("price[%s] is not valid: %w", amount, err)
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		return domain.Money{}, fmt.Errorf("currency[%s] is not valid: %w", code, err)
	}

	return domain.Money{Amount: value, Currency: unit}, nil
}

func printCart(w io.Writer, snap cart.Snapshot, currencyCode string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "ID\tPRODUCT\tQTY\tCOLOR\tSIZE\tPRICE")
	for _, item := range snap.Items() {
		price := "-"
		if !item.Price.IsZero() {
			price = item.Price.String()
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n", item.ID, item.ProductID, item.Quantity, item.Color, item.Size, price)
	}
	fmt.Fprintf(tw, "\t\t%d item(s)\n", snap.TotalQuantity())

	if currencyCode != "" {
		unit, err := currency.ParseISO(currencyCode)
		if err != nil {
			return fmt.Errorf("currency[%s] is not valid: %w", currencyCode, err)
		}
		total, err := snap.TotalPrice(unit)
		if err != nil {
			return fmt.Errorf("snap.TotalPrice: %w", err)
		}
		fmt.Fprintf(tw, "\t\ttotal %s\n", total)
	}

	return tw.Flush()
}

func printTotals(w io.Writer, totals domain.CartTotals) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "subtotal\t%s\n", totals.Subtotal)
	fmt.Fprintf(tw, "discount (%s)\t-%s\n", totals.CouponCode, totals.Discount)
	fmt.Fprintf(tw, "total\t%s\n", totals.Total)

	return tw.Flush()
}
