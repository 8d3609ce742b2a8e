// Package remote talks to the remote cart service over HTTP.
//
// There is no retry, backoff or offline queue: a failed call surfaces as an
// *Error whose message is meant to be shown to the user as is.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/RR-LN/comercio-cart/internal/domain"
	"github.com/RR-LN/comercio-cart/internal/port"
	"github.com/RR-LN/comercio-cart/internal/wire"
	"golang.org/x/text/currency"
)

const (
	msgFetchFailed    = "Failed to fetch cart"
	msgAddFailed      = "Failed to add to cart"
	msgUpdateFailed   = "Failed to update cart"
	msgRemoveFailed   = "Failed to remove from cart"
	msgClearFailed    = "Failed to clear cart"
	msgDiscountFailed = "Failed to apply discount"
)

// Error is a failed remote call. Message is user-facing; Err keeps the cause.
type Error struct {
	Message    string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message extracts the user-facing message from err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var remoteErr *Error
	if errors.As(err, &remoteErr) {
		return remoteErr.Message
	}
	return err.Error()
}

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

var _ port.RemoteCart = (*Client)(nil)

func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("url.Parse[%s]: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("baseURL[%s] must be absolute", baseURL)
	}

	return &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// GetCart fetches the authoritative lines of userID.
func (c *Client) GetCart(ctx context.Context, userID string) ([]domain.CartItem, error) {
	if userID == "" {
		return nil, &Error{Message: msgFetchFailed, Err: errors.New("userID is empty")}
	}

	var items []wire.CartItem
	if err := c.do(ctx, http.MethodGet, "/api/cart/"+url.PathEscape(userID), nil, &items); err != nil {
		return nil, withMessage(msgFetchFailed, err)
	}

	result, err := wire.ItemsToDomain(items)
	if err != nil {
		return nil, &Error{Message: msgFetchFailed, Err: fmt.Errorf("wire.ItemsToDomain: %w", err)}
	}

	return result, nil
}

// AddItem posts req to the cart of userID and returns the line the service
// stored.
func (c *Client) AddItem(ctx context.Context, userID string, req domain.AddItemRequest) (domain.CartItem, error) {
	if userID == "" {
		return domain.CartItem{}, &Error{Message: msgAddFailed, Err: errors.New("userID is empty")}
	}

	var item wire.CartItem
	if err := c.do(ctx, http.MethodPost, "/api/cart/add", wire.NewAddItemBody(userID, req), &item); err != nil {
		return domain.CartItem{}, withMessage(msgAddFailed, err)
	}

	result, err := item.ToDomain()
	if err != nil {
		return domain.CartItem{}, &Error{Message: msgAddFailed, Err: fmt.Errorf("item.ToDomain: %w", err)}
	}

	return result, nil
}

// UpdateQuantity sets the quantity of itemID and returns the resulting cart.
// A non-positive quantity removes the line.
func (c *Client) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) ([]domain.CartItem, error) {
	if userID == "" {
		return nil, &Error{Message: msgUpdateFailed, Err: errors.New("userID is empty")}
	}

	var items []wire.CartItem
	body := wire.UpdateQuantityBody{Quantity: &quantity}
	if err := c.do(ctx, http.MethodPut, itemPath(userID, itemID), body, &items); err != nil {
		return nil, withMessage(msgUpdateFailed, err)
	}

	result, err := wire.ItemsToDomain(items)
	if err != nil {
		return nil, &Error{Message: msgUpdateFailed, Err: fmt.Errorf("wire.ItemsToDomain: %w", err)}
	}

	return result, nil
}

func (c *Client) RemoveItem(ctx context.Context, userID, itemID string) error {
	if userID == "" {
		return &Error{Message: msgRemoveFailed, Err: errors.New("userID is empty")}
	}

	if err := c.do(ctx, http.MethodDelete, itemPath(userID, itemID), nil, nil); err != nil {
		return withMessage(msgRemoveFailed, err)
	}

	return nil
}

func (c *Client) ClearCart(ctx context.Context, userID string) error {
	if userID == "" {
		return &Error{Message: msgClearFailed, Err: errors.New("userID is empty")}
	}

	if err := c.do(ctx, http.MethodDelete, "/api/cart/"+url.PathEscape(userID), nil, nil); err != nil {
		return withMessage(msgClearFailed, err)
	}

	return nil
}

// ApplyDiscount redeems code against the cart of userID, priced in unit.
func (c *Client) ApplyDiscount(ctx context.Context, userID, code string, unit currency.Unit) (domain.CartTotals, error) {
	if userID == "" {
		return domain.CartTotals{}, &Error{Message: msgDiscountFailed, Err: errors.New("userID is empty")}
	}

	var totals wire.CartTotals
	body := wire.DiscountBody{Code: code, Currency: unit.String()}
	if err := c.do(ctx, http.MethodPost, "/api/cart/"+url.PathEscape(userID)+"/discount", body, &totals); err != nil {
		return domain.CartTotals{}, withMessage(msgDiscountFailed, err)
	}

	result, err := totals.ToDomain()
	if err != nil {
		return domain.CartTotals{}, &Error{Message: msgDiscountFailed, Err: fmt.Errorf("totals.ToDomain: %w", err)}
	}

	return result, nil
}

func itemPath(userID, itemID string) string {
	return "/api/cart/" + url.PathEscape(userID) + "/items/" + url.PathEscape(itemID)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("json.Marshal: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpClient.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{StatusCode: resp.StatusCode, Err: decodeServiceError(resp)}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("json.Decode: %w", err)
	}

	return nil
}

func decodeServiceError(resp *http.Response) error {
	var env struct {
		Error struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"error"`
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return fmt.Errorf("%s: io.ReadAll: %w", resp.Status, err)
	}
	if err := json.Unmarshal(raw, &env); err == nil && env.Error.Message != "" {
		return fmt.Errorf("%s (%s): %s", resp.Status, env.Error.Code, env.Error.Message)
	}

	return errors.New(resp.Status)
}

func withMessage(msg string, err error) error {
	var remoteErr *Error
	if errors.As(err, &remoteErr) {
		remoteErr.Message = msg
		return remoteErr
	}
	return &Error{Message: msg, Err: err}
}
