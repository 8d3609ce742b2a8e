package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/RR-LN/comercio-cart/internal/domain"
	"github.com/RR-LN/comercio-cart/internal/port"
	"github.com/RR-LN/comercio-cart/internal/wire"
	"github.com/gin-gonic/gin"
	"golang.org/x/text/currency"
)

const (
	codeInvalidArgument    = "INVALID_ARGUMENT"
	codeNotFound           = "NOT_FOUND"
	codeFailedPrecondition = "FAILED_PRECONDITION"
	codeInternal           = "INTERNAL"
)

type CartHandler struct {
	repo    port.CartRepository
	coupons port.CouponRepository
	now     func() time.Time
}

func NewCartHandler(repo port.CartRepository, coupons port.CouponRepository) *CartHandler {
	return &CartHandler{
		repo:    repo,
		coupons: coupons,
		now:     time.Now,
	}
}

// GetCart serves GET /api/cart/:userId with the user's lines as a JSON array.
func (h *CartHandler) GetCart(c *gin.Context) {
	cart, err := h.repo.GetCart(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.internal(c, fmt.Errorf("failed to fetch cart: %w", err))
		return
	}

	RespondOK(c, wire.ItemsFromDomain(cart.Items))
}

// AddItem serves POST /api/cart/add and answers with the resulting line.
func (h *CartHandler) AddItem(c *gin.Context) {
	var body wire.AddItemBody
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, codeInvalidArgument, err)
		return
	}

	req, err := body.ToDomain()
	if err != nil {
		RespondError(c, http.StatusBadRequest, codeInvalidArgument, err)
		return
	}

	item, err := h.repo.AddItem(c.Request.Context(), body.UserID, req)
	if err != nil {
		h.internal(c, fmt.Errorf("failed to add to cart: %w", err))
		return
	}

	c.JSON(http.StatusCreated, wire.ItemFromDomain(item))
}

func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var body wire.UpdateQuantityBody
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, codeInvalidArgument, err)
		return
	}

	cart, err := h.repo.UpdateQuantity(c.Request.Context(), c.Param("userId"), c.Param("itemId"), *body.Quantity)
	if errors.Is(err, domain.ErrItemNotFound) {
		RespondError(c, http.StatusNotFound, codeNotFound, err)
		return
	}
	if err != nil {
		h.internal(c, fmt.Errorf("failed to update cart: %w", err))
		return
	}

	RespondOK(c, wire.ItemsFromDomain(cart.Items))
}

func (h *CartHandler) DeleteItem(c *gin.Context) {
	itemID := c.Param("itemId")

	deleted, err := h.repo.DeleteItem(c.Request.Context(), c.Param("userId"), itemID)
	if err != nil {
		h.internal(c, fmt.Errorf("failed to remove from cart: %w", err))
		return
	}
	if !deleted {
		RespondError(c, http.StatusNotFound, codeNotFound, fmt.Errorf("itemID[%s]: %w", itemID, domain.ErrItemNotFound))
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.repo.ClearCart(c.Request.Context(), c.Param("userId")); err != nil {
		h.internal(c, fmt.Errorf("failed to clear cart: %w", err))
		return
	}

	c.Status(http.StatusNoContent)
}

// ApplyDiscount serves POST /api/cart/:userId/discount. The cart is priced
// before the coupon is redeemed, so a cart that cannot be priced does not use
// up the coupon.
func (h *CartHandler) ApplyDiscount(c *gin.Context) {
	var body wire.DiscountBody
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, codeInvalidArgument, err)
		return
	}

	unit, err := currency.ParseISO(body.Currency)
	if err != nil {
		RespondError(c, http.StatusBadRequest, codeInvalidArgument, fmt.Errorf("currency[%s] is not valid: %w", body.Currency, err))
		return
	}

	ctx := c.Request.Context()

	cart, err := h.repo.GetCart(ctx, c.Param("userId"))
	if err != nil {
		h.internal(c, fmt.Errorf("failed to fetch cart: %w", err))
		return
	}

	subtotal, err := domain.Subtotal(cart.Items, unit)
	if err != nil {
		RespondError(c, http.StatusBadRequest, codeInvalidArgument, err)
		return
	}

	coupon, err := h.coupons.RedeemCoupon(ctx, body.Code, h.now())
	switch {
	case errors.Is(err, domain.ErrCouponNotFound):
		RespondError(c, http.StatusNotFound, codeNotFound, err)
		return
	case errors.Is(err, domain.ErrCouponNotValid):
		RespondError(c, http.StatusUnprocessableEntity, codeFailedPrecondition, err)
		return
	case err != nil:
		h.internal(c, fmt.Errorf("failed to apply discount: %w", err))
		return
	}

	RespondOK(c, wire.TotalsFromDomain(coupon.Apply(cart.Items, subtotal)))
}

func (h *CartHandler) internal(c *gin.Context, err error) {
	_ = c.Error(err)
	RespondError(c, http.StatusInternalServerError, codeInternal, err)
}
