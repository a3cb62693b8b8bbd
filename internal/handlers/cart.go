package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"flyerhub-backend/internal/models"
	"flyerhub-backend/internal/services"
)

type CartQueries interface {
	ListActiveCart(ctx context.Context, userID int64) ([]models.CartItem, error)
	RemoveCartItem(ctx context.Context, id int64) error
	ClearCart(ctx context.Context, userID int64) (int64, error)
}

type CartHandler struct {
	composer *services.Composer
	store    CartQueries
	maxBytes int64
}

func NewCartHandler(composer *services.Composer, store CartQueries, maxBytes int64) *CartHandler {
	return &CartHandler{composer: composer, store: store, maxBytes: maxBytes}
}

// AddToCart godoc
// @Summary     Add a flyer to the cart
// @Description Adds a customised flyer to the buyer's cart. If the buyer already has the flyer active in their cart, the existing item id is returned with 200.
// @Tags        cart
// @Accept      multipart/form-data
// @Produce     json
// @Param       user_id  formData int true "Buyer"
// @Param       flyer_is formData int true "Catalog flyer id"
// @Success     200 {object} models.CartAddResponse "Already in cart"
// @Success     201 {object} models.CartAddResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /cart/add [post]
func (h *CartHandler) AddToCart(c *gin.Context) {
	sub, err := parseSubmission(c, h.maxBytes)
	if err != nil {
		respondError(c, err)
		return
	}

	res, err := h.composer.AddToCart(c.Request.Context(), sub)
	if err != nil {
		respondError(c, err)
		return
	}

	if res.Duplicate {
		c.JSON(http.StatusOK, models.CartAddResponse{
			Success:    true,
			Message:    "Flyer already in cart",
			CartItemID: res.ID,
		})
		return
	}
	c.JSON(http.StatusCreated, models.CartAddResponse{
		Success:    true,
		Message:    "Added to cart successfully",
		CartItemID: res.ID,
		CartItem:   res.Item,
	})
}

// GetCart godoc
// @Summary     Get a buyer's cart
// @Tags        cart
// @Produce     json
// @Param       user_id path     int true "Buyer"
// @Success     200 {object} models.CartResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /cart/{user_id} [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	items, err := h.store.ListActiveCart(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.CartResponse{Success: true, Count: len(items), Cart: items})
}

// RemoveCartItem godoc
// @Summary     Remove a cart item
// @Tags        cart
// @Produce     json
// @Param       id  path     int true "Cart item ID"
// @Success     200 {object} models.MessageResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /cart/remove/{id} [delete]
func (h *CartHandler) RemoveCartItem(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.store.RemoveCartItem(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Success: true, Message: "Item removed from cart"})
}

// ClearCart godoc
// @Summary     Check out a buyer's cart
// @Description Marks every active item as ordered.
// @Tags        cart
// @Produce     json
// @Param       user_id path     int true "Buyer"
// @Success     200 {object} models.MessageResponse
// @Router      /cart/clear/{user_id} [delete]
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	if _, err := h.store.ClearCart(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Success: true, Message: "Cart cleared successfully"})
}
