package services

import (
	"context"
	"errors"
	"fmt"

	"flyerhub-backend/internal/metrics"
	"flyerhub-backend/internal/models"
)

// OrderStore is the relational side of order creation.
type OrderStore interface {
	InsertOrder(ctx context.Context, order *models.Order) (int64, error)
	UpdateOrderAssets(ctx context.Context, id int64, assets models.AssetBundle) error
	GetOrder(ctx context.Context, id int64) (*models.Order, error)
}

// CartStore is the relational side of cart adds.
type CartStore interface {
	FindActiveCartItem(ctx context.Context, userID, flyerID int64) (int64, bool, error)
	InsertCartItem(ctx context.Context, item *models.CartItem) (int64, error)
	UpdateCartAssets(ctx context.Context, id int64, assets models.AssetBundle) error
	GetCartItem(ctx context.Context, id int64) (*models.CartItem, error)
}

// Notifier accepts admin notifications without blocking the caller.
type Notifier interface {
	Emit(ctx context.Context, title, message, severity string)
}

// Composer runs the two-phase write for orders and cart items: insert the
// scalar row, reconcile assets against the new id, write the asset columns,
// then read the row back. The phases are separate statements, so a reader
// may briefly see a row with empty asset columns.
type Composer struct {
	orders     OrderStore
	cart       CartStore
	reconciler *Reconciler
	notifier   Notifier
}

func NewComposer(orders OrderStore, cart CartStore, reconciler *Reconciler, notifier Notifier) *Composer {
	return &Composer{
		orders:     orders,
		cart:       cart,
		reconciler: reconciler,
		notifier:   notifier,
	}
}

// CreateOrder validates and persists an order submission.
func (c *Composer) CreateOrder(ctx context.Context, sub Submission) (*models.Order, error) {
	draft, err := NormalizeOrder(sub)
	if err != nil {
		return nil, err
	}

	base := &models.Order{
		WebUserID:    draft.WebUserID,
		FlyerIs:      draft.FlyerIs,
		EventDetails: draft.Details,
		AssetBundle:  emptyBundle(),
		Status:       models.OrderStatusPending,
	}
	id, err := c.orders.InsertOrder(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	assets := c.reconciler.Reconcile(ctx, draft, sub, id)
	if err := c.orders.UpdateOrderAssets(ctx, id, assets); err != nil {
		return nil, fmt.Errorf("failed to store order assets: %w", err)
	}

	metrics.OrdersCreated.Inc()
	if c.notifier != nil {
		c.notifier.Emit(ctx,
			"New Order Received",
			fmt.Sprintf("Order #%d created by %s", id, draft.Buyer()),
			models.SeveritySuccess,
		)
	}

	order, err := c.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload order: %w", err)
	}
	return order, nil
}

// CartResult reports the outcome of a cart add.
type CartResult struct {
	ID        int64
	Duplicate bool
	Item      *models.CartItem
}

// AddToCart validates a cart submission and persists it unless the buyer
// already has the same flyer active in their cart, in which case the
// existing id is returned with Duplicate set.
func (c *Composer) AddToCart(ctx context.Context, sub Submission) (*CartResult, error) {
	draft, err := NormalizeCart(sub)
	if err != nil {
		return nil, err
	}
	userID, flyerID := *draft.UserID, *draft.FlyerIs

	if existing, ok, err := c.cart.FindActiveCartItem(ctx, userID, flyerID); err != nil {
		return nil, fmt.Errorf("failed to check cart: %w", err)
	} else if ok {
		metrics.CartAdds.WithLabelValues("duplicate").Inc()
		return &CartResult{ID: existing, Duplicate: true}, nil
	}

	base := &models.CartItem{
		UserID:       userID,
		FlyerIs:      flyerID,
		EventDetails: draft.Details,
		AssetBundle:  emptyBundle(),
		Status:       models.CartStatusActive,
	}
	id, err := c.cart.InsertCartItem(ctx, base)
	if err != nil {
		// A concurrent add won the unique active-row index.
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			if existing, ok, ferr := c.cart.FindActiveCartItem(ctx, userID, flyerID); ferr == nil && ok {
				metrics.CartAdds.WithLabelValues("duplicate").Inc()
				return &CartResult{ID: existing, Duplicate: true}, nil
			}
		}
		return nil, fmt.Errorf("failed to insert cart item: %w", err)
	}

	assets := c.reconciler.Reconcile(ctx, draft, sub, id)
	if err := c.cart.UpdateCartAssets(ctx, id, assets); err != nil {
		return nil, fmt.Errorf("failed to store cart assets: %w", err)
	}

	item, err := c.cart.GetCartItem(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload cart item: %w", err)
	}

	metrics.CartAdds.WithLabelValues("created").Inc()
	return &CartResult{ID: id, Item: item}, nil
}

func emptyBundle() models.AssetBundle {
	return models.AssetBundle{DJs: []models.DJ{}, Sponsors: []models.Sponsor{}}
}
