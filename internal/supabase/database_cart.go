package supabase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"flyerhub-backend/internal/models"
	"flyerhub-backend/internal/services"
)

var _ services.CartStore = (*DatabaseClient)(nil)

var (
	cartSelect = "SELECT " + columns("c", []string{"id", "user_id", "flyer_is"}, detailColumns,
		[]string{"status"}, assetColumns, []string{"added_time"})
	cartWithFlyerSelect = cartSelect + ", " + columns("f", flyerSummaryColumns) + `
		FROM cart c
		LEFT JOIN flyers f ON f.id = c.flyer_is`
)

func scanCartItem(row rowScanner, withFlyer bool) (*models.CartItem, error) {
	var (
		item   models.CartItem
		assets assetRow
		flyer  flyerRow
	)
	targets := []interface{}{&item.ID, &item.UserID, &item.FlyerIs}
	targets = append(targets, detailTargets(&item.EventDetails)...)
	targets = append(targets, &item.Status)
	targets = append(targets, assets.targets()...)
	targets = append(targets, &item.AddedTime)
	if withFlyer {
		targets = append(targets, flyer.targets()...)
	}
	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	item.AssetBundle = assets.bundle()
	item.Flyer = flyer.summary()
	return &item, nil
}

// FindActiveCartItem looks up the active row for a buyer and flyer.
func (d *DatabaseClient) FindActiveCartItem(ctx context.Context, userID, flyerID int64) (int64, bool, error) {
	var id int64
	err := d.db.QueryRowContext(ctx, `
		SELECT id FROM cart
		WHERE user_id = $1 AND flyer_is = $2 AND status = $3
		LIMIT 1
	`, userID, flyerID, models.CartStatusActive).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to find cart item: %w", err)
	}
	return id, true, nil
}

// InsertCartItem returns a ConflictError when an active row for the same
// buyer and flyer already exists.
func (d *DatabaseClient) InsertCartItem(ctx context.Context, item *models.CartItem) (int64, error) {
	assets, err := assetArgs(item.AssetBundle)
	if err != nil {
		return 0, err
	}
	args := []interface{}{item.UserID, item.FlyerIs}
	args = append(args, detailArgs(item.EventDetails)...)
	args = append(args, item.Status)
	args = append(args, assets...)

	query := fmt.Sprintf(`INSERT INTO cart (%s) VALUES (%s) RETURNING id`,
		columns("", []string{"user_id", "flyer_is"}, detailColumns, []string{"status"}, assetColumns),
		placeholders(1, len(args)),
	)

	var id int64
	if err := d.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return 0, &services.ConflictError{Message: "flyer already in cart"}
		}
		return 0, fmt.Errorf("failed to create cart item: %w", err)
	}
	return id, nil
}

func (d *DatabaseClient) UpdateCartAssets(ctx context.Context, id int64, bundle models.AssetBundle) error {
	assets, err := assetArgs(bundle)
	if err != nil {
		return err
	}
	res, err := d.db.ExecContext(ctx, `
		UPDATE cart
		SET venue_logo = $1, djs = $2, host = $3, sponsors = $4
		WHERE id = $5
	`, append(assets, id)...)
	if err != nil {
		return fmt.Errorf("failed to update cart assets: %w", err)
	}
	return requireAffected(res, "cart item", id)
}

func (d *DatabaseClient) GetCartItem(ctx context.Context, id int64) (*models.CartItem, error) {
	row := d.db.QueryRowContext(ctx, cartSelect+" FROM cart c WHERE c.id = $1", id)
	item, err := scanCartItem(row, false)
	if err != nil {
		return nil, notFound(err, "cart item", id)
	}
	return item, nil
}

// ListActiveCart returns a buyer's active items, newest first, with flyers.
func (d *DatabaseClient) ListActiveCart(ctx context.Context, userID int64) ([]models.CartItem, error) {
	rows, err := d.db.QueryContext(ctx,
		cartWithFlyerSelect+" WHERE c.user_id = $1 AND c.status = $2 ORDER BY c.added_time DESC",
		userID, models.CartStatusActive,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart: %w", err)
	}
	defer rows.Close()

	items := []models.CartItem{}
	for rows.Next() {
		item, err := scanCartItem(rows, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// RemoveCartItem soft-deletes an active item.
func (d *DatabaseClient) RemoveCartItem(ctx context.Context, id int64) error {
	res, err := d.db.ExecContext(ctx,
		`UPDATE cart SET status = $1 WHERE id = $2 AND status = $3`,
		models.CartStatusRemoved, id, models.CartStatusActive,
	)
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	return requireAffected(res, "cart item", id)
}

// ClearCart marks every active item of a buyer as ordered and returns how
// many rows moved.
func (d *DatabaseClient) ClearCart(ctx context.Context, userID int64) (int64, error) {
	res, err := d.db.ExecContext(ctx,
		`UPDATE cart SET status = $1 WHERE user_id = $2 AND status = $3`,
		models.CartStatusOrdered, userID, models.CartStatusActive,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to clear cart: %w", err)
	}
	return res.RowsAffected()
}
