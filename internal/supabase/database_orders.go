package supabase

import (
	"context"
	"fmt"

	"flyerhub-backend/internal/models"
	"flyerhub-backend/internal/services"
)

var _ services.OrderStore = (*DatabaseClient)(nil)

var (
	orderSelect = "SELECT " + columns("o", []string{"id", "web_user_id", "flyer_is"}, detailColumns,
		[]string{"status"}, assetColumns, []string{"created_at"})
	orderWithFlyerSelect = orderSelect + ", " + columns("f", flyerSummaryColumns) + `
		FROM flyer_orders o
		LEFT JOIN flyers f ON f.id = o.flyer_is`
)

func scanOrder(row rowScanner, withFlyer bool) (*models.Order, error) {
	var (
		o      models.Order
		assets assetRow
		flyer  flyerRow
	)
	targets := []interface{}{&o.ID, &o.WebUserID, &o.FlyerIs}
	targets = append(targets, detailTargets(&o.EventDetails)...)
	targets = append(targets, &o.Status)
	targets = append(targets, assets.targets()...)
	targets = append(targets, &o.CreatedAt)
	if withFlyer {
		targets = append(targets, flyer.targets()...)
	}
	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	o.AssetBundle = assets.bundle()
	o.Flyer = flyer.summary()
	return &o, nil
}

// InsertOrder writes the scalar columns and the given asset placeholders
// and returns the new id.
func (d *DatabaseClient) InsertOrder(ctx context.Context, order *models.Order) (int64, error) {
	assets, err := assetArgs(order.AssetBundle)
	if err != nil {
		return 0, err
	}
	args := []interface{}{order.WebUserID, order.FlyerIs}
	args = append(args, detailArgs(order.EventDetails)...)
	args = append(args, order.Status)
	args = append(args, assets...)

	query := fmt.Sprintf(`INSERT INTO flyer_orders (%s) VALUES (%s) RETURNING id`,
		columns("", []string{"web_user_id", "flyer_is"}, detailColumns, []string{"status"}, assetColumns),
		placeholders(1, len(args)),
	)

	var id int64
	if err := d.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to create order: %w", err)
	}
	return id, nil
}

func (d *DatabaseClient) UpdateOrderAssets(ctx context.Context, id int64, bundle models.AssetBundle) error {
	assets, err := assetArgs(bundle)
	if err != nil {
		return err
	}
	res, err := d.db.ExecContext(ctx, `
		UPDATE flyer_orders
		SET venue_logo = $1, djs = $2, host = $3, sponsors = $4, updated_at = NOW()
		WHERE id = $5
	`, append(assets, id)...)
	if err != nil {
		return fmt.Errorf("failed to update order assets: %w", err)
	}
	return requireAffected(res, "order", id)
}

func (d *DatabaseClient) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	row := d.db.QueryRowContext(ctx, orderSelect+" FROM flyer_orders o WHERE o.id = $1", id)
	order, err := scanOrder(row, false)
	if err != nil {
		return nil, notFound(err, "order", id)
	}
	return order, nil
}

// GetOrderWithFlyer returns the order joined with its catalog flyer.
func (d *DatabaseClient) GetOrderWithFlyer(ctx context.Context, id int64) (*models.Order, error) {
	row := d.db.QueryRowContext(ctx, orderWithFlyerSelect+" WHERE o.id = $1", id)
	order, err := scanOrder(row, true)
	if err != nil {
		return nil, notFound(err, "order", id)
	}
	return order, nil
}

func (d *DatabaseClient) ListOrders(ctx context.Context) ([]models.Order, error) {
	return d.queryOrders(ctx, orderWithFlyerSelect+" ORDER BY o.created_at DESC")
}

func (d *DatabaseClient) ListOrdersByUser(ctx context.Context, webUserID int64, limit int) ([]models.Order, error) {
	return d.queryOrders(ctx,
		orderWithFlyerSelect+" WHERE o.web_user_id = $1 ORDER BY o.created_at DESC LIMIT $2",
		webUserID, limit,
	)
}

func (d *DatabaseClient) queryOrders(ctx context.Context, query string, args ...interface{}) ([]models.Order, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		order, err := scanOrder(rows, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

// UpdateOrderStatus sets the status and returns the previous one.
func (d *DatabaseClient) UpdateOrderStatus(ctx context.Context, id int64, status string) (string, error) {
	var old string
	err := d.db.QueryRowContext(ctx, `
		UPDATE flyer_orders o
		SET status = $1, updated_at = NOW()
		FROM (SELECT id, status FROM flyer_orders WHERE id = $2 FOR UPDATE) prev
		WHERE o.id = prev.id
		RETURNING prev.status
	`, status, id).Scan(&old)
	if err != nil {
		return "", notFound(err, "order", id)
	}
	return old, nil
}
