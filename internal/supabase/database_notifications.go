package supabase

import (
	"context"
	"fmt"

	"flyerhub-backend/internal/models"
)

func (d *DatabaseClient) InsertNotification(ctx context.Context, title, message, severity string) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO admin_notifications (title, message, type) VALUES ($1, $2, $3)`,
		title, message, severity,
	)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

// ListNotifications returns the newest notifications and the total unread count.
func (d *DatabaseClient) ListNotifications(ctx context.Context, limit int) ([]models.Notification, int, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, title, message, type, is_read, created_at
		FROM admin_notifications
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.Title, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var unread int
	if err := d.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM admin_notifications WHERE is_read = FALSE`,
	).Scan(&unread); err != nil {
		return nil, 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return notifications, unread, nil
}

func (d *DatabaseClient) MarkNotificationRead(ctx context.Context, id int64) error {
	res, err := d.db.ExecContext(ctx, `UPDATE admin_notifications SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return requireAffected(res, "notification", id)
}

func (d *DatabaseClient) MarkAllNotificationsRead(ctx context.Context) (int64, error) {
	res, err := d.db.ExecContext(ctx, `UPDATE admin_notifications SET is_read = TRUE WHERE is_read = FALSE`)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return res.RowsAffected()
}
