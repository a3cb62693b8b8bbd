package supabase

import (
	"context"
	"fmt"

	"flyerhub-backend/internal/models"
	"flyerhub-backend/internal/services"
)

func (d *DatabaseClient) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT id, name, "rank" FROM categories ORDER BY "rank" ASC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Rank); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (d *DatabaseClient) CreateCategory(ctx context.Context, name string, rank int) (*models.Category, error) {
	var c models.Category
	err := d.db.QueryRowContext(ctx,
		`INSERT INTO categories (name, "rank") VALUES ($1, $2) RETURNING id, name, "rank"`,
		name, rank,
	).Scan(&c.ID, &c.Name, &c.Rank)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &services.ConflictError{Message: fmt.Sprintf("category %q already exists", name)}
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &c, nil
}

func (d *DatabaseClient) UpdateCategoryRank(ctx context.Context, id int64, rank int) (*models.Category, error) {
	var c models.Category
	err := d.db.QueryRowContext(ctx,
		`UPDATE categories SET "rank" = $1, updated_at = NOW() WHERE id = $2 RETURNING id, name, "rank"`,
		rank, id,
	).Scan(&c.ID, &c.Name, &c.Rank)
	if err != nil {
		return nil, notFound(err, "category", id)
	}
	return &c, nil
}

func (d *DatabaseClient) DeleteCategory(ctx context.Context, id int64) error {
	res, err := d.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return requireAffected(res, "category", id)
}

// AddFavorite reports false when the flyer was already a favorite.
func (d *DatabaseClient) AddFavorite(ctx context.Context, userID, flyerID int64) (bool, error) {
	res, err := d.db.ExecContext(ctx, `
		INSERT INTO flyer_favorites (user_id, flyer_id) VALUES ($1, $2)
		ON CONFLICT (user_id, flyer_id) DO NOTHING
	`, userID, flyerID)
	if err != nil {
		return false, fmt.Errorf("failed to add favorite: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (d *DatabaseClient) RemoveFavorite(ctx context.Context, userID, flyerID int64) error {
	res, err := d.db.ExecContext(ctx,
		`DELETE FROM flyer_favorites WHERE user_id = $1 AND flyer_id = $2`,
		userID, flyerID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return requireAffected(res, "favorite", flyerID)
}

// ListFavorites returns the user's favorite flyers, most recent first.
func (d *DatabaseClient) ListFavorites(ctx context.Context, userID int64) ([]models.Flyer, error) {
	return d.queryFlyers(ctx, `
		SELECT f.id, f.title, f.price, f.form_type, f.categories, f.image_url, f.file_name_original, f.recently_added, f.created_at
		FROM flyer_favorites fav
		JOIN flyers f ON f.id = fav.flyer_id
		WHERE fav.user_id = $1
		ORDER BY fav.created_at DESC
	`, userID)
}

func (d *DatabaseClient) CreateContactMessage(ctx context.Context, m *models.ContactMessage) (*models.ContactMessage, error) {
	out := *m
	err := d.db.QueryRowContext(ctx, `
		INSERT INTO contact_messages (name, email, subject, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, m.Name, m.Email, m.Subject, m.Message).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create contact message: %w", err)
	}
	return &out, nil
}

func (d *DatabaseClient) ListContactMessages(ctx context.Context, limit int) ([]models.ContactMessage, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, name, email, subject, message, created_at
		FROM contact_messages
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	defer rows.Close()

	messages := []models.ContactMessage{}
	for rows.Next() {
		var m models.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
