package supabase

import (
	"context"
	"fmt"

	"flyerhub-backend/internal/models"
)

const bannerColumns = `id, title, description, image_url, button_text, button_enabled, link_type, link_value, display_order, status, created_at, updated_at`

func scanBanner(row rowScanner) (*models.Banner, error) {
	var b models.Banner
	if err := row.Scan(&b.ID, &b.Title, &b.Description, &b.ImageURL, &b.ButtonText, &b.ButtonEnabled,
		&b.LinkType, &b.LinkValue, &b.DisplayOrder, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

// BannerFilter narrows ListBanners. A nil Status returns every banner.
type BannerFilter struct {
	Status *bool
}

func (d *DatabaseClient) ListBanners(ctx context.Context, filter BannerFilter) ([]models.Banner, error) {
	query := "SELECT " + bannerColumns + " FROM banners"
	var args []interface{}
	if filter.Status != nil {
		query += " WHERE status = $1"
		args = append(args, *filter.Status)
	}
	query += " ORDER BY display_order ASC, created_at DESC"

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list banners: %w", err)
	}
	defer rows.Close()

	banners := []models.Banner{}
	for rows.Next() {
		b, err := scanBanner(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan banner: %w", err)
		}
		banners = append(banners, *b)
	}
	return banners, rows.Err()
}

func (d *DatabaseClient) GetBanner(ctx context.Context, id int64) (*models.Banner, error) {
	b, err := scanBanner(d.db.QueryRowContext(ctx, "SELECT "+bannerColumns+" FROM banners WHERE id = $1", id))
	if err != nil {
		return nil, notFound(err, "banner", id)
	}
	return b, nil
}

func (d *DatabaseClient) CreateBanner(ctx context.Context, b *models.Banner) (*models.Banner, error) {
	row := d.db.QueryRowContext(ctx, `
		INSERT INTO banners (title, description, image_url, button_text, button_enabled, link_type, link_value, display_order, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+bannerColumns,
		b.Title, b.Description, b.ImageURL, b.ButtonText, b.ButtonEnabled, b.LinkType, b.LinkValue, b.DisplayOrder, b.Status,
	)
	created, err := scanBanner(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create banner: %w", err)
	}
	return created, nil
}

func (d *DatabaseClient) UpdateBanner(ctx context.Context, id int64, patch models.BannerPatch) (*models.Banner, error) {
	set := newSetBuilder()
	set.add("title", patch.Title)
	set.add("description", patch.Description)
	set.add("image_url", patch.ImageURL)
	set.add("button_text", patch.ButtonText)
	set.add("button_enabled", patch.ButtonEnabled)
	set.add("link_type", patch.LinkType)
	set.add("link_value", patch.LinkValue)
	set.add("display_order", patch.DisplayOrder)
	set.add("status", patch.Status)
	if set.empty() {
		return d.GetBanner(ctx, id)
	}
	set.raw("updated_at = NOW()")

	query := fmt.Sprintf("UPDATE banners SET %s WHERE id = $%d RETURNING %s", set.clause(), set.next(), bannerColumns)
	b, err := scanBanner(d.db.QueryRowContext(ctx, query, append(set.args, id)...))
	if err != nil {
		return nil, notFound(err, "banner", id)
	}
	return b, nil
}

func (d *DatabaseClient) DeleteBanner(ctx context.Context, id int64) (*models.Banner, error) {
	b, err := scanBanner(d.db.QueryRowContext(ctx, "DELETE FROM banners WHERE id = $1 RETURNING "+bannerColumns, id))
	if err != nil {
		return nil, notFound(err, "banner", id)
	}
	return b, nil
}

// ReorderBanners sets display_order for each listed banner in one
// transaction; an unknown id rolls the whole batch back.
func (d *DatabaseClient) ReorderBanners(ctx context.Context, order []models.BannerOrder) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, o := range order {
		res, err := tx.ExecContext(ctx,
			`UPDATE banners SET display_order = $1, updated_at = NOW() WHERE id = $2`,
			o.DisplayOrder, o.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to reorder banner %d: %w", o.ID, err)
		}
		if err := requireAffected(res, "banner", o.ID); err != nil {
			return err
		}
	}
	return tx.Commit()
}
