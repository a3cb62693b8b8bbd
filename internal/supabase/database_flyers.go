package supabase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"flyerhub-backend/internal/models"
)

const flyerSelect = `SELECT id, title, price, form_type, categories, image_url, file_name_original, recently_added, created_at FROM flyers`

func scanFlyer(row rowScanner) (*models.Flyer, error) {
	var (
		f          models.Flyer
		categories string
	)
	if err := row.Scan(&f.ID, &f.Title, &f.Price, &f.FormType, &categories,
		&f.ImageURL, &f.FileNameOriginal, &f.RecentlyAdded, &f.CreatedAt); err != nil {
		return nil, err
	}
	f.Categories = models.ParseStringList(categories)
	return &f, nil
}

func (d *DatabaseClient) queryFlyers(ctx context.Context, query string, args ...interface{}) ([]models.Flyer, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list flyers: %w", err)
	}
	defer rows.Close()

	flyers := []models.Flyer{}
	for rows.Next() {
		f, err := scanFlyer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan flyer: %w", err)
		}
		flyers = append(flyers, *f)
	}
	return flyers, rows.Err()
}

func (d *DatabaseClient) ListFlyers(ctx context.Context) ([]models.Flyer, error) {
	return d.queryFlyers(ctx, flyerSelect+" ORDER BY created_at DESC")
}

func (d *DatabaseClient) GetFlyer(ctx context.Context, id int64) (*models.Flyer, error) {
	f, err := scanFlyer(d.db.QueryRowContext(ctx, flyerSelect+" WHERE id = $1", id))
	if err != nil {
		return nil, notFound(err, "flyer", id)
	}
	return f, nil
}

func (d *DatabaseClient) CreateFlyer(ctx context.Context, f *models.Flyer) (*models.Flyer, error) {
	row := d.db.QueryRowContext(ctx, `
		INSERT INTO flyers (title, price, form_type, categories, image_url, file_name_original, recently_added)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, title, price, form_type, categories, image_url, file_name_original, recently_added, created_at
	`, f.Title, f.Price, f.FormType, models.EncodeStringList(f.Categories), f.ImageURL, f.FileNameOriginal, f.RecentlyAdded)
	created, err := scanFlyer(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create flyer: %w", err)
	}
	return created, nil
}

// UpdateFlyer applies the non-nil fields of patch.
func (d *DatabaseClient) UpdateFlyer(ctx context.Context, id int64, patch models.FlyerPatch) (*models.Flyer, error) {
	set := newSetBuilder()
	set.add("title", patch.Title)
	set.add("price", patch.Price)
	set.add("form_type", patch.FormType)
	if patch.Categories != nil {
		set.add("categories", models.EncodeStringList(patch.Categories))
	}
	set.add("recently_added", patch.RecentlyAdded)
	set.add("image_url", patch.ImageURL)
	set.add("file_name_original", patch.FileNameOriginal)
	if set.empty() {
		return d.GetFlyer(ctx, id)
	}

	query := fmt.Sprintf(`UPDATE flyers SET %s WHERE id = $%d
		RETURNING id, title, price, form_type, categories, image_url, file_name_original, recently_added, created_at`,
		set.clause(), set.next())
	f, err := scanFlyer(d.db.QueryRowContext(ctx, query, append(set.args, id)...))
	if err != nil {
		return nil, notFound(err, "flyer", id)
	}
	return f, nil
}

// DeleteFlyer removes the row and returns it so the caller can drop its image.
func (d *DatabaseClient) DeleteFlyer(ctx context.Context, id int64) (*models.Flyer, error) {
	row := d.db.QueryRowContext(ctx, `DELETE FROM flyers WHERE id = $1
		RETURNING id, title, price, form_type, categories, image_url, file_name_original, recently_added, created_at`, id)
	f, err := scanFlyer(row)
	if err != nil {
		return nil, notFound(err, "flyer", id)
	}
	return f, nil
}

// ListFlyerCategories returns the distinct categories used by any flyer, sorted.
func (d *DatabaseClient) ListFlyerCategories(ctx context.Context) ([]string, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT categories FROM flyers`)
	if err != nil {
		return nil, fmt.Errorf("failed to list flyer categories: %w", err)
	}
	defer rows.Close()

	seen := map[string]struct{}{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan categories: %w", err)
		}
		for _, c := range models.ParseStringList(raw) {
			if c = strings.TrimSpace(c); c != "" {
				seen[c] = struct{}{}
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out, nil
}

// setBuilder assembles the SET clause of a partial update.
type setBuilder struct {
	parts []string
	args  []interface{}
}

func newSetBuilder() *setBuilder { return &setBuilder{} }

func (s *setBuilder) add(column string, value interface{}) {
	switch v := value.(type) {
	case *string:
		if v == nil {
			return
		}
	case *bool:
		if v == nil {
			return
		}
	case *int:
		if v == nil {
			return
		}
	}
	s.args = append(s.args, value)
	s.parts = append(s.parts, fmt.Sprintf("%s = $%d", column, len(s.args)))
}

// raw adds an expression without an argument, e.g. "updated_at = NOW()".
func (s *setBuilder) raw(expr string) {
	s.parts = append(s.parts, expr)
}

func (s *setBuilder) empty() bool { return len(s.args) == 0 }

func (s *setBuilder) clause() string { return strings.Join(s.parts, ", ") }

func (s *setBuilder) next() int { return len(s.args) + 1 }
