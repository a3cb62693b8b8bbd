package supabase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"flyerhub-backend/internal/models"
	"flyerhub-backend/internal/services"
)

const orderFileColumns = `id, order_id, user_id, file_url, file_type, original_name, created_at`

func scanOrderFile(row rowScanner) (*models.OrderFile, error) {
	var f models.OrderFile
	if err := row.Scan(&f.ID, &f.OrderID, &f.UserID, &f.FileURL, &f.FileType, &f.OriginalName, &f.CreatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

func (d *DatabaseClient) CreateOrderFile(ctx context.Context, f *models.OrderFile) (*models.OrderFile, error) {
	created, err := scanOrderFile(d.db.QueryRowContext(ctx, `
		INSERT INTO order_files (order_id, user_id, file_url, file_type, original_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+orderFileColumns,
		f.OrderID, f.UserID, f.FileURL, f.FileType, f.OriginalName))
	if err != nil {
		return nil, fmt.Errorf("failed to create order file: %w", err)
	}
	return created, nil
}

func (d *DatabaseClient) listOrderFiles(ctx context.Context, where string, arg int64) ([]models.OrderFile, error) {
	rows, err := d.db.QueryContext(ctx,
		"SELECT "+orderFileColumns+" FROM order_files WHERE "+where+" = $1 ORDER BY created_at DESC", arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list order files: %w", err)
	}
	defer rows.Close()

	files := []models.OrderFile{}
	for rows.Next() {
		f, err := scanOrderFile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order file: %w", err)
		}
		files = append(files, *f)
	}
	return files, rows.Err()
}

func (d *DatabaseClient) ListOrderFilesByOrder(ctx context.Context, orderID int64) ([]models.OrderFile, error) {
	return d.listOrderFiles(ctx, "order_id", orderID)
}

func (d *DatabaseClient) ListOrderFilesByUser(ctx context.Context, userID int64) ([]models.OrderFile, error) {
	return d.listOrderFiles(ctx, "user_id", userID)
}

func (d *DatabaseClient) DeleteOrderFile(ctx context.Context, id int64) (*models.OrderFile, error) {
	f, err := scanOrderFile(d.db.QueryRowContext(ctx, "DELETE FROM order_files WHERE id = $1 RETURNING "+orderFileColumns, id))
	if err != nil {
		return nil, notFound(err, "order file", id)
	}
	return f, nil
}

const userMediaColumns = `id, web_user_id, original_name, file_url, file_type, is_logo, is_image, created_at, updated_at`

func scanUserMedia(row rowScanner) (*models.UserMedia, error) {
	var m models.UserMedia
	if err := row.Scan(&m.ID, &m.WebUserID, &m.OriginalName, &m.FileURL, &m.FileType,
		&m.IsLogo, &m.IsImage, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func mediaNotFound(err error, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return &services.NotFoundError{Resource: "media", ID: id, Message: "Media not found or not owned by user"}
	}
	return fmt.Errorf("failed to access media: %w", err)
}

func (d *DatabaseClient) CreateUserMedia(ctx context.Context, m *models.UserMedia) (*models.UserMedia, error) {
	created, err := scanUserMedia(d.db.QueryRowContext(ctx, `
		INSERT INTO user_media (web_user_id, original_name, file_url, file_type, is_logo, is_image)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userMediaColumns,
		m.WebUserID, m.OriginalName, m.FileURL, m.FileType, m.IsLogo, m.IsImage))
	if err != nil {
		return nil, fmt.Errorf("failed to create media: %w", err)
	}
	return created, nil
}

func (d *DatabaseClient) ListUserMedia(ctx context.Context, webUserID int64) ([]models.UserMedia, error) {
	rows, err := d.db.QueryContext(ctx,
		"SELECT "+userMediaColumns+" FROM user_media WHERE web_user_id = $1 ORDER BY created_at DESC", webUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list media: %w", err)
	}
	defer rows.Close()

	media := []models.UserMedia{}
	for rows.Next() {
		m, err := scanUserMedia(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan media: %w", err)
		}
		media = append(media, *m)
	}
	return media, rows.Err()
}

// GetUserMedia only returns media owned by webUserID.
func (d *DatabaseClient) GetUserMedia(ctx context.Context, id, webUserID int64) (*models.UserMedia, error) {
	m, err := scanUserMedia(d.db.QueryRowContext(ctx,
		"SELECT "+userMediaColumns+" FROM user_media WHERE id = $1 AND web_user_id = $2", id, webUserID))
	if err != nil {
		return nil, mediaNotFound(err, id)
	}
	return m, nil
}

// UpdateUserMedia sets one column on owned media and returns the new row.
func (d *DatabaseClient) UpdateUserMedia(ctx context.Context, id, webUserID int64, patch models.UserMediaPatch) (*models.UserMedia, error) {
	set := newSetBuilder()
	set.add("original_name", patch.OriginalName)
	set.add("file_url", patch.FileURL)
	set.add("file_type", patch.FileType)
	set.add("is_logo", patch.IsLogo)
	set.add("is_image", patch.IsImage)
	if set.empty() {
		return d.GetUserMedia(ctx, id, webUserID)
	}
	set.raw("updated_at = NOW()")

	next := set.next()
	query := fmt.Sprintf("UPDATE user_media SET %s WHERE id = $%d AND web_user_id = $%d RETURNING %s",
		set.clause(), next, next+1, userMediaColumns)
	m, err := scanUserMedia(d.db.QueryRowContext(ctx, query, append(set.args, id, webUserID)...))
	if err != nil {
		return nil, mediaNotFound(err, id)
	}
	return m, nil
}

func (d *DatabaseClient) DeleteUserMedia(ctx context.Context, id, webUserID int64) (*models.UserMedia, error) {
	m, err := scanUserMedia(d.db.QueryRowContext(ctx,
		"DELETE FROM user_media WHERE id = $1 AND web_user_id = $2 RETURNING "+userMediaColumns, id, webUserID))
	if err != nil {
		return nil, mediaNotFound(err, id)
	}
	return m, nil
}
