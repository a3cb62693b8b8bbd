package supabase

import (
	"context"
	"fmt"

	"flyerhub-backend/internal/models"
	"flyerhub-backend/internal/services"
)

func (d *DatabaseClient) GetAdminByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var u models.AdminUser
	err := d.db.QueryRowContext(ctx,
		`SELECT id, email, password, role, created_at FROM users WHERE email = $1`, email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, notFound(err, "user", email)
	}
	return &u, nil
}

func (d *DatabaseClient) CreateAdmin(ctx context.Context, email, passwordHash, role string) (*models.AdminUser, error) {
	u := models.AdminUser{Email: email, PasswordHash: passwordHash, Role: role}
	err := d.db.QueryRowContext(ctx,
		`INSERT INTO users (email, password, role) VALUES ($1, $2, $3) RETURNING id, created_at`,
		email, passwordHash, role,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &services.ConflictError{Message: "User already exists"}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &u, nil
}

const webUserColumns = `id, fullname, email, user_id, password, created_at`

func scanWebUser(row rowScanner) (*models.WebUser, error) {
	var u models.WebUser
	if err := row.Scan(&u.ID, &u.Fullname, &u.Email, &u.UserID, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpsertWebUser creates the social user or refreshes name and email when
// the provider id is already known.
func (d *DatabaseClient) UpsertWebUser(ctx context.Context, fullname, email, userID string) (*models.WebUser, bool, error) {
	var created bool
	var u models.WebUser
	err := d.db.QueryRowContext(ctx, `
		INSERT INTO web_users (fullname, email, user_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET fullname = EXCLUDED.fullname, email = EXCLUDED.email, updated_at = NOW()
		RETURNING `+webUserColumns+`, (xmax = 0)
	`, fullname, email, userID).Scan(&u.ID, &u.Fullname, &u.Email, &u.UserID, &u.PasswordHash, &u.CreatedAt, &created)
	if err != nil {
		return nil, false, fmt.Errorf("failed to upsert web user: %w", err)
	}
	return &u, created, nil
}

func (d *DatabaseClient) GetWebUserBySocialID(ctx context.Context, userID string) (*models.WebUser, error) {
	u, err := scanWebUser(d.db.QueryRowContext(ctx, "SELECT "+webUserColumns+" FROM web_users WHERE user_id = $1", userID))
	if err != nil {
		return nil, notFound(err, "user", userID)
	}
	return u, nil
}

func (d *DatabaseClient) GetWebUser(ctx context.Context, id int64) (*models.WebUser, error) {
	u, err := scanWebUser(d.db.QueryRowContext(ctx, "SELECT "+webUserColumns+" FROM web_users WHERE id = $1", id))
	if err != nil {
		return nil, notFound(err, "user", id)
	}
	return u, nil
}

// UpdateWebUserProfile returns a ConflictError when another user owns the email.
func (d *DatabaseClient) UpdateWebUserProfile(ctx context.Context, id int64, fullname, email string) (*models.WebUser, error) {
	var taken bool
	if err := d.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM web_users WHERE email = $1 AND id <> $2)`, email, id,
	).Scan(&taken); err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, &services.ConflictError{Message: "Email is already in use"}
	}

	u, err := scanWebUser(d.db.QueryRowContext(ctx, `
		UPDATE web_users SET fullname = $1, email = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING `+webUserColumns, fullname, email, id))
	if err != nil {
		return nil, notFound(err, "user", id)
	}
	return u, nil
}

func (d *DatabaseClient) UpdateWebUserPassword(ctx context.Context, id int64, passwordHash string) error {
	res, err := d.db.ExecContext(ctx,
		`UPDATE web_users SET password = $1, updated_at = NOW() WHERE id = $2`, passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return requireAffected(res, "user", id)
}
