package supabase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"flyerhub-backend/internal/models"
	"flyerhub-backend/internal/services"
)

// DatabaseClient is the relational store. Every statement commits on its
// own; callers that need several writes to agree use explicit transactions.
type DatabaseClient struct {
	db *sql.DB
}

// PoolConfig bounds the shared connection pool. Requests beyond MaxOpen
// wait for a free connection.
type PoolConfig struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
}

func DefaultPoolConfig() PoolConfig {
	return PoolConfig{MaxOpen: 10, MaxIdle: 5, MaxLifetime: 30 * time.Minute}
}

func NewDatabaseClient(ctx context.Context, connectionString string, pool PoolConfig) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(pool.MaxOpen)
	db.SetMaxIdleConns(pool.MaxIdle)
	db.SetConnMaxLifetime(pool.MaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

// DB exposes the pool for the migrator.
func (d *DatabaseClient) DB() *sql.DB { return d.db }

func (d *DatabaseClient) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// notFound turns sql.ErrNoRows into a NotFoundError and wraps anything else.
func notFound(err error, resource string, id interface{}) error {
	if errors.Is(err, sql.ErrNoRows) {
		return &services.NotFoundError{Resource: resource, ID: id}
	}
	return fmt.Errorf("failed to get %s: %w", resource, err)
}

// requireAffected reports a NotFoundError when an update or delete matched no row.
func requireAffected(res sql.Result, resource string, id interface{}) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &services.NotFoundError{Resource: resource, ID: id}
	}
	return nil
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// columns renders a column list, optionally qualified with a table alias.
func columns(alias string, groups ...[]string) string {
	var out []string
	for _, g := range groups {
		for _, c := range g {
			if alias != "" {
				c = alias + "." + c
			}
			out = append(out, c)
		}
	}
	return strings.Join(out, ", ")
}

func placeholders(from, n int) string {
	ph := make([]string, n)
	for i := range ph {
		ph[i] = fmt.Sprintf("$%d", from+i)
	}
	return strings.Join(ph, ", ")
}

var detailColumns = []string{
	"presenting", "event_title", "event_date", "flyer_info", "address_phone",
	"story_size_version", "custom_flyer", "animated_flyer", "instagram_post_size",
	"delivery_time", "custom_notes", "email", "total_price",
}

var assetColumns = []string{"venue_logo", "djs", "host", "sponsors"}

func detailArgs(d models.EventDetails) []interface{} {
	return []interface{}{
		d.Presenting, d.EventTitle, d.EventDate, d.FlyerInfo, d.AddressPhone,
		d.StorySizeVersion, d.CustomFlyer, d.AnimatedFlyer, d.InstagramPostSize,
		d.DeliveryTime, d.CustomNotes, d.Email, d.TotalPrice,
	}
}

func detailTargets(d *models.EventDetails) []interface{} {
	return []interface{}{
		&d.Presenting, &d.EventTitle, &d.EventDate, &d.FlyerInfo, &d.AddressPhone,
		&d.StorySizeVersion, &d.CustomFlyer, &d.AnimatedFlyer, &d.InstagramPostSize,
		&d.DeliveryTime, &d.CustomNotes, &d.Email, &d.TotalPrice,
	}
}

func assetArgs(b models.AssetBundle) ([]interface{}, error) {
	djs, err := models.EncodeDJs(b.DJs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode djs: %w", err)
	}
	host, err := models.EncodeHost(b.Host)
	if err != nil {
		return nil, fmt.Errorf("failed to encode host: %w", err)
	}
	sponsors, err := models.EncodeSponsors(b.Sponsors)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sponsors: %w", err)
	}
	return []interface{}{b.VenueLogo, djs, host, sponsors}, nil
}

// assetRow holds the raw asset columns until they are decoded.
type assetRow struct {
	venueLogo           *string
	djs, host, sponsors string
}

func (a *assetRow) targets() []interface{} {
	return []interface{}{&a.venueLogo, &a.djs, &a.host, &a.sponsors}
}

func (a *assetRow) bundle() models.AssetBundle {
	return models.AssetBundle{
		VenueLogo: a.venueLogo,
		DJs:       models.ParseDJs(a.djs),
		Host:      models.ParseHost(a.host),
		Sponsors:  models.ParseSponsors(a.sponsors),
	}
}

var flyerSummaryColumns = []string{"id", "title", "price", "image_url", "form_type", "categories"}

// flyerRow scans the LEFT JOINed flyer columns.
type flyerRow struct {
	id                            sql.NullInt64
	title, price, image, formType *string
	categories                    sql.NullString
}

func (f *flyerRow) targets() []interface{} {
	return []interface{}{&f.id, &f.title, &f.price, &f.image, &f.formType, &f.categories}
}

func (f *flyerRow) summary() *models.FlyerSummary {
	if !f.id.Valid {
		return nil
	}
	return &models.FlyerSummary{
		ID:         f.id.Int64,
		Title:      f.title,
		Price:      f.price,
		Image:      f.image,
		Type:       f.formType,
		Categories: models.ParseStringList(f.categories.String),
	}
}
