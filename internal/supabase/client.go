package supabase

import (
	"fmt"
	"strings"

	"github.com/supabase-community/supabase-go"

	"flyerhub-backend/internal/config"
)

// Client holds the Supabase project client. Only its storage API is used;
// relational access goes through DatabaseClient.
type Client struct {
	Supabase *supabase.Client
	Config   *config.Config
}

func NewClient(cfg *config.Config) (*Client, error) {
	client, err := supabase.NewClient(strings.TrimRight(cfg.SupabaseURL, "/"), cfg.SupabaseServiceKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	return &Client{
		Supabase: client,
		Config:   cfg,
	}, nil
}

// Storage returns a storage backend for the configured bucket.
func (c *Client) Storage() *StorageClient {
	return NewStorageClient(c.Supabase.Storage, c.Config.SupabaseURL, c.Config.SupabaseStorageBucket)
}
