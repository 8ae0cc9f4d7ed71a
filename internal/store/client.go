package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrAlreadyDrawn is returned when a raffle entry has already won and a
	// second mark is attempted.
	ErrAlreadyDrawn = errors.New("raffle entry already drawn")
)

// templateNumberLockKey serializes template-number generation across
// processes via pg_advisory_xact_lock.
const templateNumberLockKey = 90442011

type Client struct {
	db *sqlx.DB
}

func New(connectionString string) (*Client, error) {
	db, err := sqlx.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Client{db: db}, nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func (c *Client) Close() error {
	return c.db.Close()
}
