// Package tripdb stores downloaded bike-share trip dumps in SQLite so the
// monthly statistics can be aggregated with plain SQL instead of holding
// every trip in memory.
package tripdb

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Config holds configuration options for the Client
type Config struct {
	// DBPath is the SQLite database file; use ":memory:" in tests.
	DBPath string
}

// Client owns the trips database connection.
type Client struct {
	config Config
	DB     *sql.DB
}

// NewClient opens (or creates) the trips database and ensures the schema.
func NewClient(config Config) (*Client, error) {
	db, err := sql.Open("sqlite", config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	if err := createSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Client{config: config, DB: db}, nil
}

func (c *Client) Close() error {
	return c.DB.Close()
}

func createSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS trips (
			year INTEGER NOT NULL,
			month INTEGER NOT NULL,
			duration_sec INTEGER NOT NULL,
			start_station_id TEXT NOT NULL,
			end_station_id TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_trips_year_month ON trips(year, month);
		CREATE INDEX IF NOT EXISTS idx_trips_start_station ON trips(start_station_id);
	`)
	if err != nil {
		return fmt.Errorf("error creating schema: %w", err)
	}
	return nil
}
