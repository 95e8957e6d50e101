package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Preferences are the viewer settings kept between sessions. Playback state
// such as the mute flag is deliberately not part of it.
type Preferences struct {
	Source     string
	NerdFooter bool
}

type Repository struct {
	db *sql.DB
}

func NewRepository(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Repository) Init(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS views (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  reel_id TEXT NOT NULL,
  viewed_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_views_viewed_at ON views(viewed_at);
CREATE TABLE IF NOT EXISTS preferences (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`
	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// CheckWritable fails early when the database file is read-only.
func (r *Repository) CheckWritable(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO preferences (key, value) VALUES ('_probe', '1')
ON CONFLICT(key) DO UPDATE SET value=excluded.value`)
	if err != nil {
		return fmt.Errorf("write probe: %w", err)
	}
	return nil
}

func (r *Repository) RecordView(ctx context.Context, reelID string, at time.Time) error {
	if reelID == "" {
		return errors.New("record view: reel id is required")
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO views (reel_id, viewed_at) VALUES (?, ?)`,
		reelID, at.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record view %s: %w", reelID, err)
	}
	return nil
}

func (r *Repository) CountViews(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM views`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count views: %w", err)
	}
	return n, nil
}

func (r *Repository) LoadPreferences(ctx context.Context) (Preferences, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM preferences WHERE key IN ('source', 'nerd_footer')`)
	if err != nil {
		return Preferences{}, fmt.Errorf("query preferences: %w", err)
	}
	defer rows.Close()

	var prefs Preferences
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return Preferences{}, fmt.Errorf("scan preference: %w", err)
		}
		switch key {
		case "source":
			prefs.Source = value
		case "nerd_footer":
			prefs.NerdFooter = value == "1"
		}
	}
	if err := rows.Err(); err != nil {
		return Preferences{}, fmt.Errorf("rows iteration: %w", err)
	}
	return prefs, nil
}

func (r *Repository) SavePreferences(ctx context.Context, prefs Preferences) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO preferences (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value
`)
	if err != nil {
		return fmt.Errorf("prepare preferences statement: %w", err)
	}
	defer stmt.Close()

	nerd := "0"
	if prefs.NerdFooter {
		nerd = "1"
	}
	for _, kv := range [][2]string{{"source", prefs.Source}, {"nerd_footer", nerd}} {
		if _, err := stmt.ExecContext(ctx, kv[0], kv[1]); err != nil {
			return fmt.Errorf("save preference %s: %w", kv[0], err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
