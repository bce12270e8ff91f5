package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"notesflow-cli/internal/model"

	_ "modernc.org/sqlite"
)

// Cache persists the last fetched lists so the TUI and web view can paint
// immediately on startup while the first real fetch is in flight. It is a
// read-through convenience only; the server stays the source of truth.
type Cache struct {
	db *sql.DB
}

// OpenCache opens (and migrates) the cache database at path. An empty path
// uses the default under the config dir.
func OpenCache(ctx context.Context, path string) (*Cache, error) {
	if path == "" {
		p, err := CachePath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Pragmas for multi-process local usage.
	// WAL enables one writer + many readers; busy_timeout helps avoid "database is locked" flakiness.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS snapshots (
		user_id INTEGER NOT NULL,
		collection TEXT NOT NULL,
		payload_json TEXT NOT NULL,
		fetched_at_unixms INTEGER NOT NULL,
		PRIMARY KEY(user_id, collection)
	);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Cache{db: db}, nil
}

func (c *Cache) Close() error { return c.db.Close() }

const (
	collectionNotes = "notes"
	collectionTasks = "tasks"
	collectionStats = "stats"
)

func (c *Cache) put(ctx context.Context, userID int64, collection string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = c.db.ExecContext(ctx, `
		INSERT INTO snapshots(user_id, collection, payload_json, fetched_at_unixms)
		VALUES(?, ?, ?, ?)
		ON CONFLICT(user_id, collection) DO UPDATE SET
			payload_json = excluded.payload_json,
			fetched_at_unixms = excluded.fetched_at_unixms
	`, userID, collection, string(b), time.Now().UTC().UnixMilli())
	return err
}

func (c *Cache) get(ctx context.Context, userID int64, collection string, out any) (time.Time, bool, error) {
	var payload string
	var tsMs int64
	err := c.db.QueryRowContext(ctx,
		`SELECT payload_json, fetched_at_unixms FROM snapshots WHERE user_id = ? AND collection = ?`,
		userID, collection).Scan(&payload, &tsMs)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	if err := json.Unmarshal([]byte(payload), out); err != nil {
		// A corrupt snapshot is not worth failing startup over.
		return time.Time{}, false, nil
	}
	return time.UnixMilli(tsMs).UTC(), true, nil
}

func (c *Cache) PutNotes(ctx context.Context, userID int64, notes []model.Note) error {
	return c.put(ctx, userID, collectionNotes, notes)
}

func (c *Cache) Notes(ctx context.Context, userID int64) ([]model.Note, time.Time, bool, error) {
	var notes []model.Note
	at, ok, err := c.get(ctx, userID, collectionNotes, &notes)
	return notes, at, ok, err
}

func (c *Cache) PutTasks(ctx context.Context, userID int64, tasks []model.Task) error {
	return c.put(ctx, userID, collectionTasks, tasks)
}

func (c *Cache) Tasks(ctx context.Context, userID int64) ([]model.Task, time.Time, bool, error) {
	var tasks []model.Task
	at, ok, err := c.get(ctx, userID, collectionTasks, &tasks)
	return tasks, at, ok, err
}

func (c *Cache) PutStats(ctx context.Context, userID int64, stats model.TaskStats) error {
	return c.put(ctx, userID, collectionStats, stats)
}

func (c *Cache) Stats(ctx context.Context, userID int64) (model.TaskStats, time.Time, bool, error) {
	var stats model.TaskStats
	at, ok, err := c.get(ctx, userID, collectionStats, &stats)
	return stats, at, ok, err
}

// Clear drops every snapshot for a user (logout).
func (c *Cache) Clear(ctx context.Context, userID int64) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM snapshots WHERE user_id = ?`, userID)
	return err
}
