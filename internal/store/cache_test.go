package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"notesflow-cli/internal/model"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := OpenCache(context.Background(), filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCacheNotesRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := openTestCache(t)

	notes := []model.Note{
		{ID: 1, Title: "Groceries", BackgroundColor: "#fef3c7", IsPinned: true, UpdatedAt: time.Now().UTC().Truncate(time.Second)},
		{ID: 2, Title: "Ideas"},
	}
	if err := c.PutNotes(ctx, 42, notes); err != nil {
		t.Fatalf("PutNotes: %v", err)
	}

	got, at, ok, err := c.Notes(ctx, 42)
	if err != nil {
		t.Fatalf("Notes: %v", err)
	}
	if !ok {
		t.Fatal("expected a snapshot")
	}
	if at.IsZero() {
		t.Fatal("fetched-at timestamp is zero")
	}
	if len(got) != 2 || got[0].Title != "Groceries" || !got[0].IsPinned {
		t.Fatalf("Notes = %+v", got)
	}
}

func TestCacheMissesAreNotErrors(t *testing.T) {
	ctx := context.Background()
	c := openTestCache(t)

	_, _, ok, err := c.Tasks(ctx, 7)
	if err != nil {
		t.Fatalf("Tasks: %v", err)
	}
	if ok {
		t.Fatal("expected a miss for an unknown user")
	}
}

func TestCacheIsolatesUsers(t *testing.T) {
	ctx := context.Background()
	c := openTestCache(t)

	if err := c.PutStats(ctx, 1, model.TaskStats{Pending: 3}); err != nil {
		t.Fatalf("PutStats: %v", err)
	}
	if _, _, ok, _ := c.Stats(ctx, 2); ok {
		t.Fatal("user 2 must not see user 1's snapshot")
	}
}

func TestCacheClearDropsAllCollections(t *testing.T) {
	ctx := context.Background()
	c := openTestCache(t)

	_ = c.PutNotes(ctx, 9, []model.Note{{ID: 1}})
	_ = c.PutTasks(ctx, 9, []model.Task{{ID: 1, Status: model.StatusPending}})
	_ = c.PutStats(ctx, 9, model.TaskStats{Pending: 1})

	if err := c.Clear(ctx, 9); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, _, ok, _ := c.Notes(ctx, 9); ok {
		t.Fatal("notes snapshot survived Clear")
	}
	if _, _, ok, _ := c.Stats(ctx, 9); ok {
		t.Fatal("stats snapshot survived Clear")
	}
}

func TestCacheOverwriteReplacesSnapshot(t *testing.T) {
	ctx := context.Background()
	c := openTestCache(t)

	_ = c.PutTasks(ctx, 3, []model.Task{{ID: 1, Title: "old"}})
	_ = c.PutTasks(ctx, 3, []model.Task{{ID: 2, Title: "new"}})

	got, _, ok, err := c.Tasks(ctx, 3)
	if err != nil || !ok {
		t.Fatalf("Tasks: ok=%v err=%v", ok, err)
	}
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("Tasks = %+v, want the replacement snapshot", got)
	}
}
