package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/markerhq/marker/internal/store"
	"github.com/markerhq/marker/internal/testutil"
)

func newTagTestEnv(t *testing.T) (*store.TagStore, *store.BookmarkStore) {
	t.Helper()
	db := testutil.NewTestDB(t)
	tags := store.NewTagStore(db)
	bs := store.NewBookmarkStore(db, tags)
	return tags, bs
}

func TestTagStore_ResolveOrCreate(t *testing.T) {
	ts, _ := newTagTestEnv(t)
	ctx := context.Background()

	tag, err := ts.ResolveOrCreate(ctx, "search")
	if err != nil {
		t.Fatalf("ResolveOrCreate: %v", err)
	}
	if tag.Name != "search" {
		t.Errorf("name = %q, want %q", tag.Name, "search")
	}
	if tag.ID == "" {
		t.Error("expected non-empty ID")
	}
}

func TestTagStore_ResolveOrCreate_Idempotent(t *testing.T) {
	ts, _ := newTagTestEnv(t)
	ctx := context.Background()

	tag1, err := ts.ResolveOrCreate(ctx, "search")
	if err != nil {
		t.Fatalf("ResolveOrCreate first: %v", err)
	}
	tag2, err := ts.ResolveOrCreate(ctx, "search")
	if err != nil {
		t.Fatalf("ResolveOrCreate second: %v", err)
	}
	if tag1.ID != tag2.ID {
		t.Errorf("expected same ID, got %q and %q", tag1.ID, tag2.ID)
	}
}

func TestTagStore_ResolveOrCreate_CaseSensitive(t *testing.T) {
	ts, _ := newTagTestEnv(t)
	ctx := context.Background()

	lower, err := ts.ResolveOrCreate(ctx, "java")
	if err != nil {
		t.Fatalf("ResolveOrCreate: %v", err)
	}
	upper, err := ts.ResolveOrCreate(ctx, "Java")
	if err != nil {
		t.Fatalf("ResolveOrCreate: %v", err)
	}
	if lower.ID == upper.ID {
		t.Error("expected distinct tags for distinct-case names")
	}
}

func TestTagStore_ResolveOrCreate_Blank(t *testing.T) {
	ts, _ := newTagTestEnv(t)

	_, err := ts.ResolveOrCreate(context.Background(), "  ")
	if !errors.Is(err, store.ErrValidation) {
		t.Errorf("ResolveOrCreate(blank) = %v, want ErrValidation", err)
	}
}

func TestTagStore_ResolveOrCreate_Concurrent(t *testing.T) {
	ts, _ := newTagTestEnv(t)
	ctx := context.Background()

	const n = 8
	ids := make(chan string, n)
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			tag, err := ts.ResolveOrCreate(ctx, "contested")
			if err != nil {
				errs <- err
				return
			}
			ids <- tag.ID
		}()
	}

	var first string
	for i := 0; i < n; i++ {
		select {
		case err := <-errs:
			t.Fatalf("concurrent ResolveOrCreate: %v", err)
		case id := <-ids:
			if first == "" {
				first = id
			} else if id != first {
				t.Errorf("got two ids for one name: %q and %q", first, id)
			}
		}
	}
}

func TestTagStore_GetByName_NotFound(t *testing.T) {
	ts, _ := newTagTestEnv(t)

	_, err := ts.GetByName(context.Background(), "nonexistent")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetByName(nonexistent) = %v, want ErrNotFound", err)
	}
}

func TestTagStore_ListAll(t *testing.T) {
	ts, _ := newTagTestEnv(t)
	ctx := context.Background()

	if _, err := ts.ResolveOrCreate(ctx, "beta"); err != nil {
		t.Fatalf("ResolveOrCreate: %v", err)
	}
	if _, err := ts.ResolveOrCreate(ctx, "alpha"); err != nil {
		t.Fatalf("ResolveOrCreate: %v", err)
	}

	tags, err := ts.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("len = %d, want 2", len(tags))
	}
	// Ordered by name ASC.
	if tags[0].Name != "alpha" {
		t.Errorf("first tag = %q, want %q", tags[0].Name, "alpha")
	}
}
