package content

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&Document{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return NewStore(db, zerolog.Nop())
}

func TestGetMissing(t *testing.T) {
	store := setupStore(t)

	var out []string
	_, err := store.Get(context.Background(), "nope", &out)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPutCreateAndGet(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, "greetings", 0, []string{"zdravo", "živjo"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	var out []string
	rev, err := store.Get(ctx, "greetings", &out)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if rev != 1 {
		t.Errorf("expected revision 1 after create, got %d", rev)
	}
	if len(out) != 2 || out[0] != "zdravo" {
		t.Errorf("unexpected value %v", out)
	}
}

func TestPutCreateConflict(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, "k", 0, "first"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	err := store.Put(ctx, "k", 0, "second")
	if !errors.Is(err, ErrRevisionConflict) {
		t.Fatalf("expected ErrRevisionConflict on duplicate create, got %v", err)
	}
}

func TestPutStaleRevision(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, "k", 0, "v1"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	var v string
	rev, err := store.Get(ctx, "k", &v)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	// Another writer bumps the revision first.
	if err := store.Put(ctx, "k", rev, "v2"); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	err = store.Put(ctx, "k", rev, "v3")
	if !errors.Is(err, ErrRevisionConflict) {
		t.Fatalf("expected ErrRevisionConflict on stale write, got %v", err)
	}

	// The losing write must not have clobbered the winner.
	newRev, err := store.Get(ctx, "k", &v)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if v != "v2" {
		t.Errorf("expected surviving value v2, got %q", v)
	}
	if newRev != rev+1 {
		t.Errorf("expected revision %d, got %d", rev+1, newRev)
	}
}
