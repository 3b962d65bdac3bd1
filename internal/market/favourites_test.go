package market

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"crypto_dash/internal/domain"
	"crypto_dash/internal/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "user.db")

	store, err := storage.NewStore(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestFavourites_ToggleRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	favs := NewFavourites(store)
	if err := favs.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	nowFav, err := favs.Toggle(ctx, "bitcoin")
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if !nowFav {
		t.Error("Expected bitcoin to become favourite")
	}

	// Simulated restart: a fresh set reading the same store.
	reloaded := NewFavourites(store)
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if !reloaded.Contains("bitcoin") {
		t.Error("Expected bitcoin to survive restart")
	}
}

func TestFavourites_ToggleTwiceRemoves(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	favs := NewFavourites(store)
	if _, err := favs.Toggle(ctx, "monero"); err != nil {
		t.Fatalf("First toggle failed: %v", err)
	}
	nowFav, err := favs.Toggle(ctx, "monero")
	if err != nil {
		t.Fatalf("Second toggle failed: %v", err)
	}
	if nowFav {
		t.Error("Expected second toggle to remove the favourite")
	}

	reloaded := NewFavourites(store)
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if reloaded.Contains("monero") {
		t.Error("Expected monero to be absent after double toggle")
	}
}

func TestFavourites_CorruptRecordIsEmptySet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Garbage in the durable record must not be fatal.
	if err := store.Put(ctx, "favourites", "{not json", time.Now().UnixMicro()); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	favs := NewFavourites(store)
	if err := favs.Load(ctx); err != nil {
		t.Fatalf("Load of corrupt record must not fail: %v", err)
	}
	if got := favs.IDs(); len(got) != 0 {
		t.Errorf("Expected empty set, got %v", got)
	}
}

func TestFavourites_FilterSnapshotKeepsOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	favs := NewFavourites(store)
	for _, id := range []string{"zcash", "bitcoin"} {
		if _, err := favs.Toggle(ctx, id); err != nil {
			t.Fatalf("Toggle %s failed: %v", id, err)
		}
	}

	snapshot := []domain.Coin{
		{ID: "bitcoin"},
		{ID: "ethereum"},
		{ID: "zcash"},
	}

	got := favs.FilterSnapshot(snapshot)
	want := []string{"bitcoin", "zcash"} // snapshot order, not toggle order
	gotIDs := make([]string, 0, len(got))
	for _, c := range got {
		gotIDs = append(gotIDs, c.ID)
	}
	if !reflect.DeepEqual(gotIDs, want) {
		t.Errorf("Expected %v, got %v", want, gotIDs)
	}
}

func TestFavourites_MissingDBFileStartsEmpty(t *testing.T) {
	// Brand-new store in an empty directory: no favourites yet.
	dbPath := filepath.Join(t.TempDir(), "fresh.db")
	store, err := storage.NewStore(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()
	defer os.Remove(dbPath)

	favs := NewFavourites(store)
	if err := favs.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(favs.IDs()) != 0 {
		t.Errorf("Expected empty favourites, got %v", favs.IDs())
	}
}
