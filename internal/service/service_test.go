package service_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"pitchdeck/internal/domain"
	"pitchdeck/internal/service"
	"pitchdeck/internal/storage"
)

// testEnv bundles a real SQLite-backed store stack for service tests.
type testEnv struct {
	db        *storage.DB
	decks     *storage.DeckStore
	blocks    *storage.BlockStore
	snapshots *storage.SnapshotStore
	guard     *service.GenGuard
	emitter   *service.MockEmitter
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	db, err := storage.New(filepath.Join(dir, "test.db"), dir)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	blocks := storage.NewBlockStore(db)
	return &testEnv{
		db:        db,
		decks:     storage.NewDeckStore(db, blocks),
		blocks:    blocks,
		snapshots: storage.NewSnapshotStore(db),
		guard:     service.NewGenGuard(),
		emitter:   &service.MockEmitter{},
	}
}

// seedDeck creates a deck with one slide and returns both.
func (e *testEnv) seedDeck(t *testing.T, slideTitle string) (*domain.Deck, *domain.Slide) {
	t.Helper()
	d := &domain.Deck{ID: uuid.New().String(), Title: "Test Deck"}
	if err := e.decks.CreateDeck(d); err != nil {
		t.Fatalf("create deck: %v", err)
	}
	sl := &domain.Slide{ID: uuid.New().String(), DeckID: d.ID, Title: slideTitle}
	if err := e.decks.CreateSlide(sl); err != nil {
		t.Fatalf("create slide: %v", err)
	}
	return d, sl
}

func ctxb() context.Context { return context.Background() }
