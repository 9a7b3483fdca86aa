package storage_test

import (
	"path/filepath"
	"testing"

	"pitchdeck/internal/domain"
	"pitchdeck/internal/storage"
)

func newTestStores(t *testing.T) (*storage.DeckStore, *storage.BlockStore) {
	t.Helper()
	dir := t.TempDir()
	db, err := storage.New(filepath.Join(dir, "test.db"), dir)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	blocks := storage.NewBlockStore(db)
	return storage.NewDeckStore(db, blocks), blocks
}

func TestSaveDeckRoundtrip(t *testing.T) {
	decks, _ := newTestStores(t)

	d := &domain.Deck{
		ID:          "d1",
		Title:       "Roundtrip",
		Description: "full deck persistence",
		Slides: []domain.Slide{
			{
				ID: "s1", DeckID: "d1", Title: "The Problem",
				Content: "Food waste", Design: "minimal", Theme: "dark",
				Blocks: []domain.Block{
					{ID: "b1", SlideID: "s1", Type: domain.BlockTypeText, Content: "Food waste", IsEditable: true, Width: 540, Height: 180},
					{ID: "b2", SlideID: "s1", Type: domain.BlockTypeVisual, VisualType: domain.VisualTypePie,
						Data: domain.VisualData{Points: []domain.ChartPoint{{Name: "Wasted", Value: 30}}}, Width: 540, Height: 360},
				},
			},
			{ID: "s2", DeckID: "d1", Title: "Our Solution", Content: "Tracking", Order: 1},
		},
	}
	if err := decks.SaveDeck(d); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := decks.GetDeck("d1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Roundtrip" || got.Description != "full deck persistence" {
		t.Errorf("deck = %+v", got)
	}
	if len(got.Slides) != 2 {
		t.Fatalf("slides = %d", len(got.Slides))
	}
	s1 := got.Slides[0]
	if s1.Title != "The Problem" || s1.Design != "minimal" || s1.Theme != "dark" {
		t.Errorf("slide 1 = %+v", s1)
	}
	if len(s1.Blocks) != 2 {
		t.Fatalf("blocks = %d", len(s1.Blocks))
	}
	if s1.Blocks[1].Data.Points[0].Name != "Wasted" || s1.Blocks[1].Data.Points[0].Value != 30 {
		t.Errorf("visual data = %+v", s1.Blocks[1].Data)
	}
}

func TestSaveDeckReplacesExisting(t *testing.T) {
	decks, _ := newTestStores(t)

	d := &domain.Deck{
		ID:    "d1",
		Title: "v1",
		Slides: []domain.Slide{
			{ID: "s1", DeckID: "d1", Title: "Old Slide"},
		},
	}
	if err := decks.SaveDeck(d); err != nil {
		t.Fatalf("first save: %v", err)
	}

	d.Title = "v2"
	d.Slides = []domain.Slide{
		{ID: "s2", DeckID: "d1", Title: "New Slide"},
	}
	if err := decks.SaveDeck(d); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := decks.GetDeck("d1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "v2" {
		t.Errorf("title = %q", got.Title)
	}
	if len(got.Slides) != 1 || got.Slides[0].ID != "s2" {
		t.Errorf("slides = %+v, want replaced", got.Slides)
	}
}

func TestBlockSortOrder(t *testing.T) {
	decks, blocks := newTestStores(t)

	d := &domain.Deck{ID: "d1", Title: "Ordering"}
	if err := decks.CreateDeck(d); err != nil {
		t.Fatalf("create deck: %v", err)
	}
	sl := &domain.Slide{ID: "s1", DeckID: "d1", Title: "The Problem"}
	if err := decks.CreateSlide(sl); err != nil {
		t.Fatalf("create slide: %v", err)
	}

	for _, id := range []string{"b1", "b2", "b3"} {
		b := &domain.Block{ID: id, SlideID: "s1", Type: domain.BlockTypeText}
		if err := blocks.CreateBlock(b); err != nil {
			t.Fatalf("create block %s: %v", id, err)
		}
	}

	list, err := blocks.ListBlocks("s1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len = %d", len(list))
	}
	for i, want := range []string{"b1", "b2", "b3"} {
		if list[i].ID != want {
			t.Errorf("list[%d] = %s, want %s", i, list[i].ID, want)
		}
	}
}

func TestDeleteDeckCascades(t *testing.T) {
	decks, blocks := newTestStores(t)

	d := &domain.Deck{
		ID:    "d1",
		Title: "Doomed",
		Slides: []domain.Slide{
			{
				ID: "s1", DeckID: "d1", Title: "The Problem",
				Blocks: []domain.Block{{ID: "b1", SlideID: "s1", Type: domain.BlockTypeText}},
			},
		},
	}
	if err := decks.SaveDeck(d); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := decks.DeleteDeck("d1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := decks.GetDeck("d1"); err == nil {
		t.Error("deck survives deletion")
	}
	if _, err := decks.GetSlide("s1"); err == nil {
		t.Error("slide survives deck deletion")
	}
	list, err := blocks.ListBlocks("s1")
	if err != nil {
		t.Fatalf("list blocks: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("blocks survive deck deletion: %d", len(list))
	}
}

func TestCreateBlockAfterCloseFails(t *testing.T) {
	dir := t.TempDir()
	db, err := storage.New(filepath.Join(dir, "test.db"), dir)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	blocks := storage.NewBlockStore(db)
	db.Close()

	b := &domain.Block{ID: "b1", SlideID: "s1", Type: domain.BlockTypeText}
	if err := blocks.CreateBlock(b); err == nil {
		t.Error("CreateBlock succeeded on a closed database")
	}
}
