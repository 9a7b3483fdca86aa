package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"pitchdeck/internal/ai"
	"pitchdeck/internal/config"
	"pitchdeck/internal/domain"
	"pitchdeck/internal/server"
	"pitchdeck/internal/service"
	"pitchdeck/internal/storage"
	"pitchdeck/internal/theme"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	dir := t.TempDir()
	db, err := storage.New(filepath.Join(dir, "test.db"), dir)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	blockStore := storage.NewBlockStore(db)
	deckStore := storage.NewDeckStore(db, blockStore)
	snapshotStore := storage.NewSnapshotStore(db)

	client := &ai.Mock{}
	themes := theme.NewRegistry("")
	guard := service.NewGenGuard()
	emitter := &service.MockEmitter{}

	blocks := service.NewBlockService(blockStore, deckStore, guard, emitter)
	decks := service.NewDeckService(deckStore, blockStore, themes, guard, emitter)
	generation := service.NewGenerationService(client, deckStore, blocks, guard, emitter)
	suggestions := service.NewSuggestionService(client, deckStore, guard, emitter)
	analysis := service.NewAnalysisService(client, deckStore, snapshotStore, emitter)
	export := service.NewExportService(deckStore, blocks)
	importer := service.NewImportService(blocks)

	cfg := &config.Config{Addr: ":0"}
	return server.New(cfg, decks, blocks, generation, suggestions, analysis, export, importer, themes).Handler()
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCreateAndFetchDeck(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/decks", map[string]string{
		"title": "My Startup", "description": "pitch",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body)
	}
	var d domain.Deck
	if err := json.Unmarshal(rec.Body.Bytes(), &d); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/decks/"+d.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
}

func TestValidationErrorsMapTo400(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/decks", map[string]string{"title": ""})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty title status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/decks/generate", map[string]string{
		"problem": "", "solution": "x",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty problem status = %d, want 400", rec.Code)
	}
}

func TestMissingDeckMapsTo404(t *testing.T) {
	h := newTestServer(t)
	rec := doJSON(t, h, http.MethodGet, "/api/decks/does-not-exist", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestGenerateDeckEndToEnd(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/decks/generate", map[string]string{
		"problem": "Restaurants waste 30% of food", "solution": "Smart inventory",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	var d domain.Deck
	if err := json.Unmarshal(rec.Body.Bytes(), &d); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(d.Slides) != len(domain.StandardSlideTitles) {
		t.Errorf("slides = %d", len(d.Slides))
	}

	rec = doJSON(t, h, http.MethodGet, "/api/decks/"+d.ID+"/analysis?feedback=true", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("analysis status = %d: %s", rec.Code, rec.Body)
	}
	var snap domain.AnalysisSnapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.Score == 0 || snap.Feedback == "" {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestBlockLifecycleOverHTTP(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/decks", map[string]string{"title": "Deck"})
	var d domain.Deck
	json.Unmarshal(rec.Body.Bytes(), &d)

	rec = doJSON(t, h, http.MethodPost, "/api/decks/"+d.ID+"/slides", map[string]string{"title": "The Problem"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add slide status = %d", rec.Code)
	}
	var sl domain.Slide
	json.Unmarshal(rec.Body.Bytes(), &sl)

	rec = doJSON(t, h, http.MethodPost, "/api/slides/"+sl.ID+"/blocks", map[string]string{"type": "text"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add block status = %d: %s", rec.Code, rec.Body)
	}
	var b domain.Block
	json.Unmarshal(rec.Body.Bytes(), &b)

	rec = doJSON(t, h, http.MethodPut, "/api/blocks/"+b.ID+"/content", map[string]string{"content": "hello"})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("update content status = %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodDelete, "/api/blocks/"+b.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	// Idempotent remove.
	rec = doJSON(t, h, http.MethodDelete, "/api/blocks/"+b.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("second delete status = %d, want 204", rec.Code)
	}
}

func TestUnknownExportFormat(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/decks", map[string]string{"title": "Deck"})
	var d domain.Deck
	json.Unmarshal(rec.Body.Bytes(), &d)

	rec = doJSON(t, h, http.MethodGet, "/api/decks/"+d.ID+"/export?format=docx", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestStatsEndpoint(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/decks", map[string]string{"title": "Deck"})
	var d domain.Deck
	json.Unmarshal(rec.Body.Bytes(), &d)
	doJSON(t, h, http.MethodPost, "/api/decks/"+d.ID+"/slides", map[string]string{"title": "The Problem"})

	rec = doJSON(t, h, http.MethodGet, "/api/stats", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var stats struct {
		Decks  int `json:"decks"`
		Slides int `json:"slides"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.Decks != 1 || stats.Slides != 1 {
		t.Errorf("stats = %+v, want 1 deck and 1 slide", stats)
	}
}
