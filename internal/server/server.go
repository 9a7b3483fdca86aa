package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"pitchdeck/internal/config"
	"pitchdeck/internal/domain"
	"pitchdeck/internal/service"
	"pitchdeck/internal/theme"
)

// Server exposes the deck editor over HTTP for the web frontend.
type Server struct {
	cfg         *config.Config
	decks       *service.DeckService
	blocks      *service.BlockService
	generation  *service.GenerationService
	suggestions *service.SuggestionService
	analysis    *service.AnalysisService
	export      *service.ExportService
	importer    *service.ImportService
	themes      *theme.Registry
}

func New(cfg *config.Config, decks *service.DeckService, blocks *service.BlockService,
	generation *service.GenerationService, suggestions *service.SuggestionService,
	analysis *service.AnalysisService, export *service.ExportService,
	importer *service.ImportService, themes *theme.Registry) *Server {
	return &Server{
		cfg:         cfg,
		decks:       decks,
		blocks:      blocks,
		generation:  generation,
		suggestions: suggestions,
		analysis:    analysis,
		export:      export,
		importer:    importer,
		themes:      themes,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/themes", s.handleListThemes)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("GET /api/export/formats", s.handleExportFormats)
	mux.HandleFunc("POST /api/datasources/{name}/test", s.handleTestDatasource)

	mux.HandleFunc("POST /api/decks", s.handleCreateDeck)
	mux.HandleFunc("GET /api/decks", s.handleListDecks)
	mux.HandleFunc("POST /api/decks/generate", s.handleGenerateDeck)
	mux.HandleFunc("GET /api/decks/{id}", s.handleGetDeck)
	mux.HandleFunc("DELETE /api/decks/{id}", s.handleDeleteDeck)
	mux.HandleFunc("POST /api/decks/{id}/save", s.handleSaveDeck)
	mux.HandleFunc("GET /api/decks/{id}/analysis", s.handleAnalyzeDeck)
	mux.HandleFunc("GET /api/decks/{id}/export", s.handleExportDeck)
	mux.HandleFunc("POST /api/decks/{id}/slides", s.handleAddSlide)

	mux.HandleFunc("GET /api/slides/{id}", s.handleGetSlide)
	mux.HandleFunc("PUT /api/slides/{id}/content", s.handleUpdateSlideContent)
	mux.HandleFunc("PUT /api/slides/{id}/design", s.handleUpdateSlideDesign)
	mux.HandleFunc("PUT /api/slides/{id}/image", s.handleSetSlideImage)
	mux.HandleFunc("PUT /api/slides/{id}/video", s.handleSetSlideVideo)
	mux.HandleFunc("PUT /api/slides/{id}/theme", s.handleSetSlideTheme)
	mux.HandleFunc("POST /api/slides/{id}/generate", s.handleGenerateSlideContent)
	mux.HandleFunc("POST /api/slides/{id}/visuals", s.handleAddVisualization)
	mux.HandleFunc("POST /api/slides/{id}/import", s.handleImportVisual)
	mux.HandleFunc("POST /api/slides/{id}/active", s.handleSetActiveSlide)
	mux.HandleFunc("GET /api/slides/{id}/suggestions", s.handleGetSuggestions)
	mux.HandleFunc("POST /api/slides/{id}/suggestions/refresh", s.handleRefreshSuggestions)
	mux.HandleFunc("POST /api/slides/{id}/suggestions/{slot}/apply", s.handleApplySuggestion)

	mux.HandleFunc("GET /api/slides/{id}/blocks", s.handleListBlocks)
	mux.HandleFunc("POST /api/slides/{id}/blocks", s.handleAddBlock)
	mux.HandleFunc("POST /api/slides/{id}/blocks/arrange", s.handleArrangeBlocks)
	mux.HandleFunc("PUT /api/blocks/{id}/content", s.handleUpdateBlockContent)
	mux.HandleFunc("PUT /api/blocks/{id}/position", s.handleMoveBlock)
	mux.HandleFunc("PUT /api/blocks/{id}/size", s.handleResizeBlock)
	mux.HandleFunc("DELETE /api/blocks/{id}", s.handleRemoveBlock)

	return logMiddleware(mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListThemes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.themes.List())
}

// ── helpers ────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("http: encode response: %v", err)
	}
}

// writeError maps domain errors onto HTTP status codes: validation failures
// are the client's fault, external-service failures are a bad gateway, and a
// missing row is a 404.
func writeError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	var xerr *domain.ExternalServiceError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": verr.Error()})
	case errors.As(err, &xerr):
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": xerr.Error()})
	case errors.Is(err, sql.ErrNoRows):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	default:
		log.Printf("http: internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
