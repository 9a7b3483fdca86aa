package server

import (
	"net/http"
	"strconv"

	"pitchdeck/internal/domain"
)

func (s *Server) handleGetSlide(w http.ResponseWriter, r *http.Request) {
	sl, err := s.decks.GetSlide(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sl)
}

func (s *Server) handleUpdateSlideContent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.decks.UpdateSlideContent(r.Context(), r.PathValue("id"), req.Content); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdateSlideDesign(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Design string `json:"design"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.decks.UpdateSlideDesign(r.Context(), r.PathValue("id"), req.Design); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetSlideImage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.decks.SetSlideImage(r.Context(), r.PathValue("id"), req.URL); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetSlideVideo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.decks.SetSlideVideo(r.Context(), r.PathValue("id"), req.URL); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetSlideTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme string `json:"theme"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.decks.SetSlideTheme(r.Context(), r.PathValue("id"), req.Theme); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGenerateSlideContent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode string `json:"mode"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	content, err := s.generation.GenerateSlideContent(r.Context(), r.PathValue("id"), req.Mode)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"content": content})
}

func (s *Server) handleAddVisualization(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VisualType string `json:"visualType"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	b, err := s.generation.AddDataVisualization(r.Context(), r.PathValue("id"), domain.VisualType(req.VisualType))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (s *Server) handleImportVisual(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VisualType string `json:"visualType"`
		Datasource string `json:"datasource"`
		Query      string `json:"query"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	cfg, ok := s.cfg.Datasource(req.Datasource)
	if !ok {
		writeError(w, &domain.ValidationError{Field: "datasource", Reason: "unknown datasource " + strconv.Quote(req.Datasource)})
		return
	}
	b, err := s.importer.ImportVisual(r.Context(), r.PathValue("id"), domain.VisualType(req.VisualType), cfg, req.Query)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (s *Server) handleTestDatasource(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	cfg, ok := s.cfg.Datasource(name)
	if !ok {
		writeError(w, &domain.ValidationError{Field: "datasource", Reason: "unknown datasource " + strconv.Quote(name)})
		return
	}
	if err := s.importer.TestDatasource(r.Context(), cfg); err != nil {
		writeError(w, &domain.ExternalServiceError{Op: "testDatasource", Err: err})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSetActiveSlide(w http.ResponseWriter, r *http.Request) {
	s.suggestions.SetActiveSlide(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetSuggestions(w http.ResponseWriter, r *http.Request) {
	list, state := s.suggestions.Suggestions(r.PathValue("id"))
	writeJSON(w, http.StatusOK, map[string]any{"state": state, "suggestions": list})
}

func (s *Server) handleRefreshSuggestions(w http.ResponseWriter, r *http.Request) {
	list, err := s.suggestions.RefreshAll(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleApplySuggestion(w http.ResponseWriter, r *http.Request) {
	slot, err := strconv.Atoi(r.PathValue("slot"))
	if err != nil {
		writeError(w, &domain.ValidationError{Field: "slot", Reason: "must be a number"})
		return
	}
	sl, err := s.suggestions.Apply(r.Context(), r.PathValue("id"), slot)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sl)
}
