package server

import (
	"fmt"
	"net/http"
	"strconv"
)

func (s *Server) handleCreateDeck(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	d, err := s.decks.CreateDeck(req.Title, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (s *Server) handleListDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := s.decks.ListDecks()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, decks)
}

func (s *Server) handleGetDeck(w http.ResponseWriter, r *http.Request) {
	d, err := s.decks.GetDeck(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleDeleteDeck(w http.ResponseWriter, r *http.Request) {
	if err := s.decks.DeleteDeck(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSaveDeck(w http.ResponseWriter, r *http.Request) {
	d, err := s.decks.Save(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleGenerateDeck(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Problem  string `json:"problem"`
		Solution string `json:"solution"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	d, err := s.generation.GenerateDeck(r.Context(), req.Problem, req.Solution)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (s *Server) handleAnalyzeDeck(w http.ResponseWriter, r *http.Request) {
	wantFeedback, _ := strconv.ParseBool(r.URL.Query().Get("feedback"))
	snap, err := s.analysis.Analyze(r.Context(), r.PathValue("id"), wantFeedback)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.decks.Stats()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleExportFormats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.export.Formats())
}

func (s *Server) handleExportDeck(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	data, contentType, err := s.export.Export(r.Context(), r.PathValue("id"), format)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=deck.%s", format))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handleAddSlide(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	sl, err := s.decks.AddSlide(r.Context(), r.PathValue("id"), req.Title)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sl)
}
