package server

import (
	"net/http"

	"pitchdeck/internal/domain"
)

func (s *Server) handleListBlocks(w http.ResponseWriter, r *http.Request) {
	blocks, err := s.blocks.ListBlocks(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, blocks)
}

func (s *Server) handleAddBlock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type       string            `json:"type"`
		VisualType string            `json:"visualType,omitempty"`
		Data       domain.VisualData `json:"data,omitempty"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	slideID := r.PathValue("id")

	var b *domain.Block
	var err error
	switch domain.BlockType(req.Type) {
	case domain.BlockTypeText:
		b, err = s.blocks.AddTextBlock(r.Context(), slideID)
	case domain.BlockTypeVisual:
		b, err = s.blocks.AddVisualBlock(r.Context(), slideID, domain.VisualType(req.VisualType), req.Data)
	default:
		err = &domain.ValidationError{Field: "type", Reason: "must be text or visual"}
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (s *Server) handleArrangeBlocks(w http.ResponseWriter, r *http.Request) {
	blocks, err := s.blocks.ArrangeBlocks(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, blocks)
}

func (s *Server) handleUpdateBlockContent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.blocks.UpdateBlockContent(r.Context(), r.PathValue("id"), req.Content); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMoveBlock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.blocks.MoveBlock(r.Context(), r.PathValue("id"), req.X, req.Y); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleResizeBlock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.blocks.ResizeBlock(r.Context(), r.PathValue("id"), req.Width, req.Height); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveBlock(w http.ResponseWriter, r *http.Request) {
	if err := s.blocks.RemoveBlock(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
