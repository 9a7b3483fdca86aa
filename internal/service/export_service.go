package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"sort"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"pitchdeck/internal/domain"
	"pitchdeck/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Export Service — lossy one-way deck export
// ─────────────────────────────────────────────────────────────

// Renderer turns an export payload into bytes of some document format.
// External renderers (PDF, PPTX) register here; the built-in formats are
// json and html.
type Renderer interface {
	// Render produces the document. contentType is the MIME type of the
	// returned bytes.
	Render(ctx context.Context, deckTitle string, slides []domain.SlideExport) (data []byte, contentType string, err error)
}

// ExportService flattens a deck to {title, content} pairs. Visuals and layout
// are dropped: external renderers consume text only, and the payload is never
// used to reconstruct a slide.
type ExportService struct {
	store  *storage.DeckStore
	blocks *BlockService

	mu        sync.RWMutex
	renderers map[string]Renderer
}

func NewExportService(store *storage.DeckStore, blocks *BlockService) *ExportService {
	s := &ExportService{
		store:     store,
		renderers: make(map[string]Renderer),
	}
	s.blocks = blocks
	s.Register("json", jsonRenderer{})
	s.Register("html", newHTMLRenderer())
	return s
}

// Register adds or replaces the renderer for a format name.
func (s *ExportService) Register(format string, r Renderer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renderers[format] = r
}

// Formats lists the registered format names, sorted.
func (s *ExportService) Formats() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.renderers))
	for name := range s.renderers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Payload materializes every slide and returns the export pairs in slide
// order.
func (s *ExportService) Payload(ctx context.Context, deckID string) (string, []domain.SlideExport, error) {
	d, err := s.store.GetDeck(deckID)
	if err != nil {
		return "", nil, err
	}
	out := make([]domain.SlideExport, 0, len(d.Slides))
	for i := range d.Slides {
		sl := &d.Slides[i]
		sl.Materialize()
		out = append(out, domain.SlideExport{Title: sl.Title, Content: sl.Content})
	}
	return d.Title, out, nil
}

// Export renders the deck in the named format.
func (s *ExportService) Export(ctx context.Context, deckID, format string) ([]byte, string, error) {
	s.mu.RLock()
	r, ok := s.renderers[format]
	s.mu.RUnlock()
	if !ok {
		return nil, "", &domain.ValidationError{Field: "format", Reason: fmt.Sprintf("unknown export format %q", format)}
	}
	title, slides, err := s.Payload(ctx, deckID)
	if err != nil {
		return nil, "", err
	}
	return r.Render(ctx, title, slides)
}

// ── Built-in renderers ─────────────────────────────────────

type jsonRenderer struct{}

func (jsonRenderer) Render(_ context.Context, deckTitle string, slides []domain.SlideExport) ([]byte, string, error) {
	data, err := json.MarshalIndent(map[string]any{
		"title":  deckTitle,
		"slides": slides,
	}, "", "  ")
	if err != nil {
		return nil, "", err
	}
	return data, "application/json", nil
}

// htmlRenderer renders slide content as Markdown into a standalone page, one
// section per slide.
type htmlRenderer struct {
	md goldmark.Markdown
}

func newHTMLRenderer() *htmlRenderer {
	return &htmlRenderer{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

func (r *htmlRenderer) Render(_ context.Context, deckTitle string, slides []domain.SlideExport) ([]byte, string, error) {
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&buf, "<title>%s</title>\n", htmlEscape(deckTitle))
	buf.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&buf, "<h1>%s</h1>\n", htmlEscape(deckTitle))
	for _, sl := range slides {
		buf.WriteString("<section>\n")
		fmt.Fprintf(&buf, "<h2>%s</h2>\n", htmlEscape(sl.Title))
		if err := r.md.Convert([]byte(sl.Content), &buf); err != nil {
			return nil, "", fmt.Errorf("render slide %q: %w", sl.Title, err)
		}
		buf.WriteString("</section>\n")
	}
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes(), "text/html; charset=utf-8", nil
}

func htmlEscape(s string) string {
	return html.EscapeString(s)
}
