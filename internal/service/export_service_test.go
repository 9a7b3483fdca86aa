package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"pitchdeck/internal/domain"
	"pitchdeck/internal/service"
)

func newExportService(e *testEnv) *service.ExportService {
	blocks := service.NewBlockService(e.blocks, e.decks, e.guard, e.emitter)
	return service.NewExportService(e.decks, blocks)
}

func TestPayloadIsLossy(t *testing.T) {
	e := newTestEnv(t)
	d, sl := e.seedDeck(t, "The Problem")
	sl.Content = "Restaurants waste 30% of food"
	sl.Design = "dramatic imagery"
	sl.Visuals = []domain.VisualPayload{{Type: domain.VisualTypePie}}
	if err := e.decks.UpdateSlide(sl); err != nil {
		t.Fatalf("update slide: %v", err)
	}

	svc := newExportService(e)
	title, slides, err := svc.Payload(ctxb(), d.ID)
	if err != nil {
		t.Fatalf("payload: %v", err)
	}
	if title != "Test Deck" {
		t.Errorf("title = %q", title)
	}
	if len(slides) != 1 {
		t.Fatalf("len = %d", len(slides))
	}
	if slides[0].Title != "The Problem" || slides[0].Content != "Restaurants waste 30% of food" {
		t.Errorf("export pair = %+v", slides[0])
	}
	// Only title and content survive export.
	data, _ := json.Marshal(slides[0])
	if strings.Contains(string(data), "design") || strings.Contains(string(data), "visual") {
		t.Errorf("export payload leaks extra fields: %s", data)
	}
}

func TestPayloadMaterializesFirst(t *testing.T) {
	e := newTestEnv(t)
	d, sl := e.seedDeck(t, "Traction")
	blocks := service.NewBlockService(e.blocks, e.decks, e.guard, e.emitter)

	b, err := blocks.AddTextBlock(ctxb(), sl.ID)
	if err != nil {
		t.Fatalf("add block: %v", err)
	}
	if err := blocks.UpdateBlockContent(ctxb(), b.ID, "1,000 paying customers"); err != nil {
		t.Fatalf("update block: %v", err)
	}

	svc := service.NewExportService(e.decks, blocks)
	_, slides, err := svc.Payload(ctxb(), d.ID)
	if err != nil {
		t.Fatalf("payload: %v", err)
	}
	if slides[0].Content != "1,000 paying customers" {
		t.Errorf("content = %q, want derived from blocks", slides[0].Content)
	}
}

func TestExportJSON(t *testing.T) {
	e := newTestEnv(t)
	d, _ := e.seedDeck(t, "Team")

	svc := newExportService(e)
	data, contentType, err := svc.Export(ctxb(), d.ID, "json")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if contentType != "application/json" {
		t.Errorf("contentType = %q", contentType)
	}
	var doc struct {
		Title  string               `json:"title"`
		Slides []domain.SlideExport `json:"slides"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Title != "Test Deck" || len(doc.Slides) != 1 {
		t.Errorf("doc = %+v", doc)
	}
}

func TestExportHTMLRendersMarkdown(t *testing.T) {
	e := newTestEnv(t)
	d, sl := e.seedDeck(t, "Market Opportunity")
	sl.Content = "**$40B** market"
	if err := e.decks.UpdateSlide(sl); err != nil {
		t.Fatalf("update slide: %v", err)
	}

	svc := newExportService(e)
	data, contentType, err := svc.Export(ctxb(), d.ID, "html")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasPrefix(contentType, "text/html") {
		t.Errorf("contentType = %q", contentType)
	}
	html := string(data)
	if !strings.Contains(html, "<h2>Market Opportunity</h2>") {
		t.Errorf("missing slide heading:\n%s", html)
	}
	if !strings.Contains(html, "<strong>$40B</strong>") {
		t.Errorf("markdown not rendered:\n%s", html)
	}
}

func TestExportUnknownFormat(t *testing.T) {
	e := newTestEnv(t)
	d, _ := e.seedDeck(t, "Thank You")

	svc := newExportService(e)
	_, _, err := svc.Export(ctxb(), d.ID, "pptx")
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("err = %v, want ValidationError", err)
	}
}

func TestRegisterExternalRenderer(t *testing.T) {
	e := newTestEnv(t)
	d, _ := e.seedDeck(t, "Funding Ask")

	svc := newExportService(e)
	svc.Register("txt", renderFunc(func(_ context.Context, title string, slides []domain.SlideExport) ([]byte, string, error) {
		var sb strings.Builder
		for _, sl := range slides {
			sb.WriteString(sl.Title + "\n")
		}
		return []byte(sb.String()), "text/plain", nil
	}))

	data, _, err := svc.Export(ctxb(), d.ID, "txt")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if string(data) != "Funding Ask\n" {
		t.Errorf("data = %q", data)
	}

	formats := svc.Formats()
	want := []string{"html", "json", "txt"}
	if len(formats) != len(want) {
		t.Fatalf("formats = %v", formats)
	}
	for i := range want {
		if formats[i] != want[i] {
			t.Errorf("formats = %v, want %v", formats, want)
		}
	}
}

// renderFunc adapts a function to the Renderer interface.
type renderFunc func(ctx context.Context, title string, slides []domain.SlideExport) ([]byte, string, error)

func (f renderFunc) Render(ctx context.Context, title string, slides []domain.SlideExport) ([]byte, string, error) {
	return f(ctx, title, slides)
}
