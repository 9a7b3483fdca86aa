package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"pitchdeck/internal/ai"
	"pitchdeck/internal/domain"
	"pitchdeck/internal/service"
)

func newGenerationService(e *testEnv, client ai.Client) *service.GenerationService {
	blocks := service.NewBlockService(e.blocks, e.decks, e.guard, e.emitter)
	return service.NewGenerationService(client, e.decks, blocks, e.guard, e.emitter)
}

func TestGenerateDeckValidatesInput(t *testing.T) {
	e := newTestEnv(t)
	svc := newGenerationService(e, &ai.Mock{})

	var verr *domain.ValidationError
	if _, err := svc.GenerateDeck(ctxb(), "", "solution"); !errors.As(err, &verr) {
		t.Errorf("empty problem: err = %v, want ValidationError", err)
	}
	if _, err := svc.GenerateDeck(ctxb(), "problem", ""); !errors.As(err, &verr) {
		t.Errorf("empty solution: err = %v, want ValidationError", err)
	}
}

func TestGenerateDeckCreatesStandardSlides(t *testing.T) {
	e := newTestEnv(t)
	svc := newGenerationService(e, &ai.Mock{})

	d, err := svc.GenerateDeck(ctxb(), "Restaurants waste 30% of food", "Smart inventory tracking")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(d.Slides) != len(domain.StandardSlideTitles) {
		t.Fatalf("len(slides) = %d, want %d", len(d.Slides), len(domain.StandardSlideTitles))
	}
	for i, sl := range d.Slides {
		if sl.Title != domain.StandardSlideTitles[i] {
			t.Errorf("slide %d title = %q, want %q", i, sl.Title, domain.StandardSlideTitles[i])
		}
		if sl.Content == "" {
			t.Errorf("slide %d has empty content", i)
		}
		if len(sl.Blocks) != 0 {
			t.Errorf("slide %d has blocks fresh from generation", i)
		}
	}

	// The deck is persisted, not just returned.
	stored, err := e.decks.GetDeck(d.ID)
	if err != nil {
		t.Fatalf("get deck: %v", err)
	}
	if len(stored.Slides) != len(d.Slides) {
		t.Errorf("stored slides = %d", len(stored.Slides))
	}
}

func TestGenerateDeckReusesCachedContent(t *testing.T) {
	e := newTestEnv(t)

	var mu sync.Mutex
	calls := 0
	client := &ai.Mock{
		GenerateDeckFunc: func(_ context.Context, problem, solution string) ([]string, error) {
			mu.Lock()
			calls++
			mu.Unlock()
			contents := make([]string, len(domain.StandardSlideTitles))
			for i := range contents {
				contents[i] = "cached content"
			}
			return contents, nil
		},
	}
	svc := newGenerationService(e, client)

	if _, err := svc.GenerateDeck(ctxb(), "p", "s"); err != nil {
		t.Fatalf("first generate: %v", err)
	}
	if _, err := svc.GenerateDeck(ctxb(), "p", "s"); err != nil {
		t.Fatalf("second generate: %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Errorf("model calls = %d, want 1 (second request served from cache)", calls)
	}
}

func TestRefreshDesignsIsolatesFailures(t *testing.T) {
	e := newTestEnv(t)
	d, _ := e.seedDeck(t, "The Problem")
	sl2 := &domain.Slide{ID: "s2", DeckID: d.ID, Title: "Our Solution", Order: 1}
	if err := e.decks.CreateSlide(sl2); err != nil {
		t.Fatalf("create slide: %v", err)
	}

	client := &ai.Mock{
		DesignSuggestionsFunc: func(_ context.Context, req ai.SlideContentRequest) (string, error) {
			if req.SlideTitle == "The Problem" {
				return "", errors.New("model hiccup")
			}
			return "Clean layout, one accent color", nil
		},
	}
	svc := newGenerationService(e, client)

	if err := svc.RefreshDesigns(ctxb(), d.ID); err != nil {
		t.Fatalf("refresh designs: %v", err)
	}

	fresh, err := e.decks.GetDeck(d.ID)
	if err != nil {
		t.Fatalf("get deck: %v", err)
	}
	if fresh.Slides[0].Design != "" {
		t.Errorf("failed slide design = %q, want unchanged", fresh.Slides[0].Design)
	}
	if fresh.Slides[1].Design != "Clean layout, one accent color" {
		t.Errorf("second slide design = %q", fresh.Slides[1].Design)
	}
}

func TestRefreshDesignsDropsStaleResults(t *testing.T) {
	e := newTestEnv(t)
	d, sl := e.seedDeck(t, "The Problem")

	// The user edits the slide while the design call is in flight.
	client := &ai.Mock{
		DesignSuggestionsFunc: func(_ context.Context, req ai.SlideContentRequest) (string, error) {
			e.guard.Bump(sl.ID)
			return "stale design", nil
		},
	}
	svc := newGenerationService(e, client)

	if err := svc.RefreshDesigns(ctxb(), d.ID); err != nil {
		t.Fatalf("refresh designs: %v", err)
	}
	fresh, err := e.decks.GetSlide(sl.ID)
	if err != nil {
		t.Fatalf("get slide: %v", err)
	}
	if fresh.Design == "stale design" {
		t.Error("stale design applied despite newer edit")
	}
}

func TestGenerateSlideContentRejectsCustomSlides(t *testing.T) {
	e := newTestEnv(t)
	_, sl := e.seedDeck(t, "My Custom Section")
	svc := newGenerationService(e, &ai.Mock{})

	_, err := svc.GenerateSlideContent(ctxb(), sl.ID, ai.ModeDefault)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("err = %v, want ValidationError for non-standard title", err)
	}
}

func TestGenerateSlideContentAppliesToBlocklessSlide(t *testing.T) {
	e := newTestEnv(t)
	_, sl := e.seedDeck(t, "Traction")
	svc := newGenerationService(e, &ai.Mock{})

	content, err := svc.GenerateSlideContent(ctxb(), sl.ID, ai.ModeOptimize)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if content == "" {
		t.Fatal("empty content")
	}
	fresh, err := e.decks.GetSlide(sl.ID)
	if err != nil {
		t.Fatalf("get slide: %v", err)
	}
	if fresh.Content != content {
		t.Errorf("slide content = %q, want applied %q", fresh.Content, content)
	}
}

func TestAddDataVisualizationCreatesVisualBlock(t *testing.T) {
	e := newTestEnv(t)
	_, sl := e.seedDeck(t, "Financial Projections")
	svc := newGenerationService(e, &ai.Mock{})

	b, err := svc.AddDataVisualization(ctxb(), sl.ID, domain.VisualTypeLine)
	if err != nil {
		t.Fatalf("add visualization: %v", err)
	}
	if b.Type != domain.BlockTypeVisual || b.VisualType != domain.VisualTypeLine {
		t.Errorf("block = %s/%s", b.Type, b.VisualType)
	}
	if len(b.Data.Points) == 0 {
		t.Error("visual block has no data")
	}
}
