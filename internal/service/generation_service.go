package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"pitchdeck/internal/ai"
	"pitchdeck/internal/domain"
	"pitchdeck/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Generation Service — bulk and per-slide AI content generation
// ─────────────────────────────────────────────────────────────

// genCacheTTL is how long a bulk-generation response is reused for an
// identical problem/solution pair, to save model costs.
const genCacheTTL = time.Hour

type genCacheEntry struct {
	contents []string
	at       time.Time
}

type genCache struct {
	mu      sync.Mutex
	entries map[string]genCacheEntry
}

func newGenCache() *genCache {
	return &genCache{entries: make(map[string]genCacheEntry)}
}

func (c *genCache) get(key string) ([]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Since(e.at) >= genCacheTTL {
		delete(c.entries, key)
		return nil, false
	}
	return e.contents, true
}

func (c *genCache) put(key string, contents []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = genCacheEntry{contents: contents, at: time.Now()}
}

// GenerationService drives deck and slide content generation against the AI
// collaborator. Bulk generation fills slide content directly and leaves the
// block list empty; blocks appear once the user opens the block editor.
type GenerationService struct {
	ai      ai.Client
	store   *storage.DeckStore
	blocks  *BlockService
	guard   *GenGuard
	emitter EventEmitter
	cache   *genCache
}

func NewGenerationService(client ai.Client, store *storage.DeckStore, blocks *BlockService, guard *GenGuard, emitter EventEmitter) *GenerationService {
	return &GenerationService{
		ai:      client,
		store:   store,
		blocks:  blocks,
		guard:   guard,
		emitter: emitter,
		cache:   newGenCache(),
	}
}

// GenerateDeck creates a full deck from a problem/solution pair: one slide
// per standard section, content filled by the model. The per-slide design
// pass runs in the background and applies each result as it arrives.
func (s *GenerationService) GenerateDeck(ctx context.Context, problem, solution string) (*domain.Deck, error) {
	if problem == "" {
		return nil, &domain.ValidationError{Field: "problem", Reason: "must not be empty"}
	}
	if solution == "" {
		return nil, &domain.ValidationError{Field: "solution", Reason: "must not be empty"}
	}

	cacheKey := problem + ":" + solution
	contents, ok := s.cache.get(cacheKey)
	if !ok {
		var err error
		contents, err = s.ai.GenerateDeck(ctx, problem, solution)
		if err != nil {
			return nil, &domain.ExternalServiceError{Op: "generateDeck", Err: err}
		}
		s.cache.put(cacheKey, contents)
	}

	d := &domain.Deck{
		ID:          uuid.New().String(),
		Title:       problem,
		Description: solution,
	}
	if err := s.store.CreateDeck(d); err != nil {
		return nil, fmt.Errorf("create deck: %w", err)
	}
	for i, title := range domain.StandardSlideTitles {
		content := ""
		if i < len(contents) {
			content = contents[i]
		}
		sl := domain.Slide{
			ID:      uuid.New().String(),
			DeckID:  d.ID,
			Title:   title,
			Content: content,
			Order:   i,
		}
		if err := s.store.CreateSlide(&sl); err != nil {
			return nil, fmt.Errorf("create slide %q: %w", title, err)
		}
		d.Slides = append(d.Slides, sl)
	}
	s.emitter.Emit(ctx, "deck:generated", map[string]string{"deckId": d.ID})

	go func() {
		if err := s.RefreshDesigns(context.Background(), d.ID); err != nil {
			log.Printf("design pass: deck %s: %v", d.ID, err)
		}
	}()

	return d, nil
}

// RefreshDesigns requests a design suggestion for every slide of the deck,
// sequentially, applying each result as soon as it arrives. A slide edited
// while its request was in flight keeps the user's version — the stale write
// is dropped by the generation guard. Per-slide failures are isolated: they
// are logged and the slide's design is left unchanged.
func (s *GenerationService) RefreshDesigns(ctx context.Context, deckID string) error {
	d, err := s.store.GetDeck(deckID)
	if err != nil {
		return err
	}
	for i := range d.Slides {
		sl := &d.Slides[i]
		gen := s.guard.Current(sl.ID)

		design, err := s.ai.GenerateDesignSuggestions(ctx, ai.SlideContentRequest{
			Problem:        d.Title,
			Solution:       d.Description,
			SlideTitle:     sl.Title,
			CurrentContent: sl.Content,
		})
		if err != nil {
			log.Printf("design pass: slide %s (%s): %v", sl.ID, sl.Title, err)
			continue
		}
		if !s.guard.StillCurrent(sl.ID, gen) {
			log.Printf("design pass: slide %s edited mid-flight, dropping result", sl.ID)
			continue
		}

		fresh, err := s.store.GetSlide(sl.ID)
		if err != nil {
			log.Printf("design pass: reload slide %s: %v", sl.ID, err)
			continue
		}
		fresh.Design = design
		if err := s.store.UpdateSlide(fresh); err != nil {
			log.Printf("design pass: update slide %s: %v", sl.ID, err)
			continue
		}
		s.emitter.Emit(ctx, "slide:design-updated", map[string]string{"slideId": sl.ID})
	}
	return nil
}

// GenerateSlideContent regenerates one slide's content. Mode "" enhances or
// generates, "optimize" targets investor concerns, "improve" targets
// messaging. The result is applied to the slide only while it has no blocks;
// otherwise the blocks stay the source of truth and the caller receives the
// text to place manually.
func (s *GenerationService) GenerateSlideContent(ctx context.Context, slideID, mode string) (string, error) {
	sl, err := s.store.GetSlide(slideID)
	if err != nil {
		return "", err
	}
	if !domain.IsStandardSlideTitle(sl.Title) {
		return "", &domain.ValidationError{Field: "slideTitle", Reason: fmt.Sprintf("%q is not a standard slide", sl.Title)}
	}
	d, err := s.store.GetDeck(sl.DeckID)
	if err != nil {
		return "", err
	}

	gen := s.guard.Current(slideID)
	content, err := s.ai.GenerateSlideContent(ctx, ai.SlideContentRequest{
		Problem:        d.Title,
		Solution:       d.Description,
		SlideTitle:     sl.Title,
		CurrentContent: sl.Content,
		Mode:           mode,
	})
	if err != nil {
		return "", &domain.ExternalServiceError{Op: "generateSlideContent", SlideID: slideID, Err: err}
	}

	if len(sl.Blocks) == 0 && s.guard.StillCurrent(slideID, gen) {
		sl.Content = content
		if err := s.store.UpdateSlide(sl); err != nil {
			return "", err
		}
		s.guard.Bump(slideID)
		s.emitter.Emit(ctx, "slide:updated", map[string]string{"slideId": slideID})
	}
	return content, nil
}

// AddDataVisualization asks the model for chart data in the slide's context
// and appends it as a visual block.
func (s *GenerationService) AddDataVisualization(ctx context.Context, slideID string, visualType domain.VisualType) (*domain.Block, error) {
	sl, err := s.store.GetSlide(slideID)
	if err != nil {
		return nil, err
	}
	data, err := s.ai.GenerateVisualData(ctx, visualType, sl.Title+": "+sl.Content)
	if err != nil {
		return nil, &domain.ExternalServiceError{Op: "generateVisualData", SlideID: slideID, Err: err}
	}
	return s.blocks.AddVisualBlock(ctx, slideID, visualType, data)
}
