package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"pitchdeck/internal/domain"
	"pitchdeck/internal/storage"
	"pitchdeck/internal/theme"
)

// ─────────────────────────────────────────────────────────────
// Deck Service — business logic for decks and slides
// ─────────────────────────────────────────────────────────────

// DeckService manages decks and slides. Save is the single materialization
// boundary: every persisted deck has derived fields recomputed from blocks
// first, so content/visuals can never drift from the block list.
type DeckService struct {
	store   *storage.DeckStore
	blocks  *storage.BlockStore
	themes  *theme.Registry
	guard   *GenGuard
	emitter EventEmitter

	autosave *cron.Cron
}

// NewDeckService creates a DeckService. themes may be nil when theme
// validation is not wanted.
func NewDeckService(store *storage.DeckStore, blocks *storage.BlockStore, themes *theme.Registry, guard *GenGuard, emitter EventEmitter) *DeckService {
	return &DeckService{
		store:   store,
		blocks:  blocks,
		themes:  themes,
		guard:   guard,
		emitter: emitter,
	}
}

// ── Decks ──────────────────────────────────────────────────

func (s *DeckService) CreateDeck(title, description string) (*domain.Deck, error) {
	if title == "" {
		return nil, &domain.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	d := &domain.Deck{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
	}
	if err := s.store.CreateDeck(d); err != nil {
		return nil, fmt.Errorf("create deck: %w", err)
	}
	return d, nil
}

func (s *DeckService) GetDeck(id string) (*domain.Deck, error) {
	return s.store.GetDeck(id)
}

func (s *DeckService) ListDecks() ([]domain.Deck, error) {
	return s.store.ListDecks()
}

// DeckStats are dashboard counts across all decks.
type DeckStats struct {
	Decks  int `json:"decks"`
	Slides int `json:"slides"`
}

// Stats counts decks and slides for the dashboard view.
func (s *DeckService) Stats() (DeckStats, error) {
	decks, err := s.store.ListDecks()
	if err != nil {
		return DeckStats{}, err
	}
	stats := DeckStats{Decks: len(decks)}
	for _, d := range decks {
		slides, err := s.store.ListSlides(d.ID)
		if err != nil {
			return DeckStats{}, err
		}
		stats.Slides += len(slides)
	}
	return stats, nil
}

func (s *DeckService) DeleteDeck(ctx context.Context, id string) error {
	if err := s.store.DeleteDeck(id); err != nil {
		return err
	}
	s.emitter.Emit(ctx, "deck:deleted", map[string]string{"deckId": id})
	return nil
}

// Save materializes every slide's derived fields and persists the whole deck
// atomically.
func (s *DeckService) Save(ctx context.Context, deckID string) (*domain.Deck, error) {
	d, err := s.store.GetDeck(deckID)
	if err != nil {
		return nil, err
	}
	for i := range d.Slides {
		d.Slides[i].Materialize()
	}
	if err := s.store.SaveDeck(d); err != nil {
		return nil, fmt.Errorf("save deck: %w", err)
	}
	s.emitter.Emit(ctx, "deck:saved", map[string]string{"deckId": d.ID})
	return d, nil
}

// ── Slides ─────────────────────────────────────────────────

// AddSlide appends a slide with the given title — a standard section name or
// a custom label, both are allowed.
func (s *DeckService) AddSlide(ctx context.Context, deckID, title string) (*domain.Slide, error) {
	if title == "" {
		return nil, &domain.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	existing, err := s.store.ListSlides(deckID)
	if err != nil {
		return nil, err
	}
	sl := &domain.Slide{
		ID:     uuid.New().String(),
		DeckID: deckID,
		Title:  title,
		Order:  len(existing),
	}
	if err := s.store.CreateSlide(sl); err != nil {
		return nil, fmt.Errorf("add slide: %w", err)
	}
	s.emitter.Emit(ctx, "slide:added", map[string]string{"deckId": deckID, "slideId": sl.ID})
	return sl, nil
}

func (s *DeckService) GetSlide(id string) (*domain.Slide, error) {
	return s.store.GetSlide(id)
}

// UpdateSlideContent edits a slide's content directly. Only legal while the
// slide has no blocks — once blocks exist they are the source of truth and
// content is derived.
func (s *DeckService) UpdateSlideContent(ctx context.Context, slideID, content string) error {
	sl, err := s.store.GetSlide(slideID)
	if err != nil {
		return err
	}
	if len(sl.Blocks) > 0 {
		return &domain.ValidationError{Field: "content", Reason: "derived from blocks; edit the blocks instead"}
	}
	sl.Content = content
	if err := s.store.UpdateSlide(sl); err != nil {
		return err
	}
	s.guard.Bump(slideID)
	s.emitter.Emit(ctx, "slide:updated", map[string]string{"slideId": slideID})
	return nil
}

// UpdateSlideDesign edits a slide's design notes. Design is never derived.
func (s *DeckService) UpdateSlideDesign(ctx context.Context, slideID, design string) error {
	sl, err := s.store.GetSlide(slideID)
	if err != nil {
		return err
	}
	sl.Design = design
	if err := s.store.UpdateSlide(sl); err != nil {
		return err
	}
	s.guard.Bump(slideID)
	s.emitter.Emit(ctx, "slide:updated", map[string]string{"slideId": slideID})
	return nil
}

// SetSlideImage attaches an image to a slide, clearing any video.
func (s *DeckService) SetSlideImage(ctx context.Context, slideID, url string) error {
	sl, err := s.store.GetSlide(slideID)
	if err != nil {
		return err
	}
	sl.SetImageURL(url)
	if err := s.store.UpdateSlide(sl); err != nil {
		return err
	}
	s.emitter.Emit(ctx, "slide:updated", map[string]string{"slideId": slideID})
	return nil
}

// SetSlideVideo attaches a video to a slide, clearing any image.
func (s *DeckService) SetSlideVideo(ctx context.Context, slideID, url string) error {
	sl, err := s.store.GetSlide(slideID)
	if err != nil {
		return err
	}
	sl.SetVideoURL(url)
	if err := s.store.UpdateSlide(sl); err != nil {
		return err
	}
	s.emitter.Emit(ctx, "slide:updated", map[string]string{"slideId": slideID})
	return nil
}

// SetSlideTheme assigns a named presentation style to a slide.
func (s *DeckService) SetSlideTheme(ctx context.Context, slideID, themeName string) error {
	if themeName != "" && s.themes != nil {
		if _, ok := s.themes.Get(themeName); !ok {
			return &domain.ValidationError{Field: "theme", Reason: fmt.Sprintf("unknown theme %q", themeName)}
		}
	}
	sl, err := s.store.GetSlide(slideID)
	if err != nil {
		return err
	}
	sl.Theme = themeName
	if err := s.store.UpdateSlide(sl); err != nil {
		return err
	}
	s.emitter.Emit(ctx, "slide:updated", map[string]string{"slideId": slideID})
	return nil
}

// ── Autosave ───────────────────────────────────────────────

// StartAutosave schedules a periodic save of every deck on the given cron
// expression. Saving re-materializes derived fields, so a crash never loses
// more than one interval of block edits.
func (s *DeckService) StartAutosave(ctx context.Context, cronExpr string) error {
	if cronExpr == "" {
		return nil
	}
	c := cron.New()
	_, err := c.AddFunc(cronExpr, func() {
		decks, err := s.store.ListDecks()
		if err != nil {
			log.Printf("autosave: list decks: %v", err)
			return
		}
		for _, d := range decks {
			if _, err := s.Save(ctx, d.ID); err != nil {
				log.Printf("autosave: deck %s: %v", d.ID, err)
			}
		}
	})
	if err != nil {
		return fmt.Errorf("autosave: invalid cron expression %q: %w", cronExpr, err)
	}
	c.Start()
	s.autosave = c
	log.Printf("autosave: scheduled %q", cronExpr)
	return nil
}

// StopAutosave stops the autosave schedule, waiting for a running save.
func (s *DeckService) StopAutosave() {
	if s.autosave != nil {
		<-s.autosave.Stop().Done()
		s.autosave = nil
	}
}
