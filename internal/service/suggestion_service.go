package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"pitchdeck/internal/ai"
	"pitchdeck/internal/domain"
	"pitchdeck/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Suggestion Service — per-slide AI suggestion orchestration
// ─────────────────────────────────────────────────────────────

// SlotState is the lifecycle of a slide's suggestion set.
type SlotState string

const (
	StateIdle     SlotState = "idle"
	StateFetching SlotState = "fetching"
	StateReady    SlotState = "ready"
	StateApplying SlotState = "applying"
)

// Slot indexes into a slide's two-element suggestion list.
const (
	SlotContent = 0
	SlotDesign  = 1
)

// visualVocabulary is matched (case-insensitive) against suggestion text to
// spot suggestions describing a chart or table. A match still only appends a
// textual note to content; no visual block is created automatically.
var visualVocabulary = []string{
	"pie chart",
	"bar chart", "bar graph",
	"line chart", "line graph",
	"scatter plot", "scatter chart",
	"table",
}

func describesVisual(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range visualVocabulary {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

type slideSuggestions struct {
	state SlotState
	list  []domain.Suggestion // nil or [content, design]
}

// SuggestionService keeps one suggestion set per slide: a fixed two-slot list
// (content first, design second). Refresh replaces the whole list atomically;
// applying a suggestion replaces only its own slot.
type SuggestionService struct {
	ai      ai.Client
	store   *storage.DeckStore
	guard   *GenGuard
	emitter EventEmitter

	mu     sync.Mutex
	active string
	slides map[string]*slideSuggestions
}

func NewSuggestionService(client ai.Client, store *storage.DeckStore, guard *GenGuard, emitter EventEmitter) *SuggestionService {
	return &SuggestionService{
		ai:      client,
		store:   store,
		guard:   guard,
		emitter: emitter,
		slides:  make(map[string]*slideSuggestions),
	}
}

// SetActiveSlide switches focus to another slide, discarding the previous
// slide's suggestion set.
func (s *SuggestionService) SetActiveSlide(slideID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != "" && s.active != slideID {
		delete(s.slides, s.active)
	}
	s.active = slideID
}

// Suggestions returns the slide's current suggestion list and state.
func (s *SuggestionService) Suggestions(slideID string) ([]domain.Suggestion, SlotState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.slides[slideID]
	if !ok {
		return nil, StateIdle
	}
	out := make([]domain.Suggestion, len(entry.list))
	copy(out, entry.list)
	return out, entry.state
}

// RefreshAll fetches one content and one design suggestion for the slide with
// two concurrent calls, joining both before anything becomes visible. Either
// failure rejects the whole update: the previous list stays as it was and the
// caller gets an ExternalServiceError.
func (s *SuggestionService) RefreshAll(ctx context.Context, slideID string) ([]domain.Suggestion, error) {
	sl, err := s.store.GetSlide(slideID)
	if err != nil {
		return nil, err
	}
	gen := s.guard.Current(slideID)
	s.setState(slideID, StateFetching)

	var (
		wg         sync.WaitGroup
		content    string
		design     string
		contentErr error
		designErr  error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		content, contentErr = s.ai.GenerateSuggestion(ctx, sl.Title, sl.Content, sl.Design, domain.SuggestionContent)
	}()
	go func() {
		defer wg.Done()
		design, designErr = s.ai.GenerateSuggestion(ctx, sl.Title, sl.Content, sl.Design, domain.SuggestionDesign)
	}()
	wg.Wait()

	if contentErr != nil || designErr != nil {
		s.restoreState(slideID)
		err := contentErr
		if err == nil {
			err = designErr
		}
		return nil, &domain.ExternalServiceError{Op: "refreshSuggestions", SlideID: slideID, Err: err}
	}
	if !s.guard.StillCurrent(slideID, gen) {
		s.restoreState(slideID)
		return nil, nil // superseded by a newer edit, drop silently
	}

	list := []domain.Suggestion{
		{Kind: domain.SuggestionContent, Text: content, SlideID: slideID},
		{Kind: domain.SuggestionDesign, Text: design, SlideID: slideID},
	}
	s.mu.Lock()
	s.slides[slideID] = &slideSuggestions{state: StateReady, list: list}
	s.mu.Unlock()

	s.emitter.Emit(ctx, "suggestions:ready", map[string]string{"slideId": slideID})
	out := make([]domain.Suggestion, len(list))
	copy(out, list)
	return out, nil
}

// Apply accepts the suggestion in the given slot. Suggestions describing a
// chart or table append a textual note to content regardless of kind; other
// content suggestions append to content and design suggestions to design.
// The append is a plain newline join with no deduplication, so accepting the
// same slot twice appends its text twice. Afterwards a replacement is fetched
// for the applied slot only.
func (s *SuggestionService) Apply(ctx context.Context, slideID string, slot int) (*domain.Slide, error) {
	if slot != SlotContent && slot != SlotDesign {
		return nil, &domain.ValidationError{Field: "slot", Reason: fmt.Sprintf("no suggestion slot %d", slot)}
	}

	s.mu.Lock()
	entry, ok := s.slides[slideID]
	if !ok || entry.state != StateReady || slot >= len(entry.list) {
		s.mu.Unlock()
		return nil, &domain.ValidationError{Field: "slot", Reason: "no suggestion ready in this slot"}
	}
	sug := entry.list[slot]
	entry.state = StateApplying
	s.mu.Unlock()

	sl, err := s.store.GetSlide(slideID)
	if err != nil {
		s.setState(slideID, StateReady)
		return nil, err
	}

	if describesVisual(sug.Text) || sug.Kind == domain.SuggestionContent {
		sl.Content = appendLine(sl.Content, sug.Text)
	} else {
		sl.Design = appendLine(sl.Design, sug.Text)
	}
	if err := s.store.UpdateSlide(sl); err != nil {
		s.setState(slideID, StateReady)
		return nil, err
	}
	s.guard.Bump(slideID)
	s.emitter.Emit(ctx, "slide:updated", map[string]string{"slideId": slideID})

	s.refreshSlot(ctx, sl, slot)
	return sl, nil
}

// refreshSlot replaces one slot's suggestion, leaving the other untouched. A
// failed replacement keeps the applied suggestion in the slot.
func (s *SuggestionService) refreshSlot(ctx context.Context, sl *domain.Slide, slot int) {
	s.setState(sl.ID, StateFetching)
	gen := s.guard.Current(sl.ID)

	kind := domain.SuggestionContent
	if slot == SlotDesign {
		kind = domain.SuggestionDesign
	}
	text, err := s.ai.GenerateSuggestion(ctx, sl.Title, sl.Content, sl.Design, kind)

	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.slides[sl.ID]
	if !ok {
		return
	}
	entry.state = StateReady
	if err != nil {
		log.Printf("suggestions: replacement for slide %s slot %d: %v", sl.ID, slot, err)
		return
	}
	if !s.guard.StillCurrent(sl.ID, gen) {
		return
	}
	if slot < len(entry.list) {
		entry.list[slot] = domain.Suggestion{Kind: kind, Text: text, SlideID: sl.ID}
	}
}

func (s *SuggestionService) setState(slideID string, st SlotState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.slides[slideID]
	if !ok {
		entry = &slideSuggestions{}
		s.slides[slideID] = entry
	}
	entry.state = st
}

// restoreState resolves a failed fetch back to Ready or Idle depending on
// whether a previous list survives. Never leaves a slide stuck in Fetching.
func (s *SuggestionService) restoreState(slideID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.slides[slideID]
	if !ok {
		return
	}
	if len(entry.list) > 0 {
		entry.state = StateReady
	} else {
		entry.state = StateIdle
	}
}

func appendLine(existing, text string) string {
	if existing == "" {
		return text
	}
	return existing + "\n" + text
}
