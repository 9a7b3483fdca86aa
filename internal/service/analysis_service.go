package service

import (
	"context"

	"pitchdeck/internal/ai"
	"pitchdeck/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Analysis Service — fingerprint-gated deck quality analysis
// ─────────────────────────────────────────────────────────────

// AnalysisService answers "how good is this deck" without paying for an AI
// call every time. Only the textual content and design notes of the slides
// participate in staleness detection; moving blocks around or swapping
// visuals does not invalidate the snapshot.
type AnalysisService struct {
	ai        ai.Client
	decks     domain.DeckStore
	snapshots domain.SnapshotStore
	emitter   EventEmitter
}

func NewAnalysisService(client ai.Client, decks domain.DeckStore, snapshots domain.SnapshotStore, emitter EventEmitter) *AnalysisService {
	return &AnalysisService{
		ai:        client,
		decks:     decks,
		snapshots: snapshots,
		emitter:   emitter,
	}
}

// Analyze returns the deck's quality assessment, serving the cached snapshot
// when the deck's fingerprint hasn't changed since it was taken and the
// snapshot already carries feedback. Otherwise a fresh analysis runs and the
// snapshot's fingerprint advances to the fingerprint at request time, so
// edits racing the in-flight call show up as stale on the next check.
func (s *AnalysisService) Analyze(ctx context.Context, deckID string, wantFeedback bool) (*domain.AnalysisSnapshot, error) {
	d, err := s.decks.GetDeck(deckID)
	if err != nil {
		return nil, err
	}

	// Recompute derived fields before fingerprinting, so an unsaved block
	// edit shows up as a change and the recorded fingerprint matches the
	// content actually analyzed.
	for i := range d.Slides {
		d.Slides[i].Materialize()
	}

	fp := d.Fingerprint()
	prev, err := s.snapshots.GetSnapshot(deckID)
	if err != nil {
		return nil, err
	}
	if prev != nil && !d.HasChangedSince(prev.Fingerprint) && prev.Feedback != "" {
		return prev, nil
	}

	exports := make([]domain.SlideExport, 0, len(d.Slides))
	for i := range d.Slides {
		exports = append(exports, domain.SlideExport{
			Title:   d.Slides[i].Title,
			Content: d.Slides[i].Content,
		})
	}

	result, err := s.ai.AnalyzeDeck(ctx, exports, wantFeedback)
	if err != nil {
		return nil, &domain.ExternalServiceError{Op: "analyzeDeck", Err: err}
	}

	snap := &domain.AnalysisSnapshot{
		DeckID:          deckID,
		Score:           result.Score,
		NarrativeFlow:   result.NarrativeFlow,
		VisualDesign:    result.VisualDesign,
		DataCredibility: result.DataCredibility,
		Feedback:        result.Feedback,
		Fingerprint:     fp,
	}
	if err := s.snapshots.PutSnapshot(snap); err != nil {
		return nil, err
	}
	s.emitter.Emit(ctx, "deck:analyzed", map[string]string{"deckId": deckID})
	return snap, nil
}
