package storage

import (
	"database/sql"
	"fmt"
	"time"

	"pitchdeck/internal/domain"
)

// SnapshotStore implements domain.SnapshotStore using SQLite. One snapshot
// per deck; PutSnapshot replaces it.
type SnapshotStore struct {
	db *DB
}

func NewSnapshotStore(db *DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// GetSnapshot returns the deck's snapshot, or (nil, nil) when the deck has
// never been analyzed.
func (s *SnapshotStore) GetSnapshot(deckID string) (*domain.AnalysisSnapshot, error) {
	snap := &domain.AnalysisSnapshot{}
	err := s.db.Conn().QueryRow(
		`SELECT deck_id, score, narrative_flow, visual_design, data_credibility, feedback, fingerprint, analyzed_at
		 FROM analysis_snapshots WHERE deck_id = ?`, deckID,
	).Scan(&snap.DeckID, &snap.Score, &snap.NarrativeFlow, &snap.VisualDesign,
		&snap.DataCredibility, &snap.Feedback, &snap.Fingerprint, &snap.AnalyzedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return snap, nil
}

func (s *SnapshotStore) PutSnapshot(snap *domain.AnalysisSnapshot) error {
	snap.AnalyzedAt = time.Now()
	_, err := s.db.Conn().Exec(
		`INSERT INTO analysis_snapshots (deck_id, score, narrative_flow, visual_design, data_credibility, feedback, fingerprint, analyzed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(deck_id) DO UPDATE SET
			score = excluded.score,
			narrative_flow = excluded.narrative_flow,
			visual_design = excluded.visual_design,
			data_credibility = excluded.data_credibility,
			feedback = excluded.feedback,
			fingerprint = excluded.fingerprint,
			analyzed_at = excluded.analyzed_at`,
		snap.DeckID, snap.Score, snap.NarrativeFlow, snap.VisualDesign,
		snap.DataCredibility, snap.Feedback, snap.Fingerprint, snap.AnalyzedAt,
	)
	return err
}
