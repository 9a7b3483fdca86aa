package domain

import "time"

// Rating scales for the three analysis categories. The AI collaborator is
// asked to pick one value from each scale; parsing falls back to the middle
// value when the response doesn't name one.
var (
	NarrativeFlowScale   = []string{"Really Weak", "Weak", "Medium", "Strong", "Very Strong"}
	VisualDesignScale    = []string{"Amateur", "Basic", "Decent", "Polished", "Professional"}
	DataCredibilityScale = []string{"Low", "Average", "High"}
)

// AnalysisSnapshot is a cached AI quality assessment of a deck, tied to the
// fingerprint of the content it was computed against. It is replaced on the
// next successful analysis, never mutated; a fingerprint mismatch makes it
// stale without deleting it.
type AnalysisSnapshot struct {
	DeckID          string    `json:"deckId"`
	Score           float64   `json:"score"` // 0-100
	NarrativeFlow   string    `json:"narrativeFlow"`
	VisualDesign    string    `json:"visualDesign"`
	DataCredibility string    `json:"dataCredibility"`
	Feedback        string    `json:"feedback,omitempty"`
	Fingerprint     string    `json:"fingerprint"`
	AnalyzedAt      time.Time `json:"analyzedAt"`
}

type SnapshotStore interface {
	GetSnapshot(deckID string) (*AnalysisSnapshot, error)
	PutSnapshot(s *AnalysisSnapshot) error
}
