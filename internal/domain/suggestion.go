package domain

type SuggestionKind string

const (
	SuggestionContent SuggestionKind = "Content"
	SuggestionDesign  SuggestionKind = "Design"
)

// Suggestion is an AI-proposed improvement scoped to one slide. Suggestions
// live in fixed slots per slide (content first, design second); accepting one
// replaces only its own slot.
type Suggestion struct {
	Kind    SuggestionKind `json:"kind"`
	Text    string         `json:"text"`
	SlideID string         `json:"slideId"`
}
