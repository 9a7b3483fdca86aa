package ai

import (
	"context"

	"pitchdeck/internal/domain"
)

// Content generation modes for single-slide requests.
const (
	ModeDefault  = ""         // generate, or enhance existing content
	ModeOptimize = "optimize" // optimize for investors
	ModeImprove  = "improve"  // improve messaging
)

// SlideContentRequest asks for content of a single slide within the deck's
// problem/solution framing.
type SlideContentRequest struct {
	Problem        string
	Solution       string
	SlideTitle     string
	CurrentContent string
	Mode           string
}

// AnalysisResult is the raw outcome of a deck analysis call, before it is
// bound to a fingerprint and cached.
type AnalysisResult struct {
	Score           float64
	NarrativeFlow   string
	VisualDesign    string
	DataCredibility string
	Feedback        string
}

// Client is the external AI collaborator. Implementations call a remote
// model; tests use Mock. Every method is a single request-response call with
// no retry — retry policy belongs to callers.
type Client interface {
	// GenerateDeck produces one content string per standard slide title,
	// in StandardSlideTitles order.
	GenerateDeck(ctx context.Context, problem, solution string) ([]string, error)

	GenerateSlideContent(ctx context.Context, req SlideContentRequest) (string, error)

	GenerateDesignSuggestions(ctx context.Context, req SlideContentRequest) (string, error)

	// GenerateSuggestion returns a single actionable improvement for the
	// slide's content or design.
	GenerateSuggestion(ctx context.Context, slideTitle, content, design string, kind domain.SuggestionKind) (string, error)

	// GenerateVisualData produces chart/table data for a visual block.
	GenerateVisualData(ctx context.Context, visualType domain.VisualType, contextText string) (domain.VisualData, error)

	AnalyzeDeck(ctx context.Context, slides []domain.SlideExport, wantFeedback bool) (*AnalysisResult, error)
}
