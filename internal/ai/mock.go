package ai

import (
	"context"
	"strings"

	"pitchdeck/internal/domain"
)

// Mock is a Client for tests and local debugging that never touches the
// network. Function fields override individual calls; nil fields fall back
// to canned responses.
type Mock struct {
	GenerateDeckFunc       func(ctx context.Context, problem, solution string) ([]string, error)
	SlideContentFunc       func(ctx context.Context, req SlideContentRequest) (string, error)
	DesignSuggestionsFunc  func(ctx context.Context, req SlideContentRequest) (string, error)
	GenerateSuggestionFunc func(ctx context.Context, slideTitle, content, design string, kind domain.SuggestionKind) (string, error)
	VisualDataFunc         func(ctx context.Context, visualType domain.VisualType, contextText string) (domain.VisualData, error)
	AnalyzeDeckFunc        func(ctx context.Context, slides []domain.SlideExport, wantFeedback bool) (*AnalysisResult, error)
}

func (m *Mock) GenerateDeck(ctx context.Context, problem, solution string) ([]string, error) {
	if m.GenerateDeckFunc != nil {
		return m.GenerateDeckFunc(ctx, problem, solution)
	}
	contents := make([]string, len(domain.StandardSlideTitles))
	for i, title := range domain.StandardSlideTitles {
		contents[i] = title + ": generated content"
	}
	contents[0] = "The Problem: " + problem
	contents[1] = "Our Solution: " + solution
	return contents, nil
}

func (m *Mock) GenerateSlideContent(ctx context.Context, req SlideContentRequest) (string, error) {
	if m.SlideContentFunc != nil {
		return m.SlideContentFunc(ctx, req)
	}
	var sb strings.Builder
	sb.WriteString(req.SlideTitle)
	sb.WriteString("\n- generated point one\n- generated point two")
	return sb.String(), nil
}

func (m *Mock) GenerateDesignSuggestions(ctx context.Context, req SlideContentRequest) (string, error) {
	if m.DesignSuggestionsFunc != nil {
		return m.DesignSuggestionsFunc(ctx, req)
	}
	return "Use a clean two-column layout with a single accent color.", nil
}

func (m *Mock) GenerateSuggestion(ctx context.Context, slideTitle, content, design string, kind domain.SuggestionKind) (string, error) {
	if m.GenerateSuggestionFunc != nil {
		return m.GenerateSuggestionFunc(ctx, slideTitle, content, design, kind)
	}
	if kind == domain.SuggestionContent {
		return "Add a compelling statistic to the slide", nil
	}
	return "Use a blue background with white text for emphasis", nil
}

func (m *Mock) GenerateVisualData(ctx context.Context, visualType domain.VisualType, contextText string) (domain.VisualData, error) {
	if m.VisualDataFunc != nil {
		return m.VisualDataFunc(ctx, visualType, contextText)
	}
	return SampleVisualData(visualType), nil
}

func (m *Mock) AnalyzeDeck(ctx context.Context, slides []domain.SlideExport, wantFeedback bool) (*AnalysisResult, error) {
	if m.AnalyzeDeckFunc != nil {
		return m.AnalyzeDeckFunc(ctx, slides, wantFeedback)
	}
	result := &AnalysisResult{
		Score:           75,
		NarrativeFlow:   "Medium",
		VisualDesign:    "Decent",
		DataCredibility: "Average",
	}
	if wantFeedback {
		result.Feedback = "Tighten the traction slide and lead with numbers."
	}
	return result, nil
}
