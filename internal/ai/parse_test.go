package ai

import (
	"strings"
	"testing"

	"pitchdeck/internal/domain"
)

func TestParseAnalysisFullResponse(t *testing.T) {
	text := `SECTION: Overall Score
82

SECTION: Narrative Flow Analysis
The story builds well. Rating: Strong

SECTION: Visual Design Analysis
Slides look Polished overall.

SECTION: Data Credibility Analysis
Sources are cited. High credibility.

SECTION: Specific Feedback and Suggestions
Lead with the traction numbers.`

	result := parseAnalysis(text, true)
	if result.Score != 82 {
		t.Errorf("Score = %v, want 82", result.Score)
	}
	if result.NarrativeFlow != "Strong" {
		t.Errorf("NarrativeFlow = %q", result.NarrativeFlow)
	}
	if result.VisualDesign != "Polished" {
		t.Errorf("VisualDesign = %q", result.VisualDesign)
	}
	if result.DataCredibility != "High" {
		t.Errorf("DataCredibility = %q", result.DataCredibility)
	}
	if result.Feedback != "Lead with the traction numbers." {
		t.Errorf("Feedback = %q", result.Feedback)
	}
}

func TestParseAnalysisDefaults(t *testing.T) {
	result := parseAnalysis("the model rambled with no sections", true)
	if result.Score != 75 {
		t.Errorf("Score = %v, want default 75", result.Score)
	}
	if result.NarrativeFlow != "Medium" {
		t.Errorf("NarrativeFlow = %q, want middle of scale", result.NarrativeFlow)
	}
	if result.VisualDesign != "Decent" {
		t.Errorf("VisualDesign = %q", result.VisualDesign)
	}
	if result.DataCredibility != "Average" {
		t.Errorf("DataCredibility = %q", result.DataCredibility)
	}
}

func TestParseAnalysisDropsUnwantedFeedback(t *testing.T) {
	text := "SECTION: Specific Feedback and Suggestions\nSome feedback"
	result := parseAnalysis(text, false)
	if result.Feedback != "" {
		t.Errorf("Feedback = %q, want empty when not requested", result.Feedback)
	}
}

func TestDeriveRatingPrefersLongestMatch(t *testing.T) {
	got := deriveRating("the flow is very strong here", domain.NarrativeFlowScale)
	if got != "Very Strong" {
		t.Errorf("deriveRating = %q, want Very Strong", got)
	}
}

func TestSplitDeckContentGroupsUnderHeadings(t *testing.T) {
	text := `1. The Problem
Restaurants waste 30% of food.

2. Our Solution
Smart inventory tracking.`

	contents := splitDeckContent(text)
	if len(contents) != len(domain.StandardSlideTitles) {
		t.Fatalf("len = %d, want %d", len(contents), len(domain.StandardSlideTitles))
	}
	if !strings.Contains(contents[0], "Restaurants waste 30% of food.") {
		t.Errorf("problem slide = %q", contents[0])
	}
	if !strings.Contains(contents[1], "Smart inventory tracking.") {
		t.Errorf("solution slide = %q", contents[1])
	}
	// Slides the model skipped get their bare title.
	if contents[4] != "Traction" {
		t.Errorf("skipped slide = %q, want bare title", contents[4])
	}
}

func TestParseVisualDataJSONFences(t *testing.T) {
	raw := "```json\n[{\"name\":\"Q1\",\"value\":12}]\n```"
	data := parseVisualData(domain.VisualTypeBar, raw)
	if len(data.Points) != 1 || data.Points[0].Name != "Q1" || data.Points[0].Value != 12 {
		t.Errorf("Points = %+v", data.Points)
	}
}

func TestParseVisualDataFallsBackToSamples(t *testing.T) {
	data := parseVisualData(domain.VisualTypePie, "not json at all")
	want := SampleVisualData(domain.VisualTypePie)
	if len(data.Points) != len(want.Points) {
		t.Errorf("fallback Points = %+v, want sample data", data.Points)
	}

	table := parseVisualData(domain.VisualTypeTable, "{}")
	if table.Table == nil || len(table.Table.Columns) == 0 {
		t.Errorf("fallback Table = %+v, want sample table", table.Table)
	}
}

func TestParseVisualDataScatter(t *testing.T) {
	data := parseVisualData(domain.VisualTypeScatter, `[{"x":1,"y":2},{"x":3,"y":4}]`)
	if len(data.Scatter) != 2 || data.Scatter[1].Y != 4 {
		t.Errorf("Scatter = %+v", data.Scatter)
	}
}
