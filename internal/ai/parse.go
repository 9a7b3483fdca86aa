package ai

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"pitchdeck/internal/domain"
)

var scoreRe = regexp.MustCompile(`(\d+)`)

func trimContent(s string) string {
	return strings.TrimSpace(s)
}

// parseAnalysis splits a SECTION:-delimited analysis response into the
// structured result. Missing sections fall back to defaults rather than
// failing the whole analysis.
func parseAnalysis(text string, wantFeedback bool) *AnalysisResult {
	result := &AnalysisResult{
		Score:           75,
		NarrativeFlow:   middleOf(domain.NarrativeFlowScale),
		VisualDesign:    middleOf(domain.VisualDesignScale),
		DataCredibility: middleOf(domain.DataCredibilityScale),
	}

	sections := strings.Split(text, "SECTION:")
	if len(sections) > 1 {
		sections = sections[1:]
	}
	for _, section := range sections {
		section = strings.TrimSpace(section)
		switch {
		case strings.Contains(section, "Overall Score"):
			if m := scoreRe.FindString(section); m != "" {
				if v, err := strconv.ParseFloat(m, 64); err == nil && v <= 100 {
					result.Score = v
				}
			}
		case strings.Contains(section, "Narrative Flow Analysis"):
			result.NarrativeFlow = deriveRating(section, domain.NarrativeFlowScale)
		case strings.Contains(section, "Visual Design Analysis"):
			result.VisualDesign = deriveRating(section, domain.VisualDesignScale)
		case strings.Contains(section, "Data Credibility Analysis"):
			result.DataCredibility = deriveRating(section, domain.DataCredibilityScale)
		case strings.Contains(section, "Specific Feedback and Suggestions"):
			result.Feedback = strings.TrimSpace(strings.Replace(section, "Specific Feedback and Suggestions", "", 1))
		}
	}
	if !wantFeedback {
		result.Feedback = ""
	}
	return result
}

// deriveRating scans section text for a scale keyword. Longer values are
// checked first so "Very Strong" isn't matched as "Strong". Falls back to
// the middle of the scale.
func deriveRating(section string, scale []string) string {
	lower := strings.ToLower(section)
	best := ""
	for _, v := range scale {
		if strings.Contains(lower, strings.ToLower(v)) && len(v) > len(best) {
			best = v
		}
	}
	if best == "" {
		return middleOf(scale)
	}
	return best
}

func middleOf(scale []string) string {
	return scale[len(scale)/2]
}

// splitDeckContent distributes a bulk-generation response across the
// standard slide titles. Lines are grouped under the most recent standard
// heading; slides the model skipped get their bare title as content.
func splitDeckContent(text string) []string {
	contents := make([]string, len(domain.StandardSlideTitles))

	current := -1
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if idx := matchStandardTitle(line); idx >= 0 {
			current = idx
		}
		if current < 0 {
			continue
		}
		if contents[current] != "" {
			contents[current] += "\n"
		}
		contents[current] += line
	}

	for i, c := range contents {
		if c == "" {
			contents[i] = domain.StandardSlideTitles[i]
		}
	}
	return contents
}

func matchStandardTitle(line string) int {
	lower := strings.ToLower(line)
	for i, title := range domain.StandardSlideTitles {
		if strings.Contains(lower, strings.ToLower(title)) {
			return i
		}
	}
	return -1
}

// parseVisualData decodes the model's JSON into the shape for the requested
// visual type. Unparseable responses fall back to sample data so a chart
// block is never created empty.
func parseVisualData(visualType domain.VisualType, raw string) domain.VisualData {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	switch visualType {
	case domain.VisualTypeScatter:
		var pts []domain.ScatterPoint
		if err := json.Unmarshal([]byte(raw), &pts); err == nil && len(pts) > 0 {
			return domain.VisualData{Scatter: pts}
		}
	case domain.VisualTypeTable:
		var table domain.TableData
		if err := json.Unmarshal([]byte(raw), &table); err == nil && len(table.Columns) > 0 {
			return domain.VisualData{Table: &table}
		}
	default:
		var pts []domain.ChartPoint
		if err := json.Unmarshal([]byte(raw), &pts); err == nil && len(pts) > 0 {
			return domain.VisualData{Points: pts}
		}
	}
	return SampleVisualData(visualType)
}

// SampleVisualData returns placeholder data per visual type, used when the
// model response can't be parsed and by the manual editor's "add chart" path.
func SampleVisualData(visualType domain.VisualType) domain.VisualData {
	switch visualType {
	case domain.VisualTypePie:
		return domain.VisualData{Points: []domain.ChartPoint{
			{Name: "A", Value: 40}, {Name: "B", Value: 30}, {Name: "C", Value: 30},
		}}
	case domain.VisualTypeBar:
		return domain.VisualData{Points: []domain.ChartPoint{
			{Name: "Jan", Value: 30}, {Name: "Feb", Value: 20}, {Name: "Mar", Value: 50},
		}}
	case domain.VisualTypeLine:
		return domain.VisualData{Points: []domain.ChartPoint{
			{Name: "Q1", Value: 10}, {Name: "Q2", Value: 40}, {Name: "Q3", Value: 25},
		}}
	case domain.VisualTypeScatter:
		return domain.VisualData{Scatter: []domain.ScatterPoint{
			{X: 10, Y: 20}, {X: 20, Y: 30}, {X: 30, Y: 10},
		}}
	case domain.VisualTypeTable:
		return domain.VisualData{Table: &domain.TableData{
			Columns: []string{"Year", "Revenue", "Profit"},
			Rows: [][]string{
				{"2022", "$1M", "$200K"},
				{"2023", "$1.5M", "$350K"},
			},
		}}
	}
	return domain.VisualData{}
}
