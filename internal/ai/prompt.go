package ai

import (
	"fmt"
	"strings"

	"pitchdeck/internal/domain"
)

// Prompt is a system/user message pair sent to the model.
type Prompt struct {
	System string
	User   string
}

const (
	deckSystem       = "You are a pitch deck expert. You are given a problem statement and a solution to the problem. You are to generate content for all slides in a startup pitch deck. For each slide, provide a compelling headline and 2-3 bullet points of key information. Make the content concise, impactful, and investor-ready, ensuring the slides are engaging and can instantly grab the attention of the audience and investors."
	slideSystem      = "You are a pitch deck expert. Generate compelling and concise content for individual slides."
	designSystem     = "You are a presentation design expert. Provide specific and actionable design suggestions for pitch deck slides."
	suggestionSystem = "You are a pitch deck expert. Provide concise, actionable suggestions for improving slide content or design."
	visualSystem     = "You are a data visualization expert. Generate chart/table data for pitch decks."
	analysisSystem   = "You are an expert pitch deck reviewer. Analyze the pitch deck and provide detailed feedback on narrative flow, visual design, data credibility, and overall effectiveness. Provide specific, actionable suggestions for improvement."
)

func buildDeckPrompt(problem, solution string) Prompt {
	user := fmt.Sprintf(
		"Generate content for all slides in a pitch deck about: Problem: '%s', Solution: '%s'. "+
			"For each slide, provide a compelling headline and 2-3 bullet points of key information. "+
			"The slides should be: %s.",
		problem, solution, strings.Join(domain.StandardSlideTitles, ", "))
	return Prompt{System: deckSystem, User: user}
}

func buildSlideContentPrompt(req SlideContentRequest) Prompt {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Given the pitch deck titled '%s' with description: '%s',\n", req.Problem, req.Solution)
	if req.CurrentContent != "" {
		fmt.Fprintf(&sb, "and the current content of the slide '%s': '%s',\n", req.SlideTitle, req.CurrentContent)
	}
	switch req.Mode {
	case ModeOptimize:
		sb.WriteString("Please optimize this slide to be more compelling and persuasive for investors. Focus on what investors care about most: market size, traction, defensibility, and growth potential. Provide a compelling headline and 2-3 bullet points of key information.")
	case ModeImprove:
		sb.WriteString("Please improve the messaging of this slide to be clearer, more persuasive, and more memorable. Provide a compelling headline and 2-3 bullet points of key information.")
	default:
		if req.CurrentContent != "" {
			sb.WriteString("please improve and enhance this slide's content while maintaining its core message. Make it more engaging and impactful for investors. Provide a compelling headline and 2-3 bullet points of key information.")
		} else {
			fmt.Fprintf(&sb, "please generate detailed content for the slide '%s'. Make it engaging and impactful for investors. Provide a compelling headline and 2-3 bullet points of key information.", req.SlideTitle)
		}
	}
	return Prompt{System: slideSystem, User: sb.String()}
}

func buildDesignPrompt(req SlideContentRequest) Prompt {
	user := fmt.Sprintf(`Given the pitch deck titled '%s' with description: '%s',
and the slide '%s' with content: '%s',
provide specific design suggestions to make this slide more visually appealing and effective.
Include recommendations for:
1. Layout and structure
2. Visual elements (charts, images, icons)
3. Color scheme
4. Typography
5. Data visualization (if applicable)`,
		req.Problem, req.Solution, req.SlideTitle, req.CurrentContent)
	return Prompt{System: designSystem, User: user}
}

func buildSuggestionPrompt(slideTitle, content, design string, kind domain.SuggestionKind) Prompt {
	var user string
	if kind == domain.SuggestionContent {
		user = fmt.Sprintf("Given the slide titled '%s' with content: '%s', suggest a single, actionable improvement to the slide's content for a startup pitch deck. Respond with only the suggestion.", slideTitle, content)
	} else {
		user = fmt.Sprintf("Given the slide titled '%s' with design notes: '%s', suggest a single, actionable improvement to the slide's design (layout, visuals, colors, etc.) for a startup pitch deck. Respond with only the suggestion.", slideTitle, design)
	}
	return Prompt{System: suggestionSystem, User: user}
}

func buildVisualDataPrompt(visualType domain.VisualType, contextText string) Prompt {
	user := fmt.Sprintf("Generate JSON data for a %s chart for a startup pitch deck. Context: %s. "+
		"For pie/bar/line, use a list of objects with 'name' and 'value'. For scatter, use a list of objects with 'x' and 'y'. "+
		"For table, use an object with 'columns' and 'rows'. Respond with only the JSON data.",
		visualType, contextText)
	return Prompt{System: visualSystem, User: user}
}

func buildAnalysisPrompt(slides []domain.SlideExport, wantFeedback bool) Prompt {
	var sb strings.Builder
	sb.WriteString("Please analyze this pitch deck and provide feedback:\n\n")
	for i, s := range slides {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "Slide: %s\nContent: %s", s.Title, s.Content)
	}
	sb.WriteString("\n\nProvide your analysis in the following distinct sections, using these exact titles, including the 'SECTION:' prefix:\n\n")
	sb.WriteString("SECTION: Overall Score\n\n")
	fmt.Fprintf(&sb, "SECTION: Narrative Flow Analysis (rate it as one of: %s)\n\n", strings.Join(domain.NarrativeFlowScale, ", "))
	fmt.Fprintf(&sb, "SECTION: Visual Design Analysis (rate it as one of: %s)\n\n", strings.Join(domain.VisualDesignScale, ", "))
	fmt.Fprintf(&sb, "SECTION: Data Credibility Analysis (rate it as one of: %s)", strings.Join(domain.DataCredibilityScale, ", "))
	if wantFeedback {
		sb.WriteString("\n\nSECTION: Specific Feedback and Suggestions")
	}
	return Prompt{System: analysisSystem, User: sb.String()}
}
