package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"pitchdeck/internal/domain"
)

func (s *Server) registerAITools() {
	// ── generate_deck ──────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("generate_deck",
		mcp.WithDescription("Generate a full pitch deck from a problem/solution pair, one slide per standard section"),
		mcp.WithString("problem", mcp.Description("The problem the startup solves"), mcp.Required()),
		mcp.WithString("solution", mcp.Description("The proposed solution"), mcp.Required()),
	), s.handleGenerateDeck)

	// ── generate_slide_content ─────────────────────────
	s.mcp.AddTool(mcp.NewTool("generate_slide_content",
		mcp.WithDescription("Generate or enhance one slide's content"),
		mcp.WithString("slideId", mcp.Description("Slide ID (optional, defaults to active slide)")),
		mcp.WithString("mode", mcp.Description("Generation mode: empty for default, 'optimize' for investors, 'improve' for messaging")),
	), s.handleGenerateSlideContent)

	// ── add_data_visualization ─────────────────────────
	s.mcp.AddTool(mcp.NewTool("add_data_visualization",
		mcp.WithDescription("Generate chart data in the slide's context and add it as a visual block"),
		mcp.WithString("slideId", mcp.Description("Slide ID (optional, defaults to active slide)")),
		mcp.WithString("visualType", mcp.Description("Visual type: pie, bar, line, scatter, table"), mcp.Required()),
	), s.handleAddDataVisualization)

	// ── refresh_suggestions ────────────────────────────
	s.mcp.AddTool(mcp.NewTool("refresh_suggestions",
		mcp.WithDescription("Fetch a fresh pair of content and design suggestions for a slide"),
		mcp.WithString("slideId", mcp.Description("Slide ID (optional, defaults to active slide)")),
	), s.handleRefreshSuggestions)

	// ── apply_suggestion ───────────────────────────────
	s.mcp.AddTool(mcp.NewTool("apply_suggestion",
		mcp.WithDescription("Accept a suggestion by slot (0 = content, 1 = design), appending its text to the slide"),
		mcp.WithString("slideId", mcp.Description("Slide ID (optional, defaults to active slide)")),
		mcp.WithNumber("slot", mcp.Description("Suggestion slot: 0 content, 1 design"), mcp.Required()),
	), s.handleApplySuggestion)

	// ── analyze_deck ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("analyze_deck",
		mcp.WithDescription("Score the deck's narrative flow, visual design, and data credibility. Served from cache while the deck is unchanged."),
		mcp.WithString("deckId", mcp.Description("Deck ID"), mcp.Required()),
		mcp.WithBoolean("feedback", mcp.Description("Also request written feedback (default true)")),
	), s.handleAnalyzeDeck)
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleGenerateDeck(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	problem, _ := args["problem"].(string)
	solution, _ := args["solution"].(string)

	d, err := s.generation.GenerateDeck(ctx, problem, solution)
	if err != nil {
		return nil, fmt.Errorf("generate deck: %w", err)
	}
	return jsonResult(d)
}

func (s *Server) handleGenerateSlideContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	slideID, err := s.resolveSlideID(args)
	if err != nil {
		return nil, err
	}
	mode, _ := args["mode"].(string)

	content, err := s.generation.GenerateSlideContent(ctx, slideID, mode)
	if err != nil {
		return nil, fmt.Errorf("generate slide content: %w", err)
	}
	return textResult(content), nil
}

func (s *Server) handleAddDataVisualization(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	slideID, err := s.resolveSlideID(args)
	if err != nil {
		return nil, err
	}
	visualType, _ := args["visualType"].(string)

	b, err := s.generation.AddDataVisualization(ctx, slideID, domain.VisualType(visualType))
	if err != nil {
		return nil, fmt.Errorf("add data visualization: %w", err)
	}
	return jsonResult(b)
}

func (s *Server) handleRefreshSuggestions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slideID, err := s.resolveSlideID(req.GetArguments())
	if err != nil {
		return nil, err
	}
	list, err := s.suggestions.RefreshAll(ctx, slideID)
	if err != nil {
		return nil, fmt.Errorf("refresh suggestions: %w", err)
	}
	return jsonResult(list)
}

func (s *Server) handleApplySuggestion(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	slideID, err := s.resolveSlideID(args)
	if err != nil {
		return nil, err
	}
	slot := int(getFloat(args, "slot", -1))

	sl, err := s.suggestions.Apply(ctx, slideID, slot)
	if err != nil {
		return nil, fmt.Errorf("apply suggestion: %w", err)
	}
	return jsonResult(sl)
}

func (s *Server) handleAnalyzeDeck(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	deckID, _ := args["deckId"].(string)
	wantFeedback := true
	if v, ok := args["feedback"].(bool); ok {
		wantFeedback = v
	}

	snap, err := s.analysis.Analyze(ctx, deckID, wantFeedback)
	if err != nil {
		return nil, fmt.Errorf("analyze deck: %w", err)
	}
	return jsonResult(snap)
}
