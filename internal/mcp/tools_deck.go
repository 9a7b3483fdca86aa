package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerDeckTools() {
	// ── create_deck ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("create_deck",
		mcp.WithDescription("Create an empty pitch deck"),
		mcp.WithString("title", mcp.Description("Deck title"), mcp.Required()),
		mcp.WithString("description", mcp.Description("Deck description (optional)")),
	), s.handleCreateDeck)

	// ── list_decks ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_decks",
		mcp.WithDescription("List all pitch decks"),
	), s.handleListDecks)

	// ── get_deck ───────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("get_deck",
		mcp.WithDescription("Get a deck with all its slides"),
		mcp.WithString("deckId", mcp.Description("Deck ID"), mcp.Required()),
	), s.handleGetDeck)

	// ── delete_deck (destructive) ──────────────────────
	s.mcp.AddTool(mcp.NewTool("delete_deck",
		mcp.WithDescription("🛑 DESTRUCTIVE: Delete a deck and all its slides."),
		mcp.WithString("deckId", mcp.Description("Deck ID to delete"), mcp.Required()),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleDeleteDeck)

	// ── save_deck ──────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("save_deck",
		mcp.WithDescription("Save a deck, recomputing each slide's content from its blocks first"),
		mcp.WithString("deckId", mcp.Description("Deck ID"), mcp.Required()),
	), s.handleSaveDeck)

	// ── add_slide ──────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("add_slide",
		mcp.WithDescription("Append a slide to a deck"),
		mcp.WithString("deckId", mcp.Description("Deck ID"), mcp.Required()),
		mcp.WithString("title", mcp.Description("Slide title"), mcp.Required()),
	), s.handleAddSlide)

	// ── set_active_slide ───────────────────────────────
	s.mcp.AddTool(mcp.NewTool("set_active_slide",
		mcp.WithDescription("Set the slide that subsequent tools operate on by default"),
		mcp.WithString("slideId", mcp.Description("Slide ID"), mcp.Required()),
	), s.handleSetActiveSlide)

	// ── update_slide_content ───────────────────────────
	s.mcp.AddTool(mcp.NewTool("update_slide_content",
		mcp.WithDescription("Replace a slide's text content. Fails once the slide has blocks — edit the blocks instead."),
		mcp.WithString("slideId", mcp.Description("Slide ID (optional, defaults to active slide)")),
		mcp.WithString("content", mcp.Description("New content"), mcp.Required()),
	), s.handleUpdateSlideContent)

	// ── update_slide_design ────────────────────────────
	s.mcp.AddTool(mcp.NewTool("update_slide_design",
		mcp.WithDescription("Replace a slide's design notes"),
		mcp.WithString("slideId", mcp.Description("Slide ID (optional, defaults to active slide)")),
		mcp.WithString("design", mcp.Description("New design notes"), mcp.Required()),
	), s.handleUpdateSlideDesign)

	// ── export_deck ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("export_deck",
		mcp.WithDescription("Export a deck as json or html"),
		mcp.WithString("deckId", mcp.Description("Deck ID"), mcp.Required()),
		mcp.WithString("format", mcp.Description("Export format: json (default) or html")),
	), s.handleExportDeck)
}

func boolPtr(v bool) *bool { return &v }

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleCreateDeck(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	title, _ := args["title"].(string)
	description, _ := args["description"].(string)

	d, err := s.decks.CreateDeck(title, description)
	if err != nil {
		return nil, fmt.Errorf("create deck: %w", err)
	}
	return jsonResult(d)
}

func (s *Server) handleListDecks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	decks, err := s.decks.ListDecks()
	if err != nil {
		return nil, fmt.Errorf("list decks: %w", err)
	}
	return jsonResult(decks)
}

func (s *Server) handleGetDeck(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deckID, _ := req.GetArguments()["deckId"].(string)
	d, err := s.decks.GetDeck(deckID)
	if err != nil {
		return nil, fmt.Errorf("get deck: %w", err)
	}
	return jsonResult(d)
}

func (s *Server) handleDeleteDeck(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deckID, _ := req.GetArguments()["deckId"].(string)
	if err := s.decks.DeleteDeck(ctx, deckID); err != nil {
		return nil, fmt.Errorf("delete deck: %w", err)
	}
	return textResult(fmt.Sprintf("Deck %s deleted", deckID)), nil
}

func (s *Server) handleSaveDeck(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deckID, _ := req.GetArguments()["deckId"].(string)
	d, err := s.decks.Save(ctx, deckID)
	if err != nil {
		return nil, fmt.Errorf("save deck: %w", err)
	}
	return jsonResult(d)
}

func (s *Server) handleAddSlide(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	deckID, _ := args["deckId"].(string)
	title, _ := args["title"].(string)

	sl, err := s.decks.AddSlide(ctx, deckID, title)
	if err != nil {
		return nil, fmt.Errorf("add slide: %w", err)
	}
	return jsonResult(sl)
}

func (s *Server) handleSetActiveSlide(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slideID, _ := req.GetArguments()["slideId"].(string)
	if slideID == "" {
		return nil, fmt.Errorf("slideId is required")
	}
	if _, err := s.decks.GetSlide(slideID); err != nil {
		return nil, fmt.Errorf("get slide: %w", err)
	}
	s.activeSlideID = slideID
	s.suggestions.SetActiveSlide(slideID)
	return textResult(fmt.Sprintf("Active slide set to %s", slideID)), nil
}

func (s *Server) handleUpdateSlideContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	slideID, err := s.resolveSlideID(args)
	if err != nil {
		return nil, err
	}
	content, _ := args["content"].(string)
	if err := s.decks.UpdateSlideContent(ctx, slideID, content); err != nil {
		return nil, fmt.Errorf("update content: %w", err)
	}
	return textResult(fmt.Sprintf("Slide %s content updated", slideID)), nil
}

func (s *Server) handleUpdateSlideDesign(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	slideID, err := s.resolveSlideID(args)
	if err != nil {
		return nil, err
	}
	design, _ := args["design"].(string)
	if err := s.decks.UpdateSlideDesign(ctx, slideID, design); err != nil {
		return nil, fmt.Errorf("update design: %w", err)
	}
	return textResult(fmt.Sprintf("Slide %s design updated", slideID)), nil
}

func (s *Server) handleExportDeck(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	deckID, _ := args["deckId"].(string)
	format, _ := args["format"].(string)
	if format == "" {
		format = "json"
	}
	data, _, err := s.export.Export(ctx, deckID, format)
	if err != nil {
		return nil, fmt.Errorf("export deck: %w", err)
	}
	return textResult(string(data)), nil
}
