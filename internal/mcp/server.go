package mcpserver

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"pitchdeck/internal/service"
)

// Server is the MCP server for the deck editor. It exposes tools so AI
// agents can build and refine pitch decks alongside the user.
type Server struct {
	mcp *server.MCPServer

	decks       *service.DeckService
	blocks      *service.BlockService
	generation  *service.GenerationService
	suggestions *service.SuggestionService
	analysis    *service.AnalysisService
	export      *service.ExportService

	// Active slide context (set by set_active_slide tool)
	activeSlideID string
}

// Deps holds the services the MCP server operates on.
type Deps struct {
	Decks       *service.DeckService
	Blocks      *service.BlockService
	Generation  *service.GenerationService
	Suggestions *service.SuggestionService
	Analysis    *service.AnalysisService
	Export      *service.ExportService
}

// New creates and configures the MCP server with all tools registered.
func New(deps Deps) *Server {
	s := &Server{
		decks:       deps.Decks,
		blocks:      deps.Blocks,
		generation:  deps.Generation,
		suggestions: deps.Suggestions,
		analysis:    deps.Analysis,
		export:      deps.Export,
	}

	s.mcp = server.NewMCPServer(
		"pitchdeck-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s.registerDeckTools()
	s.registerBlockTools()
	s.registerAITools()

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	log.Println("[MCP] Starting stdio server...")
	return server.ServeStdio(s.mcp)
}

// ── Helpers ────────────────────────────────────────────────

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

// resolveSlideID returns the slideId from tool args or falls back to the
// active slide.
func (s *Server) resolveSlideID(args map[string]any) (string, error) {
	if sid, ok := args["slideId"].(string); ok && sid != "" {
		return sid, nil
	}
	if s.activeSlideID != "" {
		return s.activeSlideID, nil
	}
	return "", fmt.Errorf("no slideId provided and no active slide set — call set_active_slide first")
}

func getFloat(args map[string]any, key string, fallback float64) float64 {
	if v, ok := args[key].(float64); ok {
		return v
	}
	return fallback
}
