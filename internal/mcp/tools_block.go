package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"pitchdeck/internal/domain"
)

func (s *Server) registerBlockTools() {
	// ── add_text_block ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("add_text_block",
		mcp.WithDescription("Add a text block to a slide, placed below the existing blocks"),
		mcp.WithString("slideId", mcp.Description("Slide ID (optional, defaults to active slide)")),
		mcp.WithString("content", mcp.Description("Initial content (optional)")),
	), s.handleAddTextBlock)

	// ── add_visual_block ───────────────────────────────
	s.mcp.AddTool(mcp.NewTool("add_visual_block",
		mcp.WithDescription("Add a visual block (pie, bar, line, scatter, table) with explicit data"),
		mcp.WithString("slideId", mcp.Description("Slide ID (optional, defaults to active slide)")),
		mcp.WithString("visualType", mcp.Description("Visual type: pie, bar, line, scatter, table"), mcp.Required()),
		mcp.WithString("data", mcp.Description(`Visual data as JSON, e.g. {"points":[{"name":"Q1","value":40}]}`), mcp.Required(),
		),
	), s.handleAddVisualBlock)

	// ── list_blocks ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_blocks",
		mcp.WithDescription("List all blocks on a slide"),
		mcp.WithString("slideId", mcp.Description("Slide ID (optional, defaults to active slide)")),
	), s.handleListBlocks)

	// ── update_block_content ───────────────────────────
	s.mcp.AddTool(mcp.NewTool("update_block_content",
		mcp.WithDescription("Update a text block's content. Silently ignored on visual blocks."),
		mcp.WithString("blockId", mcp.Description("Block ID"), mcp.Required()),
		mcp.WithString("content", mcp.Description("New content"), mcp.Required()),
	), s.handleUpdateBlockContent)

	// ── remove_block (destructive) ─────────────────────
	s.mcp.AddTool(mcp.NewTool("remove_block",
		mcp.WithDescription("🛑 DESTRUCTIVE: Remove a block. Removing an already-removed block is a no-op."),
		mcp.WithString("blockId", mcp.Description("Block ID to remove"), mcp.Required()),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleRemoveBlock)

	// ── move_block ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("move_block",
		mcp.WithDescription("Move a block to a new position"),
		mcp.WithString("blockId", mcp.Description("Block ID"), mcp.Required()),
		mcp.WithNumber("x", mcp.Description("New X position"), mcp.Required()),
		mcp.WithNumber("y", mcp.Description("New Y position"), mcp.Required()),
	), s.handleMoveBlock)

	// ── resize_block ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("resize_block",
		mcp.WithDescription("Resize a block"),
		mcp.WithString("blockId", mcp.Description("Block ID"), mcp.Required()),
		mcp.WithNumber("width", mcp.Description("New width"), mcp.Required()),
		mcp.WithNumber("height", mcp.Description("New height"), mcp.Required()),
	), s.handleResizeBlock)

	// ── arrange_blocks ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("arrange_blocks",
		mcp.WithDescription("Reflow all of a slide's blocks into the default two-column grid"),
		mcp.WithString("slideId", mcp.Description("Slide ID (optional, defaults to active slide)")),
	), s.handleArrangeBlocks)
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleAddTextBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	slideID, err := s.resolveSlideID(args)
	if err != nil {
		return nil, err
	}
	b, err := s.blocks.AddTextBlock(ctx, slideID)
	if err != nil {
		return nil, fmt.Errorf("add text block: %w", err)
	}
	if content, ok := args["content"].(string); ok && content != "" {
		if err := s.blocks.UpdateBlockContent(ctx, b.ID, content); err != nil {
			return nil, fmt.Errorf("set content: %w", err)
		}
		b.Content = content
	}
	return jsonResult(b)
}

func (s *Server) handleAddVisualBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	slideID, err := s.resolveSlideID(args)
	if err != nil {
		return nil, err
	}
	visualType, _ := args["visualType"].(string)
	dataJSON, _ := args["data"].(string)

	var data domain.VisualData
	if err := json.Unmarshal([]byte(dataJSON), &data); err != nil {
		return nil, fmt.Errorf("parse data: %w", err)
	}
	b, err := s.blocks.AddVisualBlock(ctx, slideID, domain.VisualType(visualType), data)
	if err != nil {
		return nil, fmt.Errorf("add visual block: %w", err)
	}
	return jsonResult(b)
}

func (s *Server) handleListBlocks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slideID, err := s.resolveSlideID(req.GetArguments())
	if err != nil {
		return nil, err
	}
	blocks, err := s.blocks.ListBlocks(slideID)
	if err != nil {
		return nil, fmt.Errorf("list blocks: %w", err)
	}
	return jsonResult(blocks)
}

func (s *Server) handleUpdateBlockContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	blockID, _ := args["blockId"].(string)
	content, _ := args["content"].(string)

	if err := s.blocks.UpdateBlockContent(ctx, blockID, content); err != nil {
		return nil, fmt.Errorf("update content: %w", err)
	}
	return textResult(fmt.Sprintf("Block %s content updated", blockID)), nil
}

func (s *Server) handleRemoveBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	blockID, _ := req.GetArguments()["blockId"].(string)
	if err := s.blocks.RemoveBlock(ctx, blockID); err != nil {
		return nil, fmt.Errorf("remove block: %w", err)
	}
	return textResult(fmt.Sprintf("Block %s removed", blockID)), nil
}

func (s *Server) handleMoveBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	blockID, _ := args["blockId"].(string)
	x := getFloat(args, "x", 0)
	y := getFloat(args, "y", 0)

	if err := s.blocks.MoveBlock(ctx, blockID, x, y); err != nil {
		return nil, fmt.Errorf("move block: %w", err)
	}
	return textResult(fmt.Sprintf("Block %s moved to (%.0f, %.0f)", blockID, x, y)), nil
}

func (s *Server) handleResizeBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	blockID, _ := args["blockId"].(string)
	w := getFloat(args, "width", 0)
	h := getFloat(args, "height", 0)

	if err := s.blocks.ResizeBlock(ctx, blockID, w, h); err != nil {
		return nil, fmt.Errorf("resize block: %w", err)
	}
	return textResult(fmt.Sprintf("Block %s resized to %.0fx%.0f", blockID, w, h)), nil
}

func (s *Server) handleArrangeBlocks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slideID, err := s.resolveSlideID(req.GetArguments())
	if err != nil {
		return nil, err
	}
	blocks, err := s.blocks.ArrangeBlocks(ctx, slideID)
	if err != nil {
		return nil, fmt.Errorf("arrange blocks: %w", err)
	}
	return jsonResult(blocks)
}
