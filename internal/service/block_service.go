package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"pitchdeck/internal/domain"
	"pitchdeck/internal/layout"
	"pitchdeck/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Block Service — business logic for slide blocks
// ─────────────────────────────────────────────────────────────

// BlockService manages the lifecycle of slide blocks and keeps the slide's
// derived fields in sync with them.
type BlockService struct {
	store   *storage.BlockStore
	decks   *storage.DeckStore
	layout  *layout.Engine
	guard   *GenGuard
	emitter EventEmitter
}

// NewBlockService creates a BlockService.
func NewBlockService(store *storage.BlockStore, decks *storage.DeckStore, guard *GenGuard, emitter EventEmitter) *BlockService {
	return &BlockService{
		store:   store,
		decks:   decks,
		layout:  layout.NewEngine(),
		guard:   guard,
		emitter: emitter,
	}
}

// AddTextBlock appends a new empty text block to a slide, placed below the
// last existing block.
func (s *BlockService) AddTextBlock(ctx context.Context, slideID string) (*domain.Block, error) {
	existing, err := s.store.ListBlocks(slideID)
	if err != nil {
		return nil, fmt.Errorf("list blocks: %w", err)
	}
	w, h := layout.DefaultSize(domain.BlockTypeText)
	x, y := s.layout.AppendPosition(existing, w, h)
	b := &domain.Block{
		ID:         uuid.New().String(),
		SlideID:    slideID,
		Type:       domain.BlockTypeText,
		X:          x,
		Y:          y,
		Width:      w,
		Height:     h,
		IsEditable: true,
	}
	if err := s.store.CreateBlock(b); err != nil {
		return nil, fmt.Errorf("create text block: %w", err)
	}
	s.guard.Bump(slideID)
	s.emitBlocksChanged(ctx, slideID)
	return b, nil
}

// AddVisualBlock appends a new visual block with the given payload.
func (s *BlockService) AddVisualBlock(ctx context.Context, slideID string, visualType domain.VisualType, data domain.VisualData) (*domain.Block, error) {
	existing, err := s.store.ListBlocks(slideID)
	if err != nil {
		return nil, fmt.Errorf("list blocks: %w", err)
	}
	w, h := layout.DefaultSize(domain.BlockTypeVisual)
	x, y := s.layout.AppendPosition(existing, w, h)
	b := &domain.Block{
		ID:         uuid.New().String(),
		SlideID:    slideID,
		Type:       domain.BlockTypeVisual,
		X:          x,
		Y:          y,
		Width:      w,
		Height:     h,
		VisualType: visualType,
		Data:       data,
	}
	if err := s.store.CreateBlock(b); err != nil {
		return nil, fmt.Errorf("create visual block: %w", err)
	}
	s.guard.Bump(slideID)
	s.emitBlocksChanged(ctx, slideID)
	return b, nil
}

// UpdateBlockContent mutates a text block's content in place. Content edits
// on visual blocks are silently ignored — the editor routes both through the
// same handler and a visual block simply has no text to edit.
func (s *BlockService) UpdateBlockContent(ctx context.Context, blockID, content string) error {
	b, err := s.store.GetBlock(blockID)
	if err != nil {
		return err
	}
	if b.Type != domain.BlockTypeText {
		return nil
	}
	b.Content = content
	if err := s.store.UpdateBlock(b); err != nil {
		return err
	}
	s.guard.Bump(b.SlideID)
	s.emitBlocksChanged(ctx, b.SlideID)
	return nil
}

// RemoveBlock removes a block by id. Removing an id that no longer exists is
// a no-op, not an error.
func (s *BlockService) RemoveBlock(ctx context.Context, blockID string) error {
	b, err := s.store.GetBlock(blockID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil // already gone
	}
	if err != nil {
		return err
	}
	if err := s.store.DeleteBlock(blockID); err != nil {
		return err
	}
	s.guard.Bump(b.SlideID)
	s.emitBlocksChanged(ctx, b.SlideID)
	return nil
}

// MoveBlock updates a block's position.
func (s *BlockService) MoveBlock(ctx context.Context, blockID string, x, y float64) error {
	b, err := s.store.GetBlock(blockID)
	if err != nil {
		return err
	}
	b.X, b.Y = x, y
	if err := s.store.UpdateBlock(b); err != nil {
		return err
	}
	s.emitBlocksChanged(ctx, b.SlideID)
	return nil
}

// ResizeBlock updates a block's size.
func (s *BlockService) ResizeBlock(ctx context.Context, blockID string, width, height float64) error {
	b, err := s.store.GetBlock(blockID)
	if err != nil {
		return err
	}
	b.Width, b.Height = width, height
	if err := s.store.UpdateBlock(b); err != nil {
		return err
	}
	s.emitBlocksChanged(ctx, b.SlideID)
	return nil
}

// ArrangeBlocks reflows all of a slide's blocks into the default two-column
// grid. Used on bulk (re)initialization; single additions keep their
// append-to-bottom placement.
func (s *BlockService) ArrangeBlocks(ctx context.Context, slideID string) ([]domain.Block, error) {
	blocks, err := s.store.ListBlocks(slideID)
	if err != nil {
		return nil, fmt.Errorf("list blocks: %w", err)
	}
	blocks = s.layout.DefaultLayout(blocks)
	if err := s.store.ReplaceSlideBlocks(slideID, blocks); err != nil {
		return nil, fmt.Errorf("arrange blocks: %w", err)
	}
	s.emitBlocksChanged(ctx, slideID)
	return blocks, nil
}

// ListBlocks returns all blocks for a slide in block order.
func (s *BlockService) ListBlocks(slideID string) ([]domain.Block, error) {
	return s.store.ListBlocks(slideID)
}

// Materialize recomputes the slide's derived content and visuals from its
// blocks and persists the result. Called at every save/export boundary.
func (s *BlockService) Materialize(ctx context.Context, slideID string) (*domain.Slide, error) {
	sl, err := s.decks.GetSlide(slideID)
	if err != nil {
		return nil, err
	}
	sl.Materialize()
	if err := s.decks.UpdateSlide(sl); err != nil {
		return nil, err
	}
	return sl, nil
}

func (s *BlockService) emitBlocksChanged(ctx context.Context, slideID string) {
	s.emitter.Emit(ctx, "blocks:changed", map[string]string{"slideId": slideID})
}
