package layout

import (
	"math"

	"pitchdeck/internal/domain"
)

const (
	GridSize = 30.0 // matches the slide editor's grid
	Padding  = 60.0 // 2 grid cells between blocks

	ColumnWidth  = 540.0
	RowHeight    = 360.0
	DefaultTextW = 540.0
	DefaultTextH = 180.0
	DefaultVisW  = 540.0
	DefaultVisH  = 360.0
)

// Engine assigns positions to blocks that were created without explicit
// layout coordinates. Bulk initialization uses a two-column grid; single
// appended blocks go below everything that already exists.
type Engine struct {
	gridSize float64
	padding  float64
}

func NewEngine() *Engine {
	return &Engine{gridSize: GridSize, padding: Padding}
}

// snap rounds v to the nearest grid point.
func (e *Engine) snap(v float64) float64 {
	return math.Round(v/e.gridSize) * e.gridSize
}

// DefaultLayout arranges blocks in a two-column grid: block i lands in
// column i mod 2, row i/2. Positions are modified in place. Reserved for
// bulk (re)initialization of a slide's blocks; single additions go through
// AppendPosition instead.
func (e *Engine) DefaultLayout(blocks []domain.Block) []domain.Block {
	for i := range blocks {
		col := i % 2
		row := i / 2
		blocks[i].X = e.snap(float64(col) * (ColumnWidth + e.padding))
		blocks[i].Y = e.snap(float64(row) * (RowHeight + e.padding))
		if blocks[i].Width == 0 {
			blocks[i].Width = ColumnWidth
		}
		if blocks[i].Height == 0 {
			blocks[i].Height = RowHeight
		}
	}
	return blocks
}

// AppendPosition places a new block of size (w, h) below the lowest existing
// block, in the first column. An empty slide starts at the origin.
func (e *Engine) AppendPosition(existing []domain.Block, w, h float64) (float64, float64) {
	if len(existing) == 0 {
		return 0, 0
	}
	maxY := 0.0
	for _, b := range existing {
		if b.Y+b.Height > maxY {
			maxY = b.Y + b.Height
		}
	}
	return 0, e.snap(maxY + e.padding)
}

// DefaultSize returns the default block size for a block type.
func DefaultSize(t domain.BlockType) (float64, float64) {
	if t == domain.BlockTypeVisual {
		return DefaultVisW, DefaultVisH
	}
	return DefaultTextW, DefaultTextH
}
