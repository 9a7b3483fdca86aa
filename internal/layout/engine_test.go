package layout

import (
	"testing"

	"pitchdeck/internal/domain"
)

func TestDefaultLayoutTwoColumns(t *testing.T) {
	e := NewEngine()
	blocks := make([]domain.Block, 5)
	for i := range blocks {
		blocks[i] = domain.Block{Type: domain.BlockTypeText}
	}
	blocks = e.DefaultLayout(blocks)

	colX := e.snap(ColumnWidth + Padding)
	rowY := e.snap(RowHeight + Padding)

	wantPositions := [][2]float64{
		{0, 0},
		{colX, 0},
		{0, rowY},
		{colX, rowY},
		{0, 2 * rowY},
	}
	for i, want := range wantPositions {
		if blocks[i].X != want[0] || blocks[i].Y != want[1] {
			t.Errorf("block %d at (%v, %v), want (%v, %v)", i, blocks[i].X, blocks[i].Y, want[0], want[1])
		}
	}
}

func TestDefaultLayoutFillsZeroSizes(t *testing.T) {
	e := NewEngine()
	blocks := e.DefaultLayout([]domain.Block{
		{Width: 300, Height: 200},
		{},
	})
	if blocks[0].Width != 300 || blocks[0].Height != 200 {
		t.Errorf("explicit size overwritten: %vx%v", blocks[0].Width, blocks[0].Height)
	}
	if blocks[1].Width != ColumnWidth || blocks[1].Height != RowHeight {
		t.Errorf("default size = %vx%v", blocks[1].Width, blocks[1].Height)
	}
}

func TestAppendPositionEmptySlide(t *testing.T) {
	e := NewEngine()
	x, y := e.AppendPosition(nil, DefaultTextW, DefaultTextH)
	if x != 0 || y != 0 {
		t.Errorf("AppendPosition on empty slide = (%v, %v), want origin", x, y)
	}
}

func TestAppendPositionBelowLowestBlock(t *testing.T) {
	e := NewEngine()
	existing := []domain.Block{
		{Y: 0, Height: 180},
		{Y: 240, Height: 360}, // lowest edge at 600
	}
	x, y := e.AppendPosition(existing, DefaultTextW, DefaultTextH)
	if x != 0 {
		t.Errorf("x = %v, want 0", x)
	}
	if want := e.snap(600 + Padding); y != want {
		t.Errorf("y = %v, want %v", y, want)
	}
}

func TestAppendPositionSnapsToGrid(t *testing.T) {
	e := NewEngine()
	existing := []domain.Block{{Y: 10, Height: 95}} // bottom edge 105, +60 padding = 165
	_, y := e.AppendPosition(existing, DefaultTextW, DefaultTextH)
	if rem := int(y) % int(GridSize); rem != 0 {
		t.Errorf("y = %v not on %v grid", y, GridSize)
	}
}

func TestDefaultSize(t *testing.T) {
	if w, h := DefaultSize(domain.BlockTypeText); w != DefaultTextW || h != DefaultTextH {
		t.Errorf("text size = %vx%v", w, h)
	}
	if w, h := DefaultSize(domain.BlockTypeVisual); w != DefaultVisW || h != DefaultVisH {
		t.Errorf("visual size = %vx%v", w, h)
	}
}
