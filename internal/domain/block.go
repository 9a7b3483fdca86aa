package domain

import "time"

type BlockType string

const (
	BlockTypeText   BlockType = "text"
	BlockTypeVisual BlockType = "visual"
)

type VisualType string

const (
	VisualTypePie     VisualType = "pie"
	VisualTypeBar     VisualType = "bar"
	VisualTypeLine    VisualType = "line"
	VisualTypeScatter VisualType = "scatter"
	VisualTypeTable   VisualType = "table"
)

// ChartPoint is one datum of a pie, bar, or line chart.
type ChartPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"color,omitempty"`
}

// ScatterPoint is one datum of a scatter plot.
type ScatterPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Color string  `json:"color,omitempty"`
}

// TableData holds tabular visual data.
type TableData struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// VisualData carries the payload for a visual block. Exactly one of the
// fields is populated, depending on the visual type.
type VisualData struct {
	Points  []ChartPoint   `json:"points,omitempty"`  // pie, bar, line
	Scatter []ScatterPoint `json:"scatter,omitempty"` // scatter
	Table   *TableData     `json:"table,omitempty"`   // table
}

// VisualPayload is the flattened visual representation kept on a slide for
// consumers that predate the block model.
type VisualPayload struct {
	Type       VisualType `json:"type"`
	Data       VisualData `json:"data"`
	ConfigJSON string     `json:"configJson,omitempty"`
}

type Block struct {
	ID      string    `json:"id"`
	SlideID string    `json:"slideId"`
	Type    BlockType `json:"type"`
	X       float64   `json:"x"`
	Y       float64   `json:"y"`
	Width   float64   `json:"width"`
	Height  float64   `json:"height"`

	// Text block fields
	Content    string `json:"content"`
	IsEditable bool   `json:"isEditable"`

	// Visual block fields
	VisualType VisualType `json:"visualType,omitempty"`
	Data       VisualData `json:"data"`
	ConfigJSON string     `json:"configJson,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Payload returns the flattened visual payload for a visual block.
func (b *Block) Payload() VisualPayload {
	return VisualPayload{Type: b.VisualType, Data: b.Data, ConfigJSON: b.ConfigJSON}
}

type BlockStore interface {
	CreateBlock(b *Block) error
	GetBlock(id string) (*Block, error)
	ListBlocks(slideID string) ([]Block, error)
	UpdateBlock(b *Block) error
	DeleteBlock(id string) error
	DeleteBlocksBySlide(slideID string) error
	ReplaceSlideBlocks(slideID string, blocks []Block) error
}
