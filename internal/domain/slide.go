package domain

import (
	"strings"
	"time"
)

// Slide is one page of a deck. Blocks are the source of truth for Content
// and Visuals whenever the block list is non-empty; both derived fields are
// recomputed by Materialize before every save or export. A slide fresh from
// bulk generation legitimately has no blocks — then Content and Design are
// authoritative on their own.
type Slide struct {
	ID      string `json:"id"`
	DeckID  string `json:"deckId"`
	Title   string `json:"title"`
	Content string `json:"content"` // derived when Blocks is non-empty
	Design  string `json:"design"`
	Order   int    `json:"order"`

	Blocks  []Block         `json:"blocks"`
	Visuals []VisualPayload `json:"visuals"` // derived when Blocks is non-empty

	ImageURL string `json:"imageUrl,omitempty"`
	VideoURL string `json:"videoUrl,omitempty"`
	Theme    string `json:"theme,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Materialize recomputes Content and Visuals from Blocks.
// A slide with no blocks keeps its existing fields untouched: the bulk
// generation path fills Content/Design directly and only creates blocks once
// the user opens the block editor.
func (s *Slide) Materialize() {
	if len(s.Blocks) == 0 {
		return
	}
	var parts []string
	var visuals []VisualPayload
	for i := range s.Blocks {
		b := &s.Blocks[i]
		switch b.Type {
		case BlockTypeText:
			if text := NormalizeRichText(b.Content); text != "" {
				parts = append(parts, text)
			}
		case BlockTypeVisual:
			visuals = append(visuals, b.Payload())
		}
	}
	s.Content = strings.Join(parts, "\n\n")
	s.Visuals = visuals
}

// TextBlocks returns the slide's text blocks in block order.
func (s *Slide) TextBlocks() []Block {
	var out []Block
	for _, b := range s.Blocks {
		if b.Type == BlockTypeText {
			out = append(out, b)
		}
	}
	return out
}

// FindBlock returns a pointer into Blocks by id, or nil if absent.
func (s *Slide) FindBlock(id string) *Block {
	for i := range s.Blocks {
		if s.Blocks[i].ID == id {
			return &s.Blocks[i]
		}
	}
	return nil
}

// SetImageURL attaches an image, clearing any video attachment. A slide
// carries at most one media attachment.
func (s *Slide) SetImageURL(url string) {
	s.ImageURL = url
	if url != "" {
		s.VideoURL = ""
	}
}

// SetVideoURL attaches a video, clearing any image attachment.
func (s *Slide) SetVideoURL(url string) {
	s.VideoURL = url
	if url != "" {
		s.ImageURL = ""
	}
}

// NormalizeRichText strips the redundant paragraph wrapper the rich-text
// editor puts around single-line input, so plain text round-trips as plain
// text. Multi-paragraph HTML is left alone.
func NormalizeRichText(content string) string {
	text := strings.TrimSpace(content)
	if !strings.HasPrefix(text, "<p>") || !strings.HasSuffix(text, "</p>") {
		return text
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(text, "<p>"), "</p>")
	// Only unwrap a single paragraph; nested <p> means real structure.
	if strings.Contains(inner, "<p>") || strings.Contains(inner, "</p>") {
		return text
	}
	return strings.TrimSpace(inner)
}
