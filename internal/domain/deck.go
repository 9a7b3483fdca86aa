package domain

import (
	"strings"
	"time"
)

// StandardSlideTitles is the fixed section sequence of an investor pitch
// deck. Bulk generation produces one slide per entry, in this order.
var StandardSlideTitles = []string{
	"The Problem",
	"Our Solution",
	"Product Demo",
	"Market Opportunity",
	"Traction",
	"Customer Love",
	"Competitive Landscape",
	"Business Model",
	"Financial Projections",
	"Go-to-Market Strategy",
	"Team",
	"Funding Ask",
	"Thank You",
}

// IsStandardSlideTitle reports whether title is one of the standard sections.
func IsStandardSlideTitle(title string) bool {
	for _, t := range StandardSlideTitles {
		if t == title {
			return true
		}
	}
	return false
}

type Deck struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Slides      []Slide   `json:"slides"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Fingerprint builds a deterministic digest of the deck's content-relevant
// fields: per slide, title, content, and design, joined with "|" across
// slides. Blocks, visuals, and layout do not participate — moving a chart
// around is not a reason to redo analysis. Fields are trimmed so editor
// whitespace churn doesn't produce spurious staleness.
func (d *Deck) Fingerprint() string {
	var sb strings.Builder
	for i := range d.Slides {
		s := &d.Slides[i]
		if i > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString(strings.TrimSpace(s.Title))
		sb.WriteByte(':')
		sb.WriteString(strings.TrimSpace(s.Content))
		sb.WriteByte(':')
		sb.WriteString(strings.TrimSpace(s.Design))
	}
	return sb.String()
}

// HasChangedSince reports whether the deck's content differs from the
// fingerprint recorded at the last successful analysis.
func (d *Deck) HasChangedSince(lastFingerprint string) bool {
	return d.Fingerprint() != lastFingerprint
}

// FindSlide returns a pointer into Slides by id, or nil if absent.
func (d *Deck) FindSlide(id string) *Slide {
	for i := range d.Slides {
		if d.Slides[i].ID == id {
			return &d.Slides[i]
		}
	}
	return nil
}

type DeckStore interface {
	CreateDeck(d *Deck) error
	GetDeck(id string) (*Deck, error)
	ListDecks() ([]Deck, error)
	UpdateDeck(d *Deck) error
	// SaveDeck atomically replaces the deck row plus all slides and blocks.
	SaveDeck(d *Deck) error
	DeleteDeck(id string) error

	CreateSlide(s *Slide) error
	GetSlide(id string) (*Slide, error)
	ListSlides(deckID string) ([]Slide, error)
	UpdateSlide(s *Slide) error
	DeleteSlidesByDeck(deckID string) error
}
