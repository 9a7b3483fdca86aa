package domain

import (
	"strings"
	"testing"
)

func twoSlideDeck() *Deck {
	return &Deck{
		ID: "d1",
		Slides: []Slide{
			{ID: "s1", Title: "The Problem", Content: "Food waste", Design: "minimal"},
			{ID: "s2", Title: "Our Solution", Content: "Smart inventory", Design: "bold"},
		},
	}
}

func TestFingerprintFormat(t *testing.T) {
	d := twoSlideDeck()
	want := "The Problem:Food waste:minimal|Our Solution:Smart inventory:bold"
	if got := d.Fingerprint(); got != want {
		t.Errorf("Fingerprint() = %q, want %q", got, want)
	}
}

func TestFingerprintDeterministic(t *testing.T) {
	d := twoSlideDeck()
	if d.Fingerprint() != d.Fingerprint() {
		t.Error("Fingerprint not deterministic on unmutated deck")
	}
}

func TestFingerprintIgnoresBlocksAndVisuals(t *testing.T) {
	d := twoSlideDeck()
	before := d.Fingerprint()

	d.Slides[0].Blocks = []Block{{ID: "b1", Type: BlockTypeVisual, VisualType: VisualTypeBar, X: 100}}
	d.Slides[0].Visuals = []VisualPayload{{Type: VisualTypeBar}}

	if d.Fingerprint() != before {
		t.Error("Fingerprint changed when only blocks/visuals changed")
	}
}

func TestFingerprintTrimsWhitespace(t *testing.T) {
	d := twoSlideDeck()
	before := d.Fingerprint()

	d.Slides[1].Design = "  bold \n"
	if d.Fingerprint() != before {
		t.Error("Fingerprint sensitive to leading/trailing whitespace")
	}
}

func TestHasChangedSinceRevert(t *testing.T) {
	d := twoSlideDeck()
	fp := d.Fingerprint()

	if d.HasChangedSince(fp) {
		t.Error("HasChangedSince true immediately after fingerprinting")
	}

	original := d.Slides[1].Design
	d.Slides[1].Design = "dark"
	if !d.HasChangedSince(fp) {
		t.Error("HasChangedSince false after design change")
	}

	d.Slides[1].Design = original
	if d.HasChangedSince(fp) {
		t.Error("HasChangedSince true after reverting the change")
	}
}

func TestFingerprintChangesPerField(t *testing.T) {
	mutations := map[string]func(*Deck){
		"title":   func(d *Deck) { d.Slides[0].Title = "A Different Problem" },
		"content": func(d *Deck) { d.Slides[0].Content = "Something else" },
		"design":  func(d *Deck) { d.Slides[0].Design = "brutalist" },
	}
	for name, mutate := range mutations {
		d := twoSlideDeck()
		before := d.Fingerprint()
		mutate(d)
		if d.Fingerprint() == before {
			t.Errorf("Fingerprint unchanged after %s mutation", name)
		}
	}
}

func TestIsStandardSlideTitle(t *testing.T) {
	if !IsStandardSlideTitle("The Problem") {
		t.Error("The Problem should be standard")
	}
	if IsStandardSlideTitle("Random Musings") {
		t.Error("Random Musings should not be standard")
	}
	if len(StandardSlideTitles) != 13 {
		t.Errorf("len(StandardSlideTitles) = %d, want 13", len(StandardSlideTitles))
	}
	if StandardSlideTitles[len(StandardSlideTitles)-1] != "Thank You" {
		t.Errorf("last standard title = %q", StandardSlideTitles[len(StandardSlideTitles)-1])
	}
}

func TestFindSlide(t *testing.T) {
	d := twoSlideDeck()
	if sl := d.FindSlide("s2"); sl == nil || sl.Title != "Our Solution" {
		t.Errorf("FindSlide(s2) = %v", sl)
	}
	if sl := d.FindSlide("nope"); sl != nil {
		t.Errorf("FindSlide(nope) = %v, want nil", sl)
	}
}

func TestFingerprintSeparatorPerSlide(t *testing.T) {
	d := twoSlideDeck()
	if got := strings.Count(d.Fingerprint(), "|"); got != 1 {
		t.Errorf("separator count = %d, want 1 for two slides", got)
	}
}
