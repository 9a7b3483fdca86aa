package domain

import (
	"reflect"
	"testing"
)

func TestMaterializeJoinsTextBlocks(t *testing.T) {
	sl := Slide{
		Title: "Market Size",
		Blocks: []Block{
			{ID: "1", Type: BlockTypeText, Content: "TAM is $40B"},
			{ID: "2", Type: BlockTypeText, Content: "Growing 12% a year"},
		},
	}
	sl.Materialize()

	want := "TAM is $40B\n\nGrowing 12% a year"
	if sl.Content != want {
		t.Errorf("Content = %q, want %q", sl.Content, want)
	}
	if len(sl.Visuals) != 0 {
		t.Errorf("Visuals = %v, want none", sl.Visuals)
	}
}

func TestMaterializeCollectsVisuals(t *testing.T) {
	data := VisualData{Points: []ChartPoint{{Name: "Waste", Value: 30}}}
	sl := Slide{
		Blocks: []Block{
			{ID: "1", Type: BlockTypeText, Content: "Restaurants waste 30% of food"},
			{ID: "2", Type: BlockTypeVisual, VisualType: VisualTypePie, Data: data},
		},
	}
	sl.Materialize()

	if sl.Content != "Restaurants waste 30% of food" {
		t.Errorf("Content = %q", sl.Content)
	}
	if len(sl.Visuals) != 1 {
		t.Fatalf("len(Visuals) = %d, want 1", len(sl.Visuals))
	}
	if sl.Visuals[0].Type != VisualTypePie {
		t.Errorf("Visuals[0].Type = %q, want pie", sl.Visuals[0].Type)
	}
	if !reflect.DeepEqual(sl.Visuals[0].Data, data) {
		t.Errorf("Visuals[0].Data = %+v, want %+v", sl.Visuals[0].Data, data)
	}
}

func TestMaterializeNoBlocksIsNoOp(t *testing.T) {
	sl := Slide{
		Content: "AI-generated content stays",
		Visuals: []VisualPayload{{Type: VisualTypeBar}},
	}
	sl.Materialize()

	if sl.Content != "AI-generated content stays" {
		t.Errorf("Content = %q, want it untouched", sl.Content)
	}
	if len(sl.Visuals) != 1 {
		t.Errorf("Visuals cleared on blockless slide")
	}
}

func TestMaterializeSkipsEmptyTextBlocks(t *testing.T) {
	sl := Slide{
		Blocks: []Block{
			{ID: "1", Type: BlockTypeText, Content: "first"},
			{ID: "2", Type: BlockTypeText, Content: "   "},
			{ID: "3", Type: BlockTypeText, Content: "second"},
		},
	}
	sl.Materialize()

	if sl.Content != "first\n\nsecond" {
		t.Errorf("Content = %q", sl.Content)
	}
}

func TestNormalizeRichText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain text", "plain text"},
		{"<p>wrapped</p>", "wrapped"},
		{"  <p> padded </p>  ", "padded"},
		{"<p>one</p><p>two</p>", "<p>one</p><p>two</p>"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeRichText(tt.in); got != tt.want {
			t.Errorf("NormalizeRichText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMediaAttachmentsAreExclusive(t *testing.T) {
	var sl Slide
	sl.SetImageURL("https://example.com/a.png")
	sl.SetVideoURL("https://example.com/b.mp4")

	if sl.ImageURL != "" {
		t.Errorf("ImageURL = %q, want cleared after video set", sl.ImageURL)
	}
	if sl.VideoURL != "https://example.com/b.mp4" {
		t.Errorf("VideoURL = %q", sl.VideoURL)
	}

	sl.SetImageURL("https://example.com/c.png")
	if sl.VideoURL != "" {
		t.Errorf("VideoURL = %q, want cleared after image set", sl.VideoURL)
	}
}
