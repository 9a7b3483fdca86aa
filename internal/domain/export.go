package domain

// SlideExport is the flattened {title, content} pair handed to external
// document renderers and to the analysis collaborator. It is a lossy, one-way
// projection: visuals are dropped and a Slide is never reconstructed from it.
type SlideExport struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
