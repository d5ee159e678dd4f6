package model

// Vertex is a document discovered by a crawl. The ID is the document title,
// unique within its language; graph identity is the ID string alone.
type Vertex struct {
	ID      string `json:"id"`
	Lang    string `json:"lang"`
	Color   string `json:"color,omitempty"`   // display color assigned per language
	Content string `json:"content,omitempty"` // optional captured summary text
}
