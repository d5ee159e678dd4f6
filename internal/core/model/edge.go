package model

// Color tags an edge with the relation it represents.
type Color string

const (
	// ColorRed marks a same-language hyperlink relation.
	ColorRed Color = "red"
	// ColorBlue marks a cross-language translation-equivalence relation.
	ColorBlue Color = "blue"
)

// Invert toggles between the two edge colors. There is no third color.
func (c Color) Invert() Color {
	if c == ColorRed {
		return ColorBlue
	}
	return ColorRed
}

// EdgeKey is the canonical form of an unordered vertex pair. A is always the
// lexicographically smaller endpoint, so (x,y) and (y,x) map to the same key.
type EdgeKey struct {
	A string
	B string
}

func NewEdgeKey(a, b string) EdgeKey {
	if b < a {
		a, b = b, a
	}
	return EdgeKey{A: a, B: b}
}

// Edge is an undirected colored edge in canonical endpoint order.
type Edge struct {
	A     string `json:"a"`
	B     string `json:"b"`
	Color Color  `json:"color"`
}
