package core

import (
	"math/rand"
	"sort"

	"github.com/graphmine/excavator/internal/core/crawl"
	"github.com/graphmine/excavator/internal/core/model"
)

// Assemble merges the per-language crawl results and the translation clique
// edges into one two-colored graph. Vertices get their language and display
// color; red edges go in first, blue edges second, so a pair that is both a
// hyperlink and a translation ends up blue.
//
// Crawl results are processed in the given order. If the same title was
// crawled in two languages it is one vertex, and the later language wins its
// attributes.
func Assemble(crawls []*crawl.Result, colors map[string]string, blueEdges []model.Edge) *model.Graph {
	g := model.NewGraph()

	for _, res := range crawls {
		ids := make([]string, 0, len(res.Vertices))
		for id := range res.Vertices {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			g.AddVertex(model.Vertex{ID: id, Lang: res.Lang, Color: colors[res.Lang]})
		}
	}

	for _, res := range crawls {
		for _, e := range res.Edges {
			g.SetEdge(e[0], e[1], model.ColorRed)
		}
	}

	for _, e := range blueEdges {
		g.SetEdge(e.A, e.B, model.ColorBlue)
	}

	return g
}

const hexDigits = "0123456789ABCDEF"

// languageColors draws one display color per language from the run RNG, in
// language order, so a seed fixes the palette.
func languageColors(languages []string, rng *rand.Rand) map[string]string {
	colors := make(map[string]string, len(languages))
	for _, lang := range languages {
		b := make([]byte, 7)
		b[0] = '#'
		for i := 1; i < len(b); i++ {
			b[i] = hexDigits[rng.Intn(len(hexDigits))]
		}
		colors[lang] = string(b)
	}
	return colors
}
