// Package perturb applies randomized noise to a finished graph: independent
// per-edge color inversion and removal.
package perturb

import (
	"fmt"
	"math/rand"

	"github.com/graphmine/excavator/internal/core/model"
)

// Perturb mutates g in place and returns it. For every edge it draws one
// inversion trial and one removal trial, in that order, from the supplied
// source; both trials always happen, so an edge can be inverted and then
// removed, and a run is fully reproducible from the seed. Iteration walks a
// sorted snapshot of the edge set, so removals cannot shift the pass order.
func Perturb(g *model.Graph, pInvert, pRemove float64, rng *rand.Rand) (*model.Graph, error) {
	if rng == nil {
		return nil, fmt.Errorf("perturb: nil random source")
	}
	if pInvert < 0 || pInvert > 1 {
		return nil, fmt.Errorf("perturb: inversion probability %v out of [0,1]", pInvert)
	}
	if pRemove < 0 || pRemove > 1 {
		return nil, fmt.Errorf("perturb: removal probability %v out of [0,1]", pRemove)
	}

	for _, e := range g.Edges() {
		if rng.Float64() < pInvert {
			g.SetEdge(e.A, e.B, e.Color.Invert())
		}
		if rng.Float64() < pRemove {
			g.RemoveEdge(e.A, e.B)
		}
	}
	return g, nil
}
