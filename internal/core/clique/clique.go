// Package clique closes pairwise translation links into equivalence cliques.
//
// Translation is treated as an equivalence relation: if A translates to B and
// B to C, all three are equivalent. The closure is computed with a disjoint
// set over vertex IDs and emitted as one finished edge set, never by growing
// an edge list while iterating over it.
package clique

import (
	"sort"

	"github.com/graphmine/excavator/internal/core/model"
	"github.com/graphmine/excavator/internal/core/translate"
)

// BuildCliqueEdges unions every translation pair whose endpoints are both in
// known, then emits the complete graph over each equivalence class of size
// two or more as blue edges. Output is deduplicated, self-pair free, and in
// deterministic order.
func BuildCliqueEdges(tables []translate.Table, known map[string]bool) []model.Edge {
	d := newDisjointSet()

	for _, table := range tables {
		for id, equivalents := range table {
			if !known[id] {
				continue
			}
			for _, other := range equivalents {
				if other == id || !known[other] {
					continue
				}
				d.union(id, other)
			}
		}
	}

	// Group members by component root.
	components := make(map[string][]string)
	for _, id := range d.members() {
		root := d.find(id)
		components[root] = append(components[root], id)
	}

	var edges []model.Edge
	for _, members := range components {
		if len(members) < 2 {
			continue
		}
		sort.Strings(members)
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				edges = append(edges, model.Edge{A: members[i], B: members[j], Color: model.ColorBlue})
			}
		}
	}

	// Component roots depend on union order, so sort the finished slice
	// instead of trusting per-root grouping for the overall order.
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].A != edges[j].A {
			return edges[i].A < edges[j].A
		}
		return edges[i].B < edges[j].B
	})
	return edges
}

// disjointSet is a union-find over vertex IDs with path compression and
// union by rank.
type disjointSet struct {
	parent map[string]string
	rank   map[string]int
}

func newDisjointSet() *disjointSet {
	return &disjointSet{
		parent: make(map[string]string),
		rank:   make(map[string]int),
	}
}

func (d *disjointSet) add(id string) {
	if _, ok := d.parent[id]; !ok {
		d.parent[id] = id
		d.rank[id] = 0
	}
}

func (d *disjointSet) find(id string) string {
	for d.parent[id] != id {
		d.parent[id] = d.parent[d.parent[id]]
		id = d.parent[id]
	}
	return id
}

func (d *disjointSet) union(a, b string) {
	d.add(a)
	d.add(b)
	rootA, rootB := d.find(a), d.find(b)
	if rootA == rootB {
		return
	}
	switch {
	case d.rank[rootA] < d.rank[rootB]:
		d.parent[rootA] = rootB
	case d.rank[rootA] > d.rank[rootB]:
		d.parent[rootB] = rootA
	default:
		d.parent[rootB] = rootA
		d.rank[rootA]++
	}
}

func (d *disjointSet) members() []string {
	out := make([]string, 0, len(d.parent))
	for id := range d.parent {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
