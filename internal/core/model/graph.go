package model

import "sort"

// Graph is a simple undirected two-colored graph: no self-loops, no parallel
// edges. Inserting an existing pair overwrites its color, so whoever writes a
// pair last decides its color. Not safe for concurrent mutation; the pipeline
// only ever mutates it from a single goroutine.
type Graph struct {
	vertices map[string]Vertex
	edges    map[EdgeKey]Color
}

func NewGraph() *Graph {
	return &Graph{
		vertices: make(map[string]Vertex),
		edges:    make(map[EdgeKey]Color),
	}
}

// AddVertex inserts or replaces a vertex keyed by its ID.
func (g *Graph) AddVertex(v Vertex) {
	g.vertices[v.ID] = v
}

func (g *Graph) HasVertex(id string) bool {
	_, ok := g.vertices[id]
	return ok
}

func (g *Graph) Vertex(id string) (Vertex, bool) {
	v, ok := g.vertices[id]
	return v, ok
}

// SetEdge records an undirected edge with the given color. Self-loops are
// refused. Setting an already-present pair is not a duplicate: it just
// rewrites the color.
func (g *Graph) SetEdge(a, b string, c Color) bool {
	if a == b {
		return false
	}
	g.edges[NewEdgeKey(a, b)] = c
	return true
}

func (g *Graph) HasEdge(a, b string) bool {
	_, ok := g.edges[NewEdgeKey(a, b)]
	return ok
}

func (g *Graph) EdgeColor(a, b string) (Color, bool) {
	c, ok := g.edges[NewEdgeKey(a, b)]
	return c, ok
}

func (g *Graph) RemoveEdge(a, b string) {
	delete(g.edges, NewEdgeKey(a, b))
}

func (g *Graph) VertexCount() int { return len(g.vertices) }
func (g *Graph) EdgeCount() int   { return len(g.edges) }

// Vertices returns all vertices sorted by ID for deterministic iteration.
func (g *Graph) Vertices() []Vertex {
	out := make([]Vertex, 0, len(g.vertices))
	for _, v := range g.vertices {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Edges returns all edges in canonical endpoint order, sorted by (A, B).
// Perturbation iterates over this snapshot so removals cannot disturb the
// pass order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, len(g.edges))
	for k, c := range g.edges {
		out = append(out, Edge{A: k.A, B: k.B, Color: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}

// CountByColor returns how many edges currently carry the given color.
func (g *Graph) CountByColor(c Color) int {
	n := 0
	for _, ec := range g.edges {
		if ec == c {
			n++
		}
	}
	return n
}

// Clone returns a deep copy sharing nothing with the receiver.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		vertices: make(map[string]Vertex, len(g.vertices)),
		edges:    make(map[EdgeKey]Color, len(g.edges)),
	}
	for id, v := range g.vertices {
		c.vertices[id] = v
	}
	for k, col := range g.edges {
		c.edges[k] = col
	}
	return c
}

// Equal reports whether two graphs have identical vertex and edge sets,
// including vertex attributes and edge colors.
func (g *Graph) Equal(o *Graph) bool {
	if len(g.vertices) != len(o.vertices) || len(g.edges) != len(o.edges) {
		return false
	}
	for id, v := range g.vertices {
		ov, ok := o.vertices[id]
		if !ok || ov != v {
			return false
		}
	}
	for k, c := range g.edges {
		oc, ok := o.edges[k]
		if !ok || oc != c {
			return false
		}
	}
	return true
}
