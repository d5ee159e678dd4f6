// Package crawl discovers vertices and same-language link edges by bounded
// breadth-first traversal of a document corpus, one crawl per language.
package crawl

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/graphmine/excavator/internal/provider"
)

// Result holds everything a single-language crawl discovered. Vertices is the
// visited set; every edge has both endpoints in Vertices.
type Result struct {
	Lang     string
	StartID  string
	Vertices map[string]bool
	Edges    [][2]string // (source, link) in discovery order
}

// Crawler runs bounded BFS over a LinkProvider. A Crawler owns no shared
// state across calls, so one instance per language goroutine is fine.
type Crawler struct {
	Links provider.LinkProvider

	// MaxLinks caps how many links a single expansion may contribute.
	// Zero means no cap.
	MaxLinks int

	// Random, when set, selects a uniform random subset of new links
	// whenever the vertex budget cannot take them all. When nil the crawl
	// keeps the deterministic prefix that fits instead.
	Random *rand.Rand
}

func New(links provider.LinkProvider) *Crawler {
	return &Crawler{Links: links}
}

// Crawl runs BFS from startID until the frontier drains or maxVertices
// documents are known. Documents that turn out not to exist are dropped along
// with their incident edges and never fetched again; any other provider
// failure abandons the crawl.
func (c *Crawler) Crawl(ctx context.Context, startID, lang string, maxVertices int) (*Result, error) {
	if maxVertices <= 0 {
		return nil, fmt.Errorf("crawl %s: vertex budget must be positive, got %d", lang, maxVertices)
	}

	visited := map[string]bool{startID: true}
	missing := make(map[string]bool)
	queue := []string{startID}
	var edges [][2]string

	for len(queue) > 0 && len(visited) < maxVertices {
		current := queue[0]
		queue = queue[1:]

		links, err := c.Links.GetLinks(ctx, current, lang)
		if err != nil {
			if errors.Is(err, provider.ErrNotFound) {
				// The document is absent: drop the vertex and
				// everything already recorded against it, and
				// tombstone it so a later expansion cannot
				// re-admit it.
				delete(visited, current)
				missing[current] = true
				edges = dropEndpoint(edges, current)
				continue
			}
			return nil, fmt.Errorf("crawl %s/%s: %w", lang, current, err)
		}

		if c.MaxLinks > 0 && len(links) > c.MaxLinks {
			links = c.truncate(links, c.MaxLinks)
		}

		// Which of the discovered links are new, in page order and
		// without repeats.
		var unseen []string
		seenHere := make(map[string]bool)
		for _, link := range links {
			if link == current || visited[link] || missing[link] || seenHere[link] {
				continue
			}
			seenHere[link] = true
			unseen = append(unseen, link)
		}

		// New links consume vertex budget; links to already-known
		// vertices never do and always become edges.
		remaining := maxVertices - len(visited)
		if len(unseen) > remaining {
			unseen = c.truncate(unseen, remaining)
		}
		admit := make(map[string]bool, len(unseen))
		for _, link := range unseen {
			admit[link] = true
		}

		for _, link := range links {
			if link == current {
				continue // provider filters these, but never trust it
			}
			if visited[link] {
				edges = append(edges, [2]string{current, link})
				continue
			}
			if admit[link] {
				admit[link] = false
				visited[link] = true
				queue = append(queue, link)
				edges = append(edges, [2]string{current, link})
			}
		}
	}

	return &Result{Lang: lang, StartID: startID, Vertices: visited, Edges: edges}, nil
}

// truncate cuts links down to n entries: the prefix by default, or a uniform
// random subset in original order when Random is set.
func (c *Crawler) truncate(links []string, n int) []string {
	if len(links) <= n {
		return links
	}
	if c.Random == nil {
		return links[:n]
	}
	picked := c.Random.Perm(len(links))[:n]
	keep := make(map[int]bool, n)
	for _, i := range picked {
		keep[i] = true
	}
	out := make([]string, 0, n)
	for i, link := range links {
		if keep[i] {
			out = append(out, link)
		}
	}
	return out
}

func dropEndpoint(edges [][2]string, id string) [][2]string {
	out := edges[:0]
	for _, e := range edges {
		if e[0] == id || e[1] == id {
			continue
		}
		out = append(out, e)
	}
	return out
}
