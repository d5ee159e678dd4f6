package crawl

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphmine/excavator/internal/provider"
)

// mapLinks serves canned link lists; unknown titles report ErrNotFound.
type mapLinks struct {
	pages map[string][]string
	calls int
}

func (m *mapLinks) GetLinks(ctx context.Context, id, lang string) ([]string, error) {
	m.calls++
	links, ok := m.pages[id]
	if !ok {
		return nil, fmt.Errorf("links %s/%s: %w", lang, id, provider.ErrNotFound)
	}
	return links, nil
}

type failingLinks struct{}

func (failingLinks) GetLinks(ctx context.Context, id, lang string) ([]string, error) {
	return nil, &provider.ProviderError{Op: "fetch", Err: fmt.Errorf("connection reset")}
}

func TestCrawl_BasicBFS(t *testing.T) {
	links := &mapLinks{pages: map[string][]string{
		"A": {"B", "C"},
		"B": {"C"},
		"C": {},
	}}

	res, err := New(links).Crawl(context.Background(), "A", "en", 10)
	require.NoError(t, err)

	assert.Equal(t, map[string]bool{"A": true, "B": true, "C": true}, res.Vertices)
	assert.Equal(t, [][2]string{{"A", "B"}, {"A", "C"}, {"B", "C"}}, res.Edges)
}

func TestCrawl_RespectsBudget(t *testing.T) {
	// Star around A with 10 leaves, budget 4: A plus the first 3 leaves.
	pages := map[string][]string{"A": {}}
	for i := 0; i < 10; i++ {
		leaf := fmt.Sprintf("L%02d", i)
		pages["A"] = append(pages["A"], leaf)
		pages[leaf] = nil
	}
	links := &mapLinks{pages: pages}

	res, err := New(links).Crawl(context.Background(), "A", "en", 4)
	require.NoError(t, err)

	assert.Len(t, res.Vertices, 4)
	assert.Equal(t, map[string]bool{"A": true, "L00": true, "L01": true, "L02": true}, res.Vertices)

	// Every edge endpoint is a known vertex.
	for _, e := range res.Edges {
		assert.True(t, res.Vertices[e[0]], "endpoint %s not in vertex set", e[0])
		assert.True(t, res.Vertices[e[1]], "endpoint %s not in vertex set", e[1])
	}
}

func TestCrawl_EdgeToKnownVertexWhileBudgetExhausts(t *testing.T) {
	// Expanding B fills the last budget slot with D. The back-link to the
	// already-known A must still become an edge, while E gets neither a
	// vertex nor an edge.
	links := &mapLinks{pages: map[string][]string{
		"A": {"B", "C"},
		"B": {"A", "D", "E"},
		"C": {}, "D": {}, "E": {},
	}}

	res, err := New(links).Crawl(context.Background(), "A", "en", 4)
	require.NoError(t, err)

	assert.Equal(t, map[string]bool{"A": true, "B": true, "C": true, "D": true}, res.Vertices)
	assert.Contains(t, res.Edges, [2]string{"B", "A"})
	assert.Contains(t, res.Edges, [2]string{"B", "D"})
	assert.NotContains(t, res.Edges, [2]string{"B", "E"})
}

func TestCrawl_RandomTruncationDeterministic(t *testing.T) {
	pages := map[string][]string{"A": {}}
	for i := 0; i < 20; i++ {
		leaf := fmt.Sprintf("L%02d", i)
		pages["A"] = append(pages["A"], leaf)
		pages[leaf] = nil
	}

	run := func(seed int64) map[string]bool {
		c := New(&mapLinks{pages: pages})
		c.Random = rand.New(rand.NewSource(seed))
		res, err := c.Crawl(context.Background(), "A", "en", 5)
		require.NoError(t, err)
		return res.Vertices
	}

	first := run(7)
	assert.Len(t, first, 5)
	assert.Equal(t, first, run(7), "same seed must select the same subset")
}

func TestCrawl_NotFoundStartIsEmpty(t *testing.T) {
	links := &mapLinks{pages: map[string][]string{}}

	res, err := New(links).Crawl(context.Background(), "Ghost", "en", 10)
	require.NoError(t, err)

	assert.Empty(t, res.Vertices)
	assert.Empty(t, res.Edges)
}

func TestCrawl_NotFoundVertexDropped(t *testing.T) {
	// B was discovered through A but does not exist: it must vanish along
	// with the A-B edge, while C survives.
	links := &mapLinks{pages: map[string][]string{
		"A": {"B", "C"},
		"C": {},
	}}

	res, err := New(links).Crawl(context.Background(), "A", "en", 10)
	require.NoError(t, err)

	assert.Equal(t, map[string]bool{"A": true, "C": true}, res.Vertices)
	assert.Equal(t, [][2]string{{"A", "C"}}, res.Edges)
}

func TestCrawl_NotFoundVertexNotRefetched(t *testing.T) {
	// B does not exist and C links back to it after the drop. B must stay
	// gone, gain no edge, and be fetched exactly once.
	links := &mapLinks{pages: map[string][]string{
		"A": {"B", "C"},
		"C": {"B", "D"},
		"D": {},
	}}

	res, err := New(links).Crawl(context.Background(), "A", "en", 10)
	require.NoError(t, err)

	assert.Equal(t, map[string]bool{"A": true, "C": true, "D": true}, res.Vertices)
	assert.Equal(t, [][2]string{{"A", "C"}, {"C", "D"}}, res.Edges)
	assert.Equal(t, 4, links.calls, "each document fetched once, missing included")
}

func TestCrawl_ProviderErrorAbandons(t *testing.T) {
	_, err := New(failingLinks{}).Crawl(context.Background(), "A", "en", 10)
	require.Error(t, err)

	var pe *provider.ProviderError
	assert.ErrorAs(t, err, &pe)
}

func TestCrawl_DefensiveSelfLink(t *testing.T) {
	// Providers filter self-links, but the crawler must never emit a
	// self-edge even if one slips through.
	links := &mapLinks{pages: map[string][]string{
		"A": {"A", "B"},
		"B": {},
	}}

	res, err := New(links).Crawl(context.Background(), "A", "en", 10)
	require.NoError(t, err)

	for _, e := range res.Edges {
		assert.NotEqual(t, e[0], e[1])
	}
	assert.Equal(t, [][2]string{{"A", "B"}}, res.Edges)
}

func TestCrawl_MaxLinksCap(t *testing.T) {
	links := &mapLinks{pages: map[string][]string{
		"A": {"B", "C", "D", "E"},
		"B": {}, "C": {}, "D": {}, "E": {},
	}}

	c := New(links)
	c.MaxLinks = 2
	res, err := c.Crawl(context.Background(), "A", "en", 10)
	require.NoError(t, err)

	assert.Equal(t, map[string]bool{"A": true, "B": true, "C": true}, res.Vertices)
}

func TestCrawl_InvalidBudget(t *testing.T) {
	_, err := New(&mapLinks{}).Crawl(context.Background(), "A", "en", 0)
	assert.Error(t, err)
}
