package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/graphmine/excavator/internal/core/model"
	"github.com/graphmine/excavator/internal/provider"
)

// mockProviders serves canned corpus data keyed by "lang:id". Titles without
// a link entry report ErrNotFound; languages listed in failLangs fail every
// link call with a transient error.
type mockProviders struct {
	links     map[string][]string
	trans     map[string]map[string]string
	summaries map[string]string
	ambiguous map[string][]string // id -> disambiguation candidates
	failLangs map[string]bool
}

func (m *mockProviders) GetLinks(ctx context.Context, id, lang string) ([]string, error) {
	if m.failLangs[lang] {
		return nil, &provider.ProviderError{Op: "fetch", Err: fmt.Errorf("unreachable")}
	}
	links, ok := m.links[lang+":"+id]
	if !ok {
		return nil, fmt.Errorf("links %s/%s: %w", lang, id, provider.ErrNotFound)
	}
	return links, nil
}

func (m *mockProviders) GetTranslations(ctx context.Context, id, lang string) (map[string]string, error) {
	return m.trans[lang+":"+id], nil
}

func (m *mockProviders) GetSummary(ctx context.Context, id, lang string) (string, error) {
	if candidates, ok := m.ambiguous[id]; ok {
		return "", &provider.AmbiguousTitleError{Title: id, Candidates: candidates}
	}
	text, ok := m.summaries[id]
	if !ok {
		return "", fmt.Errorf("summary %s/%s: %w", lang, id, provider.ErrNotFound)
	}
	return text, nil
}

// memDriver keeps saved graphs in memory.
type memDriver struct {
	mu     sync.Mutex
	graphs map[string]*model.Graph
}

func newMemDriver() *memDriver {
	return &memDriver{graphs: make(map[string]*model.Graph)}
}

func (d *memDriver) SaveGraph(ctx context.Context, runID string, g *model.Graph) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.graphs[runID] = g.Clone()
	return nil
}

func (d *memDriver) LoadGraph(ctx context.Context, runID string) (*model.Graph, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	g, ok := d.graphs[runID]
	if !ok {
		return nil, fmt.Errorf("run %s not found", runID)
	}
	return g.Clone(), nil
}

func (d *memDriver) BuildIndices(ctx context.Context) error { return nil }
func (d *memDriver) Close(ctx context.Context) error        { return nil }
