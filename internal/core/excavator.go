package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/graphmine/excavator/internal/config"
	"github.com/graphmine/excavator/internal/core/clique"
	"github.com/graphmine/excavator/internal/core/crawl"
	"github.com/graphmine/excavator/internal/core/model"
	"github.com/graphmine/excavator/internal/core/perturb"
	"github.com/graphmine/excavator/internal/core/translate"
	"github.com/graphmine/excavator/internal/driver"
	"github.com/graphmine/excavator/internal/provider"
)

// Excavator runs the full pipeline: per-language bounded crawls, translation
// resolution, clique closure, assembly, perturbation, persistence.
type Excavator struct {
	Driver       driver.GraphDriver
	Links        provider.LinkProvider
	Translations provider.TranslationProvider
	Content      provider.ContentProvider
	Config       *config.Config
}

func NewExcavator(d driver.GraphDriver, links provider.LinkProvider, translations provider.TranslationProvider, content provider.ContentProvider, cfg *config.Config) *Excavator {
	return &Excavator{
		Driver:       d,
		Links:        links,
		Translations: translations,
		Content:      content,
		Config:       cfg,
	}
}

// LanguageStats summarizes one language's contribution to the run.
type LanguageStats struct {
	Lang             string `json:"lang"`
	StartID          string `json:"start_id"`
	Vertices         int    `json:"vertices"`
	RedEdges         int    `json:"red_edges"`
	TranslationPairs int    `json:"translation_pairs"`
}

// Stats summarizes a whole run.
type Stats struct {
	Seed           int64             `json:"seed"`
	Languages      []LanguageStats   `json:"languages"`
	Failed         map[string]string `json:"failed,omitempty"` // lang -> error
	BlueEdges      int               `json:"blue_edges"`
	Vertices       int               `json:"vertices"`
	EdgesAssembled int               `json:"edges_assembled"`
	EdgesFinal     int               `json:"edges_final"`
}

// langResult is one worker's output slot. Workers never share slots, so the
// slice needs no locking.
type langResult struct {
	crawl *crawl.Result
	table translate.Table
	err   error
}

// Excavate builds the sampled graph without persisting it.
//
// Each language gets its own worker that crawls and then resolves
// translations for its own vertices; nothing is shared until every worker is
// done, because clique closure needs the union of all vertex sets. A language
// whose provider fails transiently is dropped whole (logged, reported in
// Stats.Failed) without touching the others; a language whose translation
// stage fails keeps its vertices and red edges but contributes no pairs.
func (e *Excavator) Excavate(ctx context.Context) (*model.Graph, *Stats, error) {
	cfg := e.Config
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	seed := cfg.Perturbation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	languages := cfg.Excavation.Languages
	colors := languageColors(languages, rng)

	results := make([]langResult, len(languages))
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.Concurrency.CrawlWorkers)

	for i, lang := range languages {
		i, lang := i, lang
		startID := cfg.Excavation.StartTitles[i]
		// Each worker gets its own source so truncation sampling never
		// races and stays reproducible regardless of scheduling.
		workerSeed := seed + int64(i) + 1

		eg.Go(func() error {
			crawler := &crawl.Crawler{
				Links:    e.Links,
				MaxLinks: cfg.Excavation.MaxLinksPerPage,
			}
			if cfg.Excavation.RandomTruncation {
				crawler.Random = rand.New(rand.NewSource(workerSeed))
			}

			res, err := crawler.Crawl(gctx, startID, lang, cfg.Excavation.MaxPagesPerLang)
			if err != nil {
				results[i] = langResult{err: err}
				return nil // other languages keep going
			}

			table, err := translate.New(e.Translations).Resolve(gctx, res.Vertices, lang, languages)
			if err != nil {
				log.Printf("Warning: translation stage failed for %s, keeping crawl without pairs: %v", lang, err)
				table = nil
			}

			results[i] = langResult{crawl: res, table: table}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}

	stats := &Stats{Seed: seed, Failed: make(map[string]string)}
	var crawls []*crawl.Result
	var tables []translate.Table
	known := make(map[string]bool)

	for i, lang := range languages {
		r := results[i]
		if r.err != nil {
			log.Printf("Warning: abandoning language %s: %v", lang, r.err)
			stats.Failed[lang] = r.err.Error()
			continue
		}
		crawls = append(crawls, r.crawl)
		if r.table != nil {
			tables = append(tables, r.table)
		}
		for id := range r.crawl.Vertices {
			known[id] = true
		}
		pairs := 0
		for _, m := range r.table {
			pairs += len(m)
		}
		stats.Languages = append(stats.Languages, LanguageStats{
			Lang:             lang,
			StartID:          cfg.Excavation.StartTitles[i],
			Vertices:         len(r.crawl.Vertices),
			RedEdges:         len(r.crawl.Edges),
			TranslationPairs: pairs,
		})
	}
	if len(crawls) == 0 {
		return nil, nil, fmt.Errorf("excavate: every language crawl failed")
	}
	if len(stats.Failed) == 0 {
		stats.Failed = nil
	}

	blueEdges := clique.BuildCliqueEdges(tables, known)
	stats.BlueEdges = len(blueEdges)

	g := Assemble(crawls, colors, blueEdges)
	stats.Vertices = g.VertexCount()
	stats.EdgesAssembled = g.EdgeCount()

	if cfg.Excavation.CaptureContent && e.Content != nil {
		e.captureContent(ctx, g)
	}

	if _, err := perturb.Perturb(g, cfg.Perturbation.InversionChance, cfg.Perturbation.RemovalChance, rng); err != nil {
		return nil, nil, err
	}
	stats.EdgesFinal = g.EdgeCount()

	log.Printf("Excavated graph: %d vertices, %d edges (%d before perturbation, %d blue)",
		stats.Vertices, stats.EdgesFinal, stats.EdgesAssembled, stats.BlueEdges)

	return g, stats, nil
}

// Run excavates and persists the graph under a fresh run ID.
func (e *Excavator) Run(ctx context.Context) (string, *Stats, error) {
	g, stats, err := e.Excavate(ctx)
	if err != nil {
		return "", nil, err
	}

	runID := uuid.New().String()
	if err := e.Driver.SaveGraph(ctx, runID, g); err != nil {
		return "", nil, fmt.Errorf("failed to save graph: %w", err)
	}
	return runID, stats, nil
}

// captureContent attaches summary text to every vertex. Ambiguous titles are
// retried once with their first disambiguation candidate; anything that still
// fails leaves the vertex in place with empty content.
func (e *Excavator) captureContent(ctx context.Context, g *model.Graph) {
	for _, v := range g.Vertices() {
		text, err := e.Content.GetSummary(ctx, v.ID, v.Lang)
		if err != nil {
			var amb *provider.AmbiguousTitleError
			if errors.As(err, &amb) && len(amb.Candidates) > 0 {
				text, err = e.Content.GetSummary(ctx, amb.Candidates[0], v.Lang)
			}
		}
		if err != nil {
			text = ""
		}
		v.Content = text
		g.AddVertex(v)
	}
}
