package driver

import (
	"context"
	"fmt"
	"log"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/graphmine/excavator/internal/core/model"
)

const saveBatchSize = 500

// MemgraphDriver persists graphs to a Memgraph (or Neo4j) instance over bolt.
type MemgraphDriver struct {
	Driver neo4j.DriverWithContext
}

func NewMemgraphDriver(uri, username, password string) (*MemgraphDriver, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, err
	}

	if err := driver.VerifyConnectivity(context.Background()); err != nil {
		return nil, err
	}

	log.Println("Connected to Memgraph")
	return &MemgraphDriver{Driver: driver}, nil
}

func (d *MemgraphDriver) Close(ctx context.Context) error {
	return d.Driver.Close(ctx)
}

func (d *MemgraphDriver) executeQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, d.Driver, query, params, neo4j.EagerResultTransformer)
	if err != nil {
		return neo4j.EagerResult{}, fmt.Errorf("failed to execute query: %w", err)
	}
	return *result, nil
}

func (d *MemgraphDriver) BuildIndices(ctx context.Context) error {
	queries := []string{
		"CREATE INDEX ON :Document(id);",
		"CREATE INDEX ON :Document(run_id);",
	}

	for _, q := range queries {
		if _, err := d.executeQuery(ctx, q, nil); err != nil {
			// Index may already exist.
			log.Printf("Warning: failed to create index '%s': %v", q, err)
		}
	}
	return nil
}

// SaveGraph writes all vertices, then all edges, in batches. A rerun with the
// same run ID overwrites attributes rather than duplicating nodes.
func (d *MemgraphDriver) SaveGraph(ctx context.Context, runID string, g *model.Graph) error {
	vertices := g.Vertices()
	for start := 0; start < len(vertices); start += saveBatchSize {
		end := start + saveBatchSize
		if end > len(vertices) {
			end = len(vertices)
		}
		batch := make([]map[string]interface{}, 0, end-start)
		for _, v := range vertices[start:end] {
			batch = append(batch, map[string]interface{}{
				"id":      v.ID,
				"lang":    v.Lang,
				"color":   v.Color,
				"content": v.Content,
			})
		}
		params := map[string]interface{}{"run_id": runID, "vertices": batch}
		if _, err := d.executeQuery(ctx, SaveVerticesQuery, params); err != nil {
			return fmt.Errorf("failed to save vertices: %w", err)
		}
	}

	edges := g.Edges()
	for start := 0; start < len(edges); start += saveBatchSize {
		end := start + saveBatchSize
		if end > len(edges) {
			end = len(edges)
		}
		batch := make([]map[string]interface{}, 0, end-start)
		for _, e := range edges[start:end] {
			batch = append(batch, map[string]interface{}{
				"a":     e.A,
				"b":     e.B,
				"color": string(e.Color),
			})
		}
		params := map[string]interface{}{"run_id": runID, "edges": batch}
		if _, err := d.executeQuery(ctx, SaveEdgesQuery, params); err != nil {
			return fmt.Errorf("failed to save edges: %w", err)
		}
	}

	return nil
}

func (d *MemgraphDriver) LoadGraph(ctx context.Context, runID string) (*model.Graph, error) {
	g := model.NewGraph()
	params := map[string]interface{}{"run_id": runID}

	res, err := d.executeQuery(ctx, LoadVerticesQuery, params)
	if err != nil {
		return nil, fmt.Errorf("failed to load vertices: %w", err)
	}
	for _, rec := range res.Records {
		v := model.Vertex{}
		if id, ok := rec.Get("id"); ok {
			v.ID, _ = id.(string)
		}
		if lang, ok := rec.Get("lang"); ok {
			v.Lang, _ = lang.(string)
		}
		if color, ok := rec.Get("color"); ok {
			v.Color, _ = color.(string)
		}
		if content, ok := rec.Get("content"); ok {
			v.Content, _ = content.(string)
		}
		g.AddVertex(v)
	}

	res, err = d.executeQuery(ctx, LoadEdgesQuery, params)
	if err != nil {
		return nil, fmt.Errorf("failed to load edges: %w", err)
	}
	for _, rec := range res.Records {
		var a, b, color string
		if av, ok := rec.Get("a"); ok {
			a, _ = av.(string)
		}
		if bv, ok := rec.Get("b"); ok {
			b, _ = bv.(string)
		}
		if cv, ok := rec.Get("color"); ok {
			color, _ = cv.(string)
		}
		g.SetEdge(a, b, model.Color(color))
	}

	return g, nil
}

// DeleteRun removes a stored run entirely. Used by integration tests for
// cleanup.
func (d *MemgraphDriver) DeleteRun(ctx context.Context, runID string) error {
	_, err := d.executeQuery(ctx, DeleteRunQuery, map[string]interface{}{"run_id": runID})
	return err
}
