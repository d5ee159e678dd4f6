package driver

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/graphmine/excavator/internal/core/model"
)

// JSONFileDriver stores each run as one JSON document on disk. It exists so
// the pipeline and its tests can run without a graph database; the format
// round-trips everything the memgraph driver does.
type JSONFileDriver struct {
	Dir string
}

type graphFile struct {
	Vertices []model.Vertex `json:"vertices"`
	Edges    []model.Edge   `json:"edges"`
}

func NewJSONFileDriver(dir string) (*JSONFileDriver, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create graph directory '%s': %w", dir, err)
	}
	return &JSONFileDriver{Dir: dir}, nil
}

func (d *JSONFileDriver) path(runID string) string {
	return filepath.Join(d.Dir, runID+".json")
}

func (d *JSONFileDriver) SaveGraph(ctx context.Context, runID string, g *model.Graph) error {
	doc := graphFile{Vertices: g.Vertices(), Edges: g.Edges()}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode graph: %w", err)
	}
	if err := os.WriteFile(d.path(runID), data, 0o644); err != nil {
		return fmt.Errorf("failed to write graph file: %w", err)
	}
	return nil
}

func (d *JSONFileDriver) LoadGraph(ctx context.Context, runID string) (*model.Graph, error) {
	data, err := os.ReadFile(d.path(runID))
	if err != nil {
		return nil, fmt.Errorf("failed to read graph file: %w", err)
	}
	var doc graphFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode graph file: %w", err)
	}

	g := model.NewGraph()
	for _, v := range doc.Vertices {
		g.AddVertex(v)
	}
	for _, e := range doc.Edges {
		g.SetEdge(e.A, e.B, e.Color)
	}
	return g, nil
}

func (d *JSONFileDriver) BuildIndices(ctx context.Context) error { return nil }

func (d *JSONFileDriver) Close(ctx context.Context) error { return nil }
