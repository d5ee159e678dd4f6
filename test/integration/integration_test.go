//go:build integration

package integration

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphmine/excavator/internal/core/model"
	"github.com/graphmine/excavator/internal/driver"
)

func memgraphDriver(t *testing.T) *driver.MemgraphDriver {
	t.Helper()
	_ = godotenv.Load("../../.env")

	uri := os.Getenv("MEMGRAPH_URI")
	if uri == "" {
		t.Skip("Skipping integration test: MEMGRAPH_URI not set")
	}
	user := os.Getenv("MEMGRAPH_USER")
	pwd := os.Getenv("MEMGRAPH_PASSWORD")

	d, err := driver.NewMemgraphDriver(uri, user, pwd)
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close(context.Background()) })
	return d
}

func TestMemgraphRoundTrip(t *testing.T) {
	d := memgraphDriver(t)
	ctx := context.Background()
	require.NoError(t, d.BuildIndices(ctx))

	g := model.NewGraph()
	g.AddVertex(model.Vertex{ID: "Mathematics", Lang: "en", Color: "#1A2B3C", Content: "The study of structure."})
	g.AddVertex(model.Vertex{ID: "Algebra", Lang: "en", Color: "#1A2B3C"})
	g.AddVertex(model.Vertex{ID: "Mathématiques", Lang: "fr", Color: "#4D5E6F"})
	g.SetEdge("Mathematics", "Algebra", model.ColorRed)
	g.SetEdge("Mathematics", "Mathématiques", model.ColorBlue)

	runID := uuid.New().String()
	t.Cleanup(func() { _ = d.DeleteRun(context.Background(), runID) })

	require.NoError(t, d.SaveGraph(ctx, runID, g))

	loaded, err := d.LoadGraph(ctx, runID)
	require.NoError(t, err)
	assert.True(t, g.Equal(loaded), "graph must round-trip losslessly through Memgraph")
}

func TestMemgraphSaveIsIdempotent(t *testing.T) {
	d := memgraphDriver(t)
	ctx := context.Background()

	g := model.NewGraph()
	g.AddVertex(model.Vertex{ID: "A", Lang: "en"})
	g.AddVertex(model.Vertex{ID: "B", Lang: "en"})
	g.SetEdge("A", "B", model.ColorRed)

	runID := uuid.New().String()
	t.Cleanup(func() { _ = d.DeleteRun(context.Background(), runID) })

	require.NoError(t, d.SaveGraph(ctx, runID, g))
	require.NoError(t, d.SaveGraph(ctx, runID, g))

	loaded, err := d.LoadGraph(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.VertexCount())
	assert.Equal(t, 1, loaded.EdgeCount())
}
