package driver

import (
	"context"

	"github.com/graphmine/excavator/internal/core/model"
)

// GraphDriver persists finished graphs and loads them back. Implementations
// must round-trip vertex attributes and edge colors losslessly.
type GraphDriver interface {
	SaveGraph(ctx context.Context, runID string, g *model.Graph) error
	LoadGraph(ctx context.Context, runID string) (*model.Graph, error)
	BuildIndices(ctx context.Context) error
	Close(ctx context.Context) error
}
