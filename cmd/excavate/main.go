// Command excavate runs one excavation from configuration and prints where
// the sampled graph was stored.
package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/graphmine/excavator/internal/config"
	"github.com/graphmine/excavator/internal/core"
	"github.com/graphmine/excavator/internal/driver"
	"github.com/graphmine/excavator/internal/provider"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var d driver.GraphDriver
	switch cfg.Storage.Backend {
	case "memgraph":
		d, err = driver.NewMemgraphDriver(cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password)
		if err != nil {
			log.Fatalf("Failed to connect to Memgraph: %v", err)
		}
	default:
		d, err = driver.NewJSONFileDriver(cfg.Storage.Dir)
		if err != nil {
			log.Fatalf("Failed to open graph directory: %v", err)
		}
	}
	defer d.Close(context.Background())

	links, translations, content, err := provider.New(cfg.Wikipedia, cfg.Excavation.ContentChars)
	if err != nil {
		log.Fatalf("Failed to initialize providers: %v", err)
	}

	if err := d.BuildIndices(context.Background()); err != nil {
		log.Printf("Warning: failed to build indices: %v", err)
	}

	ex := core.NewExcavator(d, links, translations, content, cfg)
	runID, stats, err := ex.Run(context.Background())
	if err != nil {
		log.Fatalf("Excavation failed: %v", err)
	}

	log.Printf("Saved run %s (seed %d)", runID, stats.Seed)
	for _, ls := range stats.Languages {
		log.Printf("  %s: %d vertices, %d link edges, %d translation pairs (start %q)",
			ls.Lang, ls.Vertices, ls.RedEdges, ls.TranslationPairs, ls.StartID)
	}
	for lang, msg := range stats.Failed {
		log.Printf("  %s: abandoned (%s)", lang, msg)
	}
	log.Printf("  total: %d vertices, %d edges after perturbation (%d assembled, %d blue)",
		stats.Vertices, stats.EdgesFinal, stats.EdgesAssembled, stats.BlueEdges)
}
