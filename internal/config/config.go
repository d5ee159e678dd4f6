package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type ExcavationConfig struct {
	Languages        []string `toml:"languages"`
	StartTitles      []string `toml:"start_titles"`
	MaxPagesPerLang  int      `toml:"max_pages_per_lang"`
	MaxLinksPerPage  int      `toml:"max_links_per_page"` // 0 = no cap
	RandomTruncation bool     `toml:"random_truncation"`
	CaptureContent   bool     `toml:"capture_content"`
	ContentChars     int      `toml:"content_chars"`
}

type PerturbationConfig struct {
	InversionChance float64 `toml:"inversion_chance"`
	RemovalChance   float64 `toml:"removal_chance"`
	Seed            int64   `toml:"seed"` // 0 = derive from wall clock
}

type WikipediaConfig struct {
	BaseURL        string `toml:"base_url"`
	UserAgent      string `toml:"user_agent"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	CacheSize      int    `toml:"cache_size"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type StorageConfig struct {
	Backend string `toml:"backend"` // "memgraph" or "jsonfile"
	Dir     string `toml:"dir"`     // jsonfile output directory
}

type ConcurrencyConfig struct {
	CrawlWorkers int `toml:"crawl_workers"`
}

type Config struct {
	Excavation   ExcavationConfig   `toml:"excavation"`
	Perturbation PerturbationConfig `toml:"perturbation"`
	Wikipedia    WikipediaConfig    `toml:"wikipedia"`
	Memgraph     MemgraphConfig     `toml:"memgraph"`
	Storage      StorageConfig      `toml:"storage"`
	Concurrency  ConcurrencyConfig  `toml:"concurrency"`
}

func Default() *Config {
	return &Config{
		Excavation: ExcavationConfig{
			Languages:       []string{"en", "fr", "es"},
			StartTitles:     []string{"Mathematics", "Mathématiques", "Matemáticas"},
			MaxPagesPerLang: 100,
			ContentChars:    280,
		},
		Perturbation: PerturbationConfig{
			InversionChance: 0.1,
			RemovalChance:   0.8,
		},
		Wikipedia: WikipediaConfig{
			UserAgent:      "excavator/1.0",
			TimeoutSeconds: 15,
			CacheSize:      4096,
		},
		Memgraph: MemgraphConfig{
			URI: "bolt://localhost:7687",
		},
		Storage: StorageConfig{
			Backend: "jsonfile",
			Dir:     "excavated",
		},
		Concurrency: ConcurrencyConfig{
			CrawlWorkers: 3,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate enforces the configuration invariants. These are the only errors
// that abort a whole run.
func (c *Config) Validate() error {
	ex := c.Excavation
	if len(ex.Languages) == 0 {
		return fmt.Errorf("config: languages must not be empty")
	}
	if len(ex.StartTitles) != len(ex.Languages) {
		return fmt.Errorf("config: need one start title per language (%d titles, %d languages)",
			len(ex.StartTitles), len(ex.Languages))
	}
	seen := make(map[string]bool, len(ex.Languages))
	for _, lang := range ex.Languages {
		if lang == "" {
			return fmt.Errorf("config: empty language code")
		}
		if seen[lang] {
			return fmt.Errorf("config: duplicate language %q", lang)
		}
		seen[lang] = true
	}
	if ex.MaxPagesPerLang <= 0 {
		return fmt.Errorf("config: max_pages_per_lang must be positive, got %d", ex.MaxPagesPerLang)
	}
	if ex.MaxLinksPerPage < 0 {
		return fmt.Errorf("config: max_links_per_page must not be negative, got %d", ex.MaxLinksPerPage)
	}
	if ex.CaptureContent && ex.ContentChars <= 0 {
		return fmt.Errorf("config: content_chars must be positive when capture_content is set")
	}

	p := c.Perturbation
	if p.InversionChance < 0 || p.InversionChance > 1 {
		return fmt.Errorf("config: inversion_chance must be in [0,1], got %v", p.InversionChance)
	}
	if p.RemovalChance < 0 || p.RemovalChance > 1 {
		return fmt.Errorf("config: removal_chance must be in [0,1], got %v", p.RemovalChance)
	}

	if c.Concurrency.CrawlWorkers <= 0 {
		return fmt.Errorf("config: crawl_workers must be positive, got %d", c.Concurrency.CrawlWorkers)
	}

	switch c.Storage.Backend {
	case "memgraph", "jsonfile":
	default:
		return fmt.Errorf("config: unknown storage backend %q", c.Storage.Backend)
	}

	return nil
}
