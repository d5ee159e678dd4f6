package server

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/graphmine/excavator/internal/config"
	"github.com/graphmine/excavator/internal/core"
	"github.com/graphmine/excavator/internal/driver"
	"github.com/graphmine/excavator/internal/provider"
)

type Server struct {
	Config       *config.Config
	Driver       driver.GraphDriver
	Links        provider.LinkProvider
	Translations provider.TranslationProvider
	Content      provider.ContentProvider
}

func NewServer() *Server {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("Warning: could not load %s: %v. Using defaults", cfgPath, err)
		cfg = config.Default()
	}

	// Env vars win over the file.
	if uri := os.Getenv("MEMGRAPH_URI"); uri != "" {
		cfg.Memgraph.URI = uri
	}
	if user := os.Getenv("MEMGRAPH_USER"); user != "" {
		cfg.Memgraph.User = user
	}
	if pass := os.Getenv("MEMGRAPH_PASSWORD"); pass != "" {
		cfg.Memgraph.Password = pass
	}
	if backend := os.Getenv("STORAGE_BACKEND"); backend != "" {
		cfg.Storage.Backend = backend
	}
	if dir := os.Getenv("GRAPH_DIR"); dir != "" {
		cfg.Storage.Dir = dir
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
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

	links, translations, content, err := provider.New(cfg.Wikipedia, cfg.Excavation.ContentChars)
	if err != nil {
		log.Fatalf("Failed to initialize providers: %v", err)
	}

	return &Server{
		Config:       cfg,
		Driver:       d,
		Links:        links,
		Translations: translations,
		Content:      content,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/health", s.Health)
	r.POST("/excavate", s.Excavate)
	r.GET("/graphs/:run", s.GetGraph)

	return r
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ExcavateRequest overrides parts of the configured excavation for one run.
// Absent fields keep the configured values.
type ExcavateRequest struct {
	Languages       []string `json:"languages"`
	StartTitles     []string `json:"start_titles"`
	MaxPagesPerLang int      `json:"max_pages_per_lang"`
	InversionChance *float64 `json:"inversion_chance"`
	RemovalChance   *float64 `json:"removal_chance"`
	Seed            *int64   `json:"seed"`
	CaptureContent  *bool    `json:"capture_content"`
}

func (s *Server) Excavate(c *gin.Context) {
	var req ExcavateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	cfg := *s.Config
	if len(req.Languages) > 0 {
		cfg.Excavation.Languages = req.Languages
	}
	if len(req.StartTitles) > 0 {
		cfg.Excavation.StartTitles = req.StartTitles
	}
	if req.MaxPagesPerLang > 0 {
		cfg.Excavation.MaxPagesPerLang = req.MaxPagesPerLang
	}
	if req.InversionChance != nil {
		cfg.Perturbation.InversionChance = *req.InversionChance
	}
	if req.RemovalChance != nil {
		cfg.Perturbation.RemovalChance = *req.RemovalChance
	}
	if req.Seed != nil {
		cfg.Perturbation.Seed = *req.Seed
	}
	if req.CaptureContent != nil {
		cfg.Excavation.CaptureContent = *req.CaptureContent
	}
	if err := cfg.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ex := core.NewExcavator(s.Driver, s.Links, s.Translations, s.Content, &cfg)
	runID, stats, err := ex.Run(c.Request.Context())
	if err != nil {
		log.Printf("Failed to excavate: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to excavate"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"run_id": runID, "stats": stats})
}

func (s *Server) GetGraph(c *gin.Context) {
	runID := c.Param("run")
	g, err := s.Driver.LoadGraph(c.Request.Context(), runID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Graph not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vertices": g.Vertices(),
		"edges":    g.Edges(),
	})
}
