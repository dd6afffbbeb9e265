package server

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mikkelkrogsholm/metal-history-graph/internal/config"
	"github.com/mikkelkrogsholm/metal-history-graph/internal/core"
	"github.com/mikkelkrogsholm/metal-history-graph/internal/core/extraction"
	"github.com/mikkelkrogsholm/metal-history-graph/internal/core/model"
	"github.com/mikkelkrogsholm/metal-history-graph/internal/core/resolve"
	"github.com/mikkelkrogsholm/metal-history-graph/internal/driver"
	"github.com/mikkelkrogsholm/metal-history-graph/internal/llm"
)

// Server wraps the resolution pipeline behind a small HTTP API. Each batch
// request runs against a fresh store; the latest materialized graph is kept
// for the read endpoints.
type Server struct {
	cfg    *config.Config
	llm    llm.LLMClient
	driver driver.GraphDriver
	log    *zap.Logger

	mu    sync.RWMutex
	graph *model.ResolvedGraph
}

func NewServer(cfg *config.Config, llmClient llm.LLMClient, graphDriver driver.GraphDriver, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		cfg:    cfg,
		llm:    llmClient,
		driver: graphDriver,
		log:    logger,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.POST("/batches", s.ProcessBatch)
	r.GET("/entities/:category", s.GetEntities)
	r.GET("/relationships", s.GetRelationships)

	return r
}

type BatchRequest struct {
	Chunks  []model.Chunk `json:"chunks"`
	Persist bool          `json:"persist"`
}

func (s *Server) ProcessBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if len(req.Chunks) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No chunks supplied"})
		return
	}

	store := resolve.NewStore(resolve.Config{
		PrimaryThreshold:   s.cfg.Resolver.PrimaryThreshold,
		SecondaryThreshold: s.cfg.Resolver.SecondaryThreshold,
		FreeTextThreshold:  s.cfg.Resolver.FreeTextThreshold,
		Policy:             resolve.RouterPolicy(s.cfg.Resolver.RouterPolicy),
	}, s.log)

	var arbiter resolve.Arbiter
	if s.cfg.Resolver.EscalationEnabled {
		arbiter = resolve.NewLLMArbiter(s.llm, s.cfg.Prompts.Arbiter)
	}

	extractor := extraction.NewExtractor(s.llm, s.cfg.Prompts.Extraction)
	pipeline := core.NewPipeline(extractor, store, arbiter, s.log, s.cfg.Concurrency.ExtractWorkers)

	graph, err := pipeline.ProcessChunks(c.Request.Context(), req.Chunks)
	if err != nil {
		s.log.Error("batch processing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process batch"})
		return
	}

	if req.Persist && s.driver != nil {
		if err := driver.PersistGraph(c.Request.Context(), s.driver, graph); err != nil {
			s.log.Error("failed to persist graph", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to persist graph"})
			return
		}
	}

	s.mu.Lock()
	s.graph = graph
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"status": "success", "stats": graph.Stats})
}

func (s *Server) GetEntities(c *gin.Context) {
	category := model.Category(c.Param("category"))

	s.mu.RLock()
	graph := s.graph
	s.mu.RUnlock()

	if graph == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No batch processed yet"})
		return
	}

	entities := graph.Entities[category]
	if entities == nil {
		entities = []model.CanonicalEntity{}
	}
	c.JSON(http.StatusOK, gin.H{"entities": entities})
}

func (s *Server) GetRelationships(c *gin.Context) {
	s.mu.RLock()
	graph := s.graph
	s.mu.RUnlock()

	if graph == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No batch processed yet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"relationships": graph.Relationships})
}
