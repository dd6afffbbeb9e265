package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mikkelkrogsholm/metal-history-graph/internal/config"
	"github.com/mikkelkrogsholm/metal-history-graph/internal/core"
	"github.com/mikkelkrogsholm/metal-history-graph/internal/core/extraction"
	"github.com/mikkelkrogsholm/metal-history-graph/internal/core/model"
	"github.com/mikkelkrogsholm/metal-history-graph/internal/core/resolve"
	"github.com/mikkelkrogsholm/metal-history-graph/internal/driver"
	"github.com/mikkelkrogsholm/metal-history-graph/internal/llm"
)

// chunksFile matches the chunker's output format: chunks grouped per source
// document.
type chunksFile struct {
	Documents map[string][]model.Chunk `json:"documents"`
}

func main() {
	var (
		cfgPath    = flag.String("config", "config/config.toml", "path to config file")
		chunksPath = flag.String("chunks", "history/chunks_optimized.json", "path to chunks JSON")
		outPath    = flag.String("output", "extracted_entities.json", "output file for the resolved graph")
		limit      = flag.Int("limit", 0, "max chunks to process (0 = all)")
		persist    = flag.Bool("persist", false, "write the resolved graph to Memgraph")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Printf("Could not load %s: %v. Using defaults.", *cfgPath, err)
		cfg = config.Default()
	}

	logger, err := config.InitLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	chunks, err := loadChunks(*chunksPath, *limit)
	if err != nil {
		log.Fatalf("Failed to load chunks: %v", err)
	}
	fmt.Printf("Processing %d chunks...\n", len(chunks))

	ctx := context.Background()

	llmClient, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}

	store := resolve.NewStore(resolve.Config{
		PrimaryThreshold:   cfg.Resolver.PrimaryThreshold,
		SecondaryThreshold: cfg.Resolver.SecondaryThreshold,
		FreeTextThreshold:  cfg.Resolver.FreeTextThreshold,
		Policy:             resolve.RouterPolicy(cfg.Resolver.RouterPolicy),
	}, logger)

	var arbiter resolve.Arbiter
	if cfg.Resolver.EscalationEnabled {
		arbiter = resolve.NewLLMArbiter(llmClient, cfg.Prompts.Arbiter)
	}

	extractor := extraction.NewExtractor(llmClient, cfg.Prompts.Extraction)
	pipeline := core.NewPipeline(extractor, store, arbiter, logger, cfg.Concurrency.ExtractWorkers)

	graph, err := pipeline.ProcessChunks(ctx, chunks)
	if err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}

	if *persist {
		d, err := driver.NewMemgraphDriver(cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password, logger)
		if err != nil {
			log.Fatalf("Failed to connect to Memgraph: %v", err)
		}
		defer d.Close(ctx)
		if err := d.BuildIndices(ctx); err != nil {
			log.Printf("Failed to build indices: %v", err)
		}
		if err := driver.PersistGraph(ctx, d, graph); err != nil {
			log.Fatalf("Failed to persist graph: %v", err)
		}
	}

	if err := writeGraph(*outPath, graph); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}

	printSummary(graph, *outPath)
}

func loadChunks(path string, limit int) ([]model.Chunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file chunksFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	var chunks []model.Chunk
	for _, docChunks := range file.Documents {
		chunks = append(chunks, docChunks...)
	}
	if limit > 0 && len(chunks) > limit {
		chunks = chunks[:limit]
	}
	return chunks, nil
}

func writeGraph(path string, graph *model.ResolvedGraph) error {
	data, err := json.MarshalIndent(graph, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func printSummary(graph *model.ResolvedGraph, outPath string) {
	fmt.Println("============================================================")
	fmt.Println("RESOLUTION COMPLETE")
	fmt.Println("============================================================")
	fmt.Printf("Total entities: %d\n", graph.Stats.Entities)
	fmt.Printf("Total relationships: %d\n", graph.Stats.Relationships)
	fmt.Printf("Mentions skipped: %d\n", graph.Stats.MentionsSkipped)

	for _, cat := range model.Categories {
		entities := graph.Entities[cat]
		if len(entities) == 0 {
			continue
		}
		fmt.Printf("\n%s: %d\n", cat, len(entities))
		for i, entity := range entities {
			if i >= 3 {
				break
			}
			fmt.Printf("  - %s\n", entity.Name)
			if len(entity.NameVariations) > 1 {
				fmt.Printf("    Variations: %v\n", entity.NameVariations)
			}
		}
	}

	fmt.Printf("\nResults saved to: %s\n", outPath)
}
