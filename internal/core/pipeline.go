package core

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mikkelkrogsholm/metal-history-graph/internal/core/confidence"
	"github.com/mikkelkrogsholm/metal-history-graph/internal/core/extraction"
	"github.com/mikkelkrogsholm/metal-history-graph/internal/core/model"
	"github.com/mikkelkrogsholm/metal-history-graph/internal/core/resolve"
)

// Pipeline wires extraction, confidence scoring and resolution into one run:
// extract chunks concurrently, funnel every mention through the store's
// serialized ingestion point, then optionally escalate and materialize.
type Pipeline struct {
	Extractor *extraction.Extractor
	Scorer    *confidence.Scorer
	Store     *resolve.Store
	Arbiter   resolve.Arbiter

	log     *zap.Logger
	workers int
}

func NewPipeline(extractor *extraction.Extractor, store *resolve.Store, arbiter resolve.Arbiter, logger *zap.Logger, workers int) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	if workers < 1 {
		workers = 1
	}
	return &Pipeline{
		Extractor: extractor,
		Scorer:    confidence.NewScorer(),
		Store:     store,
		Arbiter:   arbiter,
		log:       logger,
		workers:   workers,
	}
}

// ProcessChunks runs the full pass over a batch. Extraction fans out up to
// the configured worker count; a failed chunk is logged and skipped, never
// fatal. Escalation runs only after every chunk has been ingested, when the
// store is quiescent.
func (p *Pipeline) ProcessChunks(ctx context.Context, chunks []model.Chunk) (*model.ResolvedGraph, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for _, chunk := range chunks {
		chunk := chunk
		g.Go(func() error {
			result, err := p.Extractor.Extract(gctx, chunk)
			if err != nil {
				p.log.Warn("chunk extraction failed, skipping",
					zap.String("chunk_id", chunk.ID),
					zap.Error(err))
				return nil
			}
			p.ingest(chunk, result)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if p.Arbiter != nil {
		p.Store.Escalate(ctx, p.Arbiter)
	}

	graph := p.Store.Finalize()
	p.log.Info("resolution run complete",
		zap.Int("chunks", len(chunks)),
		zap.Int("entities", graph.Stats.Entities),
		zap.Int("relationships", graph.Stats.Relationships),
		zap.Int("mentions_skipped", graph.Stats.MentionsSkipped),
		zap.Int("groups_absorbed", graph.Stats.GroupsAbsorbed))
	return graph, nil
}

func (p *Pipeline) ingest(chunk model.Chunk, result *model.ExtractionResult) {
	for _, m := range result.Mentions(chunk.ID) {
		if p.Scorer != nil {
			m.Confidence = p.Scorer.Score(m, chunk.Text)
		}
		p.Store.AddMention(m)
	}
	for _, rel := range result.Relationships {
		p.Store.AddRelationship(model.RelationshipMention{
			RelationshipRecord: rel,
			SourceUnitID:       chunk.ID,
		})
	}
}
