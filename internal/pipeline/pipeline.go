// Package pipeline runs the research analysis stages in order, from text
// normalization to the final report.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bull/research-insights/internal/analysis"
	"github.com/bull/research-insights/internal/chunker"
	"github.com/bull/research-insights/internal/embedding"
	"github.com/bull/research-insights/internal/papers"
	"github.com/bull/research-insights/internal/report"
	"github.com/bull/research-insights/internal/storage"
	"github.com/bull/research-insights/internal/textproc"
)

// Options configures a Pipeline.
type Options struct {
	ChunkSize    int
	ChunkOverlap int
	Vectorizer   embedding.Options
	Thresholds   analysis.Thresholds
	Research     papers.ResearchConfig
}

// DefaultOptions returns the options used by the sample corpus.
func DefaultOptions() Options {
	return Options{
		ChunkSize:    chunker.DefaultSize,
		ChunkOverlap: chunker.DefaultOverlap,
		Vectorizer:   embedding.DefaultOptions(),
		Thresholds:   analysis.DefaultThresholds(),
		Research:     papers.DefaultResearchConfig(),
	}
}

// RunContext carries every intermediate product of a run. Each stage reads
// from it and adds its own output.
type RunContext struct {
	RunID         string
	Corpus        *papers.Corpus
	Processed     []papers.ProcessedPaper
	Chunks        []chunker.Chunk
	Vectorizer    *embedding.Vectorizer
	KnowledgeBase *storage.KnowledgeBase
	Reader        *analysis.ReaderOutput
	Summary       *analysis.SummaryOutput
	FactCheck     *analysis.FactCheckOutput
	Insights      *analysis.InsightOutput
	Report        *report.Report
	Duration      time.Duration
}

// Pipeline orchestrates a full analysis run.
type Pipeline struct {
	opts    Options
	chunker *chunker.Chunker
	logger  *slog.Logger
	now     func() time.Time
	newID   func() string
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithClock sets the time source used for report timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// WithIDFunc sets the run ID generator.
func WithIDFunc(newID func() string) Option {
	return func(p *Pipeline) { p.newID = newID }
}

// New creates a pipeline. A nil logger falls back to slog.Default().
func New(opts Options, logger *slog.Logger, options ...Option) (*Pipeline, error) {
	c, err := chunker.New(opts.ChunkSize, opts.ChunkOverlap)
	if err != nil {
		return nil, fmt.Errorf("create chunker: %w", err)
	}
	if err := opts.Vectorizer.Validate(); err != nil {
		return nil, fmt.Errorf("vectorizer options: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	p := &Pipeline{
		opts:    opts,
		chunker: c,
		logger:  logger,
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
	}
	for _, o := range options {
		o(p)
	}
	return p, nil
}

// Index normalizes, chunks and embeds the corpus and builds the knowledge
// base. It is the first half of Run and is also used on its own for search.
func (p *Pipeline) Index(ctx context.Context, corpus *papers.Corpus) (*RunContext, error) {
	rc := &RunContext{RunID: p.newID(), Corpus: corpus}
	p.logger.Info("Starting run", "run_id", rc.RunID, "papers", corpus.Len())

	rc.Processed = textproc.ProcessAll(corpus)
	for _, pp := range rc.Processed {
		p.logger.Debug("Processed paper", "paper_id", pp.PaperID, "tokens", pp.TokenCount, "sentences", pp.SentenceCount)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rc.Chunks = p.chunker.ChunkAll(rc.Processed)
	p.logger.Info("Chunked corpus", "chunks", len(rc.Chunks), "size", p.chunker.Size(), "overlap", p.chunker.Overlap())
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	texts := make([]string, len(rc.Chunks))
	for i, c := range rc.Chunks {
		texts[i] = c.Text
	}
	vectorizer, vectors, err := embedding.Fit(texts, p.opts.Vectorizer)
	if err != nil {
		return nil, fmt.Errorf("fit vectorizer: %w", err)
	}
	rc.Vectorizer = vectorizer
	p.logger.Info("Fitted vectorizer", "dimension", vectorizer.Dimension())

	kb, err := storage.Build(rc.Chunks, vectorizer, vectors, corpus)
	if err != nil {
		return nil, fmt.Errorf("build knowledge base: %w", err)
	}
	rc.KnowledgeBase = kb
	p.logger.Info("Built knowledge base", "entries", kb.Len())

	return rc, ctx.Err()
}

// Run executes every stage against corpus. Cancellation is checked between
// stages.
func (p *Pipeline) Run(ctx context.Context, corpus *papers.Corpus) (*RunContext, error) {
	start := p.now()

	rc, err := p.Index(ctx, corpus)
	if err != nil {
		return nil, err
	}
	th := p.opts.Thresholds

	rc.Reader, err = analysis.Read(corpus, rc.KnowledgeBase, th)
	if err != nil {
		return nil, fmt.Errorf("read papers: %w", err)
	}
	p.logger.Info("Read papers", "papers", rc.Reader.PapersProcessed, "keywords", rc.Reader.TotalKeywords)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rc.Summary = analysis.Summarize(rc.Reader, th)
	p.logger.Info("Summarized papers",
		"papers", rc.Summary.PapersSummarized,
		"avg_relevance", rc.Summary.Aggregate.AverageRelevance,
	)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rc.FactCheck, err = analysis.FactCheck(rc.Summary, corpus, rc.KnowledgeBase, rc.KnowledgeBase.Len(), th)
	if err != nil {
		return nil, fmt.Errorf("fact-check: %w", err)
	}
	for _, v := range rc.FactCheck.Validations {
		p.logger.Debug("Validated paper", "paper_id", v.PaperID, "status", v.Status, "confidence", v.ConfidenceScore)
	}
	p.logger.Info("Fact-checked summaries",
		"verified", rc.FactCheck.Metrics.FullyVerifiedPapers,
		"hallucinations", rc.FactCheck.Metrics.PapersWithHallucinations,
	)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rc.Insights = analysis.GenerateInsights(rc.FactCheck, th)
	p.logger.Info("Generated insights",
		"trends", len(rc.Insights.Trends.IdentifiedTrends),
		"gaps", len(rc.Insights.Gaps.IdentifiedGaps),
	)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rc.Report, err = report.Build(report.Input{
		Research:      p.opts.Research,
		Reader:        rc.Reader,
		Summary:       rc.Summary,
		FactCheck:     rc.FactCheck,
		Insights:      rc.Insights,
		KnowledgeBase: rc.KnowledgeBase.Stats(),
		RunID:         rc.RunID,
		GeneratedAt:   p.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("build report: %w", err)
	}

	rc.Duration = p.now().Sub(start)
	p.logger.Info("Run complete",
		"run_id", rc.RunID,
		"papers", len(rc.Report.PaperReports),
		"duration", rc.Duration,
	)
	return rc, nil
}
