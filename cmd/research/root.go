package main

import (
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/bull/research-insights/internal/config"
	"github.com/bull/research-insights/internal/papers"
	"github.com/bull/research-insights/internal/pipeline"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	papersPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "research",
		Short: "Research paper analysis pipeline",
		Long: `Analyze a corpus of research papers: normalize and chunk the text,
build a TF-IDF knowledge base, then read, summarize, fact-check and
generate insights before writing a report.

Without --papers (or papers_file in the config) the built-in sample
corpus is used.

Environment variables (a .env file is loaded if present):
  RESEARCH_CHUNK_SIZE, RESEARCH_CHUNK_OVERLAP
  RESEARCH_MAX_FEATURES, RESEARCH_MIN_DF, RESEARCH_MAX_DF
  RESEARCH_SEARCH_TOP_K
  RESEARCH_RELEVANCE_HIGH, RESEARCH_HALLUCINATION_SIMILARITY
  RESEARCH_TOPIC, RESEARCH_PAPERS_FILE, RESEARCH_LOG_LEVEL
  RESEARCH_OUTPUT_FORMAT, RESEARCH_OUTPUT_DIR`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&g.configPath, "config", "", "Path to a YAML config file")
	cmd.PersistentFlags().StringVar(&g.papersPath, "papers", "", "Path to a YAML or JSON papers file")
	cmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(
		newRunCmd(g),
		newSearchCmd(g),
		newChunksCmd(g),
		newVersionCmd(),
	)
	return cmd
}

// env is everything a command needs after flags and config are resolved.
type env struct {
	cfg      *config.Config
	logger   *slog.Logger
	corpus   *papers.Corpus
	pipeline *pipeline.Pipeline
}

func (g *globalOptions) setup(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, err
	}

	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if g.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	path := cfg.PapersFile
	if g.papersPath != "" {
		path = g.papersPath
	}
	corpus := papers.SampleCorpus()
	if path != "" {
		if corpus, err = papers.Load(path); err != nil {
			return nil, fmt.Errorf("load papers: %w", err)
		}
		logger.Debug("Loaded papers", "path", path, "count", corpus.Len())
	}

	p, err := pipeline.New(pipeline.Options{
		ChunkSize:    cfg.Chunking.Size,
		ChunkOverlap: cfg.Chunking.Overlap,
		Vectorizer:   cfg.VectorizerOptions(),
		Thresholds:   cfg.AnalysisThresholds(),
		Research:     cfg.Research,
	}, logger)
	if err != nil {
		return nil, err
	}

	return &env{cfg: cfg, logger: logger, corpus: corpus, pipeline: p}, nil
}

// preview shortens s to n runes, marking the cut with "...".
func preview(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
