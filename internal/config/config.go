// Package config loads pipeline settings from defaults, an optional YAML
// file and environment variables, in that order.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bull/research-insights/internal/analysis"
	"github.com/bull/research-insights/internal/chunker"
	"github.com/bull/research-insights/internal/embedding"
	"github.com/bull/research-insights/internal/papers"
)

// Config holds all settings for a pipeline run.
type Config struct {
	PapersFile string                `yaml:"papers_file"`
	LogLevel   string                `yaml:"log_level"`
	Chunking   ChunkingConfig        `yaml:"chunking"`
	Vectorizer VectorizerConfig      `yaml:"vectorizer"`
	Search     SearchConfig          `yaml:"search"`
	Thresholds ThresholdsConfig      `yaml:"thresholds"`
	Research   papers.ResearchConfig `yaml:"research"`
	Output     OutputConfig          `yaml:"output"`
}

// ChunkingConfig sets the token window.
type ChunkingConfig struct {
	Size    int `yaml:"size"`
	Overlap int `yaml:"overlap"`
}

// VectorizerConfig sets TF-IDF vocabulary and weighting.
type VectorizerConfig struct {
	MaxFeatures int     `yaml:"max_features"`
	NgramMin    int     `yaml:"ngram_min"`
	NgramMax    int     `yaml:"ngram_max"`
	MinDF       int     `yaml:"min_df"`
	MaxDF       float64 `yaml:"max_df"`
	SublinearTF bool    `yaml:"sublinear_tf"`
}

// SearchConfig sets retrieval depth.
type SearchConfig struct {
	TopK         int `yaml:"top_k"`           // Default limit for ad hoc searches
	ReaderTopK   int `yaml:"reader_top_k"`    // Chunks retrieved per paper
	CrossRefTopK int `yaml:"cross_ref_top_k"` // Sources per fact-checked claim
}

// ThresholdsConfig exposes the annotator cut-offs. All values are
// calibration settings for the sample corpus.
type ThresholdsConfig struct {
	KeyTopicCount                  int     `yaml:"key_topic_count"`
	TextPreviewLength              int     `yaml:"text_preview_length"`
	SummaryMinWords                int     `yaml:"summary_min_words"`
	SummaryMaxPoints               int     `yaml:"summary_max_points"`
	SummaryVerifyWords             int     `yaml:"summary_verify_words"`
	HallucinationSimilarity        float64 `yaml:"hallucination_similarity"`
	CrossContaminationSimilarity   float64 `yaml:"cross_contamination_similarity"`
	SourceVarianceMax              float64 `yaml:"source_variance_max"`
	VerifiedConfidence             float64 `yaml:"verified_confidence"`
	VerifiedTopicOverlap           float64 `yaml:"verified_topic_overlap"`
	PartialConfidence              float64 `yaml:"partial_confidence"`
	RelevanceHigh                  float64 `yaml:"relevance_high"`
	RelevanceLow                   float64 `yaml:"relevance_low"`
	TopicAlignment                 float64 `yaml:"topic_alignment"`
	DominantTopicShare             float64 `yaml:"dominant_topic_share"`
	DiversityMinTopics             int     `yaml:"diversity_min_topics"`
	VerificationQualityRate        float64 `yaml:"verification_quality_rate"`
	MethodologicalVerificationRate float64 `yaml:"methodological_verification_rate"`
	RelevanceConsistencyRange      float64 `yaml:"relevance_consistency_range"`
	ContributionDiversityMin       int     `yaml:"contribution_diversity_min"`
	EmergingDirectionTopics        int     `yaml:"emerging_direction_topics"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Format       string `yaml:"format"`        // json, markdown or html
	Dir          string `yaml:"dir"`           // Write report files here when set
	OutlineDepth int    `yaml:"outline_depth"` // Deepest heading in the HTML outline
}

// Default returns the built-in configuration.
func Default() *Config {
	vo := embedding.DefaultOptions()
	th := analysis.DefaultThresholds()
	return &Config{
		LogLevel: "info",
		Chunking: ChunkingConfig{Size: chunker.DefaultSize, Overlap: chunker.DefaultOverlap},
		Vectorizer: VectorizerConfig{
			MaxFeatures: vo.MaxFeatures,
			NgramMin:    vo.NgramMin,
			NgramMax:    vo.NgramMax,
			MinDF:       vo.MinDF,
			MaxDF:       vo.MaxDF,
			SublinearTF: vo.SublinearTF,
		},
		Search: SearchConfig{TopK: 5, ReaderTopK: th.ReaderTopK, CrossRefTopK: th.CrossRefTopK},
		Thresholds: ThresholdsConfig{
			KeyTopicCount:                  th.KeyTopicCount,
			TextPreviewLength:              th.TextPreviewLength,
			SummaryMinWords:                th.SummaryMinWords,
			SummaryMaxPoints:               th.SummaryMaxPoints,
			SummaryVerifyWords:             th.SummaryVerifyWords,
			HallucinationSimilarity:        th.HallucinationSimilarity,
			CrossContaminationSimilarity:   th.CrossContaminationSimilarity,
			SourceVarianceMax:              th.SourceVarianceMax,
			VerifiedConfidence:             th.VerifiedConfidence,
			VerifiedTopicOverlap:           th.VerifiedTopicOverlap,
			PartialConfidence:              th.PartialConfidence,
			RelevanceHigh:                  th.RelevanceHigh,
			RelevanceLow:                   th.RelevanceLow,
			TopicAlignment:                 th.TopicAlignment,
			DominantTopicShare:             th.DominantTopicShare,
			DiversityMinTopics:             th.DiversityMinTopics,
			VerificationQualityRate:        th.VerificationQualityRate,
			MethodologicalVerificationRate: th.MethodologicalVerificationRate,
			RelevanceConsistencyRange:      th.RelevanceConsistencyRange,
			ContributionDiversityMin:       th.ContributionDiversityMin,
			EmergingDirectionTopics:        th.EmergingDirectionTopics,
		},
		Research: papers.DefaultResearchConfig(),
		Output:   OutputConfig{Format: "json", OutlineDepth: 3},
	}
}

// Load builds the configuration from defaults, the YAML file at path (if
// path is non-empty) and environment variables, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	c.PapersFile = getEnv("RESEARCH_PAPERS_FILE", c.PapersFile)
	c.LogLevel = getEnv("RESEARCH_LOG_LEVEL", c.LogLevel)
	c.Chunking.Size = getEnvInt("RESEARCH_CHUNK_SIZE", c.Chunking.Size)
	c.Chunking.Overlap = getEnvInt("RESEARCH_CHUNK_OVERLAP", c.Chunking.Overlap)
	c.Vectorizer.MaxFeatures = getEnvInt("RESEARCH_MAX_FEATURES", c.Vectorizer.MaxFeatures)
	c.Vectorizer.MinDF = getEnvInt("RESEARCH_MIN_DF", c.Vectorizer.MinDF)
	c.Vectorizer.MaxDF = getEnvFloat("RESEARCH_MAX_DF", c.Vectorizer.MaxDF)
	c.Search.TopK = getEnvInt("RESEARCH_SEARCH_TOP_K", c.Search.TopK)
	c.Thresholds.RelevanceHigh = getEnvFloat("RESEARCH_RELEVANCE_HIGH", c.Thresholds.RelevanceHigh)
	c.Thresholds.HallucinationSimilarity = getEnvFloat("RESEARCH_HALLUCINATION_SIMILARITY", c.Thresholds.HallucinationSimilarity)
	c.Research.Topic = getEnv("RESEARCH_TOPIC", c.Research.Topic)
	c.Output.Format = getEnv("RESEARCH_OUTPUT_FORMAT", c.Output.Format)
	c.Output.Dir = getEnv("RESEARCH_OUTPUT_DIR", c.Output.Dir)
}

// Validate checks ranges and cross-field constraints.
func (c *Config) Validate() error {
	if c.Chunking.Overlap < 0 || c.Chunking.Size <= c.Chunking.Overlap {
		return fmt.Errorf("%w: chunk size %d must exceed overlap %d >= 0", ErrInvalidConfig, c.Chunking.Size, c.Chunking.Overlap)
	}
	if err := c.VectorizerOptions().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	for name, v := range map[string]int{
		"search.top_k":                    c.Search.TopK,
		"search.reader_top_k":             c.Search.ReaderTopK,
		"search.cross_ref_top_k":          c.Search.CrossRefTopK,
		"thresholds.key_topic_count":      c.Thresholds.KeyTopicCount,
		"thresholds.summary_max_points":   c.Thresholds.SummaryMaxPoints,
		"thresholds.summary_verify_words": c.Thresholds.SummaryVerifyWords,
		"thresholds.text_preview_length":  c.Thresholds.TextPreviewLength,
	} {
		if v < 1 {
			return fmt.Errorf("%w: %s must be at least 1, got %d", ErrInvalidConfig, name, v)
		}
	}
	for name, v := range map[string]float64{
		"thresholds.hallucination_similarity":  c.Thresholds.HallucinationSimilarity,
		"thresholds.verified_confidence":       c.Thresholds.VerifiedConfidence,
		"thresholds.verified_topic_overlap":    c.Thresholds.VerifiedTopicOverlap,
		"thresholds.partial_confidence":        c.Thresholds.PartialConfidence,
		"thresholds.topic_alignment":           c.Thresholds.TopicAlignment,
		"thresholds.dominant_topic_share":      c.Thresholds.DominantTopicShare,
		"thresholds.verification_quality_rate": c.Thresholds.VerificationQualityRate,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s must be 0-1, got %g", ErrInvalidConfig, name, v)
		}
	}
	if c.Thresholds.PartialConfidence > c.Thresholds.VerifiedConfidence {
		return fmt.Errorf("%w: partial_confidence %g exceeds verified_confidence %g",
			ErrInvalidConfig, c.Thresholds.PartialConfidence, c.Thresholds.VerifiedConfidence)
	}
	switch c.Output.Format {
	case "json", "markdown", "html":
	default:
		return fmt.Errorf("%w: output format %q (want json, markdown or html)", ErrInvalidConfig, c.Output.Format)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// VectorizerOptions converts the vectorizer section.
func (c *Config) VectorizerOptions() embedding.Options {
	v := c.Vectorizer
	return embedding.Options{
		MaxFeatures: v.MaxFeatures,
		NgramMin:    v.NgramMin,
		NgramMax:    v.NgramMax,
		MinDF:       v.MinDF,
		MaxDF:       v.MaxDF,
		SublinearTF: v.SublinearTF,
	}
}

// AnalysisThresholds converts the thresholds and search sections.
func (c *Config) AnalysisThresholds() analysis.Thresholds {
	t := c.Thresholds
	return analysis.Thresholds{
		ReaderTopK:                     c.Search.ReaderTopK,
		KeyTopicCount:                  t.KeyTopicCount,
		TextPreviewLength:              t.TextPreviewLength,
		SummaryMinWords:                t.SummaryMinWords,
		SummaryMaxPoints:               t.SummaryMaxPoints,
		SummaryVerifyWords:             t.SummaryVerifyWords,
		CrossRefTopK:                   c.Search.CrossRefTopK,
		HallucinationSimilarity:        t.HallucinationSimilarity,
		CrossContaminationSimilarity:   t.CrossContaminationSimilarity,
		SourceVarianceMax:              t.SourceVarianceMax,
		VerifiedConfidence:             t.VerifiedConfidence,
		VerifiedTopicOverlap:           t.VerifiedTopicOverlap,
		PartialConfidence:              t.PartialConfidence,
		RelevanceHigh:                  t.RelevanceHigh,
		RelevanceLow:                   t.RelevanceLow,
		TopicAlignment:                 t.TopicAlignment,
		DominantTopicShare:             t.DominantTopicShare,
		DiversityMinTopics:             t.DiversityMinTopics,
		VerificationQualityRate:        t.VerificationQualityRate,
		MethodologicalVerificationRate: t.MethodologicalVerificationRate,
		RelevanceConsistencyRange:      t.RelevanceConsistencyRange,
		ContributionDiversityMin:       t.ContributionDiversityMin,
		EmergingDirectionTopics:        t.EmergingDirectionTopics,
	}
}

// ParseLevel maps a log level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: log level %q", ErrInvalidConfig, s)
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
