package report

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bull/research-insights/internal/analysis"
	"github.com/bull/research-insights/internal/papers"
	"github.com/bull/research-insights/internal/storage"
)

var generatedAt = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func fixtureInput() Input {
	reader := &analysis.ReaderOutput{Agent: analysis.AgentPaperReader, PapersProcessed: 1}
	summary := &analysis.SummaryOutput{
		Agent: analysis.AgentSummarizer,
		Summaries: []analysis.Summary{{
			PaperID:        1,
			Title:          "Deep Learning in Imaging",
			KeyTopics:      []string{"deep learning"},
			SummaryPoints:  []string{"Networks classify scans accurately in many trials"},
			RelevanceScore: 0.21,
		}},
	}
	factCheck := &analysis.FactCheckOutput{
		Agent: analysis.AgentFactCheck,
		Validations: []analysis.Validation{{
			PaperID:           1,
			Title:             "Deep Learning in Imaging",
			Status:            analysis.StatusVerified,
			ConfidenceScore:   0.31,
			TopicOverlapRatio: 1,
			ClaimedTopics:     []string{"deep learning"},
		}},
		Metrics: analysis.ValidationMetrics{VerificationRate: 1, FullyVerifiedPapers: 1},
	}
	insights := &analysis.InsightOutput{
		Agent:          analysis.AgentInsights,
		PapersAnalyzed: 1,
		PaperInsights: []analysis.PaperInsight{{
			PaperID:          1,
			Title:            "Deep Learning in Imaging",
			Status:           analysis.StatusVerified,
			RelevanceScore:   0.21,
			ContributionType: analysis.ContributionEmpirical,
			MaturityLevel:    analysis.MaturityHigh,
			KeyInsights:      []string{"High credibility: All claims verified against knowledge base"},
		}},
		Trends: analysis.TrendAnalysis{
			TotalUniqueTopics:   1,
			TopicDiversityScore: 0.5,
			AverageRelevance:    0.21,
			TopicFrequency:      []analysis.TopicCount{{Topic: "deep learning", Count: 1}},
			IdentifiedTrends:    []analysis.Trend{{Trend: "AI/ML Dominance", Description: "d", Evidence: "e", Implication: "i"}},
		},
		Gaps: analysis.GapAnalysis{
			CoverageRate:   1.0 / 15,
			IdentifiedGaps: []analysis.Gap{{GapType: "Generalization Gap", Severity: "Medium", Description: "d", Recommendation: "r"}},
		},
		FutureDirections: []analysis.Direction{{Direction: "Cross-Domain Knowledge Transfer", Priority: "Medium-High", Description: "d"}},
	}

	return Input{
		Research:      papers.DefaultResearchConfig(),
		Reader:        reader,
		Summary:       summary,
		FactCheck:     factCheck,
		Insights:      insights,
		KnowledgeBase: storage.Stats{TotalEntries: 3, UniquePapers: 3, Dimension: 120},
		RunID:         "run-1",
		GeneratedAt:   generatedAt,
	}
}

func TestBuild(t *testing.T) {
	r, err := Build(fixtureInput())
	require.NoError(t, err)

	assert.True(t, r.ReportComplete)
	assert.Equal(t, AgentReportWriter, r.Agent)
	assert.Equal(t, "run-1", r.Metadata.RunID)
	assert.Equal(t, "2026-03-14 09:26:53", r.Metadata.GenerationDate)
	assert.Equal(t, []string{"Paper Reader", "Summarization", "Fact-Check", "Insight Generator", "Report Writer"}, r.Metadata.AgentPipeline)

	assert.Equal(t, "Analysis of 1 research papers on artificial intelligence in healthcare", r.ExecutiveSummary.Overview)
	assert.Equal(t, []string{
		"Analyzed 1 papers with 1 unique topics",
		"Average semantic relevance: 0.2100",
		"Verification rate: 100% - 1 papers fully verified",
		"Topic diversity score 0.50 across 1 identified trends",
	}, r.ExecutiveSummary.KeyFindings)

	require.Len(t, r.PaperReports, 1)
	p := r.PaperReports[0]
	assert.Equal(t, []string{"Networks classify scans accurately in many trials"}, p.SummaryPoints)
	assert.Equal(t, QualityMetrics{
		TopicOverlap:      1,
		Confidence:        0.31,
		Verification:      analysis.StatusVerified,
		SemanticRelevance: 0.21,
	}, p.QualityMetrics)

	assert.Len(t, r.Synthesis.Trends, 1)
	assert.Len(t, r.Synthesis.FutureDirections, 1)
}

func TestBuild_MissingStage(t *testing.T) {
	in := fixtureInput()
	in.FactCheck = nil

	_, err := Build(in)
	assert.ErrorIs(t, err, ErrIncompleteInput)
}

func TestBuild_MissingValidation(t *testing.T) {
	in := fixtureInput()
	in.FactCheck.Validations = nil

	_, err := Build(in)
	assert.ErrorIs(t, err, ErrIncompleteInput)
}

func TestReport_JSON(t *testing.T) {
	r, err := Build(fixtureInput())
	require.NoError(t, err)

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, true, decoded["report_complete"])
	assert.Contains(t, decoded, "executive_summary")
	meta := decoded["report_metadata"].(map[string]any)
	assert.Equal(t, "run-1", meta["run_id"])
	assert.Contains(t, meta, "research_config")
}

func TestMarkdown(t *testing.T) {
	r, err := Build(fixtureInput())
	require.NoError(t, err)

	md := string(Markdown(r))

	assert.True(t, strings.HasPrefix(md, "# Research Report: artificial intelligence in healthcare\n"))
	for _, want := range []string{
		"## Executive Summary",
		"## Research Configuration",
		"1. What are the current applications of AI in medical diagnostics?",
		"### 1. Deep Learning in Imaging",
		"| VERIFIED | 0.2100 | 0.3100 | 100% | Empirical Study | High - Ready for Citation |",
		"- Networks classify scans accurately in many trials",
		"| deep learning | 1 |",
		"- **AI/ML Dominance**: d (e). i",
		"Coverage of expected topics: 6.7%",
		"1. **Cross-Domain Knowledge Transfer** [Medium-High]: d",
		"| 3 | 3 | 120 |",
		"5. Report Writer",
	} {
		assert.Contains(t, md, want)
	}
	assert.NotContains(t, md, "hallucination flag")
}

func TestMarkdown_Empty(t *testing.T) {
	md := string(Markdown(&Report{}))
	assert.Contains(t, md, "# Research Report: Research Corpus")
	assert.Contains(t, md, "No papers analyzed.")
	assert.NotContains(t, md, "## Research Configuration")
}
