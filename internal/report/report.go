// Package report assembles the final research report from the outputs of
// every analysis stage and renders it as Markdown.
package report

import (
	"fmt"
	"time"

	"github.com/bull/research-insights/internal/analysis"
	"github.com/bull/research-insights/internal/papers"
	"github.com/bull/research-insights/internal/storage"
)

// AgentReportWriter is the name of the stage that builds the report.
const AgentReportWriter = "Report Writer"

// Methodology describes the stage sequence in the executive summary.
const Methodology = "Multi-agent analysis pipeline: Paper Reading → Summarization → Fact-Checking → Insight Generation → Report Writing"

// Input gathers everything Build needs.
type Input struct {
	Research      papers.ResearchConfig
	Reader        *analysis.ReaderOutput
	Summary       *analysis.SummaryOutput
	FactCheck     *analysis.FactCheckOutput
	Insights      *analysis.InsightOutput
	KnowledgeBase storage.Stats
	RunID         string
	GeneratedAt   time.Time
}

// Report is the final pipeline record.
type Report struct {
	Agent            string           `json:"agent"`
	Metadata         Metadata         `json:"report_metadata"`
	ExecutiveSummary ExecutiveSummary `json:"executive_summary"`
	PaperReports     []PaperReport    `json:"paper_reports"`
	Synthesis        Synthesis        `json:"synthesis"`
	ReportComplete   bool             `json:"report_complete"`
}

// Metadata identifies a report and the run that produced it.
type Metadata struct {
	RunID          string                `json:"run_id"`
	TotalPapers    int                   `json:"total_papers"`
	GenerationDate string                `json:"generation_date"`
	GeneratedAt    time.Time             `json:"generated_at"`
	AgentPipeline  []string              `json:"agent_pipeline"`
	Research       papers.ResearchConfig `json:"research_config"`
	KnowledgeBase  storage.Stats         `json:"knowledge_base"`
}

// ExecutiveSummary is the short overview at the top of a report.
type ExecutiveSummary struct {
	Overview    string   `json:"overview"`
	KeyFindings []string `json:"key_findings"`
	Methodology string   `json:"methodology"`
}

// QualityMetrics collects the validation numbers for one paper.
type QualityMetrics struct {
	TopicOverlap       float64         `json:"topic_overlap"`
	Confidence         float64         `json:"confidence"`
	Verification       analysis.Status `json:"verification"`
	SemanticRelevance  float64         `json:"semantic_relevance"`
	HallucinationFlags int             `json:"hallucination_flags"`
	InconsistencyFlags int             `json:"inconsistency_flags"`
}

// PaperReport is the section of a report dedicated to one paper.
type PaperReport struct {
	PaperID              int                       `json:"paper_id"`
	Title                string                    `json:"title"`
	Status               analysis.Status           `json:"verification_status"`
	RelevanceScore       float64                   `json:"relevance_score"`
	ContributionType     analysis.ContributionType `json:"contribution_type"`
	MaturityLevel        analysis.Maturity         `json:"maturity_level"`
	KeyTopics            []string                  `json:"key_topics"`
	SummaryPoints        []string                  `json:"summary_points"`
	Insights             []string                  `json:"insights"`
	ResearchImplications []string                  `json:"research_implications"`
	QualityMetrics       QualityMetrics            `json:"quality_metrics"`
}

// Synthesis is the cross-paper part of a report.
type Synthesis struct {
	CrossCuttingThemes []analysis.TopicCount `json:"cross_cutting_themes"`
	DominantThemes     []string              `json:"dominant_themes"`
	EmergingAreas      []string              `json:"emerging_areas"`
	Trends             []analysis.Trend      `json:"trend_analysis"`
	CoverageRate       float64               `json:"coverage_rate"`
	ResearchGaps       []analysis.Gap        `json:"research_gaps"`
	KeyComparisons     []analysis.Comparison `json:"key_comparisons"`
	FutureDirections   []analysis.Direction  `json:"future_directions"`
}

// Build assembles the report. Every paper with insights must also have a
// summary and a validation.
func Build(in Input) (*Report, error) {
	if in.Reader == nil || in.Summary == nil || in.FactCheck == nil || in.Insights == nil {
		return nil, fmt.Errorf("%w: missing stage output", ErrIncompleteInput)
	}

	summaries := make(map[int]analysis.Summary, len(in.Summary.Summaries))
	for _, s := range in.Summary.Summaries {
		summaries[s.PaperID] = s
	}
	validations := make(map[int]analysis.Validation, len(in.FactCheck.Validations))
	for _, v := range in.FactCheck.Validations {
		validations[v.PaperID] = v
	}

	r := &Report{
		Agent: AgentReportWriter,
		Metadata: Metadata{
			RunID:          in.RunID,
			TotalPapers:    in.Insights.PapersAnalyzed,
			GenerationDate: in.GeneratedAt.Format(time.DateTime),
			GeneratedAt:    in.GeneratedAt,
			AgentPipeline: []string{
				in.Reader.Agent,
				in.Summary.Agent,
				in.FactCheck.Agent,
				in.Insights.Agent,
				AgentReportWriter,
			},
			Research:      in.Research,
			KnowledgeBase: in.KnowledgeBase,
		},
		ExecutiveSummary: executiveSummary(in),
		PaperReports:     []PaperReport{},
	}

	for _, pi := range in.Insights.PaperInsights {
		s, ok := summaries[pi.PaperID]
		if !ok {
			return nil, fmt.Errorf("%w: no summary for paper %d", ErrIncompleteInput, pi.PaperID)
		}
		v, ok := validations[pi.PaperID]
		if !ok {
			return nil, fmt.Errorf("%w: no validation for paper %d", ErrIncompleteInput, pi.PaperID)
		}

		r.PaperReports = append(r.PaperReports, PaperReport{
			PaperID:              pi.PaperID,
			Title:                pi.Title,
			Status:               pi.Status,
			RelevanceScore:       pi.RelevanceScore,
			ContributionType:     pi.ContributionType,
			MaturityLevel:        pi.MaturityLevel,
			KeyTopics:            v.ClaimedTopics,
			SummaryPoints:        s.SummaryPoints,
			Insights:             pi.KeyInsights,
			ResearchImplications: pi.ResearchImplications,
			QualityMetrics: QualityMetrics{
				TopicOverlap:       v.TopicOverlapRatio,
				Confidence:         v.ConfidenceScore,
				Verification:       v.Status,
				SemanticRelevance:  s.RelevanceScore,
				HallucinationFlags: v.HallucinationFlags,
				InconsistencyFlags: v.InconsistencyFlags,
			},
		})
	}

	ins := in.Insights
	r.Synthesis = Synthesis{
		CrossCuttingThemes: ins.Trends.TopicFrequency,
		DominantThemes:     ins.Trends.DominantThemes,
		EmergingAreas:      ins.Trends.EmergingAreas,
		Trends:             ins.Trends.IdentifiedTrends,
		CoverageRate:       ins.Gaps.CoverageRate,
		ResearchGaps:       ins.Gaps.IdentifiedGaps,
		KeyComparisons:     ins.Comparative.KeyComparisons,
		FutureDirections:   ins.FutureDirections,
	}
	r.ReportComplete = true
	return r, nil
}

func executiveSummary(in Input) ExecutiveSummary {
	m := in.FactCheck.Metrics
	t := in.Insights.Trends
	return ExecutiveSummary{
		Overview: fmt.Sprintf("Analysis of %d research papers on %s", in.Insights.PapersAnalyzed, in.Research.Topic),
		KeyFindings: []string{
			fmt.Sprintf("Analyzed %d papers with %d unique topics", in.Insights.PapersAnalyzed, t.TotalUniqueTopics),
			fmt.Sprintf("Average semantic relevance: %.4f", t.AverageRelevance),
			fmt.Sprintf("Verification rate: %.0f%% - %d papers fully verified", m.VerificationRate*100, m.FullyVerifiedPapers),
			fmt.Sprintf("Topic diversity score %.2f across %d identified trends", t.TopicDiversityScore, len(t.IdentifiedTrends)),
		},
		Methodology: Methodology,
	}
}
