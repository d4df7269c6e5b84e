package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyContribution(t *testing.T) {
	tests := []struct {
		title string
		want  ContributionType
	}{
		{"Clinical Decision Support Systems: A Meta-Analysis of Effectiveness", ContributionMetaStudy},
		{"A Novel Transformer for Radiology", ContributionNovel},
		{"Introducing FedHealth", ContributionNovel},
		{"Renewed Interest in Triage", ContributionNovel},
		{"NLP for Electronic Health Records: Applications and Challenges", ContributionApplied},
		{"Clinical Outcomes of Sepsis Alerts", ContributionApplied},
		{"Deep Learning in Medical Image Analysis", ContributionEmpirical},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got, reason := ClassifyContribution(tt.title)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, reason)
		})
	}
}

func validation(id int, title string, status Status, relevance, overlap float64, topics ...string) Validation {
	return Validation{
		PaperID:           id,
		Title:             title,
		Status:            status,
		RelevanceScore:    relevance,
		TopicOverlapRatio: overlap,
		ClaimedTopics:     topics,
	}
}

func TestGenerateInsights_PaperInsights(t *testing.T) {
	fc := &FactCheckOutput{
		Agent:           AgentFactCheck,
		PapersValidated: 3,
		Validations: []Validation{
			validation(1, "Deep Learning in Imaging", StatusVerified, 0.25, 1.0, "deep learning", "medical imaging", "CNN"),
			validation(2, "Clinical Decision Support: A Meta-Analysis", StatusVerified, 0.15, 1.0, "clinical decision support"),
			validation(3, "NLP Applications", StatusPartial, 0.05, 0.5, "natural language processing", "BERT"),
		},
	}

	out := GenerateInsights(fc, DefaultThresholds())
	require.Len(t, out.PaperInsights, 3)
	assert.Equal(t, AgentInsights, out.Agent)
	assert.Equal(t, AgentFactCheck, out.InputAgent)

	first := out.PaperInsights[0]
	assert.Equal(t, ContributionEmpirical, first.ContributionType)
	assert.Equal(t, MaturityHigh, first.MaturityLevel)
	assert.Equal(t, []string{
		"Core alignment: 100% topic match indicates central relevance",
		"High credibility: All claims verified against knowledge base",
		"Strong semantic relevance (score: 0.2500) - highly relevant to research queries",
	}, first.KeyInsights)
	assert.Equal(t, []string{
		"DEEP LEARNING: Foundation for advanced pattern recognition and automated feature extraction → Applicable to complex medical image analysis tasks",
		"MEDICAL IMAGING: Computer vision techniques enhance diagnostic accuracy → Reduces radiologist workload while improving detection rates",
	}, first.ResearchImplications)
	assert.Contains(t, first.ReasoningChain["maturity"], "0.2500")

	second := out.PaperInsights[1]
	assert.Equal(t, ContributionMetaStudy, second.ContributionType)
	assert.Equal(t, MaturityMedium, second.MaturityLevel)

	third := out.PaperInsights[2]
	assert.Equal(t, ContributionApplied, third.ContributionType)
	assert.Equal(t, MaturityLow, third.MaturityLevel)
	assert.Equal(t, []string{"Tangential relevance (score: 0.0500) - peripheral to main focus"}, third.KeyInsights)
}

func TestGenerateInsights_Trends(t *testing.T) {
	fc := &FactCheckOutput{
		PapersValidated: 3,
		Metrics:         ValidationMetrics{VerificationRate: 1.0},
		Validations: []Validation{
			validation(1, "A", StatusVerified, 0.2, 1, "deep learning", "medical imaging", "CNN"),
			validation(2, "B", StatusVerified, 0.2, 1, "machine learning", "deep learning", "patient safety"),
			validation(3, "C", StatusVerified, 0.2, 1, "deep learning", "electronic health records", "text mining"),
		},
	}

	ta := GenerateInsights(fc, DefaultThresholds()).Trends

	assert.Equal(t, 7, ta.TotalUniqueTopics)
	assert.InDelta(t, 0.7, ta.TopicDiversityScore, 1e-12)
	assert.Equal(t, TopicCount{Topic: "deep learning", Count: 3}, ta.TopicFrequency[0])
	assert.Equal(t, "medical imaging", ta.TopicFrequency[1].Topic)
	assert.Equal(t, []string{"deep learning"}, ta.DominantThemes)
	assert.Equal(t, []string{"medical imaging", "CNN", "machine learning", "patient safety", "electronic health records", "text mining"}, ta.EmergingAreas)
	assert.Equal(t, 0.2, ta.AverageRelevance)

	var names []string
	for _, tr := range ta.IdentifiedTrends {
		names = append(names, tr.Trend)
	}
	assert.Equal(t, []string{"AI/ML Dominance", "Healthcare Application Focus", "High Verification Quality"}, names)
	assert.Equal(t, "5 mentions across 3 papers", ta.IdentifiedTrends[0].Evidence)
	assert.Equal(t, "2 healthcare-specific topics identified", ta.IdentifiedTrends[1].Evidence)
	assert.Equal(t, "3 of 3 papers fully verified", ta.IdentifiedTrends[2].Evidence)
}

func TestGenerateInsights_DiversityTrend(t *testing.T) {
	th := DefaultThresholds()
	th.DiversityMinTopics = 4

	fc := &FactCheckOutput{Validations: []Validation{
		validation(1, "A", StatusPartial, 0.1, 1, "a", "b"),
		validation(2, "B", StatusPartial, 0.1, 1, "c", "d"),
	}, PapersValidated: 2}

	ta := GenerateInsights(fc, th).Trends
	require.Len(t, ta.IdentifiedTrends, 1)
	assert.Equal(t, "Interdisciplinary Integration", ta.IdentifiedTrends[0].Trend)
	assert.Equal(t, "Topics span 0 dominant themes and 4 emerging areas", ta.IdentifiedTrends[0].Evidence)
}

func TestGenerateInsights_Gaps(t *testing.T) {
	fc := &FactCheckOutput{Validations: []Validation{
		validation(1, "A", StatusPartial, 0.1, 1, "deep learning", "data privacy", "federated learning"),
		validation(2, "B", StatusPartial, 0.1, 1, "clinical validation", "patient outcomes", "transfer learning"),
	}, PapersValidated: 2}

	ga := GenerateInsights(fc, DefaultThresholds()).Gaps

	assert.Len(t, ga.ExpectedTopics, 15)
	assert.InDelta(t, 6.0/15, ga.CoverageRate, 1e-12)
	assert.Len(t, ga.MissingTopics, 9)
	require.Len(t, ga.IdentifiedGaps, 1)
	assert.Equal(t, "Methodological Gap", ga.IdentifiedGaps[0].GapType)
}

func TestGenerateInsights_AllGaps(t *testing.T) {
	fc := &FactCheckOutput{Validations: []Validation{
		validation(1, "A", StatusPartial, 0.1, 1, "deep learning"),
	}, PapersValidated: 1}

	ga := GenerateInsights(fc, DefaultThresholds()).Gaps

	var types []string
	for _, g := range ga.IdentifiedGaps {
		types = append(types, g.GapType)
	}
	assert.Equal(t, []string{"Methodological Gap", "Privacy & Security Gap", "Validation Gap", "Generalization Gap"}, types)
	assert.InDelta(t, 1.0/15, ga.CoverageRate, 1e-12)
}

func TestGenerateInsights_Comparative(t *testing.T) {
	fc := &FactCheckOutput{Validations: []Validation{
		validation(1, "Deep Learning in Imaging", StatusVerified, 0.30, 1),
		validation(2, "A Meta-Analysis", StatusPartial, 0.10, 1),
		validation(3, "Clinical Alerts", StatusPartial, 0.12, 1),
		validation(4, "Novel Triage", StatusPartial, 0.20, 1),
	}, PapersValidated: 4}

	cf := GenerateInsights(fc, DefaultThresholds()).Comparative

	require.Len(t, cf.ByContributionType, 4)
	assert.Equal(t, ContributionEmpirical, cf.ByContributionType[0].Type)
	assert.Equal(t, []MaturityCount{{Level: MaturityHigh, Count: 1}, {Level: MaturityLow, Count: 3}}, cf.ByMaturityLevel)
	assert.InDelta(t, 0.20, cf.Relevance.Range, 1e-12)
	assert.InDelta(t, 0.18, cf.Relevance.Average, 1e-12)

	require.Len(t, cf.KeyComparisons, 2)
	assert.Equal(t, "Variable Relevance Scores", cf.KeyComparisons[0].Finding)
	assert.Equal(t, "Diverse Contribution Types", cf.KeyComparisons[1].Finding)
}

func TestGenerateInsights_ConsistentRelevance(t *testing.T) {
	fc := &FactCheckOutput{Validations: []Validation{
		validation(1, "A", StatusPartial, 0.15, 1),
		validation(2, "B", StatusPartial, 0.18, 1),
	}, PapersValidated: 2}

	cf := GenerateInsights(fc, DefaultThresholds()).Comparative
	require.Len(t, cf.KeyComparisons, 1)
	assert.Equal(t, "Consistent Relevance Scores", cf.KeyComparisons[0].Finding)
	assert.Contains(t, cf.KeyComparisons[0].Description, "0.0300")
}

func TestGenerateInsights_FutureDirections(t *testing.T) {
	fc := &FactCheckOutput{
		Metrics: ValidationMetrics{VerificationRate: 1.0},
		Validations: []Validation{
			validation(1, "A", StatusVerified, 0.2, 1, "deep learning", "a", "b", "c", "d"),
			validation(2, "B", StatusVerified, 0.2, 1, "deep learning", "e"),
		},
		PapersValidated: 2,
	}

	ds := GenerateInsights(fc, DefaultThresholds()).FutureDirections

	var names []string
	for _, d := range ds {
		names = append(names, d.Direction)
	}
	assert.Equal(t, []string{
		"Address Methodological Gap",
		"Address Privacy & Security Gap",
		"Address Validation Gap",
		"Address Generalization Gap",
		"Expand Emerging Research Areas",
		"Advanced Integration Studies",
		"Cross-Domain Knowledge Transfer",
		"Advanced Methodological Research",
	}, names)
	assert.Equal(t, "Deepen investigation into: a, b, c", ds[4].Description)
	assert.Equal(t, "Combine dominant themes (deep learning) in integrated systems", ds[5].Description)
	assert.Equal(t, "With 6 distinct topics, opportunities exist for knowledge transfer", ds[6].Rationale)
}

func TestGenerateInsights_Empty(t *testing.T) {
	out := GenerateInsights(&FactCheckOutput{Agent: AgentFactCheck}, DefaultThresholds())

	assert.Empty(t, out.PaperInsights)
	assert.Zero(t, out.Trends.TopicDiversityScore)
	assert.Empty(t, out.Comparative.KeyComparisons)
	assert.Equal(t, RelevanceComparison{}, out.Comparative.Relevance)
	assert.Zero(t, out.Gaps.CoverageRate)
	assert.NotEmpty(t, out.FutureDirections)
}
