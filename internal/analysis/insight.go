package analysis

import (
	"fmt"
	"slices"
	"strings"
)

// PaperInsight is the per-paper result of insight generation.
type PaperInsight struct {
	PaperID              int               `json:"paper_id"`
	Title                string            `json:"title"`
	Status               Status            `json:"verification_status"`
	RelevanceScore       float64           `json:"relevance_score"`
	TopicOverlap         float64           `json:"topic_overlap"`
	ClaimedTopics        []string          `json:"claimed_topics"`
	ContributionType     ContributionType  `json:"contribution_type"`
	MaturityLevel        Maturity          `json:"maturity_level"`
	ReasoningChain       map[string]string `json:"reasoning_chain"`
	KeyInsights          []string          `json:"key_insights"`
	ResearchImplications []string          `json:"research_implications"`
}

// TopicCount is a topic and the number of papers claiming it.
type TopicCount struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// Trend is a pattern observed across the corpus.
type Trend struct {
	Trend       string `json:"trend"`
	Description string `json:"description"`
	Evidence    string `json:"evidence"`
	Implication string `json:"implication"`
}

// TrendAnalysis summarizes topic distribution across papers.
type TrendAnalysis struct {
	TotalUniqueTopics   int          `json:"total_unique_topics"`
	TopicDiversityScore float64      `json:"topic_diversity_score"`
	TopicFrequency      []TopicCount `json:"topic_frequency_map"` // First-seen order
	DominantThemes      []string     `json:"dominant_themes"`
	EmergingAreas       []string     `json:"emerging_areas"`
	AverageRelevance    float64      `json:"average_relevance"`
	VerificationQuality float64      `json:"verification_quality"`
	IdentifiedTrends    []Trend      `json:"identified_trends"`
}

// Gap is an under-covered research area.
type Gap struct {
	GapType        string `json:"gap_type"`
	Description    string `json:"description"`
	Severity       string `json:"severity"`
	Rationale      string `json:"rationale"`
	Recommendation string `json:"recommendation"`
}

// GapAnalysis compares covered topics with the expected checklist.
type GapAnalysis struct {
	ExpectedTopics []string `json:"expected_topics"`
	CoveredTopics  []string `json:"covered_topics"`
	MissingTopics  []string `json:"missing_topics"`
	CoverageRate   float64  `json:"coverage_rate"`
	IdentifiedGaps []Gap    `json:"identified_gaps"`
}

// PaperRef is a short paper reference used in comparisons.
type PaperRef struct {
	PaperID   int     `json:"paper_id"`
	Title     string  `json:"title"`
	Relevance float64 `json:"relevance"`
}

// ContributionGroup lists papers sharing a contribution type.
type ContributionGroup struct {
	Type   ContributionType `json:"contribution_type"`
	Papers []PaperRef       `json:"papers"`
}

// MaturityCount is the number of papers at a maturity level.
type MaturityCount struct {
	Level Maturity `json:"maturity_level"`
	Count int      `json:"count"`
}

// RelevanceComparison is the spread of relevance scores.
type RelevanceComparison struct {
	Highest float64 `json:"highest_relevance"`
	Lowest  float64 `json:"lowest_relevance"`
	Range   float64 `json:"relevance_range"`
	Average float64 `json:"average"`
}

// Comparison is a single comparative finding.
type Comparison struct {
	Finding     string `json:"finding"`
	Description string `json:"description"`
	Implication string `json:"implication"`
}

// ComparativeFindings contrasts papers with each other.
type ComparativeFindings struct {
	ByContributionType []ContributionGroup `json:"by_contribution_type"`
	ByMaturityLevel    []MaturityCount     `json:"by_maturity_level"`
	Relevance          RelevanceComparison `json:"relevance_comparison"`
	KeyComparisons     []Comparison        `json:"key_comparisons"`
}

// Direction is a recommended line of future research.
type Direction struct {
	Direction      string `json:"direction"`
	Priority       string `json:"priority"`
	Description    string `json:"description"`
	Rationale      string `json:"rationale"`
	ExpectedImpact string `json:"expected_impact"`
}

// InsightOutput is the corpus-level synthesis.
type InsightOutput struct {
	Agent            string              `json:"agent"`
	InputAgent       string              `json:"input_agent"`
	PapersAnalyzed   int                 `json:"papers_analyzed"`
	PaperInsights    []PaperInsight      `json:"paper_insights"`
	Trends           TrendAnalysis       `json:"trend_analysis"`
	Gaps             GapAnalysis         `json:"gap_analysis"`
	Comparative      ComparativeFindings `json:"comparative_findings"`
	FutureDirections []Direction         `json:"future_research_directions"`
}

// GenerateInsights derives per-paper insights and cross-paper trends, gaps,
// comparisons and research directions from the fact-check results.
func GenerateInsights(fc *FactCheckOutput, th Thresholds) *InsightOutput {
	out := &InsightOutput{
		Agent:          AgentInsights,
		InputAgent:     fc.Agent,
		PapersAnalyzed: fc.PapersValidated,
		PaperInsights:  []PaperInsight{},
	}

	var (
		allTopics  []string
		relevances []float64
		freq       []TopicCount
		freqIndex  = map[string]int{}
	)
	for _, v := range fc.Validations {
		out.PaperInsights = append(out.PaperInsights, paperInsight(v, th))

		allTopics = append(allTopics, v.ClaimedTopics...)
		for _, t := range v.ClaimedTopics {
			if i, ok := freqIndex[t]; ok {
				freq[i].Count++
				continue
			}
			freqIndex[t] = len(freq)
			freq = append(freq, TopicCount{Topic: t, Count: 1})
		}
		relevances = append(relevances, v.RelevanceScore)
	}

	n := len(fc.Validations)
	rate := fc.Metrics.VerificationRate
	unique := dedupe(allTopics)

	out.Trends = trends(freq, allTopics, unique, n, mean(relevances), rate, th)
	out.Gaps = gaps(allTopics, unique)
	out.Comparative = compare(out.PaperInsights, relevances, th)
	out.FutureDirections = directions(out.Gaps.IdentifiedGaps, out.Trends, len(unique), rate, th)
	return out
}

func paperInsight(v Validation, th Thresholds) PaperInsight {
	pi := PaperInsight{
		PaperID:              v.PaperID,
		Title:                v.Title,
		Status:               v.Status,
		RelevanceScore:       v.RelevanceScore,
		TopicOverlap:         v.TopicOverlapRatio,
		ClaimedTopics:        v.ClaimedTopics,
		ReasoningChain:       map[string]string{},
		KeyInsights:          []string{},
		ResearchImplications: []string{},
	}

	pi.ContributionType, pi.ReasoningChain["contribution"] = ClassifyContribution(v.Title)

	switch {
	case v.Status == StatusVerified && v.RelevanceScore > th.RelevanceHigh:
		pi.MaturityLevel = MaturityHigh
		pi.ReasoningChain["maturity"] = fmt.Sprintf("Verified status + high relevance (%.4f) = citation-ready", v.RelevanceScore)
	case v.Status == StatusVerified:
		pi.MaturityLevel = MaturityMedium
		pi.ReasoningChain["maturity"] = "Verified but moderate relevance - use with additional context"
	default:
		pi.MaturityLevel = MaturityLow
		pi.ReasoningChain["maturity"] = "Requires additional validation before use"
	}

	if v.TopicOverlapRatio >= th.TopicAlignment {
		pi.KeyInsights = append(pi.KeyInsights,
			fmt.Sprintf("Core alignment: %.0f%% topic match indicates central relevance", v.TopicOverlapRatio*100))
	}
	if v.Status == StatusVerified {
		pi.KeyInsights = append(pi.KeyInsights, "High credibility: All claims verified against knowledge base")
	}
	switch {
	case v.RelevanceScore > th.RelevanceHigh:
		pi.KeyInsights = append(pi.KeyInsights,
			fmt.Sprintf("Strong semantic relevance (score: %.4f) - highly relevant to research queries", v.RelevanceScore))
	case v.RelevanceScore < th.RelevanceLow:
		pi.KeyInsights = append(pi.KeyInsights,
			fmt.Sprintf("Tangential relevance (score: %.4f) - peripheral to main focus", v.RelevanceScore))
	}

	for _, t := range v.ClaimedTopics {
		if impl, ok := topicImplications[t]; ok {
			pi.ResearchImplications = append(pi.ResearchImplications,
				fmt.Sprintf("%s: %s → %s", strings.ToUpper(t), impl.implication, impl.application))
		}
	}
	return pi
}

// ClassifyContribution guesses the contribution type from title wording and
// returns it with a short explanation.
func ClassifyContribution(title string) (ContributionType, string) {
	lower := strings.ToLower(title)
	for _, rule := range contributionRules {
		for _, term := range rule.terms {
			if strings.Contains(lower, term) {
				return rule.kind, rule.reasoning
			}
		}
	}
	return ContributionEmpirical, empiricalReasoning
}

func trends(freq []TopicCount, all, unique []string, papers int, avgRelevance, rate float64, th Thresholds) TrendAnalysis {
	ta := TrendAnalysis{
		TotalUniqueTopics:   len(unique),
		TopicDiversityScore: float64(len(unique)) / float64(len(all)+1),
		TopicFrequency:      append([]TopicCount{}, freq...),
		DominantThemes:      []string{},
		EmergingAreas:       []string{},
		AverageRelevance:    round4(avgRelevance),
		VerificationQuality: rate,
		IdentifiedTrends:    []Trend{},
	}

	for _, tc := range freq {
		if ratio(tc.Count, papers) > th.DominantTopicShare {
			ta.DominantThemes = append(ta.DominantThemes, tc.Topic)
		}
		if tc.Count == 1 {
			ta.EmergingAreas = append(ta.EmergingAreas, tc.Topic)
		}
	}

	if containsAny(unique, methodTopics) {
		ta.IdentifiedTrends = append(ta.IdentifiedTrends, Trend{
			Trend:       "AI/ML Dominance",
			Description: "AI and machine learning methods are primary methodological approach across research corpus",
			Evidence:    fmt.Sprintf("%d mentions across %d papers", countIn(all, methodTopics), papers),
			Implication: "Future research will likely continue leveraging AI/ML frameworks",
		})
	}
	if containsAny(unique, applicationTopics) {
		ta.IdentifiedTrends = append(ta.IdentifiedTrends, Trend{
			Trend:       "Healthcare Application Focus",
			Description: "Strong emphasis on practical healthcare applications and clinical deployment",
			Evidence:    fmt.Sprintf("%d healthcare-specific topics identified", countIn(all, applicationTopics)),
			Implication: "Research is transitioning from theory to clinical practice implementation",
		})
	}
	if len(unique) >= th.DiversityMinTopics {
		ta.IdentifiedTrends = append(ta.IdentifiedTrends, Trend{
			Trend:       "Interdisciplinary Integration",
			Description: fmt.Sprintf("High topic diversity (%d unique topics) indicates interdisciplinary research approach", len(unique)),
			Evidence:    fmt.Sprintf("Topics span %d dominant themes and %d emerging areas", len(ta.DominantThemes), len(ta.EmergingAreas)),
			Implication: "Research benefits from cross-domain knowledge integration",
		})
	}
	if rate >= th.VerificationQualityRate {
		ta.IdentifiedTrends = append(ta.IdentifiedTrends, Trend{
			Trend:       "High Verification Quality",
			Description: fmt.Sprintf("%.0f%% verification rate indicates rigorous, evidence-based research", rate*100),
			Evidence:    fmt.Sprintf("%d of %d papers fully verified", int(rate*float64(papers)), papers),
			Implication: "Research corpus is suitable for meta-analysis and systematic review",
		})
	}
	return ta
}

func gaps(all, covered []string) GapAnalysis {
	var missing []string
	for _, t := range expectedTopics {
		if !slices.Contains(covered, t) {
			missing = append(missing, t)
		}
	}
	isMissing := func(t string) bool { return slices.Contains(missing, t) }

	ga := GapAnalysis{
		ExpectedTopics: append([]string{}, expectedTopics...),
		CoveredTopics:  append([]string{}, covered...),
		MissingTopics:  append([]string{}, missing...),
		CoverageRate:   ratio(len(expectedTopics)-len(missing), len(expectedTopics)),
		IdentifiedGaps: []Gap{},
	}

	if isMissing("model interpretability") || !slices.Contains(all, "explainable AI") {
		ga.IdentifiedGaps = append(ga.IdentifiedGaps, Gap{
			GapType:        "Methodological Gap",
			Description:    "Limited coverage of model interpretability and explainability",
			Severity:       "High",
			Rationale:      "Healthcare AI requires transparent decision-making for clinical adoption",
			Recommendation: "Include research on explainable AI methods and interpretation techniques",
		})
	}
	if isMissing("data privacy") || isMissing("federated learning") {
		ga.IdentifiedGaps = append(ga.IdentifiedGaps, Gap{
			GapType:        "Privacy & Security Gap",
			Description:    "Insufficient focus on data privacy and federated learning approaches",
			Severity:       "Medium-High",
			Rationale:      "Patient data protection is critical for healthcare AI deployment",
			Recommendation: "Incorporate privacy-preserving ML and federated learning research",
		})
	}
	if isMissing("clinical validation") || isMissing("patient outcomes") {
		ga.IdentifiedGaps = append(ga.IdentifiedGaps, Gap{
			GapType:        "Validation Gap",
			Description:    "Limited emphasis on clinical validation and patient outcome measurement",
			Severity:       "Medium",
			Rationale:      "Real-world effectiveness must be demonstrated beyond technical metrics",
			Recommendation: "Include clinical trial results and longitudinal outcome studies",
		})
	}
	if isMissing("transfer learning") {
		ga.IdentifiedGaps = append(ga.IdentifiedGaps, Gap{
			GapType:        "Generalization Gap",
			Description:    "Sparse coverage of transfer learning and domain adaptation",
			Severity:       "Medium",
			Rationale:      "Models must generalize across different clinical settings and populations",
			Recommendation: "Explore transfer learning for cross-institutional model deployment",
		})
	}
	return ga
}

func compare(insights []PaperInsight, relevances []float64, th Thresholds) ComparativeFindings {
	cf := ComparativeFindings{
		ByContributionType: []ContributionGroup{},
		ByMaturityLevel:    []MaturityCount{},
		KeyComparisons:     []Comparison{},
	}

	for _, pi := range insights {
		ref := PaperRef{PaperID: pi.PaperID, Title: pi.Title, Relevance: pi.RelevanceScore}
		i := slices.IndexFunc(cf.ByContributionType, func(g ContributionGroup) bool { return g.Type == pi.ContributionType })
		if i < 0 {
			cf.ByContributionType = append(cf.ByContributionType, ContributionGroup{Type: pi.ContributionType})
			i = len(cf.ByContributionType) - 1
		}
		cf.ByContributionType[i].Papers = append(cf.ByContributionType[i].Papers, ref)

		j := slices.IndexFunc(cf.ByMaturityLevel, func(m MaturityCount) bool { return m.Level == pi.MaturityLevel })
		if j < 0 {
			cf.ByMaturityLevel = append(cf.ByMaturityLevel, MaturityCount{Level: pi.MaturityLevel})
			j = len(cf.ByMaturityLevel) - 1
		}
		cf.ByMaturityLevel[j].Count++
	}

	if len(relevances) == 0 {
		return cf
	}

	hi, lo := slices.Max(relevances), slices.Min(relevances)
	cf.Relevance = RelevanceComparison{Highest: hi, Lowest: lo, Range: hi - lo, Average: mean(relevances)}

	if hi-lo < th.RelevanceConsistencyRange {
		cf.KeyComparisons = append(cf.KeyComparisons, Comparison{
			Finding:     "Consistent Relevance Scores",
			Description: fmt.Sprintf("Low variance in relevance (%.4f) indicates cohesive research focus", hi-lo),
			Implication: "Papers form unified corpus suitable for comprehensive review",
		})
	} else {
		cf.KeyComparisons = append(cf.KeyComparisons, Comparison{
			Finding:     "Variable Relevance Scores",
			Description: fmt.Sprintf("Higher variance (%.4f) suggests diverse perspectives", hi-lo),
			Implication: "Consider filtering by relevance threshold for focused analysis",
		})
	}
	if len(cf.ByContributionType) >= th.ContributionDiversityMin {
		cf.KeyComparisons = append(cf.KeyComparisons, Comparison{
			Finding:     "Diverse Contribution Types",
			Description: fmt.Sprintf("%d different contribution types present", len(cf.ByContributionType)),
			Implication: "Corpus includes both theoretical foundations and practical applications",
		})
	}
	return cf
}

func directions(gs []Gap, ta TrendAnalysis, uniqueTopics int, rate float64, th Thresholds) []Direction {
	ds := []Direction{}
	for _, g := range gs {
		ds = append(ds, Direction{
			Direction:      "Address " + g.GapType,
			Priority:       g.Severity,
			Description:    g.Recommendation,
			Rationale:      g.Rationale,
			ExpectedImpact: "High - Fills critical knowledge gap in current research landscape",
		})
	}

	if len(ta.EmergingAreas) > 0 {
		ds = append(ds, Direction{
			Direction:      "Expand Emerging Research Areas",
			Priority:       "Medium",
			Description:    "Deepen investigation into: " + strings.Join(firstN(ta.EmergingAreas, th.EmergingDirectionTopics), ", "),
			Rationale:      "These areas show initial promise but need more comprehensive study",
			ExpectedImpact: "Medium - Potential for breakthrough insights in underexplored domains",
		})
	}
	if len(ta.DominantThemes) > 0 {
		ds = append(ds, Direction{
			Direction:      "Advanced Integration Studies",
			Priority:       "High",
			Description:    fmt.Sprintf("Combine dominant themes (%s) in integrated systems", strings.Join(ta.DominantThemes, ", ")),
			Rationale:      "Leverage strengths of established areas for comprehensive solutions",
			ExpectedImpact: "High - Practical, deployable systems combining proven methodologies",
		})
	}

	ds = append(ds, Direction{
		Direction:      "Cross-Domain Knowledge Transfer",
		Priority:       "Medium-High",
		Description:    "Apply successful methods from one healthcare domain to others",
		Rationale:      fmt.Sprintf("With %d distinct topics, opportunities exist for knowledge transfer", uniqueTopics),
		ExpectedImpact: "Medium-High - Accelerates progress through adapted proven solutions",
	})

	if rate >= th.MethodologicalVerificationRate {
		ds = append(ds, Direction{
			Direction:      "Advanced Methodological Research",
			Priority:       "Medium",
			Description:    "Build on solid foundation with next-generation methods",
			Rationale:      "High verification quality enables confident advancement of state-of-the-art",
			ExpectedImpact: "High - Push boundaries of what's technically achievable",
		})
	}
	return ds
}

func containsAny(xs, candidates []string) bool {
	for _, c := range candidates {
		if slices.Contains(xs, c) {
			return true
		}
	}
	return false
}

func countIn(xs, candidates []string) int {
	var n int
	for _, x := range xs {
		if slices.Contains(candidates, x) {
			n++
		}
	}
	return n
}
