package analysis

import (
	"fmt"
	"strings"

	"github.com/bull/research-insights/internal/papers"
)

// Validation notes attached to a paper.
const (
	NoteTopicsUnverified  = "Some claimed topics not in original keywords"
	NoteSummaryParaphrase = "Summary points may be paraphrased"
	NotePerfectAlignment  = "Perfect topic alignment with original"
)

// SupportingSource is a knowledge base chunk that backs a claim.
type SupportingSource struct {
	PaperID    int     `json:"paper_id"`
	PaperTitle string  `json:"paper_title"`
	ChunkID    string  `json:"chunk_id"`
	Similarity float64 `json:"similarity_score"`
}

// ClaimCheck is the cross-reference result for one summary point.
type ClaimCheck struct {
	Claim              string             `json:"claim"`
	ClaimIndex         int                `json:"claim_index"` // 1-based
	ConfidenceScore    float64            `json:"confidence_score"`
	MaxSimilarity      float64            `json:"max_similarity"`
	AvgSimilarity      float64            `json:"avg_similarity"`
	SimilarityVariance float64            `json:"similarity_variance"`
	SupportingSources  []SupportingSource `json:"supporting_sources"`
	Hallucination      bool               `json:"hallucination_flag"`
	Inconsistent       bool               `json:"inconsistency_flag"`
	FlagReason         string             `json:"flag_reason,omitempty"`
}

// Validation is the fact-check result for one paper.
type Validation struct {
	PaperID              int          `json:"paper_id"`
	Title                string       `json:"title"`
	Status               Status       `json:"validation_status"`
	ConfidenceScore      float64      `json:"confidence_score"`
	RelevanceScore       float64      `json:"relevance_score"`
	TopicOverlapRatio    float64      `json:"topic_overlap_ratio"`
	TopicsVerified       bool         `json:"topics_verified"`
	SummaryVerified      bool         `json:"summary_verified"`
	ClaimedTopics        []string     `json:"claimed_topics"`
	ActualKeywords       []string     `json:"actual_keywords"`
	Claims               []ClaimCheck `json:"cross_reference_results"`
	HallucinationFlags   int          `json:"hallucination_flags"`
	InconsistencyFlags   int          `json:"inconsistency_flags"`
	InconsistencyDetails []string     `json:"inconsistency_details"`
	ValidationNotes      []string     `json:"validation_notes"`
	TotalClaimsChecked   int          `json:"total_claims_checked"`
}

// ValidationMetrics aggregates all validations.
type ValidationMetrics struct {
	TotalPapersValidated     int     `json:"total_papers_validated"`
	TotalClaimsChecked       int     `json:"total_claims_checked"`
	FullyVerifiedPapers      int     `json:"fully_verified_papers"`
	PapersWithHallucinations int     `json:"papers_with_hallucinations"`
	PapersWithInconsistency  int     `json:"papers_with_inconsistencies"`
	TotalHallucinationFlags  int     `json:"total_hallucination_flags"`
	TotalInconsistencyFlags  int     `json:"total_inconsistency_flags"`
	AverageConfidenceScore   float64 `json:"average_confidence_score"`
	AverageTopicOverlap      float64 `json:"average_topic_overlap"`
	VerificationRate         float64 `json:"verification_rate"`
}

// FactCheckOutput is the result of validating every summary.
type FactCheckOutput struct {
	Agent                  string            `json:"agent"`
	InputAgent             string            `json:"input_agent"`
	PapersValidated        int               `json:"papers_validated"`
	CrossReferencedSources int               `json:"cross_referenced_sources"`
	Validations            []Validation      `json:"validated_claims"`
	Metrics                ValidationMetrics `json:"validation_metrics"`
}

// FactCheck validates each summary against its original paper and
// cross-references every summary point against the knowledge base.
// A summary whose paper is missing from corpus is a fatal error.
func FactCheck(in *SummaryOutput, corpus *papers.Corpus, s Searcher, sources int, th Thresholds) (*FactCheckOutput, error) {
	out := &FactCheckOutput{
		Agent:                  AgentFactCheck,
		InputAgent:             in.Agent,
		PapersValidated:        in.PapersSummarized,
		CrossReferencedSources: sources,
	}

	for _, sum := range in.Summaries {
		paper, err := corpus.Lookup(sum.PaperID)
		if err != nil {
			return nil, fmt.Errorf("fact-check summary %d: %w", sum.PaperID, err)
		}

		v, err := validate(sum, paper, s, th)
		if err != nil {
			return nil, fmt.Errorf("fact-check paper %d: %w", sum.PaperID, err)
		}
		out.Validations = append(out.Validations, v)
	}

	out.Metrics = metrics(out.Validations)
	return out, nil
}

func validate(sum Summary, paper papers.Paper, s Searcher, th Thresholds) (Validation, error) {
	claimed := dedupe(sum.KeyTopics)
	actual := dedupe(paper.Keywords)
	overlap := TopicOverlap(claimed, actual)
	topicsVerified := isSubset(claimed, actual)
	summaryVerified := SummaryVerified(sum.SummaryPoints, paper.Abstract, th.SummaryVerifyWords)

	v := Validation{
		PaperID:              sum.PaperID,
		Title:                sum.Title,
		RelevanceScore:       sum.RelevanceScore,
		TopicOverlapRatio:    round4(overlap),
		TopicsVerified:       topicsVerified,
		SummaryVerified:      summaryVerified,
		ClaimedTopics:        claimed,
		ActualKeywords:       actual,
		TotalClaimsChecked:   len(sum.SummaryPoints),
		Claims:               []ClaimCheck{},
		InconsistencyDetails: []string{},
		ValidationNotes:      []string{},
	}

	if !topicsVerified {
		v.ValidationNotes = append(v.ValidationNotes, NoteTopicsUnverified)
	}
	if !summaryVerified {
		v.ValidationNotes = append(v.ValidationNotes, NoteSummaryParaphrase)
	}
	if overlap == 1.0 {
		v.ValidationNotes = append(v.ValidationNotes, NotePerfectAlignment)
	}

	var confidences []float64
	for i, point := range sum.SummaryPoints {
		c, details, err := crossReference(i+1, point, sum.PaperID, s, th)
		if err != nil {
			return Validation{}, err
		}
		v.Claims = append(v.Claims, c)
		v.InconsistencyDetails = append(v.InconsistencyDetails, details...)
		confidences = append(confidences, c.ConfidenceScore)
		if c.Hallucination {
			v.HallucinationFlags++
		}
		if c.Inconsistent {
			v.InconsistencyFlags++
		}
	}

	avg := mean(confidences)
	v.ConfidenceScore = round4(avg)
	v.Status = Classify(Evidence{
		Hallucinations:  v.HallucinationFlags,
		Inconsistencies: v.InconsistencyFlags,
		AvgConfidence:   avg,
		TopicOverlap:    overlap,
	}, th)
	return v, nil
}

func crossReference(index int, claim string, paperID int, s Searcher, th Thresholds) (ClaimCheck, []string, error) {
	results, err := s.Search(claim, th.CrossRefTopK)
	if err != nil {
		return ClaimCheck{}, nil, fmt.Errorf("cross-reference claim %d: %w", index, err)
	}

	c := ClaimCheck{
		Claim:             claim,
		ClaimIndex:        index,
		SupportingSources: make([]SupportingSource, len(results)),
	}
	sims := make([]float64, len(results))
	for i, r := range results {
		c.SupportingSources[i] = SupportingSource{
			PaperID:    r.Entry.PaperID,
			PaperTitle: r.Entry.PaperTitle,
			ChunkID:    r.Entry.ChunkID,
			Similarity: r.Similarity,
		}
		sims[i] = r.Similarity
	}

	var maxSim float64
	if len(sims) > 0 {
		maxSim = sims[0]
	}
	spread := variance(sims)

	c.ConfidenceScore = round4(maxSim)
	c.MaxSimilarity = round4(maxSim)
	c.AvgSimilarity = round4(mean(sims))
	c.SimilarityVariance = round4(spread)

	var details []string
	preview := truncateRunes(claim, 50)
	if maxSim < th.HallucinationSimilarity {
		c.Hallucination = true
		c.FlagReason = "Low similarity to all sources - claim may not be grounded in papers"
		details = append(details, fmt.Sprintf("Claim '%s...' has weak source support", preview))
	}
	if len(results) > 0 {
		primary := results[0].Entry.PaperID
		if primary != paperID && maxSim > th.CrossContaminationSimilarity {
			c.Inconsistent = true
			c.FlagReason = fmt.Sprintf("Claim primarily matches Paper %d, not source Paper %d", primary, paperID)
			details = append(details, fmt.Sprintf("Cross-contamination: Claim from Paper %d matches Paper %d", paperID, primary))
		}
	}
	if spread > th.SourceVarianceMax {
		c.Inconsistent = true
		details = append(details, fmt.Sprintf("High variance in source support for claim '%s...'", preview))
	}
	return c, details, nil
}

func metrics(vs []Validation) ValidationMetrics {
	m := ValidationMetrics{TotalPapersValidated: len(vs)}

	var confidences, overlaps []float64
	for _, v := range vs {
		m.TotalClaimsChecked += v.TotalClaimsChecked
		m.TotalHallucinationFlags += v.HallucinationFlags
		m.TotalInconsistencyFlags += v.InconsistencyFlags
		if v.Status == StatusVerified {
			m.FullyVerifiedPapers++
		}
		if v.HallucinationFlags > 0 {
			m.PapersWithHallucinations++
		}
		if v.InconsistencyFlags > 0 {
			m.PapersWithInconsistency++
		}
		confidences = append(confidences, v.ConfidenceScore)
		overlaps = append(overlaps, v.TopicOverlapRatio)
	}

	m.AverageConfidenceScore = round4(mean(confidences))
	m.AverageTopicOverlap = round4(mean(overlaps))
	m.VerificationRate = round4(ratio(m.FullyVerifiedPapers, len(vs)))
	return m
}

// TopicOverlap is the share of claimed topics found in actual. It is 0 when
// nothing is claimed.
func TopicOverlap(claimed, actual []string) float64 {
	if len(claimed) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(actual))
	for _, a := range actual {
		set[a] = struct{}{}
	}
	var hits int
	for _, c := range claimed {
		if _, ok := set[c]; ok {
			hits++
		}
	}
	return ratio(hits, len(claimed))
}

// SummaryVerified reports whether every point has at least one of its first
// n words somewhere in the lowercased abstract. Matching is by substring.
func SummaryVerified(points []string, abstract string, n int) bool {
	text := strings.ToLower(abstract)
	for _, p := range points {
		words := firstN(strings.Fields(strings.ToLower(p)), n)
		found := false
		for _, w := range words {
			if strings.Contains(text, w) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func isSubset(xs, of []string) bool {
	set := make(map[string]struct{}, len(of))
	for _, o := range of {
		set[o] = struct{}{}
	}
	for _, x := range xs {
		if _, ok := set[x]; !ok {
			return false
		}
	}
	return true
}
