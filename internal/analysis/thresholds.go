package analysis

// Thresholds holds every cut-off used by the annotators. The defaults were
// tuned by hand on the built-in sample corpus and are calibration values,
// not validated constants; expect to retune them for other corpora.
type Thresholds struct {
	// Reader
	ReaderTopK        int // Chunks retrieved per paper
	KeyTopicCount     int // Keywords used as query and key topics
	TextPreviewLength int // Runes kept in a chunk preview

	// Summarizer
	SummaryMinWords    int // A sentence needs more words than this to become a point
	SummaryMaxPoints   int
	SummaryVerifyWords int // Leading words of a point searched for in the abstract

	// Fact-check
	CrossRefTopK                 int
	HallucinationSimilarity      float64 // Best source below this flags a hallucination
	CrossContaminationSimilarity float64 // Best source from another paper above this is inconsistent
	SourceVarianceMax            float64 // Source similarity variance above this is inconsistent
	VerifiedConfidence           float64
	VerifiedTopicOverlap         float64
	PartialConfidence            float64

	// Insights
	RelevanceHigh                  float64
	RelevanceLow                   float64
	TopicAlignment                 float64
	DominantTopicShare             float64
	DiversityMinTopics             int
	VerificationQualityRate        float64
	MethodologicalVerificationRate float64
	RelevanceConsistencyRange      float64
	ContributionDiversityMin       int
	EmergingDirectionTopics        int
}

// DefaultThresholds returns the calibrated defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ReaderTopK:        2,
		KeyTopicCount:     3,
		TextPreviewLength: 100,

		SummaryMinWords:    5,
		SummaryMaxPoints:   3,
		SummaryVerifyWords: 3,

		CrossRefTopK:                 3,
		HallucinationSimilarity:      0.15,
		CrossContaminationSimilarity: 0.2,
		SourceVarianceMax:            0.03,
		VerifiedConfidence:           0.25,
		VerifiedTopicOverlap:         1.0,
		PartialConfidence:            0.15,

		RelevanceHigh:                  0.18,
		RelevanceLow:                   0.10,
		TopicAlignment:                 0.9,
		DominantTopicShare:             0.5,
		DiversityMinTopics:             8,
		VerificationQualityRate:        0.9,
		MethodologicalVerificationRate: 1.0,
		RelevanceConsistencyRange:      0.1,
		ContributionDiversityMin:       3,
		EmergingDirectionTopics:        3,
	}
}
