package analysis

// Status is the validation outcome of a fact-checked paper.
type Status string

const (
	StatusHallucinationDetected Status = "HALLUCINATION_DETECTED"
	StatusInconsistent          Status = "INCONSISTENT"
	StatusVerified              Status = "VERIFIED"
	StatusPartial               Status = "PARTIAL"
	StatusUnverified            Status = "UNVERIFIED"
)

// Evidence is what Classify needs to decide a Status.
type Evidence struct {
	Hallucinations  int
	Inconsistencies int
	AvgConfidence   float64
	TopicOverlap    float64
}

// Classify evaluates the rules in fixed order and returns the first match:
//
//  1. any hallucination flag          -> HALLUCINATION_DETECTED
//  2. any inconsistency flag          -> INCONSISTENT
//  3. confidence and full topic match -> VERIFIED
//  4. moderate confidence             -> PARTIAL
//  5. otherwise                       -> UNVERIFIED
func Classify(e Evidence, th Thresholds) Status {
	switch {
	case e.Hallucinations > 0:
		return StatusHallucinationDetected
	case e.Inconsistencies > 0:
		return StatusInconsistent
	case e.AvgConfidence > th.VerifiedConfidence && e.TopicOverlap >= th.VerifiedTopicOverlap:
		return StatusVerified
	case e.AvgConfidence > th.PartialConfidence:
		return StatusPartial
	default:
		return StatusUnverified
	}
}
