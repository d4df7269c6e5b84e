// Package analysis holds the rule-based annotators that run after retrieval:
// paper reading, summarization, fact-checking and insight generation.
package analysis

import (
	"math"

	"github.com/bull/research-insights/internal/storage"
)

// Agent names, in pipeline order.
const (
	AgentPaperReader = "Paper Reader"
	AgentSummarizer  = "Summarization"
	AgentFactCheck   = "Fact-Check"
	AgentInsights    = "Insight Generator"
)

// Searcher ranks knowledge base entries against a text query.
type Searcher interface {
	Search(query string, topK int) ([]storage.SearchResult, error)
}

func round4(x float64) float64 {
	return math.Round(x*1e4) / 1e4
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// variance is the population variance of xs.
func variance(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := mean(xs)
	var sum float64
	for _, x := range xs {
		sum += (x - m) * (x - m)
	}
	return sum / float64(len(xs))
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func firstN(xs []string, n int) []string {
	if n < len(xs) {
		xs = xs[:n]
	}
	return append([]string(nil), xs...)
}

// dedupe returns xs without repeats, keeping first occurrences in order.
func dedupe(xs []string) []string {
	seen := make(map[string]struct{}, len(xs))
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		if _, ok := seen[x]; ok {
			continue
		}
		seen[x] = struct{}{}
		out = append(out, x)
	}
	return out
}
