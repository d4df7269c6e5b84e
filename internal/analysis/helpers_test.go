package analysis

import (
	"fmt"

	"github.com/bull/research-insights/internal/chunker"
	"github.com/bull/research-insights/internal/storage"
)

// stubSearcher returns canned results per query and records every call.
type stubSearcher struct {
	results map[string][]storage.SearchResult
	err     error
	queries []string
	limits  []int
}

func (s *stubSearcher) Search(query string, topK int) ([]storage.SearchResult, error) {
	s.queries = append(s.queries, query)
	s.limits = append(s.limits, topK)
	if s.err != nil {
		return nil, s.err
	}
	r := s.results[query]
	return r[:min(topK, len(r))], nil
}

func hit(sim float64, paperID, position int) storage.SearchResult {
	id := fmt.Sprintf("%d-%d", paperID, position)
	return storage.SearchResult{
		Similarity: sim,
		Entry: &storage.IndexEntry{Chunk: chunker.Chunk{
			ChunkID:    id,
			PaperID:    paperID,
			PaperTitle: fmt.Sprintf("Paper %d", paperID),
			Position:   position,
			Text:       "chunk text " + id,
		}},
	}
}

func hits(paperID int, sims ...float64) []storage.SearchResult {
	out := make([]storage.SearchResult, len(sims))
	for i, s := range sims {
		out[i] = hit(s, paperID, i+1)
	}
	return out
}
