// Package storage holds the in-memory knowledge base of embedded chunks and
// answers similarity queries against it.
package storage

import (
	"fmt"
	"sort"

	"github.com/bull/research-insights/internal/chunker"
	"github.com/bull/research-insights/internal/embedding"
	"github.com/bull/research-insights/internal/papers"
)

// KnowledgeBase is a flat, ordered index of chunk embeddings.
// It is read-only after Build, so concurrent searches need no locking.
type KnowledgeBase struct {
	entries    []IndexEntry
	vectorizer *embedding.Vectorizer
}

// Build pairs each chunk with its row of vectors. Every chunk must belong to
// a paper in corpus and every row must have the vectorizer's dimension.
func Build(chunks []chunker.Chunk, vectorizer *embedding.Vectorizer, vectors [][]float64, corpus *papers.Corpus) (*KnowledgeBase, error) {
	if len(chunks) != len(vectors) {
		return nil, fmt.Errorf("%w: %d chunks, %d vectors", ErrRowCountMismatch, len(chunks), len(vectors))
	}

	dim := vectorizer.Dimension()
	entries := make([]IndexEntry, len(chunks))
	for i, ch := range chunks {
		if _, err := corpus.Lookup(ch.PaperID); err != nil {
			return nil, fmt.Errorf("chunk %s: %w", ch.ChunkID, err)
		}
		if len(vectors[i]) != dim {
			return nil, fmt.Errorf("chunk %s: %w: got %d, want %d", ch.ChunkID, ErrDimensionMismatch, len(vectors[i]), dim)
		}
		vec := append([]float64(nil), vectors[i]...)
		entries[i] = IndexEntry{
			Chunk:  ch,
			Vector: vec,
			Norm:   embedding.Norm(vec),
		}
	}

	return &KnowledgeBase{entries: entries, vectorizer: vectorizer}, nil
}

// Len returns the number of entries.
func (kb *KnowledgeBase) Len() int {
	return len(kb.entries)
}

// Entries returns the entries in index order. The returned slice is shared
// with the knowledge base and must not be modified.
func (kb *KnowledgeBase) Entries() []IndexEntry {
	return kb.entries
}

// Entry returns the entry with the given chunk ID.
func (kb *KnowledgeBase) Entry(chunkID string) (*IndexEntry, bool) {
	for i := range kb.entries {
		if kb.entries[i].ChunkID == chunkID {
			return &kb.entries[i], true
		}
	}
	return nil, false
}

// Search embeds query and returns the topK most similar entries.
func (kb *KnowledgeBase) Search(query string, topK int) ([]SearchResult, error) {
	if topK < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLimit, topK)
	}
	return kb.SearchVector(kb.vectorizer.Transform(query), topK)
}

// SearchVector ranks every entry by cosine similarity to vec, highest first.
// Ties keep index order. An all-zero vec scores every entry 0.
func (kb *KnowledgeBase) SearchVector(vec []float64, topK int) ([]SearchResult, error) {
	if topK < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLimit, topK)
	}
	if len(vec) != kb.vectorizer.Dimension() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(vec), kb.vectorizer.Dimension())
	}

	qnorm := embedding.Norm(vec)
	results := make([]SearchResult, len(kb.entries))
	for i := range kb.entries {
		e := &kb.entries[i]
		var sim float64
		if qnorm > 0 && e.Norm > 0 {
			sim = embedding.Dot(vec, e.Vector) / (qnorm * e.Norm)
		}
		results[i] = SearchResult{Similarity: sim, Entry: e}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	results = results[:min(topK, len(results))]
	for i := range results {
		results[i].Rank = i + 1
	}
	return results, nil
}

// Stats computes summary statistics over all entries.
func (kb *KnowledgeBase) Stats() Stats {
	s := Stats{
		TotalEntries: len(kb.entries),
		Dimension:    kb.vectorizer.Dimension(),
	}
	if len(kb.entries) == 0 {
		return s
	}

	seen := map[int]struct{}{}
	var tokens, norms float64
	var zeros, cells int
	for _, e := range kb.entries {
		seen[e.PaperID] = struct{}{}
		tokens += float64(e.TokenCount)
		norms += e.Norm
		for _, x := range e.Vector {
			if x == 0 {
				zeros++
			}
		}
		cells += len(e.Vector)
	}

	n := float64(len(kb.entries))
	s.UniquePapers = len(seen)
	s.AvgTokenCount = tokens / n
	s.AvgNorm = norms / n
	if cells > 0 {
		s.Sparsity = float64(zeros) / float64(cells)
	}
	return s
}
