package storage

import (
	"encoding/json"

	"github.com/bull/research-insights/internal/chunker"
)

// IndexEntry is a chunk together with its embedding vector.
// Entries are created by Build and never modified afterward.
type IndexEntry struct {
	chunker.Chunk
	Vector []float64 // Fixed length equal to the vectorizer dimension
	Norm   float64   // L2 norm of Vector
}

// SearchResult is one ranked match. Entry points into the knowledge base
// rather than copying it.
type SearchResult struct {
	Rank       int         // 1-based rank
	Similarity float64     // Cosine similarity to the query
	Entry      *IndexEntry // Matched entry
}

type searchResultJSON struct {
	Rank       int     `json:"rank"`
	Similarity float64 `json:"similarity"`
	ChunkID    string  `json:"chunk_id"`
	PaperID    int     `json:"paper_id"`
	PaperTitle string  `json:"paper_title"`
	ChunkText  string  `json:"chunk_text"`
	TokenCount int     `json:"token_count"`
}

// MarshalJSON flattens the referenced entry into the result object.
func (r SearchResult) MarshalJSON() ([]byte, error) {
	out := searchResultJSON{Rank: r.Rank, Similarity: r.Similarity}
	if r.Entry != nil {
		out.ChunkID = r.Entry.ChunkID
		out.PaperID = r.Entry.PaperID
		out.PaperTitle = r.Entry.PaperTitle
		out.ChunkText = r.Entry.Text
		out.TokenCount = r.Entry.TokenCount
	}
	return json.Marshal(out)
}

// Stats summarizes a knowledge base.
type Stats struct {
	TotalEntries  int     `json:"total_entries"`
	UniquePapers  int     `json:"unique_papers"`
	Dimension     int     `json:"embedding_dimension"`
	AvgTokenCount float64 `json:"avg_token_count"`
	AvgNorm       float64 `json:"avg_embedding_norm"`
	Sparsity      float64 `json:"sparsity"` // Fraction of zero components across all vectors
}
