package analysis

import (
	"fmt"
	"strings"

	"github.com/bull/research-insights/internal/papers"
)

// ChunkRef is a compact reference to a retrieved chunk.
type ChunkRef struct {
	ChunkID     string  `json:"chunk_id"`
	Similarity  float64 `json:"similarity"` // Rounded to 4 decimals
	TextPreview string  `json:"text_preview"`
}

// PaperExtract is the reader's view of a single paper.
type PaperExtract struct {
	PaperID        int        `json:"paper_id"`
	Title          string     `json:"title"`
	Abstract       string     `json:"abstract"`
	Keywords       []string   `json:"keywords"`
	AbstractLength int        `json:"abstract_length"` // Words
	KeywordCount   int        `json:"keyword_count"`
	RelevantChunks []ChunkRef `json:"relevant_chunks"`
}

// ReaderOutput is the result of reading every paper in a corpus.
type ReaderOutput struct {
	Agent           string         `json:"agent"`
	PapersProcessed int            `json:"papers_processed"`
	TotalKeywords   int            `json:"total_keywords"`
	Papers          []PaperExtract `json:"extracted_papers"`
}

// Read extracts the abstract and keywords of each paper and retrieves the
// chunks most similar to the paper's leading keywords.
func Read(corpus *papers.Corpus, s Searcher, th Thresholds) (*ReaderOutput, error) {
	out := &ReaderOutput{Agent: AgentPaperReader}

	for i, p := range corpus.Papers() {
		id := i + 1
		abstract := strings.TrimSpace(p.Abstract)

		query := strings.Join(firstN(p.Keywords, th.KeyTopicCount), " ")
		results, err := s.Search(query, th.ReaderTopK)
		if err != nil {
			return nil, fmt.Errorf("search for paper %d: %w", id, err)
		}

		refs := make([]ChunkRef, len(results))
		for j, r := range results {
			refs[j] = ChunkRef{
				ChunkID:     r.Entry.ChunkID,
				Similarity:  round4(r.Similarity),
				TextPreview: truncateRunes(r.Entry.Text, th.TextPreviewLength),
			}
		}

		out.Papers = append(out.Papers, PaperExtract{
			PaperID:        id,
			Title:          p.Title,
			Abstract:       abstract,
			Keywords:       append([]string(nil), p.Keywords...),
			AbstractLength: len(strings.Fields(abstract)),
			KeywordCount:   len(p.Keywords),
			RelevantChunks: refs,
		})
		out.TotalKeywords += len(p.Keywords)
	}

	out.PapersProcessed = len(out.Papers)
	return out, nil
}
