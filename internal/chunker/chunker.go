// Package chunker splits processed papers into fixed-size, overlapping
// token windows.
package chunker

import (
	"fmt"
	"strings"

	"github.com/bull/research-insights/internal/papers"
)

const (
	// DefaultSize is the number of tokens per chunk.
	DefaultSize = 100

	// DefaultOverlap is the number of tokens shared by consecutive chunks.
	DefaultOverlap = 20
)

// Chunk is a contiguous token window of a single paper.
type Chunk struct {
	ChunkID    string   `json:"chunk_id"`    // "{paper_id}-{position}"
	PaperID    int      `json:"paper_id"`    // 1-based paper position in the corpus
	PaperTitle string   `json:"paper_title"` // Title of the owning paper
	Position   int      `json:"position"`    // 1-based position within the paper
	Start      int      `json:"start"`       // Token offset of the first token
	Tokens     []string `json:"tokens"`
	TokenCount int      `json:"token_count"`
	Text       string   `json:"text"` // Tokens joined by single spaces
}

// Chunker produces overlapping token windows.
type Chunker struct {
	size    int
	overlap int
}

// New creates a Chunker. It requires size > overlap >= 0.
func New(size, overlap int) (*Chunker, error) {
	if overlap < 0 || size <= overlap {
		return nil, fmt.Errorf("%w: size=%d overlap=%d (need size > overlap >= 0)", ErrInvalidWindow, size, overlap)
	}
	return &Chunker{size: size, overlap: overlap}, nil
}

// Size returns the window length.
func (c *Chunker) Size() int { return c.size }

// Overlap returns the number of tokens shared between neighbouring windows.
func (c *Chunker) Overlap() int { return c.overlap }

// Chunk splits the paper's tokens into windows. The window advances by
// size-overlap and stops after the window that reaches the last token, so
// every token is covered and only the last chunk may be shorter than size.
func (c *Chunker) Chunk(pp papers.ProcessedPaper) []Chunk {
	tokens := pp.Tokens
	if len(tokens) == 0 {
		return nil
	}

	stride := c.size - c.overlap
	var chunks []Chunk
	for start := 0; ; start += stride {
		end := min(start+c.size, len(tokens))
		window := append([]string(nil), tokens[start:end]...)
		position := len(chunks) + 1

		chunks = append(chunks, Chunk{
			ChunkID:    fmt.Sprintf("%d-%d", pp.PaperID, position),
			PaperID:    pp.PaperID,
			PaperTitle: pp.Title,
			Position:   position,
			Start:      start,
			Tokens:     window,
			TokenCount: len(window),
			Text:       strings.Join(window, " "),
		})

		if end >= len(tokens) {
			break
		}
	}
	return chunks
}

// ChunkAll chunks every paper in order and concatenates the results.
func (c *Chunker) ChunkAll(pps []papers.ProcessedPaper) []Chunk {
	var all []Chunk
	for _, pp := range pps {
		all = append(all, c.Chunk(pp)...)
	}
	return all
}
