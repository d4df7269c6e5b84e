package chunker

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bull/research-insights/internal/papers"
)

func paperWithTokens(id, n int) papers.ProcessedPaper {
	tokens := make([]string, n)
	for i := range tokens {
		tokens[i] = fmt.Sprintf("tok%d", i)
	}
	return papers.ProcessedPaper{PaperID: id, Title: fmt.Sprintf("Paper %d", id), Tokens: tokens, TokenCount: n}
}

func TestNew_InvalidWindow(t *testing.T) {
	tests := []struct {
		name          string
		size, overlap int
	}{
		{"overlap equals size", 10, 10},
		{"overlap exceeds size", 5, 10},
		{"negative overlap", 10, -1},
		{"zero size", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.size, tt.overlap)
			assert.ErrorIs(t, err, ErrInvalidWindow)
		})
	}
}

func TestChunk_250Tokens(t *testing.T) {
	c, err := New(DefaultSize, DefaultOverlap)
	require.NoError(t, err)

	chunks := c.Chunk(paperWithTokens(1, 250))
	require.Len(t, chunks, 3)

	assert.Equal(t, []int{0, 80, 160}, []int{chunks[0].Start, chunks[1].Start, chunks[2].Start})
	assert.Equal(t, 100, chunks[0].TokenCount)
	assert.Equal(t, 100, chunks[1].TokenCount)
	assert.Equal(t, 90, chunks[2].TokenCount)
	assert.Equal(t, []string{"1-1", "1-2", "1-3"}, []string{chunks[0].ChunkID, chunks[1].ChunkID, chunks[2].ChunkID})
}

func TestChunk_ShortPaper(t *testing.T) {
	c, err := New(DefaultSize, DefaultOverlap)
	require.NoError(t, err)

	chunks := c.Chunk(paperWithTokens(3, 42))
	require.Len(t, chunks, 1)
	assert.Equal(t, "3-1", chunks[0].ChunkID)
	assert.Equal(t, 42, chunks[0].TokenCount)
	assert.Equal(t, "Paper 3", chunks[0].PaperTitle)
}

func TestChunk_NoTokens(t *testing.T) {
	c, err := New(DefaultSize, DefaultOverlap)
	require.NoError(t, err)

	assert.Empty(t, c.Chunk(paperWithTokens(1, 0)))
}

func TestChunk_ExactWindow(t *testing.T) {
	c, err := New(10, 2)
	require.NoError(t, err)

	chunks := c.Chunk(paperWithTokens(1, 10))
	require.Len(t, chunks, 1)
	assert.Equal(t, 10, chunks[0].TokenCount)
}

func TestChunk_CoverageProperties(t *testing.T) {
	for _, n := range []int{1, 7, 19, 20, 21, 64, 101, 333} {
		for _, w := range []struct{ size, overlap int }{{5, 0}, {5, 4}, {10, 3}, {100, 20}} {
			t.Run(fmt.Sprintf("n=%d/size=%d/overlap=%d", n, w.size, w.overlap), func(t *testing.T) {
				c, err := New(w.size, w.overlap)
				require.NoError(t, err)

				pp := paperWithTokens(1, n)
				chunks := c.Chunk(pp)
				require.NotEmpty(t, chunks)

				covered := make([]bool, n)
				for i, ch := range chunks {
					assert.Equal(t, i+1, ch.Position)
					if i > 0 {
						assert.Equal(t, chunks[i-1].Start+w.size-w.overlap, ch.Start)
					}
					if i < len(chunks)-1 {
						assert.Equal(t, w.size, ch.TokenCount)
					}
					assert.Equal(t, pp.Tokens[ch.Start:ch.Start+ch.TokenCount], ch.Tokens)
					for j := ch.Start; j < ch.Start+ch.TokenCount; j++ {
						covered[j] = true
					}
				}

				last := chunks[len(chunks)-1]
				assert.Equal(t, n, last.Start+last.TokenCount)
				assert.NotContains(t, covered, false)
			})
		}
	}
}

func TestChunkAll(t *testing.T) {
	c, err := New(10, 2)
	require.NoError(t, err)

	chunks := c.ChunkAll([]papers.ProcessedPaper{paperWithTokens(1, 12), paperWithTokens(2, 5)})
	require.Len(t, chunks, 3)
	assert.Equal(t, "1-1", chunks[0].ChunkID)
	assert.Equal(t, "1-2", chunks[1].ChunkID)
	assert.Equal(t, "2-1", chunks[2].ChunkID)
	assert.Equal(t, "tok0 tok1 tok2 tok3 tok4", chunks[2].Text)
}
