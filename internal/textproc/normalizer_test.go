package textproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bull/research-insights/internal/papers"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "Deep Learning", "deep learning"},
		{"strips digits and punctuation", "accuracy: 95% (CNNs)!", "accuracy cnns"},
		{"collapses whitespace", "  a \n\t b   c  ", "a b c"},
		{"hyphen becomes space", "state-of-the-art", "state of the art"},
		{"empty", "", ""},
		{"only symbols", "123 !!! 456", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.input))
		})
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("the studies of neural networks are in clinical trials")
	assert.Equal(t, []string{"study", "neural", "network", "clinical", "trial"}, got)
}

func TestTokenize_DropsShortTokens(t *testing.T) {
	got := Tokenize("ai ml nlp cdss")
	assert.Equal(t, []string{"nlp", "cdss"}, got)
}

func TestTokenize_Empty(t *testing.T) {
	assert.Empty(t, Tokenize(""))
}

func TestSentences(t *testing.T) {
	raw := "First sentence. Second one! Is it third? Value 0.90 stays. Tail"
	got := Sentences(raw)
	assert.Equal(t, []string{
		"First sentence.",
		"Second one!",
		"Is it third?",
		"Value 0.90 stays.",
		"Tail",
	}, got)
}

func TestSentences_Empty(t *testing.T) {
	assert.Empty(t, Sentences("   "))
}

func TestRawText(t *testing.T) {
	assert.Equal(t, "Title Abstract", RawText(papers.Paper{Title: "Title", Abstract: "Abstract"}))
	assert.Equal(t, "Title", RawText(papers.Paper{Title: "Title"}))
}

func TestProcess(t *testing.T) {
	p := papers.Paper{
		Title:    "Clinical Decision Support",
		Abstract: "Systems reduce medical errors. Physicians adopt them slowly.",
		Keywords: []string{"cdss"},
	}

	pp := Process(2, p)

	assert.Equal(t, 2, pp.PaperID)
	assert.Equal(t, "Clinical Decision Support Systems reduce medical errors. Physicians adopt them slowly.", pp.RawText)
	assert.Equal(t, "clinical decision support systems reduce medical errors physicians adopt them slowly", pp.CleanedText)
	assert.Equal(t, 2, pp.SentenceCount)
	assert.Equal(t, []string{
		"clinical", "decision", "support", "system", "reduce", "medical", "error", "physician", "adopt", "slowly",
	}, pp.Tokens)
	assert.Equal(t, len(pp.Tokens), pp.TokenCount)
	assert.Equal(t, []string{"cdss"}, pp.Keywords)
}

func TestProcessAll_SampleCorpus(t *testing.T) {
	processed := ProcessAll(papers.SampleCorpus())
	require.Len(t, processed, 3)

	for i, pp := range processed {
		assert.Equal(t, i+1, pp.PaperID)
		assert.NotEmpty(t, pp.Tokens)
		for _, tok := range pp.Tokens {
			assert.GreaterOrEqual(t, len(tok), 2, "token %q", tok)
			assert.False(t, IsStopword(tok), "token %q", tok)
		}
	}
}
