// Package textproc turns raw paper text into cleaned text, sentences and
// lemmatized content tokens.
package textproc

import (
	"strings"
	"unicode"

	"github.com/bull/research-insights/internal/papers"
)

// MinTokenLength is the shortest token kept after stopword removal.
const MinTokenLength = 3

// RawText joins the non-empty title and abstract of a paper with a space.
func RawText(p papers.Paper) string {
	parts := make([]string, 0, 2)
	for _, s := range []string{p.Title, p.Abstract} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// Clean lowercases text, replaces everything except ASCII letters and
// whitespace with a space, and collapses whitespace runs.
func Clean(text string) string {
	mapped := strings.Map(func(r rune) rune {
		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, text)
	return strings.Join(strings.Fields(mapped), " ")
}

// Tokenize splits cleaned text on whitespace, drops stopwords and short
// tokens, and lemmatizes what remains.
func Tokenize(cleaned string) []string {
	fields := strings.Fields(cleaned)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < MinTokenLength || IsStopword(f) {
			continue
		}
		tokens = append(tokens, Lemmatize(f))
	}
	return tokens
}

// Sentences splits raw text after '.', '!' or '?' when the terminator is
// followed by whitespace. Empty pieces are dropped.
func Sentences(raw string) []string {
	var (
		out   []string
		start int
	)
	runes := []rune(raw)
	for i, r := range runes {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
			out = append(out, s)
		}
		start = i + 1
	}
	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		out = append(out, s)
	}
	return out
}

// Process runs the full normalization for the paper with the given 1-based ID.
func Process(id int, p papers.Paper) papers.ProcessedPaper {
	raw := RawText(p)
	cleaned := Clean(raw)
	sentences := Sentences(raw)
	tokens := Tokenize(cleaned)

	return papers.ProcessedPaper{
		PaperID:       id,
		Title:         p.Title,
		Keywords:      append([]string(nil), p.Keywords...),
		RawText:       raw,
		CleanedText:   cleaned,
		Sentences:     sentences,
		Tokens:        tokens,
		TokenCount:    len(tokens),
		SentenceCount: len(sentences),
	}
}

// ProcessAll normalizes every paper of the corpus in order.
func ProcessAll(c *papers.Corpus) []papers.ProcessedPaper {
	ps := c.Papers()
	out := make([]papers.ProcessedPaper, len(ps))
	for i, p := range ps {
		out[i] = Process(i+1, p)
	}
	return out
}
