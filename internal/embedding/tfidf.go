// Package embedding turns chunk text into sparse-weighted dense vectors with
// a TF-IDF vectorizer fitted on the chunk corpus.
package embedding

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

// tokenPattern matches runs of two or more letters, digits or underscores.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Options controls vocabulary construction and term weighting.
type Options struct {
	MaxFeatures int     // Vocabulary size cap; 0 means unlimited
	NgramMin    int     // Smallest n-gram length
	NgramMax    int     // Largest n-gram length
	MinDF       int     // Minimum number of documents a term must appear in
	MaxDF       float64 // Maximum fraction of documents a term may appear in
	SublinearTF bool    // Use 1+ln(tf) instead of raw counts
}

// DefaultOptions returns the weighting used for chunk embeddings.
func DefaultOptions() Options {
	return Options{
		MaxFeatures: 500,
		NgramMin:    1,
		NgramMax:    2,
		MinDF:       1,
		MaxDF:       0.95,
		SublinearTF: true,
	}
}

// Validate checks that the options describe a usable vectorizer.
func (o Options) Validate() error {
	switch {
	case o.MaxFeatures < 0:
		return fmt.Errorf("%w: max features %d", ErrInvalidOptions, o.MaxFeatures)
	case o.NgramMin < 1 || o.NgramMax < o.NgramMin:
		return fmt.Errorf("%w: ngram range (%d, %d)", ErrInvalidOptions, o.NgramMin, o.NgramMax)
	case o.MinDF < 1:
		return fmt.Errorf("%w: min df %d", ErrInvalidOptions, o.MinDF)
	case o.MaxDF <= 0 || o.MaxDF > 1:
		return fmt.Errorf("%w: max df %g", ErrInvalidOptions, o.MaxDF)
	}
	return nil
}

// Vectorizer maps text into a fixed vector space. The vocabulary and IDF
// weights are frozen when Fit returns.
type Vectorizer struct {
	opts       Options
	vocabulary map[string]int
	terms      []string
	idf        []float64
}

// Fit learns the vocabulary and IDF weights from texts and returns the
// vectorizer together with the L2-normalized TF-IDF row for each text.
// An empty corpus yields a zero-dimension vectorizer and no rows.
func Fit(texts []string, opts Options) (*Vectorizer, [][]float64, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}

	v := &Vectorizer{opts: opts, vocabulary: map[string]int{}}
	if len(texts) == 0 {
		return v, [][]float64{}, nil
	}

	docs := make([]map[string]int, len(texts))
	df := map[string]int{}
	total := map[string]int{}
	for i, text := range texts {
		counts := map[string]int{}
		for _, term := range v.analyze(text) {
			counts[term]++
		}
		for term, c := range counts {
			df[term]++
			total[term] += c
		}
		docs[i] = counts
	}

	n := len(texts)
	maxDocs := opts.MaxDF * float64(n)
	kept := make([]string, 0, len(df))
	for term, d := range df {
		if float64(d) > maxDocs || d < opts.MinDF {
			continue
		}
		kept = append(kept, term)
	}
	if len(kept) == 0 {
		return nil, nil, fmt.Errorf("fit %d documents: %w", n, ErrEmptyVocabulary)
	}

	if opts.MaxFeatures > 0 && len(kept) > opts.MaxFeatures {
		sort.Slice(kept, func(i, j int) bool {
			if total[kept[i]] != total[kept[j]] {
				return total[kept[i]] > total[kept[j]]
			}
			return kept[i] < kept[j]
		})
		kept = kept[:opts.MaxFeatures]
	}
	sort.Strings(kept)

	v.terms = kept
	v.idf = make([]float64, len(kept))
	for i, term := range kept {
		v.vocabulary[term] = i
		v.idf[i] = math.Log(float64(1+n)/float64(1+df[term])) + 1
	}

	rows := make([][]float64, n)
	for i, counts := range docs {
		rows[i] = v.weigh(counts)
	}
	return v, rows, nil
}

// Dimension returns the vector length.
func (v *Vectorizer) Dimension() int {
	return len(v.terms)
}

// Vocabulary returns the terms in vector index order.
func (v *Vectorizer) Vocabulary() []string {
	return append([]string(nil), v.terms...)
}

// IDF returns the inverse document frequency of term, if it is in the vocabulary.
func (v *Vectorizer) IDF(term string) (float64, bool) {
	i, ok := v.vocabulary[term]
	if !ok {
		return 0, false
	}
	return v.idf[i], true
}

// Transform projects text into the fitted space. Terms outside the
// vocabulary contribute nothing, so unrelated text yields the zero vector.
func (v *Vectorizer) Transform(text string) []float64 {
	counts := map[string]int{}
	for _, term := range v.analyze(text) {
		if _, ok := v.vocabulary[term]; ok {
			counts[term]++
		}
	}
	return v.weigh(counts)
}

// TransformAll projects each text in order.
func (v *Vectorizer) TransformAll(texts []string) [][]float64 {
	rows := make([][]float64, len(texts))
	for i, text := range texts {
		rows[i] = v.Transform(text)
	}
	return rows
}

// analyze lowercases text, extracts word tokens and expands them into
// n-grams joined by a single space.
func (v *Vectorizer) analyze(text string) []string {
	tokens := tokenPattern.FindAllString(strings.ToLower(text), -1)

	var terms []string
	for n := v.opts.NgramMin; n <= v.opts.NgramMax; n++ {
		if n == 1 {
			terms = append(terms, tokens...)
			continue
		}
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}

func (v *Vectorizer) weigh(counts map[string]int) []float64 {
	vec := make([]float64, len(v.terms))
	for term, c := range counts {
		i, ok := v.vocabulary[term]
		if !ok {
			continue
		}
		tf := float64(c)
		if v.opts.SublinearTF {
			tf = 1 + math.Log(tf)
		}
		vec[i] = tf * v.idf[i]
	}
	normalize(vec)
	return vec
}

func normalize(vec []float64) {
	n := Norm(vec)
	if n == 0 {
		return
	}
	for i := range vec {
		vec[i] /= n
	}
}
