package papers

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Corpus is an ordered, immutable list of papers.
// Paper IDs are 1-based positions in the list.
type Corpus struct {
	papers []Paper
}

// corpusFile is the on-disk layout accepted by Load. JSON is read through
// the same decoder since it is valid YAML.
type corpusFile struct {
	Papers []Paper `yaml:"papers"`
}

// NewCorpus validates papers and returns a corpus over a private copy of them.
func NewCorpus(papers []Paper) (*Corpus, error) {
	cp := make([]Paper, len(papers))
	for i, p := range papers {
		if strings.TrimSpace(p.Title) == "" {
			return nil, fmt.Errorf("paper %d: %w", i+1, ErrEmptyTitle)
		}
		cp[i] = Paper{
			Title:    p.Title,
			Abstract: p.Abstract,
			Keywords: append([]string(nil), p.Keywords...),
		}
	}
	return &Corpus{papers: cp}, nil
}

// Load reads a corpus from a YAML or JSON file with a top-level "papers" list.
func Load(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus %s: %w", path, err)
	}

	var f corpusFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse corpus %s: %w", path, err)
	}

	return NewCorpus(f.Papers)
}

// Len returns the number of papers.
func (c *Corpus) Len() int {
	return len(c.papers)
}

// Papers returns the papers in corpus order.
func (c *Corpus) Papers() []Paper {
	return append([]Paper(nil), c.papers...)
}

// Lookup returns the paper with the given 1-based ID.
func (c *Corpus) Lookup(id int) (Paper, error) {
	if id < 1 || id > len(c.papers) {
		return Paper{}, fmt.Errorf("%w: id %d", ErrPaperNotFound, id)
	}
	return c.papers[id-1], nil
}
