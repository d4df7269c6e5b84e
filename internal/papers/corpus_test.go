package papers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleCorpus(t *testing.T) {
	c := SampleCorpus()
	require.Equal(t, 3, c.Len())

	p, err := c.Lookup(2)
	require.NoError(t, err)
	assert.Equal(t, "Clinical Decision Support Systems: A Meta-Analysis of Effectiveness", p.Title)
	assert.Equal(t, []string{"clinical decision support", "machine learning", "healthcare automation", "patient safety"}, p.Keywords)
}

func TestLookup_OutOfRange(t *testing.T) {
	c := SampleCorpus()

	for _, id := range []int{0, -1, 4} {
		_, err := c.Lookup(id)
		assert.ErrorIs(t, err, ErrPaperNotFound, "id %d", id)
	}
}

func TestNewCorpus_CopiesInput(t *testing.T) {
	in := []Paper{{Title: "A", Keywords: []string{"x"}}}
	c, err := NewCorpus(in)
	require.NoError(t, err)

	in[0].Title = "changed"
	in[0].Keywords[0] = "changed"

	p, err := c.Lookup(1)
	require.NoError(t, err)
	assert.Equal(t, "A", p.Title)
	assert.Equal(t, []string{"x"}, p.Keywords)
}

func TestNewCorpus_EmptyTitle(t *testing.T) {
	_, err := NewCorpus([]Paper{{Title: "ok"}, {Title: "  "}})
	assert.ErrorIs(t, err, ErrEmptyTitle)
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "papers.yaml")
	content := `papers:
  - title: Federated Learning for Hospitals
    abstract: Hospitals train shared models without moving patient data.
    keywords: [federated learning, data privacy]
  - title: Second Paper
    abstract: Another abstract.
    keywords: []
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	p, err := c.Lookup(1)
	require.NoError(t, err)
	assert.Equal(t, "Federated Learning for Hospitals", p.Title)
	assert.Equal(t, []string{"federated learning", "data privacy"}, p.Keywords)
}

func TestLoad_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "papers.json")
	content := `{"papers": [{"title": "T", "abstract": "A b c.", "keywords": ["k"]}]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())
	assert.Equal(t, "T", c.Papers()[0].Title)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
