package textproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLemmatize(t *testing.T) {
	tests := map[string]string{
		"networks":   "network",
		"studies":    "study",
		"approaches": "approach",
		"processes":  "process",
		"boxes":      "box",
		"children":   "child",
		"analyses":   "analysis",
		"criteria":   "criterion",
		"data":       "data",
		"bias":       "bias",
		"diagnosis":  "diagnosis",
		"status":     "status",
		"class":      "class",
		"cnns":       "cnn",
		"learning":   "learning",
		"ties":       "tie",
		"gas":        "gas",
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, Lemmatize(in))
		})
	}
}

func TestIsStopword(t *testing.T) {
	assert.True(t, IsStopword("the"))
	assert.True(t, IsStopword("between"))
	assert.False(t, IsStopword("clinical"))
	assert.Len(t, englishStopwords, 179)
}
