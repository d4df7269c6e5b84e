package textproc

import "strings"

// nounExceptions maps irregular plural nouns to their singular form.
var nounExceptions = map[string]string{
	"children":   "child",
	"women":      "woman",
	"men":        "man",
	"people":     "person",
	"criteria":   "criterion",
	"phenomena":  "phenomenon",
	"analyses":   "analysis",
	"diagnoses":  "diagnosis",
	"hypotheses": "hypothesis",
	"theses":     "thesis",
	"indices":    "index",
	"matrices":   "matrix",
	"vertices":   "vertex",
	"mice":       "mouse",
	"feet":       "foot",
	"teeth":      "tooth",
	"geese":      "goose",
	"data":       "data",
}

// invariantNouns end in "s" but are already in base form.
var invariantNouns = toSet([]string{
	"bias", "always", "perhaps", "lens", "news", "physics", "mathematics",
	"ethics", "economics", "genetics", "diabetes", "series", "species", "thus",
	"yes", "various", "previous", "numerous", "serious", "less", "across",
	"process", "access", "success", "analysis", "diagnosis", "basis", "status",
	"virus", "focus", "consensus", "corpus", "campus", "bus", "gas",
})

// Lemmatize reduces a lowercase noun to its base form using an exception
// table followed by plural suffix rules. Words that match no rule are
// returned unchanged.
func Lemmatize(word string) string {
	if base, ok := nounExceptions[word]; ok {
		return base
	}
	if _, ok := invariantNouns[word]; ok {
		return word
	}

	switch {
	case strings.HasSuffix(word, "ies") && len(word) > 4:
		return strings.TrimSuffix(word, "ies") + "y"
	case strings.HasSuffix(word, "sses"),
		strings.HasSuffix(word, "ches"),
		strings.HasSuffix(word, "shes"),
		strings.HasSuffix(word, "xes"),
		strings.HasSuffix(word, "zes"):
		return strings.TrimSuffix(word, "es")
	case strings.HasSuffix(word, "ss"),
		strings.HasSuffix(word, "us"),
		strings.HasSuffix(word, "is"):
		return word
	case strings.HasSuffix(word, "s") && len(word) > 3:
		return strings.TrimSuffix(word, "s")
	}
	return word
}
