package papers

import "errors"

var (
	// ErrPaperNotFound means a paper ID did not resolve to a paper in the corpus.
	// Callers treat it as a broken invariant.
	ErrPaperNotFound = errors.New("paper not found")
	ErrEmptyTitle    = errors.New("paper has empty title")
)
