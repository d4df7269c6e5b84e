package embedding

import "errors"

var (
	ErrEmptyVocabulary = errors.New("empty vocabulary after pruning")
	ErrInvalidOptions  = errors.New("invalid vectorizer options")
)
