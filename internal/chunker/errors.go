package chunker

import "errors"

var (
	ErrInvalidWindow = errors.New("invalid chunk window")
)
