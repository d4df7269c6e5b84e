package storage

import "errors"

var (
	ErrInvalidLimit      = errors.New("search limit must be at least 1")
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
	ErrRowCountMismatch  = errors.New("chunk and vector counts differ")
)
