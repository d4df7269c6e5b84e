package report

import "errors"

var (
	ErrIncompleteInput   = errors.New("report input incomplete")
	ErrUnsupportedFormat = errors.New("unsupported report format")
)
