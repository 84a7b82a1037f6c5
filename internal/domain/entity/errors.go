package entity

import "errors"

var (
	ErrEmptyImage          = errors.New("empty image")
	ErrDetectorUnavailable = errors.New("detector is not available")
	ErrUnsupportedFormat   = errors.New("unsupported image format")
	ErrBadStatus           = errors.New("unexpected http status")
)
