package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrQuotaExceeded   = errors.New("upload quota exceeded")
	ErrUnsupportedFile = errors.New("unsupported file type")
	ErrInvalidInput    = errors.New("invalid input")
)
