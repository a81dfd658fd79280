package models

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation failed")
	ErrConflict         = errors.New("conflict")
	ErrMalformedRecord  = errors.New("malformed emotion record")
	ErrShapeMismatch    = errors.New("checkpoint shape mismatch")
	ErrSessionCompleted = errors.New("session already completed")
	ErrUnsupportedModel = errors.New("unsupported model type")
)
