package domain

import "errors"

// Repository errors, translated to user-facing errors by the usecases.
var (
	ErrNotFound  = errors.New("resource not found")
	ErrDuplicate = errors.New("resource already exists")
)
