package repository

import "errors"

// Sentinel kinds for board errors.
var (
	ErrNotFound     = errors.New("player not ranked")
	ErrInvalidLimit = errors.New("invalid board limit")
)
