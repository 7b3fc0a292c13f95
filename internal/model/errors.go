package model

import "errors"

var (
	// ErrInvalidShape is returned when a shape matrix is empty, ragged or has no filled cells.
	ErrInvalidShape = errors.New("invalid shape")
	// ErrInvalidRegion is returned when a region has non-positive dimensions or bad counts.
	ErrInvalidRegion = errors.New("invalid region")
	// ErrInvalidPuzzle is returned when puzzle input cannot be parsed.
	ErrInvalidPuzzle = errors.New("invalid puzzle")
)
