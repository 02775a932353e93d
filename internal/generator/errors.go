package generator

import "errors"

var (
	// ErrInvalidArgument is returned when the colour count violates a strategy's
	// parity rule or a tuning parameter is out of range.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInsufficientSamples is returned when the sampled candidate pool cannot
	// supply the requested number of distinct colours.
	ErrInsufficientSamples = errors.New("insufficient samples")
)
