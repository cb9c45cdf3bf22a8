package error

import "errors"

// Bank movement domain errors.
var (
	// ErrMovementNotFound is returned when a bank movement is not found.
	ErrMovementNotFound = errors.New("bank movement not found")
)
