package presence

import "errors"

var (
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidName           = errors.New("invalid name")
	ErrInvalidPhone          = errors.New("invalid phone")
	ErrInvalidCoordinates    = errors.New("invalid coordinates")

	ErrCourierNotFound  = errors.New("courier not found")
	ErrConflict         = errors.New("courier already exists")
	ErrCapacityExceeded = errors.New("courier capacity exceeded")
)
