package viewport

import "errors"

var (
	// ErrInvalidDimensions is returned when a width or height is not positive.
	ErrInvalidDimensions = errors.New("viewport: width and height must be positive")
	// ErrUnknownView is returned for a View outside the canonical set.
	ErrUnknownView = errors.New("viewport: unknown view")
	// ErrUnknownMode is returned when parsing an unrecognised mode name.
	ErrUnknownMode = errors.New("viewport: unknown mode")
	// ErrUnknownEvent is returned when parsing an unrecognised event name.
	ErrUnknownEvent = errors.New("viewport: unknown event")
	// ErrDegenerateEye is returned when a perspective eye setup has no usable direction.
	ErrDegenerateEye = errors.New("viewport: eye coincides with center or is parallel to up")
)
