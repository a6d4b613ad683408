package img2ascii

import "errors"

var (
	// ErrDecode wraps every failure to load or decode the source image.
	ErrDecode = errors.New("img2ascii: cannot decode image")

	// ErrInvalidWidth is returned for a target width below one character.
	ErrInvalidWidth = errors.New("img2ascii: width must be a positive integer")

	// ErrInvalidAspectRatio is returned for a non-positive or non-finite
	// aspect ratio correction.
	ErrInvalidAspectRatio = errors.New("img2ascii: aspect ratio must be a positive number")

	// ErrInvalidWorkers is returned for a negative encoder worker count.
	ErrInvalidWorkers = errors.New("img2ascii: workers must not be negative")

	// ErrEmptyImage is returned when the source image has no pixels.
	ErrEmptyImage = errors.New("img2ascii: image has no pixels")

	// ErrMismatchedLengths is returned by Compose when glyphs and color
	// codes do not pair up into whole rows.
	ErrMismatchedLengths = errors.New("img2ascii: glyphs and color codes do not form whole rows")

	// ErrWrite wraps failures to write rendered output.
	ErrWrite = errors.New("img2ascii: cannot write output")
)
