package pixpipe

import "errors"

// Common errors returned by pixpipe operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("pixpipe: invalid dimensions")

	// ErrDataTooSmall is returned when provided pixel data is shorter than width*height.
	ErrDataTooSmall = errors.New("pixpipe: data buffer too small")

	// ErrInvalidColor is returned for malformed color strings.
	ErrInvalidColor = errors.New("pixpipe: invalid color")

	// ErrUnsupportedFormat is returned when a byte layout is neither BGRA8 nor RGBA8.
	ErrUnsupportedFormat = errors.New("pixpipe: unsupported byte format")

	// ErrReleased is returned when a released buffer or closed canvas is used.
	ErrReleased = errors.New("pixpipe: buffer released")

	// ErrMissingPen is returned when a fill or draw pass runs without a pen.
	ErrMissingPen = errors.New("pixpipe: pass requires a pen")

	// ErrNoTarget is returned when a screen pass has no target attached.
	ErrNoTarget = errors.New("pixpipe: screen pass without a target")

	// ErrNoTransformer is returned when rotation, scaling or rescaling is
	// requested but no ImageTransformer was configured.
	ErrNoTransformer = errors.New("pixpipe: no image transformer configured")

	// ErrTransformFailed wraps failures reported by an ImageTransformer.
	ErrTransformFailed = errors.New("pixpipe: image transform failed")
)
