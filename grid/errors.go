package grid

import "errors"

var (
	errBadSize    = errors.New("target width and height must be positive")
	errEmptyImage = errors.New("image has no pixels")
)
