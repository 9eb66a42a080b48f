package pcm

import "errors"

var (
	errSeek              = errors.New("seek position out of range")
	errUnsupportedFormat = errors.New("unsupported audio format")
	errNoSamples         = errors.New("stream has no samples")
	errBadSampleRate     = errors.New("sample rate must be positive")
	errBadBitDepth       = errors.New("bit depth must be 16 or 24")
)
