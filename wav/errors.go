package wav

import "errors"

// File format errors.
var (
	// ErrNotWAV indicates the input does not carry the RIFF/WAVE
	// signature.
	ErrNotWAV = errors.New("not a RIFF/WAVE file")

	// ErrUnsupportedFormat indicates a WAVE variant other than 16-bit
	// integer PCM.
	ErrUnsupportedFormat = errors.New("unsupported WAVE format")

	// ErrMalformedChunk indicates a chunk list that does not follow the
	// RIFF grammar.
	ErrMalformedChunk = errors.New("malformed RIFF chunk")
)
