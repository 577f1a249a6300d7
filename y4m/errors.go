package y4m

import "errors"

// Stream format errors.
var (
	// ErrNotY4M indicates the input does not begin with the YUV4MPEG2
	// magic.
	ErrNotY4M = errors.New("not a YUV4MPEG2 stream")

	// ErrUnsupportedColorspace indicates a colorspace tag outside the
	// 8-bit planar set the pipeline can address.
	ErrUnsupportedColorspace = errors.New("unsupported colorspace")

	// ErrMalformedHeader indicates a stream or frame header that does not
	// follow the YUV4MPEG2 grammar.
	ErrMalformedHeader = errors.New("malformed header")

	// ErrGeometryMismatch indicates a frame whose dimensions or
	// subsampling disagree with the stream header.
	ErrGeometryMismatch = errors.New("frame geometry does not match stream header")
)
