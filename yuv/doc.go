// Package yuv provides the color model shared by the video redaction
// pipeline.
//
// Frames travel through the pipeline as planar YCbCr, so fill colors written
// by the solid obscurer must be expressed in the same space. Color carries a
// luma/chroma triple plus a coverage alpha. ParseColor accepts either a named
// color or an RGB hex specifier and converts it with the constrained-range
// CCIR 601 matrix: luma maps onto [16,235], chroma onto [16,240] centered at
// 128, using 10-bit fixed-point integer arithmetic so the same specifier
// always produces the same triple.
//
//	fill, err := yuv.ParseColor("#00FF0080")
//	if err != nil {
//	    return err
//	}
//	// fill.Y, fill.U, fill.V hold the broadcast-range plane values,
//	// fill.A the blend coverage.
package yuv
