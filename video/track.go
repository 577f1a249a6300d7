package video

import (
	"fmt"

	"github.com/opd-ai/redact/yuv"
)

// Method selects the obscuration algorithm applied to a track's box.
type Method uint8

const (
	// MethodSolid blends the track's fill color over the box.
	MethodSolid Method = iota
	// MethodPixelate collapses 64-pixel blocks to their corner sample.
	MethodPixelate
	// MethodInversePixelate is reserved and applies no transformation.
	MethodInversePixelate
	// MethodBlur applies the grained box blur with temporal feathering.
	MethodBlur
)

// String returns the method name for logs and listings.
func (m Method) String() string {
	switch m {
	case MethodSolid:
		return "solid"
	case MethodPixelate:
		return "pixel"
	case MethodInversePixelate:
		return "inverse"
	case MethodBlur:
		return "blur"
	default:
		return fmt.Sprintf("method(%d)", uint8(m))
	}
}

// Track is one rectangular redaction order: obscure the half-open box
// [Left,Right) x [Top,Bottom), in luma pixel coordinates, for every frame
// whose timestamp falls inside [Start,End] seconds. Fill is only consulted
// when Method is MethodSolid.
type Track struct {
	Start  float64
	End    float64
	Left   int
	Right  int
	Top    int
	Bottom int
	Method Method
	Fill   yuv.Color
}

// Window reports the track's activity window for timeline scheduling.
func (t Track) Window() (start, end float64) {
	return t.Start, t.End
}

// BoxWidth returns the box width in luma pixels.
func (t Track) BoxWidth() int {
	return t.Right - t.Left
}

// BoxHeight returns the box height in luma pixels.
func (t Track) BoxHeight() int {
	return t.Bottom - t.Top
}

// clampBox intersects the track's box with the frame extents. The result can
// be empty (left >= right or top >= bottom) when the box lies off-frame.
func clampBox(t Track, width, height int) (left, top, right, bottom int) {
	left = t.Left
	if left < 0 {
		left = 0
	}
	top = t.Top
	if top < 0 {
		top = 0
	}
	right = t.Right
	if right > width {
		right = width
	}
	bottom = t.Bottom
	if bottom > height {
		bottom = height
	}
	return left, top, right, bottom
}
