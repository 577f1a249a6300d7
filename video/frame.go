package video

import (
	"fmt"
)

// Frame is a planar YCbCr picture. Planes are addressed through their own
// strides; HSub and VSub give the chroma subsampling as power-of-two shifts,
// so 4:2:0 video carries HSub=1, VSub=1 and 4:4:4 carries HSub=0, VSub=0.
type Frame struct {
	Width  int
	Height int

	Y []byte // Luminance plane
	U []byte // Chrominance Cb plane
	V []byte // Chrominance Cr plane

	YStride int
	UStride int
	VStride int

	HSub uint
	VSub uint

	// PTS is the presentation time of this frame in seconds.
	PTS float64
}

// NewFrame allocates a frame with tightly packed planes for the given
// geometry. Chroma planes are sized with ceiling division so odd dimensions
// still cover every luma pixel.
func NewFrame(width, height int, hsub, vsub uint) *Frame {
	cw := chromaDim(width, hsub)
	ch := chromaDim(height, vsub)

	return &Frame{
		Width:   width,
		Height:  height,
		Y:       make([]byte, width*height),
		U:       make([]byte, cw*ch),
		V:       make([]byte, cw*ch),
		YStride: width,
		UStride: cw,
		VStride: cw,
		HSub:    hsub,
		VSub:    vsub,
	}
}

func chromaDim(lumaDim int, sub uint) int {
	return (lumaDim + (1 << sub) - 1) >> sub
}

// ChromaWidth returns the number of columns in each chroma plane.
func (f *Frame) ChromaWidth() int {
	return chromaDim(f.Width, f.HSub)
}

// ChromaHeight returns the number of rows in each chroma plane.
func (f *Frame) ChromaHeight() int {
	return chromaDim(f.Height, f.VSub)
}

// Clone creates a deep copy of the frame, planes included.
func (f *Frame) Clone() *Frame {
	return &Frame{
		Width:   f.Width,
		Height:  f.Height,
		Y:       append([]byte(nil), f.Y...),
		U:       append([]byte(nil), f.U...),
		V:       append([]byte(nil), f.V...),
		YStride: f.YStride,
		UStride: f.UStride,
		VStride: f.VStride,
		HSub:    f.HSub,
		VSub:    f.VSub,
		PTS:     f.PTS,
	}
}

// Validate checks that the frame geometry is usable and every plane is large
// enough for its declared stride and dimensions.
func (f *Frame) Validate() error {
	if f == nil {
		return fmt.Errorf("frame cannot be nil")
	}
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("invalid frame dimensions: %dx%d", f.Width, f.Height)
	}
	if f.HSub > 2 || f.VSub > 2 {
		return fmt.Errorf("unsupported subsampling shift: hsub=%d vsub=%d", f.HSub, f.VSub)
	}
	if f.YStride < f.Width {
		return fmt.Errorf("Y stride too small: got %d, need %d", f.YStride, f.Width)
	}

	cw := f.ChromaWidth()
	ch := f.ChromaHeight()
	if f.UStride < cw {
		return fmt.Errorf("U stride too small: got %d, need %d", f.UStride, cw)
	}
	if f.VStride < cw {
		return fmt.Errorf("V stride too small: got %d, need %d", f.VStride, cw)
	}

	if need := (f.Height-1)*f.YStride + f.Width; len(f.Y) < need {
		return fmt.Errorf("Y plane too small: got %d, expected %d", len(f.Y), need)
	}
	if need := (ch-1)*f.UStride + cw; len(f.U) < need {
		return fmt.Errorf("U plane too small: got %d, expected %d", len(f.U), need)
	}
	if need := (ch-1)*f.VStride + cw; len(f.V) < need {
		return fmt.Errorf("V plane too small: got %d, expected %d", len(f.V), need)
	}

	return nil
}
