// This file implements the solid-color and pixelation obscurers together
// with the Obscurer interface they share with the blur.
package video

import (
	"github.com/opd-ai/redact/noise"
)

// Obscurer applies one redaction method to a track's box within a frame.
type Obscurer interface {
	// Apply redacts tr's box in dst in place. src is the untouched input
	// frame and prev the previous output frame, nil until one exists; both
	// are only read. rnd feeds any random draws the method makes.
	Apply(dst, src, prev *Frame, tr Track, rnd *noise.Stream)
	// GetName returns the obscurer name for identification
	GetName() string
}

// SolidFill blends a constant fill color over the track's box. The fill's
// alpha channel controls coverage: 255 paints the color exactly, 0 leaves
// the source exactly.
type SolidFill struct{}

// NewSolidFill creates a solid-color obscurer.
func NewSolidFill() *SolidFill {
	return &SolidFill{}
}

// Apply blends the fill into every luma pixel of the box and into the
// chroma sample under each luma pixel. With subsampling active the same
// chroma sample is blended once per covering luma pixel; at full alpha the
// repeat writes are idempotent.
func (sf *SolidFill) Apply(dst, _, _ *Frame, tr Track, _ *noise.Stream) {
	alpha := tr.Fill.Opacity()
	left, top, right, bottom := clampBox(tr, dst.Width, dst.Height)

	for y := top; y < bottom; y++ {
		yRow := dst.Y[y*dst.YStride:]
		uRow := dst.U[(y>>dst.VSub)*dst.UStride:]
		vRow := dst.V[(y>>dst.VSub)*dst.VStride:]

		for x := left; x < right; x++ {
			cx := x >> dst.HSub
			yRow[x] = blend(yRow[x], tr.Fill.Y, alpha)
			uRow[cx] = blend(uRow[cx], tr.Fill.U, alpha)
			vRow[cx] = blend(vRow[cx], tr.Fill.V, alpha)
		}
	}
}

// GetName returns the obscurer name.
func (sf *SolidFill) GetName() string {
	return "SolidFill"
}

// blend mixes fill into pixel with the given coverage. The float product is
// truncated, so coverage 0 and 1 reproduce their input byte exactly.
func blend(pixel, fill uint8, alpha float64) byte {
	return byte((1-alpha)*float64(pixel) + alpha*float64(fill))
}

// pixelBlockSize is the fixed edge length, in luma pixels, of a pixelation
// tile.
const pixelBlockSize = 64

// Pixelate collapses every block the box touches to a flat tile colored by
// the sample at the block's top-left corner. The block grid is anchored at
// the frame origin, so boxes that start mid-block still produce tiles
// aligned with every other box's tiles.
type Pixelate struct{}

// NewPixelate creates a pixelation obscurer.
func NewPixelate() *Pixelate {
	return &Pixelate{}
}

// Apply copies each block's corner sample over the block, per plane with
// that plane's own subsampling. The corner is read from the output buffer
// itself: the corner pixel is rewritten with its own value before any other
// pixel of its block reads it, so the in-place pass is stable.
func (px *Pixelate) Apply(dst, _, _ *Frame, tr Track, _ *noise.Stream) {
	left, top, right, bottom := clampBox(tr, dst.Width, dst.Height)

	for y := top; y < bottom; y++ {
		qy := y / pixelBlockSize * pixelBlockSize

		yRow := dst.Y[y*dst.YStride:]
		yAnchor := dst.Y[qy*dst.YStride:]
		uRow := dst.U[(y>>dst.VSub)*dst.UStride:]
		uAnchor := dst.U[(qy>>dst.VSub)*dst.UStride:]
		vRow := dst.V[(y>>dst.VSub)*dst.VStride:]
		vAnchor := dst.V[(qy>>dst.VSub)*dst.VStride:]

		for x := left; x < right; x++ {
			qx := x / pixelBlockSize * pixelBlockSize
			yRow[x] = yAnchor[qx]
			uRow[x>>dst.HSub] = uAnchor[qx>>dst.HSub]
			vRow[x>>dst.HSub] = vAnchor[qx>>dst.HSub]
		}
	}
}

// GetName returns the obscurer name.
func (px *Pixelate) GetName() string {
	return "Pixelate"
}

// InversePixelate is a reserved method: the track format accepts it, but no
// reconstruction transformation is defined, so it leaves the frame alone.
// The parser reports the no-op when such a track is loaded.
type InversePixelate struct{}

// NewInversePixelate creates the reserved no-op obscurer.
func NewInversePixelate() *InversePixelate {
	return &InversePixelate{}
}

// Apply leaves the frame untouched.
func (ip *InversePixelate) Apply(_, _, _ *Frame, _ Track, _ *noise.Stream) {
}

// GetName returns the obscurer name.
func (ip *InversePixelate) GetName() string {
	return "InversePixelate"
}
