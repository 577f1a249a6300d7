// This file implements the blur obscurer: a two-pass rolling-average box
// blur with additive grain, finished by a temporally randomized elliptical
// feather against the previous output frame.
package video

import (
	"fmt"
	"math"

	"github.com/opd-ai/redact/noise"
)

const (
	// defaultBlurGrain is the default amplitude of the integer noise added
	// to every blurred sample.
	defaultBlurGrain = 10

	// featherRamp is the fraction of the ellipse radius over which the
	// feather fades from fully redacted to untouched source.
	featherRamp = 0.2
)

// Blur obscures a box by averaging each plane with a sliding window, adding
// film-grain noise to defeat averaging-reversal attacks, and feathering the
// result into an ellipse inscribed in the box. Pixels outside the ellipse
// keep their exact source values, so box corners stay readable.
//
// The feather blends each inside pixel between the source, the blurred
// output, and the previous output frame with a per-pixel random weight,
// which keeps the region visually stable across frames without ever
// repeating exactly.
//
// A Blur carries scratch state for the sliding window and must not be
// shared between goroutines.
type Blur struct {
	grain   int
	scratch []int
}

// NewBlur creates a blur obscurer with the default grain amplitude.
func NewBlur() *Blur {
	return NewBlurWithGrain(defaultBlurGrain)
}

// NewBlurWithGrain creates a blur obscurer with a specific grain amplitude.
// amplitude: 0 (no grain, plain box blur) to 127, clamped to that range.
func NewBlurWithGrain(amplitude int) *Blur {
	// Clamp to valid range
	if amplitude < 0 {
		amplitude = 0
	}
	if amplitude > 127 {
		amplitude = 127
	}

	return &Blur{grain: amplitude}
}

// Apply blurs and feathers tr's box in dst. src supplies the untouched
// pixels the feather restores outside the ellipse; prev supplies the
// temporal blend input and falls back to src on the first frame.
func (bl *Blur) Apply(dst, src, prev *Frame, tr Track, rnd *noise.Stream) {
	if prev == nil {
		prev = src
	}

	left, top, right, bottom := clampBox(tr, dst.Width, dst.Height)
	if left >= right || top >= bottom {
		return
	}

	bl.blurPlane(dst.Y, dst.YStride, dst.Width, dst.Height,
		left, top, right, bottom, rnd)

	cl := left >> dst.HSub
	ct := top >> dst.VSub
	cr := ((right - 1) >> dst.HSub) + 1
	cb := ((bottom - 1) >> dst.VSub) + 1
	cw := dst.ChromaWidth()
	ch := dst.ChromaHeight()
	bl.blurPlane(dst.U, dst.UStride, cw, ch, cl, ct, cr, cb, rnd)
	bl.blurPlane(dst.V, dst.VStride, cw, ch, cl, ct, cr, cb, rnd)

	bl.feather(dst, src, prev, tr, left, top, right, bottom, rnd)
}

// GetName returns the obscurer name.
func (bl *Blur) GetName() string {
	return fmt.Sprintf("Blur(grain=%d)", bl.grain)
}

// blurPlane runs the horizontal then the vertical pass over one plane's
// slice of the box. Each pass uses its own window, half the box extent in
// that direction, measured in the plane's own resolution and clamped to at
// least 1 so degenerate boxes cannot divide by zero.
func (bl *Blur) blurPlane(plane []byte, stride, planeW, planeH, left, top, right, bottom int, rnd *noise.Stream) {
	if left >= right || top >= bottom {
		return
	}

	hwin := (right - left) / 2
	if hwin < 1 {
		hwin = 1
	}
	for y := top; y < bottom; y++ {
		bl.blurLine(plane[y*stride:], left, right-1, 1, planeW-1, hwin, rnd)
	}

	vwin := (bottom - top) / 2
	if vwin < 1 {
		vwin = 1
	}
	for x := left; x < right; x++ {
		bl.blurLine(plane[x:], top, bottom-1, stride, planeH-1, vwin, rnd)
	}
}

// blurLine writes the windowed average plus grain over logical positions
// p0..p1 of one line, where position i lives at line[i*step]. The window
// trails the write position with its lead half ahead of it; samples wanted
// before position 0 clamp to the first sample and samples wanted past max
// clamp to line[max*step], so the pass never reads outside the line. Reads
// run ahead of writes, which makes the in-place pass stable.
func (bl *Blur) blurLine(line []byte, p0, p1, step, max, window int, rnd *noise.Stream) {
	ring := bl.ring(window)
	lead := window / 2

	sum := 0
	for i := 0; i < window; i++ {
		s := int(line[clampIndex(p0-window+1+lead+i, max)*step])
		ring[i] = s
		sum += s
	}

	head := 0
	for p := p0; p <= p1; p++ {
		v := sum/window + rnd.IntInRange(-bl.grain, bl.grain)
		if v < 0 {
			v = 0
		} else if v > 255 {
			v = 255
		}
		line[p*step] = byte(v)

		next := int(line[clampIndex(p+1+lead, max)*step])
		sum += next - ring[head]
		ring[head] = next
		head++
		if head == window {
			head = 0
		}
	}
}

// feather rewrites every box pixel as a blend of the source frame, the
// just-blurred output, and the previous output frame. The blend weight
// follows the normalized elliptical distance from the box center, computed
// from the track's full geometry even when the box is clipped by the frame
// edge. Chroma samples blend with the weight and draw of the luma pixel
// above them.
func (bl *Blur) feather(dst, src, prev *Frame, tr Track, left, top, right, bottom int, rnd *noise.Stream) {
	w := float64(tr.BoxWidth())
	h := float64(tr.BoxHeight())
	if w <= 0 || h <= 0 {
		return
	}
	lr := float64(tr.Left + tr.Right)
	tb := float64(tr.Top + tr.Bottom)

	for y := top; y < bottom; y++ {
		ynorm := (2*float64(y) - tb) / h

		dy := y * dst.YStride
		sy := y * src.YStride
		py := y * prev.YStride
		cy := y >> dst.VSub
		du := cy * dst.UStride
		su := cy * src.UStride
		pu := cy * prev.UStride
		dv := cy * dst.VStride
		sv := cy * src.VStride
		pv := cy * prev.VStride

		for x := left; x < right; x++ {
			xnorm := (2*float64(x) - lr) / w
			alpha := 1 - math.Sqrt(xnorm*xnorm+ynorm*ynorm)
			cx := x >> dst.HSub

			if alpha < 0 {
				// Outside the inscribed ellipse: the corner pixels of the
				// box revert to the unmodified source.
				dst.Y[dy+x] = src.Y[sy+x]
				dst.U[du+cx] = src.U[su+cx]
				dst.V[dv+cx] = src.V[sv+cx]
				continue
			}
			if alpha > featherRamp {
				alpha = 1
			} else {
				alpha /= featherRamp
			}

			mix := rnd.Float64InRange(0.25, 0.75)
			dst.Y[dy+x] = featherBlend(src.Y[sy+x], dst.Y[dy+x], prev.Y[py+x], alpha, mix)
			dst.U[du+cx] = featherBlend(src.U[su+cx], dst.U[du+cx], prev.U[pu+cx], alpha, mix)
			dst.V[dv+cx] = featherBlend(src.V[sv+cx], dst.V[dv+cx], prev.V[pv+cx], alpha, mix)
		}
	}
}

// featherBlend composes one channel sample: the redacted value is the mix
// of blurred and previous, and alpha fades between source and redacted.
func featherBlend(source, blurred, previous uint8, alpha, mix float64) byte {
	redacted := (1-mix)*float64(blurred) + mix*float64(previous)
	return byte((1-alpha)*float64(source) + alpha*redacted)
}

// ring returns the reusable sliding-window buffer sized to n samples.
func (bl *Blur) ring(n int) []int {
	if cap(bl.scratch) < n {
		bl.scratch = make([]int, n)
	}
	return bl.scratch[:n]
}

func clampIndex(i, max int) int {
	if i < 0 {
		return 0
	}
	if i > max {
		return max
	}
	return i
}
