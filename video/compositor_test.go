package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/redact/noise"
	"github.com/opd-ai/redact/yuv"
)

func TestCompositor_SingleSolidTrack(t *testing.T) {
	green := yuv.FromRGBA(0, 128, 0, 255)
	tracks := []Track{
		{Start: 0.0, End: 1.0, Left: 10, Right: 20, Top: 10, Bottom: 20,
			Method: MethodSolid, Fill: green},
	}
	c := NewCompositor(tracks, noise.NewStream(1))

	src := createTestFrame(32, 24)
	src.PTS = 0.5
	out, err := c.ProcessFrame(src)
	require.NoError(t, err)
	assert.Equal(t, 0.5, out.PTS, "timestamp must ride along unchanged")

	for y := 0; y < 24; y++ {
		for x := 0; x < 32; x++ {
			got := out.Y[y*out.YStride+x]
			if x >= 10 && x < 20 && y >= 10 && y < 20 {
				require.Equal(t, green.Y, got, "boxed luma at (%d,%d)", x, y)
			} else {
				require.Equal(t, src.Y[y*src.YStride+x], got, "outside luma at (%d,%d)", x, y)
			}
		}
	}
	for cy := 0; cy < out.ChromaHeight(); cy++ {
		for cx := 0; cx < out.ChromaWidth(); cx++ {
			gotU := out.U[cy*out.UStride+cx]
			if cx >= 5 && cx < 10 && cy >= 5 && cy < 10 {
				require.Equal(t, green.U, gotU, "boxed Cb at (%d,%d)", cx, cy)
			} else {
				require.Equal(t, src.U[cy*src.UStride+cx], gotU, "outside Cb at (%d,%d)", cx, cy)
			}
		}
	}
}

func TestCompositor_InputFrameNeverModified(t *testing.T) {
	tracks := []Track{
		{Start: 0, End: 10, Left: 0, Right: 32, Top: 0, Bottom: 24,
			Method: MethodSolid, Fill: yuv.FromRGBA(255, 255, 255, 255)},
	}
	c := NewCompositor(tracks, noise.NewStream(1))

	src := createTestFrame(32, 24)
	pristine := src.Clone()

	_, err := c.ProcessFrame(src)
	require.NoError(t, err)
	assert.Equal(t, pristine.Y, src.Y, "source luma must survive processing")
	assert.Equal(t, pristine.U, src.U)
	assert.Equal(t, pristine.V, src.V)
}

func TestCompositor_OverlapLaterStartWins(t *testing.T) {
	red := yuv.FromRGBA(255, 0, 0, 255)
	blue := yuv.FromRGBA(0, 0, 255, 255)
	tracks := []Track{
		{Start: 0.5, End: 10, Left: 8, Right: 20, Top: 8, Bottom: 20,
			Method: MethodSolid, Fill: blue},
		{Start: 0.0, End: 10, Left: 4, Right: 16, Top: 4, Bottom: 16,
			Method: MethodSolid, Fill: red},
	}
	c := NewCompositor(tracks, noise.NewStream(1))

	src := createTestFrame(32, 24)
	src.PTS = 1.0
	out, err := c.ProcessFrame(src)
	require.NoError(t, err)

	// Both tracks are active; the blue one starts later, sweeps later, and
	// therefore paints over the overlap.
	assert.Equal(t, blue.Y, out.Y[10*out.YStride+10], "overlap belongs to the later track")
	assert.Equal(t, red.Y, out.Y[5*out.YStride+5], "red-only region keeps red")
	assert.Equal(t, blue.Y, out.Y[18*out.YStride+18], "blue-only region keeps blue")
	assert.Equal(t, src.Y[2*src.YStride+2], out.Y[2*out.YStride+2], "outside both boxes untouched")
}

func TestCompositor_LateFirstFrameRetiresWithoutApplying(t *testing.T) {
	tracks := []Track{
		{Start: 5.0, End: 6.0, Left: 0, Right: 32, Top: 0, Bottom: 24,
			Method: MethodSolid, Fill: yuv.FromRGBA(255, 255, 255, 255)},
	}
	c := NewCompositor(tracks, noise.NewStream(1))

	src := createTestFrame(32, 24)
	src.PTS = 10.0
	out, err := c.ProcessFrame(src)
	require.NoError(t, err)

	assert.Equal(t, src.Y, out.Y, "an already-expired track contributes nothing")
	assert.Equal(t, 0, c.PendingTracks(), "the track retires on first encounter")
}

func TestCompositor_NoTracksCopiesFrame(t *testing.T) {
	c := NewCompositor(nil, noise.NewStream(1))

	src := createTestFrame(32, 24)
	out, err := c.ProcessFrame(src)
	require.NoError(t, err)
	assert.Equal(t, src.Y, out.Y)
	assert.NotSame(t, src, out, "output is a fresh buffer, not the input")
}

func TestCompositor_BlurUsesRetainedPreviousFrame(t *testing.T) {
	tracks := []Track{
		{Start: 0, End: 10, Left: 16, Right: 48, Top: 8, Bottom: 40, Method: MethodBlur},
	}
	c := NewCompositor(tracks, noise.NewStream(42))

	f1 := uniformFrame(64, 48, 100, 128, 128)
	f1.PTS = 0.0
	_, err := c.ProcessFrame(f1)
	require.NoError(t, err)

	f2 := uniformFrame(64, 48, 200, 128, 128)
	f2.PTS = 0.04
	out2, err := c.ProcessFrame(f2)
	require.NoError(t, err)

	// The retained first output holds roughly 100 inside the ellipse, the
	// second frame blurs to roughly 200, and the center mixes the two with
	// weight in [0.25,0.75]. Grain widens the bounds by +-20.
	center := out2.Y[24*out2.YStride+32]
	assert.GreaterOrEqual(t, center, byte(105), "previous frame must pull the blend downward")
	assert.LessOrEqual(t, center, byte(195), "blend must not collapse to the current frame")
}

func TestCompositor_GeometryChangeDropsPrevious(t *testing.T) {
	tracks := []Track{
		{Start: 0, End: 10, Left: 4, Right: 28, Top: 4, Bottom: 20, Method: MethodBlur},
	}
	c := NewCompositor(tracks, noise.NewStream(1))

	f1 := createTestFrame(32, 24)
	f1.PTS = 0.0
	_, err := c.ProcessFrame(f1)
	require.NoError(t, err)

	f2 := createTestFrame(64, 48)
	f2.PTS = 0.04
	out, err := c.ProcessFrame(f2)
	require.NoError(t, err)
	require.NoError(t, out.Validate())
	assert.Equal(t, uint64(2), c.FramesProcessed())
}

func TestCompositor_InvalidFrameRejected(t *testing.T) {
	c := NewCompositor(nil, noise.NewStream(1))

	bad := createTestFrame(32, 24)
	bad.Width = 0
	out, err := c.ProcessFrame(bad)
	assert.Error(t, err)
	assert.Nil(t, out)
	assert.Contains(t, err.Error(), "invalid source frame")
}

func TestCompositor_UnknownMethodSkipsTrack(t *testing.T) {
	tracks := []Track{
		{Start: 0, End: 10, Left: 0, Right: 32, Top: 0, Bottom: 24, Method: Method(7)},
	}
	c := NewCompositor(tracks, noise.NewStream(1))

	src := createTestFrame(32, 24)
	out, err := c.ProcessFrame(src)
	require.NoError(t, err)
	assert.Equal(t, src.Y, out.Y, "a method without an obscurer leaves the frame alone")
}

func TestCompositor_NilRandomStreamFallsBack(t *testing.T) {
	tracks := []Track{
		{Start: 0, End: 10, Left: 4, Right: 28, Top: 4, Bottom: 20, Method: MethodBlur},
	}
	c := NewCompositor(tracks, nil)

	src := createTestFrame(32, 24)
	out, err := c.ProcessFrame(src)
	require.NoError(t, err)
	require.NoError(t, out.Validate())
}

func TestCompositor_TrackLifecycleAcrossFrames(t *testing.T) {
	white := yuv.FromRGBA(255, 255, 255, 255)
	tracks := []Track{
		{Start: 1.0, End: 2.0, Left: 0, Right: 8, Top: 0, Bottom: 8,
			Method: MethodSolid, Fill: white},
	}
	c := NewCompositor(tracks, noise.NewStream(1))

	const fps = 25.0
	redactedFrames := 0
	for i := 0; i < 100; i++ {
		src := createTestFrame(32, 24)
		src.PTS = float64(i) / fps
		out, err := c.ProcessFrame(src)
		require.NoError(t, err)
		if out.Y[0] == white.Y {
			redactedFrames++
		}
	}

	// Frames 25..50 carry pts 1.00..2.00 inclusive.
	assert.Equal(t, 26, redactedFrames)
	assert.Equal(t, 0, c.PendingTracks())
	assert.Equal(t, uint64(100), c.FramesProcessed())
}

func BenchmarkCompositorSolid(b *testing.B) {
	tracks := []Track{
		{Start: 0, End: 1e9, Left: 100, Right: 400, Top: 100, Bottom: 300,
			Method: MethodSolid, Fill: yuv.FromRGBA(0, 0, 0, 255)},
	}
	c := NewCompositor(tracks, noise.NewStream(1))
	src := createTestFrame(640, 480)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.ProcessFrame(src); err != nil {
			b.Fatal(err)
		}
	}
}
