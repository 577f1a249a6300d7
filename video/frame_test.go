package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestFrame builds a 4:2:0 frame with a deterministic gradient in
// every plane so redaction side effects are visible.
func createTestFrame(width, height int) *Frame {
	f := NewFrame(width, height, 1, 1)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			f.Y[y*f.YStride+x] = byte((x + y) % 256)
		}
	}
	cw, ch := f.ChromaWidth(), f.ChromaHeight()
	for y := 0; y < ch; y++ {
		for x := 0; x < cw; x++ {
			f.U[y*f.UStride+x] = byte((2*x + y) % 256)
			f.V[y*f.VStride+x] = byte((x + 2*y) % 256)
		}
	}
	return f
}

// uniformFrame builds a 4:2:0 frame with constant plane values.
func uniformFrame(width, height int, yv, uv, vv byte) *Frame {
	f := NewFrame(width, height, 1, 1)
	for i := range f.Y {
		f.Y[i] = yv
	}
	for i := range f.U {
		f.U[i] = uv
	}
	for i := range f.V {
		f.V[i] = vv
	}
	return f
}

func TestNewFrameGeometry(t *testing.T) {
	tests := []struct {
		name       string
		width      int
		height     int
		hsub, vsub uint
		wantCW     int
		wantCH     int
	}{
		{"even 4:2:0", 160, 120, 1, 1, 80, 60},
		{"odd width rounds up", 161, 120, 1, 1, 81, 60},
		{"odd height rounds up", 160, 121, 1, 1, 80, 61},
		{"4:4:4 keeps full chroma", 160, 120, 0, 0, 160, 120},
		{"4:1:0 style shift", 160, 120, 2, 2, 40, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFrame(tt.width, tt.height, tt.hsub, tt.vsub)
			assert.Equal(t, tt.wantCW, f.ChromaWidth())
			assert.Equal(t, tt.wantCH, f.ChromaHeight())
			assert.Len(t, f.Y, tt.width*tt.height)
			assert.Len(t, f.U, tt.wantCW*tt.wantCH)
			assert.Len(t, f.V, tt.wantCW*tt.wantCH)
			assert.Equal(t, tt.width, f.YStride)
			assert.Equal(t, tt.wantCW, f.UStride)
			require.NoError(t, f.Validate())
		})
	}
}

func TestFrameClone(t *testing.T) {
	f := createTestFrame(32, 24)
	f.PTS = 1.25

	c := f.Clone()
	require.NoError(t, c.Validate())
	assert.Equal(t, f.Width, c.Width)
	assert.Equal(t, f.Height, c.Height)
	assert.Equal(t, f.PTS, c.PTS)
	assert.Equal(t, f.Y, c.Y)
	assert.Equal(t, f.U, c.U)
	assert.Equal(t, f.V, c.V)

	// Mutating the clone must not touch the original.
	c.Y[0] ^= 0xFF
	c.U[0] ^= 0xFF
	c.V[0] ^= 0xFF
	assert.NotEqual(t, f.Y[0], c.Y[0])
	assert.NotEqual(t, f.U[0], c.U[0])
	assert.NotEqual(t, f.V[0], c.V[0])
}

func TestFrameValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Frame)
		wantErr string
	}{
		{"valid frame", func(f *Frame) {}, ""},
		{"zero width", func(f *Frame) { f.Width = 0 }, "invalid frame dimensions"},
		{"negative height", func(f *Frame) { f.Height = -1 }, "invalid frame dimensions"},
		{"huge subsampling", func(f *Frame) { f.HSub = 3 }, "unsupported subsampling"},
		{"short Y plane", func(f *Frame) { f.Y = f.Y[:10] }, "Y plane too small"},
		{"short U plane", func(f *Frame) { f.U = f.U[:3] }, "U plane too small"},
		{"short V plane", func(f *Frame) { f.V = f.V[:3] }, "V plane too small"},
		{"undersized Y stride", func(f *Frame) { f.YStride = 4 }, "Y stride too small"},
		{"undersized U stride", func(f *Frame) { f.UStride = 1 }, "U stride too small"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := createTestFrame(16, 12)
			tt.mutate(f)
			err := f.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestFrameValidateNil(t *testing.T) {
	var f *Frame
	assert.Error(t, f.Validate())
}
