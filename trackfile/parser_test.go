package trackfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/redact/audio"
	"github.com/opd-ai/redact/noise"
	"github.com/opd-ai/redact/video"
	"github.com/opd-ai/redact/yuv"
)

func TestParseVideo_FullFile(t *testing.T) {
	input := `# demo track file
seed 42

0.0,1.0,10,20,10,20,green
1.5,2.5,0,64,0,64,pixel
2.0,3.0,5,15,5,15,blur
3.0,4.0,1,2,3,4,inv
4.0,5.0,8,16,8,16,#11223380
`
	file, err := ParseVideo(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, file.Tracks, 5)
	assert.Equal(t, uint64(42), file.Seed)

	green, err := yuv.ParseColor("green")
	require.NoError(t, err)
	assert.Equal(t, video.Track{
		Start: 0.0, End: 1.0,
		Left: 10, Right: 20, Top: 10, Bottom: 20,
		Method: video.MethodSolid, Fill: green,
	}, file.Tracks[0])

	assert.Equal(t, video.MethodPixelate, file.Tracks[1].Method)
	assert.Equal(t, video.MethodBlur, file.Tracks[2].Method)
	assert.Equal(t, video.MethodInversePixelate, file.Tracks[3].Method)

	hex, err := yuv.ParseColor("#11223380")
	require.NoError(t, err)
	assert.Equal(t, video.MethodSolid, file.Tracks[4].Method)
	assert.Equal(t, hex, file.Tracks[4].Fill)
	assert.Equal(t, uint8(0x80), file.Tracks[4].Fill.A)
}

func TestParseVideo_SkipsMalformedRecords(t *testing.T) {
	input := `0.0,1.0,10,20,10,20,green
0.0,1.0,10,20,10,20
not,a,valid,record,at,all,nope
x.y,1.0,10,20,10,20,green
0.0,1.0,10,twenty,10,20,green
2.0,3.0,0,8,0,8,blur
`
	file, err := ParseVideo(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, file.Tracks, 2)
	assert.Equal(t, video.MethodSolid, file.Tracks[0].Method)
	assert.Equal(t, video.MethodBlur, file.Tracks[1].Method)
}

func TestParseVideo_DefaultSeed(t *testing.T) {
	file, err := ParseVideo(strings.NewReader("0.0,1.0,0,8,0,8,blur\n"))
	require.NoError(t, err)
	assert.Equal(t, noise.DefaultSeed, file.Seed)
}

func TestParseVideo_LastSeedWins(t *testing.T) {
	input := "seed 7\n0.0,1.0,0,8,0,8,blur\nseed 9\n"
	file, err := ParseVideo(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, uint64(9), file.Seed)
}

func TestParseVideo_MalformedSeedAborts(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "non_numeric", input: "seed banana\n"},
		{name: "missing_value", input: "seed\n"},
		{name: "extra_field", input: "seed 1 2\n"},
		{name: "negative", input: "seed -3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := ParseVideo(strings.NewReader(tt.input))
			assert.Nil(t, file)
			assert.ErrorIs(t, err, ErrMalformedSeed)
		})
	}
}

func TestParseVideo_MethodPrefixMatching(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		expected video.Method
	}{
		{name: "pixel_exact", method: "pixel", expected: video.MethodPixelate},
		{name: "pixelate_long", method: "pixelate", expected: video.MethodPixelate},
		{name: "pixel_upper", method: "PIXEL", expected: video.MethodPixelate},
		{name: "inv_exact", method: "inv", expected: video.MethodInversePixelate},
		{name: "inverse_long", method: "Inverse", expected: video.MethodInversePixelate},
		{name: "blur_exact", method: "blur", expected: video.MethodBlur},
		{name: "blurred_long", method: "blurred", expected: video.MethodBlur},
		{name: "named_color", method: "white", expected: video.MethodSolid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "0.0,1.0,0,8,0,8," + tt.method + "\n"
			file, err := ParseVideo(strings.NewReader(input))
			require.NoError(t, err)
			require.Len(t, file.Tracks, 1)
			assert.Equal(t, tt.expected, file.Tracks[0].Method)
		})
	}
}

func TestParseVideo_UnknownColorSkipsLine(t *testing.T) {
	input := "0.0,1.0,0,8,0,8,vantablack\n1.0,2.0,0,8,0,8,white\n"
	file, err := ParseVideo(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, file.Tracks, 1)
	assert.Equal(t, 1.0, file.Tracks[0].Start)
}

func TestParseVideo_WhitespaceTolerant(t *testing.T) {
	input := "  0.5 , 1.5 , 10 , 20 , 30 , 40 , blur  \n"
	file, err := ParseVideo(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, file.Tracks, 1)

	tr := file.Tracks[0]
	assert.Equal(t, 0.5, tr.Start)
	assert.Equal(t, 1.5, tr.End)
	assert.Equal(t, 10, tr.Left)
	assert.Equal(t, 20, tr.Right)
	assert.Equal(t, 30, tr.Top)
	assert.Equal(t, 40, tr.Bottom)
}

func TestParseVideo_EmptyFile(t *testing.T) {
	file, err := ParseVideo(strings.NewReader("# comments only\n\n"))
	require.NoError(t, err)
	assert.Empty(t, file.Tracks)
	assert.Equal(t, noise.DefaultSeed, file.Seed)
}

func TestParseAudio_FullFile(t *testing.T) {
	input := `# audio tracks
seed 99
0.0,1.0,mute
1.0,2.0,noise
2.0,3.0,none
3.0,4.0,MUTED
`
	file, err := ParseAudio(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, file.Tracks, 4)
	assert.Equal(t, uint64(99), file.Seed)

	assert.Equal(t, audio.MethodMute, file.Tracks[0].Method)
	assert.Equal(t, audio.MethodNoise, file.Tracks[1].Method)
	assert.Equal(t, audio.MethodNone, file.Tracks[2].Method)
	assert.Equal(t, audio.MethodMute, file.Tracks[3].Method)
	assert.Equal(t, 3.0, file.Tracks[3].Start)
}

func TestParseAudio_UnknownMethodMutes(t *testing.T) {
	file, err := ParseAudio(strings.NewReader("0.0,1.0,scramble\n"))
	require.NoError(t, err)
	require.Len(t, file.Tracks, 1)
	assert.Equal(t, audio.MethodMute, file.Tracks[0].Method)
}

func TestParseAudio_SkipsMalformedRecords(t *testing.T) {
	input := "0.0,1.0\nbad,1.0,mute\n0.0,end,mute\n5.0,6.0,none\n"
	file, err := ParseAudio(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, file.Tracks, 1)
	assert.Equal(t, 5.0, file.Tracks[0].Start)
}

func TestParseAudio_MalformedSeedAborts(t *testing.T) {
	file, err := ParseAudio(strings.NewReader("seed 0x10\n"))
	assert.Nil(t, file)
	assert.ErrorIs(t, err, ErrMalformedSeed)
}

func TestLoadVideo_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracks.txt")
	content := "seed 5\n0.0,1.0,10,20,10,20,pixel\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	file, err := LoadVideo(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), file.Seed)
	require.Len(t, file.Tracks, 1)
	assert.Equal(t, video.MethodPixelate, file.Tracks[0].Method)
}

func TestLoadVideo_MissingFile(t *testing.T) {
	file, err := LoadVideo(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Nil(t, file)
	assert.Error(t, err)
}

func TestLoadAudio_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracks.txt")
	require.NoError(t, os.WriteFile(path, []byte("0.5,1.5,mute\n"), 0o600))

	file, err := LoadAudio(path)
	require.NoError(t, err)
	require.Len(t, file.Tracks, 1)
	assert.Equal(t, audio.MethodMute, file.Tracks[0].Method)
}

func TestLoadAudio_MissingFile(t *testing.T) {
	file, err := LoadAudio(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Nil(t, file)
	assert.Error(t, err)
}
