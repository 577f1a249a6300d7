package audio

import "fmt"

// Method selects how samples inside a track's window are treated.
type Method uint8

const (
	// MethodNone leaves samples untouched.
	MethodNone Method = iota
	// MethodMute silences every sample in the window.
	MethodMute
	// MethodNoise is reserved and applies no transformation.
	MethodNoise
)

// String returns the method name for logs and listings.
func (m Method) String() string {
	switch m {
	case MethodNone:
		return "none"
	case MethodMute:
		return "mute"
	case MethodNoise:
		return "noise"
	default:
		return fmt.Sprintf("method(%d)", uint8(m))
	}
}

// Track is one redaction order: apply Method to every sample buffer whose
// end timestamp falls inside [Start,End] seconds.
type Track struct {
	Start  float64
	End    float64
	Method Method
}

// Window reports the track's activity window for timeline scheduling.
func (t Track) Window() (start, end float64) {
	return t.Start, t.End
}
