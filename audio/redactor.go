package audio

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/redact/timeline"
)

// Redactor applies scheduled redaction to an interleaved PCM16 stream.
//
// Buffers carry no timestamps: an internal clock accumulates the duration
// of every buffer handed to Process, and a buffer is matched against the
// track timeline using the time at which it ends. The clock therefore
// assumes a gapless stream at the configured sample rate, which is how
// decoded audio arrives in practice.
//
// When several tracks cover the same instant the last one in sweep order
// (ascending start time) decides the method, except that an active mute
// track short-circuits the scan and always wins.
type Redactor struct {
	timeline   *timeline.Timeline[Track]
	sampleRate uint32
	channels   uint8
	clock      float64
	buffers    uint64
}

// NewRedactor creates a redaction engine for one audio session.
//
// The track list may arrive in any order; scheduling is handled by the
// timeline. sampleRate and channels describe the PCM buffers that Process
// will receive and must both be positive.
func NewRedactor(tracks []Track, sampleRate uint32, channels uint8) (*Redactor, error) {
	logrus.WithFields(logrus.Fields{
		"function":    "NewRedactor",
		"tracks":      len(tracks),
		"sample_rate": sampleRate,
		"channels":    channels,
	}).Info("Creating audio redactor")

	if sampleRate == 0 {
		logrus.WithFields(logrus.Fields{
			"function": "NewRedactor",
			"error":    "zero sample rate",
		}).Error("Audio redactor validation failed")
		return nil, fmt.Errorf("sample rate must be positive")
	}
	if channels == 0 {
		logrus.WithFields(logrus.Fields{
			"function": "NewRedactor",
			"error":    "zero channel count",
		}).Error("Audio redactor validation failed")
		return nil, fmt.Errorf("channel count must be positive")
	}

	return &Redactor{
		timeline:   timeline.New(tracks),
		sampleRate: sampleRate,
		channels:   channels,
	}, nil
}

// Process redacts one buffer of interleaved samples and returns the result
// as a new slice; the input is never modified. The buffer's duration is
// added to the internal clock before tracks are matched, so the buffer is
// judged by its end time.
func (r *Redactor) Process(pcm []int16) ([]int16, error) {
	if len(pcm)%int(r.channels) != 0 {
		logrus.WithFields(logrus.Fields{
			"function": "Redactor.Process",
			"samples":  len(pcm),
			"channels": r.channels,
		}).Error("PCM buffer validation failed")
		return nil, fmt.Errorf("PCM length %d is not a multiple of %d channels", len(pcm), r.channels)
	}

	frames := len(pcm) / int(r.channels)
	r.clock += float64(frames) / float64(r.sampleRate)

	active := r.timeline.Advance(r.clock)

	method := MethodNone
	for _, tr := range active {
		method = tr.Method
		if method == MethodMute {
			break
		}
	}

	logrus.WithFields(logrus.Fields{
		"function": "Redactor.Process",
		"frames":   frames,
		"clock":    r.clock,
		"active":   len(active),
		"method":   method.String(),
	}).Debug("Processing audio buffer")

	out := make([]int16, len(pcm))
	// MethodNoise is reserved and passes through like MethodNone; the
	// track-file parser reports the no-op.
	if method != MethodMute {
		copy(out, pcm)
	}

	r.buffers++
	return out, nil
}

// CurrentTime returns the end timestamp of the last processed buffer in
// seconds.
func (r *Redactor) CurrentTime() float64 {
	return r.clock
}

// BuffersProcessed returns the number of buffers handled so far.
func (r *Redactor) BuffersProcessed() uint64 {
	return r.buffers
}

// PendingTracks returns the number of tracks not yet retired.
func (r *Redactor) PendingTracks() int {
	return r.timeline.Remaining()
}
