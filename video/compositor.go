package video

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/redact/noise"
	"github.com/opd-ai/redact/timeline"
)

// Compositor drives the per-frame redaction of one video session. It owns
// the track timeline, the obscurer for each method, the retained previous
// output frame, and the random stream.
//
// Frames must be offered in non-decreasing PTS order; the unit of work is
// one whole frame and a Compositor is not safe for concurrent use.
type Compositor struct {
	timeline  *timeline.Timeline[Track]
	obscurers map[Method]Obscurer
	rnd       *noise.Stream
	prev      *Frame
	frames    uint64
}

// NewCompositor creates a compositor for the given tracks. The tracks may
// arrive in any order. rnd feeds the blur's grain and temporal blend; a nil
// rnd falls back to a default-seeded stream.
func NewCompositor(tracks []Track, rnd *noise.Stream) *Compositor {
	if rnd == nil {
		rnd = noise.NewStream(noise.DefaultSeed)
	}

	logrus.WithFields(logrus.Fields{
		"function": "NewCompositor",
		"tracks":   len(tracks),
		"seed":     rnd.Seed(),
	}).Info("Creating video compositor")

	return &Compositor{
		timeline: timeline.New(tracks),
		obscurers: map[Method]Obscurer{
			MethodSolid:           NewSolidFill(),
			MethodPixelate:        NewPixelate(),
			MethodInversePixelate: NewInversePixelate(),
			MethodBlur:            NewBlur(),
		},
		rnd: rnd,
	}
}

// ProcessFrame redacts one frame and returns the result. The input frame is
// never modified. The returned frame is retained as the blur's temporal
// reference for the next call, so callers must treat it as read-only.
func (c *Compositor) ProcessFrame(src *Frame) (*Frame, error) {
	if err := src.Validate(); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "ProcessFrame",
			"error":    err,
		}).Error("Source frame validation failed")
		return nil, fmt.Errorf("invalid source frame: %w", err)
	}

	if c.prev != nil && !sameGeometry(c.prev, src) {
		logrus.WithFields(logrus.Fields{
			"function":    "ProcessFrame",
			"prev_width":  c.prev.Width,
			"prev_height": c.prev.Height,
			"width":       src.Width,
			"height":      src.Height,
		}).Warn("Frame geometry changed, dropping retained previous frame")
		c.prev = nil
	}

	out := src.Clone()
	active := c.timeline.Advance(src.PTS)

	logrus.WithFields(logrus.Fields{
		"function": "ProcessFrame",
		"pts":      src.PTS,
		"active":   len(active),
		"pending":  c.timeline.Remaining(),
	}).Debug("Compositing frame")

	for _, tr := range active {
		ob, ok := c.obscurers[tr.Method]
		if !ok {
			logrus.WithFields(logrus.Fields{
				"function": "ProcessFrame",
				"method":   tr.Method,
			}).Warn("No obscurer registered for method, skipping track")
			continue
		}

		logrus.WithFields(logrus.Fields{
			"function": "ProcessFrame",
			"obscurer": ob.GetName(),
			"left":     tr.Left,
			"top":      tr.Top,
			"right":    tr.Right,
			"bottom":   tr.Bottom,
		}).Debug("Applying obscurer")

		ob.Apply(out, src, c.prev, tr, c.rnd)
	}

	c.prev = out
	c.frames++
	return out, nil
}

// FramesProcessed returns the number of frames composited so far.
func (c *Compositor) FramesProcessed() uint64 {
	return c.frames
}

// PendingTracks returns the number of tracks that have not yet retired.
func (c *Compositor) PendingTracks() int {
	return c.timeline.Remaining()
}

func sameGeometry(a, b *Frame) bool {
	return a.Width == b.Width && a.Height == b.Height &&
		a.HSub == b.HSub && a.VSub == b.VSub
}
