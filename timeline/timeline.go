package timeline

import (
	"sort"

	"github.com/sirupsen/logrus"
)

// Interval is the windowing contract a track must satisfy to be scheduled.
// Window reports the inclusive [start, end] activity range in seconds.
type Interval interface {
	Window() (start, end float64)
}

// Timeline sweeps a set of intervals against a non-decreasing clock,
// yielding the active subset per tick and retiring expired intervals.
// A Timeline is not safe for concurrent use.
type Timeline[T Interval] struct {
	// tracks is sorted descending by start: head starts last, tail first.
	tracks []T
}

// New builds a timeline over the given tracks. The input order does not
// matter; tracks are copied and sorted descending by start time, with equal
// starts keeping their input order.
func New[T Interval](tracks []T) *Timeline[T] {
	sorted := make([]T, len(tracks))
	copy(sorted, tracks)
	sort.SliceStable(sorted, func(i, j int) bool {
		si, _ := sorted[i].Window()
		sj, _ := sorted[j].Window()
		return si > sj
	})

	logrus.WithFields(logrus.Fields{
		"function": "New",
		"tracks":   len(sorted),
	}).Debug("Timeline created")

	return &Timeline[T]{tracks: sorted}
}

// Advance moves the clock to now and returns the intervals active at that
// instant, ordered by ascending start time; when active intervals overlap
// spatially the caller applies them in this order, so later entries win.
// Intervals whose end precedes now are retired permanently. The returned
// slice is only valid until the next call.
func (tl *Timeline[T]) Advance(now float64) []T {
	var active []T
	for i := len(tl.tracks) - 1; i >= 0; i-- {
		start, end := tl.tracks[i].Window()
		if start > now {
			// Everything toward the head starts even later.
			break
		}
		if end < now {
			tl.tracks = append(tl.tracks[:i], tl.tracks[i+1:]...)
			logrus.WithFields(logrus.Fields{
				"function": "Advance",
				"now":      now,
				"start":    start,
				"end":      end,
				"pending":  len(tl.tracks),
			}).Debug("Retired expired track")
			continue
		}
		active = append(active, tl.tracks[i])
	}
	return active
}

// Remaining reports how many tracks have not yet been retired.
func (tl *Timeline[T]) Remaining() int {
	return len(tl.tracks)
}
