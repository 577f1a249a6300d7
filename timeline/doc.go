// Package timeline schedules redaction tracks against a monotonic media
// clock.
//
// A Timeline holds intervals sorted once, at construction, in descending
// order of start time. Each call to Advance sweeps the store from the tail
// (earliest start) toward the head and stops at the first interval that has
// not started yet; because of the sort order everything nearer the head
// starts even later, so a frame's sweep costs O(active+1) instead of O(n)
// once most tracks have expired. Intervals whose end has passed are retired
// during the sweep: removed for good, with the relative order of survivors
// preserved.
//
// The clock is assumed non-decreasing. Feeding timestamps that move backward
// is undefined input: tracks retired by a later timestamp stay retired and
// are never reactivated.
//
// The package is generic over the track type. Video and audio tracks differ
// in payload but share the same windowing, so both pipelines drive the same
// sweep:
//
//	tl := timeline.New(tracks)
//	for each frame {
//	    for _, tr := range tl.Advance(pts) {
//	        // apply tr in yielded order; later entries win overlaps
//	    }
//	}
package timeline
