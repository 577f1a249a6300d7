package redact

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/redact/noise"
	"github.com/opd-ai/redact/trackfile"
	"github.com/opd-ai/redact/video"
)

// VideoSession redacts one video stream according to a video track file.
//
// A session owns the compositor and all its per-stream state: the track
// timeline, the retained previous output frame and the random stream
// seeded from the track file. Frames must arrive in non-decreasing PTS
// order, and a session must not be shared between goroutines.
type VideoSession struct {
	id         string
	seed       uint64
	compositor *video.Compositor
	closed     bool
}

// NewVideoSession loads the track file at path and creates a session for
// it. A missing or unreadable file, or a malformed seed line, fails the
// construction; malformed track records are skipped during loading.
func NewVideoSession(path string) (*VideoSession, error) {
	file, err := trackfile.LoadVideo(path)
	if err != nil {
		return nil, fmt.Errorf("creating video session: %w", err)
	}
	return NewVideoSessionFrom(file)
}

// NewVideoSessionFrom creates a session from an already-parsed track file.
func NewVideoSessionFrom(file *trackfile.VideoFile) (*VideoSession, error) {
	if file == nil {
		logrus.WithFields(logrus.Fields{
			"function": "NewVideoSessionFrom",
			"error":    ErrNilTrackFile.Error(),
		}).Error("Video session validation failed")
		return nil, ErrNilTrackFile
	}

	s := &VideoSession{
		id:         uuid.NewString(),
		seed:       file.Seed,
		compositor: video.NewCompositor(file.Tracks, noise.NewStream(file.Seed).Fork("video")),
	}

	logrus.WithFields(logrus.Fields{
		"function": "NewVideoSessionFrom",
		"session":  s.id,
		"tracks":   len(file.Tracks),
		"seed":     s.seed,
	}).Info("Video redaction session created")

	return s, nil
}

// ID returns the session's unique identifier, as carried in its log
// records.
func (s *VideoSession) ID() string {
	return s.id
}

// Seed returns the random seed governing the session's output.
func (s *VideoSession) Seed() uint64 {
	return s.seed
}

// ProcessFrame redacts one frame and returns the result. The input frame
// is never modified; the returned frame is retained as temporal reference
// for the next call and must be treated as read-only.
func (s *VideoSession) ProcessFrame(f *video.Frame) (*video.Frame, error) {
	if s.closed {
		logrus.WithFields(logrus.Fields{
			"function": "VideoSession.ProcessFrame",
			"session":  s.id,
		}).Error("Frame offered to closed session")
		return nil, ErrSessionClosed
	}
	return s.compositor.ProcessFrame(f)
}

// FramesProcessed returns the number of frames redacted so far.
func (s *VideoSession) FramesProcessed() uint64 {
	return s.compositor.FramesProcessed()
}

// PendingTracks returns the number of tracks that have not yet retired.
func (s *VideoSession) PendingTracks() int {
	return s.compositor.PendingTracks()
}

// Close ends the session. Further ProcessFrame calls fail; Close is
// idempotent.
func (s *VideoSession) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	logrus.WithFields(logrus.Fields{
		"function": "VideoSession.Close",
		"session":  s.id,
		"frames":   s.compositor.FramesProcessed(),
		"pending":  s.compositor.PendingTracks(),
	}).Info("Video redaction session closed")

	return nil
}
