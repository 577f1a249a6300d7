package redact

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/redact/audio"
	"github.com/opd-ai/redact/trackfile"
)

// AudioSession redacts one PCM16 stream according to an audio track file.
//
// The session's clock accumulates the duration of every buffer handed to
// Process, so buffers must arrive gapless and in order. A session must not
// be shared between goroutines.
type AudioSession struct {
	id       string
	seed     uint64
	redactor *audio.Redactor
	closed   bool
}

// NewAudioSession loads the track file at path and creates a session for
// a stream with the given sample rate and channel count.
func NewAudioSession(path string, sampleRate uint32, channels uint8) (*AudioSession, error) {
	file, err := trackfile.LoadAudio(path)
	if err != nil {
		return nil, fmt.Errorf("creating audio session: %w", err)
	}
	return NewAudioSessionFrom(file, sampleRate, channels)
}

// NewAudioSessionFrom creates a session from an already-parsed track file.
func NewAudioSessionFrom(file *trackfile.AudioFile, sampleRate uint32, channels uint8) (*AudioSession, error) {
	if file == nil {
		logrus.WithFields(logrus.Fields{
			"function": "NewAudioSessionFrom",
			"error":    ErrNilTrackFile.Error(),
		}).Error("Audio session validation failed")
		return nil, ErrNilTrackFile
	}

	redactor, err := audio.NewRedactor(file.Tracks, sampleRate, channels)
	if err != nil {
		return nil, fmt.Errorf("creating audio session: %w", err)
	}

	s := &AudioSession{
		id:       uuid.NewString(),
		seed:     file.Seed,
		redactor: redactor,
	}

	logrus.WithFields(logrus.Fields{
		"function":    "NewAudioSessionFrom",
		"session":     s.id,
		"tracks":      len(file.Tracks),
		"seed":        s.seed,
		"sample_rate": sampleRate,
		"channels":    channels,
	}).Info("Audio redaction session created")

	return s, nil
}

// ID returns the session's unique identifier, as carried in its log
// records.
func (s *AudioSession) ID() string {
	return s.id
}

// Seed returns the random seed parsed from the track file.
func (s *AudioSession) Seed() uint64 {
	return s.seed
}

// Process redacts one buffer of interleaved samples and returns the
// result as a new slice; the input is never modified.
func (s *AudioSession) Process(pcm []int16) ([]int16, error) {
	if s.closed {
		logrus.WithFields(logrus.Fields{
			"function": "AudioSession.Process",
			"session":  s.id,
		}).Error("Buffer offered to closed session")
		return nil, ErrSessionClosed
	}
	return s.redactor.Process(pcm)
}

// CurrentTime returns the end timestamp of the last processed buffer in
// seconds.
func (s *AudioSession) CurrentTime() float64 {
	return s.redactor.CurrentTime()
}

// BuffersProcessed returns the number of buffers redacted so far.
func (s *AudioSession) BuffersProcessed() uint64 {
	return s.redactor.BuffersProcessed()
}

// PendingTracks returns the number of tracks that have not yet retired.
func (s *AudioSession) PendingTracks() int {
	return s.redactor.PendingTracks()
}

// Close ends the session. Further Process calls fail; Close is
// idempotent.
func (s *AudioSession) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	logrus.WithFields(logrus.Fields{
		"function": "AudioSession.Close",
		"session":  s.id,
		"buffers":  s.redactor.BuffersProcessed(),
		"clock":    s.redactor.CurrentTime(),
		"pending":  s.redactor.PendingTracks(),
	}).Info("Audio redaction session closed")

	return nil
}
