package audio

import (
	"fmt"

	"github.com/pion/opus"
	"github.com/sirupsen/logrus"
)

// opusMaxFrameBytes sizes the decode buffer for the largest legal Opus
// frame: 60ms at 48kHz stereo, 2 bytes per sample.
const opusMaxFrameBytes = 2880 * 2 * 2

// OpusSource decodes Opus packets into PCM16 buffers for the Redactor.
//
// Sessions whose input arrives as Opus packets rather than raw PCM decode
// each packet here first and feed the result to Redactor.Process. The
// decoder is stateful across packets and must be used per-stream.
type OpusSource struct {
	decoder *opus.Decoder
	output  []byte
}

// NewOpusSource creates a packet decoder backed by the pure Go pion/opus
// implementation.
func NewOpusSource() *OpusSource {
	logrus.WithFields(logrus.Fields{
		"function": "NewOpusSource",
		"decoder":  "opus.Decoder",
	}).Info("Creating Opus packet source")

	decoder := opus.NewDecoder()
	return &OpusSource{
		decoder: &decoder,
		output:  make([]byte, opusMaxFrameBytes),
	}
}

// Decode decodes one Opus packet and returns the interleaved samples, the
// sample rate implied by the packet's bandwidth, and the channel count.
// The returned slice spans the full decode buffer; the decoded frame sits
// at the front with silence behind it.
func (s *OpusSource) Decode(data []byte) ([]int16, uint32, uint8, error) {
	logrus.WithFields(logrus.Fields{
		"function":  "OpusSource.Decode",
		"data_size": len(data),
	}).Debug("Decoding Opus packet")

	if len(data) == 0 {
		logrus.WithFields(logrus.Fields{
			"function": "OpusSource.Decode",
			"error":    "empty packet",
		}).Error("Opus packet validation failed")
		return nil, 0, 0, fmt.Errorf("empty opus packet")
	}

	bandwidth, isStereo, err := s.decoder.Decode(data, s.output)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "OpusSource.Decode",
			"error":    err.Error(),
		}).Error("Opus decode failed")
		return nil, 0, 0, fmt.Errorf("opus decode failed: %w", err)
	}

	channels := uint8(1)
	if isStereo {
		channels = 2
	}

	// Convert []byte to []int16 (little-endian).
	sampleCount := len(s.output) / 2
	pcm := make([]int16, sampleCount)
	for i := 0; i < sampleCount; i++ {
		pcm[i] = int16(s.output[i*2]) | int16(s.output[i*2+1])<<8
	}

	sampleRate := uint32(bandwidth.SampleRate())

	logrus.WithFields(logrus.Fields{
		"function":    "OpusSource.Decode",
		"bandwidth":   bandwidth.String(),
		"is_stereo":   isStereo,
		"sample_rate": sampleRate,
		"samples":     sampleCount,
	}).Debug("Opus packet decoded successfully")

	return pcm, sampleRate, channels, nil
}

// ValidateFrameCount checks that a sample count corresponds to a legal
// Opus frame duration at the given rate.
func ValidateFrameCount(sampleCount int, sampleRate uint32, channels uint8) error {
	logrus.WithFields(logrus.Fields{
		"function":     "ValidateFrameCount",
		"sample_count": sampleCount,
		"sample_rate":  sampleRate,
		"channels":     channels,
	}).Debug("Validating Opus frame duration")

	if sampleRate == 0 || channels == 0 {
		return fmt.Errorf("invalid audio parameters: rate %d, channels %d", sampleRate, channels)
	}

	frameDurationMs := float32(sampleCount) / float32(channels) * 1000.0 / float32(sampleRate)

	validDurations := []float32{2.5, 5.0, 10.0, 20.0, 40.0, 60.0}
	for _, duration := range validDurations {
		if frameDurationMs == duration {
			return nil
		}
	}

	logrus.WithFields(logrus.Fields{
		"function":       "ValidateFrameCount",
		"sample_count":   sampleCount,
		"frame_duration": frameDurationMs,
		"error":          "invalid frame duration",
	}).Error("Opus frame duration validation failed")

	return fmt.Errorf("invalid Opus frame size: %d samples (%.2f ms) - must be 2.5, 5, 10, 20, 40, or 60 ms",
		sampleCount, frameDurationMs)
}

// Close releases decoder resources.
func (s *OpusSource) Close() error {
	logrus.WithFields(logrus.Fields{
		"function": "OpusSource.Close",
	}).Info("Closing Opus packet source")

	s.decoder = nil
	return nil
}
