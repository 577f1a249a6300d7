// Package audio applies track-scheduled redaction to PCM audio streams.
//
// This package is the audio counterpart of package video: the same
// interval sweep drives it, but a track carries no geometry, only a time
// window and a method, and the transformation operates on whole sample
// buffers rather than pixel boxes.
//
// # Architecture Overview
//
// The processing pipeline follows this flow:
//
//	PCM Input → Redactor (clock, sweep, method selection) → PCM Output
//	Opus Input → OpusSource (decode) → Redactor → PCM Output
//
// # Core Components
//
// ## Redactor
//
// The per-session engine. It owns the track timeline and an internal
// clock that accumulates the duration of every buffer it processes:
//
//	tracks := []audio.Track{{Start: 1.0, End: 2.0, Method: audio.MethodMute}}
//	redactor, err := audio.NewRedactor(tracks, 48000, 2)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, err := redactor.Process(pcm)
//
// Buffers carry no timestamps of their own. A buffer is matched against
// tracks using the time at which it ends, so a track becomes audible in
// the first buffer whose end crosses its start.
//
// ## Methods
//
// Three methods exist: MethodMute zeroes every sample, MethodNone passes
// samples through untouched, and MethodNoise is reserved and currently
// behaves like MethodNone. When several tracks cover the same instant the
// last one in sweep order decides, except that an active mute track always
// wins immediately.
//
// ## OpusSource
//
// A thin decoder front end for sessions whose input arrives as Opus
// packets rather than raw PCM:
//
//	source := audio.NewOpusSource()
//	defer source.Close()
//	pcm, sampleRate, channels, err := source.Decode(packet)
//
// # Thread Safety
//
// A Redactor is single-threaded by design: its clock and timeline mutate
// on every call, so one goroutine must own it for the session's lifetime.
// OpusSource holds decoder state and is likewise per-stream.
//
// # Dependencies
//
//   - github.com/pion/opus: Pure Go Opus decoder (no CGO)
//   - github.com/sirupsen/logrus: Structured logging
package audio
