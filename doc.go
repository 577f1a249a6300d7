// Package redact applies track-scheduled redaction to video and audio
// streams.
//
// A track file names time windows to obscure: rectangular boxes filled,
// pixelated or blurred on the video side, whole buffers muted on the audio
// side. The package wires the lower layers (the trackfile parser, the
// timeline sweep, the pixel and sample engines, and the seeded random
// stream) into sessions that process one stream each in presentation-time
// order.
//
// # Getting Started
//
// Create a session from a track file and push decoded frames through it:
//
//	session, err := redact.NewVideoSession("tracks.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer session.Close()
//
//	for {
//	    frame, err := reader.ReadFrame()
//	    if err == io.EOF {
//	        break
//	    }
//	    out, err := session.ProcessFrame(frame)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    writer.WriteFrame(out)
//	}
//
// The audio variant follows the same shape over PCM16 buffers:
//
//	session, err := redact.NewAudioSession("tracks.txt", 48000, 2)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer session.Close()
//
//	out, err := session.Process(pcm)
//
// # Track Files
//
// Track files are line-oriented text. A video record is
// "start,end,left,right,top,bottom,method" where method is "pixel",
// "blur", the reserved "inv", or a solid fill color such as "green" or
// "#00FF0080". An audio record is "start,end,method" with method one of
// "mute", "noise" (reserved) or "none". Comment lines start with '#' and
// an optional "seed <uint>" line pins every random draw in the output, so
// two runs over the same input produce identical bytes.
//
// # Determinism
//
// All perceptual randomness (blur grain, temporal blend weights) flows
// from one seeded stream per session, forked per pipeline. Sessions with
// the same track file and input stream are byte-reproducible; see the
// noise package for the derivation rules.
//
// # Core Types
//
//   - [VideoSession]: per-stream frame redaction driven by a video track file
//   - [AudioSession]: per-stream PCM redaction driven by an audio track file
//
// Each session carries a unique ID attached to its log records, so logs
// from concurrent sessions can be told apart.
//
// # Thread Safety
//
// Sessions are single-threaded by design: the timeline cursor, the random
// stream and the retained previous frame all mutate as frames pass
// through, so one goroutine must own a session for its lifetime. Run
// concurrent streams with one session each.
//
// # Integration Architecture
//
// This package is the main integration point, orchestrating:
//
//   - [trackfile]: track file parsing and seed extraction
//   - [timeline]: interval scheduling against the presentation clock
//   - [video]: frame model, obscurers and the compositor
//   - [audio]: PCM redactor and Opus packet source
//   - [noise]: deterministic random streams
//   - [y4m], [wav]: uncompressed stream surfaces for the CLI
package redact
