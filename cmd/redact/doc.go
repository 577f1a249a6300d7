// Package main hosts the redact CLI entrypoint and command graph.
//
// The Cobra-based command tree wires track files and stream surfaces into
// redaction sessions: the video command pipes YUV4MPEG2 frames through a
// VideoSession, the audio command pipes RIFF/WAVE PCM through an
// AudioSession, and the tracks command renders a parsed track file for
// inspection before committing to a run.
//
// Keep this package lean: redaction behavior belongs in the library
// packages, and commands here should stay at the level of opening streams,
// looping buffers, and reporting counts.
package main
