// Package y4m reads and writes YUV4MPEG2 streams.
//
// YUV4MPEG2 is the uncompressed interchange format the redaction pipeline
// speaks on disk: a single text header line describing geometry, frame rate
// and chroma subsampling, followed by raw planar frames each introduced by a
// FRAME marker line. Because frames are uncompressed planar YCbCr they map
// one-to-one onto video.Frame, so a stream can be pulled through the
// compositor without any codec in between:
//
//	ffmpeg -i input.mp4 -f yuv4mpegpipe input.y4m
//
//	r, err := y4m.NewReader(in)
//	w, err := y4m.NewWriter(out, r.Header())
//	for {
//	    frame, err := r.ReadFrame()
//	    if err == io.EOF {
//	        break
//	    }
//	    // redact frame ...
//	    w.WriteFrame(frame)
//	}
//	w.Flush()
//
// The reader stamps each frame's PTS from its index and the stream frame
// rate, which is exactly the presentation clock the track timeline sweeps
// against.
//
// Supported colorspaces are the 8-bit planar tags: 420 (jpeg, mpeg2 and
// paldv siting variants), 411, 422 and 444. Mono and high-bit-depth streams
// are rejected at the header.
package y4m
