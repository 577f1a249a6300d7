// Package wav reads and writes 16-bit PCM RIFF/WAVE files.
//
// WAVE is the uncompressed surface the audio redaction pipeline speaks on
// disk, the counterpart of package y4m on the video side. The reader walks
// the RIFF chunk list to the data chunk and then streams interleaved
// little-endian samples; the writer emits a provisional header and patches
// the chunk sizes into place on Close:
//
//	r, err := wav.NewReader(in)
//	w, err := wav.NewWriter(out, r.SampleRate(), r.Channels())
//	buf := make([]int16, 4096)
//	for {
//	    n, err := r.ReadSamples(buf)
//	    if err == io.EOF {
//	        break
//	    }
//	    // redact buf[:n] ...
//	    w.WriteSamples(buf[:n])
//	}
//	w.Close()
//
// Only PCM format 1 at 16 bits per sample is supported; compressed or float
// WAVE variants are rejected at the header.
package wav
