package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

const (
	formatPCM     = 1
	bitsPerSample = 16
	headerSize    = 44
)

// Reader streams interleaved PCM16 samples from a RIFF/WAVE file.
type Reader struct {
	r          io.Reader
	sampleRate uint32
	channels   uint8
	remaining  uint32
	scratch    []byte
}

// NewReader parses the RIFF header and chunk list up to the data chunk and
// returns a reader positioned at the first sample. Chunks other than fmt
// and data are skipped.
func NewReader(r io.Reader) (*Reader, error) {
	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "NewReader",
			"error":    err.Error(),
		}).Error("Failed to read RIFF header")
		return nil, fmt.Errorf("reading RIFF header: %w", err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		logrus.WithFields(logrus.Fields{
			"function": "NewReader",
			"error":    "missing RIFF/WAVE signature",
		}).Error("File signature validation failed")
		return nil, ErrNotWAV
	}

	wr := &Reader{r: r}
	haveFmt := false
	for {
		var chunk [8]byte
		if _, err := io.ReadFull(r, chunk[:]); err != nil {
			return nil, fmt.Errorf("%w: reading chunk header: %v", ErrMalformedChunk, err)
		}
		id := string(chunk[0:4])
		size := binary.LittleEndian.Uint32(chunk[4:8])

		switch id {
		case "fmt ":
			if err := wr.parseFormat(size); err != nil {
				return nil, err
			}
			haveFmt = true
		case "data":
			if !haveFmt {
				return nil, fmt.Errorf("%w: data chunk before fmt chunk", ErrMalformedChunk)
			}
			wr.remaining = size

			logrus.WithFields(logrus.Fields{
				"function":    "NewReader",
				"sample_rate": wr.sampleRate,
				"channels":    wr.channels,
				"data_bytes":  size,
			}).Info("Opened WAVE stream")

			return wr, nil
		default:
			// Chunks are word-aligned; odd sizes carry a pad byte.
			if err := skip(r, int64(size)+int64(size&1)); err != nil {
				return nil, fmt.Errorf("%w: skipping %q chunk: %v", ErrMalformedChunk, id, err)
			}
		}
	}
}

// parseFormat validates the fmt chunk body and records rate and layout.
func (r *Reader) parseFormat(size uint32) error {
	if size < 16 {
		return fmt.Errorf("%w: fmt chunk of %d bytes", ErrMalformedChunk, size)
	}
	var body [16]byte
	if _, err := io.ReadFull(r.r, body[:]); err != nil {
		return fmt.Errorf("%w: reading fmt chunk: %v", ErrMalformedChunk, err)
	}
	if err := skip(r.r, int64(size-16)+int64(size&1)); err != nil {
		return fmt.Errorf("%w: skipping fmt extension: %v", ErrMalformedChunk, err)
	}

	format := binary.LittleEndian.Uint16(body[0:2])
	channels := binary.LittleEndian.Uint16(body[2:4])
	rate := binary.LittleEndian.Uint32(body[4:8])
	bits := binary.LittleEndian.Uint16(body[14:16])

	if format != formatPCM || bits != bitsPerSample {
		logrus.WithFields(logrus.Fields{
			"function": "parseFormat",
			"format":   format,
			"bits":     bits,
		}).Error("WAVE format validation failed")
		return fmt.Errorf("%w: format %d at %d bits", ErrUnsupportedFormat, format, bits)
	}
	if channels == 0 || channels > 255 || rate == 0 {
		return fmt.Errorf("%w: %d channels at %d Hz", ErrUnsupportedFormat, channels, rate)
	}

	r.sampleRate = rate
	r.channels = uint8(channels)
	return nil
}

// SampleRate returns the stream sample rate in Hz.
func (r *Reader) SampleRate() uint32 {
	return r.sampleRate
}

// Channels returns the number of interleaved channels.
func (r *Reader) Channels() uint8 {
	return r.channels
}

// ReadSamples fills buf with up to len(buf) interleaved samples and returns
// the count read. At the end of the data chunk it returns io.EOF; a file
// truncated mid-chunk returns io.ErrUnexpectedEOF.
func (r *Reader) ReadSamples(buf []int16) (int, error) {
	if r.remaining < 2 {
		return 0, io.EOF
	}

	want := len(buf) * 2
	if uint32(want) > r.remaining {
		want = int(r.remaining)
	}
	want &^= 1

	if cap(r.scratch) < want {
		r.scratch = make([]byte, want)
	}
	raw := r.scratch[:want]
	if _, err := io.ReadFull(r.r, raw); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return 0, io.ErrUnexpectedEOF
		}
		return 0, fmt.Errorf("reading samples: %w", err)
	}
	r.remaining -= uint32(want)

	n := want / 2
	for i := 0; i < n; i++ {
		buf[i] = int16(raw[i*2]) | int16(raw[i*2+1])<<8
	}
	return n, nil
}

// Writer streams interleaved PCM16 samples into a RIFF/WAVE file.
//
// The header is written with zero chunk sizes up front and patched on
// Close, so the destination must support seeking.
type Writer struct {
	w          io.WriteSeeker
	sampleRate uint32
	channels   uint8
	dataBytes  uint32
	scratch    []byte
	closed     bool
}

// NewWriter writes a provisional WAVE header to w and returns a writer
// ready for samples. Callers must Close to finalize the chunk sizes.
func NewWriter(w io.WriteSeeker, sampleRate uint32, channels uint8) (*Writer, error) {
	logrus.WithFields(logrus.Fields{
		"function":    "NewWriter",
		"sample_rate": sampleRate,
		"channels":    channels,
	}).Info("Opening WAVE output stream")

	if sampleRate == 0 || channels == 0 {
		logrus.WithFields(logrus.Fields{
			"function":    "NewWriter",
			"sample_rate": sampleRate,
			"channels":    channels,
		}).Error("WAVE parameters validation failed")
		return nil, fmt.Errorf("%w: %d channels at %d Hz", ErrUnsupportedFormat, channels, sampleRate)
	}

	ww := &Writer{w: w, sampleRate: sampleRate, channels: channels}
	if err := ww.writeHeader(); err != nil {
		return nil, err
	}
	return ww, nil
}

// writeHeader emits the fixed 44-byte PCM header with the current data
// size. It is written once at creation and again, patched, at Close.
func (w *Writer) writeHeader() error {
	blockAlign := uint16(w.channels) * (bitsPerSample / 8)
	byteRate := w.sampleRate * uint32(blockAlign)

	var h [headerSize]byte
	copy(h[0:4], "RIFF")
	binary.LittleEndian.PutUint32(h[4:8], headerSize-8+w.dataBytes)
	copy(h[8:12], "WAVE")
	copy(h[12:16], "fmt ")
	binary.LittleEndian.PutUint32(h[16:20], 16)
	binary.LittleEndian.PutUint16(h[20:22], formatPCM)
	binary.LittleEndian.PutUint16(h[22:24], uint16(w.channels))
	binary.LittleEndian.PutUint32(h[24:28], w.sampleRate)
	binary.LittleEndian.PutUint32(h[28:32], byteRate)
	binary.LittleEndian.PutUint16(h[32:34], blockAlign)
	binary.LittleEndian.PutUint16(h[34:36], bitsPerSample)
	copy(h[36:40], "data")
	binary.LittleEndian.PutUint32(h[40:44], w.dataBytes)

	if _, err := w.w.Write(h[:]); err != nil {
		return fmt.Errorf("writing WAVE header: %w", err)
	}
	return nil
}

// WriteSamples appends interleaved samples to the data chunk.
func (w *Writer) WriteSamples(pcm []int16) error {
	if w.closed {
		return fmt.Errorf("write to closed WAVE writer")
	}

	need := len(pcm) * 2
	if cap(w.scratch) < need {
		w.scratch = make([]byte, need)
	}
	raw := w.scratch[:need]
	for i, sample := range pcm {
		raw[i*2] = byte(sample)
		raw[i*2+1] = byte(sample >> 8)
	}

	if _, err := w.w.Write(raw); err != nil {
		return fmt.Errorf("writing samples: %w", err)
	}
	w.dataBytes += uint32(need)
	return nil
}

// SamplesWritten returns the number of interleaved samples written so far.
func (w *Writer) SamplesWritten() uint64 {
	return uint64(w.dataBytes) / 2
}

// Close patches the RIFF and data chunk sizes. The writer cannot be used
// afterwards; the underlying file remains open and owned by the caller.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if _, err := w.w.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seeking to WAVE header: %w", err)
	}
	if err := w.writeHeader(); err != nil {
		return err
	}
	if _, err := w.w.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("seeking past WAVE data: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"function":   "Close",
		"data_bytes": w.dataBytes,
		"samples":    w.SamplesWritten(),
	}).Info("Closed WAVE output stream")

	return nil
}

// skip discards n bytes from r.
func skip(r io.Reader, n int64) error {
	_, err := io.CopyN(io.Discard, r, n)
	return err
}
