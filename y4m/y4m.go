package y4m

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/redact/video"
)

const magic = "YUV4MPEG2"

// subsampling records the chroma shifts implied by a colorspace tag.
type subsampling struct {
	hsub uint
	vsub uint
}

// colorspaces maps the supported 8-bit planar tags to their subsampling.
// The three 420 variants differ only in chroma siting, which a rectangular
// redaction box does not care about.
var colorspaces = map[string]subsampling{
	"420":      {1, 1},
	"420jpeg":  {1, 1},
	"420mpeg2": {1, 1},
	"420paldv": {1, 1},
	"411":      {2, 0},
	"422":      {1, 0},
	"444":      {0, 0},
}

// Header describes a YUV4MPEG2 stream: luma geometry, frame rate as a
// rational, and the chroma subsampling shifts implied by the colorspace
// tag. Frame k of the stream presents at k*FPSDen/FPSNum seconds.
type Header struct {
	Width      int
	Height     int
	FPSNum     int
	FPSDen     int
	HSub       uint
	VSub       uint
	Colorspace string
}

// FrameDuration returns the duration of one frame in seconds.
func (h Header) FrameDuration() float64 {
	return float64(h.FPSDen) / float64(h.FPSNum)
}

// normalize fills defaults and reconciles the colorspace tag with the
// subsampling shifts. An explicit tag wins over the shift fields; with no
// tag the shifts select one.
func (h *Header) normalize() error {
	if h.Width <= 0 || h.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrMalformedHeader, h.Width, h.Height)
	}
	if h.FPSNum == 0 && h.FPSDen == 0 {
		h.FPSNum, h.FPSDen = 25, 1
	}
	if h.FPSNum <= 0 || h.FPSDen <= 0 {
		return fmt.Errorf("%w: frame rate %d:%d", ErrMalformedHeader, h.FPSNum, h.FPSDen)
	}

	if h.Colorspace != "" {
		sub, ok := colorspaces[h.Colorspace]
		if !ok {
			return fmt.Errorf("%w: C%s", ErrUnsupportedColorspace, h.Colorspace)
		}
		h.HSub, h.VSub = sub.hsub, sub.vsub
		return nil
	}

	switch (subsampling{h.HSub, h.VSub}) {
	case subsampling{1, 1}:
		// Of the three 420 sitings, prefer the jpeg tag ffmpeg defaults to.
		h.Colorspace = "420jpeg"
	case subsampling{2, 0}:
		h.Colorspace = "411"
	case subsampling{1, 0}:
		h.Colorspace = "422"
	case subsampling{0, 0}:
		h.Colorspace = "444"
	default:
		return fmt.Errorf("%w: no tag for hsub=%d vsub=%d", ErrUnsupportedColorspace, h.HSub, h.VSub)
	}
	return nil
}

// Reader decodes frames from a YUV4MPEG2 stream in presentation order.
type Reader struct {
	br     *bufio.Reader
	header Header
	index  uint64
}

// NewReader parses the stream header from r and returns a reader positioned
// at the first frame.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReaderSize(r, 1<<16)

	line, err := br.ReadString('\n')
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "NewReader",
			"error":    err.Error(),
		}).Error("Failed to read stream header")
		return nil, fmt.Errorf("reading stream header: %w", err)
	}

	header, err := parseStreamHeader(strings.TrimSuffix(line, "\n"))
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "NewReader",
			"error":    err.Error(),
		}).Error("Stream header validation failed")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function":   "NewReader",
		"width":      header.Width,
		"height":     header.Height,
		"fps_num":    header.FPSNum,
		"fps_den":    header.FPSDen,
		"colorspace": header.Colorspace,
	}).Info("Opened YUV4MPEG2 stream")

	return &Reader{br: br, header: header}, nil
}

// Header returns the parsed stream header.
func (r *Reader) Header() Header {
	return r.header
}

// ReadFrame decodes the next frame. The frame's PTS is derived from its
// index and the stream frame rate. At the end of the stream ReadFrame
// returns io.EOF; a stream truncated mid-frame returns
// io.ErrUnexpectedEOF.
func (r *Reader) ReadFrame() (*video.Frame, error) {
	line, err := r.br.ReadString('\n')
	if err == io.EOF && line == "" {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("reading frame header: %w", io.ErrUnexpectedEOF)
	}

	line = strings.TrimSuffix(line, "\n")
	if line != "FRAME" && !strings.HasPrefix(line, "FRAME ") {
		return nil, fmt.Errorf("%w: frame %d: %q", ErrMalformedHeader, r.index, line)
	}

	f := video.NewFrame(r.header.Width, r.header.Height, r.header.HSub, r.header.VSub)
	for _, plane := range [][]byte{f.Y, f.U, f.V} {
		if _, err := io.ReadFull(r.br, plane); err != nil {
			return nil, fmt.Errorf("reading frame %d: %w", r.index, io.ErrUnexpectedEOF)
		}
	}

	f.PTS = float64(r.index) * r.header.FrameDuration()
	r.index++

	logrus.WithFields(logrus.Fields{
		"function": "ReadFrame",
		"index":    r.index - 1,
		"pts":      f.PTS,
	}).Debug("Decoded frame")

	return f, nil
}

// FramesRead returns the number of frames decoded so far.
func (r *Reader) FramesRead() uint64 {
	return r.index
}

// parseStreamHeader parses the YUV4MPEG2 signature line. Unknown parameter
// tags are ignored for forward compatibility; interlacing and aspect tags
// carry nothing a per-frame box redaction needs.
func parseStreamHeader(line string) (Header, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || fields[0] != magic {
		return Header{}, fmt.Errorf("%w: %q", ErrNotY4M, line)
	}

	var h Header
	for _, field := range fields[1:] {
		tag, value := field[0], field[1:]
		switch tag {
		case 'W':
			w, err := strconv.Atoi(value)
			if err != nil {
				return Header{}, fmt.Errorf("%w: width %q", ErrMalformedHeader, value)
			}
			h.Width = w
		case 'H':
			v, err := strconv.Atoi(value)
			if err != nil {
				return Header{}, fmt.Errorf("%w: height %q", ErrMalformedHeader, value)
			}
			h.Height = v
		case 'F':
			num, den, err := parseRatio(value)
			if err != nil {
				return Header{}, fmt.Errorf("%w: frame rate %q", ErrMalformedHeader, value)
			}
			h.FPSNum, h.FPSDen = num, den
		case 'C':
			h.Colorspace = value
		}
	}

	if err := h.normalize(); err != nil {
		return Header{}, err
	}
	return h, nil
}

// parseRatio parses a "num:den" rational.
func parseRatio(s string) (num, den int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("missing denominator")
	}
	num, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, err
	}
	den, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return num, den, nil
}

// Writer encodes frames into a YUV4MPEG2 stream.
type Writer struct {
	bw     *bufio.Writer
	header Header
	frames uint64
}

// NewWriter normalizes h, writes the stream header to w, and returns a
// writer ready for frames. Callers must Flush when done.
func NewWriter(w io.Writer, h Header) (*Writer, error) {
	if err := h.normalize(); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "NewWriter",
			"error":    err.Error(),
		}).Error("Stream header validation failed")
		return nil, err
	}

	bw := bufio.NewWriterSize(w, 1<<16)
	_, err := fmt.Fprintf(bw, "%s W%d H%d F%d:%d Ip A1:1 C%s\n",
		magic, h.Width, h.Height, h.FPSNum, h.FPSDen, h.Colorspace)
	if err != nil {
		return nil, fmt.Errorf("writing stream header: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"function":   "NewWriter",
		"width":      h.Width,
		"height":     h.Height,
		"fps_num":    h.FPSNum,
		"fps_den":    h.FPSDen,
		"colorspace": h.Colorspace,
	}).Info("Opened YUV4MPEG2 output stream")

	return &Writer{bw: bw, header: h}, nil
}

// Header returns the normalized stream header.
func (w *Writer) Header() Header {
	return w.header
}

// WriteFrame appends one frame to the stream. The frame must match the
// stream header's geometry and subsampling.
func (w *Writer) WriteFrame(f *video.Frame) error {
	if err := f.Validate(); err != nil {
		return fmt.Errorf("invalid frame: %w", err)
	}
	if f.Width != w.header.Width || f.Height != w.header.Height ||
		f.HSub != w.header.HSub || f.VSub != w.header.VSub {
		logrus.WithFields(logrus.Fields{
			"function":      "WriteFrame",
			"frame_width":   f.Width,
			"frame_height":  f.Height,
			"stream_width":  w.header.Width,
			"stream_height": w.header.Height,
		}).Error("Frame geometry validation failed")
		return fmt.Errorf("%w: frame %dx%d, stream %dx%d",
			ErrGeometryMismatch, f.Width, f.Height, w.header.Width, w.header.Height)
	}

	if _, err := w.bw.WriteString("FRAME\n"); err != nil {
		return fmt.Errorf("writing frame header: %w", err)
	}

	cw, ch := f.ChromaWidth(), f.ChromaHeight()
	planes := []struct {
		data          []byte
		stride        int
		width, height int
	}{
		{f.Y, f.YStride, f.Width, f.Height},
		{f.U, f.UStride, cw, ch},
		{f.V, f.VStride, cw, ch},
	}
	for _, p := range planes {
		if err := w.writePlane(p.data, p.stride, p.width, p.height); err != nil {
			return err
		}
	}

	w.frames++
	logrus.WithFields(logrus.Fields{
		"function": "WriteFrame",
		"index":    w.frames - 1,
	}).Debug("Encoded frame")

	return nil
}

// writePlane emits a plane row by row, dropping any stride padding.
func (w *Writer) writePlane(data []byte, stride, width, height int) error {
	if stride == width {
		if _, err := w.bw.Write(data[:width*height]); err != nil {
			return fmt.Errorf("writing plane: %w", err)
		}
		return nil
	}
	for y := 0; y < height; y++ {
		row := data[y*stride : y*stride+width]
		if _, err := w.bw.Write(row); err != nil {
			return fmt.Errorf("writing plane row %d: %w", y, err)
		}
	}
	return nil
}

// FramesWritten returns the number of frames encoded so far.
func (w *Writer) FramesWritten() uint64 {
	return w.frames
}

// Flush drains buffered output to the underlying writer.
func (w *Writer) Flush() error {
	if err := w.bw.Flush(); err != nil {
		return fmt.Errorf("flushing stream: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"function": "Flush",
		"frames":   w.frames,
	}).Info("Flushed YUV4MPEG2 output stream")

	return nil
}
