package trackfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/redact/audio"
	"github.com/opd-ai/redact/noise"
	"github.com/opd-ai/redact/video"
	"github.com/opd-ai/redact/yuv"
)

var (
	// ErrMalformedSeed reports a seed line whose value does not parse as
	// an unsigned integer.
	ErrMalformedSeed = errors.New("malformed seed line")
)

// VideoFile is the parsed form of a video track file.
type VideoFile struct {
	Tracks []video.Track
	Seed   uint64
}

// AudioFile is the parsed form of an audio track file.
type AudioFile struct {
	Tracks []audio.Track
	Seed   uint64
}

// LoadVideo reads and parses a video track file from disk.
func LoadVideo(path string) (*VideoFile, error) {
	logrus.WithFields(logrus.Fields{
		"function": "LoadVideo",
		"path":     path,
	}).Info("Loading video track file")

	f, err := os.Open(path)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "LoadVideo",
			"path":     path,
			"error":    err.Error(),
		}).Error("Failed to open track file")
		return nil, fmt.Errorf("opening track file: %w", err)
	}
	defer f.Close()

	return ParseVideo(f)
}

// LoadAudio reads and parses an audio track file from disk.
func LoadAudio(path string) (*AudioFile, error) {
	logrus.WithFields(logrus.Fields{
		"function": "LoadAudio",
		"path":     path,
	}).Info("Loading audio track file")

	f, err := os.Open(path)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "LoadAudio",
			"path":     path,
			"error":    err.Error(),
		}).Error("Failed to open track file")
		return nil, fmt.Errorf("opening track file: %w", err)
	}
	defer f.Close()

	return ParseAudio(f)
}

// ParseVideo parses video track records from r. Malformed records are
// logged and skipped; a malformed seed line aborts with ErrMalformedSeed.
func ParseVideo(r io.Reader) (*VideoFile, error) {
	file := &VideoFile{Seed: noise.DefaultSeed}

	err := scanLines(r, func(lineNum int, line string) error {
		if seed, ok, err := parseSeedLine(lineNum, line); err != nil {
			return err
		} else if ok {
			file.Seed = seed
			return nil
		}

		track, err := parseVideoRecord(line)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"function": "ParseVideo",
				"line":     lineNum,
				"record":   line,
				"error":    err.Error(),
			}).Warn("Skipping malformed track record")
			return nil
		}

		file.Tracks = append(file.Tracks, track)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function": "ParseVideo",
		"tracks":   len(file.Tracks),
		"seed":     file.Seed,
	}).Info("Video track file parsed")

	return file, nil
}

// ParseAudio parses audio track records from r. Malformed records are
// logged and skipped; a malformed seed line aborts with ErrMalformedSeed.
func ParseAudio(r io.Reader) (*AudioFile, error) {
	file := &AudioFile{Seed: noise.DefaultSeed}

	err := scanLines(r, func(lineNum int, line string) error {
		if seed, ok, err := parseSeedLine(lineNum, line); err != nil {
			return err
		} else if ok {
			file.Seed = seed
			return nil
		}

		track, err := parseAudioRecord(line)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"function": "ParseAudio",
				"line":     lineNum,
				"record":   line,
				"error":    err.Error(),
			}).Warn("Skipping malformed track record")
			return nil
		}

		file.Tracks = append(file.Tracks, track)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function": "ParseAudio",
		"tracks":   len(file.Tracks),
		"seed":     file.Seed,
	}).Info("Audio track file parsed")

	return file, nil
}

// scanLines feeds non-blank, non-comment lines to handle with 1-based
// line numbers.
func scanLines(r io.Reader, handle func(lineNum int, line string) error) error {
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := handle(lineNum, line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading track file: %w", err)
	}
	return nil
}

// parseSeedLine recognizes "seed <uint>" lines. ok reports whether the
// line is a seed line at all; a seed line with a bad value is an error,
// not a skippable record, because guessing a seed would silently change
// every random draw downstream.
func parseSeedLine(lineNum int, line string) (seed uint64, ok bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || fields[0] != "seed" {
		return 0, false, nil
	}
	if len(fields) != 2 {
		logrus.WithFields(logrus.Fields{
			"function": "parseSeedLine",
			"line":     lineNum,
			"record":   line,
		}).Error("Seed line validation failed")
		return 0, true, fmt.Errorf("line %d: %w: expected \"seed <uint>\"", lineNum, ErrMalformedSeed)
	}
	seed, perr := strconv.ParseUint(fields[1], 10, 64)
	if perr != nil {
		logrus.WithFields(logrus.Fields{
			"function": "parseSeedLine",
			"line":     lineNum,
			"value":    fields[1],
			"error":    perr.Error(),
		}).Error("Seed line validation failed")
		return 0, true, fmt.Errorf("line %d: %w: %q", lineNum, ErrMalformedSeed, fields[1])
	}
	return seed, true, nil
}

// parseVideoRecord parses one start,end,left,right,top,bottom,method
// record.
func parseVideoRecord(line string) (video.Track, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 7 {
		return video.Track{}, fmt.Errorf("expected 7 fields, got %d", len(fields))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	start, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return video.Track{}, fmt.Errorf("start time %q: %w", fields[0], err)
	}
	end, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return video.Track{}, fmt.Errorf("end time %q: %w", fields[1], err)
	}

	var box [4]int
	for i, name := range [4]string{"left", "right", "top", "bottom"} {
		v, err := strconv.Atoi(fields[2+i])
		if err != nil {
			return video.Track{}, fmt.Errorf("%s %q: %w", name, fields[2+i], err)
		}
		box[i] = v
	}

	method, fill, err := parseVideoMethod(fields[6])
	if err != nil {
		return video.Track{}, err
	}

	return video.Track{
		Start:  start,
		End:    end,
		Left:   box[0],
		Right:  box[1],
		Top:    box[2],
		Bottom: box[3],
		Method: method,
		Fill:   fill,
	}, nil
}

// parseVideoMethod maps a method field to an obscuration method. Matching
// is a case-insensitive prefix test, so "pixelate" and "PIXEL" both select
// pixelation; anything that matches no method name is treated as a solid
// fill color specifier.
func parseVideoMethod(s string) (video.Method, yuv.Color, error) {
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "pixel"):
		return video.MethodPixelate, yuv.Color{}, nil
	case strings.HasPrefix(lower, "inv"):
		logrus.WithFields(logrus.Fields{
			"function": "parseVideoMethod",
			"method":   s,
		}).Warn("Inverse pixelation is reserved and applies no transformation")
		return video.MethodInversePixelate, yuv.Color{}, nil
	case strings.HasPrefix(lower, "blur"):
		return video.MethodBlur, yuv.Color{}, nil
	}

	fill, err := yuv.ParseColor(s)
	if err != nil {
		return 0, yuv.Color{}, fmt.Errorf("method %q: %w", s, err)
	}
	return video.MethodSolid, fill, nil
}

// parseAudioRecord parses one start,end,method record.
func parseAudioRecord(line string) (audio.Track, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 3 {
		return audio.Track{}, fmt.Errorf("expected 3 fields, got %d", len(fields))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	start, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return audio.Track{}, fmt.Errorf("start time %q: %w", fields[0], err)
	}
	end, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return audio.Track{}, fmt.Errorf("end time %q: %w", fields[1], err)
	}

	return audio.Track{
		Start:  start,
		End:    end,
		Method: parseAudioMethod(fields[2]),
	}, nil
}

// parseAudioMethod maps a method field by case-insensitive prefix. An
// unknown method mutes: when the file asks for redaction the safe reading
// of a typo is silence, not passthrough.
func parseAudioMethod(s string) audio.Method {
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "mute"):
		return audio.MethodMute
	case strings.HasPrefix(lower, "noise"):
		logrus.WithFields(logrus.Fields{
			"function": "parseAudioMethod",
			"method":   s,
		}).Warn("Noise redaction is reserved; samples pass through unchanged")
		return audio.MethodNoise
	case strings.HasPrefix(lower, "none"):
		return audio.MethodNone
	}

	logrus.WithFields(logrus.Fields{
		"function": "parseAudioMethod",
		"method":   s,
	}).Warn("Unknown audio method, muting")
	return audio.MethodMute
}
