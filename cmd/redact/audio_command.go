package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/opd-ai/redact"
	"github.com/opd-ai/redact/wav"
)

// audioBufferSamples is the per-channel chunk size the audio command feeds
// through a session, about 46ms at 44.1kHz. Redaction decisions are made per
// buffer, so smaller chunks track window edges more closely at the cost of
// more passes.
const audioBufferSamples = 2048

func newAudioCommand() *cobra.Command {
	var tracksPath string

	cmd := &cobra.Command{
		Use:   "audio <input.wav> <output.wav>",
		Short: "Redact a PCM WAV audio stream",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if tracksPath == "" {
				return errors.New("a track file is required (--tracks)")
			}

			in, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open input: %w", err)
			}
			defer in.Close()

			reader, err := wav.NewReader(in)
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			session, err := redact.NewAudioSession(tracksPath, reader.SampleRate(), reader.Channels())
			if err != nil {
				return err
			}
			defer session.Close()

			out, err := os.Create(args[1])
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			defer out.Close()

			writer, err := wav.NewWriter(out, reader.SampleRate(), reader.Channels())
			if err != nil {
				return fmt.Errorf("write %s: %w", args[1], err)
			}

			buf := make([]int16, audioBufferSamples*int(reader.Channels()))
			for {
				n, err := reader.ReadSamples(buf)
				if n > 0 {
					processed, perr := session.Process(buf[:n])
					if perr != nil {
						return perr
					}
					if werr := writer.WriteSamples(processed); werr != nil {
						return fmt.Errorf("write samples: %w", werr)
					}
				}
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					return fmt.Errorf("read samples: %w", err)
				}
			}

			// Close patches the RIFF sizes in the header.
			if err := writer.Close(); err != nil {
				return fmt.Errorf("finalize output: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Redacted %.2fs of audio in %d buffers, %d tracks still pending\n",
				session.CurrentTime(), session.BuffersProcessed(), session.PendingTracks())
			return nil
		},
	}

	cmd.Flags().StringVarP(&tracksPath, "tracks", "t", "", "Track file path")

	return cmd
}
