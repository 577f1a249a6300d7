package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/opd-ai/redact"
	"github.com/opd-ai/redact/y4m"
)

func newVideoCommand() *cobra.Command {
	var tracksPath string

	cmd := &cobra.Command{
		Use:   "video <input.y4m> <output.y4m>",
		Short: "Redact a YUV4MPEG2 video stream",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if tracksPath == "" {
				return errors.New("a track file is required (--tracks)")
			}

			session, err := redact.NewVideoSession(tracksPath)
			if err != nil {
				return err
			}
			defer session.Close()

			in, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open input: %w", err)
			}
			defer in.Close()

			reader, err := y4m.NewReader(in)
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			out, err := os.Create(args[1])
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			defer out.Close()

			writer, err := y4m.NewWriter(out, reader.Header())
			if err != nil {
				return fmt.Errorf("write %s: %w", args[1], err)
			}

			for {
				frame, err := reader.ReadFrame()
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					return fmt.Errorf("frame %d: %w", reader.FramesRead(), err)
				}

				processed, err := session.ProcessFrame(frame)
				if err != nil {
					return err
				}
				if err := writer.WriteFrame(processed); err != nil {
					return fmt.Errorf("frame %d: %w", writer.FramesWritten(), err)
				}
			}

			if err := writer.Flush(); err != nil {
				return fmt.Errorf("flush output: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Redacted %d frames, %d tracks still pending\n",
				session.FramesProcessed(), session.PendingTracks())
			return nil
		},
	}

	cmd.Flags().StringVarP(&tracksPath, "tracks", "t", "", "Track file path")

	return cmd
}
