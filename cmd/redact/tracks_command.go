package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/opd-ai/redact/trackfile"
	"github.com/opd-ai/redact/video"
)

func newTracksCommand() *cobra.Command {
	var tracksPath string
	var audioTracks bool

	cmd := &cobra.Command{
		Use:   "tracks",
		Short: "Show the parsed contents of a track file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tracksPath == "" {
				return errors.New("a track file is required (--tracks)")
			}

			if audioTracks {
				file, err := trackfile.LoadAudio(tracksPath)
				if err != nil {
					return err
				}

				rows := make([][]string, 0, len(file.Tracks))
				for i, tr := range file.Tracks {
					rows = append(rows, []string{
						strconv.Itoa(i + 1),
						fmt.Sprintf("%.2f", tr.Start),
						fmt.Sprintf("%.2f", tr.End),
						tr.Method.String(),
					})
				}

				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"#", "START", "END", "METHOD"},
					rows,
					[]columnAlignment{alignRight, alignRight, alignRight, alignLeft},
				))
				fmt.Fprintf(cmd.OutOrStdout(), "%d audio tracks, seed %d\n", len(file.Tracks), file.Seed)
				return nil
			}

			file, err := trackfile.LoadVideo(tracksPath)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(file.Tracks))
			for i, tr := range file.Tracks {
				fill := ""
				if tr.Method == video.MethodSolid {
					fill = tr.Fill.String()
				}
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					fmt.Sprintf("%.2f", tr.Start),
					fmt.Sprintf("%.2f", tr.End),
					strconv.Itoa(tr.Left),
					strconv.Itoa(tr.Right),
					strconv.Itoa(tr.Top),
					strconv.Itoa(tr.Bottom),
					tr.Method.String(),
					fill,
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"#", "START", "END", "LEFT", "RIGHT", "TOP", "BOTTOM", "METHOD", "FILL"},
				rows,
				[]columnAlignment{
					alignRight, alignRight, alignRight, alignRight,
					alignRight, alignRight, alignRight, alignLeft, alignLeft,
				},
			))
			fmt.Fprintf(cmd.OutOrStdout(), "%d video tracks, seed %d\n", len(file.Tracks), file.Seed)
			return nil
		},
	}

	cmd.Flags().StringVarP(&tracksPath, "tracks", "t", "", "Track file path")
	cmd.Flags().BoolVar(&audioTracks, "audio", false, "Parse as an audio track file")

	return cmd
}
