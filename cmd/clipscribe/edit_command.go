package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"clipscribe/internal/transcribe"
)

func newEditCommand(ctx *commandContext) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "edit <video-id>",
		Short: "Replace a video's transcript segments from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			segments, err := readSegments(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			return ctx.withComponents(func(c *components) error {
				if err := c.processor.EditSegments(cmd.Context(), args[0], segments); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Replaced transcript of %s with %d segments\n", args[0], len(segments))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "Segments JSON file (\"-\" for stdin)")
	return cmd
}

// readSegments decodes a segment array from the given file, or stdin when the
// file is "-".
func readSegments(stdin io.Reader, file string) ([]transcribe.Segment, error) {
	var reader io.Reader = stdin
	if file != "" && file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("open segments file: %w", err)
		}
		defer f.Close()
		reader = f
	}

	var segments []transcribe.Segment
	if err := json.NewDecoder(reader).Decode(&segments); err != nil {
		return nil, fmt.Errorf("decode segments: %w", err)
	}
	return segments, nil
}
