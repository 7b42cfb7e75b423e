package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newMarkerCommand(ctx *commandContext) *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:   "marker <video-id> <time-seconds> <file-name>",
		Short: "Anchor a screenshot marker in a video's transcript",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid marker time %q: %w", args[1], err)
			}
			return ctx.withComponents(func(c *components) error {
				if err := c.processor.InsertMarker(cmd.Context(), args[0], at, args[2], url); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Marker %s added to %s at %.2fs\n", args[2], args[0], at)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "Public URL for the referenced file")
	return cmd
}
