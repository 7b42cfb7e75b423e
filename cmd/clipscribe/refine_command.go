package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newRefineCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "refine <video-id> <instruction...>",
		Short: "Rewrite a video's transcript with a language model",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			instruction := strings.Join(args[1:], " ")
			return ctx.withComponents(func(c *components) error {
				if err := c.processor.Refine(cmd.Context(), args[0], instruction); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Refined transcript of %s\n", args[0])
				return nil
			})
		},
	}
}
