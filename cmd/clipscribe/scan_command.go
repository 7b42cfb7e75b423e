package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Scan the video library and update the registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withComponents(func(c *components) error {
				snapshot, err := c.reconciler.Reconcile(cmd.Context())
				if err != nil {
					return err
				}
				assets := snapshot.Sorted()
				if len(assets) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No videos in the library")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderAssetTable(assets))
				return nil
			})
		},
	}
}
