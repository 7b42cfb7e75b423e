package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show and manage the event history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withComponents(func(c *components) error {
				events := c.history.List()
				if len(events) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No history entries")
					return nil
				}
				rows := make([][]string, 0, len(events))
				for _, event := range events {
					rows = append(rows, []string{
						event.ID,
						event.At.Format("2006-01-02 15:04:05"),
						string(event.Type),
						event.Message,
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Time", "Type", "Message"},
					rows,
				))
				return nil
			})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <event-id>",
		Short: "Delete a single history entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withComponents(func(c *components) error {
				found, err := c.history.Delete(args[0])
				if err != nil {
					return err
				}
				if !found {
					return fmt.Errorf("no history entry with id %q", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted history entry %s\n", args[0])
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all history entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withComponents(func(c *components) error {
				if err := c.history.Clear(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
				return nil
			})
		},
	})

	return cmd
}
