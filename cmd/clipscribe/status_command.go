package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"clipscribe/internal/registry"
	"clipscribe/internal/store"
)

const (
	ansiBlue  = "\x1b[34m"
	ansiReset = "\x1b[0m"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the registry as of the last scan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withComponents(func(c *components) error {
				snapshot := store.ReadDocument(c.store.RegistryPath(), registry.Snapshot{})
				assets := snapshot.Sorted()

				out := cmd.OutOrStdout()
				header := fmt.Sprintf("== Library: %s ==", c.cfg.Paths.LibraryDir)
				if isTerminal(out) {
					header = ansiBlue + header + ansiReset
				}
				fmt.Fprintln(out, header)

				if len(assets) == 0 {
					fmt.Fprintln(out, "No videos registered; run `clipscribe scan` first")
					return nil
				}
				fmt.Fprintln(out, renderAssetTable(assets))

				counts := make(map[registry.Status]int)
				for _, asset := range assets {
					counts[asset.Status]++
				}
				summary := make([]string, 0, len(counts))
				for _, status := range []registry.Status{registry.StatusReady, registry.StatusAudioReady, registry.StatusUnprocessed, registry.StatusNew} {
					if counts[status] > 0 {
						summary = append(summary, fmt.Sprintf("%d %s", counts[status], status))
					}
				}
				fmt.Fprintln(out, strings.Join(summary, ", "))
				return nil
			})
		},
	}
}

func renderAssetTable(assets []*registry.Asset) string {
	rows := make([][]string, 0, len(assets))
	for _, asset := range assets {
		rows = append(rows, []string{
			asset.ID,
			asset.DisplayTitle,
			string(asset.Status),
			humanSize(asset.VideoSizeBytes),
			yesNo(asset.HasAudio()),
			yesNo(asset.HasTranscript()),
		})
	}
	return renderTable(
		[]string{"ID", "Title", "Status", "Size", "Audio", "Transcript"},
		rows,
		3,
	)
}

func humanSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	value := float64(bytes)
	suffixes := []string{"KiB", "MiB", "GiB", "TiB"}
	for _, suffix := range suffixes {
		value /= unit
		if value < unit || suffix == suffixes[len(suffixes)-1] {
			return fmt.Sprintf("%.1f %s", value, suffix)
		}
	}
	return fmt.Sprintf("%d B", bytes)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
