// Package statscmder provides the stats command for store-wide statistics.
package statscmder

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/recall/cmd/recall/cmdutil"
	"github.com/papercomputeco/recall/pkg/cliui"
	"github.com/papercomputeco/recall/pkg/config"
)

type StatsCommander struct {
	dir string
}

const statsLongDesc string = `Show statistics for the memory store.

Reports file counts per tier, total size, and entry counts per category.`

const statsShortDesc string = "Show memory store statistics"

func NewStatsCmd() *cobra.Command {
	cmder := &StatsCommander{}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: statsShortDesc,
		Long:  statsLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd)
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagMemoryDir, &cmder.dir)

	return cmd
}

func (c *StatsCommander) run(cmd *cobra.Command) error {
	rt, err := cmdutil.NewRuntime(cmd, []string{config.FlagMemoryDir})
	if err != nil {
		return err
	}
	defer rt.Close()

	stats, err := rt.Engine.Stats(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  %s %d (%d daily, %d summaries)\n",
		cliui.KeyStyle.Render("Files:"),
		stats.TotalFiles, stats.DailyFiles, stats.SummaryFiles,
	)
	fmt.Printf("  %s %d bytes\n", cliui.KeyStyle.Render("Size:"), stats.TotalSizeBytes)

	categories := make([]string, 0, len(stats.CountsByCategory))
	for cat := range stats.CountsByCategory {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	fmt.Printf("  %s\n", cliui.KeyStyle.Render("Entries by category:"))
	for _, cat := range categories {
		fmt.Printf("    %-12s %d\n", cat, stats.CountsByCategory[cat])
	}
	fmt.Println()

	return nil
}
