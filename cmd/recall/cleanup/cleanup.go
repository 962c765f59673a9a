// Package cleanupcmder provides the cleanup command for enforcing retention.
package cleanupcmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/recall/cmd/recall/cmdutil"
	"github.com/papercomputeco/recall/pkg/cliui"
	"github.com/papercomputeco/recall/pkg/config"
)

type CleanupCommander struct {
	dir         string
	dailyDays   int
	summaryDays int
}

const cleanupLongDesc string = `Delete memory files older than the retention windows.

Daily files strictly older than the daily window and session summaries
strictly older than the summary window are removed. Today's file and
long-term memory are never deleted.

Examples:
  recall cleanup
  recall cleanup --daily-days 14 --summary-days 60`

const cleanupShortDesc string = "Delete old memory files"

func NewCleanupCmd() *cobra.Command {
	cmder := &CleanupCommander{}

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: cleanupShortDesc,
		Long:  cleanupLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd)
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagMemoryDir, &cmder.dir)
	config.AddIntFlag(cmd, config.Flags, config.FlagDailyRetentionDays, &cmder.dailyDays)
	config.AddIntFlag(cmd, config.Flags, config.FlagSummaryRetentionDays, &cmder.summaryDays)

	return cmd
}

func (c *CleanupCommander) run(cmd *cobra.Command) error {
	rt, err := cmdutil.NewRuntime(cmd, []string{
		config.FlagMemoryDir,
		config.FlagDailyRetentionDays,
		config.FlagSummaryRetentionDays,
	})
	if err != nil {
		return err
	}
	defer rt.Close()

	result, err := rt.Engine.Cleanup(
		cmd.Context(),
		rt.Viper.GetInt("memory.daily_retention_days"),
		rt.Viper.GetInt("memory.summary_retention_days"),
	)
	if err != nil {
		return err
	}

	fmt.Printf("\n  %s Deleted %d file(s)\n", cliui.SuccessMark, len(result.DeletedKeys))
	for _, key := range result.DeletedKeys {
		fmt.Printf("    %s\n", cliui.DimStyle.Render(key))
	}

	if len(result.SkippedKeys) > 0 {
		fmt.Printf("  %s Skipped %d file(s) that could not be removed\n",
			cliui.FailMark, len(result.SkippedKeys),
		)
	}
	fmt.Println()

	return nil
}
