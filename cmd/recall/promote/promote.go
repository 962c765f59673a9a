// Package promotecmder provides the promote command for escalating memories
// to the long-term file.
package promotecmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/recall/cmd/recall/cmdutil"
	"github.com/papercomputeco/recall/pkg/cliui"
	"github.com/papercomputeco/recall/pkg/config"
)

type PromoteCommander struct {
	dir     string
	subject string
}

const promoteLongDesc string = `Append content to long-term memory.

Long-term memory (the MEMORY file) is never deleted by cleanup, so promote
knowledge that must outlive the daily retention window. Content is grouped
under a subject header.

Examples:
  recall promote --subject "Team conventions" "All services log with zap"
  recall promote "The staging cluster lives in us-east-1"`

const promoteShortDesc string = "Append content to long-term memory"

func NewPromoteCmd() *cobra.Command {
	cmder := &PromoteCommander{}

	cmd := &cobra.Command{
		Use:   "promote <content>",
		Short: promoteShortDesc,
		Long:  promoteLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd, args[0])
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagMemoryDir, &cmder.dir)
	cmd.Flags().StringVarP(&cmder.subject, "subject", "s", "", "Subject header to group the content under")

	return cmd
}

func (c *PromoteCommander) run(cmd *cobra.Command, content string) error {
	rt, err := cmdutil.NewRuntime(cmd, []string{config.FlagMemoryDir})
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := rt.Engine.Promote(cmd.Context(), c.subject, content); err != nil {
		return err
	}

	fmt.Printf("  %s Promoted to long-term memory\n", cliui.SuccessMark)

	return nil
}
