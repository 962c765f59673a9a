// Package getcmder provides the get command for reading a memory file.
package getcmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/recall/cmd/recall/cmdutil"
	"github.com/papercomputeco/recall/pkg/cliui"
	"github.com/papercomputeco/recall/pkg/config"
)

type GetCommander struct {
	dir    string
	start  int
	end    int
	render bool
}

const getLongDesc string = `Read a memory file by key.

Keys are a date (YYYY-MM-DD) for daily files, a date-slug for session
summaries, or MEMORY for the long-term file. Use --start and --end to read
an inclusive 1-based line range.

Examples:
  recall get 2026-08-27
  recall get MEMORY --render
  recall get 2026-08-01-deploy --start 10 --end 30`

const getShortDesc string = "Read a memory file"

func NewGetCmd() *cobra.Command {
	cmder := &GetCommander{}

	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: getShortDesc,
		Long:  getLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd, args[0])
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagMemoryDir, &cmder.dir)
	cmd.Flags().IntVar(&cmder.start, "start", 0, "First line to print (1-based)")
	cmd.Flags().IntVar(&cmder.end, "end", 0, "Last line to print (inclusive)")
	cmd.Flags().BoolVarP(&cmder.render, "render", "r", false, "Render the markdown for the terminal")

	return cmd
}

func (c *GetCommander) run(cmd *cobra.Command, key string) error {
	rt, err := cmdutil.NewRuntime(cmd, []string{config.FlagMemoryDir})
	if err != nil {
		return err
	}
	defer rt.Close()

	result, err := rt.Engine.Get(cmd.Context(), key, c.start, c.end)
	if err != nil {
		return err
	}

	if c.render {
		rendered, err := cliui.RenderMarkdown(result.Content)
		if err != nil {
			// Fall back to the raw content when the terminal renderer fails.
			fmt.Println(result.Content)
			return nil
		}
		fmt.Print(rendered)
		return nil
	}

	fmt.Println(result.Content)

	return nil
}
