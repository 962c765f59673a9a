// Package listcmder provides the list command for enumerating memory files.
package listcmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/recall/cmd/recall/cmdutil"
	"github.com/papercomputeco/recall/pkg/cliui"
	"github.com/papercomputeco/recall/pkg/config"
)

type ListCommander struct {
	dir      string
	category string
}

const listLongDesc string = `List stored memory files.

Files are listed most recent first, with the long-term MEMORY file leading.
With --category, only files containing at least one entry with that
bracketed tag are shown.

Examples:
  recall list
  recall list --category preference`

const listShortDesc string = "List stored memory files"

func NewListCmd() *cobra.Command {
	cmder := &ListCommander{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: listShortDesc,
		Long:  listLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd)
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagMemoryDir, &cmder.dir)
	cmd.Flags().StringVarP(&cmder.category, "category", "c", "", "Only show files containing this category")

	return cmd
}

func (c *ListCommander) run(cmd *cobra.Command) error {
	rt, err := cmdutil.NewRuntime(cmd, []string{config.FlagMemoryDir})
	if err != nil {
		return err
	}
	defer rt.Close()

	files, err := rt.Engine.List(cmd.Context(), c.category)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		fmt.Printf("\n  %s\n\n", cliui.DimStyle.Render("No memory files."))
		return nil
	}

	fmt.Println()
	for _, f := range files {
		preview := f.Preview
		if preview == "" {
			preview = "<empty>"
		}
		fmt.Printf("  %-22s %-16s %s\n",
			cliui.KeyStyle.Render(f.Key),
			cliui.DimStyle.Render(f.Tier),
			cliui.ValueStyle.Render(preview),
		)
	}
	fmt.Println()

	return nil
}
