// Package searchcmder provides the search command for querying stored memory.
package searchcmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/recall/cmd/recall/cmdutil"
	"github.com/papercomputeco/recall/pkg/cliui"
	"github.com/papercomputeco/recall/pkg/config"
)

type SearchCommander struct {
	dir          string
	contextLines int
}

const searchLongDesc string = `Search stored memory for a keyword.

Matching is a case-insensitive substring scan across every memory file.
Matches are reported with surrounding context lines, long-term memory
first, then daily files and session summaries newest first.

Examples:
  recall search postgres
  recall search "code review" --context 5`

const searchShortDesc string = "Search stored memory"

func NewSearchCmd() *cobra.Command {
	cmder := &SearchCommander{}

	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: searchShortDesc,
		Long:  searchLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd, args[0])
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagMemoryDir, &cmder.dir)
	config.AddIntFlag(cmd, config.Flags, config.FlagContextLines, &cmder.contextLines)

	return cmd
}

func (c *SearchCommander) run(cmd *cobra.Command, keyword string) error {
	rt, err := cmdutil.NewRuntime(cmd, []string{
		config.FlagMemoryDir,
		config.FlagContextLines,
	})
	if err != nil {
		return err
	}
	defer rt.Close()

	matches, err := rt.Engine.Search(cmd.Context(), keyword, rt.Viper.GetInt("memory.context_lines"))
	if err != nil {
		return err
	}

	if len(matches) == 0 {
		fmt.Printf("\n  %s\n\n", cliui.DimStyle.Render(fmt.Sprintf("No matches for %q.", keyword)))
		return nil
	}

	fmt.Printf("\n  %d match(es) for %s\n", len(matches), cliui.KeyStyle.Render(keyword))
	for _, m := range matches {
		fmt.Printf("\n  %s %s\n", cliui.KeyStyle.Render(m.Key), cliui.DimStyle.Render(m.File))
		fmt.Println(m.Excerpt)
	}
	fmt.Println()

	return nil
}
