// Package capturecmder provides the capture command for storing memories.
package capturecmder

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/recall/cmd/recall/cmdutil"
	"github.com/papercomputeco/recall/pkg/cliui"
	"github.com/papercomputeco/recall/pkg/config"
	"github.com/papercomputeco/recall/pkg/memory"
)

type CaptureCommander struct {
	dir      string
	category string
	scan     bool
}

const captureLongDesc string = `Store a memory.

Content is classified into a category (preference, decision, entity, fact)
unless one is given with --category, checked against recent memory for
duplicates, and appended to today's memory file.

With --scan, the content is instead split into sentences and only those
matching a capture trigger are stored. Use this to sweep a block of
conversation text for memory-worthy statements.

Content is read from the argument, or from stdin when no argument is given:
  recall capture "I prefer tabs over spaces"
  recall capture --category decision "We will use PostgreSQL"
  cat transcript.txt | recall capture --scan`

const captureShortDesc string = "Store a memory"

func NewCaptureCmd() *cobra.Command {
	cmder := &CaptureCommander{}

	cmd := &cobra.Command{
		Use:   "capture [content]",
		Short: captureShortDesc,
		Long:  captureLongDesc,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd, args)
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagMemoryDir, &cmder.dir)
	cmd.Flags().StringVarP(&cmder.category, "category", "c", "", "Force a category (preference, decision, entity, fact, none)")
	cmd.Flags().BoolVar(&cmder.scan, "scan", false, "Scan the content and store only trigger-matching sentences")

	return cmd
}

func (c *CaptureCommander) run(cmd *cobra.Command, args []string) error {
	content, err := readContent(args)
	if err != nil {
		return err
	}

	rt, err := cmdutil.NewRuntime(cmd, []string{config.FlagMemoryDir})
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx := cmd.Context()

	if c.scan {
		results, err := rt.Engine.CaptureText(ctx, content)
		if err != nil {
			return err
		}
		printScanResults(results)
		return nil
	}

	result, err := rt.Engine.Capture(ctx, content, c.category)
	if err != nil {
		return err
	}

	printResult(result)

	return nil
}

func readContent(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}

	content := strings.TrimSpace(string(data))
	if content == "" {
		return "", fmt.Errorf("no content given (pass an argument or pipe to stdin)")
	}

	return content, nil
}

func printResult(result memory.CaptureResult) {
	if result.Status == memory.StatusSkipped {
		fmt.Printf("  %s %s\n", cliui.DimStyle.Render("●"), result.Message)
		return
	}

	location := result.Key
	if result.Category.Tagged() {
		location = fmt.Sprintf("%s [%s]", result.Key, result.Category)
	}
	fmt.Printf("  %s %s %s\n",
		cliui.SuccessMark,
		result.Message,
		cliui.DimStyle.Render(fmt.Sprintf("(%s, line %d)", location, result.Line)),
	)
}

func printScanResults(results []memory.CaptureResult) {
	stored := 0
	for _, r := range results {
		if r.Status == memory.StatusOK {
			stored++
		}
	}

	fmt.Printf("  %s Stored %d of %d candidate sentences\n",
		cliui.Mark(nil), stored, len(results),
	)
}
