// Package recallcmder
package recallcmder

import (
	"github.com/spf13/cobra"

	capturecmder "github.com/papercomputeco/recall/cmd/recall/capture"
	cleanupcmder "github.com/papercomputeco/recall/cmd/recall/cleanup"
	configcmder "github.com/papercomputeco/recall/cmd/recall/config"
	getcmder "github.com/papercomputeco/recall/cmd/recall/get"
	listcmder "github.com/papercomputeco/recall/cmd/recall/list"
	promotecmder "github.com/papercomputeco/recall/cmd/recall/promote"
	searchcmder "github.com/papercomputeco/recall/cmd/recall/search"
	servecmder "github.com/papercomputeco/recall/cmd/recall/serve"
	statscmder "github.com/papercomputeco/recall/cmd/recall/stats"
	versioncmder "github.com/papercomputeco/recall/cmd/version"
)

const recallLongDesc string = `Recall is persistent memory for your agents.

Capture important facts, preferences, and decisions from conversations,
then search and retrieve them across sessions:
  recall capture "..."   Store a memory
  recall search <word>   Search stored memory
  recall serve           Run the API and MCP server`

const recallShortDesc string = "Recall - Agent Memory"

func NewRecallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recall",
		Short: recallShortDesc,
		Long:  recallLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override the .recall/ directory location")

	// Add subcommands
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(capturecmder.NewCaptureCmd())
	cmd.AddCommand(promotecmder.NewPromoteCmd())
	cmd.AddCommand(searchcmder.NewSearchCmd())
	cmd.AddCommand(listcmder.NewListCmd())
	cmd.AddCommand(getcmder.NewGetCmd())
	cmd.AddCommand(statscmder.NewStatsCmd())
	cmd.AddCommand(cleanupcmder.NewCleanupCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
