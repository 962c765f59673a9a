// Package servecmder provides the serve command for running the recall API
// and MCP server.
package servecmder

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papercomputeco/recall/api"
	"github.com/papercomputeco/recall/api/mcp"
	"github.com/papercomputeco/recall/cmd/recall/cmdutil"
	"github.com/papercomputeco/recall/pkg/config"
	"github.com/papercomputeco/recall/pkg/flush"
	"github.com/papercomputeco/recall/pkg/summary"
	"github.com/papercomputeco/recall/pkg/worker"
)

type ServeCommander struct {
	listen string
	dir    string
	noMCP  bool
}

const serveLongDesc string = `Run the recall API server.

Serves the memory HTTP API and, unless disabled, an MCP endpoint at /mcp
exposing the memory_capture, memory_search, and memory_get tools.
Conversations posted to /v1/memory/conversation are scanned for
memory-worthy content on a background worker pool.`

const serveShortDesc string = "Run the recall API server"

func NewServeCmd() *cobra.Command {
	cmder := &ServeCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd)
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagAPIListen, &cmder.listen)
	config.AddStringFlag(cmd, config.Flags, config.FlagMemoryDir, &cmder.dir)
	cmd.Flags().BoolVar(&cmder.noMCP, "no-mcp", false, "Disable the MCP endpoint")

	return cmd
}

func (c *ServeCommander) run(cmd *cobra.Command) error {
	rt, err := cmdutil.NewRuntime(cmd, []string{
		config.FlagAPIListen,
		config.FlagMemoryDir,
	})
	if err != nil {
		return err
	}
	defer rt.Close()

	// Watch the store directory so external edits to the markdown files
	// invalidate the entry cache.
	stopWatch, err := rt.Engine.Store().Watch()
	if err != nil {
		rt.Logger.Warn("store watcher unavailable", zap.Error(err))
	} else {
		defer stopWatch()
	}

	pool, err := worker.NewPool(&worker.Config{
		Engine: rt.Engine,
		Logger: rt.Logger,
	})
	if err != nil {
		return fmt.Errorf("creating worker pool: %w", err)
	}
	defer pool.Close()

	summarizer, err := summary.NewSummarizer(summary.Config{
		Store:  rt.Engine.Store(),
		Logger: rt.Logger,
	})
	if err != nil {
		return fmt.Errorf("creating summarizer: %w", err)
	}

	deps := api.Deps{
		Pool:       pool,
		Summarizer: summarizer,
	}

	if rt.Viper.GetBool("flush.enabled") {
		deps.Flush = flush.NewManager(flush.Config{
			Enabled:              true,
			ContextWindow:        rt.Viper.GetInt("flush.context_window"),
			CompressionThreshold: rt.Viper.GetFloat64("flush.compression_threshold"),
			SoftThresholdTokens:  rt.Viper.GetInt("flush.soft_threshold_tokens"),
		})
	}

	if !c.noMCP {
		mcpServer, err := mcp.NewServer(mcp.Config{
			Engine: rt.Engine,
			Logger: rt.Logger,
		})
		if err != nil {
			return fmt.Errorf("creating MCP server: %w", err)
		}
		deps.MCPHandler = mcpServer.Handler()
	}

	listen := rt.Viper.GetString("api.listen")
	server := api.NewServer(api.Config{ListenAddr: listen}, rt.Engine, deps, rt.Logger)

	rt.Logger.Info("starting recall server",
		zap.String("listen", listen),
		zap.String("store", rt.Engine.Store().Dir()),
		zap.Bool("mcp", !c.noMCP),
	)

	errChan := make(chan error, 1)
	go func() {
		if err := server.Run(); err != nil {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		rt.Logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		return server.Shutdown()
	}
}
