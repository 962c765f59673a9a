// Package cmdutil assembles the memory engine and its dependencies from the
// viper configuration chain for recall CLI commands.
package cmdutil

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/papercomputeco/recall/pkg/config"
	"github.com/papercomputeco/recall/pkg/dotdir"
	"github.com/papercomputeco/recall/pkg/eventstream"
	kafkastream "github.com/papercomputeco/recall/pkg/eventstream/kafka"
	"github.com/papercomputeco/recall/pkg/eventstream/nop"
	"github.com/papercomputeco/recall/pkg/logger"
	"github.com/papercomputeco/recall/pkg/memory"
	"github.com/papercomputeco/recall/pkg/memory/store"
)

// Runtime bundles the engine and the components it was assembled from so
// commands can run queries and shut everything down afterwards.
type Runtime struct {
	Engine    *memory.Engine
	Publisher eventstream.Publisher
	Viper     *viper.Viper
	Logger    *zap.Logger
}

// NewRuntime builds a Runtime for a command. Flags named in boundFlags are
// bound into the viper precedence chain (flag > env > config file > default)
// before any values are read.
func NewRuntime(cmd *cobra.Command, boundFlags []string) (*Runtime, error) {
	debug, err := cmd.Flags().GetBool("debug")
	if err != nil {
		return nil, fmt.Errorf("could not get debug flag: %v", err)
	}

	log := logger.NewLogger(debug)

	configDir, _ := cmd.Flags().GetString("config-dir")

	v, err := config.InitViper(configDir)
	if err != nil {
		return nil, err
	}
	config.BindRegisteredFlags(v, cmd, config.Flags, boundFlags)

	dir := v.GetString("workspace.dir")
	if dir == "" {
		dir, err = dotdir.NewManager().MemoryDir(configDir)
		if err != nil {
			return nil, err
		}
	}

	st, err := store.NewStore(dir, log)
	if err != nil {
		return nil, fmt.Errorf("opening memory store: %w", err)
	}

	pub, err := newPublisher(v, log)
	if err != nil {
		return nil, err
	}

	engine, err := memory.NewEngine(memory.Config{
		Store: st,
		Options: memory.Options{
			DedupThreshold:       v.GetFloat64("memory.dedup_threshold"),
			DedupRecentDays:      v.GetInt("memory.dedup_recent_days"),
			DailyRetentionDays:   v.GetInt("memory.daily_retention_days"),
			SummaryRetentionDays: v.GetInt("memory.summary_retention_days"),
			ContextLines:         v.GetInt("memory.context_lines"),
		},
		Publisher: pub,
		Logger:    log,
	})
	if err != nil {
		return nil, err
	}

	return &Runtime{
		Engine:    engine,
		Publisher: pub,
		Viper:     v,
		Logger:    log,
	}, nil
}

// Close releases the runtime's resources.
func (r *Runtime) Close() {
	if err := r.Publisher.Close(); err != nil {
		r.Logger.Warn("closing event publisher", zap.Error(err))
	}
	_ = r.Logger.Sync()
}

// newPublisher selects the capture event publisher from config.
func newPublisher(v *viper.Viper, log *zap.Logger) (eventstream.Publisher, error) {
	switch provider := v.GetString("events.provider"); provider {
	case "", "nop":
		return nop.NewPublisher(), nil

	case "kafka":
		brokers := strings.Split(v.GetString("events.brokers"), ",")
		for i := range brokers {
			brokers[i] = strings.TrimSpace(brokers[i])
		}

		return kafkastream.NewPublisher(kafkastream.Config{
			Brokers: brokers,
			Topic:   v.GetString("events.topic"),
			Logger:  log,
		})

	default:
		return nil, fmt.Errorf("unknown events provider: %q (available: nop, kafka)", provider)
	}
}
