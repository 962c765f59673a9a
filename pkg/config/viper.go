package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/papercomputeco/recall/pkg/dotdir"
)

// InitViper creates and returns a configured *viper.Viper.
// It sets defaults from NewDefaultConfig(), reads the config.toml file
// (if found via dotdir resolution), and binds environment variables
// with the RECALL_ prefix.
//
// Config precedence (highest to lowest):
//  1. CLI flags (once bound via BindRegisteredFlags)
//  2. Environment variables (RECALL_API_LISTEN, RECALL_WORKSPACE_DIR, etc.)
//  3. config.toml file values
//  4. Defaults from NewDefaultConfig()
func InitViper(configDir string) (*viper.Viper, error) {
	v := viper.New()

	// 1. Register all defaults from NewDefaultConfig().
	setViperDefaults(v)

	// 2. Config file discovery via dotdir resolution.
	v.SetConfigName("config")
	v.SetConfigType("toml")

	ddm := dotdir.NewManager()
	target, err := ddm.Target(configDir)
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}

	if target != "" {
		v.AddConfigPath(target)
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found errors are fine, defaults will apply.
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	// 3. Environment variables: RECALL_API_LISTEN, RECALL_EVENTS_BROKERS, etc.
	v.SetEnvPrefix("RECALL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// setViperDefaults registers defaults from NewDefaultConfig() into viper
// using dotted-key notation. This keeps defaults.go as the single source of truth.
func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("version", d.Version)

	// Workspace
	v.SetDefault("workspace.dir", d.Workspace.Dir)

	// API
	v.SetDefault("api.listen", d.API.Listen)

	// Memory engine
	v.SetDefault("memory.dedup_threshold", d.Memory.DedupThreshold)
	v.SetDefault("memory.dedup_recent_days", d.Memory.DedupRecentDays)
	v.SetDefault("memory.daily_retention_days", d.Memory.DailyRetentionDays)
	v.SetDefault("memory.summary_retention_days", d.Memory.SummaryRetentionDays)
	v.SetDefault("memory.context_lines", d.Memory.ContextLines)

	// Events
	v.SetDefault("events.provider", d.Events.Provider)
	v.SetDefault("events.brokers", d.Events.Brokers)
	v.SetDefault("events.topic", d.Events.Topic)

	// Flush
	v.SetDefault("flush.enabled", d.Flush.Enabled)
	v.SetDefault("flush.context_window", d.Flush.ContextWindow)
	v.SetDefault("flush.compression_threshold", d.Flush.CompressionThreshold)
	v.SetDefault("flush.soft_threshold_tokens", d.Flush.SoftThresholdTokens)
}
