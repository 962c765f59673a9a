package config

import (
	"fmt"
	"strconv"
)

// Config represents the persistent recall configuration stored as config.toml
// in the .recall/ directory. The TOML layout uses sections for logical grouping.
type Config struct {
	Version   int             `toml:"version"`
	Workspace WorkspaceConfig `toml:"workspace"`
	API       APIConfig       `toml:"api"`
	Memory    MemoryConfig    `toml:"memory"`
	Events    EventsConfig    `toml:"events"`
	Flush     FlushConfig     `toml:"flush"`
}

// WorkspaceConfig holds storage location settings.
type WorkspaceConfig struct {
	// Dir overrides the memory store directory. Empty means
	// <dotdir>/memory.
	Dir string `toml:"dir,omitempty"`
}

// APIConfig holds API server settings.
type APIConfig struct {
	Listen string `toml:"listen,omitempty"`
}

// MemoryConfig holds the engine policy knobs.
type MemoryConfig struct {
	DedupThreshold       float64 `toml:"dedup_threshold,omitempty"`
	DedupRecentDays      int     `toml:"dedup_recent_days,omitempty"`
	DailyRetentionDays   int     `toml:"daily_retention_days,omitempty"`
	SummaryRetentionDays int     `toml:"summary_retention_days,omitempty"`
	ContextLines         int     `toml:"context_lines,omitempty"`
}

// EventsConfig holds eventstream publisher settings.
type EventsConfig struct {
	// Provider selects the publisher: "nop" or "kafka".
	Provider string `toml:"provider,omitempty"`

	// Brokers is a comma-separated list of Kafka bootstrap addresses.
	Brokers string `toml:"brokers,omitempty"`

	// Topic is the destination topic for capture events.
	Topic string `toml:"topic,omitempty"`
}

// FlushConfig holds the pre-compaction memory flush settings.
type FlushConfig struct {
	Enabled              bool    `toml:"enabled,omitempty"`
	ContextWindow        int     `toml:"context_window,omitempty"`
	CompressionThreshold float64 `toml:"compression_threshold,omitempty"`
	SoftThresholdTokens  int     `toml:"soft_threshold_tokens,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"workspace.dir": {
		get: func(c *Config) string { return c.Workspace.Dir },
		set: func(c *Config, v string) error { c.Workspace.Dir = v; return nil },
	},
	"api.listen": {
		get: func(c *Config) string { return c.API.Listen },
		set: func(c *Config, v string) error { c.API.Listen = v; return nil },
	},
	"memory.dedup_threshold": {
		get: func(c *Config) string {
			if c.Memory.DedupThreshold == 0 {
				return ""
			}
			return strconv.FormatFloat(c.Memory.DedupThreshold, 'f', -1, 64)
		},
		set: func(c *Config, v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("invalid value for memory.dedup_threshold: %w", err)
			}
			if f <= 0 || f > 1 {
				return fmt.Errorf("memory.dedup_threshold must be in (0, 1], got %v", f)
			}
			c.Memory.DedupThreshold = f
			return nil
		},
	},
	"memory.dedup_recent_days": {
		get: func(c *Config) string { return intKey(c.Memory.DedupRecentDays) },
		set: func(c *Config, v string) error {
			return setIntKey(&c.Memory.DedupRecentDays, "memory.dedup_recent_days", v)
		},
	},
	"memory.daily_retention_days": {
		get: func(c *Config) string { return intKey(c.Memory.DailyRetentionDays) },
		set: func(c *Config, v string) error {
			return setIntKey(&c.Memory.DailyRetentionDays, "memory.daily_retention_days", v)
		},
	},
	"memory.summary_retention_days": {
		get: func(c *Config) string { return intKey(c.Memory.SummaryRetentionDays) },
		set: func(c *Config, v string) error {
			return setIntKey(&c.Memory.SummaryRetentionDays, "memory.summary_retention_days", v)
		},
	},
	"memory.context_lines": {
		get: func(c *Config) string { return intKey(c.Memory.ContextLines) },
		set: func(c *Config, v string) error {
			return setIntKey(&c.Memory.ContextLines, "memory.context_lines", v)
		},
	},
	"events.provider": {
		get: func(c *Config) string { return c.Events.Provider },
		set: func(c *Config, v string) error {
			if v != "nop" && v != "kafka" {
				return fmt.Errorf("events.provider must be nop or kafka, got %q", v)
			}
			c.Events.Provider = v
			return nil
		},
	},
	"events.brokers": {
		get: func(c *Config) string { return c.Events.Brokers },
		set: func(c *Config, v string) error { c.Events.Brokers = v; return nil },
	},
	"events.topic": {
		get: func(c *Config) string { return c.Events.Topic },
		set: func(c *Config, v string) error { c.Events.Topic = v; return nil },
	},
	"flush.enabled": {
		get: func(c *Config) string { return strconv.FormatBool(c.Flush.Enabled) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid value for flush.enabled: %w", err)
			}
			c.Flush.Enabled = b
			return nil
		},
	},
	"flush.context_window": {
		get: func(c *Config) string { return intKey(c.Flush.ContextWindow) },
		set: func(c *Config, v string) error {
			return setIntKey(&c.Flush.ContextWindow, "flush.context_window", v)
		},
	},
	"flush.compression_threshold": {
		get: func(c *Config) string {
			if c.Flush.CompressionThreshold == 0 {
				return ""
			}
			return strconv.FormatFloat(c.Flush.CompressionThreshold, 'f', -1, 64)
		},
		set: func(c *Config, v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("invalid value for flush.compression_threshold: %w", err)
			}
			c.Flush.CompressionThreshold = f
			return nil
		},
	},
	"flush.soft_threshold_tokens": {
		get: func(c *Config) string { return intKey(c.Flush.SoftThresholdTokens) },
		set: func(c *Config, v string) error {
			return setIntKey(&c.Flush.SoftThresholdTokens, "flush.soft_threshold_tokens", v)
		},
	},
}

func intKey(v int) string {
	if v == 0 {
		return ""
	}

	return strconv.Itoa(v)
}

func setIntKey(target *int, key, v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", key, n)
	}

	*target = n

	return nil
}
