package config

const (
	defaultAPIListen = ":8091"

	defaultDedupThreshold       = 0.70
	defaultDedupRecentDays      = 2
	defaultDailyRetentionDays   = 30
	defaultSummaryRetentionDays = 90
	defaultContextLines         = 3

	defaultEventsProvider = "nop"
	defaultEventsTopic    = "recall.memory.captured"

	defaultFlushContextWindow        = 128000
	defaultFlushCompressionThreshold = 0.8
	defaultFlushSoftThresholdTokens  = 4000
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		API: APIConfig{
			Listen: defaultAPIListen,
		},
		Memory: MemoryConfig{
			DedupThreshold:       defaultDedupThreshold,
			DedupRecentDays:      defaultDedupRecentDays,
			DailyRetentionDays:   defaultDailyRetentionDays,
			SummaryRetentionDays: defaultSummaryRetentionDays,
			ContextLines:         defaultContextLines,
		},
		Events: EventsConfig{
			Provider: defaultEventsProvider,
			Topic:    defaultEventsTopic,
		},
		Flush: FlushConfig{
			Enabled:              true,
			ContextWindow:        defaultFlushContextWindow,
			CompressionThreshold: defaultFlushCompressionThreshold,
			SoftThresholdTokens:  defaultFlushSoftThresholdTokens,
		},
	}
}
