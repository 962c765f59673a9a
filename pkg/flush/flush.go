// Package flush decides when an agent should be prompted to save memories
// before its context window is compacted. Without the flush turn, anything
// the agent learned late in a long conversation is lost to compression
// before it reaches durable storage.
package flush

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

const (
	defaultContextWindow        = 128000
	defaultCompressionThreshold = 0.8
	defaultSoftThresholdTokens  = 4000
)

// Config holds the flush trigger settings.
type Config struct {
	// ContextWindow is the model's context window in tokens.
	ContextWindow int

	// CompressionThreshold is the fraction of the window at which the
	// host compresses context.
	CompressionThreshold float64

	// SoftThresholdTokens is how many tokens before the compression point
	// the flush fires.
	SoftThresholdTokens int

	// Enabled turns the trigger on.
	Enabled bool
}

// Manager tracks whether the one-per-session flush turn has fired.
// Safe for concurrent use.
type Manager struct {
	config Config

	mu        sync.Mutex
	triggered bool
}

// NewManager creates a flush manager, filling zero config fields with
// defaults.
func NewManager(c Config) *Manager {
	if c.ContextWindow <= 0 {
		c.ContextWindow = defaultContextWindow
	}
	if c.CompressionThreshold <= 0 {
		c.CompressionThreshold = defaultCompressionThreshold
	}
	if c.SoftThresholdTokens <= 0 {
		c.SoftThresholdTokens = defaultSoftThresholdTokens
	}

	return &Manager{config: c}
}

// TriggerPoint is the token count at which the flush fires.
func (m *Manager) TriggerPoint() int {
	return int(float64(m.config.ContextWindow)*m.config.CompressionThreshold) - m.config.SoftThresholdTokens
}

// ShouldFlush reports whether the flush turn should fire at the given token
// count. It fires at most once per session; Reset re-arms it.
func (m *Manager) ShouldFlush(currentTokens int) bool {
	if !m.config.Enabled {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.triggered || currentTokens < m.TriggerPoint() {
		return false
	}

	m.triggered = true

	return true
}

// Prompt returns the silent-turn prompt asking the agent to persist
// anything worth keeping. The date names today's daily memory file.
func (m *Manager) Prompt(now time.Time) string {
	return fmt.Sprintf(`Pre-compaction memory flush.

The conversation context is about to be compressed. Please save any important memories now.

Guidelines:
- Use memory_capture to save notable facts, decisions, or user preferences to memory/%s.md
- Promote information that should persist across all sessions to long-term memory
- Focus on information that would be valuable for future conversations

If nothing important needs to be stored, reply with exactly: [SILENT]`, now.Format("2006-01-02"))
}

// IsSilent reports whether a response is the silent marker and should not
// be surfaced to the user.
func (m *Manager) IsSilent(response string) bool {
	return strings.TrimSpace(response) == "[SILENT]"
}

// Reset re-arms the trigger for a new session.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.triggered = false
}
