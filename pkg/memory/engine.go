package memory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/papercomputeco/recall/pkg/eventstream"
	"github.com/papercomputeco/recall/pkg/memory/store"
)

// Capture statuses returned by the engine.
const (
	StatusOK      = "ok"
	StatusSkipped = "skipped"
)

// Options are the engine's policy knobs. The dedup scope and threshold are
// calibration choices, not correctness constraints, so they are configurable
// rather than hard-coded.
type Options struct {
	// DedupThreshold is the keyword-overlap ratio at or above which a
	// candidate is rejected as a duplicate.
	DedupThreshold float64

	// DedupRecentDays is how many calendar days of daily files, counting
	// today, the dedup comparison window covers.
	DedupRecentDays int

	// DailyRetentionDays is the age in days past which daily files are
	// eligible for deletion.
	DailyRetentionDays int

	// SummaryRetentionDays is the age in days past which session summary
	// files are eligible for deletion.
	SummaryRetentionDays int

	// ContextLines is the default number of context lines on each side of
	// a search hit.
	ContextLines int
}

// DefaultOptions returns the engine defaults.
func DefaultOptions() Options {
	return Options{
		DedupThreshold:       0.70,
		DedupRecentDays:      2,
		DailyRetentionDays:   30,
		SummaryRetentionDays: 90,
		ContextLines:         3,
	}
}

// Config assembles an Engine.
type Config struct {
	// Store is the tiered file store the engine owns.
	Store *store.Store

	// Options are the policy knobs; zero fields fall back to defaults.
	Options Options

	// Clock supplies the current time. Injected so retention math and file
	// keys are testable with a fixed date; defaults to time.Now.
	Clock func() time.Time

	// Publisher, when set, receives a MemoryCapturedEvent after each
	// successful append. Publish failures are logged, never propagated.
	Publisher eventstream.Publisher

	// Logger is the configured zap logger.
	Logger *zap.Logger
}

// Engine is the memory capture, classification, deduplication, retrieval,
// and retention engine.
type Engine struct {
	store     *store.Store
	opts      Options
	clock     func() time.Time
	publisher eventstream.Publisher
	logger    *zap.Logger
}

// NewEngine validates the config and builds an engine.
func NewEngine(c Config) (*Engine, error) {
	if c.Store == nil {
		return nil, errors.New("store is required")
	}
	if c.Logger == nil {
		return nil, errors.New("logger is required")
	}

	defaults := DefaultOptions()
	if c.Options.DedupThreshold <= 0 {
		c.Options.DedupThreshold = defaults.DedupThreshold
	}
	if c.Options.DedupRecentDays <= 0 {
		c.Options.DedupRecentDays = defaults.DedupRecentDays
	}
	if c.Options.DailyRetentionDays <= 0 {
		c.Options.DailyRetentionDays = defaults.DailyRetentionDays
	}
	if c.Options.SummaryRetentionDays <= 0 {
		c.Options.SummaryRetentionDays = defaults.SummaryRetentionDays
	}
	if c.Options.ContextLines <= 0 {
		c.Options.ContextLines = defaults.ContextLines
	}

	if c.Clock == nil {
		c.Clock = time.Now
	}

	return &Engine{
		store:     c.Store,
		opts:      c.Options,
		clock:     c.Clock,
		publisher: c.Publisher,
		logger:    c.Logger,
	}, nil
}

// Store exposes the underlying file store for hosts that need raw access
// (e.g. the summarizer writes whole summary files).
func (e *Engine) Store() *store.Store {
	return e.store
}

// CaptureResult reports the outcome of one capture attempt.
type CaptureResult struct {
	Status   string   `json:"status"`
	Category Category `json:"category,omitempty"`
	Key      string   `json:"key,omitempty"`
	Line     int      `json:"line,omitempty"`
	Message  string   `json:"message"`
}

// Capture classifies (unless an explicit category is given), extracts
// keywords, checks the candidate against the dedup window, and appends the
// entry to today's daily file. An empty category string requests automatic
// classification; pass "none" to store manual content untagged.
func (e *Engine) Capture(ctx context.Context, content string, category string) (CaptureResult, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return CaptureResult{}, ValidationError{Field: "content", Reason: "must not be empty"}
	}

	var cat Category
	if category == "" {
		// Automatic path: the trigger table decides; unmatched text is
		// still stored, just untagged.
		cat, _ = Classify(content)
	} else {
		var err error
		cat, err = ParseCategory(category)
		if err != nil {
			return CaptureResult{}, err
		}
	}

	now := e.clock()

	if e.isDuplicate(ctx, ExtractKeywords(content), now) {
		e.logger.Debug("capture skipped as duplicate",
			zap.String("category", string(cat)),
		)
		return CaptureResult{
			Status:   StatusSkipped,
			Category: cat,
			Message:  "memory already stored, skipped",
		}, nil
	}

	key := store.DailyKey(now)

	tag := ""
	if cat.Tagged() {
		tag = string(cat)
	}

	line, err := e.store.Append(ctx, store.TierDaily, key, tag, content, now)
	if err != nil {
		return CaptureResult{}, fmt.Errorf("appending memory: %w", err)
	}

	e.logger.Info("memory captured",
		zap.String("key", key),
		zap.String("category", string(cat)),
		zap.Int("line", line),
	)

	e.publishCapture(ctx, store.TierDaily, key, cat, content, line, now)

	return CaptureResult{
		Status:   StatusOK,
		Category: cat,
		Key:      key,
		Line:     line,
		Message:  "memory stored",
	}, nil
}

// Promote appends content to the long-term file under a subject header.
// Long-term memory is never purged, so this is the durability escalation
// path for knowledge that must outlive the daily retention window.
func (e *Engine) Promote(ctx context.Context, subject, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return ValidationError{Field: "content", Reason: "must not be empty"}
	}

	if err := e.store.AppendSubject(ctx, subject, content); err != nil {
		return fmt.Errorf("promoting to long-term memory: %w", err)
	}

	e.logger.Info("memory promoted to long-term", zap.String("subject", subject))

	return nil
}

// publishCapture emits a capture event if a publisher is configured.
// Best-effort: a failed publish never fails the capture.
func (e *Engine) publishCapture(ctx context.Context, tier store.Tier, key string, cat Category, content string, line int, at time.Time) {
	if e.publisher == nil {
		return
	}

	event := eventstream.NewMemoryCapturedEvent(
		tier.String(), key, string(cat), content, line, at,
	)
	if err := e.publisher.PublishCapture(ctx, event); err != nil {
		e.logger.Warn("failed to publish capture event",
			zap.String("event_id", event.EventID),
			zap.Error(err),
		)
	}
}

// FileEntry is one row of a List result.
type FileEntry struct {
	Tier      string    `json:"tier"`
	Key       string    `json:"key"`
	Date      time.Time `json:"date,omitzero"`
	Preview   string    `json:"preview"`
	SizeBytes int64     `json:"size_bytes"`
}

// List enumerates stored memory files, most recent first with the long-term
// file leading. With a category filter, only files containing at least one
// entry carrying that bracketed tag are returned.
func (e *Engine) List(ctx context.Context, categoryFilter string) ([]FileEntry, error) {
	var filter Category
	if categoryFilter != "" {
		cat, err := ParseCategory(categoryFilter)
		if err != nil {
			return nil, err
		}
		if !cat.Tagged() {
			return nil, ValidationError{Field: "category", Reason: "filtering requires a taggable category"}
		}
		filter = cat
	}

	infos, err := e.store.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]FileEntry, 0, len(infos))
	for _, info := range infos {
		if filter != "" {
			entries, err := e.store.Entries(ctx, info.Tier, info.Key)
			if err != nil {
				e.logger.Warn("skipping unreadable file in list",
					zap.String("key", info.Key),
					zap.Error(err),
				)
				continue
			}
			if !anyTagged(entries, filter) {
				continue
			}
		}

		result = append(result, FileEntry{
			Tier:      info.Tier.String(),
			Key:       info.Key,
			Date:      info.Date,
			Preview:   info.Preview,
			SizeBytes: info.SizeBytes,
		})
	}

	return result, nil
}

func anyTagged(entries []store.Entry, cat Category) bool {
	for _, entry := range entries {
		if entry.Tag == string(cat) {
			return true
		}
	}

	return false
}

// GetResult is the raw content of one memory file, optionally restricted to
// a line range.
type GetResult struct {
	Key     string    `json:"key"`
	Tier    string    `json:"tier"`
	Date    time.Time `json:"date,omitzero"`
	Content string    `json:"content"`
}

// Get resolves a bare key (date, date-slug, or the reserved long-term key)
// to its file and returns the requested inclusive line range, or the whole
// file when start and end are zero.
func (e *Engine) Get(ctx context.Context, key string, start, end int) (GetResult, error) {
	tier, key, err := store.ResolveKey(key)
	if err != nil {
		return GetResult{}, ValidationError{Field: "key", Reason: err.Error()}
	}

	lines, err := e.store.ReadRange(ctx, tier, key, start, end)
	if err != nil {
		var badRange store.ErrInvalidRange
		if errors.As(err, &badRange) {
			return GetResult{}, ValidationError{Field: "range", Reason: badRange.Error()}
		}
		return GetResult{}, err
	}

	date, _ := store.KeyDate(tier, key)

	return GetResult{
		Key:     key,
		Tier:    tier.String(),
		Date:    date,
		Content: strings.Join(lines, "\n"),
	}, nil
}

// Stats summarizes the store: file counts, total size, and entry counts per
// category gathered by scanning bracketed tags across every tier.
type Stats struct {
	TotalFiles       int            `json:"total_files"`
	DailyFiles       int            `json:"daily_files"`
	SummaryFiles     int            `json:"summary_files"`
	TotalSizeBytes   int64          `json:"total_size_bytes"`
	CountsByCategory map[string]int `json:"counts_by_category"`
}

// Stats computes store-wide statistics.
func (e *Engine) Stats(ctx context.Context) (Stats, error) {
	infos, err := e.store.List(ctx)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{CountsByCategory: make(map[string]int, len(Categories))}
	for _, cat := range Categories {
		stats.CountsByCategory[string(cat)] = 0
	}

	for _, info := range infos {
		stats.TotalFiles++
		stats.TotalSizeBytes += info.SizeBytes

		switch info.Tier {
		case store.TierDaily:
			stats.DailyFiles++
		case store.TierSessionSummary:
			stats.SummaryFiles++
		}

		entries, err := e.store.Entries(ctx, info.Tier, info.Key)
		if err != nil {
			e.logger.Warn("skipping unreadable file in stats",
				zap.String("key", info.Key),
				zap.Error(err),
			)
			continue
		}
		for _, entry := range entries {
			if entry.Tag != "" {
				stats.CountsByCategory[entry.Tag]++
			}
		}
	}

	return stats, nil
}
