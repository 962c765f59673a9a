package memory

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/papercomputeco/recall/pkg/memory/store"
)

// CleanupResult summarizes a retention pass: the keys actually deleted and
// the keys that failed and were skipped. Cleanup is best-effort by design —
// one failed deletion never aborts the rest.
type CleanupResult struct {
	DeletedKeys []string `json:"deleted_keys"`
	SkippedKeys []string `json:"skipped_keys,omitempty"`
}

// Cleanup deletes daily files strictly older than dailyDays and session
// summary files strictly older than summaryDays. Zero or negative arguments
// fall back to the configured defaults. The long-term file and today's
// daily file are never deleted, regardless of thresholds. Deletion takes
// the same per-file lock as append, so cleanup cannot race an in-flight
// capture to the same file.
func (e *Engine) Cleanup(ctx context.Context, dailyDays, summaryDays int) (CleanupResult, error) {
	if dailyDays <= 0 {
		dailyDays = e.opts.DailyRetentionDays
	}
	if summaryDays <= 0 {
		summaryDays = e.opts.SummaryRetentionDays
	}

	now := e.clock()
	todayKey := store.DailyKey(now)

	// File-key dates parse as UTC midnights, so the cutoffs are anchored
	// to the same representation of today's calendar date.
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	dailyCutoff := today.AddDate(0, 0, -dailyDays)
	summaryCutoff := today.AddDate(0, 0, -summaryDays)

	infos, err := e.store.List(ctx, store.TierDaily, store.TierSessionSummary)
	if err != nil {
		return CleanupResult{}, err
	}

	result := CleanupResult{DeletedKeys: []string{}}
	for _, info := range infos {
		date, ok := store.KeyDate(info.Tier, info.Key)
		if !ok {
			continue
		}

		var expired bool
		switch info.Tier {
		case store.TierDaily:
			expired = info.Key != todayKey && date.Before(dailyCutoff)
		case store.TierSessionSummary:
			expired = date.Before(summaryCutoff)
		}
		if !expired {
			continue
		}

		if err := e.store.Remove(ctx, info.Tier, info.Key); err != nil {
			e.logger.Warn("cleanup skipped file",
				zap.String("key", info.Key),
				zap.Error(err),
			)
			result.SkippedKeys = append(result.SkippedKeys, info.Key)
			continue
		}

		e.logger.Info("cleanup deleted expired memory file",
			zap.String("tier", info.Tier.String()),
			zap.String("key", info.Key),
		)
		result.DeletedKeys = append(result.DeletedKeys, info.Key)
	}

	return result, nil
}
