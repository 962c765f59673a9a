package memory

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/papercomputeco/recall/pkg/memory/store"
)

// isDuplicate checks a candidate keyword set against every entry in the
// bounded comparison window: the daily files of the most recent
// DedupRecentDays calendar days (today inclusive) plus the long-term file.
//
// The overlap ratio is relative to the candidate, not the union:
//
//	overlap = |candidate ∩ entry| / |candidate|
//
// which deliberately favors flagging short candidates fully contained in a
// longer existing entry. A candidate at or above the threshold against any
// entry in scope is a duplicate.
//
// Dedup never raises: an empty candidate set (all stop words) is never a
// duplicate, and files that cannot be read are skipped. Entry keywords are
// recomputed from stored content on every check so human edits to the files
// are respected.
func (e *Engine) isDuplicate(ctx context.Context, candidate map[string]struct{}, now time.Time) bool {
	if len(candidate) == 0 {
		return false
	}

	for _, scope := range e.dedupScope(now) {
		entries, err := e.store.Entries(ctx, scope.tier, scope.key)
		if err != nil {
			e.logger.Warn("skipping unreadable file in dedup scope",
				zap.String("key", scope.key),
				zap.Error(err),
			)
			continue
		}

		for _, entry := range entries {
			if overlapRatio(candidate, ExtractKeywords(entry.Content)) >= e.opts.DedupThreshold {
				return true
			}
		}
	}

	return false
}

type scopeFile struct {
	tier store.Tier
	key  string
}

// dedupScope lists the files the duplicate check compares against.
func (e *Engine) dedupScope(now time.Time) []scopeFile {
	scope := make([]scopeFile, 0, e.opts.DedupRecentDays+1)

	for i := range e.opts.DedupRecentDays {
		day := now.AddDate(0, 0, -i)
		scope = append(scope, scopeFile{tier: store.TierDaily, key: store.DailyKey(day)})
	}

	scope = append(scope, scopeFile{tier: store.TierLongTerm, key: store.LongTermKey})

	return scope
}

// overlapRatio is the fraction of candidate keywords present in the entry's
// keyword set.
func overlapRatio(candidate, entry map[string]struct{}) float64 {
	if len(candidate) == 0 {
		return 0
	}

	matched := 0
	for kw := range candidate {
		if _, ok := entry[kw]; ok {
			matched++
		}
	}

	return float64(matched) / float64(len(candidate))
}
