package memory

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/papercomputeco/recall/pkg/memory/store"
)

// Match is one contiguous block of context around keyword hits in a file.
type Match struct {
	// File is the filename the match came from.
	File string `json:"file"`

	// Key is the tier key of the file.
	Key string `json:"key"`

	// Line is the absolute 1-based line number of the first keyword hit
	// in the block.
	Line int `json:"line"`

	// StartLine and EndLine bound the context block, inclusive.
	StartLine int `json:"start_line"`
	EndLine   int `json:"end_line"`

	// Excerpt is the block's text with line-number gutters.
	Excerpt string `json:"excerpt"`
}

// Search scans stored memory files for a case-insensitive substring match,
// returning each hit with contextLines lines of surrounding text on each
// side (fewer at file boundaries). Results are ordered by file recency —
// long-term first, then dated files newest first — and by ascending line
// number within a file. Overlapping or adjacent context windows in the same
// file are merged into one block; every keyword hit is preserved.
//
// Unreadable files are skipped, not fatal: memory files are human-editable
// and the rest of the store should still be searchable.
func (e *Engine) Search(ctx context.Context, keyword string, contextLines int) ([]Match, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, ValidationError{Field: "keyword", Reason: "must not be empty"}
	}
	if contextLines < 0 {
		return nil, ValidationError{Field: "contextLines", Reason: "must not be negative"}
	}
	if contextLines == 0 {
		contextLines = e.opts.ContextLines
	}

	infos, err := e.store.List(ctx)
	if err != nil {
		return nil, err
	}

	var matches []Match
	for _, info := range infos {
		content, err := e.store.ReadFile(ctx, info.Tier, info.Key)
		if err != nil {
			e.logger.Warn("skipping unreadable file in search",
				zap.String("key", info.Key),
				zap.Error(err),
			)
			continue
		}

		matches = append(matches, matchFile(info, content, keyword, contextLines)...)
	}

	return matches, nil
}

// matchFile finds the keyword hits in one file and builds merged context
// blocks around them.
func matchFile(info store.FileInfo, content, keyword string, contextLines int) []Match {
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	needle := strings.ToLower(keyword)

	// 0-based indexes of lines containing the keyword.
	var hits []int
	for i, line := range lines {
		if strings.Contains(strings.ToLower(line), needle) {
			hits = append(hits, i)
		}
	}
	if len(hits) == 0 {
		return nil
	}

	filename := store.Filename(info.Tier, info.Key)

	var matches []Match
	blockStart, blockEnd := -1, -1
	firstHit := -1

	flush := func() {
		var b strings.Builder
		for i := blockStart; i <= blockEnd; i++ {
			fmt.Fprintf(&b, "%4d | %s\n", i+1, lines[i])
		}

		matches = append(matches, Match{
			File:      filename,
			Key:       info.Key,
			Line:      firstHit + 1,
			StartLine: blockStart + 1,
			EndLine:   blockEnd + 1,
			Excerpt:   strings.TrimSuffix(b.String(), "\n"),
		})
	}

	for _, hit := range hits {
		start := max(0, hit-contextLines)
		end := min(len(lines)-1, hit+contextLines)

		if blockStart == -1 {
			blockStart, blockEnd, firstHit = start, end, hit
			continue
		}

		// Merge windows that overlap or touch the current block.
		if start <= blockEnd+1 {
			blockEnd = end
			continue
		}

		flush()
		blockStart, blockEnd, firstHit = start, end, hit
	}
	flush()

	return matches
}
