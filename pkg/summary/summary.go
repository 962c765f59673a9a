// Package summary generates session summary files: one markdown file per
// summarized conversation, keyed by date and a short slug derived from the
// conversation itself. Summaries live in the session-summary tier and age
// out under its retention window.
package summary

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/papercomputeco/recall/pkg/memory"
	"github.com/papercomputeco/recall/pkg/memory/store"
	"github.com/papercomputeco/recall/pkg/utils"
)

const (
	// defaultLastN is how many turns of the conversation tail feed the
	// excerpt.
	defaultLastN = 10

	// turnMaxLen truncates any single turn in the excerpt.
	turnMaxLen = 500

	// excerptMaxLen truncates the excerpt section of the summary file.
	excerptMaxLen = 500

	// slugMaxWords is how many keywords make up the slug.
	slugMaxWords = 3

	fallbackSlug = "conversation"
)

var slugWordRe = regexp.MustCompile(`\b[a-zA-Z]{3,}\b`)

// Config assembles a Summarizer.
type Config struct {
	// Store receives the generated summary files.
	Store *store.Store

	// Clock supplies the date in the summary key and front matter;
	// defaults to time.Now.
	Clock func() time.Time

	// Logger is the configured zap logger.
	Logger *zap.Logger
}

// Summarizer writes structured summaries of finished conversations.
type Summarizer struct {
	store  *store.Store
	clock  func() time.Time
	logger *zap.Logger
}

// NewSummarizer validates the config and builds a summarizer.
func NewSummarizer(c Config) (*Summarizer, error) {
	if c.Store == nil {
		return nil, errors.New("store is required")
	}
	if c.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if c.Clock == nil {
		c.Clock = time.Now
	}

	return &Summarizer{
		store:  c.Store,
		clock:  c.Clock,
		logger: c.Logger,
	}, nil
}

// Summarize builds and stores a summary of the conversation's last turns.
// Returns the session-summary key the file was stored under. Conversations
// with no user or assistant content produce no summary and an empty key.
func (s *Summarizer) Summarize(ctx context.Context, turns []memory.Turn, lastN int) (string, error) {
	if lastN <= 0 {
		lastN = defaultLastN
	}

	excerpt := buildExcerpt(turns, lastN)
	if excerpt == "" {
		return "", nil
	}

	now := s.clock()
	slug := Slug(excerpt)
	key := store.SummaryKey(now, slug)

	content := render(excerpt, now)

	if err := s.store.WriteFile(ctx, store.TierSessionSummary, key, content); err != nil {
		return "", fmt.Errorf("writing session summary: %w", err)
	}

	s.logger.Info("session summary stored",
		zap.String("key", key),
		zap.Int("turns", len(turns)),
	)

	return key, nil
}

// buildExcerpt flattens the last N user/assistant exchanges into labeled
// transcript lines.
func buildExcerpt(turns []memory.Turn, lastN int) string {
	var lines []string
	for _, turn := range turns {
		if (turn.Role != "user" && turn.Role != "assistant") || turn.Content == "" {
			continue
		}

		lines = append(lines, fmt.Sprintf("[%s]: %s",
			strings.ToUpper(turn.Role),
			utils.Truncate(turn.Content, turnMaxLen),
		))
	}

	if len(lines) > lastN*2 {
		lines = lines[len(lines)-lastN*2:]
	}

	return strings.Join(lines, "\n")
}

// Slug derives a short hyphenated label from conversation text: the top
// keywords by frequency, stop words excluded. Falls back to a generic slug
// when nothing significant survives (e.g. all-CJK text with no ASCII words).
func Slug(text string) string {
	counts := make(map[string]int)
	var order []string

	for _, word := range slugWordRe.FindAllString(strings.ToLower(text), -1) {
		if !memory.Significant(word) {
			continue
		}
		if counts[word] == 0 {
			order = append(order, word)
		}
		counts[word]++
	}

	if len(order) == 0 {
		return fallbackSlug
	}

	// Stable: frequency descending, first appearance as tiebreak.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > slugMaxWords {
		order = order[:slugMaxWords]
	}

	return strings.Join(order, "-")
}

// render produces the summary file: date/type front matter and the
// conversation excerpt.
func render(excerpt string, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "---\ndate: %s\ntype: session-summary\n---\n\n", now.Format("2006-01-02 15:04"))
	b.WriteString("# Session summary\n\n## Excerpt\n\n")
	b.WriteString(utils.Truncate(excerpt, excerptMaxLen))
	b.WriteString("\n")

	return b.String()
}
