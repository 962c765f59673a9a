package memory

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// minSentenceLen is the minimum rune count for a sentence to be considered;
// anything shorter is noise.
const minSentenceLen = 5

var (
	// sentenceSplitRe splits on CJK and Latin sentence terminators and on
	// newlines.
	sentenceSplitRe = regexp.MustCompile(`[。！？.!?]\s*|\n+`)

	// rolePrefixRe strips leading speaker labels from transcript lines.
	rolePrefixRe = regexp.MustCompile(`^(用户|我|你|assistant|user)[：:]\s*`)
)

// Turn is one message of a conversation handed to the engine for analysis.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CaptureText analyzes free text — typically one user turn — sentence by
// sentence and captures every sentence the trigger table marks as
// memory-worthy. Sentences no rule matches are not stored: the spontaneous
// path only keeps what a trigger fires on. Returns the results of the
// captures that were attempted, stored or skipped as duplicates.
func (e *Engine) CaptureText(ctx context.Context, text string) ([]CaptureResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Local set so one message repeating itself doesn't hit the store
	// twice before the file-backed dedup can see the first copy.
	seen := make(map[string]struct{})

	var results []CaptureResult
	for _, sentence := range sentenceSplitRe.Split(text, -1) {
		candidate := cleanSentence(sentence)
		if candidate == "" {
			continue
		}

		cat, matched := Classify(candidate)
		if !matched {
			continue
		}

		lowered := strings.ToLower(candidate)
		if _, dup := seen[lowered]; dup {
			continue
		}
		seen[lowered] = struct{}{}

		result, err := e.Capture(ctx, candidate, string(cat))
		if err != nil {
			e.logger.Warn("failed to store captured sentence",
				zap.String("category", string(cat)),
				zap.Error(err),
			)
			continue
		}

		results = append(results, result)
	}

	return results, nil
}

// CaptureConversation runs spontaneous capture over the user turns of a
// conversation. Assistant output is not analyzed: memories describe the
// user.
func (e *Engine) CaptureConversation(ctx context.Context, turns []Turn) ([]CaptureResult, error) {
	var results []CaptureResult

	for _, turn := range turns {
		if turn.Role != "user" || turn.Content == "" {
			continue
		}

		captured, err := e.CaptureText(ctx, turn.Content)
		if err != nil {
			return results, err
		}
		results = append(results, captured...)
	}

	return results, nil
}

// cleanSentence normalizes a candidate sentence: trims whitespace, strips
// speaker labels and surrounding quotes, and drops fragments too short to
// carry a memory.
func cleanSentence(s string) string {
	s = strings.TrimSpace(s)
	s = rolePrefixRe.ReplaceAllString(s, "")
	s = strings.Trim(s, `"'“”‘’`)
	s = strings.TrimSpace(s)

	if utf8.RuneCountInString(s) < minSentenceLen {
		return ""
	}

	return s
}
