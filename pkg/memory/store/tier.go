package store

import (
	"regexp"
	"strings"
	"time"
)

// Tier is one of the three storage categories with distinct retention rules.
type Tier int

const (
	// TierDaily holds one append-only file per calendar date.
	TierDaily Tier = iota

	// TierLongTerm holds the single never-purged long-term file.
	TierLongTerm

	// TierSessionSummary holds one file per summarized conversation,
	// keyed by date plus a short slug.
	TierSessionSummary
)

func (t Tier) String() string {
	switch t {
	case TierDaily:
		return "daily"
	case TierLongTerm:
		return "longterm"
	case TierSessionSummary:
		return "summary"
	default:
		return "unknown"
	}
}

// LongTermKey is the reserved key (and filename stem) of the long-term file.
const LongTermKey = "MEMORY"

// dateLayout is the calendar-date form used in daily keys and headers.
const dateLayout = "2006-01-02"

var (
	dailyKeyRe   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	summaryKeyRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-([a-z0-9][a-z0-9-]*)$`)
)

// DailyKey derives the daily-tier key for a point in time.
func DailyKey(at time.Time) string {
	return at.Format(dateLayout)
}

// SummaryKey derives the session-summary key for a date and slug.
func SummaryKey(at time.Time, slug string) string {
	return at.Format(dateLayout) + "-" + slug
}

// Filename maps a (tier, key) pair to its deterministic filename. The
// encoding needs no auxiliary index: a date is a daily file, a date plus
// slug is a summary, and the reserved MEMORY stem is the long-term file.
func Filename(tier Tier, key string) string {
	if tier == TierLongTerm {
		return LongTermKey + ".md"
	}

	return key + ".md"
}

// ValidateKey checks that a key has the shape its tier requires.
func ValidateKey(tier Tier, key string) error {
	switch tier {
	case TierDaily:
		if !dailyKeyRe.MatchString(key) {
			return ErrInvalidKey{Key: key, Reason: "daily keys are calendar dates (YYYY-MM-DD)"}
		}
		if _, err := time.Parse(dateLayout, key); err != nil {
			return ErrInvalidKey{Key: key, Reason: "not a real calendar date"}
		}
	case TierLongTerm:
		if key != LongTermKey {
			return ErrInvalidKey{Key: key, Reason: "the long-term tier has the single reserved key " + LongTermKey}
		}
	case TierSessionSummary:
		if !summaryKeyRe.MatchString(key) {
			return ErrInvalidKey{Key: key, Reason: "summary keys are YYYY-MM-DD-slug"}
		}
	default:
		return ErrInvalidKey{Key: key, Reason: "unknown tier"}
	}

	return nil
}

// ResolveKey classifies a bare key (optionally carrying a .md suffix) into
// its tier. Keys that fit no tier shape are rejected so that lookups never
// escape the store directory.
func ResolveKey(key string) (Tier, string, error) {
	key = strings.TrimSuffix(key, ".md")

	switch {
	case key == LongTermKey:
		return TierLongTerm, key, nil
	case dailyKeyRe.MatchString(key):
		if _, err := time.Parse(dateLayout, key); err != nil {
			return 0, "", ErrInvalidKey{Key: key, Reason: "not a real calendar date"}
		}
		return TierDaily, key, nil
	case summaryKeyRe.MatchString(key):
		return TierSessionSummary, key, nil
	default:
		return 0, "", ErrInvalidKey{Key: key, Reason: "not a date, date-slug, or the reserved " + LongTermKey + " key"}
	}
}

// KeyDate extracts the calendar date encoded in a daily or summary key.
// The second return value is false for the long-term key, which has no date.
func KeyDate(tier Tier, key string) (time.Time, bool) {
	switch tier {
	case TierDaily:
		d, err := time.Parse(dateLayout, key)
		return d, err == nil
	case TierSessionSummary:
		m := summaryKeyRe.FindStringSubmatch(key)
		if m == nil {
			return time.Time{}, false
		}
		d, err := time.Parse(dateLayout, m[1])
		return d, err == nil
	default:
		return time.Time{}, false
	}
}
