package store

import (
	"context"
	"errors"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"
)

// Entry is one parsed memory list line from a stored file.
type Entry struct {
	// Line is the 1-based position within the file.
	Line int `json:"line"`

	// Tag is the bracketed category tag, empty for untagged entries.
	Tag string `json:"tag,omitempty"`

	// Content is the literal entry text after the tag.
	Content string `json:"content"`
}

// entryLineRe matches a memory list line: "- [tag] content" or "- content".
var entryLineRe = regexp.MustCompile(`^- (?:\[([a-z]+)\] )?(.+)$`)

// Entries parses the memory list lines of the (tier, key) file. A missing
// file yields no entries rather than an error: an absent file and an empty
// file mean the same thing to dedup and stats.
//
// Parses are cached keyed on file size and mtime, so edits to the underlying
// file — files are human-editable — are picked up on the next call.
func (s *Store) Entries(ctx context.Context, tier Tier, key string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ValidateKey(tier, key); err != nil {
		return nil, err
	}

	name := Filename(tier, key)
	path := s.path(tier, key)

	stat, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	if entries, ok := s.cache.get(name, stat.Size(), stat.ModTime()); ok {
		return entries, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	entries := parseEntries(string(data))
	s.cache.put(name, stat.Size(), stat.ModTime(), entries)

	return entries, nil
}

func parseEntries(content string) []Entry {
	var entries []Entry

	for i, line := range splitLines(content) {
		m := entryLineRe.FindStringSubmatch(strings.TrimRight(line, " \t"))
		if m == nil {
			continue
		}

		entries = append(entries, Entry{
			Line:    i + 1,
			Tag:     m[1],
			Content: m[2],
		})
	}

	return entries
}

// entryCache memoizes parsed entries per filename, keyed on the file's size
// and modification time so stale parses are never served.
type entryCache struct {
	mu    sync.Mutex
	byKey map[string]cachedEntries
}

type cachedEntries struct {
	size    int64
	modTime time.Time
	entries []Entry
}

func newEntryCache() *entryCache {
	return &entryCache{byKey: make(map[string]cachedEntries)}
}

func (c *entryCache) get(name string, size int64, modTime time.Time) ([]Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cached, ok := c.byKey[name]
	if !ok || cached.size != size || !cached.modTime.Equal(modTime) {
		return nil, false
	}

	return cached.entries, true
}

func (c *entryCache) put(name string, size int64, modTime time.Time, entries []Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.byKey[name] = cachedEntries{size: size, modTime: modTime, entries: entries}
}

func (c *entryCache) invalidate(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.byKey, name)
}
