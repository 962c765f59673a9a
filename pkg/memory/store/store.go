// Package store implements the tiered, append-only file storage for memory
// entries. Files are plain structured markdown: a top-level date header per
// calendar day, a timed subsection header per capture, and one list line per
// entry carrying its category tag in brackets. The long-term file uses
// free-form subject headers instead of date headers. The format is the
// on-disk contract — files are human-readable and human-editable.
package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/papercomputeco/recall/pkg/utils"
)

const (
	filePerm = 0o644
	dirPerm  = 0o755

	previewMaxLen = 100
)

// Store is the tiered markdown file store. A single Store instance owns the
// underlying directory; no cross-process coordination is attempted.
type Store struct {
	dir    string
	locks  *lockTable
	cache  *entryCache
	logger *zap.Logger
}

// FileInfo describes one stored memory file for listings.
type FileInfo struct {
	Tier      Tier      `json:"tier"`
	Key       string    `json:"key"`
	Date      time.Time `json:"date,omitzero"`
	Preview   string    `json:"preview"`
	SizeBytes int64     `json:"size_bytes"`
	ModTime   time.Time `json:"mod_time"`
}

// NewStore creates (if needed) and opens the store directory.
func NewStore(dir string, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	return &Store{
		dir:    dir,
		locks:  newLockTable(),
		cache:  newEntryCache(),
		logger: logger,
	}, nil
}

// Dir returns the directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(tier Tier, key string) string {
	return filepath.Join(s.dir, Filename(tier, key))
}

// Append writes one entry to the (tier, key) file, creating the file and its
// top-level header on first use and opening a timed subsection for this
// capture. The whole entry is buffered and written with a single write call,
// so readers never observe a half-written entry. Returns the 1-based line
// number the entry landed on.
func (s *Store) Append(ctx context.Context, tier Tier, key string, tag string, content string, at time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := ValidateKey(tier, key); err != nil {
		return 0, err
	}

	name := Filename(tier, key)
	lock := s.locks.get(name)
	lock.Lock()
	defer lock.Unlock()

	path := s.path(tier, key)

	existing, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return 0, fmt.Errorf("reading %s before append: %w", name, err)
	}

	var buf bytes.Buffer
	if len(existing) == 0 {
		if tier == TierLongTerm {
			buf.WriteString("# Long-term memory\n")
		} else {
			fmt.Fprintf(&buf, "# %s\n", key)
		}
	}
	fmt.Fprintf(&buf, "\n## %s\n\n", at.Format("15:04"))

	if tag != "" {
		fmt.Fprintf(&buf, "- [%s] %s\n", tag, content)
	} else {
		fmt.Fprintf(&buf, "- %s\n", content)
	}

	// The entry is the last line of the buffer being appended. A hand-edited
	// file may lack a trailing newline; the buffer's leading newline then
	// terminates that line instead of starting a new one.
	line := countLines(existing) + countLines(buf.Bytes())
	if len(existing) > 0 && existing[len(existing)-1] != '\n' {
		line--
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, filePerm)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()

	if _, err := f.Write(buf.Bytes()); err != nil {
		return 0, fmt.Errorf("appending to %s: %w", name, err)
	}

	s.cache.invalidate(name)

	return line, nil
}

// AppendSubject appends content to the long-term file under a free-form
// subject header. This is the promotion path: moving knowledge from a daily
// or session tier into the file that is never purged.
func (s *Store) AppendSubject(ctx context.Context, subject string, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(subject) == "" {
		subject = "Notes"
	}

	name := Filename(TierLongTerm, LongTermKey)
	lock := s.locks.get(name)
	lock.Lock()
	defer lock.Unlock()

	path := s.path(TierLongTerm, LongTermKey)

	existing, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("reading %s before append: %w", name, err)
	}

	var buf bytes.Buffer
	if len(existing) == 0 {
		buf.WriteString("# Long-term memory\n")
	}
	fmt.Fprintf(&buf, "\n## %s\n\n%s\n", subject, strings.TrimRight(content, "\n"))

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, filePerm)
	if err != nil {
		return fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()

	if _, err := f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("appending to %s: %w", name, err)
	}

	s.cache.invalidate(name)

	return nil
}

// WriteFile replaces the whole (tier, key) file. Session summaries are
// written this way: the summary is generated once and stored whole.
func (s *Store) WriteFile(ctx context.Context, tier Tier, key string, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ValidateKey(tier, key); err != nil {
		return err
	}

	name := Filename(tier, key)
	lock := s.locks.get(name)
	lock.Lock()
	defer lock.Unlock()

	if err := os.WriteFile(s.path(tier, key), []byte(content), filePerm); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}

	s.cache.invalidate(name)

	return nil
}

// ReadFile returns the raw content of the (tier, key) file.
func (s *Store) ReadFile(ctx context.Context, tier Tier, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := ValidateKey(tier, key); err != nil {
		return "", err
	}

	data, err := os.ReadFile(s.path(tier, key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotFound{Key: key}
		}
		return "", fmt.Errorf("reading %s: %w", Filename(tier, key), err)
	}

	return string(data), nil
}

// ReadRange returns the file's lines in the inclusive 1-based range
// [start, end]. A zero start means line 1; a zero end means the last line.
func (s *Store) ReadRange(ctx context.Context, tier Tier, key string, start, end int) ([]string, error) {
	content, err := s.ReadFile(ctx, tier, key)
	if err != nil {
		return nil, err
	}

	lines := splitLines(content)

	if start == 0 {
		start = 1
	}
	if end == 0 {
		end = len(lines)
	}
	if start < 1 || end < start || start > len(lines) {
		return nil, ErrInvalidRange{Start: start, End: end, Lines: len(lines)}
	}
	if end > len(lines) {
		end = len(lines)
	}

	return lines[start-1 : end], nil
}

// Exists reports whether the (tier, key) file is present.
func (s *Store) Exists(tier Tier, key string) bool {
	_, err := os.Stat(s.path(tier, key))
	return err == nil
}

// Remove deletes the (tier, key) file. It takes the same per-file lock as
// Append so deletion cannot race an in-flight capture to the same file.
func (s *Store) Remove(ctx context.Context, tier Tier, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ValidateKey(tier, key); err != nil {
		return err
	}

	name := Filename(tier, key)
	lock := s.locks.get(name)
	lock.Lock()
	defer lock.Unlock()

	if err := os.Remove(s.path(tier, key)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound{Key: key}
		}
		return fmt.Errorf("removing %s: %w", name, err)
	}

	s.cache.invalidate(name)

	return nil
}

// List enumerates stored files, optionally restricted to the given tiers.
// The long-term file sorts first; dated files follow, most recent first.
// Files in the directory that fit no tier shape are ad hoc human content and
// are skipped, not errors.
func (s *Store) List(ctx context.Context, tiers ...Tier) ([]FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("listing store directory: %w", err)
	}

	wanted := func(t Tier) bool {
		if len(tiers) == 0 {
			return true
		}
		for _, w := range tiers {
			if w == t {
				return true
			}
		}
		return false
	}

	infos := make([]FileInfo, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".md") {
			continue
		}

		tier, key, err := ResolveKey(de.Name())
		if err != nil {
			continue
		}
		if !wanted(tier) {
			continue
		}

		stat, err := de.Info()
		if err != nil {
			s.logger.Warn("skipping unreadable memory file",
				zap.String("file", de.Name()),
				zap.Error(err),
			)
			continue
		}

		date, _ := KeyDate(tier, key)

		infos = append(infos, FileInfo{
			Tier:      tier,
			Key:       key,
			Date:      date,
			Preview:   s.preview(tier, key),
			SizeBytes: stat.Size(),
			ModTime:   stat.ModTime(),
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		a, b := infos[i], infos[j]
		if (a.Tier == TierLongTerm) != (b.Tier == TierLongTerm) {
			return a.Tier == TierLongTerm
		}
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		return a.Key < b.Key
	})

	return infos, nil
}

// preview extracts the first content line of a file: headers, blank lines,
// and the front-matter block of session summaries are skipped.
func (s *Store) preview(tier Tier, key string) string {
	data, err := os.ReadFile(s.path(tier, key))
	if err != nil {
		return ""
	}

	lines := splitLines(string(data))

	inFrontMatter := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if i == 0 && trimmed == "---" {
			inFrontMatter = true
			continue
		}
		if inFrontMatter {
			if trimmed == "---" {
				inFrontMatter = false
			}
			continue
		}
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		return utils.Truncate(trimmed, previewMaxLen)
	}

	return ""
}

// splitLines splits file content into lines without a phantom trailing
// element for the final newline.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}

	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}

// countLines counts the lines in a byte slice, treating a trailing newline
// as a line terminator rather than the start of a new line.
func countLines(b []byte) int {
	if len(b) == 0 {
		return 0
	}

	n := bytes.Count(b, []byte("\n"))
	if b[len(b)-1] != '\n' {
		n++
	}

	return n
}
