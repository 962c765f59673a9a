package store_test

import (
	"context"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/papercomputeco/recall/pkg/memory/store"
)

var _ = Describe("Entries", func() {
	var (
		tmpDir string
		s      *store.Store
		ctx    context.Context
	)

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "entries-test-*")
		Expect(err).NotTo(HaveOccurred())

		s, err = store.NewStore(tmpDir, zap.NewNop())
		Expect(err).NotTo(HaveOccurred())

		ctx = context.Background()
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	It("parses tagged and untagged list lines with their positions", func() {
		content := "# 2026-08-27\n" +
			"\n" +
			"## 09:15\n" +
			"\n" +
			"- [preference] I prefer tabs over spaces\n" +
			"- plain untagged note\n" +
			"\n" +
			"## 11:40\n" +
			"\n" +
			"- [decision] We will use PostgreSQL\n"
		Expect(s.WriteFile(ctx, store.TierDaily, "2026-08-27", content)).To(Succeed())

		entries, err := s.Entries(ctx, store.TierDaily, "2026-08-27")
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(HaveLen(3))

		Expect(entries[0].Line).To(Equal(5))
		Expect(entries[0].Tag).To(Equal("preference"))
		Expect(entries[0].Content).To(Equal("I prefer tabs over spaces"))

		Expect(entries[1].Tag).To(BeEmpty())
		Expect(entries[1].Content).To(Equal("plain untagged note"))

		Expect(entries[2].Line).To(Equal(10))
		Expect(entries[2].Tag).To(Equal("decision"))
	})

	It("treats a missing file as no entries", func() {
		entries, err := s.Entries(ctx, store.TierDaily, "2026-01-01")
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(BeNil())
	})

	It("ignores headers and prose between entries", func() {
		content := "# Long-term memory\n\n## Team conventions\n\nAll services log with zap\n\n- [fact] the one entry\n"
		Expect(s.WriteFile(ctx, store.TierLongTerm, store.LongTermKey, content)).To(Succeed())

		entries, err := s.Entries(ctx, store.TierLongTerm, store.LongTermKey)
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(HaveLen(1))
		Expect(entries[0].Content).To(Equal("the one entry"))
	})

	It("picks up external edits to the file", func() {
		Expect(s.WriteFile(ctx, store.TierDaily, "2026-08-27", "# 2026-08-27\n\n- [fact] first\n")).To(Succeed())

		entries, err := s.Entries(ctx, store.TierDaily, "2026-08-27")
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(HaveLen(1))

		// Simulate a human editing the file directly: the parse cache is
		// keyed on size and mtime, so the next call must see the new entry.
		path := tmpDir + "/2026-08-27.md"
		edited := "# 2026-08-27\n\n- [fact] first\n- [fact] hand-added second\n"
		Expect(os.WriteFile(path, []byte(edited), 0o644)).To(Succeed())
		future := time.Now().Add(2 * time.Second)
		Expect(os.Chtimes(path, future, future)).To(Succeed())

		entries, err = s.Entries(ctx, store.TierDaily, "2026-08-27")
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(HaveLen(2))
	})
})
