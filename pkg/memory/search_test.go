package memory_test

import (
	"context"
	"os"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/recall/pkg/memory"
	"github.com/papercomputeco/recall/pkg/memory/store"
)

var _ = Describe("Search", func() {
	var (
		engine *memory.Engine
		tmpDir string
		ctx    context.Context
	)

	BeforeEach(func() {
		engine, tmpDir = newTestEngine(memory.Options{ContextLines: 1})
		ctx = context.Background()
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	It("matches case-insensitively with line-number gutters", func() {
		result, err := engine.Capture(ctx, "the CI pipeline uses PostgreSQL fixtures", "fact")
		Expect(err).NotTo(HaveOccurred())

		matches, err := engine.Search(ctx, "postgresql", 0)
		Expect(err).NotTo(HaveOccurred())

		Expect(matches).To(HaveLen(1))
		m := matches[0]
		Expect(m.File).To(Equal("2026-08-27.md"))
		Expect(m.Key).To(Equal("2026-08-27"))
		Expect(m.Line).To(Equal(result.Line))
		Expect(m.Excerpt).To(ContainSubstring("   5 | - [fact] the CI pipeline uses PostgreSQL fixtures"))
	})

	It("bounds the context window at file edges", func() {
		_, err := engine.Capture(ctx, "only entry mentioning quasar", "fact")
		Expect(err).NotTo(HaveOccurred())

		matches, err := engine.Search(ctx, "2026-08-27", 1)
		Expect(err).NotTo(HaveOccurred())

		// The hit is the header on line 1; with one context line the block
		// is lines 1-2.
		Expect(matches).To(HaveLen(1))
		Expect(matches[0].StartLine).To(Equal(1))
		Expect(matches[0].EndLine).To(Equal(2))
	})

	It("merges overlapping and adjacent windows into one block", func() {
		_, err := engine.Capture(ctx, "alpha rollout starts quasar phase", "fact")
		Expect(err).NotTo(HaveOccurred())
		_, err = engine.Capture(ctx, "beta rollout ends quasar phase", "fact")
		Expect(err).NotTo(HaveOccurred())

		matches, err := engine.Search(ctx, "quasar", 3)
		Expect(err).NotTo(HaveOccurred())

		Expect(matches).To(HaveLen(1))
		Expect(strings.Count(matches[0].Excerpt, "quasar")).To(Equal(2))
		Expect(matches[0].StartLine).To(BeNumerically("<", matches[0].Line))
	})

	It("keeps distant hits in the same file as separate blocks", func() {
		content := "# 2026-08-20\n\n- [fact] quasar first\n\n- filler\n- filler\n- filler\n- filler\n- filler\n- filler\n\n- [fact] quasar second\n"
		Expect(engine.Store().WriteFile(ctx, store.TierDaily, "2026-08-20", content)).To(Succeed())

		matches, err := engine.Search(ctx, "quasar", 1)
		Expect(err).NotTo(HaveOccurred())

		Expect(matches).To(HaveLen(2))
		Expect(matches[0].Line).To(Equal(3))
		Expect(matches[1].Line).To(Equal(12))
	})

	It("orders results long-term first, then dates descending", func() {
		Expect(engine.Promote(ctx, "Infra", "quasar lives in long-term")).To(Succeed())
		Expect(engine.Store().WriteFile(ctx, store.TierDaily, "2026-08-20", "# 2026-08-20\n\n- [fact] quasar old\n")).To(Succeed())
		_, err := engine.Capture(ctx, "quasar fresh capture today", "fact")
		Expect(err).NotTo(HaveOccurred())

		matches, err := engine.Search(ctx, "quasar", 0)
		Expect(err).NotTo(HaveOccurred())

		Expect(matches).To(HaveLen(3))
		Expect(matches[0].Key).To(Equal(store.LongTermKey))
		Expect(matches[1].Key).To(Equal("2026-08-27"))
		Expect(matches[2].Key).To(Equal("2026-08-20"))
	})

	It("returns no matches without error for unknown keywords", func() {
		_, err := engine.Capture(ctx, "unrelated content entirely", "none")
		Expect(err).NotTo(HaveOccurred())

		matches, err := engine.Search(ctx, "zzz-not-here", 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(matches).To(BeEmpty())
	})

	It("validates keyword and context arguments", func() {
		_, err := engine.Search(ctx, "   ", 0)
		Expect(err).To(BeAssignableToTypeOf(memory.ValidationError{}))

		_, err = engine.Search(ctx, "fine", -1)
		Expect(err).To(BeAssignableToTypeOf(memory.ValidationError{}))
	})
})
