package memory_test

import (
	"context"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/recall/pkg/memory"
	"github.com/papercomputeco/recall/pkg/memory/store"
)

var _ = Describe("Engine", func() {
	var (
		engine *memory.Engine
		tmpDir string
		ctx    context.Context
	)

	BeforeEach(func() {
		engine, tmpDir = newTestEngine(memory.Options{})
		ctx = context.Background()
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	Describe("Capture", func() {
		It("auto-classifies and stores a triggered memory in today's file", func() {
			result, err := engine.Capture(ctx, "I prefer tabs over spaces", "")
			Expect(err).NotTo(HaveOccurred())

			Expect(result.Status).To(Equal(memory.StatusOK))
			Expect(result.Category).To(Equal(memory.CategoryPreference))
			Expect(result.Key).To(Equal("2026-08-27"))
			Expect(result.Line).To(BeNumerically(">", 0))

			got, err := engine.Get(ctx, result.Key, 0, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Content).To(ContainSubstring("- [preference] I prefer tabs over spaces"))
		})

		It("round-trips the entry through Get at the reported line", func() {
			result, err := engine.Capture(ctx, "Remember the deploy window is Friday", "")
			Expect(err).NotTo(HaveOccurred())

			got, err := engine.Get(ctx, result.Key, result.Line, result.Line)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Content).To(Equal("- [fact] Remember the deploy window is Friday"))
		})

		It("stores unmatched content untagged", func() {
			result, err := engine.Capture(ctx, "a plain note nothing triggers", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Status).To(Equal(memory.StatusOK))
			Expect(result.Category).To(Equal(memory.CategoryNone))

			got, err := engine.Get(ctx, result.Key, result.Line, result.Line)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Content).To(Equal("- a plain note nothing triggers"))
		})

		It("honors an explicit category over classification", func() {
			result, err := engine.Capture(ctx, "I prefer tabs over spaces", "decision")
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Category).To(Equal(memory.CategoryDecision))
		})

		It("rejects empty content and unknown categories", func() {
			_, err := engine.Capture(ctx, "   ", "")
			Expect(err).To(BeAssignableToTypeOf(memory.ValidationError{}))

			_, err = engine.Capture(ctx, "valid content here", "opinion")
			Expect(err).To(BeAssignableToTypeOf(memory.ValidationError{}))
		})

		It("skips an exact repeat as a duplicate", func() {
			first, err := engine.Capture(ctx, "the staging cluster lives in us-east-1", "fact")
			Expect(err).NotTo(HaveOccurred())
			Expect(first.Status).To(Equal(memory.StatusOK))

			second, err := engine.Capture(ctx, "the staging cluster lives in us-east-1", "fact")
			Expect(err).NotTo(HaveOccurred())
			Expect(second.Status).To(Equal(memory.StatusSkipped))
			Expect(second.Key).To(BeEmpty())
		})

		It("skips a candidate fully contained in an existing entry", func() {
			_, err := engine.Capture(ctx, "I prefer the dark mode color theme for all editors", "preference")
			Expect(err).NotTo(HaveOccurred())

			// Every keyword of the shorter candidate appears in the stored
			// entry, so the overlap ratio is 1.0.
			result, err := engine.Capture(ctx, "dark mode color theme editors", "preference")
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Status).To(Equal(memory.StatusSkipped))
		})

		It("stores distinct content sharing a few keywords", func() {
			_, err := engine.Capture(ctx, "I prefer the dark mode theme", "preference")
			Expect(err).NotTo(HaveOccurred())

			result, err := engine.Capture(ctx, "I prefer vim keybindings in every editor", "preference")
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Status).To(Equal(memory.StatusOK))
		})

		It("dedups against the long-term file too", func() {
			Expect(engine.Promote(ctx, "Infrastructure", "- [fact] the staging cluster lives in us-east-1")).To(Succeed())

			result, err := engine.Capture(ctx, "staging cluster lives in us-east-1", "fact")
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Status).To(Equal(memory.StatusSkipped))
		})

		It("never dedups all-stop-word content", func() {
			first, err := engine.Capture(ctx, "just the one for you", "none")
			Expect(err).NotTo(HaveOccurred())
			Expect(first.Status).To(Equal(memory.StatusOK))

			second, err := engine.Capture(ctx, "just the one for you", "none")
			Expect(err).NotTo(HaveOccurred())
			Expect(second.Status).To(Equal(memory.StatusOK))
		})
	})

	Describe("Promote", func() {
		It("appends to the long-term file under a subject", func() {
			Expect(engine.Promote(ctx, "Conventions", "All services log with zap")).To(Succeed())

			got, err := engine.Get(ctx, store.LongTermKey, 0, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Tier).To(Equal("longterm"))
			Expect(got.Content).To(ContainSubstring("## Conventions"))
			Expect(got.Content).To(ContainSubstring("All services log with zap"))
		})

		It("rejects empty content", func() {
			err := engine.Promote(ctx, "Conventions", "  ")
			Expect(err).To(BeAssignableToTypeOf(memory.ValidationError{}))
		})
	})

	Describe("Get", func() {
		It("rejects keys that fit no tier shape", func() {
			_, err := engine.Get(ctx, "../escape", 0, 0)
			Expect(err).To(BeAssignableToTypeOf(memory.ValidationError{}))
		})

		It("reports a missing file as not found", func() {
			_, err := engine.Get(ctx, "2026-01-01", 0, 0)
			Expect(err).To(BeAssignableToTypeOf(store.ErrNotFound{}))
		})

		It("maps an invalid range onto a validation error", func() {
			_, err := engine.Capture(ctx, "some content to store", "none")
			Expect(err).NotTo(HaveOccurred())

			_, err = engine.Get(ctx, "2026-08-27", 9, 3)
			Expect(err).To(BeAssignableToTypeOf(memory.ValidationError{}))
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			_, err := engine.Capture(ctx, "I prefer tabs over spaces", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(engine.Promote(ctx, "Conventions", "zap everywhere")).To(Succeed())
		})

		It("lists the long-term file first", func() {
			files, err := engine.List(ctx, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(files).To(HaveLen(2))
			Expect(files[0].Tier).To(Equal("longterm"))
			Expect(files[1].Key).To(Equal("2026-08-27"))
		})

		It("filters by category tag", func() {
			files, err := engine.List(ctx, "preference")
			Expect(err).NotTo(HaveOccurred())
			Expect(files).To(HaveLen(1))
			Expect(files[0].Key).To(Equal("2026-08-27"))

			files, err = engine.List(ctx, "decision")
			Expect(err).NotTo(HaveOccurred())
			Expect(files).To(BeEmpty())
		})

		It("rejects filtering by an untaggable category", func() {
			_, err := engine.List(ctx, "none")
			Expect(err).To(BeAssignableToTypeOf(memory.ValidationError{}))
		})
	})

	Describe("Stats", func() {
		It("counts files, sizes, and entries per category", func() {
			_, err := engine.Capture(ctx, "I prefer tabs over spaces", "")
			Expect(err).NotTo(HaveOccurred())
			_, err = engine.Capture(ctx, "we decided to use PostgreSQL", "")
			Expect(err).NotTo(HaveOccurred())

			stats, err := engine.Stats(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(stats.TotalFiles).To(Equal(1))
			Expect(stats.DailyFiles).To(Equal(1))
			Expect(stats.SummaryFiles).To(Equal(0))
			Expect(stats.TotalSizeBytes).To(BeNumerically(">", 0))
			Expect(stats.CountsByCategory["preference"]).To(Equal(1))
			Expect(stats.CountsByCategory["decision"]).To(Equal(1))
			Expect(stats.CountsByCategory["entity"]).To(Equal(0))
		})
	})
})
