package memory_test

import (
	"context"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/recall/pkg/memory"
	"github.com/papercomputeco/recall/pkg/memory/store"
)

var _ = Describe("Cleanup", func() {
	var (
		engine *memory.Engine
		tmpDir string
		ctx    context.Context
	)

	writeDaily := func(key string) {
		date, err := time.Parse("2006-01-02", key)
		Expect(err).NotTo(HaveOccurred())
		_, err = engine.Store().Append(ctx, store.TierDaily, key, "fact", "entry for "+key, date)
		Expect(err).NotTo(HaveOccurred())
	}

	writeSummary := func(key string) {
		Expect(engine.Store().WriteFile(ctx, store.TierSessionSummary, key, "# summary\n\n- notes\n")).To(Succeed())
	}

	BeforeEach(func() {
		engine, tmpDir = newTestEngine(memory.Options{})
		ctx = context.Background()
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	It("deletes daily files strictly older than the cutoff", func() {
		writeDaily("2026-08-27") // today under the fixed clock
		writeDaily("2026-08-26")
		writeDaily("2026-07-01")

		result, err := engine.Cleanup(ctx, 1, 1)
		Expect(err).NotTo(HaveOccurred())

		// The cutoff date itself (today minus one day) survives; only
		// strictly older files go.
		Expect(result.DeletedKeys).To(ConsistOf("2026-07-01"))
		Expect(result.SkippedKeys).To(BeEmpty())
		Expect(engine.Store().Exists(store.TierDaily, "2026-08-27")).To(BeTrue())
		Expect(engine.Store().Exists(store.TierDaily, "2026-08-26")).To(BeTrue())
		Expect(engine.Store().Exists(store.TierDaily, "2026-07-01")).To(BeFalse())
	})

	It("applies the separate summary cutoff to summary files", func() {
		writeDaily("2026-08-01")
		writeSummary("2026-08-01-database-migration")
		writeSummary("2026-05-01-old-planning")

		result, err := engine.Cleanup(ctx, 10, 60)
		Expect(err).NotTo(HaveOccurred())

		Expect(result.DeletedKeys).To(ConsistOf("2026-08-01", "2026-05-01-old-planning"))
		Expect(engine.Store().Exists(store.TierSessionSummary, "2026-08-01-database-migration")).To(BeTrue())
	})

	It("never deletes today's file even with a zero-day window", func() {
		writeDaily("2026-08-27")

		result, err := engine.Cleanup(ctx, 1, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.DeletedKeys).To(BeEmpty())
		Expect(engine.Store().Exists(store.TierDaily, "2026-08-27")).To(BeTrue())
	})

	It("never touches the long-term file", func() {
		Expect(engine.Promote(ctx, "Keep", "promoted long ago")).To(Succeed())
		writeDaily("2020-01-01")

		result, err := engine.Cleanup(ctx, 1, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.DeletedKeys).To(ConsistOf("2020-01-01"))
		Expect(engine.Store().Exists(store.TierLongTerm, store.LongTermKey)).To(BeTrue())
	})

	It("records failed deletions as skips without aborting the pass", func() {
		if os.Geteuid() == 0 {
			Skip("unlink permission checks do not bind for root")
		}

		writeDaily("2026-07-01")
		writeDaily("2026-07-02")

		dir := engine.Store().Dir()
		Expect(os.Chmod(dir, 0o555)).To(Succeed())
		defer os.Chmod(dir, 0o755)

		result, err := engine.Cleanup(ctx, 1, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.SkippedKeys).To(ConsistOf("2026-07-01", "2026-07-02"))
		Expect(result.DeletedKeys).To(BeEmpty())

		// Once the files become deletable again the next pass removes them.
		Expect(os.Chmod(dir, 0o755)).To(Succeed())
		result, err = engine.Cleanup(ctx, 1, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.DeletedKeys).To(ConsistOf("2026-07-01", "2026-07-02"))
		Expect(result.SkippedKeys).To(BeEmpty())
	})

	It("falls back to configured defaults for non-positive arguments", func() {
		os.RemoveAll(tmpDir)
		engine, tmpDir = newTestEngine(memory.Options{
			DailyRetentionDays:   5,
			SummaryRetentionDays: 5,
		})
		writeDaily("2026-08-23")
		writeDaily("2026-08-20")
		writeSummary("2026-08-20-roadmap-review")

		result, err := engine.Cleanup(ctx, 0, -3)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.DeletedKeys).To(ConsistOf("2026-08-20", "2026-08-20-roadmap-review"))
		Expect(engine.Store().Exists(store.TierDaily, "2026-08-23")).To(BeTrue())
	})
})
