package store_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/recall/pkg/memory/store"
)

var _ = Describe("Tier keys", func() {
	Describe("ResolveKey", func() {
		It("classifies a date as the daily tier", func() {
			tier, key, err := store.ResolveKey("2026-08-27")
			Expect(err).NotTo(HaveOccurred())
			Expect(tier).To(Equal(store.TierDaily))
			Expect(key).To(Equal("2026-08-27"))
		})

		It("classifies a date-slug as the summary tier", func() {
			tier, key, err := store.ResolveKey("2026-08-27-deploy-review")
			Expect(err).NotTo(HaveOccurred())
			Expect(tier).To(Equal(store.TierSessionSummary))
			Expect(key).To(Equal("2026-08-27-deploy-review"))
		})

		It("classifies the reserved key as the long-term tier", func() {
			tier, _, err := store.ResolveKey("MEMORY")
			Expect(err).NotTo(HaveOccurred())
			Expect(tier).To(Equal(store.TierLongTerm))
		})

		It("accepts a trailing .md suffix", func() {
			tier, key, err := store.ResolveKey("2026-08-27.md")
			Expect(err).NotTo(HaveOccurred())
			Expect(tier).To(Equal(store.TierDaily))
			Expect(key).To(Equal("2026-08-27"))
		})

		It("rejects impossible calendar dates", func() {
			_, _, err := store.ResolveKey("2026-13-45")
			Expect(err).To(BeAssignableToTypeOf(store.ErrInvalidKey{}))
		})

		It("rejects keys that fit no tier shape", func() {
			for _, key := range []string{"", "notes", "../../etc/passwd", "memory", "2026-08"} {
				_, _, err := store.ResolveKey(key)
				Expect(err).To(HaveOccurred(), "key %q should be rejected", key)
			}
		})
	})

	Describe("ValidateKey", func() {
		It("only accepts the reserved key for the long-term tier", func() {
			Expect(store.ValidateKey(store.TierLongTerm, "MEMORY")).To(Succeed())
			Expect(store.ValidateKey(store.TierLongTerm, "2026-08-27")).To(HaveOccurred())
		})

		It("requires a slug for summary keys", func() {
			Expect(store.ValidateKey(store.TierSessionSummary, "2026-08-27-deploy")).To(Succeed())
			Expect(store.ValidateKey(store.TierSessionSummary, "2026-08-27")).To(HaveOccurred())
		})
	})

	Describe("KeyDate", func() {
		It("extracts the date from daily and summary keys", func() {
			want := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)

			d, ok := store.KeyDate(store.TierDaily, "2026-08-27")
			Expect(ok).To(BeTrue())
			Expect(d).To(Equal(want))

			d, ok = store.KeyDate(store.TierSessionSummary, "2026-08-27-deploy")
			Expect(ok).To(BeTrue())
			Expect(d).To(Equal(want))
		})

		It("reports no date for the long-term key", func() {
			_, ok := store.KeyDate(store.TierLongTerm, "MEMORY")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("Filename", func() {
		It("maps keys to deterministic markdown filenames", func() {
			Expect(store.Filename(store.TierDaily, "2026-08-27")).To(Equal("2026-08-27.md"))
			Expect(store.Filename(store.TierSessionSummary, "2026-08-27-deploy")).To(Equal("2026-08-27-deploy.md"))
			Expect(store.Filename(store.TierLongTerm, "MEMORY")).To(Equal("MEMORY.md"))
		})
	})

	Describe("SummaryKey", func() {
		It("joins the date and slug", func() {
			at := time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)
			Expect(store.SummaryKey(at, "deploy")).To(Equal("2026-08-27-deploy"))
		})
	})
})
