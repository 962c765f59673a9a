package memory_test

import (
	"context"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/recall/pkg/memory"
)

var _ = Describe("CaptureText", func() {
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

	It("captures only the sentences a trigger fires on", func() {
		results, err := engine.CaptureText(ctx,
			"I prefer dark themes for every editor. How do I configure the linter? Remember the deploy window is Friday.")
		Expect(err).NotTo(HaveOccurred())

		Expect(results).To(HaveLen(2))
		Expect(results[0].Category).To(Equal(memory.CategoryPreference))
		Expect(results[0].Status).To(Equal(memory.StatusOK))
		Expect(results[1].Category).To(Equal(memory.CategoryFact))
		Expect(results[1].Status).To(Equal(memory.StatusOK))
	})

	It("splits on CJK terminators too", func() {
		results, err := engine.CaptureText(ctx, "我喜欢深色主题和紧凑布局！今天天气怎么样？")
		Expect(err).NotTo(HaveOccurred())

		Expect(results).To(HaveLen(1))
		Expect(results[0].Category).To(Equal(memory.CategoryPreference))
	})

	It("strips speaker labels before classifying", func() {
		results, err := engine.CaptureText(ctx, "user: my email address is alice@example.com")
		Expect(err).NotTo(HaveOccurred())

		Expect(results).To(HaveLen(1))
		Expect(results[0].Category).To(Equal(memory.CategoryEntity))

		got, err := engine.Get(ctx, results[0].Key, results[0].Line, results[0].Line)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Content).NotTo(ContainSubstring("user:"))
	})

	It("drops fragments shorter than the minimum length", func() {
		results, err := engine.CaptureText(ctx, "ok. no. I prefer rebase over merge for feature branches.")
		Expect(err).NotTo(HaveOccurred())

		Expect(results).To(HaveLen(1))
		Expect(results[0].Category).To(Equal(memory.CategoryPreference))
	})

	It("collapses a sentence repeated within the same text", func() {
		results, err := engine.CaptureText(ctx,
			"I prefer tabs over spaces in Go files. I prefer tabs over spaces in Go files.")
		Expect(err).NotTo(HaveOccurred())

		Expect(results).To(HaveLen(1))
		Expect(results[0].Status).To(Equal(memory.StatusOK))
	})

	It("returns nothing for text with no triggers", func() {
		results, err := engine.CaptureText(ctx, "could you help me debug this stack trace please")
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(BeEmpty())
	})
})

var _ = Describe("CaptureConversation", func() {
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

	It("analyzes user turns and ignores assistant output", func() {
		turns := []memory.Turn{
			{Role: "user", Content: "I prefer table-driven tests for parsers."},
			{Role: "assistant", Content: "Noted. Remember the build cache lives under /tmp."},
			{Role: "user", Content: "We decided to use PostgreSQL for the job queue."},
		}

		results, err := engine.CaptureConversation(ctx, turns)
		Expect(err).NotTo(HaveOccurred())

		Expect(results).To(HaveLen(2))
		Expect(results[0].Category).To(Equal(memory.CategoryPreference))
		Expect(results[1].Category).To(Equal(memory.CategoryDecision))
	})

	It("skips empty turns", func() {
		results, err := engine.CaptureConversation(ctx, []memory.Turn{
			{Role: "user", Content: ""},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(BeEmpty())
	})
})
