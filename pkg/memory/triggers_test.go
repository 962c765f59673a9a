package memory_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/recall/pkg/memory"
)

var _ = Describe("Classify", func() {
	DescribeTable("assigns the first matching category",
		func(text string, want memory.Category) {
			cat, matched := memory.Classify(text)
			Expect(matched).To(BeTrue())
			Expect(cat).To(Equal(want))
		},
		Entry("remember imperative", "Remember that the deploy window is Friday", memory.CategoryFact),
		Entry("keep in mind", "keep in mind the cluster is shared", memory.CategoryFact),
		Entry("CJK remember", "记住我的生日是五月一日", memory.CategoryFact),
		Entry("preference", "I prefer tabs over spaces", memory.CategoryPreference),
		Entry("CJK preference", "我喜欢深色主题", memory.CategoryPreference),
		Entry("dislike", "I hate flaky tests", memory.CategoryPreference),
		Entry("decision", "We decided to use PostgreSQL", memory.CategoryDecision),
		Entry("CJK decision", "决定了就用这个方案", memory.CategoryDecision),
		Entry("phone number", "Call me at +8613812345678", memory.CategoryEntity),
		Entry("dashed phone", "My office line is 010-12345678", memory.CategoryEntity),
		Entry("email address", "Send it to alice@example.com", memory.CategoryEntity),
		Entry("possessive identity", "my hometown is Hangzhou", memory.CategoryEntity),
		Entry("CJK possessive", "我的名字叫小明", memory.CategoryEntity),
		Entry("fact marker", "it turns out the cache was stale", memory.CategoryFact),
	)

	It("lets the remember imperative outrank later rules", func() {
		// Contains both a remember trigger and an email, in one sentence.
		cat, matched := memory.Classify("Remember my email is alice@example.com")
		Expect(matched).To(BeTrue())
		Expect(cat).To(Equal(memory.CategoryFact))
	})

	It("does not match ordinary conversation", func() {
		for _, text := range []string{
			"how do I configure the linter",
			"thanks, that worked",
			"今天天气怎么样",
		} {
			_, matched := memory.Classify(text)
			Expect(matched).To(BeFalse(), "text %q should not trigger capture", text)
		}
	})
})

var _ = Describe("ParseCategory", func() {
	It("parses the empty string as no category", func() {
		cat, err := memory.ParseCategory("")
		Expect(err).NotTo(HaveOccurred())
		Expect(cat).To(Equal(memory.CategoryNone))
		Expect(cat.Tagged()).To(BeFalse())
	})

	It("accepts every taggable category", func() {
		for _, want := range memory.Categories {
			cat, err := memory.ParseCategory(string(want))
			Expect(err).NotTo(HaveOccurred())
			Expect(cat).To(Equal(want))
			Expect(cat.Tagged()).To(BeTrue())
		}
	})

	It("rejects unknown names", func() {
		_, err := memory.ParseCategory("opinion")
		Expect(err).To(BeAssignableToTypeOf(memory.ValidationError{}))
	})
})
