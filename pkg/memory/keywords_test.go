package memory_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/recall/pkg/memory"
)

var _ = Describe("ExtractKeywords", func() {
	It("lowercases and keeps significant Latin words", func() {
		kws := memory.ExtractKeywords("Remember that PostgreSQL Replication is Configured")

		Expect(kws).To(HaveKey("postgresql"))
		Expect(kws).To(HaveKey("replication"))
		Expect(kws).To(HaveKey("configured"))
	})

	It("drops short tokens and stop words", func() {
		kws := memory.ExtractKeywords("I prefer the dark mode and it is on")

		Expect(kws).NotTo(HaveKey("prefer"))
		Expect(kws).NotTo(HaveKey("the"))
		Expect(kws).NotTo(HaveKey("and"))
		Expect(kws).NotTo(HaveKey("is"))
		Expect(kws).NotTo(HaveKey("on"))
		Expect(kws).To(HaveKey("dark"))
		Expect(kws).To(HaveKey("mode"))
	})

	It("extracts delimited CJK ideograph runs of two or more characters", func() {
		kws := memory.ExtractKeywords("请使用 深色主题 来渲染")

		Expect(kws).To(HaveKey("深色主题"))
		Expect(kws).To(HaveKey("请使用"))
		Expect(kws).To(HaveKey("来渲染"))
	})

	It("keeps an undelimited CJK sentence as one maximal run", func() {
		kws := memory.ExtractKeywords("我喜欢深色主题")

		Expect(kws).To(HaveKey("我喜欢深色主题"))
		Expect(kws).NotTo(HaveKey("深色主题"))
	})

	It("never yields a stop word", func() {
		inputs := []string{
			"remember to prefer what they would like",
			"the fact is that this should just work",
			"我喜欢这个, 因为它很好",
		}

		for _, input := range inputs {
			for kw := range memory.ExtractKeywords(input) {
				Expect(memory.Significant(kw)).To(BeTrue(), "keyword %q from %q is a stop word", kw, input)
			}
		}
	})

	It("returns an empty set for all-stop-word input", func() {
		Expect(memory.ExtractKeywords("the and for was")).To(BeEmpty())
	})

	It("is deterministic", func() {
		a := memory.ExtractKeywords("My email is alice@example.com and my phone is 138-12345678")
		b := memory.ExtractKeywords("My email is alice@example.com and my phone is 138-12345678")
		Expect(a).To(Equal(b))
	})
})
