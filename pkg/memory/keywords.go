package memory

import (
	"regexp"
	"strings"
)

var (
	// hanWordRe matches runs of two or more CJK ideographs. Logographic
	// text carries meaning at the character pair level, so single
	// characters are too noisy to index.
	hanWordRe = regexp.MustCompile(`\p{Han}{2,}`)

	// latinWordRe matches ASCII words of three or more letters. Shorter
	// tokens ("is", "my", "to") are almost always structural.
	latinWordRe = regexp.MustCompile(`[a-zA-Z]{3,}`)
)

// stopWords are terms too common to distinguish one memory from another.
// The list is bilingual because capture input mixes Latin and CJK text.
// Capture verbs themselves ("remember", "prefer", 喜欢, 决定) are stopped so
// that two unrelated preferences do not look like duplicates of each other.
var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		// English function words
		"the", "and", "for", "are", "was", "were", "his", "her", "its",
		"that", "this", "these", "those", "with", "from", "have", "has",
		"had", "not", "but", "you", "your", "they", "them", "their",
		"will", "would", "could", "should", "can", "may", "might",
		"what", "which", "who", "when", "where", "how", "why",
		"about", "into", "than", "then", "there", "here", "also",
		"just", "very", "some", "any", "all", "one", "two",
		// capture verbs
		"remember", "prefer", "prefers", "like", "likes", "love",
		"loves", "hate", "hates", "decide", "decided", "decision",
		"fact", "user",
		// Chinese function words
		"的", "了", "是", "在", "我", "有", "和", "就", "不", "人",
		"都", "一个", "上", "也", "很", "到", "说", "要", "去",
		"你", "会", "着", "没有", "看", "好", "自己", "这", "那",
		"什么", "这个", "那个", "可以", "就是", "这样", "然后",
		"还是", "但是", "因为", "所以", "如果", "虽然", "可能",
		"需要", "应该", "或者", "而且", "已经", "还有", "一直",
		"的话", "一下", "一些", "一点", "东西", "知道", "觉得",
		// capture verbs
		"喜欢", "偏好", "用户", "记住", "记下", "决定", "选定",
	} {
		stopWords[w] = struct{}{}
	}
}

// Significant reports whether a normalized word survives the stop-word list.
func Significant(word string) bool {
	_, stop := stopWords[strings.ToLower(word)]
	return !stop
}

// ExtractKeywords turns free text into a normalized set of significant
// terms: lowercased, split on word boundaries for both space-delimited and
// logographic text, with stop words removed. It is deterministic and has no
// side effects; the same input always yields the same set.
func ExtractKeywords(text string) map[string]struct{} {
	keywords := make(map[string]struct{})

	for _, word := range hanWordRe.FindAllString(text, -1) {
		if _, stop := stopWords[word]; stop {
			continue
		}
		keywords[word] = struct{}{}
	}

	for _, word := range latinWordRe.FindAllString(text, -1) {
		word = strings.ToLower(word)
		if _, stop := stopWords[word]; stop {
			continue
		}
		keywords[word] = struct{}{}
	}

	return keywords
}
