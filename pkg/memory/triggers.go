package memory

import "regexp"

// rule pairs a trigger pattern with the category it assigns.
type rule struct {
	pattern  *regexp.Regexp
	category Category
}

// triggerRules is the ordered rule table for spontaneous capture.
// Evaluation is first-match-wins, so the explicit remember imperative
// outranks everything else, and the structured-identifier rules outrank the
// loose possessive phrasing. All patterns are case-insensitive and accept
// mixed Latin and CJK input.
var triggerRules = []rule{
	// explicit remember-style imperatives
	{regexp.MustCompile(`(?i)记住|记下|remember|keep in mind`), CategoryFact},
	// preference-expressing phrases
	{regexp.MustCompile(`(?i)我喜欢|我偏好|prefer|like|love|hate|讨厌|不喜欢`), CategoryPreference},
	// decision announcements
	{regexp.MustCompile(`(?i)决定了|decision|decided|用这个|选定|确定用|就用`), CategoryDecision},
	// phone numbers
	{regexp.MustCompile(`\+\d{10,}|\d{3,4}[-\s]?\d{7,8}`), CategoryEntity},
	// email addresses
	{regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`), CategoryEntity},
	// possessive phrasing for identity details
	{regexp.MustCompile(`(?i)我的\w+是|is my|my \w+ is|我的电话|我的邮箱|我的地址|我的名字`), CategoryEntity},
	// factual statements
	{regexp.MustCompile(`(?i)事实上|实际上|the fact is|it turns out`), CategoryFact},
}

// Classify decides whether text is spontaneously memory-worthy. It walks the
// ordered rule table and returns the first matching category. The second
// return value is false when no rule matches; the caller may still store the
// text manually with an explicit category. Classify is pure and never errors:
// unrecognized input degrades to no-category.
func Classify(text string) (Category, bool) {
	for _, r := range triggerRules {
		if r.pattern.MatchString(text) {
			return r.category, true
		}
	}

	return CategoryNone, false
}
