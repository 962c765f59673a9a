package memory

import "fmt"

// Category is the closed classification label attached to a memory entry.
type Category string

const (
	// CategoryPreference marks expressions of user taste or habit.
	CategoryPreference Category = "preference"

	// CategoryDecision marks announced decisions or selections.
	CategoryDecision Category = "decision"

	// CategoryEntity marks structured identifiers: phone numbers, email
	// addresses, names, accounts.
	CategoryEntity Category = "entity"

	// CategoryFact marks explicit remember-this statements and factual
	// corrections.
	CategoryFact Category = "fact"

	// CategoryNone marks manually captured content with no automatic tag.
	// Entries with this category are written without a bracketed tag.
	CategoryNone Category = "none"
)

// Categories lists every taggable category, in display order.
// CategoryNone is excluded: it is the absence of a tag, not a tag.
var Categories = []Category{
	CategoryPreference,
	CategoryDecision,
	CategoryEntity,
	CategoryFact,
}

// ParseCategory validates a category name from an external caller.
// The empty string parses to CategoryNone.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case "":
		return CategoryNone, nil
	case CategoryPreference, CategoryDecision, CategoryEntity, CategoryFact, CategoryNone:
		return Category(s), nil
	default:
		return "", ValidationError{
			Field:  "category",
			Reason: fmt.Sprintf("%q is not one of preference, decision, entity, fact, none", s),
		}
	}
}

// Tagged reports whether entries with this category carry a bracketed tag.
func (c Category) Tagged() bool {
	return c != CategoryNone && c != ""
}
