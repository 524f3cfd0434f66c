package utils

import (
	"strings"
	"unicode/utf8"
)

func IsValidRating(rating int) bool {
	return rating >= 1 && rating <= 5
}

func IsValidItemType(itemType string) bool {
	return itemType == "trip" || itemType == "hotel"
}

// IsValidCommentBody checks the 10–2000 character rule. Length is counted in
// runes so multi-byte scripts are not penalized.
func IsValidCommentBody(body string) bool {
	n := utf8.RuneCountInString(body)
	return n >= 10 && n <= 2000
}

func SanitizeString(input string) string {
	return strings.TrimSpace(input)
}
