package utils

import "github.com/microcosm-cc/bluemonday"

// Listing descriptions may carry simple formatting; everything else submitted
// by sellers is treated as plain text.
var (
	ugcPolicy    = bluemonday.UGCPolicy()
	strictPolicy = bluemonday.StrictPolicy()
)

// Sanitize cleans HTML content to prevent XSS in listing descriptions.
func Sanitize(input string) string {
	return ugcPolicy.Sanitize(input)
}

// SanitizeStrict strips all markup, for single-line fields like titles and names.
func SanitizeStrict(input string) string {
	return strictPolicy.Sanitize(input)
}
