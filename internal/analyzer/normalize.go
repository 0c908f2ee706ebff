package analyzer

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// foldForComparison canonicalizes a string for the palindrome check: NFC
// normalization first (so composed and decomposed forms of the same character
// compare equal), then Unicode lower-casing.
func foldForComparison(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}
