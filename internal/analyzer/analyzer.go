// Package analyzer computes derived properties of input strings.
//
// Every function here is pure: no I/O, no clock, no randomness. Character
// counting is rune-based throughout, so multi-byte UTF-8 input is counted by
// code point, not by byte.
package analyzer

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Analyze computes the full set of derived properties for value. The empty
// string is valid input and yields zero counts and an empty frequency map.
// CreatedAt is left zero; the store stamps it on first insert.
func Analyze(value string) *Record {
	freq := make(map[string]int)
	length := 0
	for _, r := range value {
		length++
		freq[string(r)]++
	}

	return &Record{
		ContentHash:        ContentHash(value),
		Value:              value,
		Length:             length,
		IsPalindrome:       IsPalindrome(value),
		UniqueCharacters:   len(freq),
		WordCount:          len(strings.Fields(value)),
		CharacterFrequency: freq,
	}
}

// ContentHash returns the lowercase hex SHA-256 digest of the raw UTF-8
// bytes of value. No normalization is applied: the hash identifies the exact
// content, and equal input always yields equal output.
func ContentHash(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

// IsPalindrome reports whether value reads the same forwards and backwards.
//
// Policy: the comparison is case-insensitive after NFC normalization.
// Whitespace and punctuation are significant, so "A man a plan" is not a
// palindrome but "Racecar" is.
func IsPalindrome(value string) bool {
	folded := foldForComparison(value)
	return folded == reverseRunes(folded)
}

// reverseRunes reverses a string by rune, not by byte.
func reverseRunes(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
