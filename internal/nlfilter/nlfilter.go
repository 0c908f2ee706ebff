// Package nlfilter interprets a small set of English phrases as record
// filters, backing the /strings/filter-by-natural-language endpoint.
//
// Recognized phrases:
//   - "palindrome" / "palindromic"   -> is_palindrome = true
//   - "single word" / "one word"     -> word_count = 1
//   - "longer than N"                -> min_length = N+1
//   - "containing X" / "contain X"   -> contains_character = X (single letter)
//
// Phrases combine: "palindromic strings containing a" sets both constraints.
package nlfilter

import (
	"regexp"
	"strconv"
	"strings"

	"stringd/internal/errors"
	"stringd/internal/store"
)

// standaloneLetter matches a single letter token, e.g. the "z" in
// "strings containing z".
var standaloneLetter = regexp.MustCompile(`\b[a-zA-Z]\b`)

// Parse interprets query as a Filter. It returns QueryUnparseable when no
// recognized phrase is present, or when a recognized phrase is malformed.
func Parse(query string) (store.Filter, error) {
	q := strings.ToLower(strings.TrimSpace(query))

	var f store.Filter

	if strings.Contains(q, "palindrom") { // palindrome, palindromic
		yes := true
		f.IsPalindrome = &yes
	}

	if strings.Contains(q, "single word") || strings.Contains(q, "one word") {
		one := 1
		f.WordCount = &one
	}

	if rest, ok := cutAfter(q, "longer than"); ok {
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			return store.Filter{}, errors.New(errors.QueryUnparseable, "couldn't parse length")
		}
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			return store.Filter{}, errors.Wrap(errors.QueryUnparseable, "couldn't parse length", err)
		}
		min := n + 1
		f.MinLength = &min
	}

	if strings.Contains(q, "contain") { // contain, contains, containing
		if m := standaloneLetter.FindString(q); m != "" {
			f.ContainsCharacter = m
		}
	}

	if f.IsZero() {
		return store.Filter{}, errors.New(errors.QueryUnparseable, "unable to parse natural language query")
	}

	return f, nil
}

// cutAfter returns the part of s following the first occurrence of sep.
func cutAfter(s, sep string) (string, bool) {
	idx := strings.Index(s, sep)
	if idx == -1 {
		return "", false
	}
	return s[idx+len(sep):], true
}
