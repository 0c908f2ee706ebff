package api

import (
	"fmt"
	"net/http"
	"strconv"

	"stringd/internal/errors"
	"stringd/internal/store"
)

// ParseFilter extracts the listing filter from query parameters. Unknown
// parameters are ignored; malformed values for known parameters are rejected
// with InvalidInput.
func ParseFilter(r *http.Request) (store.Filter, error) {
	query := r.URL.Query()

	var f store.Filter

	if v := query.Get("is_palindrome"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return store.Filter{}, errors.New(errors.InvalidInput,
				fmt.Sprintf("invalid is_palindrome parameter: %q", v))
		}
		f.IsPalindrome = &b
	}

	for _, p := range []struct {
		name string
		dst  **int
	}{
		{"min_length", &f.MinLength},
		{"max_length", &f.MaxLength},
		{"word_count", &f.WordCount},
	} {
		v := query.Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return store.Filter{}, errors.New(errors.InvalidInput,
				fmt.Sprintf("invalid %s parameter: %q", p.name, v))
		}
		if n < 0 {
			return store.Filter{}, errors.New(errors.InvalidInput,
				fmt.Sprintf("%s must be non-negative", p.name))
		}
		*p.dst = &n
	}

	f.ContainsCharacter = query.Get("contains_character")

	return f, nil
}
