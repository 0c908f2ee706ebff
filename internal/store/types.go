package store

// Filter restricts a listing to records matching every set field. Nil
// pointer fields and the empty string mean "no constraint"; the zero Filter
// matches everything.
type Filter struct {
	IsPalindrome      *bool
	MinLength         *int
	MaxLength         *int
	WordCount         *int
	ContainsCharacter string
}

// IsZero reports whether no constraint is set.
func (f Filter) IsZero() bool {
	return f.IsPalindrome == nil &&
		f.MinLength == nil &&
		f.MaxLength == nil &&
		f.WordCount == nil &&
		f.ContainsCharacter == ""
}

// Applied returns the set constraints keyed by their API parameter names.
// Unset constraints are absent from the map.
func (f Filter) Applied() map[string]interface{} {
	applied := make(map[string]interface{})
	if f.IsPalindrome != nil {
		applied["is_palindrome"] = *f.IsPalindrome
	}
	if f.MinLength != nil {
		applied["min_length"] = *f.MinLength
	}
	if f.MaxLength != nil {
		applied["max_length"] = *f.MaxLength
	}
	if f.WordCount != nil {
		applied["word_count"] = *f.WordCount
	}
	if f.ContainsCharacter != "" {
		applied["contains_character"] = f.ContainsCharacter
	}
	return applied
}
