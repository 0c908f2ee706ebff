package analyzer

import "time"

// Record is the stored analysis result for one input string. All derived
// fields are pure functions of Value; two records with equal values carry
// identical derived fields.
type Record struct {
	ContentHash        string         `json:"id"`
	Value              string         `json:"value"`
	Length             int            `json:"length"`
	IsPalindrome       bool           `json:"is_palindrome"`
	UniqueCharacters   int            `json:"unique_characters"`
	WordCount          int            `json:"word_count"`
	CharacterFrequency map[string]int `json:"character_frequency_map"`
	CreatedAt          time.Time      `json:"created_at"`
}
