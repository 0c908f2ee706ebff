package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"stringd/internal/analyzer"
)

// PutRecord inserts a record keyed by its content hash. Insertion is
// idempotent: if the value is already stored, the existing record is returned
// unchanged and inserted reports false. CreatedAt is stamped on first insert.
func (s *Store) PutRecord(rec *analyzer.Record) (stored *analyzer.Record, inserted bool, err error) {
	existing, err := s.GetRecord(rec.Value)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	freqJSON, err := json.Marshal(rec.CharacterFrequency)
	if err != nil {
		return nil, false, fmt.Errorf("failed to marshal character frequency: %w", err)
	}

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	// RFC3339 storage is second-granular; truncate so the returned record
	// matches what a later read will see.
	createdAt = createdAt.Truncate(time.Second)

	query := `
		INSERT INTO strings
		(content_hash, value, length, is_palindrome, unique_characters, word_count, character_frequency, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.Exec(query,
		rec.ContentHash,
		rec.Value,
		rec.Length,
		rec.IsPalindrome,
		rec.UniqueCharacters,
		rec.WordCount,
		string(freqJSON),
		createdAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to insert record %s: %w", rec.ContentHash, err)
	}

	out := *rec
	out.CreatedAt = createdAt
	return &out, true, nil
}

// GetRecord retrieves a record by exact value match.
// Returns ErrNotFound when the value was never stored.
func (s *Store) GetRecord(value string) (*analyzer.Record, error) {
	query := `
		SELECT content_hash, value, length, is_palindrome, unique_characters, word_count, character_frequency, created_at
		FROM strings
		WHERE value = ?
	`

	row := s.db.QueryRow(query, value)
	rec, err := scanRecord(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("string %q: %w", value, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record for %q: %w", value, err)
	}

	return rec, nil
}

// ListRecords returns all records matching the filter, in insertion order.
// The zero Filter returns everything.
func (s *Store) ListRecords(f Filter) ([]*analyzer.Record, error) {
	var (
		conds []string
		args  []interface{}
	)

	if f.IsPalindrome != nil {
		conds = append(conds, "is_palindrome = ?")
		args = append(args, *f.IsPalindrome)
	}
	if f.MinLength != nil {
		conds = append(conds, "length >= ?")
		args = append(args, *f.MinLength)
	}
	if f.MaxLength != nil {
		conds = append(conds, "length <= ?")
		args = append(args, *f.MaxLength)
	}
	if f.WordCount != nil {
		conds = append(conds, "word_count = ?")
		args = append(args, *f.WordCount)
	}
	if f.ContainsCharacter != "" {
		// instr avoids LIKE wildcard escaping for arbitrary characters.
		conds = append(conds, "instr(value, ?) > 0")
		args = append(args, f.ContainsCharacter)
	}

	query := `
		SELECT content_hash, value, length, is_palindrome, unique_characters, word_count, character_frequency, created_at
		FROM strings
	`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY rowid"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var records []*analyzer.Record
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record row: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating records: %w", err)
	}

	return records, nil
}

// DeleteRecord removes the record for an exact value match.
// Returns ErrNotFound when no record exists for the value.
func (s *Store) DeleteRecord(value string) error {
	result, err := s.db.Exec(`DELETE FROM strings WHERE value = ?`, value)
	if err != nil {
		return fmt.Errorf("failed to delete record for %q: %w", value, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("string %q: %w", value, ErrNotFound)
	}

	return nil
}

// CountRecords returns the total number of stored records.
func (s *Store) CountRecords() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM strings").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

// scanRecord scans one row into a Record using the provided Scan function,
// parsing the serialized frequency map and timestamp.
func scanRecord(scan func(dest ...interface{}) error) (*analyzer.Record, error) {
	var (
		rec       analyzer.Record
		freqJSON  string
		createdAt string
	)

	err := scan(
		&rec.ContentHash,
		&rec.Value,
		&rec.Length,
		&rec.IsPalindrome,
		&rec.UniqueCharacters,
		&rec.WordCount,
		&freqJSON,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(freqJSON), &rec.CharacterFrequency); err != nil {
		return nil, fmt.Errorf("failed to unmarshal character frequency: %w", err)
	}
	if rec.CharacterFrequency == nil {
		rec.CharacterFrequency = map[string]int{}
	}

	rec.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return &rec, nil
}
