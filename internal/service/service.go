// Package service wires the analyzer and the store into the operations the
// HTTP API and the CLI expose: analyze-and-store, point lookup, filtered
// listing, and deletion.
package service

import (
	stderrors "errors"
	"strings"

	"stringd/internal/analyzer"
	"stringd/internal/errors"
	"stringd/internal/store"
)

// Service is the core facade over the analyzer and the record store.
type Service struct {
	store *store.Store
}

// New creates a Service backed by the given store.
func New(st *store.Store) *Service {
	return &Service{store: st}
}

// AnalyzeAndStore trims the input, analyzes it, and persists the record.
// Submitting an already-stored value is an idempotent no-op: the existing
// record is returned and created reports false. Empty input (after trimming)
// is rejected with InvalidInput.
func (s *Service) AnalyzeAndStore(value string) (rec *analyzer.Record, created bool, err error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, false, errors.New(errors.InvalidInput, "value cannot be empty")
	}

	stored, inserted, err := s.store.PutRecord(analyzer.Analyze(value))
	if err != nil {
		return nil, false, errors.Wrap(errors.Internal, "failed to store record", err)
	}
	return stored, inserted, nil
}

// GetByValue returns the stored record for an exact value match.
func (s *Service) GetByValue(value string) (*analyzer.Record, error) {
	rec, err := s.store.GetRecord(value)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return nil, errors.New(errors.NotFound, "string not found")
		}
		return nil, errors.Wrap(errors.Internal, "failed to get record", err)
	}
	return rec, nil
}

// List returns all records matching the filter, in insertion order.
func (s *Service) List(f store.Filter) ([]*analyzer.Record, error) {
	records, err := s.store.ListRecords(f)
	if err != nil {
		return nil, errors.Wrap(errors.Internal, "failed to list records", err)
	}
	if records == nil {
		records = []*analyzer.Record{}
	}
	return records, nil
}

// DeleteByValue removes the record for an exact value match.
func (s *Service) DeleteByValue(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New(errors.InvalidInput, "value cannot be empty")
	}

	if err := s.store.DeleteRecord(value); err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return errors.New(errors.NotFound, "string not found")
		}
		return errors.Wrap(errors.Internal, "failed to delete record", err)
	}
	return nil
}

// Count returns the number of stored records.
func (s *Service) Count() (int, error) {
	count, err := s.store.CountRecords()
	if err != nil {
		return 0, errors.Wrap(errors.Internal, "failed to count records", err)
	}
	return count, nil
}
