package store

import (
	"errors"
	"testing"
	"time"

	"stringd/internal/analyzer"
)

// Helper function to create an in-memory store for testing
func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}

	if err := store.CreateSchema(); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	return store
}

func mustPut(t *testing.T, s *Store, value string) *analyzer.Record {
	t.Helper()
	rec, _, err := s.PutRecord(analyzer.Analyze(value))
	if err != nil {
		t.Fatalf("PutRecord(%q) failed: %v", value, err)
	}
	return rec
}

func TestNew(t *testing.T) {
	store, err := New(":memory:")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer store.Close()

	if store.db == nil {
		t.Error("Store.db should not be nil")
	}
}

func TestCreateSchema(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	var name string
	err := store.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='strings'").Scan(&name)
	if err != nil {
		t.Errorf("Table strings not found: %v", err)
	}

	indexes := []string{"idx_strings_palindrome", "idx_strings_length", "idx_strings_word_count"}
	for _, index := range indexes {
		var name string
		err := store.db.QueryRow("SELECT name FROM sqlite_master WHERE type='index' AND name=?", index).Scan(&name)
		if err != nil {
			t.Errorf("Index %s not found: %v", index, err)
		}
	}
}

func TestPutAndGetRecord(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	rec := analyzer.Analyze("hello world")
	stored, inserted, err := store.PutRecord(rec)
	if err != nil {
		t.Fatalf("PutRecord() failed: %v", err)
	}
	if !inserted {
		t.Error("PutRecord() should report inserted=true for a new value")
	}
	if stored.CreatedAt.IsZero() {
		t.Error("PutRecord() should stamp CreatedAt on insert")
	}

	retrieved, err := store.GetRecord("hello world")
	if err != nil {
		t.Fatalf("GetRecord() failed: %v", err)
	}

	if retrieved.Value != rec.Value {
		t.Errorf("Value = %q, want %q", retrieved.Value, rec.Value)
	}
	if retrieved.ContentHash != rec.ContentHash {
		t.Errorf("ContentHash = %s, want %s", retrieved.ContentHash, rec.ContentHash)
	}
	if retrieved.Length != 11 {
		t.Errorf("Length = %d, want 11", retrieved.Length)
	}
	if retrieved.IsPalindrome {
		t.Error("IsPalindrome = true, want false")
	}
	if retrieved.WordCount != 2 {
		t.Errorf("WordCount = %d, want 2", retrieved.WordCount)
	}
	if retrieved.CharacterFrequency["l"] != 3 {
		t.Errorf("CharacterFrequency[l] = %d, want 3", retrieved.CharacterFrequency["l"])
	}
	if retrieved.CreatedAt.IsZero() {
		t.Error("CreatedAt should round-trip through the database")
	}
}

func TestPutRecordIdempotent(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	first, inserted, err := store.PutRecord(analyzer.Analyze("racecar"))
	if err != nil {
		t.Fatalf("PutRecord() failed: %v", err)
	}
	if !inserted {
		t.Fatal("first PutRecord() should insert")
	}

	second, inserted, err := store.PutRecord(analyzer.Analyze("racecar"))
	if err != nil {
		t.Fatalf("second PutRecord() failed: %v", err)
	}
	if inserted {
		t.Error("second PutRecord() should not insert")
	}
	if second.ContentHash != first.ContentHash {
		t.Errorf("ContentHash = %s, want %s", second.ContentHash, first.ContentHash)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("CreatedAt changed on re-put: %v != %v", second.CreatedAt, first.CreatedAt)
	}

	count, err := store.CountRecords()
	if err != nil {
		t.Fatalf("CountRecords() failed: %v", err)
	}
	if count != 1 {
		t.Errorf("CountRecords() = %d, want 1 (no duplicate entries)", count)
	}
}

func TestGetRecordNotFound(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	_, err := store.GetRecord("nonexistent")
	if err == nil {
		t.Fatal("GetRecord() should return an error for an unknown value")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetRecord() error = %v; want errors.Is(err, ErrNotFound) to be true", err)
	}
}

func TestListRecordsInsertionOrder(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	values := []string{"zebra", "apple", "mango"}
	for _, v := range values {
		mustPut(t, store, v)
	}

	records, err := store.ListRecords(Filter{})
	if err != nil {
		t.Fatalf("ListRecords() failed: %v", err)
	}

	if len(records) != len(values) {
		t.Fatalf("ListRecords() returned %d records, want %d", len(records), len(values))
	}
	for i, rec := range records {
		if rec.Value != values[i] {
			t.Errorf("Record[%d].Value = %q, want %q (insertion order)", i, rec.Value, values[i])
		}
	}
}

func TestListRecordsFiltered(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	for _, v := range []string{"racecar", "hello", "a b c d", "noon", "xyz"} {
		mustPut(t, store, v)
	}

	boolPtr := func(b bool) *bool { return &b }
	intPtr := func(n int) *int { return &n }

	t.Run("palindromes only", func(t *testing.T) {
		records, err := store.ListRecords(Filter{IsPalindrome: boolPtr(true)})
		if err != nil {
			t.Fatalf("ListRecords() failed: %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("got %d records, want 2", len(records))
		}
		if records[0].Value != "racecar" || records[1].Value != "noon" {
			t.Errorf("got %q, %q; want racecar, noon", records[0].Value, records[1].Value)
		}
	})

	t.Run("length range", func(t *testing.T) {
		records, err := store.ListRecords(Filter{MinLength: intPtr(4), MaxLength: intPtr(5)}) // hello, noon
		if err != nil {
			t.Fatalf("ListRecords() failed: %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("got %d records, want 2", len(records))
		}
	})

	t.Run("word count", func(t *testing.T) {
		records, err := store.ListRecords(Filter{WordCount: intPtr(4)})
		if err != nil {
			t.Fatalf("ListRecords() failed: %v", err)
		}
		if len(records) != 1 || records[0].Value != "a b c d" {
			t.Fatalf("got %d records, want the single 4-word value", len(records))
		}
	})

	t.Run("contains character", func(t *testing.T) {
		records, err := store.ListRecords(Filter{ContainsCharacter: "z"})
		if err != nil {
			t.Fatalf("ListRecords() failed: %v", err)
		}
		if len(records) != 1 || records[0].Value != "xyz" {
			t.Fatalf("got %d records, want only xyz", len(records))
		}
	})

	t.Run("combined", func(t *testing.T) {
		records, err := store.ListRecords(Filter{
			IsPalindrome:      boolPtr(true),
			ContainsCharacter: "n",
		})
		if err != nil {
			t.Fatalf("ListRecords() failed: %v", err)
		}
		if len(records) != 1 || records[0].Value != "noon" {
			t.Fatalf("got %d records, want only noon", len(records))
		}
	})
}

func TestDeleteRecord(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	mustPut(t, store, "ephemeral")

	if err := store.DeleteRecord("ephemeral"); err != nil {
		t.Fatalf("DeleteRecord() failed: %v", err)
	}

	_, err := store.GetRecord("ephemeral")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetRecord() after delete = %v, want ErrNotFound", err)
	}
}

func TestDeleteRecordNotFound(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	err := store.DeleteRecord("nonexistent")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteRecord() error = %v, want ErrNotFound", err)
	}
}

func TestEmptyFrequencyMapRoundTrip(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	// The empty string is a valid record with an empty frequency map.
	mustPut(t, store, "")

	retrieved, err := store.GetRecord("")
	if err != nil {
		t.Fatalf("GetRecord() failed: %v", err)
	}

	if retrieved.CharacterFrequency == nil {
		t.Error("CharacterFrequency should not be nil")
	}
	if len(retrieved.CharacterFrequency) != 0 {
		t.Errorf("CharacterFrequency has %d entries, want 0", len(retrieved.CharacterFrequency))
	}
	if retrieved.Length != 0 {
		t.Errorf("Length = %d, want 0", retrieved.Length)
	}
}

func TestCreatedAtStampedOnce(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	first := mustPut(t, store, "steady")
	time.Sleep(10 * time.Millisecond)
	second := mustPut(t, store, "steady")

	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("CreatedAt = %v, want original %v", second.CreatedAt, first.CreatedAt)
	}
}
