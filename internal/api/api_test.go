package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"stringd/internal/analyzer"
	"stringd/internal/logging"
	"stringd/internal/service"
	"stringd/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	st, err := store.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	if err := st.CreateSchema(); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	logger := logging.New(logging.Config{Format: logging.HumanFormat, Level: logging.ErrorLevel, Output: io.Discard})
	return NewServer("127.0.0.1:0", service.New(st), logger)
}

func doRequest(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)
	return rr
}

func postString(t *testing.T, srv *Server, value string) *httptest.ResponseRecorder {
	t.Helper()
	return doRequest(t, srv, http.MethodPost, "/strings", map[string]string{"value": value})
}

func decodeRecord(t *testing.T, rr *httptest.ResponseRecorder) analyzer.Record {
	t.Helper()
	var rec analyzer.Record
	if err := json.Unmarshal(rr.Body.Bytes(), &rec); err != nil {
		t.Fatalf("failed to decode record: %v (body: %s)", err, rr.Body.String())
	}
	return rec
}

func TestCreateString(t *testing.T) {
	srv := newTestServer(t)

	rr := postString(t, srv, "racecar")
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body: %s)", rr.Code, rr.Body.String())
	}

	rec := decodeRecord(t, rr)
	if rec.Value != "racecar" {
		t.Errorf("value = %q, want racecar", rec.Value)
	}
	if !rec.IsPalindrome {
		t.Error("is_palindrome = false, want true")
	}
	if rec.Length != 7 {
		t.Errorf("length = %d, want 7", rec.Length)
	}
	if rec.UniqueCharacters != 4 {
		t.Errorf("unique_characters = %d, want 4", rec.UniqueCharacters)
	}
	if rec.WordCount != 1 {
		t.Errorf("word_count = %d, want 1", rec.WordCount)
	}
	if len(rec.ContentHash) != 64 {
		t.Errorf("id length = %d, want 64", len(rec.ContentHash))
	}
	if rec.CreatedAt.IsZero() {
		t.Error("created_at should be set")
	}
}

func TestCreateStringIdempotent(t *testing.T) {
	srv := newTestServer(t)

	first := postString(t, srv, "noon")
	if first.Code != http.StatusCreated {
		t.Fatalf("first POST status = %d, want 201", first.Code)
	}

	second := postString(t, srv, "noon")
	if second.Code != http.StatusOK {
		t.Fatalf("second POST status = %d, want 200 (idempotent)", second.Code)
	}

	firstRec := decodeRecord(t, first)
	secondRec := decodeRecord(t, second)
	if firstRec.ContentHash != secondRec.ContentHash {
		t.Error("re-POST should return the same record")
	}

	// No duplicate entries.
	list := doRequest(t, srv, http.MethodGet, "/strings", nil)
	var resp listResponse
	if err := json.Unmarshal(list.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if resp.Count != 1 {
		t.Errorf("count = %d, want 1", resp.Count)
	}
}

func TestCreateStringRejectsEmpty(t *testing.T) {
	srv := newTestServer(t)

	rr := postString(t, srv, "   ")
	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rr.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error: %v", err)
	}
	if resp.Code != "INVALID_INPUT" {
		t.Errorf("code = %s, want INVALID_INPUT", resp.Code)
	}
}

func TestCreateStringMissingValue(t *testing.T) {
	srv := newTestServer(t)

	rr := doRequest(t, srv, http.MethodPost, "/strings", map[string]int{"other": 1})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rr.Code)
	}
}

func TestCreateStringMalformedBody(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/strings", bytes.NewReader([]byte("{not json")))
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rr.Code)
	}
}

func TestGetString(t *testing.T) {
	srv := newTestServer(t)
	postString(t, srv, "hello world")

	rr := doRequest(t, srv, http.MethodGet, "/strings/hello%20world", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rr.Code, rr.Body.String())
	}

	rec := decodeRecord(t, rr)
	if rec.Value != "hello world" {
		t.Errorf("value = %q, want 'hello world'", rec.Value)
	}
	if rec.WordCount != 2 {
		t.Errorf("word_count = %d, want 2", rec.WordCount)
	}
}

func TestGetStringNotFound(t *testing.T) {
	srv := newTestServer(t)

	rr := doRequest(t, srv, http.MethodGet, "/strings/missing", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}

func TestDeleteString(t *testing.T) {
	srv := newTestServer(t)
	postString(t, srv, "transient")

	rr := doRequest(t, srv, http.MethodDelete, "/strings/transient", nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rr.Code)
	}

	rr = doRequest(t, srv, http.MethodGet, "/strings/transient", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("GET after DELETE status = %d, want 404", rr.Code)
	}
}

func TestDeleteStringNotFound(t *testing.T) {
	srv := newTestServer(t)

	rr := doRequest(t, srv, http.MethodDelete, "/strings/missing", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}

func TestListStringsFiltered(t *testing.T) {
	srv := newTestServer(t)
	for _, v := range []string{"racecar", "hello", "a b c", "noon"} {
		postString(t, srv, v)
	}

	cases := []struct {
		query     string
		wantCount int
	}{
		{"", 4},
		{"?is_palindrome=true", 2},
		{"?is_palindrome=false", 2},
		{"?min_length=5", 3},
		{"?min_length=5&max_length=5", 2},
		{"?word_count=3", 1},
		{"?contains_character=z", 0},
		{"?is_palindrome=true&contains_character=n", 1},
	}

	for _, tc := range cases {
		rr := doRequest(t, srv, http.MethodGet, "/strings"+tc.query, nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("GET /strings%s status = %d, want 200", tc.query, rr.Code)
		}

		var resp listResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode list: %v", err)
		}
		if resp.Count != tc.wantCount {
			t.Errorf("GET /strings%s count = %d, want %d", tc.query, resp.Count, tc.wantCount)
		}
		if len(resp.Data) != tc.wantCount {
			t.Errorf("GET /strings%s len(data) = %d, want %d", tc.query, len(resp.Data), tc.wantCount)
		}
	}
}

func TestListStringsFiltersApplied(t *testing.T) {
	srv := newTestServer(t)
	postString(t, srv, "noon")

	rr := doRequest(t, srv, http.MethodGet, "/strings?is_palindrome=true&min_length=2", nil)
	var resp listResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}

	if len(resp.FiltersApplied) != 2 {
		t.Errorf("filters_applied has %d entries, want 2: %v", len(resp.FiltersApplied), resp.FiltersApplied)
	}
	if resp.FiltersApplied["is_palindrome"] != true {
		t.Errorf("filters_applied[is_palindrome] = %v, want true", resp.FiltersApplied["is_palindrome"])
	}
}

func TestListStringsBadParameter(t *testing.T) {
	srv := newTestServer(t)

	for _, query := range []string{"?is_palindrome=maybe", "?min_length=abc", "?word_count=-1"} {
		rr := doRequest(t, srv, http.MethodGet, "/strings"+query, nil)
		if rr.Code != http.StatusUnprocessableEntity {
			t.Errorf("GET /strings%s status = %d, want 422", query, rr.Code)
		}
	}
}

func TestNaturalLanguageFilter(t *testing.T) {
	srv := newTestServer(t)
	for _, v := range []string{"racecar", "hello", "a b c"} {
		postString(t, srv, v)
	}

	rr := doRequest(t, srv, http.MethodGet,
		"/strings/filter-by-natural-language?query=show+me+palindromes", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rr.Code, rr.Body.String())
	}

	var resp nlResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 1 || resp.Data[0].Value != "racecar" {
		t.Errorf("count = %d, want the single palindrome", resp.Count)
	}
	if resp.InterpretedQuery.ParsedFilters["is_palindrome"] != true {
		t.Errorf("parsed_filters = %v, want is_palindrome=true", resp.InterpretedQuery.ParsedFilters)
	}
}

func TestNaturalLanguageFilterUnparseable(t *testing.T) {
	srv := newTestServer(t)

	rr := doRequest(t, srv, http.MethodGet,
		"/strings/filter-by-natural-language?query=what+is+the+weather", nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestNaturalLanguageFilterMissingQuery(t *testing.T) {
	srv := newTestServer(t)

	rr := doRequest(t, srv, http.MethodGet, "/strings/filter-by-natural-language", nil)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rr.Code)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	postString(t, srv, "alive")

	rr := doRequest(t, srv, http.MethodGet, "/health", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}
	if resp["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", resp["status"])
	}
	if resp["records"] != float64(1) {
		t.Errorf("records = %v, want 1", resp["records"])
	}
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(t)

	rr := doRequest(t, srv, http.MethodGet, "/health", nil)
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header should be set")
	}

	// A caller-provided request ID is echoed back.
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "test-id-42")
	out := httptest.NewRecorder()
	srv.ServeHTTP(out, req)
	if got := out.Header().Get("X-Request-ID"); got != "test-id-42" {
		t.Errorf("X-Request-ID = %q, want test-id-42", got)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPut, "/strings"},
		{http.MethodPost, "/strings/value"},
		{http.MethodPost, "/strings/filter-by-natural-language"},
		{http.MethodDelete, "/health"},
	}

	for _, tc := range cases {
		rr := doRequest(t, srv, tc.method, tc.path, nil)
		if rr.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s %s status = %d, want 405", tc.method, tc.path, rr.Code)
		}
	}
}

func TestUnicodeValueRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	rr := postString(t, srv, "日本語")
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rr.Code)
	}
	rec := decodeRecord(t, rr)
	if rec.Length != 3 {
		t.Errorf("length = %d, want 3 (runes, not bytes)", rec.Length)
	}

	rr = doRequest(t, srv, http.MethodGet, fmt.Sprintf("/strings/%s", "日本語"), nil)
	if rr.Code != http.StatusOK {
		t.Errorf("GET status = %d, want 200", rr.Code)
	}
}
