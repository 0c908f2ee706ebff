package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"stringd/internal/analyzer"
	"stringd/internal/errors"
	"stringd/internal/nlfilter"
)

// naturalLanguagePath is handled specially under the /strings/ subtree, so a
// stored value spelled exactly like it is unreachable over HTTP. Acceptable:
// the CLI can still address it.
const naturalLanguagePath = "filter-by-natural-language"

// createRequest is the POST /strings body.
type createRequest struct {
	Value *string `json:"value"`
}

// listResponse is the GET /strings response envelope.
type listResponse struct {
	Data           []*analyzer.Record     `json:"data"`
	Count          int                    `json:"count"`
	FiltersApplied map[string]interface{} `json:"filters_applied"`
}

// nlResponse is the natural-language filter response envelope.
type nlResponse struct {
	Data             []*analyzer.Record `json:"data"`
	Count            int                `json:"count"`
	InterpretedQuery interpretedQuery   `json:"interpreted_query"`
}

type interpretedQuery struct {
	Original      string                 `json:"original"`
	ParsedFilters map[string]interface{} `json:"parsed_filters"`
}

// handleRoot handles GET /
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	WriteJSON(w, map[string]string{"message": "string analyzer API is running"}, http.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	count, err := s.svc.Count()
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteJSON(w, map[string]interface{}{
		"status":  "healthy",
		"records": count,
	}, http.StatusOK)
}

// handleStrings handles POST /strings (create) and GET /strings (list).
func (s *Server) handleStrings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreate(w, r)
	case http.MethodGet:
		s.handleList(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleCreate analyzes and stores the submitted value. Responds 201 when a
// new record was created and 200 when the value was already stored.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, errors.Wrap(errors.InvalidInput, "malformed request body", err))
		return
	}
	if req.Value == nil {
		WriteError(w, errors.New(errors.InvalidInput, "missing required field: value"))
		return
	}

	rec, created, err := s.svc.AnalyzeAndStore(*req.Value)
	if err != nil {
		WriteError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	WriteJSON(w, rec, status)
}

// handleList returns all records matching the query-parameter filter.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	filter, err := ParseFilter(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	records, err := s.svc.List(filter)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteJSON(w, listResponse{
		Data:           records,
		Count:          len(records),
		FiltersApplied: filter.Applied(),
	}, http.StatusOK)
}

// handleStringByValue routes /strings/{value} and the natural-language
// filter endpoint.
func (s *Server) handleStringByValue(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/strings/")

	if rest == naturalLanguagePath {
		s.handleNaturalLanguage(w, r)
		return
	}

	if rest == "" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.handleGet(w, r, rest)
	case http.MethodDelete:
		s.handleDelete(w, r, rest)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleGet handles GET /strings/{value}
func (s *Server) handleGet(w http.ResponseWriter, _ *http.Request, value string) {
	rec, err := s.svc.GetByValue(value)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, rec, http.StatusOK)
}

// handleDelete handles DELETE /strings/{value}
func (s *Server) handleDelete(w http.ResponseWriter, _ *http.Request, value string) {
	if err := s.svc.DeleteByValue(value); err != nil {
		WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleNaturalLanguage handles GET /strings/filter-by-natural-language
func (s *Server) handleNaturalLanguage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query().Get("query")
	if query == "" {
		WriteError(w, errors.New(errors.InvalidInput, "missing required parameter: query"))
		return
	}

	filter, err := nlfilter.Parse(query)
	if err != nil {
		WriteError(w, err)
		return
	}

	records, err := s.svc.List(filter)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteJSON(w, nlResponse{
		Data:  records,
		Count: len(records),
		InterpretedQuery: interpretedQuery{
			Original:      query,
			ParsedFilters: filter.Applied(),
		},
	}, http.StatusOK)
}
