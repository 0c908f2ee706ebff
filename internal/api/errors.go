package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"stringd/internal/errors"
)

// ErrorResponse represents an HTTP error response
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

// WriteError writes err as a JSON error response, mapping coded errors to
// their HTTP status. Errors without a code become 500s.
func WriteError(w http.ResponseWriter, err error) {
	resp := ErrorResponse{Error: err.Error()}
	status := http.StatusInternalServerError
	resp.Code = string(errors.Internal)

	var coded *errors.CodedError
	if stderrors.As(err, &coded) {
		resp.Code = string(coded.Code)
		resp.Details = coded.Details
		resp.Error = coded.Message
		status = statusForCode(coded.Code)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// statusForCode maps service error codes to HTTP status codes
func statusForCode(code errors.ErrorCode) int {
	switch code {
	case errors.NotFound:
		return http.StatusNotFound // 404
	case errors.InvalidInput:
		return http.StatusUnprocessableEntity // 422
	case errors.QueryUnparseable:
		return http.StatusBadRequest // 400
	default:
		return http.StatusInternalServerError // 500
	}
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
