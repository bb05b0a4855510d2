package utils

import (
	"encoding/json"
	"net/http"
)

// GraphQLError is one entry of a GraphQL response "errors" list.
type GraphQLError struct {
	Message    string         `json:"message"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

type errorResponse struct {
	Errors []GraphQLError `json:"errors"`
}

// ResponseJSON writes data as JSON with the given status code
func ResponseJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(data)
}

// ResponseError writes a GraphQL-shaped error body for failures that happen
// outside query execution (bad request body, panics).
func ResponseError(w http.ResponseWriter, code int, appErr *AppError) {
	ResponseJSON(w, code, errorResponse{
		Errors: []GraphQLError{{
			Message:    appErr.Message,
			Extensions: appErr.Extensions(),
		}},
	})
}

// returns 400 Bad Request
func ResponseBadRequest(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusBadRequest, BadUserInput(message))
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter) {
	ResponseError(w, http.StatusInternalServerError, Internal("Internal server error", nil))
}
