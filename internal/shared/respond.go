package shared

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ErrorBody is the JSON envelope returned on every rejection path.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondJSON writes v as a JSON response with the given status.
func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// RespondError writes the standard error envelope.
func RespondError(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, ErrorBody{Code: code, Message: message})
}

// RespondStoreError maps repository sentinel errors to HTTP responses.
func RespondStoreError(w http.ResponseWriter, err error, entity string) {
	switch {
	case errors.Is(err, ErrNotFound):
		RespondError(w, http.StatusNotFound, "NOT_FOUND", entity+" not found")
	case errors.Is(err, ErrAlreadyExists):
		RespondError(w, http.StatusConflict, "ALREADY_EXISTS", entity+" already exists")
	case errors.Is(err, ErrForeignKey):
		RespondError(w, http.StatusBadRequest, "INVALID_REFERENCE", entity+" references a missing record")
	default:
		RespondError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}

// DecodeJSON parses a request body into dst. Unknown fields are
// ignored; provider callbacks carry members the DTOs do not model.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(dst)
}
