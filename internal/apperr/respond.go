package apperr

import (
	"encoding/json"
	"net/http"
)

type errorBody struct {
	Error string `json:"error"`
}

// WriteError renders err as the `{"error": <message>}` body with its mapped
// status. Any non-taxonomy error renders as the generic internal error.
func WriteError(w http.ResponseWriter, err error) {
	ae := From(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(ae.Status())
	_ = json.NewEncoder(w).Encode(errorBody{Error: ae.PublicMessage()})
}
