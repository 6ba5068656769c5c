package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/futig/ums-chatbot/internal/entity"
)

// JSON writes a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		// Headers are already sent, nothing useful can be reported to the caller
		_ = json.NewEncoder(w).Encode(data)
	}
}

// Raw writes a body exactly as received from another service
func Raw(w http.ResponseWriter, status int, contentType string, body []byte) {
	if contentType == "" {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)

	if len(body) > 0 {
		_, _ = w.Write(body)
	}
}

// RelayError writes the fixed body of a relay failure. Errors of any other
// type are reported as internal errors.
func RelayError(w http.ResponseWriter, err error) {
	var relayErr *entity.RelayError
	if !errors.As(err, &relayErr) {
		relayErr = entity.NewInternalError(err)
	}

	JSON(w, relayErr.StatusCode(), relayErr.Response())
}

// Success writes a success response
func Success(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}
