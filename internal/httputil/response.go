package httputil

import (
	"encoding/json"
	"net/http"
)

// CodeOK is the envelope code of a successful response.
const CodeOK = http.StatusOK

// Envelope wraps every dashboard API response.
// Code mirrors the HTTP status; 200 means success.
type Envelope struct {
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// RespondJSON writes data inside a success envelope with the given status code.
// It handles encoding errors safely by marshaling first, preventing
// partial responses if encoding fails after headers are sent.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	payload, err := json.Marshal(Envelope{
		Code:    CodeOK,
		Message: "success",
		Data:    data,
	})
	if err != nil {
		// Encoding failed - return 500 instead
		RespondError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// RespondError writes an error envelope whose code is the status.
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondErrorWithData(w, status, message, nil)
}

// RespondErrorWithData writes an error envelope carrying extra data,
// e.g. the id of the conflicting resource.
func RespondErrorWithData(w http.ResponseWriter, status int, message string, data interface{}) {
	payload, err := json.Marshal(Envelope{
		Code:    status,
		Message: message,
		Data:    data,
	})
	if err != nil {
		// Fallback to plain text if JSON encoding fails
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal server error"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}
