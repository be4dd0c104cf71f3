package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			logrus.WithError(err).Warn("failed to encode JSON response")
		}
	}
}

// respondError sends {"error": message, "detail": detail}
func respondError(w http.ResponseWriter, status int, message, detail string) {
	respondJSON(w, status, map[string]string{
		"error":  message,
		"detail": detail,
	})
}
