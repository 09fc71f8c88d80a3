package handler

import (
	"encoding/json"
	"log"
	"net/http"
)

// respondWithError is a helper to send an error response in JSON format.
// Example: {"error": "what went wrong"}
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJson(w, code, map[string]string{"error": message})
}

// respondWithJson handles marshaling, header setting and writing the
// response. 'payload' is 'interface{}' so it accepts any type (struct, map,
// etc).
func respondWithJson(w http.ResponseWriter, code int, payload interface{}) {
	dat, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal JSON response: %v", payload)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(dat)
}
