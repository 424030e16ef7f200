package handlers

import "net/http"

// Health is the liveness probe endpoint.
func Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
