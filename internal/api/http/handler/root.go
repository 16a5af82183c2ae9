package handler

import "net/http"

// Root answers liveness probes.
func Root(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusOK, "Server is running")
}
