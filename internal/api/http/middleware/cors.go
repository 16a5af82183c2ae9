package middleware

import "net/http"

// CORS answers preflight requests and sets CORS headers for allowOrigin.
type CORS struct {
	allowOrigin string
}

// NewCORS creates a new CORS middleware.
func NewCORS(allowOrigin string) *CORS {
	return &CORS{allowOrigin: allowOrigin}
}

// Handle sets CORS headers and short-circuits OPTIONS preflights with 204.
func (c *CORS) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		origin := c.allowOrigin
		// Browsers refuse a literal "*" on credentialed requests.
		if origin == "*" && r.Header.Get("Origin") != "" {
			origin = r.Header.Get("Origin")
			h.Add("Vary", "Origin")
		}
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Credentials", "true")

		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			h.Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
