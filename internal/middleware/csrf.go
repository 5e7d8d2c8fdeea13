package middleware

import (
	"net/http"

	"github.com/gorilla/csrf"
)

// PlaintextHTTP tells gorilla/csrf that requests arriving without TLS are
// served over plain HTTP, so its origin checks do not assume https.
// Only use it outside production.
func PlaintextHTTP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.TLS == nil {
			r = csrf.PlaintextHTTPRequest(r)
		}
		next.ServeHTTP(w, r)
	})
}
