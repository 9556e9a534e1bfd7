package http

import (
	"net/http"
)

// Request input limits. Every body this API accepts is small: a YouTube
// link, a credential pair, or nothing at all. The body cap is still
// generous so proxies that pad requests do not trip it.
const (
	maxAuthHeaderBytes = 8192
	maxCookieBytes     = 8192
	maxPathBytes       = 2048
	maxBodyBytes       = 1 << 20
)

// InputValidation returns middleware that rejects requests with oversized
// inputs before any handler work happens. It checks the Authorization
// header, the Cookie header (the session token travels there), the URI
// path, and caps the request body.
func InputValidation() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.Header.Get("Authorization")) > maxAuthHeaderBytes {
				writeLimitError(w, http.StatusBadRequest, "authorization header too large")
				return
			}

			if len(r.Header.Get("Cookie")) > maxCookieBytes {
				writeLimitError(w, http.StatusBadRequest, "cookie header too large")
				return
			}

			if len(r.URL.Path) > maxPathBytes {
				writeLimitError(w, http.StatusRequestURITooLong, "URI too long")
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

			next.ServeHTTP(w, r)
		})
	}
}

func writeLimitError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}
