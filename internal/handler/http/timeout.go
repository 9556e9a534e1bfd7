package http

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Timeout returns middleware that caps how long a request may run. When the
// deadline passes before the handler finishes, the client gets a 504 with a
// JSON body and any late writes from the handler are discarded. The request
// context carries the deadline so downstream code can stop early.
//
// A single mutex arbitrates between the handler goroutine and the timeout
// path, so exactly one of them writes the response.
func Timeout(duration time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), duration)
			defer cancel()
			r = r.WithContext(ctx)

			done := make(chan struct{})
			var mu sync.Mutex
			timedOut := false

			guarded := &guardedResponseWriter{
				ResponseWriter: w,
				mu:             &mu,
				timedOut:       &timedOut,
			}

			go func() {
				next.ServeHTTP(guarded, r)
				close(done)
			}()

			select {
			case <-done:
			case <-ctx.Done():
				mu.Lock()
				timedOut = true
				if !guarded.wrote {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusGatewayTimeout)
					_, _ = w.Write([]byte(`{"error":"request timeout"}`))
				}
				mu.Unlock()
			}
		})
	}
}

// guardedResponseWriter suppresses handler writes once the timeout response
// has gone out.
type guardedResponseWriter struct {
	http.ResponseWriter
	mu       *sync.Mutex
	timedOut *bool
	wrote    bool
}

func (w *guardedResponseWriter) WriteHeader(statusCode int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !*w.timedOut && !w.wrote {
		w.wrote = true
		w.ResponseWriter.WriteHeader(statusCode)
	}
}

func (w *guardedResponseWriter) Write(data []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if *w.timedOut {
		return 0, http.ErrHandlerTimeout
	}

	// Implicit 200 on first write, matching net/http semantics.
	if !w.wrote {
		w.wrote = true
		w.ResponseWriter.WriteHeader(http.StatusOK)
	}

	return w.ResponseWriter.Write(data)
}
