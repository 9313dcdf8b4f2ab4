package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dermai/dermai/pkg/respond"
)

// RequestTimeout returns middleware that sets a context deadline on each
// incoming request. If the deadline is exceeded before the handler completes,
// the request context is cancelled and a 504 Gateway Timeout response is
// returned. Handlers that need more time can derive a longer deadline from
// the request context.
//
// The handler goroutine may still be running when the 504 is written, so the
// response writer is guarded: once the timeout response goes out, late writes
// from the handler are dropped; if the handler already started writing, the
// timeout response is skipped.
func RequestTimeout(timeout time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
			defer cancel()

			c.SetRequest(c.Request().WithContext(ctx))

			gw := &guardedWriter{ResponseWriter: c.Response().Writer}
			c.Response().Writer = gw

			done := make(chan error, 1)
			go func() {
				done <- next(c)
			}()

			select {
			case err := <-done:
				return err
			case <-ctx.Done():
				if ctx.Err() == context.DeadlineExceeded {
					gw.writeTimeout()
					return nil
				}
				// Other cancellation reasons (e.g. client disconnect).
				return ctx.Err()
			}
		}
	}
}

// guardedWriter serializes writes from the handler goroutine and the timeout
// path. Whichever writes first wins; the other side's writes are discarded.
type guardedWriter struct {
	http.ResponseWriter
	mu        sync.Mutex
	wrote     bool
	abandoned bool
}

func (w *guardedWriter) WriteHeader(code int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.abandoned {
		return
	}
	w.wrote = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *guardedWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.abandoned {
		return len(p), nil
	}
	w.wrote = true
	return w.ResponseWriter.Write(p)
}

// writeTimeout emits the 504 envelope unless the handler already started
// writing, and cuts the handler off from the connection either way.
func (w *guardedWriter) writeTimeout() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.wrote {
		w.abandoned = true
		return
	}
	w.abandoned = true

	body, _ := json.Marshal(respond.Envelope{
		Success: false,
		Message: "request processing exceeded the allowed time limit",
	})
	w.ResponseWriter.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w.ResponseWriter.WriteHeader(http.StatusGatewayTimeout)
	w.ResponseWriter.Write(body)
}
