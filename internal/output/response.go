package output

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
)

// ResponseSink streams a single artifact as an HTTP attachment.
type ResponseSink struct {
	w http.ResponseWriter

	mu    sync.Mutex
	saved bool
}

func NewResponseSink(w http.ResponseWriter) *ResponseSink {
	return &ResponseSink{w: w}
}

// Written reports whether a response has been sent.
func (r *ResponseSink) Written() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.saved
}

func (r *ResponseSink) Save(_ context.Context, name, contentType string, blob []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.saved {
		return fmt.Errorf("response already written, cannot deliver %s", name)
	}

	r.saved = true

	h := r.w.Header()
	h.Set("Content-Type", contentType)
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	h.Set("Content-Length", strconv.Itoa(len(blob)))
	r.w.WriteHeader(http.StatusOK)

	if _, err := r.w.Write(blob); err != nil {
		return fmt.Errorf("writing response: %w", err)
	}

	return nil
}
