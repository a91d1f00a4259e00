package router

import (
	"bytes"
	"net/http"
)

const maxLoggedBodyBytes = 32 * 1024 // 32KB

// responseRecorder tracks what a handler wrote so the observability
// middleware can log and measure it. body is nil when capture is off.
type responseRecorder struct {
	http.ResponseWriter
	status    int
	written   int
	body      *bytes.Buffer
	truncated bool
	err       error
}

func (w *responseRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseRecorder) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	w.capture(p)

	n, err := w.ResponseWriter.Write(p)
	w.written += n
	return n, err
}

func (w *responseRecorder) capture(p []byte) {
	if w.body == nil || w.truncated {
		return
	}

	if room := maxLoggedBodyBytes - w.body.Len(); len(p) > room {
		p = p[:room]
		w.truncated = true
	}
	w.body.Write(p)
}

// SetError keeps the handler error for the span.
func (w *responseRecorder) SetError(err error) {
	w.err = err
}

// Flush lets event streams push frames through the recorder.
func (w *responseRecorder) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (w *responseRecorder) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func (w *responseRecorder) statusCode() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}
