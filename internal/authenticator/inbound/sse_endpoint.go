package inbound

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/samber/lo"
	"github.com/shandysiswandi/authmigrate/internal/pkg/goerror"
)

// StreamCodes pushes refreshed codes of every account using SSE.
// @Summary Stream codes
// @Description Emits an event "codes" right away and after every refresh.
// @Tags Authenticator
// @Produce text/event-stream
// @Success 200 {string} string "SSE stream"
// @Failure 500 {string} string "streaming unsupported"
// @Failure 503 {object} ErrorResponse "Too many code streams"
// @Router /api/v1/authenticator/stream [get]
func (h *HTTPEndpoint) StreamCodes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stream, err := h.uc.StreamCodes(ctx)
	if err != nil {
		writeStreamError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if _, err := fmt.Fprint(w, ": connected\n\n"); err != nil {
		slog.ErrorContext(ctx, "failed to send response connected", "error", err)
		return
	}
	flusher.Flush()

	// heartbeat ping, so proxies won't drop idle connections.
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()

		case batch, ok := <-stream:
			if !ok {
				return
			}
			payload, err := json.Marshal(CodesEvent{Codes: lo.Map(batch, toCodeResponse)})
			if err != nil {
				slog.ErrorContext(ctx, "failed to marshal data", "error", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "event: codes\ndata: %s\n\n", payload); err != nil {
				slog.ErrorContext(ctx, "failed to send response data", "error", err)
				return
			}
			flusher.Flush()
		}
	}
}

// writeStreamError answers a refused stream before any SSE header is sent.
func writeStreamError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	msg := "Internal server error"

	var gerr *goerror.Error
	if errors.As(err, &gerr) {
		code = gerr.StatusCode()
		msg = gerr.Msg()
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	//nolint:errcheck,gosec // client may already be gone
	json.NewEncoder(w).Encode(ErrorResponse{Message: msg})
}
