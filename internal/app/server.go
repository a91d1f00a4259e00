package app

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

// Start listens on the configured address and returns a channel that is
// closed once a termination signal arrives. A listener failure exits the
// process.
func (a *App) Start() <-chan struct{} {
	l, err := net.Listen("tcp", a.httpServer.Addr)
	if err != nil {
		slog.Error("failed to listen http server", "address", a.httpServer.Addr, "error", err)
		os.Exit(1)
	}
	slog.Info("http server listening", "address", l.Addr().String())

	serveErr := a.Serve(l)
	sigCtx, stop := signal.NotifyContext(a.ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	terminate := make(chan struct{})
	go func() {
		defer stop()

		select {
		case <-sigCtx.Done():
			slog.Info("termination signal received")
		case err := <-serveErr:
			if !errors.Is(err, http.ErrServerClosed) {
				slog.Error("failed to serve http server", "error", err)
				os.Exit(1)
			}
		}

		close(terminate)
	}()

	return terminate
}

// Serve runs the HTTP server on l. The returned channel yields the serve
// error once the server stops.
func (a *App) Serve(l net.Listener) <-chan error {
	errChan := make(chan error, 1)

	go func() {
		errChan <- a.httpServer.Serve(l)
		close(errChan)
	}()

	return errChan
}

// Stop ends open code streams, shuts the HTTP server down, waits for
// background work and closes resources, in that order.
func (a *App) Stop(ctx context.Context) {
	if a.cancel != nil {
		a.cancel()
	}

	if err := a.httpServer.Shutdown(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to close resources", "name", "HTTP Server", "error", err)
	}

	slog.InfoContext(ctx, "waiting for all goroutine to finish", "active", a.goroutine.Active())
	if err := a.goroutine.Wait(); err != nil {
		slog.ErrorContext(ctx, "error from goroutines executions", "error", err)
	}

	for _, closer := range a.closers {
		if err := closer.fn(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resources", "name", closer.name, "error", err)
		}
	}

	slog.InfoContext(ctx, "application gracefully shutdown")
}
