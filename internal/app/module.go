package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/authmigrate/internal/authenticator"
)

func (a *App) initModules() {
	if err := authenticator.New(authenticator.Dependency{
		Goroutine:  a.goroutine,
		Router:     a.router,
		Config:     a.config,
		Instrument: a.ins,
		Clock:      a.clock,
		OTP:        a.otp,
		Validator:  a.validator,
	}); err != nil {
		slog.Error("failed to init module authenticator", "error", err)
		os.Exit(1)
	}
}
