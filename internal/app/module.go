package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/saltlock/internal/lock"
)

func (a *App) initModules() {
	if err := lock.New(lock.Dependency{
		Store:      a.lockStore,
		Router:     a.router,
		Config:     a.config,
		Instrument: a.ins,
		Hashers:    a.hashers,
		Clock:      a.clock,
		Validator:  a.validator,
	}); err != nil {
		slog.Error("failed to init module lock", "error", err)
		os.Exit(1)
	}
}
