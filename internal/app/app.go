package app

import (
	"context"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/saltlock/internal/lock/outbound/store"
	"github.com/shandysiswandi/saltlock/internal/pkg/clock"
	"github.com/shandysiswandi/saltlock/internal/pkg/config"
	"github.com/shandysiswandi/saltlock/internal/pkg/goroutine"
	"github.com/shandysiswandi/saltlock/internal/pkg/hash"
	"github.com/shandysiswandi/saltlock/internal/pkg/instrument"
	"github.com/shandysiswandi/saltlock/internal/pkg/router"
	"github.com/shandysiswandi/saltlock/internal/pkg/uid"
	"github.com/shandysiswandi/saltlock/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	uuid      uid.StringID
	hashers   map[string]hash.Hash

	// resources
	cacheConn *redis.Client
	lockStore store.Store

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initHashers()
	app.initLockStore()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
