package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/sethvargo/go-retry"
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

func (a *App) initConfig() {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "./config/config.yaml"
	}

	cfg, err := config.NewViper(path)
	if err != nil {
		slog.Error("failed to init config", "path", path, "error", err)
		os.Exit(1)
	}

	a.config = cfg
}

func (a *App) initInstrument() {
	ins, err := instrument.New(a.ctx, &instrument.Config{
		Enabled:          a.config.GetBool("instrument.enabled"),
		ServiceName:      a.config.GetString("instrument.service_name"),
		ServiceVersion:   a.config.GetString("instrument.service_version"),
		Environment:      a.config.GetString("instrument.env"),
		OTLPEndpoint:     a.config.GetString("instrument.otlp_endpoint"),
		OTLPSecure:       a.config.GetBool("instrument.otlp_secure"),
		TraceSampleRatio: a.config.GetFloat64("instrument.trace_sample_ratio"),
		MetricsInterval:  a.config.GetSecond("instrument.metric_interval_seconds"),
		MaskFields:       a.config.GetArray("instrument.log_mask_fields"),
	})
	if err != nil {
		slog.Error("failed to init instrumentation", "error", err)
		os.Exit(1)
	}
	a.ins = ins
}

func (a *App) initLibraries() {
	a.clock = clock.New()
	a.uuid = uid.NewUUID()
	a.goroutine = goroutine.NewManager(a.config.GetInt("app.server.max_goroutine"))

	validator, err := validator.NewV10Validator()
	if err != nil {
		slog.Error("failed to init validation v10 validator", "error", err)
		os.Exit(1)
	}
	a.validator = validator
}

// initHashers builds every supported algorithm so locks written under an older
// hash.algorithm setting still verify.
func (a *App) initHashers() {
	algorithm := hash.Normalize(a.config.GetString("hash.algorithm"))
	if algorithm == hash.AlgorithmHMACSHA256 && a.config.GetString("hash.hmac.secret") == "" {
		slog.Error("hash.hmac.secret is required for the hmac_sha256 algorithm")
		os.Exit(1)
	}

	opts := hash.Options{
		HMACSecret:     a.config.GetString("hash.hmac.secret"),
		BcryptCost:     a.config.GetInt("hash.bcrypt.cost"),
		BcryptPepper:   a.config.GetString("hash.bcrypt.pepper"),
		Argon2idPepper: a.config.GetString("hash.argon2id.pepper"),
	}

	hashers := make(map[string]hash.Hash, len(hash.Algorithms()))
	for _, name := range hash.Algorithms() {
		h, err := hash.New(name, opts)
		if err != nil {
			slog.Error("failed to init hasher", "algorithm", name, "error", err)
			os.Exit(1)
		}
		hashers[name] = h
	}

	if _, ok := hashers[algorithm]; !ok {
		slog.Error("unsupported hash algorithm", "algorithm", algorithm, "supported", hash.Algorithms())
		os.Exit(1)
	}

	a.hashers = hashers
	slog.Info("password hashing configured", "algorithm", algorithm)
}

func (a *App) initLockStore() {
	driver := strings.ToLower(strings.TrimSpace(a.config.GetString("lock.store.driver")))

	if driver == store.DriverRedis {
		a.initRedis()
	}

	s, err := store.New(store.Config{
		Driver: driver,
		Redis:  a.cacheConn,
		Prefix: a.config.GetString("lock.store.redis.prefix"),
		TTL:    a.config.GetSecond("lock.store.ttl_seconds"),
	}, a.ins)
	if err != nil {
		slog.Error("failed to init lock store", "driver", driver, "error", err)
		os.Exit(1)
	}

	a.lockStore = s
}

func (a *App) initRedis() {
	opt, err := redis.ParseURL(a.config.GetString("lock.store.redis.url"))
	if err != nil {
		slog.Error("failed to parse redis url", "error", err)
		os.Exit(1)
	}

	rdb := redis.NewClient(opt)

	b := retry.NewFibonacci(200 * time.Millisecond)
	b = retry.WithMaxRetries(5, b)
	b = retry.WithCappedDuration(5*time.Second, b)

	if err := retry.Do(a.ctx, b, func(ctx context.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		if err := rdb.Ping(pingCtx).Err(); err != nil {
			slog.WarnContext(ctx, "redis not ready, retrying", "error", err)
			return retry.RetryableError(err)
		}
		return nil
	}); err != nil {
		slog.Error("failed to init redis", "error", err)
		os.Exit(1)
	}

	a.cacheConn = rdb
}

func (a *App) initHTTPServer() {
	a.router = router.NewRouter(router.Config{
		Config:     a.config,
		UUID:       a.uuid,
		Instrument: a.ins,
	})

	routerWithCORS := cors.New(cors.Options{
		AllowedOrigins: a.config.GetArray("app.server.cors"),
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
	}).Handler(a.router)

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("app.server.http.address"),
		Handler:           routerWithCORS,
		ReadTimeout:       a.config.GetSecond("app.server.http.read_timeout_seconds"),
		ReadHeaderTimeout: a.config.GetSecond("app.server.http.read_header_timeout_seconds"),
		WriteTimeout:      a.config.GetSecond("app.server.http.write_timeout_seconds"),
		IdleTimeout:       a.config.GetSecond("app.server.http.idle_timeout_seconds"),
	}
}

func (a *App) initClosers() {
	a.closers = []struct {
		name string
		fn   func(context.Context) error
	}{
		{
			name: "Instrument",
			fn: func(ctx context.Context) error {
				return a.ins.Shutdown(ctx)
			},
		},
		{
			name: "Redis",
			fn: func(context.Context) error {
				if a.cacheConn == nil {
					return nil
				}
				return a.cacheConn.Close()
			},
		},
		{
			name: "Config",
			fn: func(context.Context) error {
				return a.config.Close()
			},
		},
	}
}
