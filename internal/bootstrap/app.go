package bootstrap

import (
	"context"
	"crypto/tls"
	"database/sql"
	"fmt"
	"io"
	"os"
	"time"

	"code.cloudfoundry.org/lager"
	"github.com/hashicorp/go-multierror"
	"github.com/redis/go-redis/v9"

	"github.com/bryanwahyu/passwise/internal/application"
	appai "github.com/bryanwahyu/passwise/internal/application/ai"
	appstrength "github.com/bryanwahyu/passwise/internal/application/strength"
	"github.com/bryanwahyu/passwise/internal/config"
	"github.com/bryanwahyu/passwise/internal/domain/analyst"
	domain "github.com/bryanwahyu/passwise/internal/domain/strength"
	"github.com/bryanwahyu/passwise/internal/infra/ai/openai"
	"github.com/bryanwahyu/passwise/internal/infra/breach"
	"github.com/bryanwahyu/passwise/internal/infra/db/memory"
	mysqlp "github.com/bryanwahyu/passwise/internal/infra/db/mysql"
	"github.com/bryanwahyu/passwise/internal/infra/db/postgres"
	"github.com/bryanwahyu/passwise/internal/infra/storage"
	"github.com/bryanwahyu/passwise/internal/middleware"
)

// App holds the dependencies shared by the API server and the CLI.
type App struct {
	Config   *config.Config
	Logger   lager.Logger
	DB       *sql.DB
	Redis    *redis.Client
	Store    *storage.Store
	Lookup   domain.CompromisedLookup
	Records  analyst.Repository
	Reasoner domain.Reasoner
	Service  *appstrength.Service
	Checkers map[string]middleware.HealthChecker
}

// NewLogger builds the root logger with a stdout sink at the configured level.
func NewLogger(component, level string) lager.Logger {
	logger := lager.NewLogger(component)
	logger.RegisterSink(lager.NewWriterSink(os.Stdout, logLevel(level)))
	return logger
}

func logLevel(level string) lager.LogLevel {
	switch level {
	case "debug":
		return lager.DEBUG
	case "error":
		return lager.ERROR
	case "fatal":
		return lager.FATAL
	}
	return lager.INFO
}

// Build connects every configured backend. Close must be called on success.
func Build(ctx context.Context, cfg *config.Config, logger lager.Logger) (*App, error) {
	app := &App{
		Config:   cfg,
		Logger:   logger,
		Checkers: map[string]middleware.HealthChecker{},
	}
	if err := app.connect(ctx); err != nil {
		app.Close()
		return nil, err
	}
	if err := app.buildLookup(ctx); err != nil {
		app.Close()
		return nil, err
	}
	app.buildRecords()
	app.buildReasoner()

	app.Service = &appstrength.Service{
		Lookup:   app.Lookup,
		Reasoner: app.Reasoner,
		Records:  app.Records,
		Clock:    application.SystemClock{},
		Policy: appstrength.GenerationPolicy{
			Mode:        appstrength.Mode(cfg.Generator.Mode),
			MaxAttempts: cfg.Generator.MaxAttempts,
		},
		Logger: logger,
	}
	return app, nil
}

func (a *App) connect(ctx context.Context) error {
	cfg := a.Config
	logger := a.Logger.Session("connect")

	switch cfg.Database.Driver {
	case "mysql":
		db, err := mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			return fmt.Errorf("mysql connect: %w", err)
		}
		a.DB = db
		if cfg.Database.Migrate {
			if err := mysqlp.Migrate(ctx, db); err != nil {
				return err
			}
		}
	case "postgres":
		db, err := postgres.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			return fmt.Errorf("postgres connect: %w", err)
		}
		a.DB = db
		if cfg.Database.Migrate {
			if err := postgres.Migrate(ctx, db); err != nil {
				return fmt.Errorf("postgres migrate: %w", err)
			}
		}
	}
	if a.DB != nil {
		a.Checkers["database"] = &middleware.DatabaseHealthChecker{DB: a.DB}
		logger.Info("database-connected", lager.Data{"driver": cfg.Database.Driver})
	}

	if cfg.Redis.URL != "" || cfg.Redis.Addr != "" {
		rdb, err := newRedis(cfg)
		if err != nil {
			return err
		}
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return fmt.Errorf("redis ping: %w", err)
		}
		a.Redis = rdb
		a.Checkers["redis"] = middleware.CheckerFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
		logger.Info("redis-connected")
	}

	if cfg.Minio.Endpoint != "" && cfg.Minio.BucketName != "" {
		store, err := storage.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			return fmt.Errorf("minio init: %w", err)
		}
		a.Store = store
		a.Checkers["minio"] = middleware.CheckerFunc(store.Ping)
		logger.Info("minio-connected", lager.Data{"bucket": cfg.Minio.BucketName})
	}
	return nil
}

func newRedis(cfg *config.Config) (*redis.Client, error) {
	if cfg.Redis.URL != "" {
		// e.g. rediss://default:<token>@host:port
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		if opt.TLSConfig != nil {
			opt.TLSConfig.MinVersion = tls.VersionTLS12
		}
		if cfg.Redis.Password != "" {
			opt.Password = cfg.Redis.Password
		}
		opt.DialTimeout = 5 * time.Second
		opt.ReadTimeout = time.Second
		opt.WriteTimeout = time.Second
		return redis.NewClient(opt), nil
	}
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr,
		Username:     cfg.Redis.Username,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	}), nil
}

func (a *App) buildLookup(ctx context.Context) error {
	cfg := a.Config
	logger := a.Logger.Session("breach", lager.Data{"backend": cfg.Breach.Backend})

	switch cfg.Breach.Backend {
	case "redis":
		if a.Redis == nil {
			return fmt.Errorf("breach backend redis: no redis configured")
		}
		a.Lookup = breach.NewRedisLookup(a.Redis, cfg.Breach.RedisKey)
		return nil
	case "sql":
		if a.DB == nil {
			return fmt.Errorf("breach backend sql: no database configured")
		}
		a.Lookup = breach.NewSQLLookup(a.DB, breach.Dialect(cfg.Database.Driver))
		return nil
	}

	var seed []string
	if cfg.Breach.Seed || cfg.Breach.CorpusKey == "" {
		seed = breach.ReferenceSet
	}
	mem := breach.NewMemoryLookup(seed...)
	if cfg.Breach.CorpusKey != "" && a.Store != nil {
		n, err := a.loadCorpus(ctx, mem, cfg.Breach.CorpusKey)
		if err != nil {
			// partial corpora are still useful
			logger.Error("corpus-load-incomplete", err, lager.Data{"loaded": n})
		}
		logger.Info("corpus-loaded", lager.Data{"key": cfg.Breach.CorpusKey, "entries": mem.Len()})
	}
	a.Lookup = mem
	return nil
}

func (a *App) loadCorpus(ctx context.Context, mem *breach.MemoryLookup, key string) (int, error) {
	rc, err := a.Store.Open(ctx, key)
	if err != nil {
		return 0, err
	}
	defer rc.Close()
	return mem.Load(rc)
}

func (a *App) buildRecords() {
	switch {
	case a.DB != nil && a.Config.Database.Driver == "mysql":
		a.Records = mysqlp.NewAnalystRepository(a.DB)
	case a.DB != nil && a.Config.Database.Driver == "postgres":
		a.Records = postgres.NewAnalystRepository(a.DB)
	default:
		a.Records = memory.NewAnalystRepository(a.Config.Records.MemoryLimit)
	}
}

func (a *App) buildReasoner() {
	cfg := a.Config.OpenAI
	if !cfg.Enabled {
		a.Reasoner = domain.TemplateReasoner{}
		return
	}
	var client *openai.Client
	if cfg.BaseURL != "" {
		client = openai.NewClientWithBaseURL(cfg.APIKey, cfg.Model, cfg.BaseURL)
	} else {
		client = openai.NewClient(cfg.APIKey, cfg.Model)
	}
	a.Reasoner = &timeoutReasoner{
		next:    appai.NewService(client),
		timeout: time.Duration(cfg.Timeout) * time.Second,
	}
	a.Logger.Info("openai-reasoner-enabled", lager.Data{"model": cfg.Model})
}

// timeoutReasoner bounds how long analyze waits on the LLM.
type timeoutReasoner struct {
	next    domain.Reasoner
	timeout time.Duration
}

func (t *timeoutReasoner) Reason(ctx context.Context, in domain.ReasonInput) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Reason(ctx, in)
}

// Importer is a breach backend that can bulk-load a corpus.
type Importer interface {
	Import(ctx context.Context, src io.Reader) (int, error)
}

// BreachImporter returns the persistent backend to import into.
func (a *App) BreachImporter() (Importer, error) {
	switch a.Config.Breach.Backend {
	case "redis":
		return a.Lookup.(*breach.RedisLookup), nil
	case "sql":
		return a.Lookup.(*breach.SQLLookup), nil
	}
	return nil, fmt.Errorf("breach backend %q is in-memory; import needs redis or sql", a.Config.Breach.Backend)
}

// Close releases every connection, reporting all failures.
func (a *App) Close() error {
	var result *multierror.Error
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("close database: %w", err))
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("close redis: %w", err))
		}
	}
	return result.ErrorOrNil()
}
