package cli

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	activitylog "github.com/goliatone/go-activitylog"
	"github.com/goliatone/go-activitylog/activity"
	"github.com/goliatone/go-activitylog/config"
	"github.com/goliatone/go-activitylog/migrations"
	"github.com/goliatone/go-activitylog/pkg/authctx"
	"github.com/goliatone/go-activitylog/pkg/types"
	"github.com/goliatone/go-activitylog/registry"
	"github.com/goliatone/go-activitylog/service"
	gconfig "github.com/goliatone/go-config/config"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	persistence "github.com/goliatone/go-persistence-bun"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"
)

// operatorID identifies the CLI reader when --actor is not given.
var operatorID = uuid.NewSHA1(uuid.NameSpaceOID, []byte("go-activitylog/cli"))

// App holds the loaded configuration and wired services for one command.
type App struct {
	config  *gconfig.Container[*config.BaseConfig]
	logger  *glog.BaseLogger
	db      *bun.DB
	service *service.Service
}

func (a *App) Config() *config.BaseConfig {
	return a.config.Raw()
}

func (a *App) GetLogger(name string) glog.Logger {
	return a.logger.GetLogger(name)
}

func newLogger(debug bool) *glog.BaseLogger {
	if debug {
		return glog.NewLogger(
			glog.WithLoggerTypePretty(),
			glog.WithLevel(glog.Trace),
			glog.WithName("activitylog"),
			glog.WithAddSource(false),
			glog.WithRichErrorHandler(errors.ToSlogAttributes),
		)
	}
	return glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithName("activitylog"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)
}

// loadApp reads configuration and applies flag overrides. It does not touch
// the database.
func loadApp(ctx context.Context, flags *rootFlags) (*App, error) {
	lgr := newLogger(flags.debug)
	cfg := gconfig.New(config.Defaults()).WithLogger(lgr.GetLogger("config"))
	if err := cfg.Load(ctx); err != nil {
		return nil, err
	}
	flags.apply(cfg.Raw())
	if err := cfg.Raw().Validate(); err != nil {
		return nil, err
	}
	if cfg.Raw().Log.Debug && !flags.debug {
		lgr = newLogger(true)
	}
	return &App{
		config: cfg,
		logger: lgr,
	}, nil
}

func (a *App) openDB(ctx context.Context, migrate bool) error {
	pcfg := a.Config().Persistence
	driver, dialect, err := sqlDriver(pcfg.Driver)
	if err != nil {
		return err
	}
	sqlDB, err := sql.Open(driver, pcfg.Server)
	if err != nil {
		return err
	}

	persistence.RegisterModel((*activity.LogEntry)(nil))
	client, err := persistence.New(pcfg, sqlDB, dialect)
	if err != nil {
		return err
	}
	client.SetLogger(a.GetLogger("persistence"))

	if migrate {
		for _, migrationsFS := range migrations.Filesystems() {
			client.RegisterDialectMigrations(
				migrationsFS,
				persistence.WithDialectSourceLabel("."),
				persistence.WithValidationTargets("postgres", "sqlite"),
			)
		}
		if err := client.ValidateDialects(ctx); err != nil {
			a.GetLogger("persistence").Warn("dialect validation failed", "error", err)
		}
		if err := client.Migrate(ctx); err != nil {
			return err
		}
		if report := client.Report(); report != nil && !report.IsZero() {
			a.GetLogger("persistence").Info("migrations applied", "report", report.String())
		}
	}

	a.db = client.DB()
	return nil
}

func (a *App) buildService(ctx context.Context) error {
	if a.db == nil {
		if err := a.openDB(ctx, false); err != nil {
			return err
		}
	}
	logger := &loggerAdapter{a.GetLogger("service")}
	settings := a.Config().ActivityLog

	repo, err := activity.NewRepository(activity.RepositoryConfig{DB: a.db}, activity.WithCache(settings.Cache))
	if err != nil {
		return err
	}
	subjects, err := registry.NewSubjectRegistry(registry.SubjectRegistryConfig{DB: a.db, Logger: logger})
	if err != nil {
		return err
	}
	svcCfg, err := settings.ApplyService(service.Config{
		ActivityRepository: repo,
		EntityRegistry:     subjects,
		Logger:             logger,
	})
	if err != nil {
		return err
	}
	a.service = activitylog.New(svcCfg)
	return nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// actorContext stores the CLI reader on ctx the way auth middleware would.
func actorContext(ctx context.Context, flags *rootFlags) (context.Context, types.ActorRef, types.ScopeFilter, error) {
	actorID := operatorID
	if raw := strings.TrimSpace(flags.actor); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return nil, types.ActorRef{}, types.ScopeFilter{}, fmt.Errorf("invalid --actor: %w", err)
		}
		actorID = parsed
	}
	var scope types.ScopeFilter
	if raw := strings.TrimSpace(flags.tenant); raw != "" {
		tenantID, err := uuid.Parse(raw)
		if err != nil {
			return nil, types.ActorRef{}, types.ScopeFilter{}, fmt.Errorf("invalid --tenant: %w", err)
		}
		scope.TenantID = tenantID
	}
	ref := types.ActorRef{ID: actorID, Type: flags.role}
	ctx = authctx.ContextWithActor(ctx, ref, scope)
	return ctx, ref, scope, nil
}

func sqlDriver(name string) (string, schema.Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "postgres", "postgresql", "pg":
		return "postgres", pgdialect.New(), nil
	case "sqlite", "sqlite3", "":
		return "sqlite3", sqlitedialect.New(), nil
	default:
		return "", nil, fmt.Errorf("unsupported driver %q", name)
	}
}

type loggerAdapter struct {
	l glog.Logger
}

func (a *loggerAdapter) Debug(msg string, args ...any) {
	a.l.Debug(msg, args...)
}

func (a *loggerAdapter) Info(msg string, args ...any) {
	a.l.Info(msg, args...)
}

func (a *loggerAdapter) Warn(msg string, args ...any) {
	a.l.Warn(msg, args...)
}

func (a *loggerAdapter) Error(msg string, err error, args ...any) {
	if err != nil {
		args = append([]any{"error", err}, args...)
	}
	a.l.Error(msg, args...)
}
