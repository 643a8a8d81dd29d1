// Package server wires the PostGuard components together and runs them until
// the process is asked to stop.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/postguard/internal/logging"
	"github.com/dmitrijs2005/postguard/internal/server/classifier"
	"github.com/dmitrijs2005/postguard/internal/server/config"
	"github.com/dmitrijs2005/postguard/internal/server/metrics"
	"github.com/dmitrijs2005/postguard/internal/server/moderation"
	"github.com/dmitrijs2005/postguard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/postguard/internal/server/services"
	"github.com/dmitrijs2005/postguard/internal/server/sessions"
	"github.com/dmitrijs2005/postguard/internal/server/store"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"

	gs "github.com/dmitrijs2005/postguard/internal/server/grpc"
)

var sqlOpen = sql.Open

type App struct {
	config   *config.Config
	logger   logging.Logger
	clock    clockwork.Clock
	db       *sql.DB
	registry *prometheus.Registry

	accounts   *services.AccountService
	sessions   *services.SessionService
	moderation *services.ModerationService
	export     *services.ExportService
	rpcMetrics *metrics.RPCMetrics
}

func parseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func NewApp(c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, parseLevel(c.LogLevel))
	clock := clockwork.NewRealClock()

	app := &App{config: c, logger: logger, clock: clock, registry: metrics.NewRegistry()}

	st, err := app.initStore(context.Background())
	if err != nil {
		return nil, err
	}

	mm := metrics.NewModerationMetrics(app.registry)
	sm := metrics.NewSessionMetrics(app.registry)
	app.rpcMetrics = metrics.NewRPCMetrics(app.registry)

	gateway := classifier.NewGuarded(classifier.NewLexicon(), classifier.GuardedOptions{
		Timeout: c.ClassifierTimeout,
		Latency: mm.ClassifyDuration,
	}, logger)

	policy := moderation.DefaultPolicy()
	policy.LockoutDuration = c.LockoutDuration

	reg := sessions.NewRegistry()

	app.accounts = services.NewAccountService(st, clock, logger)
	app.sessions = services.NewSessionService(st, reg, clock, c.SecretKey, c.AccessTokenValidityDuration, sm, logger)
	app.moderation = services.NewModerationService(st, reg, moderation.NewEngine(gateway, policy), clock, mm, logger)
	app.export = services.NewExportService(reg, c, clock, logger)

	return app, nil
}

// initStore picks PostgreSQL when a DSN is configured and the in-memory
// store otherwise.
func (app *App) initStore(ctx context.Context) (store.AccountStore, error) {
	if app.config.DatabaseDSN == "" {
		app.logger.Info(ctx, "using in-memory account store")
		return store.NewMemoryStore(), nil
	}

	db, err := sqlOpen("pgx", app.config.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	app.db = db
	app.logger.Info(ctx, "using postgres account store")
	return store.NewPostgresStore(db, rm), nil
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, gs.Services{
		Accounts:   app.accounts,
		Sessions:   app.sessions,
		Moderation: app.moderation,
		Export:     app.export,
	}, app.rpcMetrics)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startMetricsServer(ctx context.Context, cancelFunc context.CancelFunc) {

	srv := &http.Server{
		Addr:              app.config.MetricsAddr,
		Handler:           metrics.Handler(app.registry),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	app.logger.Info(ctx, "Starting metrics server", "address", app.config.MetricsAddr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// runSweeper closes sessions whose tokens have expired.
func (app *App) runSweeper(ctx context.Context) {
	if app.config.SessionSweepInterval <= 0 {
		return
	}

	ticker := app.clock.NewTicker(app.config.SessionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			app.sessions.Sweep(ctx)
		}
	}
}

func (app *App) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.sessions.Shutdown(ctx); err != nil {
		app.logger.Error(ctx, "error saving sessions on shutdown", "error", err)
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "error closing db", "error", err)
		}
	}

	app.logger.Info(ctx, "App stopped")
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	if app.config.MetricsAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startMetricsServer(ctx, cancelFunc)
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.runSweeper(ctx)
	}()

	wg.Wait()

	app.shutdown()
}
