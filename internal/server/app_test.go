package server

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/postguard/internal/server/config"
	"github.com/jonboulle/clockwork"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrGRPC = "127.0.0.1:0"
	c.MetricsAddr = ""
	c.LogLevel = "error"
	return c
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"bogus": slog.LevelInfo,
		"":      slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewApp_InMemory(t *testing.T) {
	app, err := NewApp(testConfig())
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	if app.db != nil {
		t.Fatal("expected no database for empty DSN")
	}
	if app.accounts == nil || app.sessions == nil || app.moderation == nil || app.export == nil {
		t.Fatal("services not wired")
	}
}

func TestNewApp_OpenError(t *testing.T) {
	orig := sqlOpen
	defer func() { sqlOpen = orig }()

	sqlOpen = func(driver, dsn string) (*sql.DB, error) {
		if driver != "pgx" {
			t.Errorf("unexpected driver %q", driver)
		}
		return nil, errors.New("boom")
	}

	c := testConfig()
	c.DatabaseDSN = "postgres://localhost/postguard"

	if _, err := NewApp(c); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewApp_MigrationError(t *testing.T) {
	orig := sqlOpen
	defer func() { sqlOpen = orig }()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	mock.MatchExpectationsInOrder(false)
	mock.ExpectClose()

	sqlOpen = func(string, string) (*sql.DB, error) { return db, nil }

	c := testConfig()
	c.DatabaseDSN = "postgres://localhost/postguard"

	if _, err := NewApp(c); err == nil {
		t.Fatal("expected migration error")
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	app, err := NewApp(testConfig())
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop after cancel")
	}
}

func TestRunSweeper_Disabled(t *testing.T) {
	app, err := NewApp(testConfig())
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	app.config.SessionSweepInterval = 0

	done := make(chan struct{})
	go func() {
		app.runSweeper(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper should return immediately when disabled")
	}
}

func TestRunSweeper_Ticks(t *testing.T) {
	app, err := NewApp(testConfig())
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	fc := clockwork.NewFakeClock()
	app.clock = fc

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.runSweeper(ctx)
		close(done)
	}()

	if err := fc.BlockUntilContext(ctx, 1); err != nil {
		t.Fatalf("ticker not created: %v", err)
	}
	fc.Advance(app.config.SessionSweepInterval)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
