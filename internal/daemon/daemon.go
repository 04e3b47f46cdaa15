package daemon

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Romi-2023/kopalnia-wiedzy/internal/api"
	"github.com/Romi-2023/kopalnia-wiedzy/internal/app/progression"
	"github.com/Romi-2023/kopalnia-wiedzy/internal/domain"
	"github.com/Romi-2023/kopalnia-wiedzy/internal/infra/catalog"
	"github.com/Romi-2023/kopalnia-wiedzy/internal/infra/sqlite"
)

// Daemon is the core Kopalnia runtime. It wires together all services.
type Daemon struct {
	Config  Config
	DB      *sqlite.DB
	Catalog *domain.Catalog
	Engine  *progression.Engine
	Server  *api.Server
	cancel  context.CancelFunc
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	db, err := sqlite.Open(kopalniaHome())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	cat, err := catalog.Load(cfg.Catalog.Dir)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	opts := progression.Options{
		DailyXPCap:  cfg.Engine.DailyXPCap,
		GlobalDaily: cfg.Engine.GlobalDaily,
	}
	clock := domain.NewReferenceClock()
	ledger := progression.NewLedger(db, cat)
	eng := progression.New(db, ledger, cat, clock, opts)

	srv := api.NewServer(eng, cfg.API.CORSOrigins)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}

	return &Daemon{
		Config:  cfg,
		DB:      db,
		Catalog: cat,
		Engine:  eng,
		Server:  srv,
	}, nil
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("Kopalnia serving on http://%s\n", addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}
