package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/wayfinder/internal/api"
	"github.com/udisondev/wayfinder/internal/config"
	"github.com/udisondev/wayfinder/internal/data"
	"github.com/udisondev/wayfinder/internal/db"
	"github.com/udisondev/wayfinder/internal/model"
	"github.com/udisondev/wayfinder/internal/navigator"
)

const (
	ConfigPath      = "config/wayfinder.yaml"
	shutdownTimeout = 10 * time.Second
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load config FIRST to determine log level
	cfgPath := ConfigPath
	if p := os.Getenv("WAYFINDER_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Info("wayfinder starting",
		"log_level", cfg.LogLevel,
		"map_source", cfg.MapSource,
		"addr", cfg.Addr())

	var repo *db.FloorPlanRepository
	if cfg.NeedsDatabase() {
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")

		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")

		repo = db.NewFloorPlanRepository(database.Pool())
	}

	plan, err := loadMap(ctx, cfg, repo)
	if err != nil {
		return err
	}

	nav, err := navigator.New(ctx, plan, navigator.WithTimeout(cfg.RouteTimeout))
	if err != nil {
		return fmt.Errorf("creating navigator: %w", err)
	}

	gin.SetMode(cfg.GinMode)
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.NewRouter(nav),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		slog.Info("http server stopped")
		return nil
	})

	// SIGHUP перечитывает план этажей без рестарта
	g.Go(func() error {
		hup := make(chan os.Signal, 1)
		signal.Notify(hup, syscall.SIGHUP)
		defer signal.Stop(hup)

		for {
			select {
			case <-gctx.Done():
				return nil
			case <-hup:
				m, err := loadMap(gctx, cfg, repo)
				if err != nil {
					slog.Error("reload failed, keeping current floor plan", "error", err)
					continue
				}
				if _, err := nav.Reload(gctx, m); err != nil {
					slog.Error("reload failed, keeping current floor plan", "error", err)
				}
			}
		}
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// loadMap reads the floor plan from the configured source. With
// import_on_start the file plan is also written to postgres.
func loadMap(ctx context.Context, cfg config.Server, repo *db.FloorPlanRepository) (*model.MapData, error) {
	if cfg.MapSource == config.MapSourcePostgres && !cfg.ImportOnStart {
		m, err := repo.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading floor plan from postgres: %w", err)
		}
		slog.Info("floor plan loaded from postgres", "floors", len(m.Floors))
		return m, nil
	}

	var (
		m   *model.MapData
		err error
	)
	if cfg.MapFile == "" {
		m, err = data.Default()
	} else {
		m, err = data.LoadFile(cfg.MapFile)
	}
	if err != nil {
		return nil, fmt.Errorf("loading floor plan: %w", err)
	}

	if cfg.ImportOnStart {
		if err := repo.Save(ctx, m); err != nil {
			return nil, fmt.Errorf("importing floor plan: %w", err)
		}
	}
	return m, nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
