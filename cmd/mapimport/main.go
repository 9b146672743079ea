// Command mapimport stores a YAML floor plan in PostgreSQL.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/udisondev/wayfinder/internal/config"
	"github.com/udisondev/wayfinder/internal/data"
	"github.com/udisondev/wayfinder/internal/db"
	"github.com/udisondev/wayfinder/internal/model"
)

func main() {
	file := flag.String("file", "", "YAML floor plan (empty = embedded hospital plan)")
	cfgPath := flag.String("config", "config/wayfinder.yaml", "server config with database settings")
	force := flag.Bool("force", false, "import even if the stored plan has the same fingerprint")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *file, *cfgPath, *force); err != nil {
		slog.Error("import failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, file, cfgPath string, force bool) error {
	cfg, err := config.LoadServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	var m *model.MapData
	if file == "" {
		m, err = data.Default()
	} else {
		m, err = data.LoadFile(file)
	}
	if err != nil {
		return err
	}

	if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	database, err := db.New(ctx, cfg.Database.DSN())
	if err != nil {
		return err
	}
	defer database.Close()

	fp, err := m.Fingerprint()
	if err != nil {
		return err
	}

	repo := db.NewFloorPlanRepository(database.Pool())
	if !force {
		stored, err := repo.Fingerprint(ctx)
		switch {
		case err == nil && stored == fp:
			slog.Info("stored floor plan is up to date", "fingerprint", stored[:12])
			return nil
		case err != nil && !errors.Is(err, db.ErrNoFloorPlan):
			return err
		}
	}

	return repo.Save(ctx, m)
}
