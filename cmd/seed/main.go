package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lumenfide/lumen/internal/app"
	"github.com/lumenfide/lumen/internal/config"
	"github.com/lumenfide/lumen/internal/db"
	"github.com/lumenfide/lumen/internal/logger"
	"github.com/lumenfide/lumen/internal/model"
)

func main() {
	dir := flag.String("dir", "", "content directory (default: CONTENT_PATH)")
	reset := flag.Bool("reset", false, "drop all data by resetting migrations before importing")
	tokenFor := flag.String("token", "", "print a bearer token for this user id after importing")
	flag.Parse()

	cfg := config.Load()
	cfg.MigrateOnStart = true

	logger.Init(cfg.AppName, cfg.AppEnv, cfg.IsDevelopment(), cfg.SentryDSN)
	defer logger.Flush()

	if cfg.IsProduction() && (*reset || *tokenFor != "") {
		slog.Error("refusing -reset or -token in production")
		logger.Flush()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, cfg, *dir, *reset, *tokenFor)
	if err != nil {
		slog.Error("seed failed", "error", err)
		logger.Flush()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, dir string, reset bool, tokenFor string) error {
	if dir == "" {
		dir = cfg.ContentPath
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if reset {
		err = db.ResetMigrations(ctx, a.DB.DB, cfg.DBDriver)
		if err != nil {
			return err
		}
	}

	slog.Info("importing content", "dir", dir, "driver", cfg.DBDriver)
	report, err := a.Importer.Import(ctx, os.DirFS(dir))
	if err != nil {
		return err
	}

	for _, contentType := range model.ContentTypes {
		fmt.Printf("%-8s created=%d skipped=%d\n", contentType, report.Created[contentType], report.Skipped[contentType])
	}

	if tokenFor != "" {
		token, err := a.AuthService.GenerateJWT(tokenFor)
		if err != nil {
			return fmt.Errorf("failed to issue token: %w", err)
		}
		fmt.Printf("\nAuthorization: Bearer %s\n", token)
	}
	return nil
}
