// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/sheetlens/api/internal/config"
	"github.com/sheetlens/api/migrations"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	command := flag.String("command", "up", "goose command: up, down, status")
	flag.Parse()

	if err := run(*configPath, *command); err != nil {
		slog.Error("migration error", "error", err)
		os.Exit(1)
	}
}

func run(configPath, command string) error {
	ctx := context.Background()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return err
	}
	//nolint:errcheck // process exits right after
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return err
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	switch command {
	case "up":
		return goose.UpContext(ctx, db, ".")
	case "down":
		return goose.DownContext(ctx, db, ".")
	case "status":
		return goose.StatusContext(ctx, db, ".")
	default:
		return goose.RunContext(ctx, command, db, ".")
	}
}
