package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/MrJamesThe3rd/rounds/internal/config"
	"github.com/MrJamesThe3rd/rounds/internal/database"
	"github.com/MrJamesThe3rd/rounds/internal/logging"
)

func main() {
	action := flag.String("action", "up", "migration action: up, down or version")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.New(cfg.Log.Level, cfg.Log.Format)

	dsn := cfg.ConnectionString()

	switch *action {
	case "up":
		err = database.Migrate(dsn)
	case "down":
		err = database.Rollback(dsn)
	case "version":
		var (
			version uint
			dirty   bool
		)

		version, dirty, err = database.MigrationVersion(dsn)
		if err == nil {
			slog.Info("schema version", "version", version, "dirty", dirty)
		}
	default:
		slog.Error("unknown action", "action", *action)
		os.Exit(2)
	}

	if err != nil {
		slog.Error("migration failed", "action", *action, "error", err)
		os.Exit(1)
	}

	if *action != "version" {
		slog.Info("migration complete", "action", *action)
	}
}
