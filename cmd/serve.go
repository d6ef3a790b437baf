package main

import (
	"context"
	"flag"

	"github.com/saeidalz13/battleship-ai/api"
	"github.com/saeidalz13/battleship-ai/db"
	"github.com/saeidalz13/battleship-ai/internal/config"
)

func runServe(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	port := fs.Int("port", cfg.Port, "port to listen on")
	migrationDir := fs.String("migrations", db.DefaultMigrationDir, "migration source url")
	_ = fs.Parse(args)

	opts := []api.Option{
		api.WithPort(*port),
		api.WithStage(cfg.Stage),
		api.WithPlacementBudget(cfg.Placement),
		api.WithPlayerOptions(playerOptions(cfg, 0)...),
	}

	// Results are only stored when a database is configured
	if cfg.DatabaseURL != "" {
		rm, conn, err := resultsManager(cfg, *migrationDir)
		if err != nil {
			return err
		}
		defer conn.Close()
		opts = append(opts, api.WithRecorder(rm))
	}

	server, err := api.NewServer(opts...)
	if err != nil {
		return err
	}
	return server.ListenAndServe(ctx)
}
