package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/saeidalz13/battleship-ai/db"
	"github.com/saeidalz13/battleship-ai/internal/config"
	"github.com/saeidalz13/battleship-ai/models/player"
)

func runStats(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	recent := fs.Int("recent", 10, "number of recent matches to list")
	migrationDir := fs.String("migrations", db.DefaultMigrationDir, "migration source url")
	_ = fs.Parse(args)

	rm, conn, err := resultsManager(cfg, *migrationDir)
	if err != nil {
		return err
	}
	defer conn.Close()

	played, err := rm.MatchesPlayed(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "matches on this server\t%d\n\n", played)

	fmt.Fprintln(tw, "strategy\twins")
	for _, kind := range player.Kinds {
		wins, err := rm.WinsByStrategy(ctx, kind)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%d\n", kind, wins)
	}

	results, err := rm.RecentMatches(ctx, *recent)
	if err != nil {
		return err
	}
	fmt.Fprintln(tw, "\nplayed at\tplayers\twinner\tturns\tboard")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s vs %s\t%s\t%d\t%dx%d\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.PlayerA, r.PlayerB, r.Winner, r.Turns, r.Rows, r.Cols)
	}
	return tw.Flush()
}
