package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/saeidalz13/battleship-ai/db"
	"github.com/saeidalz13/battleship-ai/internal/config"
	"github.com/saeidalz13/battleship-ai/internal/match"
	"github.com/saeidalz13/battleship-ai/models/player"
)

func runBench(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	kindA := fs.String("a", player.KindGood, "first strategy: "+kindsUsage())
	kindB := fs.String("b", player.KindMediocre, "second strategy: "+kindsUsage())
	matches := fs.Int("n", 100, "number of matches")
	parallel := fs.Int("parallel", 0, "matches played at once; 0 uses every cpu")
	difficulty := fs.String("difficulty", "standard", "easy, normal or standard")
	catalog := fs.String("catalog", "", "JSON ship catalog; overrides -difficulty")
	seed := fs.Int64("seed", 0, "random seed; 0 picks one from the clock")
	record := fs.Bool("record", false, "store every result in postgres (needs DATABASE_URL)")
	migrationDir := fs.String("migrations", db.DefaultMigrationDir, "migration source url")
	_ = fs.Parse(args)

	if *kindA == player.KindHuman || *kindB == player.KindHuman {
		return fmt.Errorf("bench only plays computer strategies")
	}

	g, err := loadGame(*catalog, *difficulty)
	if err != nil {
		return err
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	var rec match.Recorder
	if *record {
		rm, conn, err := resultsManager(cfg, *migrationDir)
		if err != nil {
			return err
		}
		defer conn.Close()
		rec = rm
	}

	start := time.Now()
	res, err := match.RunSeries(ctx, match.SeriesConfig{
		Game:     g,
		KindA:    *kindA,
		KindB:    *kindB,
		Matches:  *matches,
		Parallel: *parallel,
		Seed:     *seed,
		Options:  playerOptions(cfg, 0),
	}, rec)
	if err != nil {
		return err
	}
	log.Info("series finished", "matches", res.Matches, "elapsed", time.Since(start).Round(time.Millisecond), "seed", *seed)

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "strategy\twins\twin rate")
	for i, kind := range []string{*kindA, *kindB} {
		fmt.Fprintf(tw, "%s\t%d\t%.1f%%\n", kind, res.Wins[i], 100*float64(res.Wins[i])/float64(max(res.Matches, 1)))
	}
	fmt.Fprintf(tw, "average turns\t%.1f\t\n", res.AverageTurns())
	return tw.Flush()
}
