package main

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/saeidalz13/battleship-ai/db"
	"github.com/saeidalz13/battleship-ai/db/sqlc"
	"github.com/saeidalz13/battleship-ai/internal"
	"github.com/saeidalz13/battleship-ai/internal/config"
	mb "github.com/saeidalz13/battleship-ai/models/battleship"
	"github.com/saeidalz13/battleship-ai/models/player"
)

const usage = `usage: battleship <command> [flags]

commands:
  play    play one match in the terminal
  bench   play many computer matches and report win rates
  serve   run the websocket server
  stats   print stored match results`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal("could not load config", "err", err)
	}
	cfg.SetupLogger(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	args := os.Args[2:]
	switch os.Args[1] {
	case "play":
		err = runPlay(ctx, cfg, args)
	case "bench":
		err = runBench(ctx, cfg, args)
	case "serve":
		err = runServe(ctx, cfg, args)
	case "stats":
		err = runStats(ctx, cfg, args)
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		log.Fatal(os.Args[1]+" failed", "err", err)
	}
}

// loadGame prefers a JSON catalog file over the difficulty presets.
func loadGame(catalog, difficulty string) (*mb.Game, error) {
	if catalog != "" {
		f, err := os.Open(catalog)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return mb.LoadGame(f)
	}

	switch difficulty {
	case "easy":
		return mb.NewGameForDifficulty(mb.GameDifficultyEasy), nil
	case "normal":
		return mb.NewGameForDifficulty(mb.GameDifficultyNormal), nil
	case "hard", "standard", "":
		return mb.NewStandardGame(), nil
	default:
		return nil, fmt.Errorf("unknown difficulty: %s", difficulty)
	}
}

func playerOptions(cfg *config.Config, seed int64) []player.Option {
	opts := []player.Option{
		player.WithPlacementBudget(cfg.Placement),
		player.WithTargetingBudget(cfg.Targeting),
	}
	if seed != 0 {
		opts = append(opts, player.WithRand(rand.New(rand.NewSource(seed))))
	}
	return opts
}

// resultsManager connects to postgres, migrates it and wraps it for
// recording. Callers close the returned db.
func resultsManager(cfg *config.Config, migrationDir string) (*sqlc.ResultsManager, *sql.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, nil, fmt.Errorf("DATABASE_URL is not set")
	}

	inet, err := internal.ServerInet()
	if err != nil {
		return nil, nil, err
	}

	conn := db.MustConnectToDb(cfg.DatabaseURL, migrationDir)
	return sqlc.NewDbManager(conn, inet).Results, conn, nil
}

// lineReader hands out at most one line per Read so several scanners can
// share stdin without stealing each other's input.
type lineReader struct {
	r *bufio.Reader
}

func newLineReader(f *os.File) *lineReader {
	return &lineReader{r: bufio.NewReader(f)}
}

func (lr *lineReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		b, err := lr.r.ReadByte()
		if err != nil {
			if n > 0 {
				return n, nil
			}
			return 0, err
		}
		p[n] = b
		n++
		if b == '\n' {
			break
		}
	}
	return n, nil
}

func kindsUsage() string {
	return strings.Join(player.Kinds, ", ")
}
