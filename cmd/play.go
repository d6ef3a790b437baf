package main

import (
	"context"
	"errors"
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/saeidalz13/battleship-ai/internal/config"
	"github.com/saeidalz13/battleship-ai/internal/match"
	"github.com/saeidalz13/battleship-ai/internal/tui"
	mb "github.com/saeidalz13/battleship-ai/models/battleship"
	"github.com/saeidalz13/battleship-ai/models/player"
	"golang.org/x/term"
)

func runPlay(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	kind1 := fs.String("p1", player.KindHuman, "first player: "+kindsUsage())
	kind2 := fs.String("p2", player.KindGood, "second player: "+kindsUsage())
	name1 := fs.String("n1", "", "first player name (defaults to its kind)")
	name2 := fs.String("n2", "", "second player name (defaults to its kind)")
	difficulty := fs.String("difficulty", "standard", "easy, normal or standard")
	catalog := fs.String("catalog", "", "JSON ship catalog; overrides -difficulty")
	seed := fs.Int64("seed", 0, "random seed; 0 picks one from the clock")
	pause := fs.Bool("pause", true, "wait for enter between turns when no human plays")
	watch := fs.Bool("tui", false, "watch a computer match in a full screen view")
	delay := fs.Duration("delay", time.Millisecond*300, "time between frames of the full screen view")
	_ = fs.Parse(args)

	g, err := loadGame(*catalog, *difficulty)
	if err != nil {
		return err
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	in := newLineReader(os.Stdin)

	newPlayer := func(kind, name string, offset int64) (player.Player, error) {
		if name == "" {
			name = kind
		}
		opts := append(playerOptions(cfg, *seed+offset), player.WithInput(in), player.WithOutput(os.Stdout))
		return player.New(kind, name, g, opts...)
	}
	p1, err := newPlayer(*kind1, *name1, 0)
	if err != nil {
		return err
	}
	p2, err := newPlayer(*kind2, *name2, 1)
	if err != nil {
		return err
	}

	boards := [2]*mb.Board{
		mb.NewBoard(g, rand.New(rand.NewSource(*seed+2))),
		mb.NewBoard(g, rand.New(rand.NewSource(*seed+3))),
	}
	computersOnly := !p1.IsHuman() && !p2.IsHuman()

	if *watch {
		if !computersOnly {
			return errors.New("the full screen view only shows computer matches")
		}
		return watchMatch(ctx, p1, p2, boards, *delay)
	}

	opts := []match.Option{match.WithNarrator(match.NewConsoleNarrator(os.Stdout))}
	if *pause && computersOnly && term.IsTerminal(int(os.Stdin.Fd())) {
		opts = append(opts, match.WithPause(match.EnterPause(in, os.Stdout)))
	}

	m, err := match.New(p1, p2, boards[0], boards[1], opts...)
	if err != nil {
		return err
	}
	_, err = m.Play(ctx)
	return err
}

func watchMatch(ctx context.Context, p1, p2 player.Player, boards [2]*mb.Board, delay time.Duration) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go tui.WatchKeys(ctx, screen, cancel)

	spectator := tui.NewSpectator(screen, [2]string{p1.Name(), p2.Name()}, boards, delay)
	m, err := match.New(p1, p2, boards[0], boards[1], match.WithNarrator(spectator))
	if err != nil {
		return err
	}

	if _, err := m.Play(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	// Keep the final frame up until the viewer quits.
	<-ctx.Done()
	return nil
}
