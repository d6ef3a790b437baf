package match

import (
	"context"
	"math/rand"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	mb "github.com/saeidalz13/battleship-ai/models/battleship"
	"github.com/saeidalz13/battleship-ai/models/player"
	"golang.org/x/sync/errgroup"
)

// Record is the stored summary of a finished match.
type Record struct {
	Id      uuid.UUID
	PlayerA string
	PlayerB string
	Winner  string
	Turns   int
	Rows    int
	Cols    int
}

type Recorder interface {
	RecordMatch(ctx context.Context, rec Record) error
}

type SeriesConfig struct {
	Game     *mb.Game
	KindA    string
	KindB    string
	Matches  int
	Parallel int
	Seed     int64
	Options  []player.Option
}

type SeriesResult struct {
	Matches    int
	Wins       [2]int
	TotalTurns int
}

func (sr SeriesResult) AverageTurns() float64 {
	if sr.Matches == 0 {
		return 0
	}
	return float64(sr.TotalTurns) / float64(sr.Matches)
}

// RunSeries plays cfg.Matches computer matches concurrently. Side A moves
// first in even-numbered matches and side B in odd ones. rec may be nil.
func RunSeries(ctx context.Context, cfg SeriesConfig, rec Recorder) (SeriesResult, error) {
	parallel := cfg.Parallel
	if parallel < 1 {
		parallel = runtime.GOMAXPROCS(0)
	}

	var (
		mu     sync.Mutex
		result SeriesResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for i := 0; i < cfg.Matches; i++ {
		g.Go(func() error {
			res, err := playOne(gctx, cfg, i)
			if err != nil {
				return err
			}

			side := res.WinnerIndex
			if i%2 == 1 {
				side = 1 - side
			}

			mu.Lock()
			result.Matches++
			result.Wins[side]++
			result.TotalTurns += res.Turns
			mu.Unlock()

			if rec == nil {
				return nil
			}
			err = rec.RecordMatch(gctx, Record{
				Id:      res.Id,
				PlayerA: cfg.KindA,
				PlayerB: cfg.KindB,
				Winner:  []string{cfg.KindA, cfg.KindB}[side],
				Turns:   res.Turns,
				Rows:    cfg.Game.Rows(),
				Cols:    cfg.Game.Cols(),
			})
			if err != nil {
				log.Error("could not record match", "match", res.Id, "err", err)
			}
			return nil
		})
	}

	err := g.Wait()
	return result, err
}

func playOne(ctx context.Context, cfg SeriesConfig, i int) (Result, error) {
	seed := cfg.Seed + int64(i)
	opts := func(offset int64) []player.Option {
		return append([]player.Option{player.WithRand(rand.New(rand.NewSource(seed*2 + offset)))}, cfg.Options...)
	}

	a, err := player.New(cfg.KindA, cfg.KindA+" A", cfg.Game, opts(0)...)
	if err != nil {
		return Result{}, err
	}
	b, err := player.New(cfg.KindB, cfg.KindB+" B", cfg.Game, opts(1)...)
	if err != nil {
		return Result{}, err
	}

	boardA := mb.NewBoard(cfg.Game, rand.New(rand.NewSource(seed*3)))
	boardB := mb.NewBoard(cfg.Game, rand.New(rand.NewSource(seed*3+1)))

	var m *Match
	if i%2 == 0 {
		m, err = New(a, b, boardA, boardB)
	} else {
		m, err = New(b, a, boardB, boardA)
	}
	if err != nil {
		return Result{}, err
	}
	return m.Play(ctx)
}
