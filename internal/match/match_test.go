package match

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	cerr "github.com/saeidalz13/battleship-ai/internal/error"
	mb "github.com/saeidalz13/battleship-ai/models/battleship"
	"github.com/saeidalz13/battleship-ai/models/player"
)

func patrolGame(t *testing.T) *mb.Game {
	t.Helper()

	g, err := mb.NewGame(3, 3)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.AddShip(2, 'P', "patrol boat"); err != nil {
		t.Fatal(err)
	}
	return g
}

func newPlayer(t *testing.T, kind string, g *mb.Game, opts ...player.Option) player.Player {
	t.Helper()

	opts = append([]player.Option{player.WithRand(rand.New(rand.NewSource(1)))}, opts...)
	p, err := player.New(kind, kind, g, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func newHuman(t *testing.T, g *mb.Game, input string) player.Player {
	t.Helper()
	return newPlayer(t, player.KindHuman, g, player.WithInput(strings.NewReader(input)), player.WithOutput(&strings.Builder{}))
}

func newMatch(t *testing.T, p1, p2 player.Player, opts ...Option) *Match {
	t.Helper()

	m, err := New(p1, p2, mb.NewBoard(p1.Game(), nil), mb.NewBoard(p2.Game(), nil), opts...)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestPlayNarration(t *testing.T) {
	g := patrolGame(t)
	human := newHuman(t, g, "h\n1 0\n0 0\n0 1\n")
	awful := newPlayer(t, player.KindAwful, g)

	var out strings.Builder
	m := newMatch(t, human, awful, WithNarrator(NewConsoleNarrator(&out)))

	res, err := m.Play(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Winner != human || res.WinnerIndex != 0 || res.Turns != 3 {
		t.Fatalf("unexpected result: winner %s index %d turns %d", res.Winner.Name(), res.WinnerIndex, res.Turns)
	}

	for _, line := range []string{
		"human's turn. Board for awful:",
		"human attacked (0,0) and hit something, resulting in:",
		"awful's turn. Board for human:",
		"awful attacked (2,2) and missed, resulting in:",
		"human attacked (0,1) and destroyed the patrol boat, resulting in:",
		"human wins!",
	} {
		if !strings.Contains(out.String(), line) {
			t.Fatalf("expected narration to contain %q\ngot:\n%s", line, out.String())
		}
	}

	// The human attacker only ever sees water, hits and misses.
	if strings.Contains(out.String(), "0 PP.") {
		t.Fatalf("the awful player's fleet was revealed to the human:\n%s", out.String())
	}
}

func TestPlayWastedShot(t *testing.T) {
	g := patrolGame(t)
	human := newHuman(t, g, "h\n1 0\n5 5\n0 0\n0 1\n")
	awful := newPlayer(t, player.KindAwful, g)

	var out strings.Builder
	m := newMatch(t, human, awful, WithNarrator(NewConsoleNarrator(&out)))

	res, err := m.Play(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "human wasted a shot at (5,5).") {
		t.Fatalf("expected a wasted shot\ngot:\n%s", out.String())
	}
	if res.Turns != 5 {
		t.Fatalf("expected turns: 5\t got: %d", res.Turns)
	}
}

func TestPlayLosingHumanSeesWinnerFleet(t *testing.T) {
	g := patrolGame(t)
	// The human shoots at empty water while the awful player sweeps the
	// bottom row where the human put its boat.
	human := newHuman(t, g, "h\n2 1\n1 1\n1 2\n")
	awful := newPlayer(t, player.KindAwful, g)

	var out strings.Builder
	m := newMatch(t, human, awful, WithNarrator(NewConsoleNarrator(&out)))

	res, err := m.Play(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Winner != awful {
		t.Fatalf("expected awful to win\t got: %s", res.Winner.Name())
	}
	if !strings.Contains(out.String(), "Here is where awful's ships were:") {
		t.Fatalf("expected the winner's fleet to be revealed\ngot:\n%s", out.String())
	}
}

func TestPlayErrors(t *testing.T) {
	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	tall, err := mb.NewGame(5, 2)
	if err != nil {
		t.Fatal(err)
	}
	_ = tall.AddShip(4, 'B', "battleship")

	tests := []struct {
		name     string
		ctx      context.Context
		p1       func(t *testing.T) player.Player
		p2       func(t *testing.T) player.Player
		expected []error
	}{
		{
			name:     "canceled context",
			ctx:      canceled,
			p1:       func(t *testing.T) player.Player { return newPlayer(t, player.KindAwful, patrolGame(t)) },
			p2:       func(t *testing.T) player.Player { return newPlayer(t, player.KindAwful, patrolGame(t)) },
			expected: []error{cerr.ErrMatchAborted, context.Canceled},
		},
		{
			name:     "human input ends",
			ctx:      context.Background(),
			p1:       func(t *testing.T) player.Player { return newHuman(t, patrolGame(t), "h\n1 0\n") },
			p2:       func(t *testing.T) player.Player { return newPlayer(t, player.KindAwful, patrolGame(t)) },
			expected: []error{cerr.ErrMatchAborted, cerr.ErrInputClosed},
		},
		{
			name:     "fleet cannot be placed",
			ctx:      context.Background(),
			p1:       func(t *testing.T) player.Player { return newPlayer(t, player.KindAwful, tall) },
			p2:       func(t *testing.T) player.Player { return newPlayer(t, player.KindAwful, tall) },
			expected: []error{cerr.ErrPlacement},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			m := newMatch(t, test.p1(t), test.p2(t))
			_, err := m.Play(test.ctx)
			for _, target := range test.expected {
				if !errors.Is(err, target) {
					t.Fatalf("expected %v in error chain\t got: %v", target, err)
				}
			}
		})
	}
}

func TestWithId(t *testing.T) {
	g := patrolGame(t)
	p1 := newPlayer(t, player.KindAwful, g)
	p2 := newPlayer(t, player.KindAwful, g)

	id := uuid.New()
	m, err := New(p1, p2, mb.NewBoard(g, nil), mb.NewBoard(g, nil), WithId(id))
	if err != nil {
		t.Fatal(err)
	}
	if m.Id() != id {
		t.Fatalf("expected: %s\t got: %s", id, m.Id())
	}

	_, err = New(p1, p2, mb.NewBoard(g, nil), mb.NewBoard(g, nil), WithId(uuid.Nil))
	if err == nil || err.Error() != cerr.ErrNilMatchId().Error() {
		t.Fatalf("expected: %v\t got: %v", cerr.ErrNilMatchId(), err)
	}
}

func TestPlayPausesBetweenTurns(t *testing.T) {
	g := patrolGame(t)
	pauses := 0
	m := newMatch(t, newPlayer(t, player.KindAwful, g), newPlayer(t, player.KindAwful, g), WithPause(func(context.Context) error {
		pauses++
		return nil
	}))

	res, err := m.Play(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if pauses != res.Turns-1 {
		t.Fatalf("expected pauses: %d\t got: %d", res.Turns-1, pauses)
	}
}

func TestEnterPause(t *testing.T) {
	var out strings.Builder
	pause := EnterPause(strings.NewReader("\n"), &out)

	if err := pause(context.Background()); err != nil {
		t.Fatal(err)
	}
	if out.String() != "Press enter to continue: " {
		t.Fatalf("unexpected prompt: %q", out.String())
	}
	if err := pause(context.Background()); !errors.Is(err, cerr.ErrInputClosed) {
		t.Fatalf("expected: %v\t got: %v", cerr.ErrInputClosed, err)
	}
}

type memoryRecorder struct {
	mu      sync.Mutex
	records []Record
}

func (mr *memoryRecorder) RecordMatch(_ context.Context, rec Record) error {
	mr.mu.Lock()
	defer mr.mu.Unlock()
	mr.records = append(mr.records, rec)
	return nil
}

func TestRunSeries(t *testing.T) {
	rec := &memoryRecorder{}
	cfg := SeriesConfig{
		Game:     mb.NewGameForDifficulty(mb.GameDifficultyEasy),
		KindA:    player.KindGood,
		KindB:    player.KindAwful,
		Matches:  6,
		Parallel: 3,
		Seed:     17,
	}

	res, err := RunSeries(context.Background(), cfg, rec)
	if err != nil {
		t.Fatal(err)
	}
	if res.Matches != cfg.Matches || res.Wins[0]+res.Wins[1] != cfg.Matches {
		t.Fatalf("unexpected tally: %+v", res)
	}
	if res.AverageTurns() <= 0 {
		t.Fatalf("expected positive average turns\t got: %f", res.AverageTurns())
	}

	if len(rec.records) != cfg.Matches {
		t.Fatalf("expected records: %d\t got: %d", cfg.Matches, len(rec.records))
	}
	for _, r := range rec.records {
		if r.Winner != cfg.KindA && r.Winner != cfg.KindB {
			t.Fatalf("unexpected winner: %s", r.Winner)
		}
		if r.Rows != mb.GridSizeEasy || r.Cols != mb.GridSizeEasy {
			t.Fatalf("unexpected board size: %dx%d", r.Rows, r.Cols)
		}
	}
}

func TestRunSeriesUnknownKind(t *testing.T) {
	cfg := SeriesConfig{
		Game:    mb.NewStandardGame(),
		KindA:   "grandmaster",
		KindB:   player.KindAwful,
		Matches: 2,
	}
	if _, err := RunSeries(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected an error for an unknown player kind")
	}
}
