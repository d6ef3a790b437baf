package tui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/saeidalz13/battleship-ai/internal/match"
	mb "github.com/saeidalz13/battleship-ai/models/battleship"
	"github.com/saeidalz13/battleship-ai/models/player"
)

type mockCell struct {
	r     rune
	style tcell.Style
}

// MockScreen records what was drawn since the last Clear.
type MockScreen struct {
	cells  map[[2]int]mockCell
	clears int
	shows  int
}

func NewMockScreen() *MockScreen {
	return &MockScreen{cells: make(map[[2]int]mockCell)}
}

func (m *MockScreen) Clear() {
	m.clears++
	m.cells = make(map[[2]int]mockCell)
}

func (m *MockScreen) Show() {
	m.shows++
}

func (m *MockScreen) SetContent(x, y int, primary rune, _ []rune, style tcell.Style) {
	m.cells[[2]int{x, y}] = mockCell{r: primary, style: style}
}

func (m *MockScreen) row(y, from, to int) string {
	var sb strings.Builder
	for x := from; x < to; x++ {
		c, ok := m.cells[[2]int{x, y}]
		if !ok {
			sb.WriteByte(' ')
			continue
		}
		sb.WriteRune(c.r)
	}
	return sb.String()
}

func setup(t *testing.T) (*MockScreen, *Spectator, [2]player.Player, [2]*mb.Board) {
	t.Helper()

	g, err := mb.NewGame(3, 3)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.AddShip(2, 'P', "patrol boat"); err != nil {
		t.Fatal(err)
	}

	var (
		players [2]player.Player
		boards  [2]*mb.Board
	)
	for i, name := range []string{"left", "right"} {
		p, err := player.New(player.KindAwful, name, g)
		if err != nil {
			t.Fatal(err)
		}
		boards[i] = mb.NewBoard(g, nil)
		if !p.PlaceShips(boards[i]) {
			t.Fatalf("%s could not place its fleet", name)
		}
		players[i] = p
	}

	screen := NewMockScreen()
	s := NewSpectator(screen, [2]string{"left", "right"}, boards, 0)
	return screen, s, players, boards
}

func TestSpectatorDrawsBothFleets(t *testing.T) {
	screen, s, _, _ := setup(t)
	s.Draw()

	if screen.shows != 1 || screen.clears != 1 {
		t.Fatalf("expected one clear and one show\t got: %d and %d", screen.clears, screen.shows)
	}

	tests := []struct {
		name     string
		y        int
		expected string
	}{
		{name: "names", y: 0, expected: "left        right      "},
		{name: "column header", y: 2, expected: "   012         012     "},
		{name: "first row", y: 3, expected: " 0 PP.       0 PP.     "},
		{name: "last row", y: 5, expected: " 2 ...       2 ...     "},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := screen.row(test.y, 0, 23); got != test.expected {
				t.Fatalf("expected: %q\t got: %q", test.expected, got)
			}
		})
	}

	if c := screen.cells[[2]int{3, 3}]; c.style != styleShip {
		t.Fatalf("expected ship style on a ship cell")
	}
	if c := screen.cells[[2]int{5, 3}]; c.style != styleWater {
		t.Fatalf("expected water style on an empty cell")
	}
}

func TestSpectatorNarratesAttacks(t *testing.T) {
	screen, s, players, boards := setup(t)

	tests := []struct {
		name   string
		point  mb.Point
		symbol rune
		style  tcell.Style
		status string
	}{
		{name: "hit", point: mb.NewPoint(0, 0), symbol: mb.SymbolHit, style: styleHit, status: "left hit at (0,0)"},
		{name: "miss", point: mb.NewPoint(2, 2), symbol: mb.SymbolMiss, style: styleMiss, status: "left missed (2,2)"},
		{name: "destroy", point: mb.NewPoint(0, 1), symbol: mb.SymbolHit, style: styleHit, status: "left sank the patrol boat at (0,1)"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			res, valid := boards[1].Attack(test.point)
			if !valid {
				t.Fatalf("attack at %s was rejected", test.point)
			}

			err := s.Narrate(match.Event{
				Kind:     match.EventAttack,
				Attacker: players[0],
				Defender: players[1],
				Board:    boards[1],
				Point:    test.point,
				Result:   res,
			})
			if err != nil {
				t.Fatal(err)
			}

			// The right board starts at column 12 and its cells three further in.
			c := screen.cells[[2]int{15 + test.point.Col, 3 + test.point.Row}]
			if c.r != test.symbol || c.style != test.style {
				t.Fatalf("expected: %q\t got: %q", test.symbol, c.r)
			}
			if s.Status() != test.status {
				t.Fatalf("expected: %q\t got: %q", test.status, s.Status())
			}
			if got := screen.row(7, 0, len(test.status)); got != test.status {
				t.Fatalf("expected status line %q\t got: %q", test.status, got)
			}
		})
	}
}

func TestSpectatorTurnDoesNotRedraw(t *testing.T) {
	screen, s, players, boards := setup(t)

	err := s.Narrate(match.Event{Kind: match.EventTurn, Turn: 4, Attacker: players[1], Defender: players[0], Board: boards[0]})
	if err != nil {
		t.Fatal(err)
	}
	if screen.shows != 0 {
		t.Fatalf("expected shows: 0\t got: %d", screen.shows)
	}
	if s.Status() != "turn 4: right fires at left" {
		t.Fatalf("unexpected status: %q", s.Status())
	}
}
