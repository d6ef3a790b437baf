package ai

import (
	"math/rand"
	"testing"
	"time"

	mb "github.com/saeidalz13/battleship-ai/models/battleship"
)

// steppingClock advances by step on every call.
func steppingClock(step time.Duration) Clock {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t := now
		now = now.Add(step)
		return t
	}
}

func assertFleetPlaced(t *testing.T, b *mb.Board) {
	t.Helper()

	total := 0
	for _, spec := range b.Game().Ships() {
		total += spec.Length
		if _, ok := b.ShipPlacement(spec.Id); !ok {
			t.Fatalf("ship %d has no placement", spec.Id)
		}
	}

	occupied := 0
	for r := 0; r < b.Rows(); r++ {
		for c := 0; c < b.Cols(); c++ {
			cell, _ := b.Cell(mb.NewPoint(r, c))
			switch cell.State {
			case mb.CellStateOccupied:
				occupied++
			case mb.CellStateObstacle:
				t.Fatalf("obstacle left at (%d,%d)", r, c)
			}
		}
	}
	if occupied != total {
		t.Fatalf("expected occupied cells: %d\t got: %d", total, occupied)
	}
}

func TestPlaceStandardFleet(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		g := mb.NewStandardGame()
		b := mb.NewBoard(g, rand.New(rand.NewSource(seed)))

		ps := NewPlacementSearch(g.Rows(), g.Cols(), DefaultPlacementBudget(), steppingClock(time.Millisecond))
		if !ps.Place(b, g.ShipIds()) {
			t.Fatalf("seed %d: placement failed", seed)
		}
		assertFleetPlaced(t, b)
	}
}

func TestPlaceHardDeadlineFallback(t *testing.T) {
	g := mb.NewStandardGame()
	b := mb.NewBoard(g, rand.New(rand.NewSource(3)))

	ps := NewPlacementSearch(g.Rows(), g.Cols(), DefaultPlacementBudget(), steppingClock(time.Second))
	if !ps.Place(b, g.ShipIds()) {
		t.Fatal("fallback placement failed")
	}
	assertFleetPlaced(t, b)

	// The unobstructed search is deterministic: the carrier takes the first
	// cell of the alternating order and the battleship the next free slot.
	tests := []struct {
		shipId   int
		expected mb.Placement
	}{
		{shipId: 0, expected: mb.Placement{Origin: mb.NewPoint(0, 0), Direction: mb.DirectionHorizontal}},
		{shipId: 1, expected: mb.Placement{Origin: mb.NewPoint(0, 9), Direction: mb.DirectionVertical}},
	}
	for _, test := range tests {
		placement, _ := b.ShipPlacement(test.shipId)
		if placement != test.expected {
			t.Fatalf("ship %d expected: %+v\t got: %+v", test.shipId, test.expected, placement)
		}
	}
}

func TestPlaceUnobstructedTightFleet(t *testing.T) {
	g, err := mb.NewGame(3, 3)
	if err != nil {
		t.Fatal(err)
	}
	for _, symbol := range []rune{'A', 'B', 'C'} {
		if err := g.AddShip(3, symbol, string(symbol)); err != nil {
			t.Fatal(err)
		}
	}

	b := mb.NewBoard(g, rand.New(rand.NewSource(1)))
	ps := NewPlacementSearch(3, 3, PlacementBudget{MaxAttempts: 5, InitialStride: 3, Fallback: true}, nil)
	if !ps.Place(b, g.ShipIds()) {
		t.Fatal("a fleet filling the whole board should still be placed")
	}
	assertFleetPlaced(t, b)
}

func TestPlaceImpossibleLeavesBoardUntouched(t *testing.T) {
	g, err := mb.NewGame(3, 3)
	if err != nil {
		t.Fatal(err)
	}
	for _, symbol := range []rune{'A', 'B', 'C'} {
		if err := g.AddShip(1, symbol, string(symbol)); err != nil {
			t.Fatal(err)
		}
	}
	if err := g.AddShip(3, 'L', "long"); err != nil {
		t.Fatal(err)
	}

	b := mb.NewBoard(g, rand.New(rand.NewSource(1)))
	for i := 0; i < 3; i++ {
		if !b.PlaceShip(mb.NewPoint(i, i), i, mb.DirectionHorizontal) {
			t.Fatalf("could not place ship %d on the diagonal", i)
		}
	}
	before := b.String()

	tests := []struct {
		name   string
		search *PlacementSearch
	}{
		{name: "plain", search: NewRowMajorPlacementSearch(3, 3, PlainPlacementBudget())},
		{name: "with fallback", search: NewPlacementSearch(3, 3, DefaultPlacementBudget(), steppingClock(time.Millisecond))},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if test.search.Place(b, []int{3}) {
				t.Fatal("placed a ship that cannot fit")
			}
			if b.String() != before {
				t.Fatalf("board changed after failed placement:\n%s", b.String())
			}
		})
	}
}

func TestPlaceNothing(t *testing.T) {
	g := mb.NewStandardGame()
	b := mb.NewBoard(g, nil)
	ps := NewPlacementSearch(g.Rows(), g.Cols(), DefaultPlacementBudget(), nil)
	if !ps.Place(b, nil) {
		t.Fatal("placing no ships should succeed")
	}
}

func TestRowMajorPlacement(t *testing.T) {
	g := mb.NewStandardGame()
	b := mb.NewBoard(g, rand.New(rand.NewSource(11)))

	ps := NewRowMajorPlacementSearch(g.Rows(), g.Cols(), PlainPlacementBudget())
	if !ps.PlaceUnobstructed(b, g.ShipIds()) {
		t.Fatal("row-major placement failed")
	}
	assertFleetPlaced(t, b)

	placement, _ := b.ShipPlacement(0)
	if placement.Origin != mb.NewPoint(0, 0) || placement.Direction != mb.DirectionHorizontal {
		t.Fatalf("expected carrier at (0,0) horizontal\t got: %+v", placement)
	}
}

// countingPlacer charges one microsecond of clock time per PlaceShip call,
// so elapsed time tracks search work instead of wall time.
type countingPlacer struct {
	*mb.Board
	calls int
}

func (cp *countingPlacer) PlaceShip(origin mb.Point, shipId int, dir mb.Direction) bool {
	cp.calls++
	return cp.Board.PlaceShip(origin, shipId, dir)
}

func (cp *countingPlacer) clock() Clock {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		return start.Add(time.Duration(cp.calls) * time.Microsecond)
	}
}

func TestPlaceDenseFleetStopsAtHardDeadline(t *testing.T) {
	g, err := mb.NewGame(6, 6)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 14; i++ {
		symbol := rune('a' + i)
		if err := g.AddShip(2, symbol, string(symbol)); err != nil {
			t.Fatal(err)
		}
	}

	budget := DefaultPlacementBudget()
	// Work allowed before the deadline, plus one check interval of overrun
	// and room for the unobstructed search.
	limit := int(budget.HardDeadline/time.Microsecond) + nodeCheckInterval + 50000

	for seed := int64(1); seed <= 3; seed++ {
		b := &countingPlacer{Board: mb.NewBoard(g, rand.New(rand.NewSource(seed)))}
		ps := NewPlacementSearch(g.Rows(), g.Cols(), budget, b.clock())

		if !ps.Place(b, g.ShipIds()) {
			t.Fatalf("seed %d: dense fleet was not placed", seed)
		}
		assertFleetPlaced(t, b.Board)

		if b.calls > limit {
			t.Fatalf("seed %d: expected at most %d placement tries\t got: %d", seed, limit, b.calls)
		}
	}
}

func TestPlaceRealClockDenseFleet(t *testing.T) {
	if testing.Short() {
		t.Skip("timing test")
	}

	g, err := mb.NewGame(6, 6)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		symbol := rune('a' + i)
		if err := g.AddShip(2, symbol, string(symbol)); err != nil {
			t.Fatal(err)
		}
	}

	budget := DefaultPlacementBudget()
	b := mb.NewBoard(g, rand.New(rand.NewSource(1)))
	ps := NewPlacementSearch(g.Rows(), g.Cols(), budget, nil)

	start := time.Now()
	if !ps.Place(b, g.ShipIds()) {
		t.Fatal("dense fleet was not placed")
	}
	if elapsed := time.Since(start); elapsed > budget.HardDeadline+time.Second {
		t.Fatalf("expected placement within %s\t got: %s", budget.HardDeadline+time.Second, elapsed)
	}
	assertFleetPlaced(t, b)
}
