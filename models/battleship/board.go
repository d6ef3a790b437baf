package battleship

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	cerr "github.com/saeidalz13/battleship-ai/internal/error"
)

type AttackResult struct {
	Hit       bool `json:"hit"`
	Destroyed bool `json:"destroyed"`
	ShipId    int  `json:"ship_id"`
}

// Board is the single authority over one player's fleet. Every mutator
// reports failure with false and leaves the board untouched, so search
// code can probe speculatively.
type Board struct {
	game  *Game
	grid  Grid
	ships []*Ship
	rng   *rand.Rand
}

func NewBoard(g *Game, rng *rand.Rand) *Board {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	ships := make([]*Ship, g.NShips())
	for i, spec := range g.ships {
		ships[i] = NewShip(spec)
	}

	return &Board{
		game:  g,
		grid:  NewGrid(g.Rows(), g.Cols()),
		ships: ships,
		rng:   rng,
	}
}

func (b *Board) Game() *Game {
	return b.game
}

func (b *Board) Rows() int {
	return b.grid.Rows()
}

func (b *Board) Cols() int {
	return b.grid.Cols()
}

// Cell returns a copy of the cell at p.
func (b *Board) Cell(p Point) (Cell, bool) {
	if !b.grid.InBounds(p) {
		return Cell{}, false
	}
	return b.grid.at(p), true
}

func (b *Board) ShipHealth(shipId int) (int, bool) {
	if shipId < 0 || shipId >= len(b.ships) {
		return 0, false
	}
	return b.ships[shipId].Health(), true
}

func (b *Board) ShipPlacement(shipId int) (Placement, bool) {
	if shipId < 0 || shipId >= len(b.ships) {
		return Placement{}, false
	}
	return b.ships[shipId].Placement()
}

// Clear empties the grid and restores every ship to full health.
func (b *Board) Clear() {
	b.grid.reset()
	for i, spec := range b.game.ships {
		b.ships[i] = NewShip(spec)
	}
}

// Block marks half of the board's cells as obstacles, chosen uniformly at
// random among the empty ones.
func (b *Board) Block() {
	target := b.grid.rows * b.grid.cols / 2

	empty := 0
	for _, c := range b.grid.cells {
		if c.State == CellStateEmpty {
			empty++
		}
	}

	if empty <= target {
		for i, c := range b.grid.cells {
			if c.State == CellStateEmpty {
				b.grid.cells[i] = Cell{State: CellStateObstacle}
			}
		}
		return
	}

	for blocked := 0; blocked < target; {
		p := Point{Row: b.rng.Intn(b.grid.rows), Col: b.rng.Intn(b.grid.cols)}
		if b.grid.at(p).State != CellStateEmpty {
			continue
		}
		b.grid.set(p, Cell{State: CellStateObstacle})
		blocked++
	}
}

func (b *Board) Unblock() {
	for i, c := range b.grid.cells {
		if c.State == CellStateObstacle {
			b.grid.cells[i] = Cell{}
		}
	}
}

func (b *Board) PlaceShip(origin Point, shipId int, dir Direction) bool {
	if shipId < 0 || shipId >= len(b.ships) || !b.grid.InBounds(origin) {
		return false
	}

	ship := b.ships[shipId]
	if ship.placement != nil {
		return false
	}

	footprint := Footprint(origin, ship.Spec.Length, dir)
	for _, p := range footprint {
		if !b.grid.InBounds(p) || b.grid.at(p).State != CellStateEmpty {
			return false
		}
	}

	for _, p := range footprint {
		b.grid.set(p, Cell{State: CellStateOccupied, ShipId: shipId})
	}
	ship.placement = &Placement{Origin: origin, Direction: dir}
	return true
}

// UnplaceShip undoes a PlaceShip with the same arguments. It refuses
// unless every footprint cell still shows that ship.
func (b *Board) UnplaceShip(origin Point, shipId int, dir Direction) bool {
	if shipId < 0 || shipId >= len(b.ships) {
		return false
	}

	ship := b.ships[shipId]
	footprint := Footprint(origin, ship.Spec.Length, dir)
	for _, p := range footprint {
		if !b.grid.InBounds(p) {
			return false
		}
		c := b.grid.at(p)
		if c.State != CellStateOccupied || c.ShipId != shipId {
			return false
		}
	}

	for _, p := range footprint {
		b.grid.set(p, Cell{})
	}
	ship.placement = nil
	return true
}

// Attack resolves a shot at p. The second return value is false when the
// shot is wasted: p is off the board or was already shot at.
func (b *Board) Attack(p Point) (AttackResult, bool) {
	if !b.grid.InBounds(p) {
		return AttackResult{}, false
	}

	c := b.grid.at(p)
	switch c.State {
	case CellStateMiss, CellStateHit:
		return AttackResult{}, false

	case CellStateEmpty, CellStateObstacle:
		b.grid.set(p, Cell{State: CellStateMiss})
		return AttackResult{}, true
	}

	if c.ShipId < 0 || c.ShipId >= len(b.ships) {
		panic(cerr.ErrBoardInvariant(p.Row, p.Col, c.ShipId))
	}

	ship := b.ships[c.ShipId]
	b.grid.set(p, Cell{State: CellStateHit, ShipId: c.ShipId})
	ship.GotHit()

	return AttackResult{
		Hit:       true,
		Destroyed: ship.IsSunk(),
		ShipId:    c.ShipId,
	}, true
}

func (b *Board) AllShipsDestroyed() bool {
	for _, ship := range b.ships {
		if !ship.IsSunk() {
			return false
		}
	}
	return true
}

// Symbol returns the display character of p. With maskShips set, ship
// cells that were not hit render as empty water. It reports false when p is
// off the board.
func (b *Board) Symbol(p Point, maskShips bool) (rune, bool) {
	if !b.grid.InBounds(p) {
		return 0, false
	}
	return b.symbolAt(b.grid.at(p), maskShips), true
}

func (b *Board) symbolAt(c Cell, maskShips bool) rune {
	switch c.State {
	case CellStateMiss:
		return SymbolMiss
	case CellStateHit:
		return SymbolHit
	case CellStateObstacle:
		if maskShips {
			return SymbolEmpty
		}
		return SymbolObstacle
	case CellStateOccupied:
		if maskShips {
			return SymbolEmpty
		}
		return b.ships[c.ShipId].Spec.Symbol
	default:
		return SymbolEmpty
	}
}

// Display writes the board with column numbers on top and row numbers on
// the left.
func (b *Board) Display(w io.Writer, maskShips bool) error {
	width := len(fmt.Sprint(b.grid.rows - 1))

	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", width+1))
	for c := 0; c < b.grid.cols; c++ {
		sb.WriteByte(byte('0' + c%10))
	}
	sb.WriteByte('\n')

	for r := 0; r < b.grid.rows; r++ {
		fmt.Fprintf(&sb, "%*d ", width, r)
		for c := 0; c < b.grid.cols; c++ {
			sb.WriteRune(b.symbolAt(b.grid.at(Point{Row: r, Col: c}), maskShips))
		}
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func (b *Board) String() string {
	var sb strings.Builder
	_ = b.Display(&sb, false)
	return sb.String()
}
