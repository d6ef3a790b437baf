package battleship

import (
	"encoding/json"
	"io"
	"math/rand"
	"unicode"

	"github.com/dolthub/swiss"
	cerr "github.com/saeidalz13/battleship-ai/internal/error"
)

const (
	GameDifficultyEasy uint8 = iota
	GameDifficultyNormal
	GameDifficultyHard
)

const (
	GridSizeEasy   int = 6
	GridSizeNormal int = 8
	GridSizeHard   int = 10
)

const (
	SymbolEmpty    rune = '.'
	SymbolMiss     rune = 'o'
	SymbolHit      rune = 'X'
	SymbolObstacle rune = '#'
)

type ShipSpec struct {
	Id     int    `json:"id"`
	Length int    `json:"length"`
	Symbol rune   `json:"symbol"`
	Name   string `json:"name"`
}

// Game is the validated ship catalog plus the board dimensions. Boards
// and players only ever read from it.
type Game struct {
	rows    int
	cols    int
	ships   []ShipSpec
	symbols *swiss.Map[rune, int]
}

func NewGame(rows, cols int) (*Game, error) {
	if rows < 1 || cols < 1 {
		return nil, cerr.ErrInvalidBoardSize(rows, cols)
	}

	return &Game{
		rows:    rows,
		cols:    cols,
		ships:   make([]ShipSpec, 0, 5),
		symbols: swiss.NewMap[rune, int](8),
	}, nil
}

// NewStandardGame returns the classic 10x10 game with five ships.
func NewStandardGame() *Game {
	g, _ := NewGame(GridSizeHard, GridSizeHard)
	_ = g.AddShip(5, 'A', "aircraft carrier")
	_ = g.AddShip(4, 'B', "battleship")
	_ = g.AddShip(3, 'D', "destroyer")
	_ = g.AddShip(3, 'S', "submarine")
	_ = g.AddShip(2, 'P', "patrol boat")
	return g
}

// NewGameForDifficulty maps the websocket difficulty levels to a board
// size and a fleet that fits it comfortably.
func NewGameForDifficulty(difficulty uint8) *Game {
	switch difficulty {
	case GameDifficultyEasy:
		g, _ := NewGame(GridSizeEasy, GridSizeEasy)
		_ = g.AddShip(3, 'D', "destroyer")
		_ = g.AddShip(2, 'P', "patrol boat")
		return g

	case GameDifficultyNormal:
		g, _ := NewGame(GridSizeNormal, GridSizeNormal)
		_ = g.AddShip(4, 'B', "battleship")
		_ = g.AddShip(3, 'D', "destroyer")
		_ = g.AddShip(3, 'S', "submarine")
		_ = g.AddShip(2, 'P', "patrol boat")
		return g

	default:
		return NewStandardGame()
	}
}

func IsDifficultyValid(difficulty uint8) bool {
	return difficulty == GameDifficultyEasy || difficulty == GameDifficultyNormal || difficulty == GameDifficultyHard
}

func (g *Game) Rows() int {
	return g.rows
}

func (g *Game) Cols() int {
	return g.cols
}

func (g *Game) NShips() int {
	return len(g.ships)
}

func (g *Game) Ship(shipId int) (ShipSpec, bool) {
	if shipId < 0 || shipId >= len(g.ships) {
		return ShipSpec{}, false
	}
	return g.ships[shipId], true
}

func (g *Game) Ships() []ShipSpec {
	ships := make([]ShipSpec, len(g.ships))
	copy(ships, g.ships)
	return ships
}

// ShipIds lists every ship id in catalog order.
func (g *Game) ShipIds() []int {
	ids := make([]int, len(g.ships))
	for i := range ids {
		ids[i] = i
	}
	return ids
}

func (g *Game) ShipIdBySymbol(symbol rune) (int, bool) {
	return g.symbols.Get(symbol)
}

func (g *Game) IsValid(p Point) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

func (g *Game) RandomPoint(rng *rand.Rand) Point {
	return Point{Row: rng.Intn(g.rows), Col: rng.Intn(g.cols)}
}

// AddShip appends a ship to the catalog. The ship id is its position in
// the catalog.
func (g *Game) AddShip(length int, symbol rune, name string) error {
	if length < 1 || (length > g.rows && length > g.cols) {
		return cerr.ErrShipLength(length, max(g.rows, g.cols))
	}

	if symbol > unicode.MaxASCII || !unicode.IsPrint(symbol) {
		return cerr.ErrShipSymbolUnprintable(symbol)
	}

	switch symbol {
	case SymbolEmpty, SymbolMiss, SymbolHit, SymbolObstacle:
		return cerr.ErrShipSymbolReserved(symbol)
	}

	if g.symbols.Has(symbol) {
		return cerr.ErrShipSymbolTaken(symbol)
	}

	total := length
	for _, ship := range g.ships {
		total += ship.Length
	}
	if total > g.rows*g.cols {
		return cerr.ErrFleetTooLarge(total, g.rows*g.cols)
	}

	id := len(g.ships)
	g.ships = append(g.ships, ShipSpec{Id: id, Length: length, Symbol: symbol, Name: name})
	g.symbols.Put(symbol, id)
	return nil
}

type catalogJSON struct {
	Rows  int `json:"rows"`
	Cols  int `json:"cols"`
	Ships []struct {
		Length int    `json:"length"`
		Symbol string `json:"symbol"`
		Name   string `json:"name"`
	} `json:"ships"`
}

// LoadGame reads a catalog of the form
// {"rows":10,"cols":10,"ships":[{"length":5,"symbol":"A","name":"carrier"}]}.
func LoadGame(r io.Reader) (*Game, error) {
	var catalog catalogJSON
	if err := json.NewDecoder(r).Decode(&catalog); err != nil {
		return nil, err
	}

	g, err := NewGame(catalog.Rows, catalog.Cols)
	if err != nil {
		return nil, err
	}

	for _, ship := range catalog.Ships {
		symbol := []rune(ship.Symbol)
		if len(symbol) != 1 {
			return nil, cerr.ErrShipSymbolUnprintable(0)
		}
		if err := g.AddShip(ship.Length, symbol[0], ship.Name); err != nil {
			return nil, err
		}
	}

	if g.NShips() == 0 {
		return nil, cerr.ErrEmptyFleet()
	}
	return g, nil
}
