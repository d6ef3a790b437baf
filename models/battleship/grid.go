package battleship

type CellState uint8

const (
	CellStateEmpty CellState = iota
	CellStateObstacle
	CellStateOccupied
	CellStateMiss
	CellStateHit
)

// Cell holds exactly one state. ShipId is only meaningful for
// CellStateOccupied and CellStateHit.
type Cell struct {
	State  CellState
	ShipId int
}

// IsAttacked reports whether the cell reached one of the terminal states.
func (c Cell) IsAttacked() bool {
	return c.State == CellStateMiss || c.State == CellStateHit
}

// Grid is a row-major rows x cols array of cells. Only Board writes to it.
type Grid struct {
	rows  int
	cols  int
	cells []Cell
}

// Creates a new default grid
// All cells start as CellStateEmpty
func NewGrid(rows, cols int) Grid {
	return Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols),
	}
}

func (g Grid) Rows() int {
	return g.rows
}

func (g Grid) Cols() int {
	return g.cols
}

func (g Grid) InBounds(p Point) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

func (g Grid) index(p Point) int {
	return p.Row*g.cols + p.Col
}

func (g Grid) at(p Point) Cell {
	return g.cells[g.index(p)]
}

func (g *Grid) set(p Point, c Cell) {
	g.cells[g.index(p)] = c
}

func (g *Grid) reset() {
	for i := range g.cells {
		g.cells[i] = Cell{}
	}
}
