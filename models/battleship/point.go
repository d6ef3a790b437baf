package battleship

import "fmt"

type Direction uint8

const (
	DirectionHorizontal Direction = iota
	DirectionVertical
)

func (d Direction) String() string {
	if d == DirectionVertical {
		return "vertical"
	}
	return "horizontal"
}

// Point has no validity of its own; it is only meaningful against a
// specific board's dimensions.
type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewPoint(row, col int) Point {
	return Point{Row: row, Col: col}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Step returns the point n cells away along dir.
func (p Point) Step(dir Direction, n int) Point {
	if dir == DirectionVertical {
		return Point{Row: p.Row + n, Col: p.Col}
	}
	return Point{Row: p.Row, Col: p.Col + n}
}

// Neighbors returns the four points at distance d along both axes, in
// the order down, up, right, left.
func (p Point) Neighbors(d int) [4]Point {
	return [4]Point{
		{Row: p.Row + d, Col: p.Col},
		{Row: p.Row - d, Col: p.Col},
		{Row: p.Row, Col: p.Col + d},
		{Row: p.Row, Col: p.Col - d},
	}
}
