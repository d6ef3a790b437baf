package ai

import (
	"time"

	mb "github.com/saeidalz13/battleship-ai/models/battleship"
)

// Clock is the time source for every budgeted loop in this package.
type Clock func() time.Time

func (c Clock) orDefault() Clock {
	if c == nil {
		return time.Now
	}
	return c
}

// AlternatingSequence interleaves the low half of [0,n) ascending with the
// high half descending: n=10 gives 0 9 1 8 2 7 3 6 4 5. Odd sizes start
// with the top element of the high half.
func AlternatingSequence(n int) []int {
	high := make([]int, 0, n-n/2)
	for i := n - 1; i >= n/2; i-- {
		high = append(high, i)
	}

	seq := make([]int, 0, n)
	if len(high) > n/2 {
		seq = append(seq, high[0])
		high = high[1:]
	}
	for i := range high {
		seq = append(seq, i, high[i])
	}
	return seq
}

// SpiralSequence walks outward from the board centre and returns every
// cell exactly once.
func SpiralSequence(rows, cols int) []mb.Point {
	total := rows * cols
	seq := make([]mb.Point, 0, total)
	inBounds := func(p mb.Point) bool {
		return p.Row >= 0 && p.Row < rows && p.Col >= 0 && p.Col < cols
	}

	// left, up, right, down
	moves := [4]mb.Point{{Row: 0, Col: -1}, {Row: -1, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 0}}

	p := mb.NewPoint(rows/2, cols/2)
	seq = append(seq, p)

	for step, turn := 1, 0; len(seq) < total; step++ {
		for k := 0; k < 2 && len(seq) < total; k++ {
			move := moves[turn%4]
			for s := 0; s < step; s++ {
				p = mb.NewPoint(p.Row+move.Row, p.Col+move.Col)
				if inBounds(p) {
					seq = append(seq, p)
				}
			}
			turn++
		}
	}
	return seq
}
