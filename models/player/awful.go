package player

import (
	mb "github.com/saeidalz13/battleship-ai/models/battleship"
)

// AwfulPlayer stacks its fleet in the top-left corner and sweeps the
// opponent's board backwards, ignoring every result.
type AwfulPlayer struct {
	base
	last mb.Point
}

var _ Player = (*AwfulPlayer)(nil)

func newAwfulPlayer(b base) *AwfulPlayer {
	return &AwfulPlayer{base: b}
}

func (ap *AwfulPlayer) PlaceShips(b *mb.Board) bool {
	for k := 0; k < ap.game.NShips(); k++ {
		if !b.PlaceShip(mb.NewPoint(k, 0), k, mb.DirectionHorizontal) {
			return false
		}
	}
	return true
}

func (ap *AwfulPlayer) RecommendAttack() mb.Point {
	if ap.last.Col > 0 {
		ap.last.Col--
		return ap.last
	}

	ap.last.Col = ap.game.Cols() - 1
	if ap.last.Row > 0 {
		ap.last.Row--
	} else {
		ap.last.Row = ap.game.Rows() - 1
	}
	return ap.last
}

func (ap *AwfulPlayer) RecordAttackResult(mb.Point, bool, mb.AttackResult) {}
