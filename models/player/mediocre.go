package player

import (
	"math/rand"

	"github.com/saeidalz13/battleship-ai/internal/ai"
	mb "github.com/saeidalz13/battleship-ai/models/battleship"
)

// followupReach is how far along each axis the mediocre player queues
// shots after a fresh hit.
const followupReach = 4

// MediocrePlayer shoots at random until it hits, then fires at random
// among the cells up to four away from that hit until the ship sinks.
type MediocrePlayer struct {
	base

	rng       *rand.Rand
	placement *ai.PlacementSearch

	unchosen []mb.Point
	chosen   []bool
	pending  []mb.Point
	hunting  bool
}

var _ Player = (*MediocrePlayer)(nil)

func newMediocrePlayer(b base, rng *rand.Rand) *MediocrePlayer {
	rows, cols := b.game.Rows(), b.game.Cols()

	unchosen := make([]mb.Point, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			unchosen = append(unchosen, mb.NewPoint(r, c))
		}
	}

	return &MediocrePlayer{
		base:      b,
		rng:       rng,
		placement: ai.NewRowMajorPlacementSearch(rows, cols, ai.PlainPlacementBudget()),
		unchosen:  unchosen,
		chosen:    make([]bool, rows*cols),
	}
}

func (mp *MediocrePlayer) PlaceShips(b *mb.Board) bool {
	return mp.placement.Place(b, mp.game.ShipIds())
}

func (mp *MediocrePlayer) isUnchosen(p mb.Point) bool {
	return mp.game.IsValid(p) && !mp.chosen[p.Row*mp.game.Cols()+p.Col]
}

func (mp *MediocrePlayer) choose(p mb.Point) {
	mp.chosen[p.Row*mp.game.Cols()+p.Col] = true
	for i, q := range mp.unchosen {
		if q == p {
			mp.unchosen = append(mp.unchosen[:i], mp.unchosen[i+1:]...)
			return
		}
	}
}

func (mp *MediocrePlayer) RecommendAttack() mb.Point {
	for mp.hunting && len(mp.pending) > 0 {
		i := mp.rng.Intn(len(mp.pending))
		p := mp.pending[i]
		mp.pending = append(mp.pending[:i], mp.pending[i+1:]...)
		if mp.isUnchosen(p) {
			mp.choose(p)
			return p
		}
	}

	if len(mp.unchosen) == 0 {
		return mb.NewPoint(0, 0)
	}
	p := mp.unchosen[mp.rng.Intn(len(mp.unchosen))]
	mp.choose(p)
	return p
}

func (mp *MediocrePlayer) RecordAttackResult(p mb.Point, valid bool, res mb.AttackResult) {
	if res.Destroyed {
		mp.pending = nil
		mp.hunting = false
		return
	}

	if mp.hunting || !valid || !res.Hit {
		return
	}

	for d := 1; d <= followupReach; d++ {
		for _, n := range p.Neighbors(d) {
			if mp.isUnchosen(n) {
				mp.pending = append(mp.pending, n)
			}
		}
	}
	mp.hunting = true
}
