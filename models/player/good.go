package player

import (
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/saeidalz13/battleship-ai/internal/ai"
	mb "github.com/saeidalz13/battleship-ai/models/battleship"
)

// GoodPlayer places with the budgeted backtracking search and attacks
// with the adaptive targeting engine.
type GoodPlayer struct {
	base

	placement *ai.PlacementSearch
	targeting *ai.TargetingEngine
}

var _ Player = (*GoodPlayer)(nil)

func newGoodPlayer(b base, pb ai.PlacementBudget, tb ai.TargetingBudget, rng *rand.Rand, clock ai.Clock) *GoodPlayer {
	rows, cols := b.game.Rows(), b.game.Cols()

	return &GoodPlayer{
		base:      b,
		placement: ai.NewPlacementSearch(rows, cols, pb, clock),
		targeting: ai.NewTargetingEngine(rows, cols, tb, rng, clock),
	}
}

func (gp *GoodPlayer) PlaceShips(b *mb.Board) bool {
	if !gp.placement.Place(b, gp.game.ShipIds()) {
		log.Error("fleet placement failed", "player", gp.name)
		return false
	}
	return true
}

func (gp *GoodPlayer) RecommendAttack() mb.Point {
	return gp.targeting.RecommendAttack()
}

func (gp *GoodPlayer) RecordAttackResult(p mb.Point, valid bool, res mb.AttackResult) {
	gp.targeting.RecordAttackResult(p, valid, res)
}

// Phase exposes the targeting phase for spectators.
func (gp *GoodPlayer) Phase() ai.Phase {
	return gp.targeting.Phase()
}
