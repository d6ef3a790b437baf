package ai

import (
	"time"

	"github.com/charmbracelet/log"
	mb "github.com/saeidalz13/battleship-ai/models/battleship"
)

// Placer is the part of the board contract placement needs.
type Placer interface {
	PlaceShip(origin mb.Point, shipId int, dir mb.Direction) bool
	UnplaceShip(origin mb.Point, shipId int, dir mb.Direction) bool
	Block()
	Unblock()
}

type PlacementBudget struct {
	MaxAttempts   int
	InitialStride int

	// Elapsed-time thresholds. A zero HardDeadline disables the clock.
	SparseUntil  time.Duration
	DenseAfter   time.Duration
	HardDeadline time.Duration

	// Fallback runs a dense search on the unobstructed board when the
	// randomized attempts give up.
	Fallback bool
}

const (
	clockCheckInterval = 10

	// nodeCheckInterval is how many candidate placements a single attempt
	// tries between clock reads.
	nodeCheckInterval = 256
)

func DefaultPlacementBudget() PlacementBudget {
	return PlacementBudget{
		MaxAttempts:   50000,
		InitialStride: 3,
		SparseUntil:   400 * time.Millisecond,
		DenseAfter:    700 * time.Millisecond,
		HardDeadline:  800 * time.Millisecond,
		Fallback:      true,
	}
}

// PlainPlacementBudget is a short, untimed search without the
// unobstructed fallback.
func PlainPlacementBudget() PlacementBudget {
	return PlacementBudget{
		MaxAttempts:   50,
		InitialStride: 1,
	}
}

type PlacementSearch struct {
	rowOrder []int
	colOrder []int
	budget   PlacementBudget
	now      Clock
}

func NewPlacementSearch(rows, cols int, budget PlacementBudget, now Clock) *PlacementSearch {
	if budget.InitialStride < 1 {
		budget.InitialStride = 1
	}

	return &PlacementSearch{
		rowOrder: AlternatingSequence(rows),
		colOrder: AlternatingSequence(cols),
		budget:   budget,
		now:      now.orDefault(),
	}
}

// NewRowMajorPlacementSearch visits cells top-left first instead of in
// alternating order.
func NewRowMajorPlacementSearch(rows, cols int, budget PlacementBudget) *PlacementSearch {
	ps := NewPlacementSearch(rows, cols, budget, nil)
	for i := range ps.rowOrder {
		ps.rowOrder[i] = i
	}
	for i := range ps.colOrder {
		ps.colOrder[i] = i
	}
	return ps
}

// Place finds a legal placement for every ship in shipIds, in order. On
// success the ships stay on the board; on failure the board is left as
// it was found.
func (ps *PlacementSearch) Place(b Placer, shipIds []int) bool {
	if len(shipIds) == 0 {
		return true
	}

	start := ps.now()
	timed := ps.budget.HardDeadline > 0
	stride := ps.budget.InitialStride

	for attempt := 0; attempt < ps.budget.MaxAttempts; attempt++ {
		if timed && attempt%clockCheckInterval == 0 {
			elapsed := ps.now().Sub(start)
			if elapsed > ps.budget.HardDeadline {
				log.Debug("placement hit hard deadline", "attempts", attempt, "elapsed", elapsed)
				return ps.PlaceUnobstructed(b, shipIds)
			}
			if elapsed > ps.budget.DenseAfter {
				stride = 1
			} else if elapsed > ps.budget.SparseUntil {
				stride = min(stride, 2)
			}
		}

		run := &placeRun{b: b, shipIds: shipIds}
		if timed {
			run.now = ps.now
			run.deadline = start.Add(ps.budget.HardDeadline)
		}

		b.Block()
		placed := ps.place(run, 0, stride)
		b.Unblock()

		if placed {
			return true
		}
		if run.expired {
			log.Debug("placement attempt ran past hard deadline", "attempts", attempt+1, "nodes", run.nodes)
			return ps.PlaceUnobstructed(b, shipIds)
		}
	}

	if ps.budget.Fallback {
		return ps.PlaceUnobstructed(b, shipIds)
	}
	return false
}

// PlaceUnobstructed is the dense exhaustive search. It succeeds whenever
// any placement of the ships exists on the current board.
func (ps *PlacementSearch) PlaceUnobstructed(b Placer, shipIds []int) bool {
	if len(shipIds) == 0 {
		return true
	}
	return ps.place(&placeRun{b: b, shipIds: shipIds}, 0, 1)
}

// placeRun is the state of one recursive search. A nil now leaves the
// search untimed.
type placeRun struct {
	b        Placer
	shipIds  []int
	now      Clock
	deadline time.Time
	nodes    int
	expired  bool
}

func (r *placeRun) tick() bool {
	r.nodes++
	if r.now == nil || r.nodes%nodeCheckInterval != 0 {
		return true
	}
	if r.now().After(r.deadline) {
		r.expired = true
	}
	return !r.expired
}

// place puts shipIds[k:] on the board. The stride only thins out the
// cells tried for the outermost ship. An expired run unwinds whatever it
// placed and reports failure.
func (ps *PlacementSearch) place(r *placeRun, k, stride int) bool {
	for ii := 0; ii < len(ps.rowOrder); ii += stride {
		for jj := 0; jj < len(ps.colOrder); jj += stride {
			origin := mb.NewPoint(ps.rowOrder[ii], ps.colOrder[jj])

			for _, dir := range [2]mb.Direction{mb.DirectionHorizontal, mb.DirectionVertical} {
				if !r.tick() {
					return false
				}
				if !r.b.PlaceShip(origin, r.shipIds[k], dir) {
					continue
				}
				if k == len(r.shipIds)-1 || ps.place(r, k+1, 1) {
					return true
				}
				r.b.UnplaceShip(origin, r.shipIds[k], dir)
				if r.expired {
					return false
				}
			}
		}
	}
	return false
}
