package ai

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dolthub/swiss"
	mb "github.com/saeidalz13/battleship-ai/models/battleship"
)

type Phase uint8

const (
	PhaseSearch Phase = iota
	PhaseFollowup
	PhaseAxisLocked
)

func (ph Phase) String() string {
	switch ph {
	case PhaseFollowup:
		return "followup"
	case PhaseAxisLocked:
		return "axis-locked"
	default:
		return "search"
	}
}

type CellStatus uint8

const (
	StatusUnattacked CellStatus = iota
	StatusHit
	StatusMiss
)

const (
	scoreCentre = 16
	scoreMiddle = 14
	scoreOuter  = 12
	scoreCorner = 8

	centreCells = 36
	middleCells = 64

	scoreHitMarker  = -100
	scoreMissMarker = -300
	missDecayNear   = 4
	missDecayFar    = 2

	// Score bands of the single-number encoding, kept for ClassifyScore.
	bandUnattacked = -5
	bandHit        = -130
)

type TargetingBudget struct {
	// SampleBudget bounds one late-game sampling pass.
	SampleBudget time.Duration
}

func DefaultTargetingBudget() TargetingBudget {
	return TargetingBudget{SampleBudget: time.Second}
}

type engagement struct {
	shipId int
	first  mb.Point
	hits   []mb.Point
}

// TargetingEngine picks attack points against an unseen board using only
// the outcomes of its own shots. A cell's status decides legality; its
// score only ranks candidates.
type TargetingEngine struct {
	rows int
	cols int

	score  []int
	status []CellStatus
	owner  *swiss.Map[int, int]

	order  []mb.Point
	cursor int

	// unattacked holds cell indices; slot maps a cell index to its
	// position in unattacked, or -1.
	unattacked []int
	slot       []int

	phase   Phase
	pending []mb.Point
	engaged []engagement
	axis    mb.Direction
	minExt  mb.Point
	maxExt  mb.Point

	searchTurns int
	earlyTurns  int

	budget TargetingBudget
	rng    *rand.Rand
	now    Clock
}

func NewTargetingEngine(rows, cols int, budget TargetingBudget, rng *rand.Rand, now Clock) *TargetingEngine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	n := rows * cols
	te := &TargetingEngine{
		rows:       rows,
		cols:       cols,
		score:      make([]int, n),
		status:     make([]CellStatus, n),
		owner:      swiss.NewMap[int, int](16),
		unattacked: make([]int, n),
		slot:       make([]int, n),
		earlyTurns: n / 10,
		budget:     budget,
		rng:        rng,
		now:        now.orDefault(),
	}
	for i := range n {
		te.unattacked[i] = i
		te.slot[i] = i
	}

	te.initScores()
	return te
}

// initScores spirals out from the centre assigning priority tiers and
// builds the ordered search list. The random offset shifts which spiral
// cells get promoted to the front of the list.
func (te *TargetingEngine) initScores() {
	spiral := SpiralSequence(te.rows, te.cols)
	offset := te.rng.Intn(4)

	priority := make([]mb.Point, 0, len(spiral)/8+1)
	rest := make([]mb.Point, 0, len(spiral))

	for k, p := range spiral {
		switch {
		case k < centreCells:
			te.score[te.index(p)] = scoreCentre
		case k < middleCells:
			te.score[te.index(p)] = scoreMiddle
		default:
			te.score[te.index(p)] = scoreOuter
		}

		c := k + offset
		switch {
		case c%9 == 0 && k < centreCells:
			priority = append(priority, p)
		case c%11 == 0 && k < middleCells:
			priority = append(priority, p)
		case (c-2)%15 == 0 && k >= middleCells:
			priority = append(priority, p)
		default:
			rest = append(rest, p)
		}
	}

	for _, p := range [4]mb.Point{
		{Row: 0, Col: 0},
		{Row: 0, Col: te.cols - 1},
		{Row: te.rows - 1, Col: 0},
		{Row: te.rows - 1, Col: te.cols - 1},
	} {
		te.score[te.index(p)] = scoreCorner
	}

	te.order = append(priority, rest...)
}

func (te *TargetingEngine) inBounds(p mb.Point) bool {
	return p.Row >= 0 && p.Row < te.rows && p.Col >= 0 && p.Col < te.cols
}

func (te *TargetingEngine) index(p mb.Point) int {
	return p.Row*te.cols + p.Col
}

func (te *TargetingEngine) point(idx int) mb.Point {
	return mb.NewPoint(idx/te.cols, idx%te.cols)
}

func (te *TargetingEngine) isOpen(p mb.Point) bool {
	return te.inBounds(p) && te.status[te.index(p)] == StatusUnattacked
}

func (te *TargetingEngine) Phase() Phase {
	return te.phase
}

func (te *TargetingEngine) Pending() []mb.Point {
	pending := make([]mb.Point, len(te.pending))
	copy(pending, te.pending)
	return pending
}

// Remaining is the number of cells not attacked yet.
func (te *TargetingEngine) Remaining() int {
	return len(te.unattacked)
}

func (te *TargetingEngine) Score(p mb.Point) (int, bool) {
	if !te.inBounds(p) {
		return 0, false
	}
	return te.score[te.index(p)], true
}

func (te *TargetingEngine) Status(p mb.Point) (CellStatus, bool) {
	if !te.inBounds(p) {
		return 0, false
	}
	return te.status[te.index(p)], true
}

// ClassifyScore decodes a score with the banded single-number scheme
// where status and priority share one integer. Miss decay can push an
// unattacked cell below the first band, so the engine never relies on it.
func ClassifyScore(score int) CellStatus {
	switch {
	case score > bandUnattacked:
		return StatusUnattacked
	case score > bandHit:
		return StatusHit
	default:
		return StatusMiss
	}
}

// RecommendAttack never returns a cell that was already attacked while any
// unattacked cell remains.
func (te *TargetingEngine) RecommendAttack() mb.Point {
	if len(te.unattacked) == 0 {
		return mb.NewPoint(0, 0)
	}

	for {
		switch te.phase {
		case PhaseAxisLocked:
			if p, ok := te.axisTarget(); ok {
				return p
			}
			log.Debug("axis exhausted, falling back to neighbours", "ship", te.engaged[0].shipId)
			te.phase = PhaseFollowup
			te.pending = te.openNeighbors(te.engaged[0].first, 1)

		case PhaseFollowup:
			if p, ok := te.followupTarget(); ok {
				return p
			}
			te.engaged = te.engaged[1:]
			te.resume()

		default:
			return te.searchTarget()
		}
	}
}

func (te *TargetingEngine) searchTarget() mb.Point {
	te.searchTurns++

	if te.searchTurns < te.earlyTurns {
		for ; te.cursor < len(te.order); te.cursor++ {
			if te.isOpen(te.order[te.cursor]) {
				return te.order[te.cursor]
			}
		}
		return te.randomOpen()
	}

	start := te.now()
	best := te.unattacked[te.rng.Intn(len(te.unattacked))]
	samples := 4 * te.rows * te.cols

	for k := 1; k <= samples; k++ {
		idx := te.unattacked[te.rng.Intn(len(te.unattacked))]
		if te.score[idx] > te.score[best] {
			best = idx
		}
		if k%clockCheckInterval == 0 && te.now().Sub(start) > te.budget.SampleBudget {
			log.Debug("sampling budget spent", "samples", k)
			break
		}
	}
	return te.point(best)
}

func (te *TargetingEngine) randomOpen() mb.Point {
	return te.point(te.unattacked[te.rng.Intn(len(te.unattacked))])
}

// followupTarget pops the best-scoring open pending point. An empty queue
// is refilled with points two and then three cells from the first hit.
func (te *TargetingEngine) followupTarget() (mb.Point, bool) {
	te.prunePending()
	if len(te.pending) == 0 {
		first := te.engaged[0].first
		for _, d := range [2]int{2, 3} {
			te.pending = te.openNeighbors(first, d)
			if len(te.pending) > 0 {
				break
			}
		}
	}
	if len(te.pending) == 0 {
		return mb.Point{}, false
	}

	best := 0
	for i, p := range te.pending {
		if te.score[te.index(p)] > te.score[te.index(te.pending[best])] {
			best = i
		}
	}

	p := te.pending[best]
	te.pending = append(te.pending[:best], te.pending[best+1:]...)
	return p, true
}

func (te *TargetingEngine) prunePending() {
	open := te.pending[:0]
	for _, p := range te.pending {
		if te.isOpen(p) {
			open = append(open, p)
		}
	}
	te.pending = open
}

// axisTarget fills unattacked gaps between the extents first, then tries
// the cell beyond each end.
func (te *TargetingEngine) axisTarget() (mb.Point, bool) {
	shipId := te.engaged[0].shipId

	for p := te.minExt; p != te.maxExt; p = p.Step(te.axis, 1) {
		if te.isOpen(p) {
			return p, true
		}
	}

	lo := te.minExt.Step(te.axis, -1)
	for te.ownedBy(lo, shipId) {
		te.minExt = lo
		lo = lo.Step(te.axis, -1)
	}
	hi := te.maxExt.Step(te.axis, 1)
	for te.ownedBy(hi, shipId) {
		te.maxExt = hi
		hi = hi.Step(te.axis, 1)
	}

	loOpen, hiOpen := te.isOpen(lo), te.isOpen(hi)
	switch {
	case loOpen && hiOpen:
		if te.score[te.index(hi)] > te.score[te.index(lo)] {
			return hi, true
		}
		return lo, true
	case loOpen:
		return lo, true
	case hiOpen:
		return hi, true
	}
	return mb.Point{}, false
}

func (te *TargetingEngine) ownedBy(p mb.Point, shipId int) bool {
	if !te.inBounds(p) {
		return false
	}
	idx := te.index(p)
	if te.status[idx] != StatusHit {
		return false
	}
	owner, ok := te.owner.Get(idx)
	return ok && owner == shipId
}

func (te *TargetingEngine) openNeighbors(p mb.Point, d int) []mb.Point {
	points := make([]mb.Point, 0, 4)
	for _, n := range p.Neighbors(d) {
		if te.isOpen(n) {
			points = append(points, n)
		}
	}
	return points
}

// resume picks the phase for the ship at the front of the engaged list.
func (te *TargetingEngine) resume() {
	te.pending = nil
	if len(te.engaged) == 0 {
		te.phase = PhaseSearch
		return
	}

	focus := te.engaged[0]
	if len(focus.hits) >= 2 {
		te.lockAxis(focus)
		return
	}

	te.minExt, te.maxExt = focus.first, focus.first
	te.pending = te.openNeighbors(focus.first, 1)
	te.phase = PhaseFollowup
}

func (te *TargetingEngine) lockAxis(e engagement) {
	te.axis = mb.DirectionVertical
	if e.hits[0].Row == e.hits[1].Row {
		te.axis = mb.DirectionHorizontal
	}

	te.minExt, te.maxExt = e.hits[0], e.hits[0]
	for _, h := range e.hits[1:] {
		if h.Row < te.minExt.Row || h.Col < te.minExt.Col {
			te.minExt = h
		}
		if h.Row > te.maxExt.Row || h.Col > te.maxExt.Col {
			te.maxExt = h
		}
	}
	te.pending = nil
	te.phase = PhaseAxisLocked
}

func (te *TargetingEngine) markAttacked(idx int, status CellStatus) {
	te.status[idx] = status

	s := te.slot[idx]
	last := len(te.unattacked) - 1
	moved := te.unattacked[last]
	te.unattacked[s] = moved
	te.slot[moved] = s
	te.unattacked = te.unattacked[:last]
	te.slot[idx] = -1
}

func (te *TargetingEngine) decay(p mb.Point, d, amount int) {
	for _, n := range p.Neighbors(d) {
		if te.isOpen(n) {
			te.score[te.index(n)] -= amount
		}
	}
}

func (te *TargetingEngine) engagementIndex(shipId int) int {
	for i, e := range te.engaged {
		if e.shipId == shipId {
			return i
		}
	}
	return -1
}

// RecordAttackResult feeds back the outcome of an attack at p. Reports for
// cells already recorded, or off the board, are ignored.
func (te *TargetingEngine) RecordAttackResult(p mb.Point, valid bool, res mb.AttackResult) {
	if !te.inBounds(p) {
		return
	}
	idx := te.index(p)
	if te.status[idx] != StatusUnattacked {
		return
	}

	if !valid || !res.Hit {
		te.markAttacked(idx, StatusMiss)
		te.score[idx] = scoreMissMarker
		if valid {
			te.decay(p, 1, missDecayNear)
			te.decay(p, 2, missDecayFar)
		}
		return
	}

	te.markAttacked(idx, StatusHit)
	te.score[idx] = scoreHitMarker
	te.owner.Put(idx, res.ShipId)

	at := te.engagementIndex(res.ShipId)
	if res.Destroyed {
		if at < 0 {
			return
		}
		te.engaged = append(te.engaged[:at], te.engaged[at+1:]...)
		if at == 0 {
			te.resume()
		}
		return
	}

	if at < 0 {
		te.engaged = append(te.engaged, engagement{shipId: res.ShipId, first: p, hits: []mb.Point{p}})
		at = len(te.engaged) - 1
	} else {
		te.engaged[at].hits = append(te.engaged[at].hits, p)
	}

	switch te.phase {
	case PhaseSearch:
		if at != 0 {
			e := te.engaged[at]
			copy(te.engaged[1:at+1], te.engaged[:at])
			te.engaged[0] = e
		}
		te.resume()

	case PhaseFollowup, PhaseAxisLocked:
		if at == 0 {
			te.lockAxis(te.engaged[0])
		}
	}
}
