package battleship

type Placement struct {
	Origin    Point
	Direction Direction
}

type Ship struct {
	Spec      ShipSpec
	health    int
	placement *Placement
}

func NewShip(spec ShipSpec) *Ship {
	return &Ship{
		Spec:   spec,
		health: spec.Length,
	}
}

func (sh *Ship) Health() int {
	return sh.health
}

func (sh *Ship) GotHit() {
	sh.health--
}

func (sh *Ship) IsSunk() bool {
	return sh.health <= 0
}

// Placement returns the origin and direction once the ship is on the
// board.
func (sh *Ship) Placement() (Placement, bool) {
	if sh.placement == nil {
		return Placement{}, false
	}
	return *sh.placement, true
}

// Footprint returns the cells covered by a ship of the given length
// starting at origin.
func Footprint(origin Point, length int, dir Direction) []Point {
	points := make([]Point, length)
	for i := range length {
		points[i] = origin.Step(dir, i)
	}
	return points
}
