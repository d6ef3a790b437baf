package player

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	cerr "github.com/saeidalz13/battleship-ai/internal/error"
	mb "github.com/saeidalz13/battleship-ai/models/battleship"
)

// HumanPlayer reads its moves line by line and prompts on out.
type HumanPlayer struct {
	base

	in  *bufio.Scanner
	out io.Writer
	err error
}

var _ InputPlayer = (*HumanPlayer)(nil)

func newHumanPlayer(b base, in io.Reader, out io.Writer) *HumanPlayer {
	return &HumanPlayer{
		base: b,
		in:   bufio.NewScanner(in),
		out:  out,
	}
}

func (hp *HumanPlayer) IsHuman() bool {
	return true
}

func (hp *HumanPlayer) Err() error {
	return hp.err
}

func (hp *HumanPlayer) readLine() (string, bool) {
	if !hp.in.Scan() {
		hp.err = cerr.ErrInputClosed
		if err := hp.in.Err(); err != nil {
			hp.err = fmt.Errorf("%w: %w", cerr.ErrInputClosed, err)
		}
		return "", false
	}
	return strings.TrimSpace(hp.in.Text()), true
}

// ParsePoint reads a "row col" pair.
func ParsePoint(line string) (mb.Point, bool) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return mb.Point{}, false
	}

	r, err := strconv.Atoi(fields[0])
	if err != nil {
		return mb.Point{}, false
	}
	c, err := strconv.Atoi(fields[1])
	if err != nil {
		return mb.Point{}, false
	}
	return mb.NewPoint(r, c), true
}

// ParseDirection accepts "h" and "v".
func ParseDirection(s string) (mb.Direction, error) {
	switch strings.TrimSpace(s) {
	case "h":
		return mb.DirectionHorizontal, nil
	case "v":
		return mb.DirectionVertical, nil
	default:
		return 0, cerr.ErrInvalidDirection(s)
	}
}

func (hp *HumanPlayer) readDirection(spec mb.ShipSpec) (mb.Direction, bool) {
	for {
		fmt.Fprintf(hp.out, "Enter h or v for direction of %s (length %d): ", spec.Name, spec.Length)
		line, ok := hp.readLine()
		if !ok {
			return 0, false
		}
		dir, err := ParseDirection(line)
		if err == nil {
			return dir, true
		}
		fmt.Fprintln(hp.out, "Direction must be h or v.")
	}
}

func (hp *HumanPlayer) PlaceShips(b *mb.Board) bool {
	fmt.Fprintf(hp.out, "%s must place %d ships.\n", hp.name, hp.game.NShips())

	for _, spec := range hp.game.Ships() {
		if err := b.Display(hp.out, false); err != nil {
			hp.err = err
			return false
		}

		dir, ok := hp.readDirection(spec)
		if !ok {
			return false
		}

		for {
			fmt.Fprint(hp.out, "Enter row and column of leftmost cell (e.g., 3 5): ")
			line, ok := hp.readLine()
			if !ok {
				return false
			}

			origin, ok := ParsePoint(line)
			if !ok {
				fmt.Fprintln(hp.out, "You must enter two integers.")
				continue
			}
			if !b.PlaceShip(origin, spec.Id, dir) {
				fmt.Fprintln(hp.out, "The ship can not be placed there.")
				continue
			}
			break
		}
	}
	return true
}

// RecommendAttack returns an off-board point once input is exhausted; the
// match checks Err before using it.
func (hp *HumanPlayer) RecommendAttack() mb.Point {
	for {
		fmt.Fprint(hp.out, "Enter the row and column to attack (e.g., 3 5): ")
		line, ok := hp.readLine()
		if !ok {
			return mb.NewPoint(-1, -1)
		}
		if p, ok := ParsePoint(line); ok {
			return p
		}
		fmt.Fprintln(hp.out, "You must enter two integers.")
	}
}

func (hp *HumanPlayer) RecordAttackResult(mb.Point, bool, mb.AttackResult) {}
