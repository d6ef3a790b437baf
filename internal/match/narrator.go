package match

import (
	"bufio"
	"context"
	"fmt"
	"io"

	cerr "github.com/saeidalz13/battleship-ai/internal/error"
)

// ConsoleNarrator prints a match the way a terminal game would.
type ConsoleNarrator struct {
	w io.Writer
}

var _ Narrator = (*ConsoleNarrator)(nil)

func NewConsoleNarrator(w io.Writer) *ConsoleNarrator {
	return &ConsoleNarrator{w: w}
}

func (cn *ConsoleNarrator) Narrate(e Event) error {
	attacker := e.Attacker.Name()

	switch e.Kind {
	case EventTurn:
		fmt.Fprintf(cn.w, "%s's turn. Board for %s:\n", attacker, e.Defender.Name())
		return e.Board.Display(cn.w, e.MaskShips)

	case EventWasted:
		_, err := fmt.Fprintf(cn.w, "%s wasted a shot at %s.\n", attacker, e.Point)
		return err

	case EventAttack:
		outcome := "missed"
		if e.Result.Destroyed {
			spec, _ := e.Board.Game().Ship(e.Result.ShipId)
			outcome = "destroyed the " + spec.Name
		} else if e.Result.Hit {
			outcome = "hit something"
		}
		fmt.Fprintf(cn.w, "%s attacked %s and %s, resulting in:\n", attacker, e.Point, outcome)
		return e.Board.Display(cn.w, e.MaskShips)

	case EventWin:
		fmt.Fprintf(cn.w, "%s wins!\n", attacker)
		if e.Defender.IsHuman() && e.WinnerBoard != nil {
			fmt.Fprintf(cn.w, "Here is where %s's ships were:\n", attacker)
			return e.WinnerBoard.Display(cn.w, false)
		}
	}
	return nil
}

// EnterPause returns a pause step that waits for a line on in.
func EnterPause(in io.Reader, out io.Writer) func(ctx context.Context) error {
	r := bufio.NewReader(in)

	return func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(out, "Press enter to continue: ")
		if _, err := r.ReadString('\n'); err != nil {
			return fmt.Errorf("%w: %w", cerr.ErrInputClosed, err)
		}
		return nil
	}
}
