package match

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	cerr "github.com/saeidalz13/battleship-ai/internal/error"
	mb "github.com/saeidalz13/battleship-ai/models/battleship"
	"github.com/saeidalz13/battleship-ai/models/player"
)

type EventKind uint8

const (
	EventTurn EventKind = iota
	EventAttack
	EventWasted
	EventWin
)

// Event is one step of a match as seen by a narrator. Board is always the
// defender's board; on EventWin it is the loser's.
type Event struct {
	Kind      EventKind
	Turn      int
	Attacker  player.Player
	Defender  player.Player
	Board     *mb.Board
	MaskShips bool
	Point     mb.Point
	Result    mb.AttackResult

	// WinnerBoard is set on EventWin so a losing human can see where the
	// winner's ships were.
	WinnerBoard *mb.Board
}

type Narrator interface {
	Narrate(e Event) error
}

type Result struct {
	Id          uuid.UUID
	Winner      player.Player
	Loser       player.Player
	WinnerIndex int
	Turns       int
}

type Match struct {
	id        uuid.UUID
	players   [2]player.Player
	boards    [2]*mb.Board
	narrators []Narrator
	pause     func(ctx context.Context) error
}

type Option func(*Match) error

func WithNarrator(n Narrator) Option {
	return func(m *Match) error {
		m.narrators = append(m.narrators, n)
		return nil
	}
}

// WithPause runs fn after every turn that does not end the match.
func WithPause(fn func(ctx context.Context) error) Option {
	return func(m *Match) error {
		m.pause = fn
		return nil
	}
}

func WithId(id uuid.UUID) Option {
	return func(m *Match) error {
		if id == uuid.Nil {
			return cerr.ErrNilMatchId()
		}
		m.id = id
		return nil
	}
}

// New pairs each player with the board holding their own fleet.
func New(p1, p2 player.Player, b1, b2 *mb.Board, opts ...Option) (*Match, error) {
	m := &Match{
		id:      uuid.New(),
		players: [2]player.Player{p1, p2},
		boards:  [2]*mb.Board{b1, b2},
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Match) Id() uuid.UUID {
	return m.id
}

func (m *Match) Board(i int) *mb.Board {
	return m.boards[i]
}

func (m *Match) Player(i int) player.Player {
	return m.players[i]
}

func (m *Match) narrate(e Event) error {
	for _, n := range m.narrators {
		if err := n.Narrate(e); err != nil {
			return err
		}
	}
	return nil
}

func inputErr(p player.Player) error {
	if ip, ok := p.(player.InputPlayer); ok {
		return ip.Err()
	}
	return nil
}

// Play places both fleets and alternates attacks until one fleet is gone.
// The context is checked between turns.
func (m *Match) Play(ctx context.Context) (Result, error) {
	for i, p := range m.players {
		if !p.PlaceShips(m.boards[i]) {
			if err := inputErr(p); err != nil {
				return Result{}, fmt.Errorf("%w: %w", cerr.ErrMatchAborted, err)
			}
			return Result{}, cerr.ErrPlacementFailed(p.Name())
		}
	}
	log.Debug("fleets placed", "match", m.id, "p1", m.players[0].Name(), "p2", m.players[1].Name())

	for turn, attacker := 1, 0; ; turn++ {
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("%w: %w", cerr.ErrMatchAborted, err)
		}

		defender := 1 - attacker
		ap, dp := m.players[attacker], m.players[defender]
		board := m.boards[defender]
		mask := ap.IsHuman()

		if err := m.narrate(Event{Kind: EventTurn, Turn: turn, Attacker: ap, Defender: dp, Board: board, MaskShips: mask}); err != nil {
			return Result{}, err
		}

		p := ap.RecommendAttack()
		if err := inputErr(ap); err != nil {
			return Result{}, fmt.Errorf("%w: %w", cerr.ErrMatchAborted, err)
		}

		res, valid := board.Attack(p)
		ap.RecordAttackResult(p, valid, res)
		dp.RecordAttackByOpponent(p)

		kind := EventAttack
		if !valid {
			kind = EventWasted
		}
		if err := m.narrate(Event{Kind: kind, Turn: turn, Attacker: ap, Defender: dp, Board: board, MaskShips: mask, Point: p, Result: res}); err != nil {
			return Result{}, err
		}

		if board.AllShipsDestroyed() {
			e := Event{Kind: EventWin, Turn: turn, Attacker: ap, Defender: dp, Board: board, WinnerBoard: m.boards[attacker]}
			if err := m.narrate(e); err != nil {
				return Result{}, err
			}
			log.Info("match finished", "match", m.id, "winner", ap.Name(), "turns", turn)
			return Result{Id: m.id, Winner: ap, Loser: dp, WinnerIndex: attacker, Turns: turn}, nil
		}

		if m.pause != nil {
			if err := m.pause(ctx); err != nil {
				return Result{}, err
			}
		}
		attacker = defender
	}
}
