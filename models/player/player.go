package player

import (
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/saeidalz13/battleship-ai/internal/ai"
	cerr "github.com/saeidalz13/battleship-ai/internal/error"
	mb "github.com/saeidalz13/battleship-ai/models/battleship"
)

const (
	KindHuman    = "human"
	KindAwful    = "awful"
	KindMediocre = "mediocre"
	KindGood     = "good"
)

var Kinds = []string{KindHuman, KindAwful, KindMediocre, KindGood}

// Player is one side of a match. Players never see the opponent's board;
// they only learn from the results of their own attacks.
type Player interface {
	Name() string
	IsHuman() bool
	Game() *mb.Game
	PlaceShips(b *mb.Board) bool
	RecommendAttack() mb.Point
	RecordAttackResult(p mb.Point, valid bool, res mb.AttackResult)
	RecordAttackByOpponent(p mb.Point)
}

// InputPlayer is implemented by players whose moves come from outside the
// process. Err reports why the last move could not be read.
type InputPlayer interface {
	Player
	Err() error
}

type base struct {
	name string
	game *mb.Game
}

func (b base) Name() string {
	return b.name
}

func (b base) Game() *mb.Game {
	return b.game
}

func (b base) IsHuman() bool {
	return false
}

func (b base) RecordAttackByOpponent(mb.Point) {}

type options struct {
	in        io.Reader
	out       io.Writer
	rng       *rand.Rand
	clock     ai.Clock
	placement ai.PlacementBudget
	targeting ai.TargetingBudget
}

type Option func(*options) error

func WithInput(r io.Reader) Option {
	return func(o *options) error {
		o.in = r
		return nil
	}
}

func WithOutput(w io.Writer) Option {
	return func(o *options) error {
		o.out = w
		return nil
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(o *options) error {
		o.rng = rng
		return nil
	}
}

func WithClock(clock ai.Clock) Option {
	return func(o *options) error {
		o.clock = clock
		return nil
	}
}

func WithPlacementBudget(budget ai.PlacementBudget) Option {
	return func(o *options) error {
		if budget.SparseUntil > budget.DenseAfter || budget.DenseAfter > budget.HardDeadline {
			return cerr.ErrInvalidBudget(
				int(budget.SparseUntil.Milliseconds()),
				int(budget.DenseAfter.Milliseconds()),
				int(budget.HardDeadline.Milliseconds()),
			)
		}
		o.placement = budget
		return nil
	}
}

func WithTargetingBudget(budget ai.TargetingBudget) Option {
	return func(o *options) error {
		o.targeting = budget
		return nil
	}
}

// New builds the player variant named by kind.
func New(kind, name string, g *mb.Game, opts ...Option) (Player, error) {
	o := options{
		in:        os.Stdin,
		out:       os.Stdout,
		placement: ai.DefaultPlacementBudget(),
		targeting: ai.DefaultTargetingBudget(),
	}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	b := base{name: name, game: g}
	switch kind {
	case KindHuman:
		return newHumanPlayer(b, o.in, o.out), nil
	case KindAwful:
		return newAwfulPlayer(b), nil
	case KindMediocre:
		return newMediocrePlayer(b, o.rng), nil
	case KindGood:
		return newGoodPlayer(b, o.placement, o.targeting, o.rng, o.clock), nil
	default:
		return nil, cerr.ErrUnknownPlayerKind(kind)
	}
}
