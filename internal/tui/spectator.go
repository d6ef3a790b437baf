package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/saeidalz13/battleship-ai/internal/match"
	mb "github.com/saeidalz13/battleship-ai/models/battleship"
)

// Screen is the part of tcell.Screen the spectator draws with.
type Screen interface {
	Clear()
	Show()
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

const (
	boardGap   = 6
	headerRows = 2
)

var (
	styleTitle  = tcell.StyleDefault.Bold(true)
	styleLabel  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleWater  = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleShip   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleHit    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleMiss   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorGreen)
)

// Spectator draws both fleets side by side after every match event.
type Spectator struct {
	screen Screen
	names  [2]string
	boards [2]*mb.Board
	delay  time.Duration
	status string
}

var _ match.Narrator = (*Spectator)(nil)

// NewSpectator draws boards[i] under names[i]. The boards are read on every
// event, so they must be the ones the match plays on.
func NewSpectator(screen Screen, names [2]string, boards [2]*mb.Board, delay time.Duration) *Spectator {
	return &Spectator{
		screen: screen,
		names:  names,
		boards: boards,
		delay:  delay,
	}
}

func (s *Spectator) Status() string {
	return s.status
}

func (s *Spectator) Narrate(e match.Event) error {
	switch e.Kind {
	case match.EventTurn:
		s.status = fmt.Sprintf("turn %d: %s fires at %s", e.Turn, e.Attacker.Name(), e.Defender.Name())
		return nil
	case match.EventWasted:
		s.status = fmt.Sprintf("%s wasted a shot at %s", e.Attacker.Name(), e.Point)
	case match.EventAttack:
		switch {
		case e.Result.Destroyed:
			spec, _ := e.Board.Game().Ship(e.Result.ShipId)
			s.status = fmt.Sprintf("%s sank the %s at %s", e.Attacker.Name(), spec.Name, e.Point)
		case e.Result.Hit:
			s.status = fmt.Sprintf("%s hit at %s", e.Attacker.Name(), e.Point)
		default:
			s.status = fmt.Sprintf("%s missed %s", e.Attacker.Name(), e.Point)
		}
	case match.EventWin:
		s.status = fmt.Sprintf("%s wins after %d turns", e.Attacker.Name(), e.Turn)
	}

	s.Draw()
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return nil
}

func (s *Spectator) Draw() {
	s.screen.Clear()

	x := 0
	for i, b := range s.boards {
		s.drawText(x, 0, s.names[i], styleTitle)
		s.drawBoard(x, headerRows, b)
		x += b.Cols() + 3 + boardGap
	}

	s.drawText(0, headerRows+s.boards[0].Rows()+2, s.status, styleStatus)
	s.screen.Show()
}

func (s *Spectator) drawText(x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		s.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (s *Spectator) drawBoard(x, y int, b *mb.Board) {
	for c := 0; c < b.Cols(); c++ {
		s.screen.SetContent(x+3+c, y, rune('0'+c%10), nil, styleLabel)
	}

	for r := 0; r < b.Rows(); r++ {
		s.drawText(x, y+1+r, fmt.Sprintf("%2d", r), styleLabel)
		for c := 0; c < b.Cols(); c++ {
			p := mb.NewPoint(r, c)
			cell, _ := b.Cell(p)
			symbol, _ := b.Symbol(p, false)
			s.screen.SetContent(x+3+c, y+1+r, symbol, nil, cellStyle(cell))
		}
	}
}

func cellStyle(c mb.Cell) tcell.Style {
	switch c.State {
	case mb.CellStateHit:
		return styleHit
	case mb.CellStateMiss:
		return styleMiss
	case mb.CellStateOccupied:
		return styleShip
	default:
		return styleWater
	}
}

// WatchKeys cancels the match when q, Escape or Ctrl-C is pressed. It
// returns once the screen stops delivering events or ctx ends.
func WatchKeys(ctx context.Context, screen tcell.Screen, cancel context.CancelFunc) {
	for ctx.Err() == nil {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}

		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		if key.Key() == tcell.KeyEscape || key.Key() == tcell.KeyCtrlC || (key.Key() == tcell.KeyRune && key.Rune() == 'q') {
			cancel()
			return
		}
	}
}
