package api

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/saeidalz13/battleship-ai/internal/ai"
	cerr "github.com/saeidalz13/battleship-ai/internal/error"
	mb "github.com/saeidalz13/battleship-ai/models/battleship"
	mc "github.com/saeidalz13/battleship-ai/models/connection"
	"github.com/saeidalz13/battleship-ai/models/player"
)

const commandBufferSize = 8

type command struct {
	code    uint8
	payload []byte
}

// RemotePlayer is the human at the other end of a websocket session. The
// session loop feeds it commands; the match goroutine consumes them.
type RemotePlayer struct {
	name     string
	game     *mb.Game
	session  *mc.Session
	placer   *ai.PlacementSearch
	commands chan command
	ctx      context.Context
	done     chan struct{}
	err      error
}

var _ player.InputPlayer = (*RemotePlayer)(nil)

func NewRemotePlayer(ctx context.Context, name string, g *mb.Game, session *mc.Session, placer *ai.PlacementSearch) *RemotePlayer {
	return &RemotePlayer{
		name:     name,
		game:     g,
		session:  session,
		placer:   placer,
		commands: make(chan command, commandBufferSize),
		ctx:      ctx,
		done:     make(chan struct{}),
	}
}

func (rp *RemotePlayer) Name() string {
	return rp.name
}

func (rp *RemotePlayer) Game() *mb.Game {
	return rp.game
}

func (rp *RemotePlayer) IsHuman() bool {
	return true
}

func (rp *RemotePlayer) Err() error {
	return rp.err
}

func (rp *RemotePlayer) RecordAttackResult(mb.Point, bool, mb.AttackResult) {}

func (rp *RemotePlayer) RecordAttackByOpponent(mb.Point) {}

// Submit queues a client command. It fails once the player stopped
// listening, which happens when its match ends.
func (rp *RemotePlayer) Submit(code uint8, payload []byte) error {
	select {
	case rp.commands <- command{code: code, payload: payload}:
		return nil
	case <-rp.done:
		return cerr.ErrNoRunningMatch(rp.session.Id())
	case <-rp.ctx.Done():
		return rp.ctx.Err()
	}
}

// Stop makes every later Submit fail.
func (rp *RemotePlayer) Stop() {
	close(rp.done)
}

func (rp *RemotePlayer) next() (command, bool) {
	select {
	case cmd := <-rp.commands:
		return cmd, true
	case <-rp.ctx.Done():
		rp.err = fmt.Errorf("%w: %w", cerr.ErrInputClosed, rp.ctx.Err())
		return command{}, false
	}
}

func (rp *RemotePlayer) write(msg any) bool {
	if err := rp.session.WriteJSON(msg); err != nil {
		rp.err = fmt.Errorf("%w: %w", cerr.ErrInputClosed, err)
		return false
	}
	return true
}

func (rp *RemotePlayer) reject(code uint8, err error) bool {
	msg := mc.NewMessage[mc.NoPayload](code)
	msg.AddError(err.Error(), "")
	return rp.write(msg)
}

func (rp *RemotePlayer) PlaceShips(b *mb.Board) bool {
	msg := mc.NewMessage[mc.RespSelectPlacement](mc.CodeSelectPlacement)
	msg.AddPayload(mc.RespSelectPlacement{Ships: rp.game.Ships()})
	if !rp.write(msg) {
		return false
	}

	remaining := rp.game.ShipIds()
	for len(remaining) > 0 {
		cmd, ok := rp.next()
		if !ok {
			return false
		}

		switch cmd.code {
		case mc.CodePlaceShip:
			ok = rp.placeShip(b, cmd.payload, &remaining)
		case mc.CodeAutoPlace:
			ok = rp.autoPlace(b, &remaining)
		default:
			ok = rp.reject(cmd.code, cerr.ErrUnexpectedCode(cmd.code, "placing ships"))
		}
		if !ok {
			return false
		}
	}
	return true
}

func (rp *RemotePlayer) placeShip(b *mb.Board, payload []byte, remaining *[]int) bool {
	var req mc.Message[mc.ReqPlaceShip]
	if err := json.Unmarshal(payload, &req); err != nil {
		return rp.reject(mc.CodePlaceShip, err)
	}
	ps := req.Payload

	idx := slices.Index(*remaining, ps.ShipId)
	if idx == -1 {
		return rp.reject(mc.CodePlaceShip, cerr.ErrShipNotPending(ps.ShipId))
	}

	dir, err := player.ParseDirection(ps.Direction)
	if err != nil {
		return rp.reject(mc.CodePlaceShip, err)
	}

	origin := mb.NewPoint(ps.Row, ps.Col)
	if !b.PlaceShip(origin, ps.ShipId, dir) {
		return rp.reject(mc.CodePlaceShip, cerr.ErrShipCannotBePlaced(ps.ShipId, ps.Row, ps.Col))
	}
	*remaining = slices.Delete(*remaining, idx, idx+1)

	resp := mc.NewMessage[mc.RespPlaceShip](mc.CodePlaceShip)
	resp.AddPayload(mc.RespPlaceShip{
		Placement: mc.NewRespShipPlacement(ps.ShipId, mb.Placement{Origin: origin, Direction: dir}),
		Remaining: len(*remaining),
	})
	return rp.write(resp)
}

func (rp *RemotePlayer) autoPlace(b *mb.Board, remaining *[]int) bool {
	if !rp.placer.Place(b, *remaining) {
		return rp.reject(mc.CodeAutoPlace, cerr.ErrPlacementFailed(rp.name))
	}

	placements := make([]mc.RespShipPlacement, 0, len(*remaining))
	for _, id := range *remaining {
		pl, _ := b.ShipPlacement(id)
		placements = append(placements, mc.NewRespShipPlacement(id, pl))
	}
	*remaining = nil

	resp := mc.NewMessage[mc.RespAutoPlace](mc.CodeAutoPlace)
	resp.AddPayload(mc.RespAutoPlace{Placements: placements})
	return rp.write(resp)
}

// RecommendAttack waits for the client's next attack. Anything else is
// answered with an error and ignored.
func (rp *RemotePlayer) RecommendAttack() mb.Point {
	for {
		cmd, ok := rp.next()
		if !ok {
			return mb.NewPoint(-1, -1)
		}

		if cmd.code != mc.CodeAttack {
			if !rp.reject(cmd.code, cerr.ErrUnexpectedCode(cmd.code, "attacking")) {
				return mb.NewPoint(-1, -1)
			}
			continue
		}

		var req mc.Message[mc.ReqAttack]
		if err := json.Unmarshal(cmd.payload, &req); err != nil {
			if !rp.reject(mc.CodeAttack, err) {
				return mb.NewPoint(-1, -1)
			}
			continue
		}
		return mb.NewPoint(req.Payload.Row, req.Payload.Col)
	}
}
