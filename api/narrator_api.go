package api

import (
	"github.com/saeidalz13/battleship-ai/internal/match"
	mb "github.com/saeidalz13/battleship-ai/models/battleship"
	mc "github.com/saeidalz13/battleship-ai/models/connection"
	"github.com/saeidalz13/battleship-ai/models/player"
)

// wsNarrator reports a match to the websocket client playing it.
type wsNarrator struct {
	session *mc.Session
	client  player.Player
}

var _ match.Narrator = (*wsNarrator)(nil)

func newWsNarrator(session *mc.Session, client player.Player) *wsNarrator {
	return &wsNarrator{session: session, client: client}
}

func (wn *wsNarrator) Narrate(e match.Event) error {
	byClient := e.Attacker == wn.client

	switch e.Kind {
	case match.EventTurn:
		if !byClient {
			return nil
		}
		msg := mc.NewMessage[mc.RespYourTurn](mc.CodeYourTurn)
		msg.AddPayload(mc.RespYourTurn{Turn: e.Turn})
		return wn.session.WriteJSON(msg)

	case match.EventAttack, match.EventWasted:
		resp := mc.RespAttackResult{
			Turn:      e.Turn,
			Row:       e.Point.Row,
			Col:       e.Point.Col,
			ByYou:     byClient,
			Valid:     e.Kind == match.EventAttack,
			Hit:       e.Result.Hit,
			Destroyed: e.Result.Destroyed,
		}
		if e.Result.Destroyed {
			spec, _ := e.Board.Game().Ship(e.Result.ShipId)
			resp.ShipName = spec.Name
		}
		msg := mc.NewMessage[mc.RespAttackResult](mc.CodeAttackResult)
		msg.AddPayload(resp)
		return wn.session.WriteJSON(msg)

	case match.EventWin:
		resp := mc.RespEndMatch{Won: byClient, Turns: e.Turn}
		if !byClient && e.WinnerBoard != nil {
			resp.OpponentShips = fleetPlacements(e.WinnerBoard)
		}
		msg := mc.NewMessage[mc.RespEndMatch](mc.CodeEndMatch)
		msg.AddPayload(resp)
		return wn.session.WriteJSON(msg)
	}
	return nil
}

func fleetPlacements(b *mb.Board) []mc.RespShipPlacement {
	ids := b.Game().ShipIds()
	placements := make([]mc.RespShipPlacement, 0, len(ids))
	for _, id := range ids {
		if pl, ok := b.ShipPlacement(id); ok {
			placements = append(placements, mc.NewRespShipPlacement(id, pl))
		}
	}
	return placements
}
