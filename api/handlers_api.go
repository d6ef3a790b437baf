package api

import (
	"context"
	"encoding/json"
	"slices"

	"github.com/saeidalz13/battleship-ai/internal/ai"
	cerr "github.com/saeidalz13/battleship-ai/internal/error"
	"github.com/saeidalz13/battleship-ai/internal/match"
	mb "github.com/saeidalz13/battleship-ai/models/battleship"
	mc "github.com/saeidalz13/battleship-ai/models/connection"
	"github.com/saeidalz13/battleship-ai/models/player"
)

const remotePlayerName = "player"

// Every incoming valid request has this structure. The payload
// is decoded by the handler of its code.
type Request struct {
	payload []byte
}

func NewRequest(payload []byte) Request {
	return Request{payload: payload}
}

// runningMatch is the match a session is currently playing.
type runningMatch struct {
	m        *match.Match
	remote   *RemotePlayer
	opponent string
	done     chan struct{}
}

func (rm *runningMatch) finished() bool {
	select {
	case <-rm.done:
		return true
	default:
		return false
	}
}

// HandleCreateMatch builds a match of the session's client against a
// computer strategy. The match is registered but not started.
func (r Request) HandleCreateMatch(ctx context.Context, rp *RequestProcessor, session *mc.Session) (mc.Message[mc.RespCreateMatch], *runningMatch) {
	resp := mc.NewMessage[mc.RespCreateMatch](mc.CodeCreateMatch)

	var req mc.Message[mc.ReqCreateMatch]
	if err := json.Unmarshal(r.payload, &req); err != nil {
		resp.AddError(err.Error(), "invalid create match payload")
		return resp, nil
	}

	difficulty := req.Payload.GameDifficulty
	if !mb.IsDifficultyValid(difficulty) {
		resp.AddError(cerr.ErrInvalidDifficulty(difficulty).Error(), "")
		return resp, nil
	}

	opponent := req.Payload.Opponent
	if opponent == "" {
		opponent = player.KindGood
	}
	if opponent == player.KindHuman || !slices.Contains(player.Kinds, opponent) {
		resp.AddError(cerr.ErrOpponentNotComputer(opponent).Error(), "")
		return resp, nil
	}

	g := mb.NewGameForDifficulty(difficulty)
	opp, err := player.New(opponent, opponent, g, rp.playerOpts...)
	if err != nil {
		resp.AddError(err.Error(), "")
		return resp, nil
	}

	placer := ai.NewPlacementSearch(g.Rows(), g.Cols(), rp.placement, nil)
	remote := NewRemotePlayer(ctx, remotePlayerName, g, session, placer)

	m, err := match.New(remote, opp, mb.NewBoard(g, nil), mb.NewBoard(g, nil), match.WithNarrator(newWsNarrator(session, remote)))
	if err != nil {
		resp.AddError(err.Error(), "")
		return resp, nil
	}
	rp.matchManager.AddMatch(m)

	resp.AddPayload(mc.RespCreateMatch{
		MatchUuid: m.Id().String(),
		Opponent:  opponent,
		Rows:      g.Rows(),
		Cols:      g.Cols(),
		Ships:     g.Ships(),
	})
	return resp, &runningMatch{m: m, remote: remote, opponent: opponent, done: make(chan struct{})}
}
