package api

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/saeidalz13/battleship-ai/internal/ai"
	cerr "github.com/saeidalz13/battleship-ai/internal/error"
	"github.com/saeidalz13/battleship-ai/internal/match"
	mc "github.com/saeidalz13/battleship-ai/models/connection"
	"github.com/saeidalz13/battleship-ai/models/player"
)

var upgrader = websocket.Upgrader{
	// good average time since this is not a high-latency operation such as video streaming
	HandshakeTimeout: time.Second * 5,

	// probably more that enough but this is a good average size
	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type RequestProcessor struct {
	sessionManager mc.SessionManager
	matchManager   *MatchManager
	recorder       match.Recorder
	placement      ai.PlacementBudget
	playerOpts     []player.Option
}

func NewRequestProcessor(sessionManager mc.SessionManager, matchManager *MatchManager, recorder match.Recorder) *RequestProcessor {
	return &RequestProcessor{
		sessionManager: sessionManager,
		matchManager:   matchManager,
		recorder:       recorder,
		placement:      ai.DefaultPlacementBudget(),
	}
}

func (rp *RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// use Upgrade method to make a websocket connection
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("could not upgrade connection", "err", err)
		return
	}

	session := rp.sessionManager.GenerateNewSession(conn)
	log.Info("a new connection established", "remote", conn.RemoteAddr().String(), "session", session.Id())
	rp.processSessionRequests(session)
}

func (rp *RequestProcessor) writeError(session *mc.Session, code uint8, err error) error {
	msg := mc.NewMessage[mc.NoPayload](code)
	msg.AddError(err.Error(), "")
	return session.WriteJSON(msg)
}

func (rp *RequestProcessor) processSessionRequests(session *mc.Session) {
	var (
		current   *runningMatch
		sessionId = session.Id()
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		if current != nil {
			<-current.done
		}
		_ = session.Close()
		rp.sessionManager.TerminateSession(sessionId)
		log.Debug("session closed", "session", sessionId)
	}()

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
	resp.AddPayload(mc.RespSessionId{SessionID: sessionId})
	if err := session.WriteJSON(resp); err != nil {
		return
	}

sessionLoop:
	for {
		payload, err := session.ReadMessage()
		if err != nil {
			// This error happens after retries. If it's not nil,
			// then something was wrong with the session connection
			// and couldn't be resolved
			break sessionLoop
		}

		code, err := mc.FetchCode(payload)
		if err != nil {
			if err = rp.writeError(session, mc.CodeSignalAbsent, err); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		switch code {
		case mc.CodeCreateMatch:
			if current != nil && !current.finished() {
				if err := rp.writeError(session, code, cerr.ErrMatchAlreadyRunning(sessionId)); err != nil {
					break sessionLoop
				}
				continue sessionLoop
			}

			respMsg, rm := NewRequest(payload).HandleCreateMatch(ctx, rp, session)
			if err := session.WriteJSON(respMsg); err != nil {
				break sessionLoop
			}
			if rm == nil {
				continue sessionLoop
			}
			current = rm
			go rp.playMatch(ctx, rm)

		case mc.CodePlaceShip, mc.CodeAutoPlace, mc.CodeAttack:
			err := cerr.ErrNoRunningMatch(sessionId)
			if current != nil && !current.finished() {
				err = current.remote.Submit(code, payload)
			}
			if err == nil {
				continue sessionLoop
			}
			if err := rp.writeError(session, code, err); err != nil {
				break sessionLoop
			}

		default:
			respInvalidSignal := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			respInvalidSignal.AddError("", "invalid code in the incoming payload")
			if err := session.WriteJSON(respInvalidSignal); err != nil {
				break sessionLoop
			}
		}
	}
}

// playMatch runs on its own goroutine so the session loop keeps reading
// the commands the remote player waits for.
func (rp *RequestProcessor) playMatch(ctx context.Context, rm *runningMatch) {
	id := rm.m.Id()
	defer func() {
		rm.remote.Stop()
		close(rm.done)
		rp.matchManager.TerminateMatch(id)
	}()

	res, err := rm.m.Play(ctx)
	if err != nil {
		log.Info("match ended early", "match", id, "err", err)
		return
	}
	if rp.recorder == nil {
		return
	}

	winner := rm.opponent
	if res.Winner == rm.remote {
		winner = player.KindHuman
	}

	g := rm.remote.Game()
	err = rp.recorder.RecordMatch(context.WithoutCancel(ctx), match.Record{
		Id:      id,
		PlayerA: player.KindHuman,
		PlayerB: rm.opponent,
		Winner:  winner,
		Turns:   res.Turns,
		Rows:    g.Rows(),
		Cols:    g.Cols(),
	})
	if err != nil {
		log.Error("could not record match", "match", id, "err", err)
	}
}
