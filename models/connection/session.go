package connection

import (
	"encoding/json"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	maxWsRetries  uint8         = 2
	backOffFactor uint8         = 2
	writeTimeout  time.Duration = time.Second * 10
)

const (
	MessageTypeBytes uint8 = iota
	MessageTypeJSON
)

type ConnectionHandler interface {
	handleReadFromConnErr(err error, retries uint8) uint8
	writeToConnWithRetry(msg any, msgType uint8) error
	onConnErr(err error) uint8
}

// Session is one websocket client. Reads happen only on the session loop;
// writes may come from the loop and from the match goroutine, so they are
// serialized.
type Session struct {
	id        string
	conn      *websocket.Conn
	writeMu   sync.Mutex
	createdAt time.Time
	retryWait func(retries uint8)
}

func NewSession(id string, conn *websocket.Conn) *Session {
	return &Session{
		id:        id,
		conn:      conn,
		createdAt: time.Now(),
		retryWait: func(retries uint8) {
			time.Sleep(time.Duration(retries*backOffFactor) * time.Second)
		},
	}
}

var _ ConnectionHandler = (*Session)(nil)

func (s *Session) Id() string {
	return s.id
}

func (s *Session) Conn() *websocket.Conn {
	return s.conn
}

func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Session) Close() error {
	return s.conn.Close()
}

func (s *Session) onConnErr(err error) uint8 {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		log.Warn("timeout error", "session", s.id, "err", err)
		return ConnLoopRetry
	}

	if websocket.IsCloseError(err, websocket.CloseTryAgainLater) {
		log.Warn("high server load/traffic error", "session", s.id, "err", err)
		return ConnLoopRetry
	}

	if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
		log.Debug("close error", "session", s.id, "err", err)
		return ConnLoopBreak
	}

	if websocket.IsCloseError(err, websocket.CloseProtocolError, websocket.CloseInternalServerErr, websocket.CloseTLSHandshake, websocket.CloseMandatoryExtension) {
		log.Error("critical error", "session", s.id, "err", err)
		return ConnLoopBreak
	}

	// Binary frames, bad UTF-8 and oversized payloads mean the client is not
	// ours. Breaking keeps the server from chewing on garbage.
	if websocket.IsCloseError(err, websocket.CloseInvalidFramePayloadData, websocket.CloseUnsupportedData, websocket.CloseMessageTooBig, websocket.ClosePolicyViolation, websocket.CloseServiceRestart, websocket.CloseNoStatusReceived) {
		log.Warn("non-critical error", "session", s.id, "err", err)
		return ConnLoopBreak
	}

	log.Debug("unexpected error", "session", s.id, "err", err)
	return ConnLoopBreak
}

// Writes to the connection of that session and retries on
// timeouts with a linear back off.
func (s *Session) writeToConnWithRetry(msg any, msgType uint8) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	var retries uint8
	for {
		_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))

		var err error
		switch msgType {
		case MessageTypeJSON:
			err = s.conn.WriteJSON(msg)

		case MessageTypeBytes:
			respBytes, ok := msg.([]byte)
			if !ok {
				return NewConnErr(ConnInvalidMsgType).AddDesc("msg type expected: []byte got invalid")
			}
			err = s.conn.WriteMessage(websocket.TextMessage, respBytes)

		default:
			return NewConnErr(ConnInvalidMsgType).AddDesc("invalid message type to write with retry")
		}

		if err == nil {
			return nil
		}

		if s.onConnErr(err) != ConnLoopRetry || retries >= maxWsRetries {
			return NewConnErr(ConnLoopBreak).AddDesc("breaking write loop due to: " + err.Error())
		}
		retries++
		log.Warn("writing to ws failed; retrying", "remote", s.conn.RemoteAddr().String(), "retry", retries)
		s.retryWait(retries)
	}
}

// Handles the errors that occurs when reading from ws connection.
// `ConnLoopBreak` results in terminating the session.
func (s *Session) handleReadFromConnErr(err error, retries uint8) uint8 {
	if s.onConnErr(err) != ConnLoopRetry {
		return ConnLoopBreak
	}
	if retries >= maxWsRetries {
		return ConnLoopBreak
	}

	log.Warn("failed to read from ws conn; retrying", "remote", s.conn.RemoteAddr().String(), "retry", retries+1)
	s.retryWait(retries + 1)
	return ConnLoopContinue
}

func (s *Session) WriteJSON(msg any) error {
	return s.writeToConnWithRetry(msg, MessageTypeJSON)
}

// ReadMessage returns the next text or binary frame.
func (s *Session) ReadMessage() ([]byte, error) {
	var retries uint8

	for {
		_, payload, err := s.conn.ReadMessage()
		if err == nil {
			return payload, nil
		}

		if s.handleReadFromConnErr(err, retries) == ConnLoopContinue {
			retries++
			continue
		}
		return nil, NewConnErr(ConnLoopBreak).AddDesc(err.Error())
	}
}

var errSignalAbsent = errors.New("incoming req payload must contain 'code' field")

// FetchCode extracts the signal code of an incoming frame.
func FetchCode(payload []byte) (uint8, error) {
	var signal struct {
		Code *uint8 `json:"code"`
	}
	const randomInvalidCode uint8 = 255

	if err := json.Unmarshal(payload, &signal); err != nil {
		return randomInvalidCode, err
	}
	if signal.Code == nil {
		return randomInvalidCode, errSignalAbsent
	}
	return *signal.Code, nil
}
