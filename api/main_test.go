package api_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/saeidalz13/battleship-ai/api"
	"github.com/saeidalz13/battleship-ai/internal/match"
	mc "github.com/saeidalz13/battleship-ai/models/connection"
)

var (
	testServer   *api.Server
	testRecorder = &memoryRecorder{}
	testWsUrl    string
	dialer       = websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}
)

type memoryRecorder struct {
	mu      sync.Mutex
	records []match.Record
}

func (mr *memoryRecorder) RecordMatch(_ context.Context, rec match.Record) error {
	mr.mu.Lock()
	defer mr.mu.Unlock()
	mr.records = append(mr.records, rec)
	return nil
}

func (mr *memoryRecorder) Records() []match.Record {
	mr.mu.Lock()
	defer mr.mu.Unlock()
	return append([]match.Record(nil), mr.records...)
}

func TestMain(m *testing.M) {
	server, err := api.NewServer(api.WithRecorder(testRecorder))
	if err != nil {
		panic(err)
	}
	testServer = server

	httpServer := httptest.NewServer(server.Handler())
	testWsUrl = "ws" + strings.TrimPrefix(httpServer.URL, "http") + "/battleship"

	code := m.Run()
	server.SessionManager.CloseAll()
	httpServer.Close()
	os.Exit(code)
}

// dial opens a session and consumes the session id message.
func dial(t *testing.T) *websocket.Conn {
	t.Helper()

	conn, _, err := dialer.Dial(testWsUrl, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })

	msg := expect[mc.RespSessionId](t, conn, mc.CodeSessionID)
	if msg.Payload.SessionID == "" {
		t.Fatal("expected a session id")
	}
	return conn
}

func send(t *testing.T, conn *websocket.Conn, code uint8, payload any) {
	t.Helper()

	if err := conn.WriteJSON(mc.Message[any]{Code: code, Payload: payload}); err != nil {
		t.Fatal(err)
	}
}

// expect reads the next message and fails unless it carries code.
func expect[T any](t *testing.T, conn *websocket.Conn, code uint8) mc.Message[T] {
	t.Helper()

	_ = conn.SetReadDeadline(time.Now().Add(time.Second * 5))
	var raw mc.Message[json.RawMessage]
	if err := conn.ReadJSON(&raw); err != nil {
		t.Fatal(err)
	}
	if raw.Code != code {
		t.Fatalf("expected code: %d\t got: %d (payload: %s, error: %+v)", code, raw.Code, raw.Payload, raw.Error)
	}

	msg := mc.Message[T]{Code: raw.Code, Error: raw.Error}
	if len(raw.Payload) > 0 {
		if err := json.Unmarshal(raw.Payload, &msg.Payload); err != nil {
			t.Fatal(err)
		}
	}
	return msg
}

func expectError(t *testing.T, conn *websocket.Conn, code uint8, contains string) {
	t.Helper()

	msg := expect[mc.NoPayload](t, conn, code)
	if msg.Error == nil {
		t.Fatalf("expected an error for code %d", code)
	}
	if !strings.Contains(msg.Error.ErrorDetails+msg.Error.Message, contains) {
		t.Fatalf("expected error containing %q\t got: %+v", contains, msg.Error)
	}
}
