package connection

import (
	"context"
	"encoding/base64"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	cerr "github.com/saeidalz13/battleship-ai/internal/error"
)

const (
	defaultCleanupInterval = time.Minute * 20
	defaultMaxSessionLife  = time.Minute * 30
)

type SessionManager interface {
	GenerateNewSession(conn *websocket.Conn) *Session
	FindSession(sessionId string) (*Session, error)
	TerminateSession(sessionId string)
	CleanupPeriodically(ctx context.Context)
	Count() int
}

type BattleshipSessionManager struct {
	cleanupInterval time.Duration
	maxSessionLife  time.Duration
	sessions        map[string]*Session
	mu              sync.RWMutex
}

type SessionManagerOption func(*BattleshipSessionManager)

// WithSessionLifetime sets how often stale sessions are looked for and how
// old a session may get before it is closed.
func WithSessionLifetime(cleanupInterval, maxLife time.Duration) SessionManagerOption {
	return func(bsm *BattleshipSessionManager) {
		bsm.cleanupInterval = cleanupInterval
		bsm.maxSessionLife = maxLife
	}
}

func NewBattleshipSessionManager(opts ...SessionManagerOption) *BattleshipSessionManager {
	initMapSize := 10

	bsm := &BattleshipSessionManager{
		sessions:        make(map[string]*Session, initMapSize),
		cleanupInterval: defaultCleanupInterval,
		maxSessionLife:  defaultMaxSessionLife,
	}
	for _, opt := range opts {
		opt(bsm)
	}
	return bsm
}

var _ SessionManager = (*BattleshipSessionManager)(nil)

func (bsm *BattleshipSessionManager) GenerateNewSession(conn *websocket.Conn) *Session {
	sessionId := base64.RawURLEncoding.EncodeToString([]byte(uuid.New().String()))
	session := NewSession(sessionId, conn)

	bsm.mu.Lock()
	bsm.sessions[sessionId] = session
	bsm.mu.Unlock()

	return session
}

func (bsm *BattleshipSessionManager) FindSession(sessionId string) (*Session, error) {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()

	session, prs := bsm.sessions[sessionId]
	if !prs {
		return nil, cerr.ErrSessionNotFound(sessionId)
	}

	if session == nil {
		return nil, cerr.ErrSessionIsNil(sessionId)
	}

	return session, nil
}

func (bsm *BattleshipSessionManager) TerminateSession(sessionId string) {
	bsm.mu.Lock()
	delete(bsm.sessions, sessionId)
	bsm.mu.Unlock()
}

func (bsm *BattleshipSessionManager) Count() int {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()
	return len(bsm.sessions)
}

// To ensure that there is no dangling connections, the session
// manager closes the connections that outlived maxSessionLife.
// Closing the conn ends its session loop, which removes the session.
func (bsm *BattleshipSessionManager) CleanupPeriodically(ctx context.Context) {
	ticker := time.NewTicker(bsm.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		bsm.mu.Lock()
		for id, session := range bsm.sessions {
			if time.Since(session.createdAt) <= bsm.maxSessionLife {
				continue
			}
			if session.conn != nil {
				_ = session.conn.Close()
			}
			delete(bsm.sessions, id)
			log.Info("removed stale session", "session", id)
		}
		bsm.mu.Unlock()
	}
}

// CloseAll closes every open connection. Their session loops then remove
// the sessions themselves.
func (bsm *BattleshipSessionManager) CloseAll() {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()

	for _, session := range bsm.sessions {
		if session.conn != nil {
			_ = session.conn.Close()
		}
	}
}
