package api

import (
	"sync"

	"github.com/google/uuid"
	cerr "github.com/saeidalz13/battleship-ai/internal/error"
	"github.com/saeidalz13/battleship-ai/internal/match"
)

// MatchManager tracks the matches currently being played on this server.
type MatchManager struct {
	matches map[uuid.UUID]*match.Match
	mu      sync.RWMutex
}

func NewMatchManager() *MatchManager {
	return &MatchManager{
		matches: make(map[uuid.UUID]*match.Match),
	}
}

func (mm *MatchManager) AddMatch(m *match.Match) {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	mm.matches[m.Id()] = m
}

func (mm *MatchManager) FindMatch(matchUuid uuid.UUID) (*match.Match, error) {
	mm.mu.RLock()
	defer mm.mu.RUnlock()

	m, prs := mm.matches[matchUuid]
	if !prs {
		return nil, cerr.ErrMatchNotExists(matchUuid.String())
	}

	if m == nil {
		return nil, cerr.ErrMatchIsNil(matchUuid.String())
	}

	return m, nil
}

func (mm *MatchManager) TerminateMatch(matchUuid uuid.UUID) {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	delete(mm.matches, matchUuid)
}

func (mm *MatchManager) Count() int {
	mm.mu.RLock()
	defer mm.mu.RUnlock()
	return len(mm.matches)
}
