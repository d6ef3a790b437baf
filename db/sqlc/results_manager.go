package sqlc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/saeidalz13/battleship-ai/internal/match"
	"github.com/sqlc-dev/pqtype"
)

// ResultsManager stores finished matches and the per-server match
// counter. It is the match.Recorder of both the server and batch runs.
type ResultsManager struct {
	db       *sql.DB
	queries  *Queries
	serverIp pqtype.Inet
}

func NewResultsManager(db *sql.DB, serverIp pqtype.Inet) *ResultsManager {
	return &ResultsManager{
		db:       db,
		queries:  New(db),
		serverIp: serverIp,
	}
}

var _ match.Recorder = (*ResultsManager)(nil)

// RecordMatch inserts the result and bumps the server counter in one
// transaction.
func (rm *ResultsManager) RecordMatch(ctx context.Context, rec match.Record) error {
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()

	tx, err := rm.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	q := rm.queries.WithTx(tx)

	err = q.CreateMatchResult(ctx, CreateMatchResultParams{
		ID:       rec.Id,
		PlayerA:  rec.PlayerA,
		PlayerB:  rec.PlayerB,
		Winner:   rec.Winner,
		Turns:    int32(rec.Turns),
		Rows:     int32(rec.Rows),
		Cols:     int32(rec.Cols),
		ServerIp: rm.serverIp,
	})
	if err == nil {
		err = q.IncrementMatchesPlayed(ctx, rm.serverIp)
	}
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w; rollback: %w", err, rbErr)
		}
		return err
	}
	return tx.Commit()
}

// MatchesPlayed returns 0 for a server that has not finished a match yet.
func (rm *ResultsManager) MatchesPlayed(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()

	n, err := rm.queries.GetMatchesPlayed(ctx, rm.serverIp)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return n, err
}

func (rm *ResultsManager) WinsByStrategy(ctx context.Context, strategy string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()
	return rm.queries.CountWinsByStrategy(ctx, strategy)
}

func (rm *ResultsManager) RecentMatches(ctx context.Context, limit int) ([]MatchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()
	return rm.queries.ListRecentMatchResults(ctx, int32(limit))
}
