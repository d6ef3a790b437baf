package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/saeidalz13/battleship-ai/internal/ai"
	"github.com/saeidalz13/battleship-ai/internal/config"
	cerr "github.com/saeidalz13/battleship-ai/internal/error"
	"github.com/saeidalz13/battleship-ai/internal/match"
	mc "github.com/saeidalz13/battleship-ai/models/connection"
	"github.com/saeidalz13/battleship-ai/models/player"
)

const (
	RouteBattleship = "GET /battleship"

	defaultPort     = 8000
	shutdownTimeout = time.Second * 10
)

type Server struct {
	port           int
	stage          string
	recorder       match.Recorder
	placement      ai.PlacementBudget
	playerOpts     []player.Option
	SessionManager *mc.BattleshipSessionManager
	MatchManager   *MatchManager
}

type Option func(*Server) error

func NewServer(optFuncs ...Option) (*Server, error) {
	server := Server{
		port:      defaultPort,
		stage:     config.StageDev,
		placement: ai.DefaultPlacementBudget(),
	}
	for _, opt := range optFuncs {
		if err := opt(&server); err != nil {
			return nil, err
		}
	}

	server.SessionManager = mc.NewBattleshipSessionManager()
	server.MatchManager = NewMatchManager()
	return &server, nil
}

func WithPort(port int) Option {
	return func(s *Server) error {
		if port < 1 || port > 65535 {
			return fmt.Errorf("invalid port: %d", port)
		}
		s.port = port
		return nil
	}
}

func WithStage(stage string) Option {
	return func(s *Server) error {
		if stage != config.StageProd && stage != config.StageDev {
			return cerr.ErrInvalidStage(stage)
		}
		s.stage = stage
		return nil
	}
}

// WithRecorder stores every finished match.
func WithRecorder(rec match.Recorder) Option {
	return func(s *Server) error {
		s.recorder = rec
		return nil
	}
}

// WithPlacementBudget limits the search used when a client asks the
// server to place its ships.
func WithPlacementBudget(budget ai.PlacementBudget) Option {
	return func(s *Server) error {
		s.placement = budget
		return nil
	}
}

// WithPlayerOptions is passed to every computer opponent.
func WithPlayerOptions(opts ...player.Option) Option {
	return func(s *Server) error {
		s.playerOpts = append(s.playerOpts, opts...)
		return nil
	}
}

func (s *Server) Port() int {
	return s.port
}

func (s *Server) Handler() http.Handler {
	rp := NewRequestProcessor(s.SessionManager, s.MatchManager, s.recorder)
	rp.placement = s.placement
	rp.playerOpts = s.playerOpts

	mux := http.NewServeMux()
	mux.Handle(RouteBattleship, rp)
	return mux
}

// ListenAndServe serves until ctx is done, then shuts the server down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	go s.SessionManager.CleanupPeriodically(ctx)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: time.Second * 5,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "port", s.port, "stage", s.stage)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Hijacked websocket conns are not tracked by the http server
	s.SessionManager.CloseAll()
	if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
