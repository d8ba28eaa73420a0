package spin

import (
	"context"
	"fmt"

	"tosipeli/internal/metrics"
	"tosipeli/internal/model"
	"tosipeli/internal/repository"
	"tosipeli/internal/service"

	"github.com/rs/zerolog"
)

// driftTolerance allowed gap between observed and expected window win rate
const driftTolerance = 0.05

type serv struct {
	sessions             repository.PlaySessionRepository
	prefs                repository.PreferenceRepository
	stats                repository.StatsRepository
	metrics              *metrics.Metrics
	logger               zerolog.Logger
	catalog              model.Catalog
	centerWinProbability float64
	rng                  RNG
	locks                *keyedMutex
}

// NewSpinService creates the play gate. A nil rng uses math/rand/v2.
func NewSpinService(
	sessions repository.PlaySessionRepository,
	prefs repository.PreferenceRepository,
	stats repository.StatsRepository,
	m *metrics.Metrics,
	logger zerolog.Logger,
	catalog model.Catalog,
	centerWinProbability float64,
	rng RNG,
) service.SpinService {
	if rng == nil {
		rng = stdRNG{}
	}
	return &serv{
		sessions:             sessions,
		prefs:                prefs,
		stats:                stats,
		metrics:              m,
		logger:               logger.With().Str("component", "spin").Logger(),
		catalog:              catalog,
		centerWinProbability: centerWinProbability,
		rng:                  rng,
		locks:                newKeyedMutex(),
	}
}

func (s *serv) Status(ctx context.Context, session model.PlaySession, selection model.PreferenceSelection) (*model.PlayStatus, error) {
	if err := selection.Validate(); err != nil {
		return nil, err
	}

	state, err := s.loadState(ctx, session)
	if err != nil {
		return nil, err
	}

	decision := Decide(selection, state)

	return &model.PlayStatus{
		State:     decision,
		PlayCount: state.PlayCount,
		Remaining: remaining(state.PlayCount),
		Unlimited: state.Authenticated,
		Message:   statusMessage(decision, state),
	}, nil
}

// Play runs gate, draw, classify and commit under the session lock.
// The last preferences are saved before the play count moves, so a failed
// commit never consumes a play.
func (s *serv) Play(ctx context.Context, session model.PlaySession, selection model.PreferenceSelection) (*model.PlayResult, error) {
	if err := selection.Validate(); err != nil {
		return nil, err
	}

	unlock := s.locks.lock(session.ID)
	defer unlock()

	state, err := s.loadState(ctx, session)
	if err != nil {
		return nil, err
	}

	decision := Decide(selection, state)
	s.metrics.ObserveDecision(decision)
	if !decision.Permitted() {
		return nil, &model.GateError{State: decision, Message: blockedMessage(decision)}
	}

	picks, err := Draw(s.catalog, s.centerWinProbability, s.rng)
	if err != nil {
		return nil, err
	}
	outcome := Classify(picks)

	if err := s.prefs.Save(ctx, session.DeviceID, selection); err != nil {
		return nil, fmt.Errorf("save last preferences: %w", err)
	}

	count, err := s.sessions.IncrementPlayCount(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("increment play count: %w", err)
	}

	s.recordOutcome(outcome.Kind)

	s.logger.Debug().
		Str("session_id", session.ID).
		Str("kind", string(outcome.Kind)).
		Int("play_count", count).
		Msg("spin committed")

	return &model.PlayResult{
		Outcome:   outcome,
		Hint:      playHint(state.PlayCount, state.Authenticated),
		PlayCount: count,
		Remaining: remaining(count),
		Unlimited: state.Authenticated,
	}, nil
}

// Authenticate lifts the free-play cap; counters stay as they are
func (s *serv) Authenticate(ctx context.Context, session model.PlaySession) error {
	unlock := s.locks.lock(session.ID)
	defer unlock()

	return s.sessions.SetAuthenticated(ctx, session.ID, true)
}

// Logout restores the cap. Plays already spent in this session stay spent.
func (s *serv) Logout(ctx context.Context, session model.PlaySession) error {
	unlock := s.locks.lock(session.ID)
	defer unlock()

	return s.sessions.SetAuthenticated(ctx, session.ID, false)
}

func (s *serv) Catalog() []model.Insurer {
	return s.catalog.All()
}

// loadState joins the volatile session with the durable last preferences, read live
func (s *serv) loadState(ctx context.Context, session model.PlaySession) (model.PlaySessionState, error) {
	state, err := s.sessions.Get(ctx, session.ID)
	if err != nil {
		return model.PlaySessionState{}, fmt.Errorf("load play session: %w", err)
	}

	last, err := s.prefs.Get(ctx, session.DeviceID)
	if err != nil {
		return model.PlaySessionState{}, fmt.Errorf("load last preferences: %w", err)
	}
	state.LastPreferences = last

	return state, nil
}

func (s *serv) recordOutcome(kind model.OutcomeKind) {
	s.metrics.ObserveSpin(kind)
	if s.stats == nil {
		return
	}

	s.stats.Record(kind)
	stats := s.stats.Stats()
	s.metrics.SetWindowWinRate(stats.WindowWinRate)

	expected := ExpectedWinRate(s.centerWinProbability, s.catalog.Len())
	if s.stats.Drifted(expected, driftTolerance) {
		s.logger.Warn().
			Float64("window_win_rate", stats.WindowWinRate).
			Float64("expected", expected).
			Int("window_spins", stats.WindowSpins).
			Msg("win rate drifted from expected")
	}
}

// ExpectedWinRate long-run share of wins: the forced center win plus
// independent draws that happen to agree on all three lines.
func ExpectedWinRate(centerWinProbability float64, catalogSize int) float64 {
	if catalogSize <= 0 {
		return 0
	}
	n := float64(catalogSize)
	return centerWinProbability + (1-centerWinProbability)/(n*n)
}
