package stats_repo

import (
	"math"
	"sync"
	"time"

	"tosipeli/internal/model"
	repoModel "tosipeli/internal/repository/stats_repo/model"
)

const (
	// defaultWindowSize number of recent spins the win rate is computed over
	defaultWindowSize = 500
	// minSpinsToCheck drift is not judged on fewer spins than this
	minSpinsToCheck = 100
	// maxDriftAlerts alerts kept in memory
	maxDriftAlerts = 50
)

// StateRepo in-memory outcome statistics
type StateRepo struct {
	mtx   sync.RWMutex
	state repoModel.SpinState
}

func NewStatsRepository() *StateRepo {
	return NewStatsRepositoryWithWindow(defaultWindowSize)
}

func NewStatsRepositoryWithWindow(size int) *StateRepo {
	if size <= 0 {
		size = defaultWindowSize
	}
	return &StateRepo{
		state: repoModel.SpinState{
			Window:      make([]bool, 0, size),
			WindowSize:  size,
			DriftAlerts: make([]repoModel.DriftAlert, 0),
		},
	}
}

// Record adds one committed outcome
func (r *StateRepo) Record(kind model.OutcomeKind) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	win := kind == model.OutcomeWin

	r.state.TotalSpins++
	if win {
		r.state.TotalWins++
		r.state.WindowWins++
	}

	r.state.Window = append(r.state.Window, win)
	if len(r.state.Window) > r.state.WindowSize {
		if r.state.Window[0] {
			r.state.WindowWins--
		}
		r.state.Window = r.state.Window[1:]
	}
}

// Stats returns a snapshot of the counters
func (r *StateRepo) Stats() model.SpinStats {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	return model.SpinStats{
		TotalSpins:    r.state.TotalSpins,
		TotalWins:     r.state.TotalWins,
		WindowSpins:   len(r.state.Window),
		WindowWinRate: r.windowRate(),
	}
}

// Drifted checks the window win rate against target and remembers an alert when it is off
func (r *StateRepo) Drifted(target, tolerance float64) bool {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if len(r.state.Window) < minSpinsToCheck {
		return false
	}

	rate := r.windowRate()
	if math.Abs(rate-target) <= tolerance {
		return false
	}

	r.state.DriftAlerts = append(r.state.DriftAlerts, repoModel.DriftAlert{
		Timestamp:  time.Now(),
		WindowRate: rate,
		Target:     target,
	})
	if len(r.state.DriftAlerts) > maxDriftAlerts {
		r.state.DriftAlerts = r.state.DriftAlerts[1:]
	}
	return true
}

// DriftAlerts copy of the remembered alerts
func (r *StateRepo) DriftAlerts() []repoModel.DriftAlert {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	out := make([]repoModel.DriftAlert, len(r.state.DriftAlerts))
	copy(out, r.state.DriftAlerts)
	return out
}

func (r *StateRepo) windowRate() float64 {
	if len(r.state.Window) == 0 {
		return 0
	}
	return float64(r.state.WindowWins) / float64(len(r.state.Window))
}
