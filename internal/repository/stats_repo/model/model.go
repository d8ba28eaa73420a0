package model

import "time"

// SpinState aggregated outcome history
type SpinState struct {
	TotalSpins int // all committed spins
	TotalWins  int // spins where one insurer took all three lines

	Window     []bool // recent outcomes, true for a win
	WindowSize int
	WindowWins int

	DriftAlerts []DriftAlert
}

// DriftAlert logged whenever the window win rate leaves the tolerance band
type DriftAlert struct {
	Timestamp  time.Time
	WindowRate float64
	Target     float64
}
