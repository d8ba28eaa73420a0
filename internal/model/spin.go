package model

// OutcomeKind verdict of a spin
type OutcomeKind string

const (
	// OutcomeWin all three lines went to the same insurer
	OutcomeWin OutcomeKind = "win"
	// OutcomeTip lines went to different insurers
	OutcomeTip OutcomeKind = "tip"
)

// SpinOutcome picks are ordered auto, home, travel.
type SpinOutcome struct {
	Picks   [3]Insurer
	Kind    OutcomeKind
	Message string
	Advice  string
	// Lines per-line winner announcements, same order as Picks
	Lines [3]string
}

// GateState decision of the play gate
type GateState string

const (
	GateNotReady          GateState = "blocked_not_ready"
	GateExhaustedNoChange GateState = "blocked_exhausted_no_change"
	GateExhausted         GateState = "blocked_exhausted"
	GatePermitted         GateState = "permitted"
)

func (s GateState) Permitted() bool {
	return s == GatePermitted
}

// PlaySession identifies the two client scopes a play is attributed to:
// ID is the volatile browser session, DeviceID survives reloads.
type PlaySession struct {
	ID       string
	DeviceID string
}

// PlaySessionState is owned by the play gate; LastPreferences comes from the durable store
type PlaySessionState struct {
	PlayCount       int
	LastPreferences *PreferenceSelection
	Authenticated   bool
}

// PlayStatus decision plus counters, shown before a spin.
type PlayStatus struct {
	State     GateState
	PlayCount int
	Remaining int
	Unlimited bool
	Message   string
}

// PlayResult is returned after a committed spin.
type PlayResult struct {
	Outcome   SpinOutcome
	Hint      string
	PlayCount int
	Remaining int
	Unlimited bool
}

// SpinStats aggregated outcome counters.
type SpinStats struct {
	TotalSpins    int
	TotalWins     int
	WindowSpins   int
	WindowWinRate float64
}
