package model

import (
	"fmt"
	"slices"
)

// CoverageLine one of the three insurance categories
type CoverageLine string

const (
	LineAuto   CoverageLine = "auto"
	LineHome   CoverageLine = "home"
	LineTravel CoverageLine = "travel"
)

// Option sets per coverage line.
var (
	AutoOptions   = []string{"liikenne", "osakasko", "kasko"}
	HomeOptions   = []string{"perus", "laaja", "laaja-mt"}
	TravelOptions = []string{"short", "normal", "all"}
)

// PreferenceSelection the three coverage choices a player has made.
// An empty string means the line has not been chosen yet.
type PreferenceSelection struct {
	Auto   string `json:"auto"`
	Home   string `json:"home"`
	Travel string `json:"travel"`
}

// Ready reports whether all three lines have a value.
func (p PreferenceSelection) Ready() bool {
	return p.Auto != "" && p.Home != "" && p.Travel != ""
}

// Validate checks that every non-empty value belongs to its option set.
func (p PreferenceSelection) Validate() error {
	checks := []struct {
		line    CoverageLine
		value   string
		options []string
	}{
		{LineAuto, p.Auto, AutoOptions},
		{LineHome, p.Home, HomeOptions},
		{LineTravel, p.Travel, TravelOptions},
	}

	for _, c := range checks {
		if c.value == "" {
			continue
		}
		if !slices.Contains(c.options, c.value) {
			return fmt.Errorf("%w: unknown %s option %q", ErrValidation, c.line, c.value)
		}
	}
	return nil
}
