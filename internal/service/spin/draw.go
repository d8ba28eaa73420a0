package spin

import (
	"math/rand/v2"

	"tosipeli/internal/model"
)

// DefaultCenterWinProbability chance that the draw forces all three lines to one insurer
const DefaultCenterWinProbability = 0.10

// RNG source of randomness for the draw. *rand.Rand satisfies it.
type RNG interface {
	IntN(n int) int
	Float64() float64
}

// stdRNG uses the auto-seeded top-level generator of math/rand/v2
type stdRNG struct{}

func (stdRNG) IntN(n int) int   { return rand.IntN(n) }
func (stdRNG) Float64() float64 { return rand.Float64() }

// Draw picks the auto, home and travel winners. With probability centerWinProbability
// one insurer takes all three lines; otherwise every line is drawn independently.
func Draw(catalog model.Catalog, centerWinProbability float64, rng RNG) ([3]model.Insurer, error) {
	var picks [3]model.Insurer

	n := catalog.Len()
	if n == 0 {
		return picks, model.ErrEmptyCatalog
	}

	if rng.Float64() < centerWinProbability {
		winner := catalog.At(rng.IntN(n))
		return [3]model.Insurer{winner, winner, winner}, nil
	}

	for i := range picks {
		picks[i] = catalog.At(rng.IntN(n))
	}
	return picks, nil
}
