package spin

import (
	"math/rand/v2"
	"testing"

	"tosipeli/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRNG replays fixed values
type scriptedRNG struct {
	floats []float64
	ints   []int
}

func (r *scriptedRNG) Float64() float64 {
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRNG) IntN(n int) int {
	v := r.ints[0] % n
	r.ints = r.ints[1:]
	return v
}

func TestDraw_CenterWin(t *testing.T) {
	catalog := model.DefaultCatalog()
	rng := &scriptedRNG{floats: []float64{0.05}, ints: []int{3}}

	picks, err := Draw(catalog, 0.1, rng)
	require.NoError(t, err)

	want := catalog.At(3)
	assert.Equal(t, [3]model.Insurer{want, want, want}, picks)
	assert.Empty(t, rng.ints)
}

func TestDraw_IndependentLines(t *testing.T) {
	catalog := model.DefaultCatalog()
	rng := &scriptedRNG{floats: []float64{0.5}, ints: []int{0, 4, 0}}

	picks, err := Draw(catalog, 0.1, rng)
	require.NoError(t, err)
	assert.Equal(t, [3]model.Insurer{catalog.At(0), catalog.At(4), catalog.At(0)}, picks)
}

func TestDraw_EmptyCatalog(t *testing.T) {
	_, err := Draw(model.Catalog{}, 0.1, stdRNG{})
	assert.ErrorIs(t, err, model.ErrEmptyCatalog)
}

func TestDraw_ProbabilityBounds(t *testing.T) {
	catalog := model.DefaultCatalog()
	rng := rand.New(rand.NewPCG(7, 11))

	for range 200 {
		picks, err := Draw(catalog, 1, rng)
		require.NoError(t, err)
		assert.Equal(t, picks[0], picks[1])
		assert.Equal(t, picks[1], picks[2])
	}
}

func TestDraw_Distribution(t *testing.T) {
	const draws = 100_000

	catalog := model.DefaultCatalog()
	rng := rand.New(rand.NewPCG(42, 1024))

	wins := 0
	autoCounts := make(map[string]int)
	for range draws {
		picks, err := Draw(catalog, DefaultCenterWinProbability, rng)
		require.NoError(t, err)

		for _, p := range picks {
			_, ok := catalog.ByID(p.ID)
			require.True(t, ok, "pick %q outside catalog", p.ID)
		}
		if picks[0].ID == picks[1].ID && picks[1].ID == picks[2].ID {
			wins++
		}
		autoCounts[picks[0].ID]++
	}

	expected := ExpectedWinRate(DefaultCenterWinProbability, catalog.Len())
	assert.InDelta(t, 0.125, expected, 1e-9)
	assert.InDelta(t, expected, float64(wins)/draws, 0.01)

	for _, ins := range catalog.All() {
		assert.InDelta(t, 1.0/6, float64(autoCounts[ins.ID])/draws, 0.01, ins.ID)
	}
}

func TestExpectedWinRate(t *testing.T) {
	assert.Equal(t, 0.0, ExpectedWinRate(0.1, 0))
	assert.InDelta(t, 1.0, ExpectedWinRate(1, 6), 1e-9)
	assert.InDelta(t, 1.0/36, ExpectedWinRate(0, 6), 1e-9)
}
