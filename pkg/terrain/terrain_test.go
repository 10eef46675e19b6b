package terrain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeight_Deterministic(t *testing.T) {
	tr := New(1)
	for _, x := range []float64{0, 1, 200, 1234.5, -50, 9999} {
		assert.Equal(t, tr.Height(x), tr.Height(x), "x=%v", x)
	}
}

func TestHeight_MemoizesIntegerSamples(t *testing.T) {
	tr := New(1)
	tr.Height(10)
	assert.Equal(t, 1, tr.Cached())

	tr.Height(10.5)
	assert.Equal(t, 2, tr.Cached())

	tr.Height(10)
	assert.Equal(t, 2, tr.Cached())
}

func TestHeight_MatchesFormula(t *testing.T) {
	tr := New(3)
	x := 417.0
	want := 600 - 140 - 2*15 + math.Sin(x*0.006)*20 + math.Sin(x*0.02)*5
	assert.InDelta(t, want, tr.Height(x), 1e-9)
}

func TestHeight_Interpolates(t *testing.T) {
	tr := New(1)
	h0, h1 := tr.Height(100), tr.Height(101)
	assert.InDelta(t, (h0+h1)/2, tr.Height(100.5), 1e-9)
}

func TestHeight_Continuous(t *testing.T) {
	tr := New(2)
	prev := tr.Height(0)
	for x := 0.1; x < 3000; x += 0.1 {
		h := tr.Height(x)
		require.Less(t, math.Abs(h-prev), 0.5, "jump at x=%v", x)
		prev = h
	}
}

func TestHeight_Bounded(t *testing.T) {
	for level := 1; level <= 12; level++ {
		tr := New(level)
		base := Baseline(level)
		for x := -5000.0; x < 20000; x += 37 {
			h := tr.Height(x)
			assert.LessOrEqual(t, h, base+25)
			assert.GreaterOrEqual(t, h, base-25)
		}
	}
}

func TestSetLevel_ChangesTerrainAndClearsCache(t *testing.T) {
	tr := New(1)
	before := tr.Height(500)
	require.Equal(t, 1, tr.Cached())

	tr.SetLevel(2)
	assert.Equal(t, 0, tr.Cached())
	assert.Equal(t, 2, tr.Level())
	assert.NotEqual(t, before, tr.Height(500))
	assert.InDelta(t, LevelDrop, before-tr.Height(500), 1e-9)
}

func TestNew_ClampsLevel(t *testing.T) {
	assert.Equal(t, 1, New(0).Level())
	assert.Equal(t, 1, New(-4).Level())
}

func TestFlat(t *testing.T) {
	var g Ground = Flat(460)
	assert.Equal(t, 460.0, g.Height(-10))
	assert.Equal(t, 460.0, g.Height(12345.6))
}
