package terrain

import "math"

const (
	// ScreenHeight is the logical height the heightfield baseline is measured from.
	ScreenHeight = 600.0
	// BaseOffset lifts the ground from the bottom of the screen at level 1.
	BaseOffset = 140.0
	// LevelDrop is how much the baseline sinks per level.
	LevelDrop = 15.0
)

// Ground is anything that can report a ground elevation at a world x.
type Ground interface {
	Height(x float64) float64
}

// Terrain generates rolling hills for the active level and memoizes samples per integer world x.
type Terrain struct {
	level int
	cache map[int]float64
}

// New creates a terrain for the given level
func New(level int) *Terrain {
	if level < 1 {
		level = 1
	}
	return &Terrain{
		level: level,
		cache: make(map[int]float64),
	}
}

// Level returns the level the heightfield is generated for
func (t *Terrain) Level() int {
	return t.level
}

// SetLevel switches the difficulty level and drops every cached sample.
func (t *Terrain) SetLevel(level int) {
	if level < 1 {
		level = 1
	}
	t.level = level
	t.ClearCache()
}

// ClearCache drops the memoized samples
func (t *Terrain) ClearCache() {
	t.cache = make(map[int]float64)
}

// Cached reports how many integer samples are memoized
func (t *Terrain) Cached() int {
	return len(t.cache)
}

// Height returns the ground elevation at x. Fractional positions interpolate
// between the two neighbouring integer samples.
func (t *Terrain) Height(x float64) float64 {
	x0 := math.Floor(x)
	h0 := t.sample(int(x0))
	frac := x - x0
	if frac == 0 {
		return h0
	}
	h1 := t.sample(int(x0) + 1)
	return h0 + (h1-h0)*frac
}

func (t *Terrain) sample(x int) float64 {
	if h, ok := t.cache[x]; ok {
		return h
	}
	h := Baseline(t.level) + math.Sin(float64(x)*0.006)*20 + math.Sin(float64(x)*0.02)*5
	t.cache[x] = h
	return h
}

// Baseline is the mean ground elevation for a level. Screen y grows downward, so
// the ground climbs the screen as levels increase.
func Baseline(level int) float64 {
	return ScreenHeight - BaseOffset - float64(level-1)*LevelDrop
}

// Flat is level ground at a fixed elevation
type Flat float64

// Height returns the constant elevation
func (f Flat) Height(float64) float64 {
	return float64(f)
}
