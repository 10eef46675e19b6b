package level

import (
	"fmt"
	"math/rand"
)

// Config holds the difficulty scalars for a single level
type Config struct {
	Level            int     `json:"level"`
	DistanceRequired float64 `json:"distance_required"`
	ZombieCount      int     `json:"zombie_count"`
	HealthMultiplier float64 `json:"zombie_health_multiplier"`
	DamageMultiplier float64 `json:"zombie_damage_multiplier"`
	MoneyReward      int     `json:"money_reward"`
	TerrainTier      int     `json:"terrain_difficulty"`
	Description      string  `json:"description"`
}

const (
	// LastAuthored is the highest level with hand-tuned values
	LastAuthored = 10
	// MinSpawnX keeps zombies away from the start line
	MinSpawnX = 500.0
	// MaxZombieCount caps extrapolated levels
	MaxZombieCount = 50
	// MaxDamageMultiplier caps extrapolated levels
	MaxDamageMultiplier = 3.0
)

var authored = [LastAuthored]Config{
	{1, 5000, 6, 1.0, 1.0, 100, 1, "Tutorial Zone - Learn the basics"},
	{2, 7000, 8, 1.2, 1.1, 200, 2, "The Suburbs - More zombies ahead"},
	{3, 8000, 10, 1.4, 1.2, 300, 2, "City Outskirts - Increasing threat"},
	{4, 9000, 12, 1.6, 1.3, 400, 3, "Downtown - Heavy resistance"},
	{5, 10000, 15, 1.8, 1.4, 500, 3, "Industrial Zone - Tough zombies"},
	{6, 11000, 18, 2.0, 1.5, 600, 4, "The Quarantine - No mercy"},
	{7, 12000, 20, 2.2, 1.6, 750, 4, "Military Base - Elite zombies"},
	{8, 13000, 22, 2.5, 1.7, 900, 5, "Ground Zero - Maximum threat"},
	{9, 14000, 25, 2.8, 1.8, 1100, 5, "The Horde - Survive the swarm"},
	{10, 15000, 30, 3.0, 2.0, 1500, 5, "Final Stand - Ultimate challenge"},
}

// Get returns the configuration for a level. Levels past the authored table
// extrapolate from level 10; levels below 1 are treated as level 1.
func Get(n int) Config {
	if n < 1 {
		n = 1
	}
	if n <= LastAuthored {
		return authored[n-1]
	}

	k := n - LastAuthored
	return Config{
		Level:            n,
		DistanceRequired: 15000 + float64(k)*500,
		ZombieCount:      min(MaxZombieCount, 30+k*2),
		HealthMultiplier: 3.0 + float64(k)*0.15,
		DamageMultiplier: min(MaxDamageMultiplier, 2.0+float64(k)*0.05),
		MoneyReward:      1500 + k*200,
		TerrainTier:      5,
		Description:      fmt.Sprintf("Endless Mode - Level %d", n),
	}
}

// SpawnPositions places one zombie per segment of the level's distance with
// bounded random jitter. rng may be nil to use the shared source.
func SpawnPositions(n int, rng *rand.Rand) []float64 {
	cfg := Get(n)
	segment := cfg.DistanceRequired / float64(cfg.ZombieCount+1)
	spread := int(segment / 3)

	positions := make([]float64, 0, cfg.ZombieCount)
	for i := 0; i < cfg.ZombieCount; i++ {
		jitter := 0
		if spread > 0 {
			jitter = intn(rng, 2*spread+1) - spread
		}
		pos := segment*float64(i+1) + float64(jitter)
		positions = append(positions, max(MinSpawnX, pos))
	}
	return positions
}

func intn(rng *rand.Rand, n int) int {
	if rng == nil {
		return rand.Intn(n)
	}
	return rng.Intn(n)
}

var darkness = map[int]uint8{
	1: 0,   // day
	2: 0,
	3: 30,  // dusk
	4: 50,  // evening
	5: 80,  // night
	6: 100,
	7: 120,
	8: 140, // almost black
}

// Darkness returns the night overlay alpha for a level
func Darkness(n int) uint8 {
	if n >= 8 {
		return 140
	}
	return darkness[n]
}
