package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "roadkill.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_SaveAndList(t *testing.T) {
	s := openTemp(t)
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.SaveRun(&RunRecord{
			Mode:       ModeCampaign,
			GameLevel:  i + 1,
			Outcome:    "complete",
			StartedAt:  base.Add(time.Duration(i) * time.Hour),
			FinishedAt: base.Add(time.Duration(i)*time.Hour + time.Minute),
		}))
	}
	require.NoError(t, s.SaveRun(&RunRecord{Mode: ModeSurvival, Score: 90, FinishedAt: base}))

	runs, err := s.RecentRuns(ModeCampaign, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, 3, runs[0].GameLevel)
	assert.Equal(t, 2, runs[1].GameLevel)
	assert.Equal(t, time.Minute, runs[0].Duration())

	all, err := s.RecentRuns("", 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestStore_BestScore(t *testing.T) {
	s := openTemp(t)

	best, err := s.BestScore(ModeSurvival)
	require.NoError(t, err)
	assert.Zero(t, best)

	for _, score := range []int{40, 125, 80} {
		require.NoError(t, s.SaveRun(&RunRecord{Mode: ModeSurvival, Score: score}))
	}
	require.NoError(t, s.SaveRun(&RunRecord{Mode: ModeCampaign, Score: 999}))

	best, err = s.BestScore(ModeSurvival)
	require.NoError(t, err)
	assert.Equal(t, 125, best)
}

func TestStore_Profile(t *testing.T) {
	s := openTemp(t)

	p, found, err := s.LoadProfile("player")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "player", p.Name)
	assert.Equal(t, 1, p.Level)

	p.Money = 250
	p.Level = 3
	p.CurrentCar = "mustang"
	require.NoError(t, s.SaveProfile(p))

	p.Money = 300
	require.NoError(t, s.SaveProfile(p))

	got, found, err := s.LoadProfile("player")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 300, got.Money)
	assert.Equal(t, 3, got.Level)
	assert.Equal(t, "mustang", got.CurrentCar)

	var count int64
	require.NoError(t, s.db.Model(&ProfileRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
