package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_Totals(t *testing.T) {
	ctx := context.Background()
	p := NewProvider(true)
	t.Cleanup(func() { _ = p.Shutdown(ctx) })

	m, err := NewMetrics(p.Meter())
	require.NoError(t, err)

	m.Kill(ctx, "light", "contact", 10)
	m.Kill(ctx, "heavy", "turret", 40)
	m.Reward(ctx, 100)
	m.RunFinished(ctx, "campaign", "complete", 5000)

	totals, err := p.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, Totals{Kills: 2, Bounty: 150, Runs: 1}, totals)
}

func TestProvider_Disabled(t *testing.T) {
	ctx := context.Background()
	p := NewProvider(false)

	m, err := NewMetrics(p.Meter())
	require.NoError(t, err)
	m.Kill(ctx, "light", "contact", 10)

	totals, err := p.Totals(ctx)
	require.NoError(t, err)
	assert.Zero(t, totals)
	assert.NoError(t, p.Shutdown(ctx))
}

func TestNopMetrics(t *testing.T) {
	m := NopMetrics()
	require.NotNil(t, m)
	m.Kill(context.Background(), "light", "turret", 15)
	m.RunFinished(context.Background(), "survival", "dead", 0)
}
