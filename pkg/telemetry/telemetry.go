package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

const instrumentationName = "github.com/golangdaddy/roadkill/pkg/telemetry"

const (
	metricKills    = "roadkill.zombies.killed"
	metricBounty   = "roadkill.bounty.earned"
	metricRuns     = "roadkill.runs.finished"
	metricDistance = "roadkill.run.distance"
)

// Provider owns the meter provider and, when enabled, an in-process reader
// the game can query for session totals.
type Provider struct {
	reader   *sdkmetric.ManualReader
	provider metric.MeterProvider
	sdk      *sdkmetric.MeterProvider
}

// NewProvider creates a provider. A disabled provider records nothing.
func NewProvider(enabled bool) *Provider {
	if !enabled {
		return &Provider{provider: noop.NewMeterProvider()}
	}
	reader := sdkmetric.NewManualReader()
	sdk := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	return &Provider{reader: reader, provider: sdk, sdk: sdk}
}

// Meter returns the game's meter
func (p *Provider) Meter() metric.Meter {
	return p.provider.Meter(instrumentationName)
}

// Install registers the provider as the global meter provider
func (p *Provider) Install() {
	otel.SetMeterProvider(p.provider)
}

// Shutdown flushes and stops the provider
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.sdk == nil {
		return nil
	}
	return p.sdk.Shutdown(ctx)
}

// Totals are cumulative session counters
type Totals struct {
	Kills  int64
	Bounty int64
	Runs   int64
}

// Totals collects the current counter sums. A disabled provider returns zeros.
func (p *Provider) Totals(ctx context.Context) (Totals, error) {
	var totals Totals
	if p.reader == nil {
		return totals, nil
	}

	var rm metricdata.ResourceMetrics
	if err := p.reader.Collect(ctx, &rm); err != nil {
		return totals, fmt.Errorf("collecting metrics: %w", err)
	}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			var v int64
			for _, dp := range sum.DataPoints {
				v += dp.Value
			}
			switch m.Name {
			case metricKills:
				totals.Kills = v
			case metricBounty:
				totals.Bounty = v
			case metricRuns:
				totals.Runs = v
			}
		}
	}
	return totals, nil
}

// Metrics records gameplay events
type Metrics struct {
	kills    metric.Int64Counter
	bounty   metric.Int64Counter
	runs     metric.Int64Counter
	distance metric.Float64Histogram
}

// NewMetrics registers the game instruments on a meter
func NewMetrics(m metric.Meter) (*Metrics, error) {
	var (
		mt  Metrics
		err error
	)
	mt.kills, err = m.Int64Counter(metricKills,
		metric.WithDescription("Zombies killed"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kills counter: %w", err)
	}
	mt.bounty, err = m.Int64Counter(metricBounty,
		metric.WithDescription("Money earned from kills and level rewards"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create bounty counter: %w", err)
	}
	mt.runs, err = m.Int64Counter(metricRuns,
		metric.WithDescription("Runs that ended"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create runs counter: %w", err)
	}
	mt.distance, err = m.Float64Histogram(metricDistance,
		metric.WithDescription("Distance covered per run"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create distance histogram: %w", err)
	}
	return &mt, nil
}

// NopMetrics records nothing
func NopMetrics() *Metrics {
	m, _ := NewMetrics(noop.Meter{})
	return m
}

// Kill records one zombie kill and its bounty
func (m *Metrics) Kill(ctx context.Context, kind, cause string, bounty int) {
	attrs := metric.WithAttributes(attribute.String("kind", kind), attribute.String("cause", cause))
	m.kills.Add(ctx, 1, attrs)
	m.bounty.Add(ctx, int64(bounty), attrs)
}

// Reward records money paid for finishing a level
func (m *Metrics) Reward(ctx context.Context, amount int) {
	m.bounty.Add(ctx, int64(amount), metric.WithAttributes(attribute.String("cause", "level")))
}

// RunFinished records the end of a run
func (m *Metrics) RunFinished(ctx context.Context, mode, outcome string, distance float64) {
	attrs := metric.WithAttributes(attribute.String("mode", mode), attribute.String("outcome", outcome))
	m.runs.Add(ctx, 1, attrs)
	m.distance.Record(ctx, distance, attrs)
}
