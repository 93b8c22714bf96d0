package loop

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/tomz197/airhockey/internal/object"
)

const meterName = "github.com/tomz197/airhockey/internal/loop"

// instruments are the counters a Controller reports to.
type instruments struct {
	matches metric.Int64Counter
	goals   metric.Int64Counter
	frames  metric.Int64Counter
	hits    metric.Int64Counter
}

// newInstruments creates the counters on meter. Any counter that cannot be
// created falls back to a no-op one.
func newInstruments(meter metric.Meter) *instruments {
	if meter == nil {
		meter = noop.NewMeterProvider().Meter(meterName)
	}
	fallback := noop.Meter{}

	counter := func(name, desc string) metric.Int64Counter {
		c, err := meter.Int64Counter(name, metric.WithDescription(desc))
		if err != nil {
			c, _ = fallback.Int64Counter(name)
		}
		return c
	}

	return &instruments{
		matches: counter("airhockey.matches", "Matches started"),
		goals:   counter("airhockey.goals", "Goals scored"),
		frames:  counter("airhockey.frames", "Simulation steps executed"),
		hits:    counter("airhockey.hits", "Player-ball collisions resolved"),
	}
}

func (in *instruments) matchStarted(ctx context.Context) {
	in.matches.Add(ctx, 1)
}

func (in *instruments) stepped(ctx context.Context, res StepResult) {
	in.frames.Add(ctx, 1)
	if res.Hits > 0 {
		in.hits.Add(ctx, int64(res.Hits))
	}
	if res.Goal {
		in.goals.Add(ctx, 1, metric.WithAttributes(sideAttr(res.Scorer)))
	}
}

func sideAttr(side object.Side) attribute.KeyValue {
	return attribute.String("side", side.String())
}
