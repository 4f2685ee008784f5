package simulator

import (
	"context"
	"lendahand/config"
	"lendahand/infras/otel"
	"lendahand/shared/constant"
	"lendahand/shared/failure"
	"time"

	"github.com/rs/zerolog/log"
)

// Options describes one simulated round trip.
type Options struct {
	Delay       time.Duration
	FailureRate float64
	// Failure is returned when the round trip is chosen to fail. Defaults to failure.NetworkError.
	Failure error
}

// FromConfig turns a configured operation profile into Options.
func FromConfig(op config.Operation, fail error) Options {
	return Options{
		Delay:       op.Delay,
		FailureRate: op.FailureRate,
		Failure:     fail,
	}
}

// Simulator stands in for every network round trip.
type Simulator interface {
	// Simulate waits the configured delay then succeeds or fails. A cancelled
	// context ends the wait early with ctx.Err().
	Simulate(ctx context.Context, operation string, opts Options) error
	// Wait blocks for a strategy-chosen duration in [min, max].
	Wait(ctx context.Context, min, max time.Duration) error
	// Pick returns an index in [0, n).
	Pick(n int) int
}

type simulatorImpl struct {
	strategy Strategy
	otel     otel.Otel
}

func New(strategy Strategy, otel otel.Otel) Simulator {
	return &simulatorImpl{
		strategy: strategy,
		otel:     otel,
	}
}

func (s *simulatorImpl) Simulate(ctx context.Context, operation string, opts Options) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelSimulatorScopeName, constant.OtelSimulatorScopeName+"."+operation)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	delay := s.strategy.Delay(opts.Delay, opts.Delay)
	scope.SetAttributes(map[string]any{
		"delay":        delay,
		"failure_rate": opts.FailureRate,
	})

	if err = sleep(ctx, delay); err != nil {
		log.Warn().Err(err).Str("operation", operation).Msg("simulated round trip cancelled")

		return err
	}

	if s.strategy.ShouldFail(opts.FailureRate) {
		err = opts.Failure
		if err == nil {
			err = failure.NetworkError
		}

		log.Info().Str("operation", operation).Str("error", err.Error()).Msg("simulated round trip failed")

		return err
	}

	return nil
}

func (s *simulatorImpl) Wait(ctx context.Context, min, max time.Duration) error {
	return sleep(ctx, s.strategy.Delay(min, max))
}

func (s *simulatorImpl) Pick(n int) int {
	return s.strategy.Pick(n)
}

// Run simulates a round trip and, on success, runs fn. fn is not called when
// the round trip fails or ctx is cancelled.
func Run[T any](ctx context.Context, sim Simulator, operation string, opts Options, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	if err := sim.Simulate(ctx, operation, opts); err != nil {
		return zero, err
	}

	return fn(ctx)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err() //nolint:wrapcheck
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err() //nolint:wrapcheck
	case <-timer.C:
		return nil
	}
}
