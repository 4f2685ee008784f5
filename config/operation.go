package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Operation is the latency and failure profile of one simulated round trip,
// written in the environment as "<delay>/<failure rate>", e.g. "2000ms/0.05".
// A delay without a unit is read as milliseconds.
type Operation struct {
	Delay       time.Duration
	FailureRate float64
}

// Decode implements envconfig.Decoder.
func (o *Operation) Decode(value string) error {
	delay, rate, found := strings.Cut(strings.TrimSpace(value), "/")

	d, err := parseDelay(strings.TrimSpace(delay))
	if err != nil {
		return fmt.Errorf("invalid operation delay %q: %w", delay, err)
	}

	r := 0.0
	if found {
		r, err = cast.ToFloat64E(strings.TrimSpace(rate))
		if err != nil {
			return fmt.Errorf("invalid operation failure rate %q: %w", rate, err)
		}
	}

	if r < 0 || r > 1 {
		return fmt.Errorf("operation failure rate %v out of range [0,1]", r)
	}

	o.Delay = d
	o.FailureRate = r

	return nil
}

func parseDelay(value string) (time.Duration, error) {
	if ms, err := cast.ToInt64E(value); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}

	return cast.ToDurationE(value) //nolint:wrapcheck
}

func (o Operation) String() string {
	return fmt.Sprintf("%s/%g", o.Delay, o.FailureRate)
}
