package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lendahand/config"
)

func TestOperation_Decode(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    config.Operation
		wantErr bool
	}{
		{
			name:  "delay and rate",
			value: "2000ms/0.05",
			want:  config.Operation{Delay: 2 * time.Second, FailureRate: 0.05},
		},
		{
			name:  "delay only",
			value: "600ms",
			want:  config.Operation{Delay: 600 * time.Millisecond},
		},
		{
			name:  "bare milliseconds",
			value: " 1500 / 0.1 ",
			want:  config.Operation{Delay: 1500 * time.Millisecond, FailureRate: 0.1},
		},
		{
			name:    "bad duration",
			value:   "soon/0.1",
			wantErr: true,
		},
		{
			name:    "bad rate",
			value:   "1s/high",
			wantErr: true,
		},
		{
			name:    "rate out of range",
			value:   "1s/1.5",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var op config.Operation
			err := op.Decode(tt.value)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, op)
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, "lendahand_", cfg.App.StorePrefix)
	assert.Equal(t, 1200*time.Millisecond, cfg.Simulator.BookingSubmit.Delay)
	assert.Zero(t, cfg.Simulator.BookingSubmit.FailureRate)
	assert.Equal(t, 2*time.Second, cfg.Simulator.Payment.Delay)
	assert.InDelta(t, 0.05, cfg.Simulator.Payment.FailureRate, 1e-9)
	assert.Equal(t, 1500*time.Millisecond, cfg.Simulator.ChatReplyMin)
	assert.Equal(t, 3*time.Second, cfg.Simulator.ChatReplyMax)
	assert.Equal(t, time.Second, cfg.Chat.SendInterval)
	assert.Equal(t, 5, cfg.Chat.SendBurst)
	assert.InDelta(t, 0.10, cfg.Pricing.TaxRate, 1e-9)
	assert.InDelta(t, 10.0, cfg.Pricing.DefaultPlatformFee, 1e-9)
}
