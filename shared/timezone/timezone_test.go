package timezone_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lendahand/shared/timezone"
)

func TestNow(t *testing.T) {
	now := timezone.Now()

	assert.False(t, now.IsZero())
	assert.Equal(t, timezone.Location(), now.Location())
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		want    time.Time
		wantErr bool
	}{
		{name: "booking date", date: "2026-03-12", want: time.Date(2026, 3, 12, 0, 0, 0, 0, timezone.Location())},
		{name: "leap day", date: "2028-02-29", want: time.Date(2028, 2, 29, 0, 0, 0, 0, timezone.Location())},
		{name: "impossible day", date: "2026-02-30", wantErr: true},
		{name: "display format", date: "12/03/2026", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := timezone.ParseDate(tt.date)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}
}

func TestStartOfDayAndIsBeforeDay(t *testing.T) {
	loc := timezone.Location()
	ref := time.Date(2026, 3, 10, 17, 45, 0, 0, loc)

	start := timezone.StartOfDay(ref)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, loc), start)

	assert.True(t, timezone.IsBeforeDay(time.Date(2026, 3, 9, 23, 59, 0, 0, loc), ref))
	assert.False(t, timezone.IsBeforeDay(time.Date(2026, 3, 10, 1, 0, 0, 0, loc), ref))
	assert.False(t, timezone.IsBeforeDay(time.Date(2026, 3, 11, 0, 0, 0, 0, loc), ref))
}

func TestClocks(t *testing.T) {
	pinned := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, pinned, timezone.FixedClock(pinned)())
	assert.False(t, timezone.SystemClock()().IsZero())
}
