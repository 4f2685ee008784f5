// Package timezone keeps booking dates on the calendar of the configured
// APP_TIMEZONE (an IANA name such as "Asia/Kolkata"; UTC when unset).
package timezone

import (
	"lendahand/config"
	"lendahand/shared/constant"
	"time"

	"github.com/rs/zerolog/log"
)

var appLocation = time.UTC

func init() {
	name := config.Get().App.Timezone
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")

		return
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Failed to load timezone, falling back to UTC")

		return
	}

	appLocation = loc

	log.Info().Str("timezone", name).Msg("Application timezone initialized")
}

// Location is the application timezone.
func Location() *time.Location {
	return appLocation
}

// Now returns the current time in the application timezone.
func Now() time.Time {
	return time.Now().In(appLocation)
}

// ParseDate reads a booking date (YYYY-MM-DD) as midnight in the application timezone.
func ParseDate(date string) (time.Time, error) {
	return time.ParseInLocation(constant.DateFormat, date, appLocation) //nolint:wrapcheck
}

// StartOfDay truncates t to midnight in the application timezone.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.In(appLocation).Date()

	return time.Date(y, m, d, 0, 0, 0, 0, appLocation)
}

// IsBeforeDay reports whether the calendar day of t falls before the calendar day of ref.
func IsBeforeDay(t, ref time.Time) bool {
	return StartOfDay(t).Before(StartOfDay(ref))
}

// Clock returns the current time. Services take a Clock so tests can pin "today".
type Clock func() time.Time

// SystemClock is the Clock backed by Now.
func SystemClock() Clock {
	return Now
}

// FixedClock always returns t.
func FixedClock(t time.Time) Clock {
	return func() time.Time {
		return t
	}
}
