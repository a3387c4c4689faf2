package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Date layouts used in listings and printed documents
const (
	ISODate      = "2006-01-02"
	DayFirstDate = "02-01-2006"
)

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		// Use the global logger here, assuming logger might not be configured when this is called.
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// FormatDate renders t as YYYY-MM-DD, or "" for the zero time
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(ISODate)
}

// FormatDayFirst renders t as DD-MM-YYYY, or "" for the zero time
func FormatDayFirst(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DayFirstDate)
}
