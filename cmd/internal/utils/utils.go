package utils

import (
	"time"
)

// ISO8601Millis matches the timestamps browsers produce with Date.toISOString.
const ISO8601Millis = "2006-01-02T15:04:05.000Z07:00"

func NowUTC() time.Time {
	return time.Now().UTC()
}

func FormatISO8601(t time.Time) string {
	return t.UTC().Format(ISO8601Millis)
}
