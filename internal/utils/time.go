package utils

import "time"

// TimestampLayout matches the ISO-8601 form stored in every timestamp column.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func Now() string {
	return Timestamp(time.Now())
}
