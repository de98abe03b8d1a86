package timeutil

import "time"

// Now returns the current UTC time truncated to millisecond precision,
// matching what the document store can round-trip.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
