package ids

import "github.com/segmentio/ksuid"

// New returns a K-sortable unique identifier string. Identifiers sort by
// creation time, which keeps insertion order recoverable from the id alone.
func New() string {
	return ksuid.New().String()
}
