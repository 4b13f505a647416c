// Package id mints run identifiers. A run ID is a ULID: time-ordered, so
// newer runs sort after older ones by plain string comparison, in listings
// and in the SQLite index alike.
package id

import "github.com/oklog/ulid/v2"

// New returns a fresh run ID. ulid.Make draws from a locked monotonic
// reader, so IDs minted within the same millisecond still increase.
func New() string {
	return ulid.Make().String()
}
