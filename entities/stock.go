package entities

import "time"

// StockSnapshot is one derived observation of the remaining stock. Snapshots
// are superseded by the next refresh, never mutated. Remaining is always
// max(0, capacity - sold).
type StockSnapshot struct {
	Remaining  int
	ObservedAt time.Time
}
