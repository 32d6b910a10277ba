// Package stats tracks the aggregate protection counters the surrounding
// app displays on its dashboard. Counters only ever grow.
package stats

import "go.uber.org/atomic"

// Counters is safe for concurrent use.
type Counters struct {
	totalScans     atomic.Int64
	scamsBlocked   atomic.Int64
	accountsFrozen atomic.Int64
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	TotalScans     int64 `json:"total_scans"`
	ScamsBlocked   int64 `json:"scams_blocked"`
	AccountsFrozen int64 `json:"accounts_frozen"`
}

// ScanRecorded bumps the scan counter after any classification.
func (c *Counters) ScanRecorded() { c.totalScans.Inc() }

// ScamBlocked bumps the blocked counter when auto-block rewrites an event.
func (c *Counters) ScamBlocked() { c.scamsBlocked.Inc() }

// AccountFrozen bumps the freeze counter for operator-initiated freezes.
func (c *Counters) AccountFrozen() { c.accountsFrozen.Inc() }

// Snapshot copies the current values.
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		TotalScans:     c.totalScans.Load(),
		ScamsBlocked:   c.scamsBlocked.Load(),
		AccountsFrozen: c.accountsFrozen.Load(),
	}
}
