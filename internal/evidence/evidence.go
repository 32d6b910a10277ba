// Package evidence defines the external logging collaborators invoked after
// a non-safe classification. The core only holds interfaces; the ledger and
// content store are opaque capabilities whose handles prove an event was
// recorded. Collaborator failures never invalidate a classification result.
package evidence

import (
	"context"
	"time"

	"github.com/rakshak-app/rakshak/internal/risk"
)

// Entry is the projection of a classification handed to the collaborators.
type Entry struct {
	Channel   string     `json:"channel"`
	Label     risk.Label `json:"label"`
	RiskScore int        `json:"risk_score,omitempty"`
	Reasons   []string   `json:"reasons"`
	Timestamp time.Time  `json:"timestamp"`
}

// Ledger appends an entry to an immutable log and returns a fixed-length
// hex handle referencing it.
type Ledger interface {
	Append(ctx context.Context, e Entry) (string, error)
}

// ContentStore persists an entry's full payload and returns a fixed-length
// content-address handle.
type ContentStore interface {
	Put(ctx context.Context, e Entry) (string, error)
}
