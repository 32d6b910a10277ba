// Package risk holds the scoring primitives shared by the SMS and call
// classifiers: the score-to-label threshold law, confidence clamping, and
// reason list hygiene. Both channels go through this package so their
// labeling semantics can never drift apart.
package risk

// Label is the discrete classification outcome.
type Label string

const (
	LabelSafe       Label = "safe"
	LabelSuspicious Label = "suspicious"
	LabelScam       Label = "scam"
)

// MaxConfidence is the ceiling applied to every confidence value.
const MaxConfidence = 0.99

// Score thresholds for the call channel's additive point system.
const (
	ScamThreshold       = 70
	SuspiciousThreshold = 40
)

// Verdict pairs a label with the confidence derived from a risk score,
// before any per-channel lead reason is attached.
type Verdict struct {
	Label      Label
	Confidence float64
}

// LabelFor maps a clamped risk score onto a verdict:
// score >= 70 is scam, [40,70) is suspicious, below 40 is safe. Confidence
// rises with distance from the tier boundary and is capped at MaxConfidence.
func LabelFor(score int) Verdict {
	score = ClampScore(score)
	switch {
	case score >= ScamThreshold:
		return Verdict{LabelScam, ClampConfidence(0.85 + float64(score-ScamThreshold)/100)}
	case score >= SuspiciousThreshold:
		return Verdict{LabelSuspicious, ClampConfidence(0.65 + float64(score-SuspiciousThreshold)/100)}
	default:
		return Verdict{LabelSafe, ClampConfidence(0.70 + float64(30-score)/100)}
	}
}

// ClampScore bounds a raw additive score to [0,100].
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// ClampConfidence bounds a confidence to [0, MaxConfidence].
func ClampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > MaxConfidence {
		return MaxConfidence
	}
	return c
}

// Jitter returns base plus a random spread in [0, width), clamped. The spread
// is cosmetic variance layered on a fixed band, so label decisions never
// depend on it.
func Jitter(src Source, base, width float64) float64 {
	return ClampConfidence(base + src.Float64()*width)
}

// DedupeAndCap removes duplicate reasons keeping the first occurrence, then
// truncates to cap entries. Order is stable: a lead reason prepended by the
// caller can push a late category reason past the cap.
func DedupeAndCap(reasons []string, cap int) []string {
	seen := make(map[string]struct{}, len(reasons))
	out := make([]string, 0, len(reasons))
	for _, r := range reasons {
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
		if len(out) == cap {
			break
		}
	}
	return out
}
