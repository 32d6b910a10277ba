package detect

import (
	"time"

	"github.com/rakshak-app/rakshak/internal/risk"
	"github.com/rakshak-app/rakshak/internal/rules"
)

const textReasonCap = 3

// Classifier scores messages and calls against a rule repository. Every
// random draw goes through the injected source so tests can fix seeds.
type Classifier struct {
	rules *rules.Repository
	src   risk.Source
}

// New builds a classifier over the given repository and random source.
func New(repo *rules.Repository, src risk.Source) *Classifier {
	if src == nil {
		src = risk.DefaultSource()
	}
	return &Classifier{rules: repo, src: src}
}

// ClassifyText scores a message body. Safe-transaction patterns win over
// scam scanning: a legitimate receipt that also mentions a prize is still
// safe. Empty or whitespace-only messages fall through to the no-match
// branch rather than erroring.
func (c *Classifier) ClassifyText(message string) Result {
	start := time.Now()

	for _, safe := range c.rules.SafePatterns() {
		if safe.MatchString(message) {
			return Result{
				Label:            risk.LabelSafe,
				Confidence:       risk.Jitter(c.src, 0.85, 0.14),
				Reasons:          []string{"Legitimate transaction pattern", "No suspicious keywords"},
				ModelVersion:     ModelVersion,
				ProcessingTimeMs: elapsedMs(start),
			}
		}
	}

	var (
		categories []string
		hasScam    bool
	)
	seen := make(map[string]struct{})
	for _, rule := range c.rules.TextRules() {
		if !rule.Pattern.MatchString(message) {
			continue
		}
		if _, dup := seen[rule.Category]; !dup {
			seen[rule.Category] = struct{}{}
			categories = append(categories, rule.Category)
		}
		if rule.Severity == rules.SeverityScam {
			hasScam = true
		}
	}

	if len(categories) == 0 {
		return Result{
			Label:            risk.LabelSafe,
			Confidence:       risk.Jitter(c.src, 0.70, 0.15),
			Reasons:          []string{"No known scam patterns detected"},
			ModelVersion:     ModelVersion,
			ProcessingTimeMs: elapsedMs(start),
		}
	}

	label := risk.LabelSuspicious
	confidence := risk.Jitter(c.src, 0.65, 0.20)
	tierReason := "Moderate-risk indicators"
	if hasScam {
		label = risk.LabelScam
		confidence = risk.Jitter(c.src, 0.88, 0.11)
		tierReason = "High-risk language patterns"
	}

	reasons := append(categories, tierReason, "Multilingual analysis completed")

	return Result{
		Label:            label,
		Confidence:       confidence,
		Reasons:          risk.DedupeAndCap(reasons, textReasonCap),
		ModelVersion:     ModelVersion,
		ProcessingTimeMs: elapsedMs(start),
	}
}

func elapsedMs(start time.Time) int64 {
	ms := time.Since(start).Milliseconds()
	if ms < 0 {
		return 0
	}
	return ms
}
