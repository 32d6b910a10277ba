// Package rules holds the fixed catalogs consulted by both classifiers.
// Catalogs are compiled once at construction and never mutated afterwards,
// so a Repository is safe for concurrent reads.
package rules

import (
	"regexp"
)

// TextSeverity is the weight tier of a text pattern.
type TextSeverity string

const (
	SeverityScam       TextSeverity = "scam"
	SeveritySuspicious TextSeverity = "suspicious"
)

// NumberRisk is the weight tier of a phone-number structural pattern.
type NumberRisk string

const (
	RiskLow    NumberRisk = "low"
	RiskMedium NumberRisk = "medium"
	RiskHigh   NumberRisk = "high"
)

// TextRule is a message pattern with its category label and severity.
type TextRule struct {
	Pattern  *regexp.Regexp
	Category string
	Severity TextSeverity
}

// NumberRule is a phone-number structural pattern. The first rule that
// matches a normalized number decides its type; catalog order matters.
type NumberRule struct {
	Pattern *regexp.Regexp
	Type    string
	Risk    NumberRisk
}

// Repository bundles every catalog the classifiers consult.
type Repository struct {
	textRules    []TextRule
	safePatterns []*regexp.Regexp
	numberRules  []NumberRule

	knownScamPrefixes []string
	trustedPrefixes   []string
	voiceKeywords     []string
	metroStateCodes   []string

	mobilePattern     *regexp.Regexp
	degeneratePattern *regexp.Regexp
}

// TextRules returns the scam/suspicious message patterns in catalog order.
func (r *Repository) TextRules() []TextRule { return r.textRules }

// SafePatterns returns the legitimate-transaction patterns.
func (r *Repository) SafePatterns() []*regexp.Regexp { return r.safePatterns }

// NumberRules returns the structural phone-number patterns in catalog order.
func (r *Repository) NumberRules() []NumberRule { return r.numberRules }

// KnownScamPrefixes returns country-calling-code prefixes with a scam history.
func (r *Repository) KnownScamPrefixes() []string { return r.knownScamPrefixes }

// TrustedPrefixes returns short-code and toll-free prefixes that
// short-circuit straight to safe.
func (r *Repository) TrustedPrefixes() []string { return r.trustedPrefixes }

// VoiceKeywords returns the scam-indicative spoken vocabulary, lower case.
func (r *Repository) VoiceKeywords() []string { return r.voiceKeywords }

// MetroStateCodes returns the two-digit Indian metro codes that lower risk.
func (r *Repository) MetroStateCodes() []string { return r.metroStateCodes }

// MobilePattern returns the canonical Indian mobile number pattern.
func (r *Repository) MobilePattern() *regexp.Regexp { return r.mobilePattern }

// DegeneratePattern matches long runs of a repeated digit.
func (r *Repository) DegeneratePattern() *regexp.Regexp { return r.degeneratePattern }
