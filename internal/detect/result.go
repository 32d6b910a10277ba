// Package detect implements the two classification channels: SMS text
// bodies and incoming call numbers (with optional voice transcripts). Both
// are total functions over any string input; malformed input degrades into
// the low-confidence branches instead of failing.
package detect

import (
	"github.com/rakshak-app/rakshak/internal/risk"
)

// ModelVersion identifies the rule bundle reported inside every result.
const ModelVersion = "IndicBERTv2-TFLite"

// Result is the outcome of classifying an SMS body. Immutable once produced.
type Result struct {
	Label            risk.Label `json:"label"`
	Confidence       float64    `json:"confidence"`
	Reasons          []string   `json:"reasons"`
	ModelVersion     string     `json:"model_version"`
	ProcessingTimeMs int64      `json:"processing_time_ms"`
}

// CallerInfo describes what is known about a calling number.
type CallerInfo struct {
	NumberType  string `json:"number_type"`
	Location    string `json:"location"`
	ReportCount int    `json:"report_count"`
}

// VoiceAnalysis carries the transcript-derived heuristics. Stress and speed
// are synthetic jitter layered on keyword counts, not real audio analysis;
// they stand in for a signal-processing stage this system does not have.
type VoiceAnalysis struct {
	StressLevel    float64  `json:"stress_level"`
	SpeedScore     float64  `json:"speed_score"`
	KeywordMatches []string `json:"keyword_matches"`
}

// CallResult is the outcome of classifying a call. RiskScore is the clamped
// additive accumulator; label and confidence derive from it through the
// shared threshold law.
type CallResult struct {
	Result
	CallerInfo    CallerInfo     `json:"caller_info"`
	VoiceAnalysis *VoiceAnalysis `json:"voice_analysis,omitempty"`
	RiskScore     int            `json:"risk_score"`
}

// CallContext carries the optional evidence accompanying a call. An empty
// Transcript means no voice analysis; a nil Duration means the call length
// is unknown.
type CallContext struct {
	Transcript      string
	DurationSeconds *int
}
