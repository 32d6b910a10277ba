package detect

import (
	"fmt"
	"strings"
	"time"

	"github.com/rakshak-app/rakshak/internal/risk"
	"github.com/rakshak-app/rakshak/internal/rules"
)

const (
	callReasonCap   = 4
	keywordCap      = 5
	keywordPoints   = 15
	reportCountSpan = 500
)

var numberCleaner = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")

// ClassifyCall scores a phone number plus optional call evidence through the
// additive point system. The number is normalized first; anything that is
// not a recognizable number degrades through the format and length checks
// rather than erroring.
func (c *Classifier) ClassifyCall(phoneNumber string, cc CallContext) CallResult {
	start := time.Now()
	number := numberCleaner.Replace(phoneNumber)

	for _, prefix := range c.rules.TrustedPrefixes() {
		if strings.HasPrefix(number, prefix) {
			return CallResult{
				Result: Result{
					Label:            risk.LabelSafe,
					Confidence:       0.95,
					Reasons:          []string{"Verified service number", "Trusted prefix"},
					ModelVersion:     ModelVersion,
					ProcessingTimeMs: elapsedMs(start),
				},
				CallerInfo: CallerInfo{NumberType: "Service Number", Location: "India", ReportCount: 0},
				RiskScore:  5,
			}
		}
	}

	var (
		score      int
		reasons    []string
		numberType = "Unknown"
		location   = "Unknown"
	)
	reportCount := c.src.Intn(reportCountSpan)

	for _, prefix := range c.rules.KnownScamPrefixes() {
		if strings.HasPrefix(number, prefix) {
			score += 60
			reasons = append(reasons, "High-risk international prefix")
			break
		}
	}

	for _, rule := range c.rules.NumberRules() {
		if rule.Pattern.MatchString(number) {
			numberType = rule.Type
			switch rule.Risk {
			case rules.RiskHigh:
				score += 40
			case rules.RiskMedium:
				score += 20
			case rules.RiskLow:
				score -= 10
			}
			break
		}
	}

	if strings.HasPrefix(number, "+91") {
		location = "India"
		if len(number) >= 5 {
			stateCode := number[3:5]
			for _, metro := range c.rules.MetroStateCodes() {
				if stateCode == metro {
					location = "Major Metro"
					score -= 5
					break
				}
			}
		}
	} else if strings.HasPrefix(number, "+") {
		location = "International"
		score += 25
		reasons = append(reasons, "International caller")
	}

	if !c.rules.MobilePattern().MatchString(number) && !strings.HasPrefix(number, "1800") {
		score += 30
		reasons = append(reasons, "Irregular number format")
	}

	if reportCount > 100 {
		score += 40
		reasons = append(reasons, fmt.Sprintf("%d spam reports", reportCount))
	} else if reportCount > 50 {
		score += 20
		reasons = append(reasons, fmt.Sprintf("%d user reports", reportCount))
	}

	var voice *VoiceAnalysis
	if cc.Transcript != "" {
		voice, score = c.analyzeTranscript(cc.Transcript, score, &reasons)
	}

	if cc.DurationSeconds != nil {
		if *cc.DurationSeconds < 10 {
			score += 15
			reasons = append(reasons, "Very short call duration")
		} else if *cc.DurationSeconds > 300 {
			score -= 10
		}
	}

	if c.rules.DegeneratePattern().MatchString(number) {
		score += 35
		reasons = append(reasons, "Suspicious number pattern")
	}

	if len(number) < 10 && !strings.HasPrefix(number, "1800") {
		score += 25
		reasons = append(reasons, "Invalid number length")
	}

	score = risk.ClampScore(score)
	verdict := risk.LabelFor(score)

	switch verdict.Label {
	case risk.LabelScam:
		reasons = append([]string{"High-risk scam indicators"}, reasons...)
	case risk.LabelSuspicious:
		reasons = append([]string{"Multiple risk factors detected"}, reasons...)
	default:
		if len(reasons) == 0 {
			reasons = append(reasons, "No major risk indicators")
		}
	}

	return CallResult{
		Result: Result{
			Label:            verdict.Label,
			Confidence:       verdict.Confidence,
			Reasons:          risk.DedupeAndCap(reasons, callReasonCap),
			ModelVersion:     ModelVersion,
			ProcessingTimeMs: elapsedMs(start),
		},
		CallerInfo:    CallerInfo{NumberType: numberType, Location: location, ReportCount: reportCount},
		VoiceAnalysis: voice,
		RiskScore:     score,
	}
}

// ClassifyNumber scores a bare number with no transcript or duration.
func (c *Classifier) ClassifyNumber(phoneNumber string) CallResult {
	return c.ClassifyCall(phoneNumber, CallContext{})
}

func (c *Classifier) analyzeTranscript(transcript string, score int, reasons *[]string) (*VoiceAnalysis, int) {
	lc := strings.ToLower(transcript)

	var matches []string
	for _, kw := range c.rules.VoiceKeywords() {
		if strings.Contains(lc, kw) {
			matches = append(matches, kw)
		}
	}

	if len(matches) > 0 {
		score += len(matches) * keywordPoints
		*reasons = append(*reasons, fmt.Sprintf("%d scam keywords detected", len(matches)))
	}

	stress := float64(len(matches))*20 + c.src.Float64()*30
	if stress > 100 {
		stress = 100
	}
	speed := 60 + c.src.Float64()*40

	if stress > 60 {
		score += 20
		*reasons = append(*reasons, "High stress voice patterns")
	}
	if speed > 80 {
		score += 15
		*reasons = append(*reasons, "Unusually fast speech")
	}

	if len(matches) > keywordCap {
		matches = matches[:keywordCap]
	}
	return &VoiceAnalysis{StressLevel: stress, SpeedScore: speed, KeywordMatches: matches}, score
}
