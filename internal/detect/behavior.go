package detect

import "strings"

// HangupBy identifies which side ended a call.
type HangupBy string

const (
	HangupCaller   HangupBy = "caller"
	HangupReceiver HangupBy = "receiver"
	HangupAuto     HangupBy = "auto"
)

// BehaviorAssessment is the verdict of the post-call behavior heuristic.
type BehaviorAssessment struct {
	Suspicious bool   `json:"suspicious"`
	Reason     string `json:"reason"`
}

// AnalyzeCallBehavior flags calls that ended in patterns typical of robocall
// sweeps: immediate caller hangups and automated disconnects.
func AnalyzeCallBehavior(durationSeconds int, hangupBy HangupBy) BehaviorAssessment {
	if durationSeconds < 5 && hangupBy == HangupCaller {
		return BehaviorAssessment{Suspicious: true, Reason: "Caller hung up immediately"}
	}
	if durationSeconds > 600 {
		return BehaviorAssessment{Suspicious: false, Reason: "Long conversation indicates legitimacy"}
	}
	if hangupBy == HangupAuto {
		return BehaviorAssessment{Suspicious: true, Reason: "Automated call system detected"}
	}
	return BehaviorAssessment{Suspicious: false, Reason: "Normal call behavior"}
}

// CallerRecord is a synthetic caller-database row.
type CallerRecord struct {
	Name      string `json:"name,omitempty"`
	Category  string `json:"category"`
	Verified  bool   `json:"verified"`
	SpamScore int    `json:"spam_score"`
}

// LookupCaller simulates a crowd-sourced caller database. Toll-free numbers
// resolve to a verified business record; everything else gets a category
// derived from a synthetic spam score.
func (c *Classifier) LookupCaller(phoneNumber string) CallerRecord {
	number := numberCleaner.Replace(phoneNumber)
	spamScore := c.src.Intn(100)

	if strings.HasPrefix(number, "1800") {
		return CallerRecord{Name: "Customer Service", Category: "Business", Verified: true, SpamScore: 5}
	}
	switch {
	case spamScore > 80:
		return CallerRecord{Category: "Telemarketing", SpamScore: spamScore}
	case spamScore > 60:
		return CallerRecord{Category: "Suspected Spam", SpamScore: spamScore}
	default:
		return CallerRecord{Category: "Unknown", SpamScore: spamScore}
	}
}
