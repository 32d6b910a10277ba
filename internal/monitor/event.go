// Package monitor owns the simulated carrier feed: a periodic generation
// loop that synthesizes calls and SMS, routes them through the classifiers,
// applies the auto-block policy, and fans resulting alerts out to sinks.
package monitor

import (
	"fmt"
	"time"

	"github.com/rakshak-app/rakshak/internal/detect"
	"github.com/rakshak-app/rakshak/internal/risk"
)

// Channel identifies which pipeline produced an alert.
type Channel string

const (
	ChannelCall Channel = "call"
	ChannelSMS  Channel = "sms"
)

// CallStatus is the lifecycle state of a synthesized call.
type CallStatus string

const (
	CallRinging  CallStatus = "ringing"
	CallAnswered CallStatus = "answered"
	CallMissed   CallStatus = "missed"
	CallBlocked  CallStatus = "blocked"
)

// CallDirection distinguishes inbound from outbound call records.
type CallDirection string

const (
	DirectionIncoming CallDirection = "incoming"
	DirectionOutgoing CallDirection = "outgoing"
)

// SMSStatus is the lifecycle state of a synthesized SMS.
type SMSStatus string

const (
	SMSReceived SMSStatus = "received"
	SMSBlocked  SMSStatus = "blocked"
)

// IncomingCall is a synthesized call event. Only the generation tick that
// created it mutates Status, and only before handing it to subscribers.
type IncomingCall struct {
	ID          string        `json:"id"`
	PhoneNumber string        `json:"phone_number"`
	Timestamp   time.Time     `json:"timestamp"`
	Direction   CallDirection `json:"direction"`
	Status      CallStatus    `json:"status"`
}

// IncomingSMS is a synthesized SMS event with the same lifecycle shape.
type IncomingSMS struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Status    SMSStatus `json:"status"`
}

// Alert is the read-only projection of an event plus its classification,
// delivered to sinks in generation order.
type Alert struct {
	ID          string     `json:"id"`
	Channel     Channel    `json:"channel"`
	Severity    risk.Label `json:"severity"`
	Timestamp   time.Time  `json:"timestamp"`
	Summary     string     `json:"summary"`
	PhoneNumber string     `json:"phone_number,omitempty"`
	Message     string     `json:"message,omitempty"`
	Blocked     bool       `json:"blocked"`
	RiskScore   int        `json:"risk_score,omitempty"`
}

func severityWord(label risk.Label) string {
	switch label {
	case risk.LabelScam:
		return "Scam"
	case risk.LabelSuspicious:
		return "Suspicious"
	default:
		return "Safe"
	}
}

func callAlert(call IncomingCall, result detect.CallResult) Alert {
	return Alert{
		ID:          call.ID,
		Channel:     ChannelCall,
		Severity:    result.Label,
		Timestamp:   call.Timestamp,
		Summary:     fmt.Sprintf("%s call from %s", severityWord(result.Label), call.PhoneNumber),
		PhoneNumber: call.PhoneNumber,
		Blocked:     call.Status == CallBlocked,
		RiskScore:   result.RiskScore,
	}
}

func smsAlert(sms IncomingSMS, result detect.Result, preview string) Alert {
	return Alert{
		ID:          sms.ID,
		Channel:     ChannelSMS,
		Severity:    result.Label,
		Timestamp:   sms.Timestamp,
		Summary:     fmt.Sprintf("%s SMS from %s", severityWord(result.Label), sms.Sender),
		PhoneNumber: sms.Sender,
		Message:     preview,
		Blocked:     sms.Status == SMSBlocked,
	}
}
