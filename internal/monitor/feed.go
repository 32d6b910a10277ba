package monitor

import (
	"sync"

	"github.com/rakshak-app/rakshak/internal/detect"
)

// Feed caps for the UI-facing recent-event lists.
const (
	recentCallCap  = 10
	recentSMSCap   = 10
	recentAlertCap = 20
)

// ClassifiedCall pairs a call event with its classification.
type ClassifiedCall struct {
	Call   IncomingCall      `json:"call"`
	Result detect.CallResult `json:"result"`
}

// ClassifiedSMS pairs an SMS event with its classification.
type ClassifiedSMS struct {
	SMS    IncomingSMS   `json:"sms"`
	Result detect.Result `json:"result"`
}

// Feed is the append-only, newest-first view of recent monitoring activity.
// Entries fall off the tail once a list reaches its cap; nothing is ever
// edited in place.
type Feed struct {
	mu     sync.Mutex
	calls  []ClassifiedCall
	sms    []ClassifiedSMS
	alerts []Alert
}

// NewFeed returns an empty feed.
func NewFeed() *Feed {
	return &Feed{}
}

// AddCall prepends a classified call, trimming to the call cap.
func (f *Feed) AddCall(call IncomingCall, result detect.CallResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append([]ClassifiedCall{{Call: call, Result: result}}, f.calls...)
	if len(f.calls) > recentCallCap {
		f.calls = f.calls[:recentCallCap]
	}
}

// AddSMS prepends a classified SMS, trimming to the SMS cap.
func (f *Feed) AddSMS(sms IncomingSMS, result detect.Result) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sms = append([]ClassifiedSMS{{SMS: sms, Result: result}}, f.sms...)
	if len(f.sms) > recentSMSCap {
		f.sms = f.sms[:recentSMSCap]
	}
}

// AddAlert prepends an alert, trimming to the alert cap.
func (f *Feed) AddAlert(a Alert) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = append([]Alert{a}, f.alerts...)
	if len(f.alerts) > recentAlertCap {
		f.alerts = f.alerts[:recentAlertCap]
	}
}

// RecentCalls copies the call list, newest first.
func (f *Feed) RecentCalls() []ClassifiedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]ClassifiedCall, len(f.calls))
	copy(out, f.calls)
	return out
}

// RecentSMS copies the SMS list, newest first.
func (f *Feed) RecentSMS() []ClassifiedSMS {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]ClassifiedSMS, len(f.sms))
	copy(out, f.sms)
	return out
}

// RecentAlerts copies the alert list, newest first.
func (f *Feed) RecentAlerts() []Alert {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Alert, len(f.alerts))
	copy(out, f.alerts)
	return out
}
