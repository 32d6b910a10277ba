package monitor

import (
	"fmt"
	"testing"

	"github.com/rakshak-app/rakshak/internal/detect"
)

func TestFeedNewestFirstAndCapped(t *testing.T) {
	feed := NewFeed()

	for i := 0; i < recentCallCap+5; i++ {
		feed.AddCall(IncomingCall{ID: fmt.Sprintf("call-%d", i)}, detect.CallResult{})
	}
	for i := 0; i < recentSMSCap+3; i++ {
		feed.AddSMS(IncomingSMS{ID: fmt.Sprintf("sms-%d", i)}, detect.Result{})
	}
	for i := 0; i < recentAlertCap+7; i++ {
		feed.AddAlert(Alert{ID: fmt.Sprintf("alert-%d", i)})
	}

	calls := feed.RecentCalls()
	if len(calls) != recentCallCap {
		t.Fatalf("expected %d calls, got %d", recentCallCap, len(calls))
	}
	if calls[0].Call.ID != fmt.Sprintf("call-%d", recentCallCap+4) {
		t.Fatalf("expected newest call first, got %q", calls[0].Call.ID)
	}
	if calls[len(calls)-1].Call.ID != "call-5" {
		t.Fatalf("expected oldest surviving call last, got %q", calls[len(calls)-1].Call.ID)
	}

	sms := feed.RecentSMS()
	if len(sms) != recentSMSCap {
		t.Fatalf("expected %d SMS, got %d", recentSMSCap, len(sms))
	}
	if sms[0].SMS.ID != fmt.Sprintf("sms-%d", recentSMSCap+2) {
		t.Fatalf("expected newest SMS first, got %q", sms[0].SMS.ID)
	}

	alerts := feed.RecentAlerts()
	if len(alerts) != recentAlertCap {
		t.Fatalf("expected %d alerts, got %d", recentAlertCap, len(alerts))
	}
	if alerts[0].ID != fmt.Sprintf("alert-%d", recentAlertCap+6) {
		t.Fatalf("expected newest alert first, got %q", alerts[0].ID)
	}
}

func TestFeedAccessorsCopy(t *testing.T) {
	feed := NewFeed()
	feed.AddAlert(Alert{ID: "original"})

	got := feed.RecentAlerts()
	got[0].ID = "mutated"

	if again := feed.RecentAlerts(); again[0].ID != "original" {
		t.Fatalf("accessor should hand out a copy, got %q", again[0].ID)
	}
}

func TestFeedEmpty(t *testing.T) {
	feed := NewFeed()
	if got := feed.RecentCalls(); len(got) != 0 {
		t.Fatalf("expected empty call list, got %d", len(got))
	}
	if got := feed.RecentSMS(); len(got) != 0 {
		t.Fatalf("expected empty SMS list, got %d", len(got))
	}
	if got := feed.RecentAlerts(); len(got) != 0 {
		t.Fatalf("expected empty alert list, got %d", len(got))
	}
}
