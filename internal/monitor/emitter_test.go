package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/rakshak-app/rakshak/internal/risk"
)

func testAlert(id string) *Alert {
	return &Alert{
		ID:          id,
		Channel:     ChannelCall,
		Severity:    risk.LabelScam,
		Timestamp:   time.Now(),
		Summary:     "Scam call from +2349012345678",
		PhoneNumber: "+2349012345678",
		Blocked:     true,
		RiskScore:   100,
	}
}

func TestEmitterDeliversInOrder(t *testing.T) {
	collector := NewCollectorSink()
	em := NewEmitter(EmitterConfig{}, []Sink{collector}, zap.NewNop())

	for i := 0; i < 5; i++ {
		em.Emit(context.Background(), testAlert(string(rune('a'+i))))
	}
	em.Close(context.Background())

	alerts := collector.Alerts()
	if len(alerts) != 5 {
		t.Fatalf("expected 5 alerts, got %d", len(alerts))
	}
	for i, a := range alerts {
		if want := string(rune('a' + i)); a.ID != want {
			t.Fatalf("alert %d out of order: got %q want %q", i, a.ID, want)
		}
	}

	m := em.MetricsSnapshot()
	if m.Enqueued() != 5 || m.Dropped() != 0 {
		t.Fatalf("unexpected queue metrics: enqueued=%d dropped=%d", m.Enqueued(), m.Dropped())
	}
	if m.SinkSuccess("collector") != 5 || m.SinkFailure("collector") != 0 {
		t.Fatalf("unexpected sink metrics: success=%d failure=%d",
			m.SinkSuccess("collector"), m.SinkFailure("collector"))
	}
}

func TestEmitterDropsAfterClose(t *testing.T) {
	em := NewEmitter(EmitterConfig{}, nil, zap.NewNop())
	em.Close(context.Background())

	em.Emit(context.Background(), testAlert("late"))

	if m := em.MetricsSnapshot(); m.Dropped() != 1 || m.Enqueued() != 0 {
		t.Fatalf("expected the late alert dropped: enqueued=%d dropped=%d", m.Enqueued(), m.Dropped())
	}
	// Redundant close is harmless.
	em.Close(context.Background())
}

type failingSink struct {
	calls atomic.Int64
}

func (s *failingSink) Name() string { return "failing" }

func (s *failingSink) Deliver(context.Context, *Alert) error {
	s.calls.Add(1)
	return errors.New("downstream unavailable")
}

func (s *failingSink) Close(context.Context) error { return nil }

func TestEmitterCountsSinkFailures(t *testing.T) {
	failing := &failingSink{}
	collector := NewCollectorSink()
	em := NewEmitter(EmitterConfig{}, []Sink{failing, collector}, zap.NewNop())

	em.Emit(context.Background(), testAlert("a"))
	em.Close(context.Background())

	if got := failing.calls.Load(); got != 1 {
		t.Fatalf("expected one delivery attempt, got %d", got)
	}
	m := em.MetricsSnapshot()
	if m.SinkFailure("failing") != 1 {
		t.Fatalf("expected one recorded failure, got %d", m.SinkFailure("failing"))
	}
	// A failing sink must not starve the others.
	if m.SinkSuccess("collector") != 1 {
		t.Fatalf("expected collector delivery despite sibling failure")
	}
}

func TestFileSinkWritesJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alerts", "alerts.jsonl")
	sink, err := NewFileSink(path)
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}

	for _, id := range []string{"one", "two"} {
		if err := sink.Deliver(context.Background(), testAlert(id)); err != nil {
			t.Fatalf("Deliver(%s): %v", id, err)
		}
	}
	if err := sink.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 JSONL lines, got %d", len(lines))
	}
	for i, line := range lines {
		var a Alert
		if err := json.Unmarshal([]byte(line), &a); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", i, err)
		}
		if a.Channel != ChannelCall || !a.Blocked {
			t.Fatalf("line %d round-tripped badly: %+v", i, a)
		}
	}
}

func TestWebhookSinkPostsAlert(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		if r.Header.Get("X-Token") != "secret" {
			t.Errorf("custom header not forwarded")
		}
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sink, err := NewWebhookSink(srv.URL, map[string]string{"X-Token": "secret"}, time.Second)
	if err != nil {
		t.Fatalf("NewWebhookSink: %v", err)
	}
	if err := sink.Deliver(context.Background(), testAlert("hook")); err != nil {
		t.Fatalf("Deliver: %v", err)
	}

	var a Alert
	if err := json.Unmarshal(gotBody, &a); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if a.ID != "hook" {
		t.Fatalf("unexpected payload id %q", a.ID)
	}
}

func TestWebhookSinkRetriesThenFails(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	sink, err := NewWebhookSink(srv.URL, nil, time.Second)
	if err != nil {
		t.Fatalf("NewWebhookSink: %v", err)
	}

	err = sink.Deliver(context.Background(), testAlert("retry"))
	if err == nil {
		t.Fatalf("expected delivery error on persistent 502")
	}
	if !strings.Contains(err.Error(), "status 502") {
		t.Fatalf("error should carry the status: %v", err)
	}
	if got := hits.Load(); got != 3 {
		t.Fatalf("expected initial attempt plus two retries, got %d", got)
	}
}

func TestWebhookSinkRequiresURL(t *testing.T) {
	if _, err := NewWebhookSink("", nil, time.Second); err == nil {
		t.Fatalf("expected error for empty url")
	}
	if _, err := NewFileSink(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
