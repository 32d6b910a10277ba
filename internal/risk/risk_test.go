package risk

import "testing"

func TestLabelForThresholds(t *testing.T) {
	cases := []struct {
		score int
		label Label
	}{
		{0, LabelSafe},
		{39, LabelSafe},
		{40, LabelSuspicious},
		{69, LabelSuspicious},
		{70, LabelScam},
		{100, LabelScam},
	}
	for _, tc := range cases {
		if got := LabelFor(tc.score); got.Label != tc.label {
			t.Fatalf("LabelFor(%d): expected %s, got %s", tc.score, tc.label, got.Label)
		}
	}
}

func TestLabelForConfidenceShape(t *testing.T) {
	// Confidence rises with the score inside the scam tier and caps at 0.99.
	if v := LabelFor(70); v.Confidence != 0.85 {
		t.Fatalf("expected 0.85 at the scam boundary, got %v", v.Confidence)
	}
	if v := LabelFor(100); v.Confidence != MaxConfidence {
		t.Fatalf("expected cap %v at score 100, got %v", MaxConfidence, v.Confidence)
	}
	if v := LabelFor(40); v.Confidence != 0.65 {
		t.Fatalf("expected 0.65 at the suspicious boundary, got %v", v.Confidence)
	}
	if v := LabelFor(0); v.Confidence != MaxConfidence {
		t.Fatalf("expected capped safe confidence at score 0, got %v", v.Confidence)
	}
}

func TestLabelForClampsOutOfRangeScores(t *testing.T) {
	if v := LabelFor(-50); v.Label != LabelSafe {
		t.Fatalf("negative score should clamp to safe, got %s", v.Label)
	}
	if v := LabelFor(500); v.Label != LabelScam {
		t.Fatalf("oversized score should clamp to scam, got %s", v.Label)
	}
}

func TestClampScore(t *testing.T) {
	cases := []struct{ in, out int }{
		{-1, 0}, {0, 0}, {50, 50}, {100, 100}, {101, 100},
	}
	for _, tc := range cases {
		if got := ClampScore(tc.in); got != tc.out {
			t.Fatalf("ClampScore(%d): expected %d, got %d", tc.in, tc.out, got)
		}
	}
}

func TestDedupeAndCap(t *testing.T) {
	in := []string{"a", "b", "a", "c", "b", "d"}
	got := DedupeAndCap(in, 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 reasons, got %d: %v", len(got), got)
	}
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestDedupeAndCapKeepsShortLists(t *testing.T) {
	got := DedupeAndCap([]string{"only"}, 4)
	if len(got) != 1 || got[0] != "only" {
		t.Fatalf("expected [only], got %v", got)
	}
	if got := DedupeAndCap(nil, 4); len(got) != 0 {
		t.Fatalf("expected empty result for nil input, got %v", got)
	}
}

func TestJitterStaysInBand(t *testing.T) {
	src := NewSource(7)
	for i := 0; i < 1000; i++ {
		v := Jitter(src, 0.70, 0.15)
		if v < 0.70 || v >= 0.85 {
			t.Fatalf("jitter escaped band [0.70,0.85): %v", v)
		}
	}
}

func TestJitterClampsAtCeiling(t *testing.T) {
	src := NewSource(7)
	for i := 0; i < 1000; i++ {
		if v := Jitter(src, 0.95, 0.20); v > MaxConfidence {
			t.Fatalf("jitter exceeded cap: %v", v)
		}
	}
}

func TestSeededSourceIsDeterministic(t *testing.T) {
	a := NewSource(42)
	b := NewSource(42)
	for i := 0; i < 100; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("same seed diverged at draw %d", i)
		}
		if a.Intn(500) != b.Intn(500) {
			t.Fatalf("same seed diverged at Intn draw %d", i)
		}
	}
}
