package model

import "testing"

func histogramSum(h Histogram) int {
	sum := 0
	for _, v := range h {
		sum += v
	}
	return sum
}

func TestFingerprint_OneIncrementPerNode(t *testing.T) {
	h := Fingerprint(basicWindows())
	if sum := histogramSum(h); sum != 3 {
		t.Errorf("expected histogram sum 3 for a 3-node tree, got %d", sum)
	}
}

func TestFingerprint_Deterministic(t *testing.T) {
	a := Fingerprint(basicWindows())
	b := Fingerprint(basicWindows())
	if a != b {
		t.Error("expected identical fingerprints for identical trees")
	}
}

func TestFingerprint_SensitiveToText(t *testing.T) {
	windows := basicWindows()
	before := Fingerprint(windows)
	windows[0].Root.Children[0].Text = "Goodbye"
	after := Fingerprint(windows)
	if before == after {
		t.Error("expected fingerprint to change when node text changes")
	}
}

func TestSimilarity_SelfIsFull(t *testing.T) {
	f := Fingerprint(basicWindows())
	if s := Similarity(f, f); s != 100 {
		t.Errorf("expected 100 for identical histograms, got %d", s)
	}
}

func TestSimilarity_EmptyIsFull(t *testing.T) {
	var zero Histogram
	if s := Similarity(zero, zero); s != 100 {
		t.Errorf("expected 100 for two empty histograms, got %d", s)
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	a := Fingerprint(basicWindows())
	windows := basicWindows()
	windows[0].Root.Children[0].Text = "Changed"
	windows[0].Root.Children = append(windows[0].Root.Children, Node{Type: "image"})
	b := Fingerprint(windows)

	if Similarity(a, b) != Similarity(b, a) {
		t.Errorf("expected symmetric similarity, got %d vs %d", Similarity(a, b), Similarity(b, a))
	}
}

func TestSimilarity_DisjointIsZero(t *testing.T) {
	var a, b Histogram
	a[0] = 10
	b[1] = 10
	if s := Similarity(a, b); s != 0 {
		t.Errorf("expected 0 for disjoint histograms, got %d", s)
	}
}

func TestSimilarity_Range(t *testing.T) {
	var a, b Histogram
	a[3] = 4
	b[3] = 2
	b[7] = 2
	s := Similarity(a, b)
	if s < 0 || s > 100 {
		t.Fatalf("similarity out of range: %d", s)
	}
	// 2 buckets differ by 2 each, total 4: 100 - (4*100)/(2*4) = 50
	if s != 50 {
		t.Errorf("expected 50, got %d", s)
	}
}

func TestIdleDetector_StreakAndReset(t *testing.T) {
	f := Fingerprint(basicWindows())
	changed := basicWindows()
	changed[0].Root.Children[0].Text = "Changed"
	g := Fingerprint(changed)

	d := NewIdleDetector(2)

	if d.Observe(f) {
		t.Error("first observation should not be idle")
	}
	if d.Observe(f) {
		t.Errorf("streak %d should not reach threshold 2 yet", d.Streak())
	}
	if !d.Observe(f) {
		t.Errorf("expected idle after streak %d", d.Streak())
	}

	if d.Observe(g) {
		t.Error("a change must reset the detector")
	}
	if d.Streak() != 0 {
		t.Errorf("expected streak 0 after change, got %d", d.Streak())
	}
}
