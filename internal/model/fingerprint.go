package model

// Histogram is a fixed-size structural summary of a tree. Each node in the
// tree contributes exactly one increment to one bucket, so the bucket sum
// equals the node count.
type Histogram [256]int

// fingerprint hash parameters. Stable across releases: histograms are
// compared across snapshots, so the fold must never change shape.
const (
	hashSeed       = 17
	hashMultiplier = 31
)

// Fingerprint reduces a snapshot's window trees to a structural histogram.
// Each node's (type, text, bounds, child count) is combined via a stable
// polynomial hash and folded into one of 256 buckets.
func Fingerprint(windows []Window) Histogram {
	var h Histogram
	for i := range windows {
		fingerprintNode(&windows[i].Root, &h)
	}
	return h
}

func fingerprintNode(n *Node, h *Histogram) {
	v := hashSeed
	v = foldString(v, n.Type)
	v = foldString(v, n.Text)
	for _, b := range n.Bounds {
		v = v*hashMultiplier + b
	}
	v = v*hashMultiplier + len(n.Children)

	h[v&0xff]++

	for i := range n.Children {
		fingerprintNode(&n.Children[i], h)
	}
}

func foldString(v int, s string) int {
	for i := 0; i < len(s); i++ {
		v = v*hashMultiplier + int(s[i])
	}
	return v
}

// Similarity compares two histograms and returns a percentage in [0, 100].
// Two empty histograms are 100% similar. Symmetric by construction.
func Similarity(a, b Histogram) int {
	sumA, sumB := 0, 0
	for i := range a {
		sumA += a[i]
		sumB += b[i]
	}
	total := sumA
	if sumB > total {
		total = sumB
	}
	if total == 0 {
		return 100
	}

	diff := 0
	for i := range a {
		d := a[i] - b[i]
		if d < 0 {
			d = -d
		}
		diff += d
	}

	s := 100 - (diff*100)/(2*total)
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// IdleDetector counts consecutive identical fingerprints. The UI is
// considered idle once the streak reaches the configured threshold; any
// change resets the streak to zero.
type IdleDetector struct {
	threshold int
	last      Histogram
	primed    bool
	streak    int
}

// NewIdleDetector returns a detector that reports idle after threshold
// consecutive observations matching the one before them.
func NewIdleDetector(threshold int) *IdleDetector {
	return &IdleDetector{threshold: threshold}
}

// Observe feeds the next fingerprint and reports whether the UI is idle.
func (d *IdleDetector) Observe(h Histogram) bool {
	if d.primed && h == d.last {
		d.streak++
	} else {
		d.streak = 0
	}
	d.last = h
	d.primed = true
	return d.streak >= d.threshold
}

// Streak returns the current consecutive-match count.
func (d *IdleDetector) Streak() int {
	return d.streak
}
