package upload

import (
	"io"
	"sync"
)

// ProgressFunc receives upload progress as a percentage in [0,100].
type ProgressFunc func(percent int)

// Tracker converts byte counts into percentages. Reported values never
// decrease, repeats are suppressed, and nothing is reported after Stop.
type Tracker struct {
	mu      sync.Mutex
	fn      ProgressFunc
	total   int64
	sent    int64
	last    int
	started bool
	stopped bool
}

func NewTracker(total int64, fn ProgressFunc) *Tracker {
	return &Tracker{fn: fn, total: total}
}

// Add records n more bytes sent.
func (t *Tracker) Add(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped || t.fn == nil {
		return
	}
	t.sent += int64(n)

	pct := 100
	if t.total > 0 && t.sent < t.total {
		pct = int(t.sent * 100 / t.total)
	}
	if t.started && pct <= t.last {
		return
	}
	t.started = true
	t.last = pct
	// called under the lock so that no report can follow Stop
	t.fn(pct)
}

// Stop ends reporting. It is safe to call more than once.
func (t *Tracker) Stop() {
	t.mu.Lock()
	t.stopped = true
	t.mu.Unlock()
}

// Reader wraps r so that every read advances the tracker.
func (t *Tracker) Reader(r io.Reader) io.Reader {
	return &trackingReader{r: r, t: t}
}

type trackingReader struct {
	r io.Reader
	t *Tracker
}

func (tr *trackingReader) Read(p []byte) (int, error) {
	n, err := tr.r.Read(p)
	if n > 0 {
		tr.t.Add(n)
	}
	return n, err
}
