package clock

import (
	"sync"
	"time"
)

// Fake is a manually driven Clock for tests. Tickers it hands out only fire
// through Tick.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*fakeTicker
}

func NewFake(now time.Time) *Fake {
	return &Fake{now: now}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) Set(now time.Time) {
	f.mu.Lock()
	f.now = now
	f.mu.Unlock()
}

func (f *Fake) Advance(d time.Duration) time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
	return f.now
}

func (f *Fake) NewTicker(time.Duration) Ticker {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &fakeTicker{c: make(chan time.Time)}
	f.tickers = append(f.tickers, t)
	return t
}

// Tick advances the clock by d and delivers the new instant to every live
// ticker. It blocks until each receiver has taken the value and reports how
// many tickers were fired.
func (f *Fake) Tick(d time.Duration) int {
	now := f.Advance(d)
	f.mu.Lock()
	live := make([]*fakeTicker, 0, len(f.tickers))
	for _, t := range f.tickers {
		if !t.isStopped() {
			live = append(live, t)
		}
	}
	f.tickers = live
	f.mu.Unlock()

	fired := 0
	for _, t := range live {
		if t.deliver(now) {
			fired++
		}
	}
	return fired
}

// Tickers counts tickers that have not been stopped.
func (f *Fake) Tickers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, t := range f.tickers {
		if !t.isStopped() {
			n++
		}
	}
	return n
}

type fakeTicker struct {
	mu      sync.Mutex
	c       chan time.Time
	stopped bool
	done    chan struct{}
}

func (t *fakeTicker) C() <-chan time.Time { return t.c }

func (t *fakeTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.stopped = true
	if t.done != nil {
		close(t.done)
	}
}

func (t *fakeTicker) isStopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

func (t *fakeTicker) deliver(now time.Time) bool {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return false
	}
	if t.done == nil {
		t.done = make(chan struct{})
	}
	done := t.done
	t.mu.Unlock()
	select {
	case t.c <- now:
		return true
	case <-done:
		return false
	}
}
