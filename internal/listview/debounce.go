package listview

import (
	"sync"
	"time"
)

const DefaultDebounce = 500 * time.Millisecond

// Debouncer forwards only the last value submitted within a quiet window.
type Debouncer struct {
	delay   time.Duration
	forward func(string)

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	current string
	pending bool
	stopped bool
}

func NewDebouncer(delay time.Duration, forward func(string)) *Debouncer {
	if delay < 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay, forward: forward}
}

// Submit records text and restarts the window. A zero delay forwards
// immediately.
func (d *Debouncer) Submit(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	d.current = text
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	if d.delay == 0 {
		d.pending = false
		d.forward(text)
		return
	}

	d.pending = true
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Flush forwards the pending value now instead of waiting for the window.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped || !d.pending {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	d.pending = false
	d.forward(d.current)
}

// Current is the last submitted value, forwarded or not.
func (d *Debouncer) Current() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Stop cancels the pending value. After Stop returns nothing is forwarded,
// including a timer that is already firing.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped || gen != d.gen {
		return
	}
	d.timer = nil
	d.pending = false
	d.forward(d.current)
}
