// Package scanner turns the character bursts a barcode gun injects into
// single dispatched codes. Each input chunk resets a short deadline; the
// buffered text is dispatched only when the deadline passes quietly.
package scanner

import (
	"strings"
	"sync"
	"time"
)

// DefaultWindow is long enough to swallow inter-character gaps of a
// hardware scanner and short enough to feel instant to an operator.
const DefaultWindow = 80 * time.Millisecond

// Reader buffers raw scanner input and fires the dispatch callback
// exactly once per completed scan. Safe for concurrent use. The
// callback runs on a timer goroutine and must not call back into the
// Reader.
type Reader struct {
	mu       sync.Mutex
	window   time.Duration
	buf      strings.Builder
	timer    *time.Timer
	gen      uint64
	stopped  bool
	dispatch func(code string)
}

// NewReader builds a Reader dispatching completed scans to dispatch.
func NewReader(window time.Duration, dispatch func(code string)) *Reader {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Reader{window: window, dispatch: dispatch}
}

// Input appends a chunk and pushes the dispatch deadline out.
func (r *Reader) Input(chunk string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped || chunk == "" {
		return
	}
	r.buf.WriteString(chunk)
	r.gen++
	gen := r.gen
	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.window, func() { r.fire(gen) })
}

// fire dispatches the buffer if no newer activity superseded gen.
func (r *Reader) fire(gen uint64) {
	r.mu.Lock()
	if r.stopped || gen != r.gen || r.buf.Len() == 0 {
		r.mu.Unlock()
		return
	}
	code := r.buf.String()
	r.buf.Reset()
	r.timer = nil
	r.mu.Unlock()
	r.dispatch(code)
}

// Flush dispatches whatever is pending immediately. Used when the
// scanner sends an explicit terminator.
func (r *Reader) Flush() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.gen++ // invalidates any armed timer
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	code := r.buf.String()
	r.buf.Reset()
	r.mu.Unlock()
	if code != "" {
		r.dispatch(code)
	}
}

// Stop drops pending input and prevents any further dispatch.
func (r *Reader) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopped = true
	r.gen++
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.buf.Reset()
}
