package runner

import (
	"fmt"
	"runtime"
	"sync"
)

// Recorder collects assertion failures for one scenario. It satisfies
// testify's require.TestingT: FailNow ends the calling goroutine the same
// way testing.T.FailNow does, so it must only be called from the goroutine
// started by execute.
type Recorder struct {
	mu       sync.Mutex
	failures []string
	aborted  bool
}

// Errorf records a failure and lets the scenario continue.
func (r *Recorder) Errorf(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, fmt.Sprintf(format, args...))
}

// FailNow stops the scenario.
func (r *Recorder) FailNow() {
	r.mu.Lock()
	r.aborted = true
	if len(r.failures) == 0 {
		r.failures = append(r.failures, "scenario aborted")
	}
	r.mu.Unlock()
	runtime.Goexit()
}

// Helper is a no-op so testify treats the recorder like testing.T.
func (r *Recorder) Helper() {}

// Failed reports whether anything was recorded.
func (r *Recorder) Failed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.failures) > 0
}

// Aborted reports whether FailNow was called.
func (r *Recorder) Aborted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.aborted
}

// Failures returns a copy of the recorded messages.
func (r *Recorder) Failures() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.failures...)
}

// execute runs body on its own goroutine and waits for it, so FailNow and
// panics end only the body.
func execute(body func(*Recorder)) *Recorder {
	rec := &Recorder{}
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() {
			if p := recover(); p != nil {
				rec.Errorf("panic: %v", p)
			}
		}()
		body(rec)
	}()
	<-done
	return rec
}
