package services

import "sync"

// Form states for one mutation invocation.
const (
	FormIdle FormState = iota
	FormPending
	FormResolved
	FormFailed
)

type FormState int

// Form guards one input form instance: at most one outstanding
// mutation at a time. A failed submission leaves the form open with
// the user's values intact so it can be retried; a resolved one closes
// it.
type Form struct {
	mu    sync.Mutex
	state FormState
	open  bool
}

func NewForm() *Form {
	return &Form{state: FormIdle, open: true}
}

// begin moves the form to pending. It reports false when a submission
// is already outstanding or the form has resolved; such submissions
// are ignored.
func (f *Form) begin() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == FormPending || f.state == FormResolved {
		return false
	}
	f.state = FormPending
	return true
}

func (f *Form) resolve() {
	f.mu.Lock()
	f.state = FormResolved
	f.open = false
	f.mu.Unlock()
}

func (f *Form) fail() {
	f.mu.Lock()
	f.state = FormFailed
	f.mu.Unlock()
}

// Busy reports whether a submission is in flight; the submit control
// shows a disabled affordance while true.
func (f *Form) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state == FormPending
}

// Open reports whether the form is still showing.
func (f *Form) Open() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

func (f *Form) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}
