package progress

import "sync"

// Event is a single report captured by a Recorder. Show calls are recorded
// with Narrative set.
type Event struct {
	Narrative bool
	State     State
	Text      string
}

// Recorder keeps every report in memory. It is used by tests and by callers
// that want to inspect what a run reported.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Show implements Reporter.
func (r *Recorder) Show(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Narrative: true, Text: text})
}

// Report implements Reporter.
func (r *Recorder) Report(state State, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{State: state, Text: text})
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Narrative returns the text of every Show call in order.
func (r *Recorder) Narrative() []string {
	var out []string
	for _, e := range r.Events() {
		if e.Narrative {
			out = append(out, e.Text)
		}
	}
	return out
}

// WithState returns the text of every report in the given state.
func (r *Recorder) WithState(state State) []string {
	var out []string
	for _, e := range r.Events() {
		if !e.Narrative && e.State == state {
			out = append(out, e.Text)
		}
	}
	return out
}
