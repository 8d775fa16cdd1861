package studio

import "sync"

// Flow names one of the request/response cycles the controller runs
type Flow string

const (
	FlowVideo   Flow = "video"
	FlowImage   Flow = "image"
	FlowPublish Flow = "publish"
)

// FlowState is the state of a single flow
type FlowState string

const (
	StateIdle    FlowState = "idle"
	StatePending FlowState = "pending"
	StateSettled FlowState = "settled"
	StateFailed  FlowState = "failed"
)

// Event drives a flow from one state to the next
type Event string

const (
	EventSubmit  Event = "submit"
	EventInvalid Event = "invalid"
	EventSuccess Event = "success"
	EventFailure Event = "failure"
	EventRetry   Event = "retry"
)

// Next returns the state reached from s on e. Events that do not apply to s
// leave it unchanged; an invalid submission never moves a flow.
func Next(s FlowState, e Event) FlowState {
	switch e {
	case EventSubmit:
		// A submit from pending is a double submit; nothing guards against it.
		return StatePending
	case EventSuccess:
		if s == StatePending {
			return StateSettled
		}
	case EventFailure:
		if s == StatePending {
			return StateFailed
		}
	case EventRetry:
		if s == StateFailed {
			return StateIdle
		}
	}
	return s
}

// flowTracker records the state of every flow
type flowTracker struct {
	mu     sync.Mutex
	states map[Flow]FlowState
}

func newFlowTracker() *flowTracker {
	return &flowTracker{states: make(map[Flow]FlowState)}
}

func (t *flowTracker) apply(f Flow, e Event) FlowState {
	t.mu.Lock()
	defer t.mu.Unlock()
	next := Next(t.get(f), e)
	t.states[f] = next
	return next
}

func (t *flowTracker) state(f Flow) FlowState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.get(f)
}

func (t *flowTracker) get(f Flow) FlowState {
	if s, ok := t.states[f]; ok {
		return s
	}
	return StateIdle
}
