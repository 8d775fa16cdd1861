package studio

import "testing"

func TestNext(t *testing.T) {
	cases := []struct {
		from  FlowState
		event Event
		want  FlowState
	}{
		{StateIdle, EventSubmit, StatePending},
		{StateIdle, EventInvalid, StateIdle},
		{StatePending, EventSuccess, StateSettled},
		{StatePending, EventFailure, StateFailed},
		{StateFailed, EventRetry, StateIdle},
		{StateFailed, EventSubmit, StatePending},
		{StateSettled, EventSubmit, StatePending},
		{StatePending, EventSubmit, StatePending},
		{StateIdle, EventSuccess, StateIdle},
		{StateSettled, EventFailure, StateSettled},
		{StateSettled, EventRetry, StateSettled},
		{StatePending, EventInvalid, StatePending},
	}

	for _, c := range cases {
		if got := Next(c.from, c.event); got != c.want {
			t.Fatalf("Next(%q, %q) = %q; want %q", c.from, c.event, got, c.want)
		}
	}
}

func TestFlowTrackerDefaultsToIdle(t *testing.T) {
	tr := newFlowTracker()
	if s := tr.state(FlowPublish); s != StateIdle {
		t.Fatalf("initial state = %q; want idle", s)
	}
	tr.apply(FlowPublish, EventSubmit)
	if s := tr.state(FlowPublish); s != StatePending {
		t.Fatalf("state = %q; want pending", s)
	}
	if s := tr.state(FlowVideo); s != StateIdle {
		t.Fatalf("flows must be independent, video = %q", s)
	}
}
