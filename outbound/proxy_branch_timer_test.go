package outbound_test

import (
	"testing"
	"time"

	"github.com/sipkit/egress/internal/log"
	"github.com/sipkit/egress/outbound"
)

func startTestTimer(t *testing.T, prov, final time.Duration) (*outbound.ProxyBranchTimer, *eventRecorder) {
	t.Helper()

	n := outbound.NewProxyBranchNotifier(&outbound.ProxyBranchNotifierOptions{Log: log.Noop})
	rec := newEventRecorder()
	n.AddListener(rec)

	tmr := outbound.StartProxyBranchTimer(
		outbound.NewBranch("sess1", "app1"),
		mustParseURI(t, "sip:bob@example.com"),
		n,
		&outbound.ProxyBranchTimerOptions{
			ProvisionalTimeout: prov,
			FinalTimeout:       final,
			Log:                log.Noop,
		},
	)
	t.Cleanup(tmr.Cancel)
	return tmr, rec
}

func waitEvent(t *testing.T, rec *eventRecorder) outbound.ProxyBranchTimeoutEvent {
	t.Helper()

	select {
	case evt := <-rec.ch:
		return evt
	case <-time.After(time.Second):
		t.Fatalf("no timeout event delivered")
		return outbound.ProxyBranchTimeoutEvent{}
	}
}

func assertNoEvent(t *testing.T, rec *eventRecorder, wait time.Duration) {
	t.Helper()

	select {
	case evt := <-rec.ch:
		t.Errorf("unexpected timeout event %v", evt.Class)
	case <-time.After(wait):
	}
}

func TestProxyBranchTimer_ProvisionalTimeout(t *testing.T) {
	t.Parallel()

	tmr, rec := startTestTimer(t, 10*time.Millisecond, time.Hour)

	evt := waitEvent(t, rec)
	if evt.Class != outbound.ResponseClassProvisional {
		t.Errorf("event class = %v, want %v", evt.Class, outbound.ResponseClassProvisional)
	}
	if evt.Branch.ID() != tmr.ID() {
		t.Errorf("event branch = %q, want %q", evt.Branch.ID(), tmr.ID())
	}
	if got, want := tmr.State(), outbound.ProxyBranchStateTimedOut; got != want {
		t.Errorf("tmr.State() = %q, want %q", got, want)
	}

	tmr.ResponseReceived(200)
	assertNoEvent(t, rec, 30*time.Millisecond)
	if got, want := tmr.State(), outbound.ProxyBranchStateTimedOut; got != want {
		t.Errorf("tmr.State() = %q, want %q", got, want)
	}
}

func TestProxyBranchTimer_FinalTimeout(t *testing.T) {
	t.Parallel()

	tmr, rec := startTestTimer(t, 10*time.Millisecond, 40*time.Millisecond)
	tmr.ResponseReceived(180)
	if got, want := tmr.State(), outbound.ProxyBranchStateProceeding; got != want {
		t.Errorf("tmr.State() = %q, want %q", got, want)
	}

	evt := waitEvent(t, rec)
	if evt.Class != outbound.ResponseClassFinal {
		t.Errorf("event class = %v, want %v", evt.Class, outbound.ResponseClassFinal)
	}
	assertNoEvent(t, rec, 30*time.Millisecond)
}

func TestProxyBranchTimer_FinalResponse(t *testing.T) {
	t.Parallel()

	tmr, rec := startTestTimer(t, 10*time.Millisecond, 20*time.Millisecond)
	tmr.ResponseReceived(486)
	tmr.ResponseReceived(42)

	if got, want := tmr.State(), outbound.ProxyBranchStateCompleted; got != want {
		t.Errorf("tmr.State() = %q, want %q", got, want)
	}
	assertNoEvent(t, rec, 50*time.Millisecond)
}

func TestProxyBranchTimer_Cancel(t *testing.T) {
	t.Parallel()

	tmr, rec := startTestTimer(t, 0, 20*time.Millisecond)
	tmr.Cancel()
	tmr.Cancel()

	if got, want := tmr.State(), outbound.ProxyBranchStateCompleted; got != want {
		t.Errorf("tmr.State() = %q, want %q", got, want)
	}
	assertNoEvent(t, rec, 50*time.Millisecond)
}
