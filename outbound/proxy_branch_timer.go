package outbound

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/emiago/sipgo/sip"
	"github.com/qmuntal/stateless"

	"github.com/sipkit/egress/internal/log"
)

// TimeC is the default final response timeout of a proxy branch (RFC 3261 Section 16.6).
const TimeC = 3 * time.Minute

// ProxyBranchState is a state of the [ProxyBranchTimer].
type ProxyBranchState string

const (
	// ProxyBranchStateTrying means no response has been received yet.
	ProxyBranchStateTrying ProxyBranchState = "trying"
	// ProxyBranchStateProceeding means a provisional response has been received.
	ProxyBranchStateProceeding ProxyBranchState = "proceeding"
	// ProxyBranchStateCompleted means a final response has been received or the branch was cancelled.
	ProxyBranchStateCompleted ProxyBranchState = "completed"
	// ProxyBranchStateTimedOut means a response timer has fired.
	ProxyBranchStateTimedOut ProxyBranchState = "timed_out"
)

const (
	brEvtRecv1xx    = "recv_1xx"
	brEvtRecvFinal  = "recv_final"
	brEvtTimer1xx   = "timer_1xx"
	brEvtTimerFinal = "timer_final"
	brEvtCancel     = "cancel"
)

// ProxyBranchTimerOptions are the options of the [ProxyBranchTimer].
type ProxyBranchTimerOptions struct {
	// ProvisionalTimeout is the time to wait for the first provisional response.
	// If zero, no provisional response timer is armed.
	ProvisionalTimeout time.Duration
	// FinalTimeout is the time to wait for a final response.
	// If zero, the [TimeC] is used.
	FinalTimeout time.Duration
	// Log is the logger.
	// If nil, the [log.Default] is used.
	Log *slog.Logger
}

func (o *ProxyBranchTimerOptions) provTimeout() time.Duration {
	if o == nil || o.ProvisionalTimeout < 0 {
		return 0
	}
	return o.ProvisionalTimeout
}

func (o *ProxyBranchTimerOptions) finalTimeout() time.Duration {
	if o == nil || o.FinalTimeout <= 0 {
		return TimeC
	}
	return o.FinalTimeout
}

func (o *ProxyBranchTimerOptions) log() *slog.Logger {
	if o == nil || o.Log == nil {
		return log.Default()
	}
	return o.Log
}

// ProxyBranchTimer watches the response timers of one proxy branch.
//
// When a timer fires before a response of the matching class arrives,
// the notifier receives exactly one timeout for the branch. After the first
// timeout, a final response or a cancellation, the timer is inert.
type ProxyBranchTimer struct {
	id       string
	target   sip.Uri
	notifier *ProxyBranchNotifier
	log      *slog.Logger

	mu       sync.Mutex
	fsm      *stateless.StateMachine
	tmr1xx   *time.Timer
	tmrFinal *time.Timer
	pending  ResponseClass
}

// StartProxyBranchTimer creates a [ProxyBranchTimer] for the branch and arms its timers.
// Options are optional, if nil, default values are used (see [ProxyBranchTimerOptions]).
func StartProxyBranchTimer(
	id string,
	target sip.Uri,
	notifier *ProxyBranchNotifier,
	opts *ProxyBranchTimerOptions,
) *ProxyBranchTimer {
	t := &ProxyBranchTimer{
		id:       id,
		target:   target,
		notifier: notifier,
		log:      opts.log(),
	}
	t.initFSM()

	t.mu.Lock()
	defer t.mu.Unlock()
	if d := opts.provTimeout(); d > 0 {
		t.tmr1xx = time.AfterFunc(d, func() { t.fire(brEvtTimer1xx) })
	}
	t.tmrFinal = time.AfterFunc(opts.finalTimeout(), func() { t.fire(brEvtTimerFinal) })
	return t
}

func (t *ProxyBranchTimer) initFSM() {
	t.fsm = stateless.NewStateMachine(ProxyBranchStateTrying)

	t.fsm.Configure(ProxyBranchStateTrying).
		Permit(brEvtRecv1xx, ProxyBranchStateProceeding).
		Permit(brEvtRecvFinal, ProxyBranchStateCompleted).
		Permit(brEvtTimer1xx, ProxyBranchStateTimedOut).
		Permit(brEvtTimerFinal, ProxyBranchStateTimedOut).
		Permit(brEvtCancel, ProxyBranchStateCompleted)

	t.fsm.Configure(ProxyBranchStateProceeding).
		OnEntry(t.actProceeding).
		Ignore(brEvtRecv1xx).
		Ignore(brEvtTimer1xx).
		Permit(brEvtRecvFinal, ProxyBranchStateCompleted).
		Permit(brEvtTimerFinal, ProxyBranchStateTimedOut).
		Permit(brEvtCancel, ProxyBranchStateCompleted)

	t.fsm.Configure(ProxyBranchStateCompleted).
		OnEntry(t.actStopTimers).
		Ignore(brEvtRecv1xx).
		Ignore(brEvtRecvFinal).
		Ignore(brEvtTimer1xx).
		Ignore(brEvtTimerFinal).
		Ignore(brEvtCancel)

	t.fsm.Configure(ProxyBranchStateTimedOut).
		OnEntry(t.actStopTimers).
		OnEntryFrom(brEvtTimer1xx, t.actTimedOut(ResponseClassProvisional)).
		OnEntryFrom(brEvtTimerFinal, t.actTimedOut(ResponseClassFinal)).
		Ignore(brEvtRecv1xx).
		Ignore(brEvtRecvFinal).
		Ignore(brEvtTimer1xx).
		Ignore(brEvtTimerFinal).
		Ignore(brEvtCancel)
}

// ID returns the branch identifier.
func (t *ProxyBranchTimer) ID() string { return t.id }

// Target returns the request URI of the branch.
func (t *ProxyBranchTimer) Target() sip.Uri { return t.target }

// State returns the current state.
func (t *ProxyBranchTimer) State() ProxyBranchState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fsm.MustState().(ProxyBranchState) //nolint:forcetypeassert
}

// ResponseReceived passes a response status code received on the branch.
// Status codes outside 100-699 are ignored.
func (t *ProxyBranchTimer) ResponseReceived(statusCode int) {
	class, ok := ResponseClassOf(statusCode)
	if !ok {
		return
	}
	if class == ResponseClassProvisional {
		t.fire(brEvtRecv1xx)
	} else {
		t.fire(brEvtRecvFinal)
	}
}

// Cancel stops the timers without reporting a timeout.
func (t *ProxyBranchTimer) Cancel() { t.fire(brEvtCancel) }

func (t *ProxyBranchTimer) fire(evt string) {
	t.mu.Lock()
	if err := t.fsm.FireCtx(context.Background(), evt); err != nil {
		t.mu.Unlock()
		panic(fmt.Errorf("fire %q in state %q: %w", evt, t.fsm.MustState(), err))
	}
	class := t.pending
	t.pending = 0
	t.mu.Unlock()

	if class != 0 && t.notifier != nil {
		t.notifier.NotifyResponseTimeout(class, t)
	}
}

func (t *ProxyBranchTimer) actProceeding(ctx context.Context, _ ...any) error {
	if t.tmr1xx != nil && t.tmr1xx.Stop() {
		t.log.LogAttrs(ctx, slog.LevelDebug, "provisional response timer stopped", slog.Any("branch", t))
	}
	return nil
}

func (t *ProxyBranchTimer) actStopTimers(ctx context.Context, _ ...any) error {
	if t.tmr1xx != nil {
		t.tmr1xx.Stop()
	}
	if t.tmrFinal != nil {
		t.tmrFinal.Stop()
	}
	t.log.LogAttrs(ctx, slog.LevelDebug, "proxy branch timers stopped", slog.Any("branch", t))
	return nil
}

func (t *ProxyBranchTimer) actTimedOut(class ResponseClass) func(context.Context, ...any) error {
	return func(context.Context, ...any) error {
		t.pending = class
		return nil
	}
}

func (t *ProxyBranchTimer) LogValue() slog.Value {
	if t == nil {
		return slog.Value{}
	}
	return slog.GroupValue(
		slog.String("id", t.id),
		slog.String("target", t.target.String()),
	)
}
