package outbound

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/emiago/sipgo/sip"

	"github.com/sipkit/egress/internal/log"
	"github.com/sipkit/egress/internal/types"
)

// ResponseClass is a class of responses a proxy branch waits for.
type ResponseClass int

const (
	// ResponseClassProvisional stands for 1xx responses.
	ResponseClassProvisional ResponseClass = iota + 1
	// ResponseClassFinal stands for 2xx-6xx responses.
	ResponseClassFinal
)

func (c ResponseClass) String() string {
	switch c {
	case ResponseClassProvisional:
		return "provisional"
	case ResponseClassFinal:
		return "final"
	default:
		return fmt.Sprintf("ResponseClass(%d)", int(c))
	}
}

// ResponseClassOf returns the class of the response status code.
func ResponseClassOf(statusCode int) (ResponseClass, bool) {
	switch {
	case statusCode >= 100 && statusCode < 200:
		return ResponseClassProvisional, true
	case statusCode >= 200 && statusCode < 700:
		return ResponseClassFinal, true
	default:
		return 0, false
	}
}

// ProxyBranch is one forked branch of a proxied request.
type ProxyBranch interface {
	// ID returns the branch identifier stamped into the Via header of the branch.
	ID() string
	// Target returns the request URI the branch was forked to.
	Target() sip.Uri
}

// ProxyBranchTimeoutEvent describes a response timeout of a proxy branch.
type ProxyBranchTimeoutEvent struct {
	Class  ResponseClass
	Branch ProxyBranch
}

func (e ProxyBranchTimeoutEvent) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("class", e.Class.String())}
	if e.Branch != nil {
		attrs = append(attrs, slog.String("branch", e.Branch.ID()))
	}
	return slog.GroupValue(attrs...)
}

// ProxyBranchListener receives response timeouts of proxy branches.
type ProxyBranchListener interface {
	OnProxyBranchResponseTimeout(class ResponseClass, branch ProxyBranch)
}

// ProxyBranchListenerFunc is an adapter to allow the use of ordinary functions as [ProxyBranchListener].
type ProxyBranchListenerFunc func(class ResponseClass, branch ProxyBranch)

func (f ProxyBranchListenerFunc) OnProxyBranchResponseTimeout(class ResponseClass, branch ProxyBranch) {
	f(class, branch)
}

// ProxyBranchNotifierOptions are the options of the [ProxyBranchNotifier].
type ProxyBranchNotifierOptions struct {
	// Stats is the statistics recorder.
	// If nil, no statistics are recorded.
	Stats *StatsRecorder
	// Log is the logger.
	// If nil, the [log.Default] is used.
	Log *slog.Logger
}

func (o *ProxyBranchNotifierOptions) stats() *StatsRecorder {
	if o == nil {
		return nil
	}
	return o.Stats
}

func (o *ProxyBranchNotifierOptions) log() *slog.Logger {
	if o == nil || o.Log == nil {
		return log.Default()
	}
	return o.Log
}

// ProxyBranchNotifier delivers proxy branch response timeouts to the registered listeners.
// It is safe for concurrent use.
type ProxyBranchNotifier struct {
	lsnrs types.CallbackManager[ProxyBranchListener]
	stats *StatsRecorder
	log   *slog.Logger
}

// NewProxyBranchNotifier creates a new [ProxyBranchNotifier].
// Options are optional, if nil, default values are used (see [ProxyBranchNotifierOptions]).
func NewProxyBranchNotifier(opts *ProxyBranchNotifierOptions) *ProxyBranchNotifier {
	return &ProxyBranchNotifier{
		stats: opts.stats(),
		log:   opts.log(),
	}
}

// AddListener registers the listener and returns a function that unregisters it.
func (n *ProxyBranchNotifier) AddListener(l ProxyBranchListener) (remove func()) {
	if l == nil {
		return func() {}
	}
	return n.lsnrs.Add(l)
}

// Listeners returns the number of registered listeners.
func (n *ProxyBranchNotifier) Listeners() int { return n.lsnrs.Len() }

// NotifyResponseTimeout delivers the timeout to every registered listener exactly once.
// A panicking listener does not prevent delivery to the remaining listeners.
func (n *ProxyBranchNotifier) NotifyResponseTimeout(class ResponseClass, branch ProxyBranch) {
	evt := ProxyBranchTimeoutEvent{class, branch}
	n.stats.recordTimeout(class)
	n.log.LogAttrs(context.Background(), slog.LevelDebug, "proxy branch response timeout", slog.Any("event", evt))

	for l := range n.lsnrs.All() {
		n.deliver(l, evt)
	}
}

func (n *ProxyBranchNotifier) deliver(l ProxyBranchListener, evt ProxyBranchTimeoutEvent) {
	defer func() {
		if r := recover(); r != nil {
			n.log.LogAttrs(context.Background(), slog.LevelError,
				"proxy branch listener panicked",
				slog.Any("event", evt),
				slog.Any("panic", r),
			)
		}
	}()
	l.OnProxyBranchResponseTimeout(evt.Class, evt.Branch)
}
