package netif

import (
	"log/slog"
	"net/netip"
	"slices"
	"strings"
	"sync"

	"braces.dev/errtrace"
	"github.com/emiago/sipgo/sip"

	"github.com/sipkit/egress/internal/errorutil"
	"github.com/sipkit/egress/outbound"
)

// Registry selects listening points for outbound messages.
// The zero value is ready to use. It is safe for concurrent use.
type Registry struct {
	mu  sync.RWMutex
	lps map[outbound.Transport][]*ListeningPoint
}

var _ outbound.ListeningPointRegistry = (*Registry)(nil)

// NewRegistry creates a [Registry] tracking the listening points.
func NewRegistry(lps ...*ListeningPoint) (*Registry, error) {
	reg := new(Registry)
	for _, lp := range lps {
		if err := reg.Track(lp); err != nil {
			return nil, errtrace.Wrap(err)
		}
	}
	return reg, nil
}

// Track adds the listening point to the registry.
// Listening points are selected in the order they were tracked.
func (reg *Registry) Track(lp *ListeningPoint) error {
	if lp == nil {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid listening point"))
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	if reg.lps == nil {
		reg.lps = make(map[outbound.Transport][]*ListeningPoint)
	}
	for _, o := range reg.lps[lp.tp] {
		if o.addr == lp.addr {
			return errtrace.Wrap(errorutil.NewInvalidArgumentError("duplicate listening point %s %s", lp.tp, lp.addr))
		}
	}
	reg.lps[lp.tp] = append(reg.lps[lp.tp], lp)
	return nil
}

// Untrack removes the listening point from the registry.
func (reg *Registry) Untrack(lp *ListeningPoint) {
	if lp == nil {
		return
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	lps := slices.DeleteFunc(reg.lps[lp.tp], func(o *ListeningPoint) bool { return o == lp })
	if len(lps) == 0 {
		delete(reg.lps, lp.tp)
		return
	}
	reg.lps[lp.tp] = lps
}

// ListeningPoints returns the tracked listening points sorted by transport.
func (reg *Registry) ListeningPoints() []*ListeningPoint {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	tps := make([]outbound.Transport, 0, len(reg.lps))
	for tp := range reg.lps {
		tps = append(tps, tp)
	}
	slices.Sort(tps)

	var all []*ListeningPoint
	for _, tp := range tps {
		all = append(all, reg.lps[tp]...)
	}
	return all
}

// FindByTransport returns the first listening point serving the transport.
// The address family requested by preferIPv6 wins over the tracking order.
func (reg *Registry) FindByTransport(tp outbound.Transport, preferIPv6 bool) (outbound.ListeningPoint, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	lp := pickFamily(reg.lps[tp.ToUpper()], preferIPv6)
	if lp == nil {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(outbound.ErrNoMatchingInterface, "no %s listening point", tp.ToUpper()))
	}
	return lp, nil
}

// FindByURI returns the listening point reachable at the host and port of the URI
// over the transport the URI designates.
func (reg *Registry) FindByURI(uri sip.Uri, preferIPv6 bool) (outbound.ListeningPoint, error) {
	tp := uriTransport(uri)
	port := uri.Port
	if port == 0 {
		port = tp.DefaultPort()
	}
	ip, err := netip.ParseAddr(strings.Trim(uri.Host, "[]"))
	if err != nil {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(outbound.ErrNoMatchingInterface, "host %q is not an IP address", uri.Host))
	}

	reg.mu.RLock()
	defer reg.mu.RUnlock()

	var cands []*ListeningPoint
	for _, lp := range reg.lps[tp] {
		if int(lp.addr.Port()) == port && lp.matchHost(ip) {
			cands = append(cands, lp)
		}
	}
	lp := pickFamily(cands, preferIPv6)
	if lp == nil {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(outbound.ErrNoMatchingInterface, "no %s listening point at %s:%d", tp, ip, port))
	}
	return lp, nil
}

func pickFamily(lps []*ListeningPoint, preferIPv6 bool) *ListeningPoint {
	if len(lps) == 0 {
		return nil
	}
	for _, lp := range lps {
		if lp.advAddr.Is6() == preferIPv6 {
			return lp
		}
	}
	return lps[0]
}

func uriTransport(uri sip.Uri) outbound.Transport {
	if uri.UriParams != nil {
		if v, ok := uri.UriParams.Get("transport"); ok {
			if tp, ok := outbound.ParseTransport(v); ok {
				return tp
			}
		}
	}
	if strings.EqualFold(uri.Scheme, "sips") {
		return outbound.TransportTLS
	}
	return outbound.TransportUDP
}

func (reg *Registry) LogValue() slog.Value {
	if reg == nil {
		return slog.Value{}
	}
	lps := reg.ListeningPoints()
	attrs := make([]slog.Attr, 0, len(lps))
	for _, lp := range lps {
		attrs = append(attrs, slog.Any(string(lp.tp)+" "+lp.addr.String(), lp))
	}
	return slog.GroupValue(attrs...)
}
