package netif

import (
	"log/slog"
	"net"
	"net/netip"
	"strings"

	"braces.dev/errtrace"
	"github.com/emiago/sipgo/sip"

	"github.com/sipkit/egress/internal/errorutil"
	"github.com/sipkit/egress/outbound"
)

const (
	// MinPort is the lowest port a configured listening point may bind.
	MinPort = 1024
	// MaxPort is the highest port a configured listening point may bind.
	MaxPort = 65535
	// WildcardAddress binds a listening point on all local IPv4 interfaces.
	WildcardAddress = "0.0.0.0"
)

// ListeningPointOptions are the options of the [ListeningPoint].
type ListeningPointOptions struct {
	// PublicAddr is the address advertised to peers outside the private network.
	PublicAddr netip.Addr
	// StaticAddress makes the listening point always advertise PublicAddr.
	StaticAddress bool
	// LocalAddrs are candidates for the advertised address of a wildcard listening point.
	// If empty, the addresses of the system network interfaces are used.
	LocalAddrs []netip.Addr
}

func (o *ListeningPointOptions) publicAddr() netip.Addr {
	if o == nil {
		return netip.Addr{}
	}
	return o.PublicAddr.Unmap()
}

func (o *ListeningPointOptions) staticAddr() bool { return o != nil && o.StaticAddress }

func (o *ListeningPointOptions) localAddrs() []netip.Addr {
	if o == nil || len(o.LocalAddrs) == 0 {
		return systemAddrs()
	}
	return o.LocalAddrs
}

// ListeningPoint is an immutable local endpoint implementing [outbound.ListeningPoint].
type ListeningPoint struct {
	tp       outbound.Transport
	addr     netip.AddrPort
	advAddr  netip.Addr
	pubAddr  netip.Addr
	isStatic bool
}

var _ outbound.ListeningPoint = (*ListeningPoint)(nil)

// NewListeningPoint creates a new [ListeningPoint] bound to addr.
// Options are optional, if nil, default values are used (see [ListeningPointOptions]).
//
// A wildcard address advertises the most outbound of the local addresses.
func NewListeningPoint(tp outbound.Transport, addr netip.AddrPort, opts *ListeningPointOptions) (*ListeningPoint, error) {
	tp, ok := outbound.ParseTransport(string(tp))
	if !ok {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid transport"))
	}
	if !addr.IsValid() || addr.Port() == 0 {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid address %q", addr))
	}

	lp := &ListeningPoint{
		tp:       tp,
		addr:     netip.AddrPortFrom(addr.Addr().Unmap(), addr.Port()),
		pubAddr:  opts.publicAddr(),
		isStatic: opts.staticAddr(),
	}
	if lp.isStatic && !lp.pubAddr.IsValid() {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("static address requires a public address"))
	}

	lp.advAddr = lp.addr.Addr()
	if lp.advAddr.IsUnspecified() {
		lp.advAddr = mostOutboundAddr(opts.localAddrs())
	}
	return lp, nil
}

func mostOutboundAddr(addrs []netip.Addr) netip.Addr {
	cands := make([]string, 0, len(addrs))
	for _, a := range addrs {
		cands = append(cands, a.Unmap().String())
	}
	return netip.MustParseAddr(outbound.MostOutboundAddress(cands))
}

func systemAddrs() []netip.Addr {
	ifAddrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil
	}
	addrs := make([]netip.Addr, 0, len(ifAddrs))
	for _, a := range ifAddrs {
		if pfx, err := netip.ParsePrefix(a.String()); err == nil {
			addrs = append(addrs, pfx.Addr())
		}
	}
	return addrs
}

func (lp *ListeningPoint) Transport() outbound.Transport { return lp.tp }

// Addr returns the local address the listening point is bound to.
func (lp *ListeningPoint) Addr() netip.AddrPort { return lp.addr }

// AdvertisedAddr returns the local address written into headers.
// It differs from the bound address for wildcard listening points only.
func (lp *ListeningPoint) AdvertisedAddr() netip.Addr { return lp.advAddr }

func (lp *ListeningPoint) UsesStaticAddress() bool { return lp.isStatic }

func (lp *ListeningPoint) PublicAddress() (string, bool) {
	if !lp.pubAddr.IsValid() {
		return "", false
	}
	return lp.pubAddr.String(), true
}

// CreateViaHeader builds a Via header with the sent-by of the listening point.
func (lp *ListeningPoint) CreateViaHeader(branch string, usePublic bool) *sip.ViaHeader {
	params := sip.NewParams()
	if branch != "" {
		params.Add("branch", branch)
	}
	return &sip.ViaHeader{
		ProtocolName:    "SIP",
		ProtocolVersion: "2.0",
		Transport:       string(lp.tp),
		Host:            lp.host(usePublic),
		Port:            int(lp.addr.Port()),
		Params:          params,
	}
}

// CreateContactHeader builds a Contact header with the URI of the listening point.
func (lp *ListeningPoint) CreateContactHeader(displayName string, usePublic bool) *sip.ContactHeader {
	return &sip.ContactHeader{
		DisplayName: displayName,
		Address:     lp.uri(usePublic),
		Params:      sip.NewParams(),
	}
}

// CreateRecordRouteURI builds a loose-routing URI of the listening point.
func (lp *ListeningPoint) CreateRecordRouteURI(usePublic bool) sip.Uri {
	u := lp.uri(usePublic)
	u.UriParams.Add("lr", "")
	return u
}

func (lp *ListeningPoint) uri(usePublic bool) sip.Uri {
	u := sip.Uri{
		Scheme:    "sip",
		Host:      lp.host(usePublic),
		Port:      int(lp.addr.Port()),
		UriParams: sip.NewParams(),
		Headers:   sip.NewParams(),
	}
	if lp.tp.IsSecured() {
		u.Scheme = "sips"
	}
	if !lp.tp.Equal(outbound.TransportUDP) {
		u.UriParams.Add("transport", strings.ToLower(string(lp.tp)))
	}
	return u
}

func (lp *ListeningPoint) host(usePublic bool) string {
	addr := lp.advAddr
	if usePublic && lp.pubAddr.IsValid() {
		addr = lp.pubAddr
	}
	if addr.Is6() {
		return "[" + addr.String() + "]"
	}
	return addr.String()
}

// matchHost reports whether ip is one of the addresses the listening point is reachable at.
func (lp *ListeningPoint) matchHost(ip netip.Addr) bool {
	ip = ip.Unmap()
	return ip == lp.addr.Addr() || ip == lp.advAddr || (lp.pubAddr.IsValid() && ip == lp.pubAddr)
}

func (lp *ListeningPoint) LogValue() slog.Value {
	if lp == nil {
		return slog.Value{}
	}
	attrs := []slog.Attr{
		slog.String("transport", string(lp.tp)),
		slog.String("addr", lp.addr.String()),
		slog.String("advertised", lp.advAddr.String()),
	}
	if lp.pubAddr.IsValid() {
		attrs = append(attrs, slog.String("public", lp.pubAddr.String()), slog.Bool("static", lp.isStatic))
	}
	return slog.GroupValue(attrs...)
}
