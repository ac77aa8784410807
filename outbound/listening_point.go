package outbound

import "github.com/emiago/sipgo/sip"

// ListeningPoint is a local endpoint the stack receives messages on.
// Implementations must be immutable and safe for concurrent use.
type ListeningPoint interface {
	// Transport returns the transport the listening point serves.
	Transport() Transport
	// UsesStaticAddress reports whether the configured public address
	// must always be advertised.
	UsesStaticAddress() bool
	// PublicAddress returns the configured public address, if any.
	PublicAddress() (string, bool)
	// CreateViaHeader builds a Via header for the listening point with the given branch.
	CreateViaHeader(branch string, usePublic bool) *sip.ViaHeader
	// CreateContactHeader builds a Contact header pointing at the listening point.
	CreateContactHeader(displayName string, usePublic bool) *sip.ContactHeader
	// CreateRecordRouteURI builds a loose-routing URI for a Record-Route header.
	CreateRecordRouteURI(usePublic bool) sip.Uri
}

// ListeningPointRegistry selects listening points.
// Both methods return an error matching [ErrNoMatchingInterface] when nothing matches.
type ListeningPointRegistry interface {
	// FindByTransport returns a listening point serving the transport.
	FindByTransport(tp Transport, preferIPv6 bool) (ListeningPoint, error)
	// FindByURI returns the listening point bound to the host, port and transport of the URI.
	FindByURI(uri sip.Uri, preferIPv6 bool) (ListeningPoint, error)
}

// NATDetector decides whether a message leaves the private network
// and therefore must carry the public address of a listening point.
type NATDetector interface {
	UsePublicAddress(msg *Message) bool
}

// NATDetectorFunc is an adapter to allow the use of ordinary functions as [NATDetector].
type NATDetectorFunc func(msg *Message) bool

func (f NATDetectorFunc) UsePublicAddress(msg *Message) bool { return f(msg) }

// UsePublicAddress decides whether headers built for msg on lp advertise the public address.
//
// A listening point with a static address always advertises it.
// A listening point with a configured public address asks the NAT detector.
// Otherwise the local address is used.
func UsePublicAddress(msg *Message, lp ListeningPoint, nat NATDetector) bool {
	if lp == nil {
		return false
	}
	if lp.UsesStaticAddress() {
		return true
	}
	if _, ok := lp.PublicAddress(); ok {
		return nat != nil && nat.UsePublicAddress(msg)
	}
	return false
}
