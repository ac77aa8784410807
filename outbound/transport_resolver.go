package outbound

import (
	"strings"

	"github.com/emiago/sipgo/sip"
)

// MaxUDPContentLength is the largest content length sent over UDP
// when the target URI does not name a transport.
const MaxUDPContentLength = 4096

// ResolveTransport determines the transport the message must be sent over.
//
// The first applicable rule wins:
//   - the transport of the topmost Via header;
//   - for requests with a Route header, the topmost Route URI
//     (see below; non-SIP URIs give UDP);
//   - for requests, the request URI;
//   - UDP.
//
// A SIP or SIPS URI with transport=tls gives TLS; transport=tcp or a content length
// above [MaxUDPContentLength] gives TCP; UDP otherwise.
//
// The result is cached in the message, so later calls return the same value
// without inspecting the message again. A nil message resolves to UDP.
func ResolveTransport(msg *Message) Transport {
	tp, _ := resolveTransport(msg)
	return tp
}

func resolveTransport(msg *Message) (tp Transport, cached bool) {
	if msg == nil {
		return TransportUDP, false
	}
	if tp, ok := msg.CachedTransport(); ok {
		return tp, true
	}

	tp = inspectTransport(msg)
	msg.cacheTransport(tp)
	return tp, false
}

func inspectTransport(msg *Message) Transport {
	if tp, ok := ParseTransport(msg.TopViaTransport()); ok {
		return tp
	}
	if !msg.IsRequest() {
		return TransportUDP
	}
	if u, ok := msg.RouteURI(); ok {
		return uriTransport(u, msg.ContentLength())
	}
	if u, ok := msg.RequestURI(); ok {
		return uriTransport(u, msg.ContentLength())
	}
	return TransportUDP
}

func uriTransport(u sip.Uri, contentLen int) Transport {
	if !isSIPScheme(u.Scheme) {
		return TransportUDP
	}

	var param string
	if u.UriParams != nil {
		param, _ = u.UriParams.Get("transport")
	}
	switch {
	case strings.EqualFold(param, "tls"):
		return TransportTLS
	case strings.EqualFold(param, "tcp"), contentLen > MaxUDPContentLength:
		return TransportTCP
	default:
		return TransportUDP
	}
}

func isSIPScheme(scheme string) bool {
	return strings.EqualFold(scheme, "sip") || strings.EqualFold(scheme, "sips")
}
