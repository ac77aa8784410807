package outbound

import (
	"strings"

	"github.com/sipkit/egress/internal/util"
)

// Transport is a SIP transport protocol name, e.g. "UDP".
type Transport string

const (
	TransportUDP Transport = "UDP"
	TransportTCP Transport = "TCP"
	TransportTLS Transport = "TLS"
)

// ParseTransport normalizes a transport token, e.g. from a Via header or a "transport" URI parameter.
// Empty input returns false.
func ParseTransport(s string) (Transport, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return Transport(strings.ToUpper(s)), true
}

func (t Transport) ToUpper() Transport { return util.UCase(t) }

// Equal reports whether t and val are the same transport, ignoring case.
func (t Transport) Equal(val any) bool {
	var other Transport
	switch v := val.(type) {
	case Transport:
		other = v
	case *Transport:
		if v == nil {
			return false
		}
		other = *v
	case string:
		other = Transport(v)
	default:
		return false
	}
	return util.EqFold(t, other)
}

// IsReliable reports whether the transport is connection oriented.
func (t Transport) IsReliable() bool { return !t.Equal(TransportUDP) }

// IsSecured reports whether the transport is encrypted.
func (t Transport) IsSecured() bool { return t.Equal(TransportTLS) }

// DefaultPort returns the default port of the transport.
func (t Transport) DefaultPort() int {
	if t.IsSecured() {
		return 5061
	}
	return 5060
}

func (t Transport) String() string { return string(t) }
