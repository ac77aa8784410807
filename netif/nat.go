package netif

import (
	"net/netip"
	"strings"

	"braces.dev/errtrace"

	"github.com/sipkit/egress/internal/errorutil"
	"github.com/sipkit/egress/outbound"
)

// NATMode selects a [outbound.NATDetector].
type NATMode string

const (
	// NATNever never advertises the public address of non-static listening points.
	NATNever NATMode = "never"
	// NATAlways always advertises the public address when one is configured.
	NATAlways NATMode = "always"
	// NATDestination advertises the public address to public destinations only.
	NATDestination NATMode = "destination"
)

var (
	NeverPublic  outbound.NATDetector = outbound.NATDetectorFunc(func(*outbound.Message) bool { return false })
	AlwaysPublic outbound.NATDetector = outbound.NATDetectorFunc(func(*outbound.Message) bool { return true })
	// PublicDestination advertises the public address when the next hop of the message is public.
	PublicDestination outbound.NATDetector = outbound.NATDetectorFunc(isPublicDestination)
)

// Detector returns the NAT detector of the mode.
// Empty mode means [NATDestination].
func (m NATMode) Detector() (outbound.NATDetector, error) {
	switch NATMode(strings.ToLower(string(m))) {
	case "", NATDestination:
		return PublicDestination, nil
	case NATNever:
		return NeverPublic, nil
	case NATAlways:
		return AlwaysPublic, nil
	default:
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("unknown NAT mode %q", m))
	}
}

// isPublicDestination checks the next hop of the message: the target URI host of requests,
// the topmost Via host of responses. Host names are treated as public except localhost.
func isPublicDestination(msg *outbound.Message) bool {
	var host string
	if msg.IsRequest() {
		if u, ok := msg.TargetURI(); ok {
			host = u.Host
		}
	} else {
		host = msg.TopViaHost()
	}
	host = strings.Trim(strings.TrimSpace(host), "[]")
	if host == "" {
		return false
	}

	ip, err := netip.ParseAddr(host)
	if err != nil {
		return !strings.EqualFold(host, "localhost")
	}
	ip = ip.Unmap()
	if ip.Is4() {
		return outbound.AddressOutboundness(ip.String()) == 4
	}
	return ip.IsGlobalUnicast() && !ip.IsPrivate()
}
