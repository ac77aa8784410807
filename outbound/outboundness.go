package outbound

import (
	"net/netip"
	"strings"
)

// DefaultOutboundAddress is returned by [MostOutboundAddress] for an empty candidate list.
const DefaultOutboundAddress = "127.0.0.1"

var outboundnessRanges = [...]netip.Prefix{
	netip.MustParsePrefix("127.0.0.0/8"),
	netip.MustParsePrefix("192.168.0.0/16"),
	netip.MustParsePrefix("10.0.0.0/8"),
	netip.MustParsePrefix("172.16.0.0/12"),
}

// publicOutboundness is the score of IPv4 addresses outside the private and loopback ranges.
const publicOutboundness = len(outboundnessRanges)

// AddressOutboundness scores how "outward-facing" an address literal is:
//
//	127.0.0.0/8     0
//	192.168.0.0/16  1
//	10.0.0.0/8      2
//	172.16.0.0/12   3
//	other IPv4      4
//	anything else  -1
//
// IPv4-mapped IPv6 literals are scored as IPv4. IPv6 addresses, host names
// and malformed input score -1.
func AddressOutboundness(addr string) int {
	ip, err := netip.ParseAddr(strings.TrimSpace(addr))
	if err != nil {
		return -1
	}
	ip = ip.Unmap()
	if !ip.Is4() {
		return -1
	}
	for score, p := range outboundnessRanges {
		if p.Contains(ip) {
			return score
		}
	}
	return publicOutboundness
}

// MostOutboundAddress returns the candidate with the strictly highest outboundness score.
// Ties keep the first candidate seen. An empty list returns [DefaultOutboundAddress].
func MostOutboundAddress(addrs []string) string {
	best, bestScore := DefaultOutboundAddress, -2
	for _, a := range addrs {
		if s := AddressOutboundness(a); s > bestScore {
			best, bestScore = a, s
		}
	}
	return best
}
