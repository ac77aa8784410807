package header

import (
	"slices"
	"strings"
)

var allowedSchemes = []string{"sip", "sips", "http", "https", "tel", "tels", "mailto"}

// AllowedSchemes returns the URI schemes accepted by [CheckScheme].
func AllowedSchemes() []string { return slices.Clone(allowedSchemes) }

// CheckScheme reports whether an address, optionally enclosed in angle brackets,
// starts with one of the allowed URI schemes.
// The comparison is case-insensitive. Inputs shorter than a scheme never match.
func CheckScheme(addr string) bool {
	addr = strings.TrimSpace(addr)
	if i := strings.IndexByte(addr, '<'); i >= 0 {
		addr = addr[i+1:]
		if j := strings.IndexByte(addr, '>'); j >= 0 {
			addr = addr[:j]
		}
	}
	addr = strings.TrimSpace(addr)

	for _, s := range allowedSchemes {
		if len(addr) >= len(s) && strings.EqualFold(addr[:len(s)], s) {
			return true
		}
	}
	return false
}
