package header

import "strings"

// fullForms maps RFC 3261 Section 7.3.3 and IANA registered compact forms
// to the full header names.
var fullForms = map[byte]Name{
	'a': AcceptContact,
	'b': ReferredBy,
	'c': ContentType,
	// RFC 3841 assigns d to Request-Disposition, Content-Disposition has no compact form.
	'd': RequestDisposition,
	'e': ContentEncoding,
	'f': From,
	'i': CallID,
	'j': RejectContact,
	'k': Supported,
	'l': ContentLength,
	'm': Contact,
	'o': Event,
	'r': ReferTo,
	's': Subject,
	't': To,
	'u': AllowEvents,
	'v': Via,
	'x': SessionExpires,
	'y': Identity,
}

var compactForms = func() map[string]byte {
	m := make(map[string]byte, len(fullForms))
	for c, n := range fullForms {
		m[strings.ToLower(string(n))] = c
	}
	return m
}()

// CompactFormOf returns the single-letter compact form of the full header name.
// The lookup is case-insensitive.
func CompactFormOf[T ~string](full T) (byte, bool) {
	c, ok := compactForms[strings.ToLower(strings.TrimSpace(string(full)))]
	return c, ok
}

// FullFormOf returns the full header name of the compact form.
// The lookup is case-insensitive.
func FullFormOf(compact byte) (Name, bool) {
	n, ok := fullForms[lcaseByte(compact)]
	return n, ok
}

// FullFormOfString is like [FullFormOf] but takes the compact form as text.
func FullFormOfString[T ~string](compact T) (Name, bool) {
	s := strings.TrimSpace(string(compact))
	if len(s) != 1 {
		return "", false
	}
	return FullFormOf(s[0])
}

// IsCompact reports whether name is a known compact header form.
func IsCompact[T ~string](name T) bool {
	_, ok := FullFormOfString(name)
	return ok
}
