package header

import (
	"slices"
	"strings"
)

// ianaTopLevelTypes lists the top-level media types registered by IANA.
var ianaTopLevelTypes = []string{
	"application", "audio", "example", "image", "message", "model", "multipart", "text", "video",
}

// IANAContentTypes returns the registered top-level media types.
func IANAContentTypes() []string { return slices.Clone(ianaTopLevelTypes) }

// IsIANAContentType reports whether top is a registered top-level media type.
// The comparison is case-insensitive.
func IsIANAContentType(top string) bool {
	top = strings.TrimSpace(top)
	for _, t := range ianaTopLevelTypes {
		if strings.EqualFold(t, top) {
			return true
		}
	}
	return false
}

// CheckContentType reports whether a Content-Type like value such as
// "application/sdp; charset=utf-8" has a registered top-level type and a non-empty subtype.
func CheckContentType(value string) bool {
	if i := strings.IndexByte(value, ';'); i >= 0 {
		value = value[:i]
	}
	top, sub, ok := strings.Cut(strings.TrimSpace(value), "/")
	if !ok || strings.TrimSpace(sub) == "" {
		return false
	}
	return IsIANAContentType(top)
}
