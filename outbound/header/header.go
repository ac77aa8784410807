// Package header classifies SIP header names.
//
// Every lookup is case-insensitive and compact names (RFC 3261 Section 7.3.3)
// are treated as their full form, so "v", "via" and "VIA" all resolve to "Via".
// The classification tables are built once at package initialisation and are
// never modified afterwards; accessors return copies.
package header

import (
	"net/textproto"
	"strings"

	"github.com/sipkit/egress/internal/util"
)

// Name is a SIP header name.
type Name string

// ToCanonic returns the canonical form of the name.
func (n Name) ToCanonic() Name { return CanonicName(n) }

// Equal reports whether n and val name the same header.
// Compact and full forms are considered equal.
func (n Name) Equal(val any) bool {
	var other Name
	switch v := val.(type) {
	case Name:
		other = v
	case *Name:
		if v == nil {
			return false
		}
		other = *v
	case string:
		other = Name(v)
	default:
		return false
	}
	return CanonicName(n) == CanonicName(other)
}

func (n Name) String() string { return string(n) }

const (
	Accept              Name = "Accept"
	AcceptContact       Name = "Accept-Contact"
	AcceptEncoding      Name = "Accept-Encoding"
	AcceptLanguage      Name = "Accept-Language"
	AlertInfo           Name = "Alert-Info"
	Allow               Name = "Allow"
	AllowEvents         Name = "Allow-Events"
	AuthenticationInfo  Name = "Authentication-Info"
	Authorization       Name = "Authorization"
	CallID              Name = "Call-ID"
	CallInfo            Name = "Call-Info"
	Contact             Name = "Contact"
	ContentDisposition  Name = "Content-Disposition"
	ContentEncoding     Name = "Content-Encoding"
	ContentLanguage     Name = "Content-Language"
	ContentLength       Name = "Content-Length"
	ContentType         Name = "Content-Type"
	CSeq                Name = "CSeq"
	Date                Name = "Date"
	ErrorInfo           Name = "Error-Info"
	Event               Name = "Event"
	Expires             Name = "Expires"
	From                Name = "From"
	Identity            Name = "Identity"
	InReplyTo           Name = "In-Reply-To"
	MaxForwards         Name = "Max-Forwards"
	MIMEVersion         Name = "MIME-Version"
	MinExpires          Name = "Min-Expires"
	Organization        Name = "Organization"
	PAssertedIdentity   Name = "P-Asserted-Identity"
	PAssociatedURI      Name = "P-Associated-URI"
	Path                Name = "Path"
	PMediaAuthorization Name = "P-Media-Authorization"
	Priority            Name = "Priority"
	Privacy             Name = "Privacy"
	ProxyAuthenticate   Name = "Proxy-Authenticate"
	ProxyAuthorization  Name = "Proxy-Authorization"
	ProxyRequire        Name = "Proxy-Require"
	PVisitedNetworkID   Name = "P-Visited-Network-ID"
	RAck                Name = "RAck"
	Reason              Name = "Reason"
	RecordRoute         Name = "Record-Route"
	ReferredBy          Name = "Referred-By"
	ReferTo             Name = "Refer-To"
	RejectContact       Name = "Reject-Contact"
	ReplyTo             Name = "Reply-To"
	RequestDisposition  Name = "Request-Disposition"
	Require             Name = "Require"
	RetryAfter          Name = "Retry-After"
	Route               Name = "Route"
	RSeq                Name = "RSeq"
	SecurityClient      Name = "Security-Client"
	SecurityServer      Name = "Security-Server"
	SecurityVerify      Name = "Security-Verify"
	Server              Name = "Server"
	ServiceRoute        Name = "Service-Route"
	SessionExpires      Name = "Session-Expires"
	Subject             Name = "Subject"
	Supported           Name = "Supported"
	Timestamp           Name = "Timestamp"
	To                  Name = "To"
	Unsupported         Name = "Unsupported"
	UserAgent           Name = "User-Agent"
	Via                 Name = "Via"
	Warning             Name = "Warning"
	WWWAuthenticate     Name = "WWW-Authenticate"
	// Stack-internal headers carrying the remote address a request first arrived from.
	InitialRemoteAddr    Name = "X-Initial-Remote-Addr"
	InitialRemotePort    Name = "X-Initial-Remote-Port"
	InitialRemoteTranspt Name = "X-Initial-Remote-Transport"
)

// canonExceptions holds names whose canonical spelling differs from
// the MIME canonical key form.
var canonExceptions = map[string]Name{
	"Call-Id":              CallID,
	"Cseq":                 CSeq,
	"Mime-Version":         MIMEVersion,
	"Www-Authenticate":     WWWAuthenticate,
	"Rack":                 RAck,
	"Rseq":                 RSeq,
	"P-Associated-Uri":     PAssociatedURI,
	"P-Visited-Network-Id": PVisitedNetworkID,
}

// CanonicName converts name to the canonical form.
// The canonicalization converts the first letter and any letter following a hyphen to upper case;
// the rest are converted to lowercase, except for the well-known mixed-case names such as "Call-ID" or "CSeq".
// Any compact name is converted to its full canonical form, for example "c" converts to "Content-Type".
func CanonicName[T ~string](name T) Name {
	name = util.TrimSP(name)
	if len(name) == 1 {
		if n, ok := fullForms[lcaseByte(name[0])]; ok {
			return n
		}
	}

	canon := textproto.CanonicalMIMEHeaderKey(string(name))
	if n, ok := canonExceptions[canon]; ok {
		return n
	}
	return Name(canon)
}

func lookupKey[T ~string](name T) string {
	s := strings.TrimSpace(string(name))
	if len(s) == 1 {
		if n, ok := fullForms[lcaseByte(s[0])]; ok {
			return strings.ToLower(string(n))
		}
	}
	return strings.ToLower(s)
}

func lcaseByte(b byte) byte {
	if 'A' <= b && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
