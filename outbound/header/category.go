package header

import (
	"slices"
	"strings"
)

// Category is a set of header classes.
type Category uint8

const (
	// CategorySystem marks headers owned by the stack. Applications must not modify them.
	CategorySystem Category = 1 << iota
	// CategoryAddress marks headers whose value is a name-addr / addr-spec.
	CategoryAddress
	// CategoryParameterable marks headers that carry ";name=value" parameters.
	CategoryParameterable
	// CategorySingleton marks headers that may appear at most once.
	CategorySingleton
	// CategoryList marks headers whose values may be comma-joined on one line.
	CategoryList
)

// CategoryNone is the classification of unknown headers.
const CategoryNone Category = 0

var categoryNames = [...]string{"system", "address", "parameterable", "singleton", "list"}

// Has reports whether c contains every class of o.
func (c Category) Has(o Category) bool { return o != 0 && c&o == o }

func (c Category) String() string {
	if c == CategoryNone {
		return "none"
	}
	parts := make([]string, 0, len(categoryNames))
	for i, name := range categoryNames {
		if c&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}

var (
	systemNames = []Name{
		From, To, CallID, CSeq, Via, Route, RecordRoute, Path, RSeq, RAck,
		InitialRemoteAddr, InitialRemotePort, InitialRemoteTranspt,
	}
	addressNames = []Name{
		From, To, Contact, Route, RecordRoute, ReplyTo, AlertInfo, CallInfo, ErrorInfo,
		ReferTo, PAssertedIdentity,
	}
	parameterableOnlyNames = []Name{
		Accept, AcceptEncoding, ContentDisposition, ContentType, RetryAfter, Via,
	}
	singletonNames = []Name{
		From, To, CSeq, CallID, MaxForwards, ContentLength, ContentDisposition, ContentType,
		Date, Expires, MinExpires, MIMEVersion, Organization, Priority, ReplyTo, RetryAfter,
		Server, Subject, Timestamp, UserAgent, WWWAuthenticate, ProxyAuthenticate,
	}
	// Authentication challenge and credential headers are absent:
	// their single values carry commas themselves.
	listNames = []Name{
		Accept, AcceptEncoding, AcceptLanguage, AlertInfo, Allow, AllowEvents, CallInfo,
		Contact, ContentEncoding, ContentLanguage, ErrorInfo, InReplyTo, ProxyRequire,
		Reason, RecordRoute, Require, Route, Supported, Unsupported, Via, Warning,
		PAssertedIdentity, PAssociatedURI, Path, PMediaAuthorization, Privacy,
		PVisitedNetworkID, SecurityClient, SecurityServer, SecurityVerify, ServiceRoute,
	}
)

var categories = buildCategories()

func buildCategories() map[string]Category {
	m := make(map[string]Category, 64)
	add := func(c Category, names []Name) {
		for _, n := range names {
			m[strings.ToLower(string(n))] |= c
		}
	}
	add(CategorySystem, systemNames)
	add(CategoryAddress, addressNames)
	add(CategoryParameterable, addressNames)
	add(CategoryParameterable, parameterableOnlyNames)
	add(CategorySingleton, singletonNames)
	add(CategoryList, listNames)
	return m
}

// Classify returns every class the named header belongs to.
// Unknown names return [CategoryNone].
func Classify[T ~string](name T) Category { return categories[lookupKey(name)] }

// IsSystem reports whether the header is owned by the stack.
func IsSystem[T ~string](name T) bool { return Classify(name).Has(CategorySystem) }

// IsAddress reports whether the header value is an address.
func IsAddress[T ~string](name T) bool { return Classify(name).Has(CategoryAddress) }

// IsParameterable reports whether the header value carries parameters.
func IsParameterable[T ~string](name T) bool { return Classify(name).Has(CategoryParameterable) }

// IsSingleton reports whether the header may appear at most once in a message.
func IsSingleton[T ~string](name T) bool { return Classify(name).Has(CategorySingleton) }

// IsList reports whether comma-separated values of the header may be split
// into individual header values.
func IsList[T ~string](name T) bool { return Classify(name).Has(CategoryList) }

// Names returns the canonical names of headers that belong to every class of c,
// sorted alphabetically.
func Names(c Category) []Name {
	if c == CategoryNone {
		return nil
	}
	var names []Name
	for key, cat := range categories {
		if cat.Has(c) {
			names = append(names, CanonicName(key))
		}
	}
	slices.Sort(names)
	return names
}
