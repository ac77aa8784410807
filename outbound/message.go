package outbound

import (
	"log/slog"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/emiago/sipgo/sip"

	"github.com/sipkit/egress/outbound/header"
)

type sipMessage interface {
	GetHeader(name string) sip.Header
	Body() []byte
}

// Message is an outbound SIP request or response together with
// the per-message state of the outbound layer.
//
// The transport resolved for the message is cached in the message itself,
// so repeated resolutions during one send operation return the same value.
// A nil *Message is a valid argument everywhere in the package and stands for "no message context".
type Message struct {
	msg sipMessage
	req *sip.Request
	res *sip.Response

	tp atomic.Pointer[Transport]
}

// NewRequestMessage wraps an outbound request.
func NewRequestMessage(req *sip.Request) *Message {
	if req == nil {
		return nil
	}
	return &Message{msg: req, req: req}
}

// NewResponseMessage wraps an outbound response.
func NewResponseMessage(res *sip.Response) *Message {
	if res == nil {
		return nil
	}
	return &Message{msg: res, res: res}
}

// IsRequest reports whether the message is a request.
func (m *Message) IsRequest() bool { return m != nil && m.req != nil }

// Request returns the wrapped request.
func (m *Message) Request() (*sip.Request, bool) {
	if m == nil || m.req == nil {
		return nil, false
	}
	return m.req, true
}

// Response returns the wrapped response.
func (m *Message) Response() (*sip.Response, bool) {
	if m == nil || m.res == nil {
		return nil, false
	}
	return m.res, true
}

// Method returns the request method, or an empty method for responses.
func (m *Message) Method() sip.RequestMethod {
	if !m.IsRequest() {
		return ""
	}
	return m.req.Method
}

// Header returns the topmost header with the given name or nil.
// Compact names are accepted.
func (m *Message) Header(name string) sip.Header {
	if m == nil || m.msg == nil {
		return nil
	}
	return m.msg.GetHeader(string(header.CanonicName(name)))
}

// TopViaTransport returns the transport of the topmost Via header,
// or an empty string if there is no Via.
func (m *Message) TopViaTransport() string {
	h := m.Header(string(header.Via))
	if h == nil {
		return ""
	}
	if via, ok := h.(*sip.ViaHeader); ok {
		return via.Transport
	}
	tp, _ := parseViaValue(h.Value())
	return tp
}

// TopViaHost returns the address the topmost Via asks responses to be sent to:
// the "received" parameter if present, the sent-by host otherwise.
func (m *Message) TopViaHost() string {
	h := m.Header(string(header.Via))
	if h == nil {
		return ""
	}
	if via, ok := h.(*sip.ViaHeader); ok {
		if via.Params != nil {
			if rcvd, ok := via.Params.Get("received"); ok && rcvd != "" {
				return rcvd
			}
		}
		return via.Host
	}
	_, host := parseViaValue(h.Value())
	return host
}

// RouteURI returns the URI of the topmost Route header.
func (m *Message) RouteURI() (sip.Uri, bool) {
	h := m.Header(string(header.Route))
	if h == nil {
		return sip.Uri{}, false
	}
	if rt, ok := h.(*sip.RouteHeader); ok {
		return rt.Address, true
	}
	return parseAddrValue(h.Value())
}

// RequestURI returns the request-target URI. Responses have none.
func (m *Message) RequestURI() (sip.Uri, bool) {
	if !m.IsRequest() {
		return sip.Uri{}, false
	}
	return m.req.Recipient, true
}

// TargetURI returns the URI the request is going to be sent to:
// the topmost Route URI if present, the request URI otherwise.
func (m *Message) TargetURI() (sip.Uri, bool) {
	if !m.IsRequest() {
		return sip.Uri{}, false
	}
	if u, ok := m.RouteURI(); ok {
		return u, true
	}
	return m.RequestURI()
}

// ContentLength returns the value of the Content-Length header,
// or the body length when the header is absent or malformed.
func (m *Message) ContentLength() int {
	if m == nil || m.msg == nil {
		return 0
	}
	if h := m.Header(string(header.ContentLength)); h != nil {
		if n, err := strconv.Atoi(strings.TrimSpace(h.Value())); err == nil && n >= 0 {
			return n
		}
	}
	return len(m.msg.Body())
}

// CachedTransport returns the transport previously resolved for the message.
func (m *Message) CachedTransport() (Transport, bool) {
	if m == nil {
		return "", false
	}
	if tp := m.tp.Load(); tp != nil {
		return *tp, true
	}
	return "", false
}

// cacheTransport stores the resolved transport. Resolution is deterministic,
// so concurrent writers always store the same value.
func (m *Message) cacheTransport(tp Transport) {
	if m == nil {
		return
	}
	m.tp.Store(&tp)
}

func (m *Message) LogValue() slog.Value {
	if m == nil {
		return slog.Value{}
	}
	attrs := make([]slog.Attr, 0, 3)
	if m.IsRequest() {
		attrs = append(attrs,
			slog.String("method", string(m.req.Method)),
			slog.String("request_uri", m.req.Recipient.String()),
		)
	} else if m.res != nil {
		attrs = append(attrs, slog.Int("status", m.res.StatusCode))
	}
	if tp, ok := m.CachedTransport(); ok {
		attrs = append(attrs, slog.String("transport", string(tp)))
	}
	return slog.GroupValue(attrs...)
}

// parseViaValue extracts the transport and the response target host
// from a textual Via value such as "SIP/2.0/UDP 10.0.0.1:5060;branch=z9hG4bK1;received=1.2.3.4".
func parseViaValue(v string) (transport, host string) {
	if i := strings.IndexByte(v, ','); i >= 0 {
		v = v[:i]
	}
	v = strings.TrimSpace(v)

	proto, rest, _ := strings.Cut(v, " ")
	if i := strings.LastIndexByte(proto, '/'); i >= 0 {
		transport = strings.TrimSpace(proto[i+1:])
	}

	sentBy, params, _ := strings.Cut(strings.TrimSpace(rest), ";")
	host = strings.TrimSpace(sentBy)
	if strings.HasPrefix(host, "[") {
		if i := strings.IndexByte(host, ']'); i > 0 {
			host = host[1:i]
		}
	} else if i := strings.LastIndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	for _, p := range strings.Split(params, ";") {
		k, val, _ := strings.Cut(strings.TrimSpace(p), "=")
		if strings.EqualFold(k, "received") && val != "" {
			host = val
			break
		}
	}
	return transport, host
}

// parseAddrValue parses the first address of a textual address header value
// such as "<sip:proxy.example.com;lr>, <sip:other.example.com>".
func parseAddrValue(v string) (sip.Uri, bool) {
	v = strings.TrimSpace(v)
	if i := strings.IndexByte(v, '<'); i >= 0 {
		v = v[i+1:]
		if j := strings.IndexByte(v, '>'); j >= 0 {
			v = v[:j]
		}
	} else {
		if i := strings.IndexByte(v, ','); i >= 0 {
			v = v[:i]
		}
		if i := strings.IndexByte(v, ';'); i >= 0 {
			// Without angle brackets trailing parameters belong to the header.
			v = v[:i]
		}
	}

	var u sip.Uri
	if err := sip.ParseUri(strings.TrimSpace(v), &u); err != nil {
		return sip.Uri{}, false
	}
	return u, true
}
