package outbound

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"braces.dev/errtrace"
	"github.com/emiago/sipgo/sip"

	"github.com/sipkit/egress/internal/errorutil"
	"github.com/sipkit/egress/internal/log"
)

type headerKind string

const (
	headerKindVia         headerKind = "via"
	headerKindContact     headerKind = "contact"
	headerKindRecordRoute headerKind = "record_route"
)

// BuilderOptions are the options of the [Builder].
type BuilderOptions struct {
	// NATDetector decides whether to advertise public addresses
	// of listening points that have one configured.
	// If nil, local addresses are advertised.
	NATDetector NATDetector
	// PreferIPv6 makes the listening point selection prefer IPv6 listening points.
	PreferIPv6 bool
	// Stats is the statistics recorder.
	// If nil, no statistics are recorded.
	Stats *StatsRecorder
	// Log is the logger.
	// If nil, the [log.Default] is used.
	Log *slog.Logger
}

func (o *BuilderOptions) nat() NATDetector {
	if o == nil {
		return nil
	}
	return o.NATDetector
}

func (o *BuilderOptions) preferIPv6() bool { return o != nil && o.PreferIPv6 }

func (o *BuilderOptions) stats() *StatsRecorder {
	if o == nil {
		return nil
	}
	return o.Stats
}

func (o *BuilderOptions) log() *slog.Logger {
	if o == nil || o.Log == nil {
		return log.Default()
	}
	return o.Log
}

// Builder builds the stack-owned Via, Contact and Record-Route headers of outbound messages.
//
// All three header kinds share one pipeline: the transport of the message is resolved,
// a listening point is selected (by the explicit outbound interface when given, by the transport otherwise),
// the address publicity is decided, and the listening point builds the header.
//
// Builder is safe for concurrent use.
type Builder struct {
	reg        ListeningPointRegistry
	nat        NATDetector
	preferIPv6 bool
	stats      *StatsRecorder
	log        *slog.Logger
}

// NewBuilder creates a new [Builder].
// Registry is required argument and expected to be non-nil.
// Options are optional, if nil, default values are used (see [BuilderOptions]).
func NewBuilder(reg ListeningPointRegistry, opts *BuilderOptions) (*Builder, error) {
	if reg == nil {
		return nil, errtrace.Wrap(NewInvalidArgumentError("invalid listening point registry"))
	}
	return &Builder{
		reg:        reg,
		nat:        opts.nat(),
		preferIPv6: opts.preferIPv6(),
		stats:      opts.stats(),
		log:        opts.log(),
	}, nil
}

// ResolveTransport is like [ResolveTransport] but also records statistics.
func (b *Builder) ResolveTransport(msg *Message) Transport {
	tp, cached := resolveTransport(msg)
	b.stats.recordResolve(tp, cached)
	return tp
}

// UsePublicAddress is like [UsePublicAddress] with the NAT detector of the builder.
func (b *Builder) UsePublicAddress(msg *Message, lp ListeningPoint) bool {
	return UsePublicAddress(msg, lp, b.nat)
}

// CreateViaHeader builds a Via header for msg carrying the given branch.
// Non-empty outboundIface selects the listening point explicitly, it must be a SIP URI.
func (b *Builder) CreateViaHeader(msg *Message, branch, outboundIface string) (*sip.ViaHeader, error) {
	return errtrace.Wrap2(buildHeader(b, headerKindVia, msg, outboundIface,
		func(lp ListeningPoint, usePublic bool) *sip.ViaHeader {
			return lp.CreateViaHeader(branch, usePublic)
		},
	))
}

// CreateContactHeader builds a Contact header for msg with the given display name.
// Non-empty outboundIface selects the listening point explicitly, it must be a SIP URI.
func (b *Builder) CreateContactHeader(msg *Message, displayName, outboundIface string) (*sip.ContactHeader, error) {
	return errtrace.Wrap2(buildHeader(b, headerKindContact, msg, outboundIface,
		func(lp ListeningPoint, usePublic bool) *sip.ContactHeader {
			return lp.CreateContactHeader(displayName, usePublic)
		},
	))
}

// CreateRecordRouteURI builds the URI of a Record-Route header for msg.
// Non-empty outboundIface selects the listening point explicitly, it must be a SIP URI.
func (b *Builder) CreateRecordRouteURI(msg *Message, outboundIface string) (sip.Uri, error) {
	return errtrace.Wrap2(buildHeader(b, headerKindRecordRoute, msg, outboundIface,
		func(lp ListeningPoint, usePublic bool) sip.Uri {
			return lp.CreateRecordRouteURI(usePublic)
		},
	))
}

// CreateRecordRouteHeader wraps [Builder.CreateRecordRouteURI] into a Record-Route header.
func (b *Builder) CreateRecordRouteHeader(msg *Message, outboundIface string) (*sip.RecordRouteHeader, error) {
	u, err := b.CreateRecordRouteURI(msg, outboundIface)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &sip.RecordRouteHeader{Address: u}, nil
}

func buildHeader[T any](
	b *Builder,
	kind headerKind,
	msg *Message,
	outboundIface string,
	build func(lp ListeningPoint, usePublic bool) T,
) (T, error) {
	var zero T

	tp := b.ResolveTransport(msg)
	lp, err := b.selectListeningPoint(tp, outboundIface)
	if err != nil {
		b.stats.recordHeaderErr(kind, errors.Is(err, ErrInvalidOutboundInterface))
		b.log.LogAttrs(context.Background(), slog.LevelDebug,
			"failed to select listening point",
			slog.String("header", string(kind)),
			slog.Any("message", msg),
			slog.String("transport", string(tp)),
			slog.String("outbound_interface", outboundIface),
			slog.Any("error", err),
		)
		return zero, errtrace.Wrap(err)
	}

	usePublic := b.UsePublicAddress(msg, lp)
	hdr := build(lp, usePublic)
	b.stats.recordHeader(kind, usePublic)

	b.log.LogAttrs(context.Background(), slog.LevelDebug,
		"outbound header built",
		slog.String("header", string(kind)),
		slog.Any("message", msg),
		slog.String("transport", string(tp)),
		slog.Bool("use_public", usePublic),
	)
	return hdr, nil
}

func (b *Builder) selectListeningPoint(tp Transport, outboundIface string) (ListeningPoint, error) {
	if outboundIface == "" {
		return errtrace.Wrap2(b.reg.FindByTransport(tp, b.preferIPv6))
	}

	u, err := parseOutboundInterface(outboundIface)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return errtrace.Wrap2(b.reg.FindByURI(u, b.preferIPv6))
}

func parseOutboundInterface(s string) (sip.Uri, error) {
	var u sip.Uri
	if err := sip.ParseUri(s, &u); err != nil {
		return u, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidOutboundInterface,
			fmt.Errorf("parse %q: %w", s, err)))
	}
	if !isSIPScheme(u.Scheme) || u.Host == "" {
		return u, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidOutboundInterface,
			"%q is not a SIP URI", s))
	}
	return u, nil
}
