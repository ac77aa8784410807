package outbound_test

import (
	"errors"
	"testing"

	"github.com/emiago/sipgo/sip"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/mock/gomock"

	"github.com/sipkit/egress/internal/errorutil"
	"github.com/sipkit/egress/internal/log"
	"github.com/sipkit/egress/internal/testutil/outboundmock"
	"github.com/sipkit/egress/outbound"
)

func newTestBuilder(t *testing.T, reg outbound.ListeningPointRegistry, opts *outbound.BuilderOptions) *outbound.Builder {
	t.Helper()

	if reg == nil {
		reg = outboundmock.NewMockListeningPointRegistry(gomock.NewController(t))
	}
	if opts == nil {
		opts = &outbound.BuilderOptions{}
	}
	if opts.Log == nil {
		opts.Log = log.Noop
	}
	b, err := outbound.NewBuilder(reg, opts)
	if err != nil {
		t.Fatalf("outbound.NewBuilder() error = %v, want nil", err)
	}
	return b
}

func TestNewBuilder(t *testing.T) {
	t.Parallel()

	_, got := outbound.NewBuilder(nil, nil)
	want := outbound.ErrInvalidArgument
	if diff := cmp.Diff(got, want, cmpopts.EquateErrors()); diff != "" {
		t.Fatalf("outbound.NewBuilder(nil, nil) error = %v, want %v\ndiff (-got +want):\n%v", got, want, diff)
	}
}

func TestBuilder_CreateViaHeader(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	via := newVia("TCP", "10.0.0.10", 5060)

	lp := outboundmock.NewMockListeningPoint(ctrl)
	lp.EXPECT().UsesStaticAddress().Return(false)
	lp.EXPECT().PublicAddress().Return("", false)
	lp.EXPECT().CreateViaHeader("z9hG4bKbranch", false).Return(via)

	reg := outboundmock.NewMockListeningPointRegistry(ctrl)
	reg.EXPECT().FindByTransport(outbound.TransportTCP, false).Return(lp, nil)

	stats := &outbound.StatsRecorder{}
	b := newTestBuilder(t, reg, &outbound.BuilderOptions{Stats: stats})

	msg := outbound.NewRequestMessage(newRequest(t, sip.INVITE, "sip:bob@example.com;transport=tcp"))
	got, err := b.CreateViaHeader(msg, "z9hG4bKbranch", "")
	if err != nil {
		t.Fatalf("b.CreateViaHeader() error = %v, want nil", err)
	}
	if got != via {
		t.Errorf("b.CreateViaHeader() = %v, want %v", got, via)
	}

	report := stats.Report()
	want := []outbound.HeaderStats{{Kind: "via", Built: 1}}
	if diff := cmp.Diff(want, report.Headers); diff != "" {
		t.Errorf("report.Headers mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_Publicity(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		static    bool
		public    string
		nat       *bool
		wantUsePb bool
	}{
		{"static address", true, "203.0.113.1", nil, true},
		{"public address behind NAT", false, "203.0.113.1", ptr(true), true},
		{"public address inside network", false, "203.0.113.1", ptr(false), false},
		{"no public address", false, "", nil, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			contact := &sip.ContactHeader{DisplayName: "Proxy", Address: mustParseURI(t, "sip:10.0.0.10:5060")}
			msg := outbound.NewRequestMessage(newRequest(t, sip.INVITE, "sip:bob@example.com"))

			lp := outboundmock.NewMockListeningPoint(ctrl)
			lp.EXPECT().UsesStaticAddress().Return(c.static)
			lp.EXPECT().PublicAddress().Return(c.public, c.public != "").AnyTimes()
			lp.EXPECT().CreateContactHeader("Proxy", c.wantUsePb).Return(contact)

			reg := outboundmock.NewMockListeningPointRegistry(ctrl)
			reg.EXPECT().FindByTransport(outbound.TransportUDP, true).Return(lp, nil)

			nat := outboundmock.NewMockNATDetector(ctrl)
			if c.nat != nil {
				nat.EXPECT().UsePublicAddress(msg).Return(*c.nat)
			}

			b := newTestBuilder(t, reg, &outbound.BuilderOptions{NATDetector: nat, PreferIPv6: true})
			got, err := b.CreateContactHeader(msg, "Proxy", "")
			if err != nil {
				t.Fatalf("b.CreateContactHeader() error = %v, want nil", err)
			}
			if got != contact {
				t.Errorf("b.CreateContactHeader() = %v, want %v", got, contact)
			}
		})
	}
}

func TestBuilder_OutboundInterface(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	rrURI := mustParseURI(t, "sip:10.0.0.5:5070;transport=tcp;lr")

	lp := outboundmock.NewMockListeningPoint(ctrl)
	lp.EXPECT().UsesStaticAddress().Return(false)
	lp.EXPECT().PublicAddress().Return("", false)
	lp.EXPECT().CreateRecordRouteURI(false).Return(rrURI)

	reg := outboundmock.NewMockListeningPointRegistry(ctrl)
	reg.EXPECT().
		FindByURI(gomock.Any(), false).
		DoAndReturn(func(u sip.Uri, _ bool) (outbound.ListeningPoint, error) {
			if u.Host != "10.0.0.5" || u.Port != 5070 {
				t.Errorf("registry.FindByURI() uri = %v, want 10.0.0.5:5070", u.String())
			}
			return lp, nil
		})

	b := newTestBuilder(t, reg, nil)
	msg := outbound.NewRequestMessage(newRequest(t, sip.INVITE, "sip:bob@example.com"))

	got, err := b.CreateRecordRouteHeader(msg, "sip:10.0.0.5:5070;transport=tcp")
	if err != nil {
		t.Fatalf("b.CreateRecordRouteHeader() error = %v, want nil", err)
	}
	if got.Address.Host != rrURI.Host || got.Address.Port != rrURI.Port {
		t.Errorf("b.CreateRecordRouteHeader() = %v, want address %v", got.Value(), rrURI.String())
	}
}

func TestBuilder_NoMatchingInterface(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	reg := outboundmock.NewMockListeningPointRegistry(ctrl)
	reg.EXPECT().
		FindByTransport(outbound.TransportTLS, false).
		Return(nil, errorutil.NewWrapperError(outbound.ErrNoMatchingInterface, "no TLS listening point"))

	stats := &outbound.StatsRecorder{}
	b := newTestBuilder(t, reg, &outbound.BuilderOptions{Stats: stats})

	msg := outbound.NewRequestMessage(newRequest(t, sip.INVITE, "sip:bob@example.com;transport=tls"))
	got, err := b.CreateViaHeader(msg, "z9hG4bKbranch", "")
	if !errors.Is(err, outbound.ErrNoMatchingInterface) {
		t.Errorf("b.CreateViaHeader() error = %v, want %v", err, outbound.ErrNoMatchingInterface)
	}
	if got != nil {
		t.Errorf("b.CreateViaHeader() = %v, want nil", got)
	}

	want := []outbound.HeaderStats{{Kind: "via", NoInterface: 1}}
	if diff := cmp.Diff(want, stats.Report().Headers); diff != "" {
		t.Errorf("report.Headers mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_InvalidOutboundInterface(t *testing.T) {
	t.Parallel()

	for _, iface := range []string{"tel:+15551234567", "not a uri", "sip:"} {
		t.Run(iface, func(t *testing.T) {
			t.Parallel()

			// The registry must not be consulted.
			reg := outboundmock.NewMockListeningPointRegistry(gomock.NewController(t))
			b := newTestBuilder(t, reg, nil)

			msg := outbound.NewRequestMessage(newRequest(t, sip.INVITE, "sip:bob@example.com"))
			_, err := b.CreateContactHeader(msg, "", iface)
			if !errors.Is(err, outbound.ErrInvalidOutboundInterface) {
				t.Errorf("b.CreateContactHeader(%q) error = %v, want %v", iface, err, outbound.ErrInvalidOutboundInterface)
			}
		})
	}
}

func TestBuilder_NewBranch(t *testing.T) {
	t.Parallel()

	stats := &outbound.StatsRecorder{}
	b := newTestBuilder(t, nil, &outbound.BuilderOptions{Stats: stats})

	if br := b.NewBranch("sess1", "app1"); !outbound.IsRFC3261Branch(br) {
		t.Errorf("b.NewBranch() = %q, want RFC 3261 branch", br)
	}
	if got := stats.Report().Branches; got != 1 {
		t.Errorf("report.Branches = %d, want 1", got)
	}
}

func ptr[T any](v T) *T { return &v }
