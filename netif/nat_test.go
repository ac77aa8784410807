package netif_test

import (
	"errors"
	"testing"

	"github.com/emiago/sipgo/sip"

	"github.com/sipkit/egress/internal/errorutil"
	"github.com/sipkit/egress/netif"
	"github.com/sipkit/egress/outbound"
)

func TestPublicDestination(t *testing.T) {
	t.Parallel()

	cases := []struct {
		target string
		want   bool
	}{
		{"sip:bob@8.8.8.8", true},
		{"sip:bob@192.168.1.20", false},
		{"sip:bob@10.1.2.3", false},
		{"sip:bob@127.0.0.1", false},
		{"sip:bob@example.com", true},
		{"sip:bob@localhost", false},
		{"sip:bob@[2001:4860::1]", true},
		{"sip:bob@[fd00::1]", false},
	}
	for _, c := range cases {
		var u sip.Uri
		if err := sip.ParseUri(c.target, &u); err != nil {
			t.Fatalf("sip.ParseUri(%q) error = %v, want nil", c.target, err)
		}
		msg := outbound.NewRequestMessage(sip.NewRequest(sip.INVITE, u))
		if got := netif.PublicDestination.UsePublicAddress(msg); got != c.want {
			t.Errorf("PublicDestination.UsePublicAddress(%q) = %v, want %v", c.target, got, c.want)
		}
	}

	if netif.PublicDestination.UsePublicAddress(nil) {
		t.Errorf("PublicDestination.UsePublicAddress(nil) = true, want false")
	}
}

func TestNATMode_Detector(t *testing.T) {
	t.Parallel()

	msg := outbound.NewRequestMessage(sip.NewRequest(sip.INVITE, sip.Uri{Scheme: "sip", Host: "10.0.0.1"}))

	cases := []struct {
		mode netif.NATMode
		want bool
	}{
		{"", false},
		{netif.NATDestination, false},
		{netif.NATNever, false},
		{"ALWAYS", true},
	}
	for _, c := range cases {
		nat, err := c.mode.Detector()
		if err != nil {
			t.Fatalf("NATMode(%q).Detector() error = %v, want nil", c.mode, err)
		}
		if got := nat.UsePublicAddress(msg); got != c.want {
			t.Errorf("NATMode(%q) detector = %v, want %v", c.mode, got, c.want)
		}
	}

	if _, err := netif.NATMode("stun").Detector(); !errors.Is(err, errorutil.ErrInvalidArgument) {
		t.Errorf("NATMode(stun).Detector() error = %v, want %v", err, errorutil.ErrInvalidArgument)
	}
}
