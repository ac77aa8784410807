package outbound_test

import (
	"testing"

	"github.com/emiago/sipgo/sip"

	"github.com/sipkit/egress/outbound"
)

func TestMethodSets(t *testing.T) {
	t.Parallel()

	cases := []struct {
		method                       sip.RequestMethod
		contact, creates, terminates bool
	}{
		{sip.INVITE, true, true, false},
		{"invite", true, true, false},
		{sip.REGISTER, true, false, false},
		{sip.SUBSCRIBE, true, true, false},
		{sip.NOTIFY, true, false, false},
		{sip.REFER, true, true, false},
		{sip.UPDATE, true, false, false},
		{sip.BYE, false, false, true},
		{sip.CANCEL, false, false, true},
		{sip.OPTIONS, false, false, false},
		{sip.ACK, false, false, false},
	}

	for _, c := range cases {
		if got := outbound.RequiresContact(c.method); got != c.contact {
			t.Errorf("outbound.RequiresContact(%q) = %v, want %v", c.method, got, c.contact)
		}
		if got := outbound.CreatesDialog(c.method); got != c.creates {
			t.Errorf("outbound.CreatesDialog(%q) = %v, want %v", c.method, got, c.creates)
		}
		if got := outbound.TerminatesDialog(c.method); got != c.terminates {
			t.Errorf("outbound.TerminatesDialog(%q) = %v, want %v", c.method, got, c.terminates)
		}
	}
}
