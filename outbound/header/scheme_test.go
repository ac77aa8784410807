package header_test

import (
	"testing"

	"github.com/sipkit/egress/outbound/header"
)

func TestCheckScheme(t *testing.T) {
	t.Parallel()

	cases := []struct {
		addr string
		want bool
	}{
		{"<sip:alice@example.com>", true},
		{"sip:alice@example.com", true},
		{"SIPS:bob@example.com", true},
		{"\"Alice\" <tel:+15551234567>", true},
		{"<mailto:alice@example.com>", true},
		{"https://example.com/info", true},
		{"<http://example.com", true},
		{"ftp://x", false},
		{"<ftp://x>", false},
		{"urn:service:sos", false},
		{"", false},
		{"s", false},
		{"<>", false},
		{"<", false},
	}

	for _, c := range cases {
		if got := header.CheckScheme(c.addr); got != c.want {
			t.Errorf("header.CheckScheme(%q) = %v, want %v", c.addr, got, c.want)
		}
	}
}

func TestAllowedSchemes_ReturnsCopy(t *testing.T) {
	t.Parallel()

	s := header.AllowedSchemes()
	s[0] = "ftp"
	if header.CheckScheme("ftp://x") {
		t.Errorf("header.AllowedSchemes() exposes internal state")
	}
}

func TestCheckContentType(t *testing.T) {
	t.Parallel()

	cases := []struct {
		value string
		want  bool
	}{
		{"application/sdp", true},
		{"Application/SDP; charset=utf-8", true},
		{"multipart/mixed;boundary=x", true},
		{"message/sipfrag", true},
		{"example/test", true},
		{"font/woff", false},
		{"application", false},
		{"application/", false},
		{"", false},
	}

	for _, c := range cases {
		if got := header.CheckContentType(c.value); got != c.want {
			t.Errorf("header.CheckContentType(%q) = %v, want %v", c.value, got, c.want)
		}
	}
	if got, want := len(header.IANAContentTypes()), 9; got != want {
		t.Errorf("len(header.IANAContentTypes()) = %d, want %d", got, want)
	}
	if !header.IsIANAContentType(" TEXT ") {
		t.Errorf("header.IsIANAContentType(TEXT) = false, want true")
	}
}
