package header_test

import (
	"testing"

	"github.com/sipkit/egress/outbound/header"
)

func TestCompactForms_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, c := range []byte("ifbvmuelcordxsktajy") {
		full, ok := header.FullFormOf(c)
		if !ok {
			t.Errorf("header.FullFormOf(%q) = (_, false), want true", c)
			continue
		}
		back, ok := header.CompactFormOf(full)
		if !ok || back != c {
			t.Errorf("header.CompactFormOf(%q) = (%q, %v), want (%q, true)", full, back, ok, c)
		}
	}
}

func TestCompactFormOf(t *testing.T) {
	t.Parallel()

	cases := []struct {
		full   string
		want   byte
		wantOK bool
	}{
		{"Call-ID", 'i', true},
		{"call-id", 'i', true},
		{"REFERRED-BY", 'b', true},
		{"Session-Expires", 'x', true},
		{"Content-Type", 'c', true},
		{"Request-Disposition", 'd', true},
		{"Content-Disposition", 0, false},
		{"Max-Forwards", 0, false},
		{"", 0, false},
	}

	for _, c := range cases {
		got, ok := header.CompactFormOf(c.full)
		if got != c.want || ok != c.wantOK {
			t.Errorf("header.CompactFormOf(%q) = (%q, %v), want (%q, %v)", c.full, got, ok, c.want, c.wantOK)
		}
	}
}

func TestFullFormOf(t *testing.T) {
	t.Parallel()

	cases := []struct {
		compact string
		want    header.Name
		wantOK  bool
	}{
		{"v", "Via", true},
		{"V", "Via", true},
		{" m ", "Contact", true},
		{"o", "Event", true},
		{"d", "Request-Disposition", true},
		{"z", "", false},
		{"via", "", false},
		{"", "", false},
	}

	for _, c := range cases {
		got, ok := header.FullFormOfString(c.compact)
		if got != c.want || ok != c.wantOK {
			t.Errorf("header.FullFormOfString(%q) = (%q, %v), want (%q, %v)", c.compact, got, ok, c.want, c.wantOK)
		}
	}
	if !header.IsCompact("l") || header.IsCompact("Content-Length") {
		t.Errorf("header.IsCompact() misclassified compact forms")
	}
}
