package util_test

import (
	"testing"

	"github.com/sipkit/egress/internal/util"
)

func TestEqFold(t *testing.T) {
	t.Parallel()

	type proto string
	cases := []struct {
		a    proto
		b    string
		want bool
	}{
		{"UDP", "udp", true},
		{"tls", "TLS", true},
		{"tcp", "udp", false},
		{"", "", true},
	}
	for _, c := range cases {
		if got := util.EqFold(c.a, c.b); got != c.want {
			t.Errorf("util.EqFold(%q, %q) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestRandString(t *testing.T) {
	t.Parallel()

	s := util.RandStringLC(16)
	if len(s) != 16 {
		t.Fatalf("len(util.RandStringLC(16)) = %d, want 16", len(s))
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'z') {
			t.Errorf("util.RandStringLC() = %q contains %q", s, r)
		}
	}
}
