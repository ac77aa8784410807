package outbound_test

import (
	"testing"

	"github.com/sipkit/egress/outbound"
)

func TestAddressOutboundness(t *testing.T) {
	t.Parallel()

	cases := []struct {
		addr string
		want int
	}{
		{"127.0.0.1", 0},
		{"127.255.0.9", 0},
		{"192.168.1.5", 1},
		{"10.0.0.1", 2},
		{"172.16.0.1", 3},
		{"172.31.255.254", 3},
		{"172.32.0.1", 4},
		{"172.15.0.1", 4},
		{"8.8.8.8", 4},
		{"::ffff:10.1.2.3", 2},
		{"2001:db8::1", -1},
		{"::1", -1},
		{"example.com", -1},
		{"10.0.0", -1},
		{"", -1},
	}

	for _, c := range cases {
		if got := outbound.AddressOutboundness(c.addr); got != c.want {
			t.Errorf("outbound.AddressOutboundness(%q) = %d, want %d", c.addr, got, c.want)
		}
	}
}

func TestMostOutboundAddress(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		addrs []string
		want  string
	}{
		{"nil", nil, "127.0.0.1"},
		{"empty", []string{}, "127.0.0.1"},
		{"public wins", []string{"127.0.0.1", "192.168.1.5", "8.8.8.8"}, "8.8.8.8"},
		{"private ranking", []string{"10.0.0.1", "172.16.0.1"}, "172.16.0.1"},
		{"tie keeps first", []string{"8.8.8.8", "1.1.1.1"}, "8.8.8.8"},
		{"only unscored", []string{"example.com", "2001:db8::1"}, "example.com"},
		{"scored beats unscored", []string{"2001:db8::1", "127.0.0.1"}, "127.0.0.1"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := outbound.MostOutboundAddress(c.addrs); got != c.want {
				t.Errorf("outbound.MostOutboundAddress(%q) = %q, want %q", c.addrs, got, c.want)
			}
		})
	}
}
