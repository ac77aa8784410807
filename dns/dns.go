// Package dns resolves the host names of configured public addresses.
package dns

//go:generate errtrace -w .

import (
	"context"
	"net"
	"net/netip"
	"slices"
	"time"

	"braces.dev/errtrace"
	"github.com/miekg/dns"

	"github.com/sipkit/egress/internal/errorutil"
)

// Resolver wraps net.Resolver with lookups against an explicit DNS server.
type Resolver struct {
	net.Resolver

	// NameServer specifies the DNS server address (e.g., "8.8.8.8:53").
	// If empty, the system's default resolver configuration is used.
	NameServer string
	// Timeout specifies the timeout for DNS queries.
	// If zero, defaults to 5 seconds.
	Timeout time.Duration
}

// LookupNetIP resolves the host to its IPv4 and IPv6 addresses.
// IPv4 addresses come first. IP literals are returned as is without a query.
func (r *Resolver) LookupNetIP(ctx context.Context, host string) ([]netip.Addr, error) {
	if ip, err := netip.ParseAddr(host); err == nil {
		return []netip.Addr{ip.Unmap()}, nil
	}

	var (
		ips []netip.Addr
		err error
	)
	if r.NameServer == "" {
		ips, err = r.Resolver.LookupNetIP(ctx, "ip", host)
	} else {
		ips, err = r.exchangeIP(ctx, host)
	}
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	for i := range ips {
		ips[i] = ips[i].Unmap()
	}
	slices.SortStableFunc(ips, func(a, b netip.Addr) int {
		switch {
		case a.Is4() == b.Is4():
			return 0
		case a.Is4():
			return -1
		default:
			return 1
		}
	})
	return ips, nil
}

func (r *Resolver) exchangeIP(ctx context.Context, host string) ([]netip.Addr, error) {
	nameserver := r.nameserver()

	var (
		ips     []netip.Addr
		lastErr error
	)
	for _, qtype := range [...]uint16{dns.TypeA, dns.TypeAAAA} {
		recs, err := r.exchange(ctx, nameserver, host, qtype)
		if err != nil {
			if errorutil.IsTimeoutErr(err) {
				return nil, errtrace.Wrap(err)
			}
			lastErr = err
			continue
		}
		for _, ans := range recs {
			switch rr := ans.(type) {
			case *dns.A:
				if ip, ok := netip.AddrFromSlice(rr.A); ok {
					ips = append(ips, ip)
				}
			case *dns.AAAA:
				if ip, ok := netip.AddrFromSlice(rr.AAAA); ok {
					ips = append(ips, ip)
				}
			}
		}
	}
	if len(ips) == 0 {
		if lastErr != nil {
			return nil, errtrace.Wrap(lastErr)
		}
		return nil, errtrace.Wrap(&net.DNSError{
			Err:        "no such host",
			Name:       host,
			Server:     nameserver,
			IsNotFound: true,
		})
	}
	return ips, nil
}

func (r *Resolver) exchange(ctx context.Context, nameserver, host string, qtype uint16) ([]dns.RR, error) {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(host), qtype)
	m.RecursionDesired = true

	client := &dns.Client{Timeout: r.timeout()}
	resp, _, err := client.ExchangeContext(ctx, m, nameserver)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	if resp.Rcode != dns.RcodeSuccess {
		return nil, errtrace.Wrap(&net.DNSError{
			Err:        dns.RcodeToString[resp.Rcode],
			Name:       host,
			Server:     nameserver,
			IsNotFound: resp.Rcode == dns.RcodeNameError,
		})
	}
	return resp.Answer, nil
}

func (r *Resolver) timeout() time.Duration {
	if r.Timeout > 0 {
		return r.Timeout
	}
	return 5 * time.Second
}

// nameserver returns the configured server address, with the default DNS port when none is given.
func (r *Resolver) nameserver() string {
	if _, _, err := net.SplitHostPort(r.NameServer); err != nil {
		return net.JoinHostPort(r.NameServer, "53")
	}
	return r.NameServer
}

var defResolver = &Resolver{}

func DefaultResolver() *Resolver { return defResolver }

func LookupNetIP(ctx context.Context, host string) ([]netip.Addr, error) {
	return errtrace.Wrap2(defResolver.LookupNetIP(ctx, host))
}
