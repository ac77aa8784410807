package netif

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/netip"
	"os"
	"strings"
	"time"

	"braces.dev/errtrace"
	"gopkg.in/yaml.v3"

	"github.com/sipkit/egress/dns"
	"github.com/sipkit/egress/internal/errorutil"
	"github.com/sipkit/egress/internal/log"
	"github.com/sipkit/egress/outbound"
)

// ErrInvalidConfig is returned when the configuration fails validation.
const ErrInvalidConfig errorutil.Error = "invalid config"

// Config is the configuration of the outbound layer network interfaces.
//
//	log:
//	  format: console
//	  level: info
//	dns:
//	  nameserver: 8.8.8.8:53
//	  timeout: 2s
//	nat: destination
//	prefer_ipv6: false
//	listening_points:
//	  - transport: udp
//	    address: 0.0.0.0
//	    port: 5060
//	    public_host: pbx.example.com
type Config struct {
	Log             LogConfig              `yaml:"log"`
	DNS             DNSConfig              `yaml:"dns"`
	NAT             NATMode                `yaml:"nat"`
	PreferIPv6      bool                   `yaml:"prefer_ipv6"`
	ListeningPoints []ListeningPointConfig `yaml:"listening_points"`
}

type LogConfig struct {
	Format log.Format `yaml:"format"`
	Level  string     `yaml:"level"`
}

type DNSConfig struct {
	NameServer string        `yaml:"nameserver"`
	Timeout    time.Duration `yaml:"timeout"`
}

type ListeningPointConfig struct {
	Transport string `yaml:"transport"`
	Address   string `yaml:"address"`
	Port      int    `yaml:"port"`
	// PublicAddress is a public IP address of the listening point.
	PublicAddress string `yaml:"public_address"`
	// PublicHost is resolved to the public address when the registry is built.
	PublicHost string `yaml:"public_host"`
	Static     bool   `yaml:"static"`
}

// ParseConfig decodes and validates a YAML configuration.
// Unknown fields are rejected.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidConfig, err))
	}
	if err := cfg.Validate(); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &cfg, nil
}

// LoadConfig reads and parses the configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errtrace.Wrap(fmt.Errorf("read config file %s: %w", path, err))
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, errtrace.Wrap(fmt.Errorf("load config file %s: %w", path, err))
	}
	return cfg, nil
}

// Validate checks the configuration values.
// All found problems are reported at once, the returned error matches [ErrInvalidConfig].
func (c *Config) Validate() error {
	var errs []error
	addErr := func(format string, args ...any) {
		errs = append(errs, errorutil.Errorf(format, args...))
	}

	switch log.Format(strings.ToLower(string(c.Log.Format))) {
	case "", log.FormatConsole, log.FormatDev, log.FormatJSON, log.FormatNone:
	default:
		addErr("log.format: unknown format %q", c.Log.Format)
	}
	if c.Log.Level != "" {
		if _, err := log.ParseLevel(c.Log.Level); err != nil {
			addErr("log.level: %v", err)
		}
	}
	if c.DNS.Timeout < 0 {
		addErr("dns.timeout: negative duration %s", c.DNS.Timeout)
	}
	if _, err := c.NAT.Detector(); err != nil {
		addErr("nat: unknown mode %q", c.NAT)
	}

	if len(c.ListeningPoints) == 0 {
		addErr("listening_points: at least one listening point required")
	}
	seen := make(map[string]int, len(c.ListeningPoints))
	for i, lpc := range c.ListeningPoints {
		prefix := fmt.Sprintf("listening_points[%d]", i)
		if lpErrs := lpc.validate(); len(lpErrs) > 0 {
			errs = append(errs, errorutil.JoinPrefix(prefix+":", lpErrs...))
		}
		key := strings.ToUpper(lpc.Transport) + " " + lpc.Address + ":" + fmt.Sprint(lpc.Port)
		if j, ok := seen[key]; ok {
			addErr("%s: duplicates listening_points[%d]", prefix, j)
		} else {
			seen[key] = i
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidConfig, errorutil.Join(errs...)))
}

func (c *ListeningPointConfig) validate() []error {
	var errs []error
	switch outbound.Transport(strings.ToUpper(strings.TrimSpace(c.Transport))) {
	case outbound.TransportUDP, outbound.TransportTCP, outbound.TransportTLS:
	default:
		errs = append(errs, errorutil.Errorf("transport: unsupported transport %q", c.Transport))
	}
	if _, err := netip.ParseAddr(c.Address); err != nil {
		errs = append(errs, errorutil.Errorf("address: invalid IP address %q", c.Address))
	}
	if c.Port < MinPort || c.Port > MaxPort {
		errs = append(errs, errorutil.Errorf("port: %d out of range %d-%d", c.Port, MinPort, MaxPort))
	}
	if c.PublicAddress != "" {
		if _, err := netip.ParseAddr(c.PublicAddress); err != nil {
			errs = append(errs, errorutil.Errorf("public_address: invalid IP address %q", c.PublicAddress))
		}
		if c.PublicHost != "" {
			errs = append(errs, errorutil.Errorf("public_host: conflicts with public_address"))
		}
	}
	if c.Static && c.PublicAddress == "" && c.PublicHost == "" {
		errs = append(errs, errorutil.Errorf("static: requires public_address or public_host"))
	}
	return errs
}

// Resolver returns the DNS resolver for public host names.
func (c *Config) Resolver() *dns.Resolver {
	return &dns.Resolver{
		NameServer: c.DNS.NameServer,
		Timeout:    c.DNS.Timeout,
	}
}

// NATDetector returns the NAT detector of the configured mode.
func (c *Config) NATDetector() outbound.NATDetector {
	nat, err := c.NAT.Detector()
	if err != nil {
		return PublicDestination
	}
	return nat
}

// BuildRegistry creates the listening points and tracks them in a new [Registry].
// Public host names are resolved with r, an IPv4 address is preferred unless PreferIPv6 is set.
func (c *Config) BuildRegistry(ctx context.Context, r *dns.Resolver) (*Registry, error) {
	if r == nil {
		r = c.Resolver()
	}

	reg := new(Registry)
	for i, lpc := range c.ListeningPoints {
		lp, err := lpc.build(ctx, r, c.PreferIPv6)
		if err != nil {
			return nil, errtrace.Wrap(fmt.Errorf("listening_points[%d]: %w", i, err))
		}
		if err := reg.Track(lp); err != nil {
			return nil, errtrace.Wrap(fmt.Errorf("listening_points[%d]: %w", i, err))
		}
	}
	return reg, nil
}

func (c *ListeningPointConfig) build(ctx context.Context, r *dns.Resolver, preferIPv6 bool) (*ListeningPoint, error) {
	addr, err := netip.ParseAddr(c.Address)
	if err != nil {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError(err))
	}

	opts := &ListeningPointOptions{StaticAddress: c.Static}
	switch {
	case c.PublicAddress != "":
		if opts.PublicAddr, err = netip.ParseAddr(c.PublicAddress); err != nil {
			return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError(err))
		}
	case c.PublicHost != "":
		ips, err := r.LookupNetIP(ctx, c.PublicHost)
		if err != nil {
			return nil, errtrace.Wrap(fmt.Errorf("resolve public host %q: %w", c.PublicHost, err))
		}
		opts.PublicAddr = pickAddr(ips, preferIPv6)
	}

	return errtrace.Wrap2(NewListeningPoint(
		outbound.Transport(c.Transport),
		netip.AddrPortFrom(addr, uint16(c.Port)), //nolint:gosec
		opts,
	))
}

func pickAddr(ips []netip.Addr, preferIPv6 bool) netip.Addr {
	for _, ip := range ips {
		if ip.Is6() == preferIPv6 {
			return ip
		}
	}
	if len(ips) > 0 {
		return ips[0]
	}
	return netip.Addr{}
}
