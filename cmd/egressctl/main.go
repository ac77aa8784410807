// Command egressctl prepares a sample outbound SIP request with the headers
// the outbound layer stamps on it and prints the result.
//
// Usage:
//
//	egressctl -config egress.yaml -target sip:bob@example.com [-route sip:proxy.example.com;lr]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/emiago/sipgo/sip"
	"github.com/google/uuid"

	"github.com/sipkit/egress/internal/log"
	"github.com/sipkit/egress/internal/util"
	"github.com/sipkit/egress/metrics"
	"github.com/sipkit/egress/netif"
	"github.com/sipkit/egress/outbound"
	"github.com/sipkit/egress/outbound/header"
)

const appName = "egressctl"

type options struct {
	config      string
	method      string
	target      string
	route       string
	iface       string
	fromURI     string
	displayName string
	session     string
	bodySize    int
	recordRoute bool
	logFormat   string
	logLevel    string
	metricsAddr string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{
		method:  string(sip.INVITE),
		fromURI: "sip:egress@localhost",
	}

	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s -config <file> -target <uri> [options]\n\nOptions:\n", appName)
		fs.PrintDefaults()
	}
	fs.StringVar(&opts.config, "config", opts.config, "path to the YAML interface configuration")
	fs.StringVar(&opts.config, "c", opts.config, "path to the YAML interface configuration")
	fs.StringVar(&opts.method, "method", opts.method, "SIP method")
	fs.StringVar(&opts.method, "m", opts.method, "SIP method")
	fs.StringVar(&opts.target, "target", opts.target, "request URI")
	fs.StringVar(&opts.target, "t", opts.target, "request URI")
	fs.StringVar(&opts.route, "route", opts.route, "Route header URI")
	fs.StringVar(&opts.iface, "iface", opts.iface, "outbound interface URI (`sip:ip:port;transport=tcp`)")
	fs.StringVar(&opts.fromURI, "from-uri", opts.fromURI, "From header URI")
	fs.StringVar(&opts.displayName, "display-name", opts.displayName, "Contact display name")
	fs.StringVar(&opts.session, "session", opts.session, "application session ID (random UUID if empty)")
	fs.IntVar(&opts.bodySize, "body-size", opts.bodySize, "size of a dummy message body in bytes")
	fs.BoolVar(&opts.recordRoute, "record-route", opts.recordRoute, "add a Record-Route header")
	fs.StringVar(&opts.logFormat, "log-format", opts.logFormat, "log format: console, dev, json, none (overrides config)")
	fs.StringVar(&opts.logLevel, "log-level", opts.logLevel, "log level (overrides config)")
	fs.StringVar(&opts.metricsAddr, "metrics-addr", opts.metricsAddr, "serve Prometheus metrics on the address until interrupted")

	if err := fs.Parse(args); err != nil {
		return nil, err //nolint:wrapcheck
	}
	if opts.config == "" || opts.target == "" {
		fs.Usage()
		return nil, errors.New("both -config and -target are required")
	}
	if opts.bodySize < 0 {
		return nil, fmt.Errorf("invalid body size %d", opts.bodySize)
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := netif.LoadConfig(opts.config)
	if err != nil {
		return err //nolint:wrapcheck
	}

	logger, err := newLogger(stderr, cfg, opts)
	if err != nil {
		return err
	}
	log.SetDefault(logger)

	reg, err := cfg.BuildRegistry(ctx, nil)
	if err != nil {
		return fmt.Errorf("build registry: %w", err)
	}
	logger.LogAttrs(ctx, slog.LevelDebug, "listening points loaded", slog.Any("registry", reg))

	stats := &outbound.StatsRecorder{}
	b, err := outbound.NewBuilder(reg, &outbound.BuilderOptions{
		NATDetector: cfg.NATDetector(),
		PreferIPv6:  cfg.PreferIPv6,
		Stats:       stats,
		Log:         logger,
	})
	if err != nil {
		return err //nolint:wrapcheck
	}

	req, err := newRequest(opts)
	if err != nil {
		return err
	}
	msg := outbound.NewRequestMessage(req)
	if err := prepare(b, msg, opts); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "; transport %s\n", b.ResolveTransport(msg))
	fmt.Fprint(stdout, req.String())

	if opts.metricsAddr != "" {
		return serveMetrics(ctx, opts.metricsAddr, metrics.NewMetrics("", stats), logger)
	}
	return nil
}

func newLogger(w io.Writer, cfg *netif.Config, opts *options) (*slog.Logger, error) {
	format := cfg.Log.Format
	if opts.logFormat != "" {
		format = log.Format(opts.logFormat)
	}
	lvlStr := cfg.Log.Level
	if opts.logLevel != "" {
		lvlStr = opts.logLevel
	}
	lvl, err := log.ParseLevel(lvlStr)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return log.New(w, format, lvl) //nolint:wrapcheck
}

func newRequest(opts *options) (*sip.Request, error) {
	var target, from sip.Uri
	if err := sip.ParseUri(opts.target, &target); err != nil {
		return nil, fmt.Errorf("parse target %q: %w", opts.target, err)
	}
	if err := sip.ParseUri(opts.fromURI, &from); err != nil {
		return nil, fmt.Errorf("parse from URI %q: %w", opts.fromURI, err)
	}

	method := sip.RequestMethod(util.UCase(opts.method))
	req := sip.NewRequest(method, target)
	if opts.route != "" {
		var route sip.Uri
		if err := sip.ParseUri(opts.route, &route); err != nil {
			return nil, fmt.Errorf("parse route %q: %w", opts.route, err)
		}
		req.AppendHeader(&sip.RouteHeader{Address: route})
	}

	req.AppendHeader(&sip.FromHeader{Address: from, Params: sip.NewParams().Add("tag", util.RandStringLC(10))})
	req.AppendHeader(&sip.ToHeader{Address: target, Params: sip.NewParams()})
	req.AppendHeader(sip.NewHeader(string(header.CallID), uuid.NewString()))
	req.AppendHeader(sip.NewHeader(string(header.CSeq), "1 "+string(method)))
	req.AppendHeader(sip.NewHeader(string(header.MaxForwards), strconv.Itoa(outbound.DefaultMaxForwards)))
	if opts.bodySize > 0 {
		req.AppendHeader(sip.NewHeader(string(header.ContentType), "application/octet-stream"))
		req.SetBody(make([]byte, opts.bodySize))
	}
	return req, nil
}

func prepare(b *outbound.Builder, msg *outbound.Message, opts *options) error {
	req, _ := msg.Request()

	session := opts.session
	if session == "" {
		session = uuid.NewString()
	}
	via, err := b.CreateViaHeader(msg, b.NewBranch(session, appName), opts.iface)
	if err != nil {
		return fmt.Errorf("create Via header: %w", err)
	}
	req.PrependHeader(via)

	if outbound.RequiresContact(req.Method) {
		contact, err := b.CreateContactHeader(msg, opts.displayName, opts.iface)
		if err != nil {
			return fmt.Errorf("create Contact header: %w", err)
		}
		req.AppendHeader(contact)
	}

	if opts.recordRoute {
		rr, err := b.CreateRecordRouteHeader(msg, opts.iface)
		if err != nil {
			return fmt.Errorf("create Record-Route header: %w", err)
		}
		req.AppendHeader(rr)
	}
	return nil
}

func serveMetrics(ctx context.Context, addr string, m *metrics.Metrics, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	logger.LogAttrs(ctx, slog.LevelInfo, "serving metrics", slog.String("addr", addr))

	select {
	case err := <-errCh:
		return fmt.Errorf("serve metrics: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown metrics server: %w", err)
	}
	<-errCh
	return nil
}
