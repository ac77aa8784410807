// Package log provides logging utilities.
package log

//go:generate errtrace -w .

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/netip"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"braces.dev/errtrace"
	"github.com/emiago/sipgo/sip"
	"github.com/golang-cz/devslog"
	"github.com/phsym/console-slog"
	slogformatter "github.com/samber/slog-formatter"

	"github.com/sipkit/egress/internal/errorutil"
)

var newHandler = slogformatter.NewFormatterHandler(
	slogformatter.ErrorFormatter("error"),
	slogformatter.FormatByType(func(u sip.Uri) slog.Value {
		return slog.StringValue(u.String())
	}),
	slogformatter.FormatByType(func(u *sip.Uri) slog.Value {
		if u == nil {
			return slog.StringValue("<nil>")
		}
		return slog.StringValue(u.String())
	}),
	slogformatter.FormatByType(func(h sip.Header) slog.Value {
		return slog.GroupValue(
			slog.String("type", fmt.Sprintf("%T", h)),
			slog.String("value", h.String()),
		)
	}),
	slogformatter.FormatByType(func(ap netip.AddrPort) slog.Value {
		return slog.StringValue(ap.String())
	}),
)

// Def is a default logger.
var Def = slog.New(newHandler(
	console.NewHandler(os.Stdout, &console.HandlerOptions{
		AddSource:  true,
		Level:      slog.LevelDebug,
		TimeFormat: time.RFC3339Nano,
	}),
))

type noopHandler struct{}

func (noopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (noopHandler) Handle(context.Context, slog.Record) error { return nil }

func (h noopHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h noopHandler) WithGroup(string) slog.Handler { return h }

// Noop is a noop logger.
var Noop = slog.New(noopHandler{})

var defLog atomic.Pointer[slog.Logger]

func init() { defLog.Store(Def) }

// Default returns the package-wide default logger used by components
// constructed without an explicit logger.
func Default() *slog.Logger { return defLog.Load() }

// SetDefault replaces the package-wide default logger.
// Nil resets it to [Def].
func SetDefault(l *slog.Logger) {
	if l == nil {
		l = Def
	}
	defLog.Store(l)
}

// Format is a log output format.
type Format string

const (
	FormatConsole Format = "console"
	FormatDev     Format = "dev"
	FormatJSON    Format = "json"
	FormatNone    Format = "none"
)

// ErrUnknownFormat is returned by [New] for an unsupported output format.
const ErrUnknownFormat errorutil.Error = "unknown log format"

// New builds a logger writing to w in the given format and level.
// Empty format means [FormatConsole].
func New(w io.Writer, format Format, level slog.Level) (*slog.Logger, error) {
	if w == nil {
		w = os.Stdout
	}

	var h slog.Handler
	switch Format(strings.ToLower(string(format))) {
	case "", FormatConsole:
		h = console.NewHandler(w, &console.HandlerOptions{
			AddSource:  level <= slog.LevelDebug,
			Level:      level,
			TimeFormat: time.RFC3339Nano,
		})
	case FormatDev:
		h = devslog.NewHandler(w, &devslog.Options{
			HandlerOptions: &slog.HandlerOptions{
				AddSource: true,
				Level:     level,
			},
			SortKeys:   true,
			TimeFormat: time.RFC3339Nano,
		})
	case FormatJSON:
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	case FormatNone:
		return Noop, nil
	default:
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrUnknownFormat, "%q", format))
	}
	return slog.New(newHandler(h)), nil
}

// ParseLevel parses a level name such as "debug" or "warn".
// Empty string means info.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, errtrace.Wrap(err)
	}
	return lvl, nil
}
