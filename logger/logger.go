// Package logger wraps zerolog with the service defaults and request scoped
// children
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Options configures the logger
type Options struct {
	Level       string
	Format      string // console | json
	Service     string
	Writer      io.Writer
	WithCaller  bool
	SampleEvery int
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_SERVICE, LOG_CALLER and
// LOG_SAMPLE_EVERY. It reads the environment directly so config can log
// through this package without a cycle.
func FromEnv() Options {
	get := func(k, def string) string {
		if v := strings.TrimSpace(os.Getenv("LOG_" + k)); v != "" {
			return v
		}
		return def
	}
	sample, _ := strconv.Atoi(get("SAMPLE_EVERY", "0"))
	caller, _ := strconv.ParseBool(get("CALLER", "false"))
	return Options{
		Level:       strings.ToLower(get("LEVEL", "info")),
		Format:      strings.ToLower(get("FORMAT", "console")),
		Service:     get("SERVICE", "prospection-agent"),
		WithCaller:  caller,
		SampleEvery: sample,
	}
}

// Logger is the project-wide logging type
type Logger = zerolog.Logger

var (
	once   sync.Once
	root   atomic.Pointer[zerolog.Logger]
	inited atomic.Bool
)

// Get returns the process-wide root logger, initializing it from the
// environment on first use
func Get() *Logger {
	if !inited.Load() {
		Init(FromEnv())
	}
	return root.Load()
}

// Init builds the root logger. Only the first call has an effect.
func Init(opt Options) {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano

		l := New(opt)
		root.Store(&l)
		inited.Store(true)
	})
}

// New builds a standalone logger from opt without touching the root
func New(opt Options) Logger {
	var w io.Writer = os.Stdout
	if opt.Writer != nil {
		w = opt.Writer
	}
	if opt.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(w).Level(ParseLevel(opt.Level)).With().Timestamp()
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		ctx = ctx.Str("go_version", bi.GoVersion)
	}
	if opt.Service != "" {
		ctx = ctx.Str("service", opt.Service)
	}

	l := ctx.Logger()
	if opt.WithCaller {
		l = l.With().Caller().Logger()
	}
	if opt.SampleEvery > 1 {
		l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
	}
	return l
}

// ParseLevel maps a level name onto zerolog, defaulting to info
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel
	}
}

type ctxKey struct{ name string }

var keySession = ctxKey{"session_id"}

// WithSession annotates ctx with the dashboard session id
func WithSession(ctx context.Context, sessionID string) context.Context {
	if sessionID == "" {
		return ctx
	}
	return context.WithValue(ctx, keySession, sessionID)
}

// SessionID returns the session id stored on ctx, if any
func SessionID(ctx context.Context) string {
	s, _ := ctx.Value(keySession).(string)
	return s
}

// C returns a child logger enriched with the request and session ids found on ctx
func C(ctx context.Context) *Logger {
	b := Get().With()
	if id := chimw.GetReqID(ctx); id != "" {
		b = b.Str("request_id", id)
	}
	if s := SessionID(ctx); s != "" {
		b = b.Str("session_id", s)
	}
	l := b.Logger()
	return &l
}

// Named returns a child logger with a component field
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	l := Get().With().Str("component", component).Logger()
	return &l
}
