package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
)

// Log is the global logger instance
var Log *slog.Logger

type Options struct {
	Dev       bool
	SentryDSN string
	Out       io.Writer    // defaults to stdout
	Level     slog.Leveler // overrides the environment default
}

// Init installs the global logger and returns a function that flushes pending
// Sentry events. Call it before exit.
// Development: text at debug level. Otherwise JSON at info level.
// With a Sentry DSN, errors are also sent to Sentry.
func Init(opts Options) (flush func()) {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	var level slog.Leveler = slog.LevelInfo
	if opts.Dev {
		level = slog.LevelDebug
	}
	if opts.Level != nil {
		level = opts.Level
	}

	var handlers []slog.Handler
	if opts.Dev {
		handlers = append(handlers, slog.NewTextHandler(out, &slog.HandlerOptions{
			Level: level,
		}))
	} else {
		handlers = append(handlers, slog.NewJSONHandler(out, &slog.HandlerOptions{
			Level: level,
		}))
	}

	flush = func() {}
	if opts.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              opts.SentryDSN,
			TracesSampleRate: 1.0,
		})
		if err == nil {
			handlers = append(handlers, slogsentry.Option{
				Level: slog.LevelError,
			}.NewSentryHandler())
			flush = func() { sentry.Flush(2 * time.Second) }
		}
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = slogmulti.Fanout(handlers...)
	} else {
		handler = handlers[0]
	}

	Log = slog.New(handler)
	slog.SetDefault(Log)

	return flush
}
