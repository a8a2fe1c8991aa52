package monitoring

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
)

const defaultTracesSampleRate = 0.1

// skipTransactions are endpoints excluded from performance traces.
var skipTransactions = map[string]bool{
	"/health":     true,
	"/metrics":    true,
	"/gpu-status": true,
}

// InitSentry wires error tracking. Empty arguments fall back to the
// SENTRY_DSN, SENTRY_ENVIRONMENT and SENTRY_RELEASE variables; without
// a DSN the whole thing is a no-op and the service runs untracked.
func InitSentry(dsn, environment, release string) bool {
	if dsn == "" {
		dsn = os.Getenv("SENTRY_DSN")
	}
	if dsn == "" {
		return false
	}
	if environment == "" {
		environment = os.Getenv("SENTRY_ENVIRONMENT")
	}
	if environment == "" {
		environment = "development"
	}
	if release == "" {
		release = os.Getenv("SENTRY_RELEASE")
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		Release:          release,
		EnableTracing:    true,
		TracesSampler:    tracesSampler,
		MaxBreadcrumbs:   50,
		AttachStacktrace: true,
		BeforeSend:       beforeSend,
	})
	if err != nil {
		log.WithError(err).Warn("sentry init failed, continuing without error tracking")
		return false
	}
	return true
}

// TracingMiddleware opens a Sentry transaction per request, which is
// what feeds tracesSampler. Until InitSentry has bound a client it
// returns the handler untouched.
func TracingMiddleware() func(http.Handler) http.Handler {
	if sentry.CurrentHub().Client() == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return sentryhttp.New(sentryhttp.Options{}).Handle
}

// tracesSampler keeps probe endpoints out of performance monitoring.
// The HTTP middleware names transactions "METHOD /path".
func tracesSampler(ctx sentry.SamplingContext) float64 {
	if ctx.Span == nil {
		return defaultTracesSampleRate
	}
	path := ctx.Span.Name
	if i := strings.IndexByte(path, ' '); i >= 0 {
		path = path[i+1:]
	}
	if skipTransactions[path] {
		return 0
	}
	return defaultTracesSampleRate
}

// beforeSend drops client-disconnect noise.
func beforeSend(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
	if hint != nil && hint.OriginalException != nil {
		err := hint.OriginalException
		if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.EPIPE) {
			return nil
		}
	}
	return event
}

// CaptureAnalysisError reports a failed analysis together with request
// context (text statistics, device, input type).
func CaptureAnalysisError(err error, context map[string]interface{}) {
	sentry.WithScope(func(scope *sentry.Scope) {
		for k, v := range context {
			scope.SetExtra(k, v)
		}
		sentry.CaptureException(err)
	})
}

// Flush waits for buffered events to be delivered before shutdown.
func Flush(timeout time.Duration) {
	sentry.Flush(timeout)
}
