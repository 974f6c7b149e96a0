package server

import (
	"log"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/itrgo/internal/config"
)

// InitSentry configures error reporting. An empty DSN leaves reporting
// disabled; init failures are logged and never fatal.
func InitSentry(cfg config.AppConfig) {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
		Release:     cfg.SentryRelease,
		BeforeSend: func(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
			// request bodies carry salary details
			event.User = sentry.User{}
			if event.Request != nil {
				event.Request.Data = ""
			}
			return event
		},
	})
	if err != nil {
		log.Printf("sentry init (non-blocking): %s", err)
	}
	if cfg.SentryDSN == "" {
		log.Println("SENTRY_DSN empty, error tracking disabled")
	} else {
		log.Println("sentry initialized")
	}
}

// FlushSentry waits briefly for queued events
func FlushSentry() { sentry.Flush(2 * time.Second) }

// CaptureError reports err with tags
func CaptureError(err error, tags map[string]string) {
	if err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		for k, v := range tags {
			scope.SetTag(k, v)
		}
		sentry.CaptureException(err)
	})
}

// recovery turns handler panics into 500 responses and reports them
func recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("PANIC: %s %s: %v", c.Request.Method, c.Request.URL.Path, rec)
				hub := sentry.CurrentHub().Clone()
				hub.WithScope(func(scope *sentry.Scope) {
					scope.SetTag("endpoint", c.FullPath())
					scope.SetTag("method", c.Request.Method)
					scope.SetLevel(sentry.LevelFatal)
					hub.RecoverWithContext(c.Request.Context(), rec)
				})
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Error:   "INTERNAL_ERROR",
					Message: "internal server error",
					Code:    http.StatusInternalServerError,
				})
			}
		}()
		c.Next()
	}
}
