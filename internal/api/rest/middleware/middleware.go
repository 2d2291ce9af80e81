// Package middleware holds the huma middlewares of the contacts API.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/dtroode/rolodex/internal/logger"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-Id"

type loggerKey struct{}

var buckets = metrics.ExponentialBuckets(1e-3, 5, 6)

// LoggerFromContext returns the request logger, or fallback if there is none.
func LoggerFromContext(ctx context.Context, fallback *logger.Logger) *logger.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*logger.Logger); ok {
		return l
	}
	return fallback
}

// RequestLogger puts a request scoped logger in the context and logs the
// request after it has terminated. Requests without an id get a fresh one.
func RequestLogger(parent *logger.Logger) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		requestID := ctx.Header(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.SetHeader(RequestIDHeader, requestID)

		l := parent.With("request_id", requestID)

		start := time.Now()
		next(huma.WithValue(ctx, loggerKey{}, l.With("op", ctx.Operation().OperationID)))

		l.LogAttrs(context.Background(), slog.LevelInfo,
			strings.Join([]string{ctx.Operation().Method, ctx.Operation().Path, ctx.Version().Proto}, " "),
			slog.String("from", ctx.RemoteAddr()),
			slog.String("ua", ctx.Header("User-Agent")),
			slog.Int("status", ctx.Status()),
			slog.Duration("dur", time.Since(start)),
		)
	}
}

// Recover logs the value of a panic and answers with 500.
func Recover(fallback *logger.Logger) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		defer func() {
			if v := recover(); v != nil {
				LoggerFromContext(ctx.Context(), fallback).
					LogAttrs(context.Background(), slog.LevelError, "panic occurred", slog.Any("recovered", v))
				ctx.SetStatus(http.StatusInternalServerError)
			}
		}()
		next(ctx)
	}
}

// ErrorHandler logs operation errors with the request logger. The level
// follows the status class of the error.
func ErrorHandler(fallback *logger.Logger) func(context.Context, error) {
	return func(ctx context.Context, err error) {
		level := slog.LevelError
		attrs := []slog.Attr{slog.Any("err", err)}

		var statusErr huma.StatusError
		if errors.As(err, &statusErr) {
			switch statusErr.GetStatus() / 100 {
			case 4:
				level = slog.LevelWarn
			case 3:
				level = slog.LevelInfo
			}
			attrs = append(attrs, slog.Int("status", statusErr.GetStatus()))
		}

		LoggerFromContext(ctx, fallback).LogAttrs(context.Background(), level, "error occurred", attrs...)
	}
}

// Meter counts requests and observes their duration per operation and status.
func Meter(set *metrics.Set) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		op, start := ctx.Operation(), time.Now()
		next(ctx)

		labels := `{method="` + op.Method + `",path="` + op.Path + `",status="` + strconv.Itoa(ctx.Status()) + `"}`
		set.GetOrCreateCounter("http_requests_total" + labels).Inc()
		set.GetOrCreatePrometheusHistogramExt("http_request_duration_seconds"+labels, buckets).UpdateDuration(start)
	}
}
