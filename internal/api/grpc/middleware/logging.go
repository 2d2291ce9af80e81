package middleware

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/rolodex/internal/logger"
)

// Logging logs one line per finished gRPC call.
type Logging struct {
	logger *logger.Logger
}

func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// HandleGRPC is the unary interceptor.
func (l *Logging) HandleGRPC(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	l.log(ctx, info.FullMethod, start, err)
	return resp, err
}

// HandleStream is the stream interceptor.
func (l *Logging) HandleStream(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	start := time.Now()
	err := handler(srv, ss)
	l.log(ss.Context(), info.FullMethod, start, err)
	return err
}

func (l *Logging) log(ctx context.Context, method string, start time.Time, err error) {
	code := status.Code(err)

	level := slog.LevelInfo
	attrs := []slog.Attr{
		slog.String("method", method),
		slog.String("code", code.String()),
		slog.Duration("dur", time.Since(start)),
	}
	if err != nil {
		level = slog.LevelWarn
		if code == codes.Internal || code == codes.Unknown {
			level = slog.LevelError
		}
		attrs = append(attrs, slog.Any("error", err))
	}

	l.logger.LogAttrs(ctx, level, "gRPC call", attrs...)
}
