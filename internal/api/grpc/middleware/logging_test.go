package middleware

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/rolodex/internal/logger"
)

func TestLogging_HandleGRPC(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		handler  grpc.UnaryHandler
		wantCode codes.Code
		wantLog  []string
	}{
		{
			name: "success",
			handler: func(context.Context, any) (any, error) {
				return "ok", nil
			},
			wantCode: codes.OK,
			wantLog:  []string{"level=INFO", "code=OK", "method=/svc/Method"},
		},
		{
			name: "grpc error",
			handler: func(context.Context, any) (any, error) {
				return nil, status.Error(codes.InvalidArgument, "bad input")
			},
			wantCode: codes.InvalidArgument,
			wantLog:  []string{"level=WARN", "code=InvalidArgument", "bad input"},
		},
		{
			name: "plain error",
			handler: func(context.Context, any) (any, error) {
				return nil, errors.New("boom")
			},
			wantCode: codes.Unknown,
			wantLog:  []string{"level=ERROR", "code=Unknown", "boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			lg := NewLogging(logger.NewWithWriter(&buf, 0, "text"))

			info := &grpc.UnaryServerInfo{FullMethod: "/svc/Method"}
			resp, err := lg.HandleGRPC(context.Background(), struct{}{}, info, tt.handler)

			assert.Equal(t, tt.wantCode, status.Code(err))
			if tt.wantCode == codes.OK {
				require.NoError(t, err)
				assert.Equal(t, "ok", resp)
			}
			for _, want := range tt.wantLog {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

type fakeStream struct {
	grpc.ServerStream
}

func (fakeStream) Context() context.Context { return context.Background() }

func TestLogging_HandleStream(t *testing.T) {
	var buf bytes.Buffer
	lg := NewLogging(logger.NewWithWriter(&buf, 0, "text"))

	info := &grpc.StreamServerInfo{FullMethod: "/svc/Watch"}
	err := lg.HandleStream(nil, fakeStream{}, info, func(any, grpc.ServerStream) error {
		return status.Error(codes.Canceled, "gone")
	})

	assert.Equal(t, codes.Canceled, status.Code(err))
	assert.Contains(t, buf.String(), "method=/svc/Watch")
	assert.Contains(t, buf.String(), "code=Canceled")
}
