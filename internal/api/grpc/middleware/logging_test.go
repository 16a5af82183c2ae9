package middleware

import (
	"bytes"
	"context"
	"testing"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/tokenauth/internal/logger"
	"github.com/dtroode/tokenauth/internal/testutil"
)

func TestLogging_LoggerWritesThroughSlog(t *testing.T) {
	var buf bytes.Buffer
	lg := NewLogging(logger.NewWithFormat(&buf, 0, "text"))

	lg.Logger().Log(context.Background(), logging.LevelInfo, "finished call", "grpc.code", "OK")
	lg.Logger().Log(context.Background(), logging.LevelDebug, "hidden")

	assert.Contains(t, buf.String(), "finished call")
	assert.Contains(t, buf.String(), "grpc.code=OK")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestLogging_Interceptors(t *testing.T) {
	lg := NewLogging(testutil.MakeNoopLogger())
	assert.Len(t, lg.UnaryInterceptors(), 2)
	assert.Len(t, lg.StreamInterceptors(), 2)
}

func TestLogging_RecoversPanics(t *testing.T) {
	lg := NewLogging(testutil.MakeNoopLogger())
	recoverer := lg.UnaryInterceptors()[1]

	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}
	_, err := recoverer(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
		panic("boom")
	})

	require.Error(t, err)
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestLogging_PassesErrorsThrough(t *testing.T) {
	lg := NewLogging(testutil.MakeNoopLogger())
	logInterceptor := lg.UnaryInterceptors()[0]

	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}
	_, err := logInterceptor(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
		return nil, status.Error(codes.NotFound, "unknown service")
	})

	assert.Equal(t, codes.NotFound, status.Code(err))
}
