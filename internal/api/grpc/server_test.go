package grpc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type fakeStore struct{ err error }

func (f *fakeStore) Ping(ctx context.Context) error { return f.err }

func TestProbeStore(t *testing.T) {
	s, hs := NewServer()
	defer s.Stop()
	ctx := context.Background()
	store := &fakeStore{}

	ProbeStore(ctx, hs, store)
	resp, err := hs.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)

	store.err = errors.New("connection refused")
	ProbeStore(ctx, hs, store)
	resp, err = hs.Check(ctx, &healthpb.HealthCheckRequest{Service: ""})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.Status)
}
