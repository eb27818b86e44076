package qnet

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VanDung-dev/QNetX-Engine/metrics"
)

func TestTeleportDefaultFanout(t *testing.T) {
	transport := &recordingTransport{}
	m := metrics.NewMetrics("test", prometheus.NewRegistry())
	core := NewTeleportCore(transport, WithRecorder(m))

	err := core.Teleport(context.Background(), "A", "D", Path{"A", "B", "C", "D"}, Packet("x"))
	require.NoError(t, err)

	assert.Len(t, transport.hops(), 3)
	assert.Equal(t, 1.0, eventCount(m, metrics.EventTeleportAttempt))
	assert.Equal(t, 1.0, eventCount(m, metrics.EventTeleportSuccess))
	assert.Equal(t, 3.0, eventCount(m, metrics.EventHop))
}

func TestTeleportStrategyRunsExclusively(t *testing.T) {
	transport := &recordingTransport{}
	calls := 0
	core := NewTeleportCore(transport, WithStrategy(DeliveryFunc(func(context.Context, NodeID, NodeID, Path, Packet) error {
		calls++
		return nil
	})))

	require.NoError(t, core.Teleport(context.Background(), "A", "C", Path{"A", "B", "C"}, Packet("x")))
	assert.Equal(t, 1, calls)
	assert.Empty(t, transport.hops())
}

func TestTeleportFailureWrapsCause(t *testing.T) {
	boom := errors.New("unreachable")
	transport := &recordingTransport{fail: map[NodeID]error{"B": boom}}
	m := metrics.NewMetrics("test", prometheus.NewRegistry())
	core := NewTeleportCore(transport, WithRecorder(m))

	path := Path{"A", "B"}
	err := core.Teleport(context.Background(), "A", "B", path, Packet("x"))
	require.Error(t, err)

	var teleportErr *TeleportError
	require.ErrorAs(t, err, &teleportErr)
	assert.Equal(t, path, teleportErr.Path)
	assert.ErrorIs(t, err, ErrTeleport)
	assert.ErrorIs(t, err, ErrSend)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1.0, eventCount(m, metrics.EventTeleportFailure))
}

func TestTeleportSingleNodePath(t *testing.T) {
	transport := &recordingTransport{}
	core := NewTeleportCore(transport)

	require.NoError(t, core.Teleport(context.Background(), "A", "A", Path{"A"}, Packet("x")))
	assert.Empty(t, transport.hops())
}
