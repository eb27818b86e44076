package qnet

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/VanDung-dev/QNetX-Engine/metrics"
)

// DeliveryStrategy moves a packet along a complete path.
type DeliveryStrategy interface {
	Deliver(ctx context.Context, src, dst NodeID, path Path, packet Packet) error
}

// DeliveryFunc adapts a function to the DeliveryStrategy interface.
type DeliveryFunc func(ctx context.Context, src, dst NodeID, path Path, packet Packet) error

// Deliver calls f.
func (f DeliveryFunc) Deliver(ctx context.Context, src, dst NodeID, path Path, packet Packet) error {
	return f(ctx, src, dst, path, packet)
}

// TeleportCore delivers a packet over a whole path in one call.
type TeleportCore struct {
	strategy DeliveryStrategy
	recorder metrics.Recorder
	logger   *zap.Logger
}

// NewTeleportCore creates a TeleportCore. Without WithStrategy it fans out
// one send per hop over transport.
func NewTeleportCore(transport Transport, opts ...Option) *TeleportCore {
	o := buildOptions(opts)

	strategy := o.strategy
	if strategy == nil {
		strategy = &hopFanout{transport: transport, recorder: o.recorder}
	}

	return &TeleportCore{
		strategy: strategy,
		recorder: o.recorder,
		logger:   o.logger,
	}
}

// Teleport runs the configured strategy for path.
func (t *TeleportCore) Teleport(ctx context.Context, src, dst NodeID, path Path, packet Packet) error {
	t.recorder.Inc(metrics.EventTeleportAttempt)

	if err := t.strategy.Deliver(ctx, src, dst, path, packet); err != nil {
		t.recorder.Inc(metrics.EventTeleportFailure)
		t.logger.Debug("teleport failed",
			zap.String("src", string(src)),
			zap.String("dst", string(dst)),
			zap.Stringer("path", path),
			zap.Error(err))
		return &TeleportError{Path: path, Err: err}
	}

	t.recorder.Inc(metrics.EventTeleportSuccess)
	return nil
}

// hopFanout sends one packet copy per adjacent pair concurrently.
type hopFanout struct {
	transport Transport
	recorder  metrics.Recorder
}

func (h *hopFanout) Deliver(ctx context.Context, _, _ NodeID, path Path, packet Packet) error {
	return sendHops(ctx, h.transport, h.recorder, path, packet)
}

// sendHops issues every hop send at once and waits for all of them. It returns
// the first failure observed; sends already issued are neither cancelled nor
// rolled back.
func sendHops(ctx context.Context, transport Transport, recorder metrics.Recorder, path Path, packet Packet) error {
	var g errgroup.Group

	for i := 0; i+1 < len(path); i++ {
		from, to := path[i], path[i+1]
		hopPacket := packet.Clone()

		g.Go(func() error {
			recorder.Inc(metrics.EventHop)
			if err := transport.SendDirect(ctx, from, to, hopPacket); err != nil {
				return &SendError{From: from, To: to, Err: err}
			}
			return nil
		})
	}

	return g.Wait()
}
