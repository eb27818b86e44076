package qnet

import (
	"context"

	"go.uber.org/zap"

	"github.com/VanDung-dev/QNetX-Engine/metrics"
)

// Relay forwards packets along routes chosen by a Router.
type Relay struct {
	router    *Router
	transport Transport
	teleport  *TeleportCore
	recorder  metrics.Recorder
	logger    *zap.Logger
}

// NewRelay creates a relay. With WithTeleport every selected path is handed
// to the TeleportCore; otherwise hops are sent over transport.
func NewRelay(router *Router, transport Transport, opts ...Option) *Relay {
	o := buildOptions(opts)

	return &Relay{
		router:    router,
		transport: transport,
		teleport:  o.teleport,
		recorder:  o.recorder,
		logger:    o.logger,
	}
}

// Relay selects a route from src to dst and delivers packet along it. The
// selected path is returned whenever one was found, including on failure.
func (r *Relay) Relay(ctx context.Context, src, dst NodeID, packet Packet) (Path, error) {
	r.recorder.Inc(metrics.EventRelayAttempt)

	path, err := r.router.SelectRoute(src, dst)
	if err != nil {
		return nil, err
	}
	r.recorder.ObservePathLength(path.Hops())

	if r.teleport != nil {
		if err := r.teleport.Teleport(ctx, src, dst, path, packet); err != nil {
			return path, err
		}
	} else if err := sendHops(ctx, r.transport, r.recorder, path, packet); err != nil {
		r.logger.Debug("relay hop failed", zap.Stringer("path", path), zap.Error(err))
		return path, err
	}

	r.recorder.Inc(metrics.EventRelaySuccess)
	r.logger.Debug("relayed packet",
		zap.Stringer("path", path),
		zap.Int("bytes", len(packet)))
	return path, nil
}

// Router returns the relay's router.
func (r *Relay) Router() *Router {
	return r.router
}

// Teleporting reports whether whole paths go through a TeleportCore.
func (r *Relay) Teleporting() bool {
	return r.teleport != nil
}
