package qnet

import (
	"go.uber.org/zap"

	"github.com/VanDung-dev/QNetX-Engine/metrics"
)

type options struct {
	recorder metrics.Recorder
	logger   *zap.Logger
	strategy DeliveryStrategy
	teleport *TeleportCore
}

// Option configures a TeleportCore or Relay.
type Option func(*options)

// WithRecorder sets the event sink. Defaults to metrics.Nop.
func WithRecorder(r metrics.Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.recorder = r
		}
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithStrategy installs a delivery strategy on a TeleportCore. The strategy
// replaces the default per-hop fan-out entirely.
func WithStrategy(s DeliveryStrategy) Option {
	return func(o *options) {
		o.strategy = s
	}
}

// WithTeleport makes a Relay hand whole paths to core.
func WithTeleport(core *TeleportCore) Option {
	return func(o *options) {
		o.teleport = core
	}
}

func buildOptions(opts []Option) options {
	o := options{
		recorder: metrics.Nop{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
