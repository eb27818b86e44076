package qnetx

import (
	"go.uber.org/zap"

	"github.com/VanDung-dev/QNetX-Engine/metrics"
	"github.com/VanDung-dev/QNetX-Engine/qnum"
)

// ZeroPropagator entangles channel states with a zero reference of the same
// width.
type ZeroPropagator struct {
	recorder metrics.Recorder
	logger   *zap.Logger
}

// NewZeroPropagator creates a ZeroPropagator.
func NewZeroPropagator(opts ...Option) *ZeroPropagator {
	o := buildOptions(opts)
	return &ZeroPropagator{recorder: o.recorder, logger: o.logger}
}

// Propagate entangles state with Zero(state.Len()) in place.
func (z *ZeroPropagator) Propagate(state *qnum.QNum) {
	qnum.Entangle(state, qnum.Zero(state.Len()))
	z.recorder.Inc(metrics.EventZeroPropagation)
}

// PropagateAll applies Propagate to every channel of mesh and returns the
// number of channels touched.
func (z *ZeroPropagator) PropagateAll(mesh *Mesh) int {
	n := 0
	mesh.Mutate(func(_ ChannelID, state *qnum.QNum) {
		z.Propagate(state)
		n++
	})
	z.logger.Debug("zero propagation pass", zap.Int("channels", n))
	return n
}
