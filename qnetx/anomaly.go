package qnetx

import (
	"go.uber.org/zap"

	"github.com/VanDung-dev/QNetX-Engine/metrics"
)

// AnomalyFilter flags channels whose state entropy exceeds a threshold.
type AnomalyFilter struct {
	threshold float64
	recorder  metrics.Recorder
	logger    *zap.Logger
}

// NewAnomalyFilter creates a filter using config.AnomalyThreshold, or
// DefaultAnomalyThreshold when unset.
func NewAnomalyFilter(config Config, opts ...Option) *AnomalyFilter {
	o := buildOptions(opts)

	threshold := DefaultAnomalyThreshold
	if config.AnomalyThreshold != nil {
		threshold = *config.AnomalyThreshold
	}

	return &AnomalyFilter{
		threshold: threshold,
		recorder:  o.recorder,
		logger:    o.logger,
	}
}

// Threshold returns the entropy threshold in nats.
func (f *AnomalyFilter) Threshold() float64 {
	return f.threshold
}

// Flagged returns the ids of all channels with entropy > threshold, ordered
// by id. It records no events and logs nothing.
func (f *AnomalyFilter) Flagged(mesh *Mesh) []ChannelID {
	var flagged []ChannelID
	for _, ch := range mesh.Channels() {
		if ch.State.Entropy() > f.threshold {
			flagged = append(flagged, ch.ID)
		}
	}
	return flagged
}

// Detect is Flagged plus one anomaly_detected event and a warning per
// flagged channel. The maintenance loop calls it; read-only callers should
// use Flagged.
func (f *AnomalyFilter) Detect(mesh *Mesh) []ChannelID {
	var flagged []ChannelID

	for _, ch := range mesh.Channels() {
		entropy := ch.State.Entropy()
		if entropy > f.threshold {
			flagged = append(flagged, ch.ID)
			f.recorder.Inc(metrics.EventAnomalyDetected)
			f.logger.Warn("anomalous channel",
				zap.Stringer("channel_id", ch.ID),
				zap.Float64("entropy", entropy),
				zap.Float64("threshold", f.threshold))
		}
	}

	return flagged
}
