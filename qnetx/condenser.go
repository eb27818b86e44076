package qnetx

import (
	"fmt"

	"github.com/VanDung-dev/QNetX-Engine/metrics"
	"github.com/VanDung-dev/QNetX-Engine/qnum"
)

// StateCondenser aggregates channel states with qnum.Add.
type StateCondenser struct {
	recorder metrics.Recorder
}

// NewStateCondenser creates a StateCondenser.
func NewStateCondenser(opts ...Option) *StateCondenser {
	o := buildOptions(opts)
	return &StateCondenser{recorder: o.recorder}
}

// CondenseAll folds every channel state of mesh in ChannelID order.
func (c *StateCondenser) CondenseAll(mesh *Mesh) (*qnum.QNum, error) {
	channels := mesh.Channels()
	if len(channels) == 0 {
		return nil, fmt.Errorf("%w: no channels to condense", ErrCondensation)
	}

	acc := channels[0].State
	for _, ch := range channels[1:] {
		acc = qnum.Add(acc, ch.State)
	}

	c.recorder.Inc(metrics.EventCondenseAll)
	return acc, nil
}

// CondenseByPrefix folds channel states grouped by the first digit of their
// ChannelID. Channels with an empty id are skipped.
func (c *StateCondenser) CondenseByPrefix(mesh *Mesh) map[uint8]*qnum.QNum {
	groups := make(map[uint8]*qnum.QNum)

	for _, ch := range mesh.Channels() {
		if len(ch.ID) == 0 {
			continue
		}
		prefix := ch.ID[0]
		if acc, ok := groups[prefix]; ok {
			groups[prefix] = qnum.Add(acc, ch.State)
		} else {
			groups[prefix] = ch.State
		}
	}

	c.recorder.Inc(metrics.EventCondenseByPrefix)
	return groups
}
