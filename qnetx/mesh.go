package qnetx

import (
	"context"
	"net"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/VanDung-dev/QNetX-Engine/metrics"
	"github.com/VanDung-dev/QNetX-Engine/qnum"
)

// Dialer opens outbound handshake connections. *net.Dialer satisfies it.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Option configures a Mesh or one of the registry utilities.
type Option func(*options)

type options struct {
	recorder metrics.Recorder
	logger   *zap.Logger
	dialer   Dialer
}

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

// WithDialer replaces the dialer used by Connect.
func WithDialer(d Dialer) Option {
	return func(o *options) {
		if d != nil {
			o.dialer = d
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		recorder: metrics.Nop{},
		logger:   zap.NewNop(),
		dialer:   &net.Dialer{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Mesh is the channel registry of a node.
//
// Insertion is atomic. Two handshakes that derive the same ChannelID race and
// the later insert silently replaces the earlier channel.
type Mesh struct {
	config   Config
	channels map[string]*Channel
	mu       sync.RWMutex

	dialer   Dialer
	recorder metrics.Recorder
	logger   *zap.Logger
}

// NewMesh creates an empty mesh.
func NewMesh(config Config, opts ...Option) *Mesh {
	o := buildOptions(opts)

	return &Mesh{
		config:   config,
		channels: make(map[string]*Channel),
		dialer:   o.dialer,
		recorder: o.recorder,
		logger:   o.logger,
	}
}

// Config returns the mesh configuration.
func (m *Mesh) Config() Config {
	return m.config
}

// EntangleChannel derives a channel for the pair (a, b), stores it and
// returns its id.
func (m *Mesh) EntangleChannel(a, b Dimension) ChannelID {
	state := qnum.FromDigits(channelSeed(a, b))
	qnum.Entangle(state, state.Clone())

	id := ChannelID(state.Clone().Measure())
	m.Insert(id, state)

	m.recorder.Inc(metrics.EventEntanglement)
	m.logger.Debug("entangled channel",
		zap.String("dim_a", string(a)),
		zap.String("dim_b", string(b)),
		zap.Stringer("channel_id", id))
	return id
}

// channelSeed takes the bytes of a then b, reduces each modulo 10 and keeps
// the first SeedWidth digits, zero padded.
func channelSeed(a, b Dimension) []uint8 {
	raw := []byte(string(a) + string(b))
	seed := make([]uint8, SeedWidth)
	for i := 0; i < SeedWidth && i < len(raw); i++ {
		seed[i] = raw[i] % 10
	}
	return seed
}

// Insert stores state under id, replacing any existing channel.
func (m *Mesh) Insert(id ChannelID, state *qnum.QNum) {
	key := id.Key()

	m.mu.Lock()
	_, replaced := m.channels[key]
	m.channels[key] = &Channel{
		ID:        slices.Clone(id),
		State:     state,
		CreatedAt: time.Now(),
	}
	n := len(m.channels)
	m.mu.Unlock()

	if replaced {
		m.logger.Debug("channel id collision, replacing state", zap.String("channel_id", key))
	}
	m.recorder.SetChannels(n)
}

// GetChannel returns a copy of the state stored under id.
func (m *Mesh) GetChannel(id ChannelID) (*qnum.QNum, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ch, ok := m.channels[id.Key()]
	if !ok {
		return nil, false
	}
	return ch.State.Clone(), true
}

// Lookup returns a copy of the channel stored under id, including its
// creation time.
func (m *Mesh) Lookup(id ChannelID) (Channel, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ch, ok := m.channels[id.Key()]
	if !ok {
		return Channel{}, false
	}
	return Channel{
		ID:        slices.Clone(ch.ID),
		State:     ch.State.Clone(),
		CreatedAt: ch.CreatedAt,
	}, true
}

// Len returns the number of registered channels.
func (m *Mesh) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.channels)
}

// Channels returns a snapshot of all channels ordered by id. States are
// copies and may be used without holding any lock.
func (m *Mesh) Channels() []Channel {
	m.mu.RLock()
	out := make([]Channel, 0, len(m.channels))
	for _, ch := range m.channels {
		out = append(out, Channel{
			ID:        slices.Clone(ch.ID),
			State:     ch.State.Clone(),
			CreatedAt: ch.CreatedAt,
		})
	}
	m.mu.RUnlock()

	slices.SortFunc(out, func(a, b Channel) int {
		return strings.Compare(a.ID.Key(), b.ID.Key())
	})
	return out
}

// Mutate calls fn for every channel while holding the registry write lock.
// fn may modify the state in place.
func (m *Mesh) Mutate(fn func(id ChannelID, state *qnum.QNum)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, ch := range m.channels {
		fn(ch.ID, ch.State)
	}
}
