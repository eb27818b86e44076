// Package api exposes a running node over HTTP and gRPC.
//
// This package implements:
//   - HTTPServer: chi router with /metrics, /health, /status and channel views
//   - GRPCServer: the qnetx.admin.v1.Admin protobuf service (see proto/)
//   - Authenticator: bearer token checks shared by both surfaces
package api

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/VanDung-dev/QNetX-Engine/network"
	"github.com/VanDung-dev/QNetX-Engine/qnet"
	"github.com/VanDung-dev/QNetX-Engine/qnetx"
	"github.com/VanDung-dev/QNetX-Engine/qnum"
)

// Version is the current version of the QNetX Engine.
const Version = "0.1.0"

// Common errors for admin operations
var (
	ErrChannelNotFound = errors.New("channel not found")
	ErrInvalidRequest  = errors.New("invalid request")
	ErrUnavailable     = errors.New("component not configured")
)

// Backend bundles the node components the admin surfaces expose. Relay and
// Transport may be nil on nodes without a routing topology.
type Backend struct {
	NodeID    string
	Relay     *qnet.Relay
	Mesh      *qnetx.Mesh
	Anomaly   *qnetx.AnomalyFilter
	Condenser *qnetx.StateCondenser
	Transport network.Transport
	StartTime time.Time
}

// StateView describes a QNum.
type StateView struct {
	Width         int                 `json:"width"`
	Entropy       float64             `json:"entropy"`
	MostLikely    string              `json:"most_likely"`
	Probabilities []qnum.Distribution `json:"probabilities,omitempty"`
}

// ChannelView describes a registered channel.
type ChannelView struct {
	ID        qnetx.ChannelID `json:"id"`
	Key       string          `json:"key"`
	CreatedAt time.Time       `json:"created_at"`
	StateView
}

// RelayRequest asks the node to relay Payload from Src to Dst.
type RelayRequest struct {
	Src     string `json:"src"`
	Dst     string `json:"dst"`
	Payload []byte `json:"payload"`
}

// RelayResponse reports the route taken.
type RelayResponse struct {
	Path []string `json:"path"`
	Hops int      `json:"hops"`
}

// GetChannelRequest selects a channel by its digit string, e.g. "0200".
type GetChannelRequest struct {
	ID string `json:"id"`
}

// CondenseRequest selects the condensation mode.
type CondenseRequest struct {
	ByPrefix bool `json:"by_prefix"`
}

// CondenseResponse holds the condensed state, or one state per prefix.
type CondenseResponse struct {
	All      *StateView            `json:"all,omitempty"`
	ByPrefix map[string]*StateView `json:"by_prefix,omitempty"`
}

// AnomaliesResponse lists channels over the entropy threshold.
type AnomaliesResponse struct {
	Threshold float64           `json:"threshold"`
	Channels  []qnetx.ChannelID `json:"channels"`
}

// HealthResponse is the liveness summary.
type HealthResponse struct {
	Healthy       bool   `json:"healthy"`
	Version       string `json:"version"`
	NodeID        string `json:"node_id"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Channels      int    `json:"channels"`
}

// StatusResponse extends HealthResponse with routing and transport details.
type StatusResponse struct {
	HealthResponse
	Teleport  bool               `json:"teleport"`
	KPaths    int                `json:"k_paths,omitempty"`
	Nodes     []qnet.NodeID      `json:"nodes,omitempty"`
	Transport *network.NodeStats `json:"transport,omitempty"`
	Peers     []network.PeerInfo `json:"peers,omitempty"`
}

func newStateView(q *qnum.QNum, withProbabilities bool) *StateView {
	v := &StateView{
		Width:      q.Len(),
		Entropy:    q.Entropy(),
		MostLikely: q.String(),
	}
	if withProbabilities {
		v.Probabilities = make([]qnum.Distribution, q.Len())
		for i := range v.Probabilities {
			v.Probabilities[i] = q.Probabilities(i)
		}
	}
	return v
}

// Health reports liveness.
func (b *Backend) Health() *HealthResponse {
	h := &HealthResponse{
		Healthy:       true,
		Version:       Version,
		NodeID:        b.NodeID,
		UptimeSeconds: int64(time.Since(b.StartTime).Seconds()),
	}
	if b.Mesh != nil {
		h.Channels = b.Mesh.Len()
	}
	return h
}

// Status reports health plus routing and transport state.
func (b *Backend) Status() *StatusResponse {
	s := &StatusResponse{HealthResponse: *b.Health()}
	if b.Relay != nil {
		s.Teleport = b.Relay.Teleporting()
		s.KPaths = b.Relay.Router().KPaths()
		s.Nodes = b.Relay.Router().Nodes()
	}
	if b.Transport != nil {
		stats := b.Transport.GetStats()
		s.Transport = &stats
		s.Peers = b.Transport.Peers()
	}
	return s
}

// Channels lists every channel without probability tables.
func (b *Backend) Channels() ([]ChannelView, error) {
	if b.Mesh == nil {
		return nil, ErrUnavailable
	}
	channels := b.Mesh.Channels()
	out := make([]ChannelView, len(channels))
	for i, ch := range channels {
		out[i] = ChannelView{
			ID:        ch.ID,
			Key:       ch.ID.String(),
			CreatedAt: ch.CreatedAt,
			StateView: *newStateView(ch.State, false),
		}
	}
	return out, nil
}

// Channel returns one channel including its probability table.
func (b *Backend) Channel(key string) (*ChannelView, error) {
	if b.Mesh == nil {
		return nil, ErrUnavailable
	}
	id, err := qnetx.ParseChannelID(key)
	if err != nil || len(id) == 0 {
		return nil, fmt.Errorf("%w: channel id %q", ErrInvalidRequest, key)
	}

	ch, ok := b.Mesh.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrChannelNotFound, key)
	}
	return &ChannelView{
		ID:        ch.ID,
		Key:       ch.ID.String(),
		CreatedAt: ch.CreatedAt,
		StateView: *newStateView(ch.State, true),
	}, nil
}

// Condense folds channel states, either all together or per prefix.
func (b *Backend) Condense(byPrefix bool) (*CondenseResponse, error) {
	if b.Mesh == nil || b.Condenser == nil {
		return nil, ErrUnavailable
	}

	if byPrefix {
		groups := b.Condenser.CondenseByPrefix(b.Mesh)
		out := &CondenseResponse{ByPrefix: make(map[string]*StateView, len(groups))}
		for prefix, state := range groups {
			out.ByPrefix[strconv.Itoa(int(prefix))] = newStateView(state, true)
		}
		return out, nil
	}

	state, err := b.Condenser.CondenseAll(b.Mesh)
	if err != nil {
		return nil, err
	}
	return &CondenseResponse{All: newStateView(state, true)}, nil
}

// Anomalies lists the channels the anomaly filter would flag. It is a read:
// no events are recorded and nothing is logged.
func (b *Backend) Anomalies() (*AnomaliesResponse, error) {
	if b.Mesh == nil || b.Anomaly == nil {
		return nil, ErrUnavailable
	}
	ids := b.Anomaly.Flagged(b.Mesh)
	if ids == nil {
		ids = []qnetx.ChannelID{}
	}
	return &AnomaliesResponse{Threshold: b.Anomaly.Threshold(), Channels: ids}, nil
}

// RelayPacket relays req.Payload through the node's relay.
func (b *Backend) RelayPacket(ctx context.Context, req *RelayRequest) (*RelayResponse, error) {
	if b.Relay == nil {
		return nil, ErrUnavailable
	}
	if req.Src == "" || req.Dst == "" {
		return nil, fmt.Errorf("%w: src and dst are required", ErrInvalidRequest)
	}

	path, err := b.Relay.Relay(ctx, qnet.NodeID(req.Src), qnet.NodeID(req.Dst), qnet.Packet(req.Payload))
	if err != nil {
		return nil, err
	}

	hops := make([]string, len(path))
	for i, n := range path {
		hops[i] = string(n)
	}
	return &RelayResponse{Path: hops, Hops: path.Hops()}, nil
}

// ForgetPeer removes a peer from the transport and closes its socket.
func (b *Backend) ForgetPeer(id string) error {
	if b.Transport == nil {
		return ErrUnavailable
	}
	if id == "" {
		return fmt.Errorf("%w: peer id is required", ErrInvalidRequest)
	}
	if !b.Transport.UnregisterPeer(qnet.NodeID(id)) {
		return fmt.Errorf("%w: %s", network.ErrPeerNotFound, id)
	}
	return nil
}
