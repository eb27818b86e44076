// Package network provides the packet transports used by the relay.
//
// This package implements:
//   - ZmqNode: ZeroMQ transport with ROUTER/DEALER pattern
//   - NngTransport: NNG (mangos) transport with PUSH/PULL pattern
//   - PeerBook: node id to address mapping with stale peer pruning
package network

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/VanDung-dev/QNetX-Engine/qnet"
)

// Transport kinds
const (
	KindZMQ = "zmq"
	KindNNG = "nng"
)

// Common errors for network operations
var (
	ErrNodeNotRunning = errors.New("node is not running")
	ErrPeerNotFound   = errors.New("peer not found")
	ErrSendFailed     = errors.New("failed to send message")
	ErrUnknownKind    = errors.New("unknown transport kind")
)

// PacketHandler processes a packet delivered to this node.
type PacketHandler func(env *Envelope, packet qnet.Packet) error

// Transport is a running packet transport.
type Transport interface {
	qnet.Transport

	Start() error
	Stop()
	SetHandler(handler PacketHandler)
	RegisterPeer(id qnet.NodeID, address string)
	// UnregisterPeer forgets a peer and closes its socket. It reports
	// whether the peer was known.
	UnregisterPeer(id qnet.NodeID) bool
	Peers() []PeerInfo
	GetStats() NodeStats
}

// Config defines configuration for a transport.
type Config struct {
	NodeID   string `json:"node_id"`
	Kind     string `json:"kind"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Compress bool   `json:"compress"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		NodeID:   "node-1",
		Kind:     KindZMQ,
		Host:     "127.0.0.1",
		Port:     5555,
		Compress: true,
	}
}

// Address returns the listen endpoint in tcp://host:port form.
func (c Config) Address() string {
	return fmt.Sprintf("tcp://%s:%d", c.Host, c.Port)
}

// New creates a transport of the configured kind.
func New(config Config, logger *zap.Logger) (Transport, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch strings.ToLower(config.Kind) {
	case "", KindZMQ:
		return NewZmqNode(config, logger), nil
	case KindNNG:
		return NewNngTransport(config, logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, config.Kind)
	}
}

// NodeStats contains transport statistics.
type NodeStats struct {
	NodeID    string `json:"node_id"`
	Kind      string `json:"kind"`
	Address   string `json:"address"`
	PeerCount int    `json:"peer_count"`
	IsRunning bool   `json:"is_running"`
	QueueSize int    `json:"queue_size"`
	Received  int64  `json:"received"`
	Dropped   int64  `json:"dropped"`
}

// inbox is the receive pipeline shared by the transports: validation, replay
// protection and handler dispatch.
type inbox struct {
	book    *PeerBook
	logger  *zap.Logger
	msgChan chan *Envelope

	handler   PacketHandler
	handlerMu sync.RWMutex

	// Replay protection
	replayCache     map[string]time.Time
	replayCacheMu   sync.Mutex
	replayTolerance time.Duration

	statsMu  sync.Mutex
	received int64
	dropped  int64
}

func newInbox(book *PeerBook, logger *zap.Logger) *inbox {
	return &inbox{
		book:            book,
		logger:          logger,
		msgChan:         make(chan *Envelope, 1000),
		replayCache:     make(map[string]time.Time),
		replayTolerance: 60 * time.Second,
	}
}

func (in *inbox) setHandler(handler PacketHandler) {
	in.handlerMu.Lock()
	defer in.handlerMu.Unlock()
	in.handler = handler
}

// accept decodes raw bytes and queues the envelope without blocking.
func (in *inbox) accept(data []byte) {
	env, err := DecodeEnvelope(data)
	if err != nil {
		in.count(false)
		in.logger.Debug("discarding message", zap.Error(err))
		return
	}
	in.enqueue(env)
}

func (in *inbox) enqueue(env *Envelope) {
	if !in.isValidReplay(env) {
		in.count(false)
		return
	}

	in.book.Learn(env.Origin, env.ReplyTo)

	select {
	case in.msgChan <- env:
		in.count(true)
	default:
		// Channel full, drop message
		in.count(false)
	}
}

func (in *inbox) count(ok bool) {
	in.statsMu.Lock()
	defer in.statsMu.Unlock()
	if ok {
		in.received++
	} else {
		in.dropped++
	}
}

func (in *inbox) counters() (received, dropped int64) {
	in.statsMu.Lock()
	defer in.statsMu.Unlock()
	return in.received, in.dropped
}

// process dispatches queued envelopes until stop is closed.
func (in *inbox) process(stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case env := <-in.msgChan:
			in.handlerMu.RLock()
			handler := in.handler
			in.handlerMu.RUnlock()

			if handler == nil {
				continue
			}
			packet, err := env.Packet()
			if err != nil {
				in.logger.Debug("undecodable payload", zap.Error(err))
				continue
			}
			if err := handler(env, packet); err != nil {
				in.logger.Warn("packet handler failed",
					zap.String("from", string(env.From)),
					zap.String("to", string(env.To)),
					zap.Error(err))
			}
		}
	}
}

// isValidReplay checks that a message is fresh and not seen before.
func (in *inbox) isValidReplay(env *Envelope) bool {
	if env.Nonce == "" {
		return true
	}

	in.replayCacheMu.Lock()
	defer in.replayCacheMu.Unlock()

	if _, seen := in.replayCache[env.Nonce]; seen {
		return false
	}
	if time.Since(env.Timestamp) > in.replayTolerance {
		return false
	}

	in.replayCache[env.Nonce] = time.Now()
	return true
}

// replayCacheCleaner periodically cleans old entries from the replay cache.
func (in *inbox) replayCacheCleaner(stop <-chan struct{}) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			in.cleanReplayCache(time.Now())
		}
	}
}

func (in *inbox) cleanReplayCache(now time.Time) {
	in.replayCacheMu.Lock()
	defer in.replayCacheMu.Unlock()

	cutoff := now.Add(-in.replayTolerance)
	for nonce, ts := range in.replayCache {
		if ts.Before(cutoff) {
			delete(in.replayCache, nonce)
		}
	}
}
