package network

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.nanomsg.org/mangos/v3"
	"go.nanomsg.org/mangos/v3/protocol/pull"
	"go.nanomsg.org/mangos/v3/protocol/push"
	"go.uber.org/zap"

	// Register all transports (tcp, ipc, inproc, ...)
	_ "go.nanomsg.org/mangos/v3/transport/all"

	"github.com/VanDung-dev/QNetX-Engine/qnet"
)

// nngSendTimeout bounds a single push when the peer is not reading.
const nngSendTimeout = 5 * time.Second

// NngTransport is a pure-Go NNG transport. It receives on a PULL socket and
// sends through one PUSH socket per peer.
type NngTransport struct {
	config  Config
	nodeID  qnet.NodeID
	address string

	pull   mangos.Socket
	pushes map[qnet.NodeID]mangos.Socket

	book   *PeerBook
	inbox  *inbox
	logger *zap.Logger

	running bool
	mu      sync.RWMutex
	stop    chan struct{}
	wg      sync.WaitGroup
}

// NewNngTransport creates a new NNG transport.
func NewNngTransport(config Config, logger *zap.Logger) *NngTransport {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("nng")

	t := &NngTransport{
		config:  config,
		nodeID:  qnet.NodeID(config.NodeID),
		address: config.Address(),
		pushes:  make(map[qnet.NodeID]mangos.Socket),
		logger:  logger,
		stop:    make(chan struct{}),
	}
	t.book = NewPeerBook(t.closePush)
	t.inbox = newInbox(t.book, logger)
	return t
}

// Start binds the PULL socket and starts the receive pipeline.
func (t *NngTransport) Start() error {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return errors.New("transport already running")
	}

	sock, err := pull.NewSocket()
	if err != nil {
		t.mu.Unlock()
		return fmt.Errorf("failed to create pull socket: %w", err)
	}
	if err := sock.SetOption(mangos.OptionMaxRecvSize, MaxNetworkMessageSize); err != nil {
		_ = sock.Close()
		t.mu.Unlock()
		return fmt.Errorf("failed to set max recv size: %w", err)
	}
	if err := sock.Listen(t.address); err != nil {
		_ = sock.Close()
		t.mu.Unlock()
		return fmt.Errorf("failed to listen on %s: %w", t.address, err)
	}

	t.pull = sock
	t.running = true
	t.mu.Unlock()

	t.book.Start()

	t.wg.Add(3)
	go func() {
		defer t.wg.Done()
		t.receiverLoop()
	}()
	go func() {
		defer t.wg.Done()
		t.inbox.process(t.stop)
	}()
	go func() {
		defer t.wg.Done()
		t.inbox.replayCacheCleaner(t.stop)
	}()

	t.logger.Info("nng transport started",
		zap.String("node_id", string(t.nodeID)),
		zap.String("address", t.address))
	return nil
}

// Stop gracefully shuts down the transport.
func (t *NngTransport) Stop() {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}
	t.running = false
	close(t.stop)

	if err := t.pull.Close(); err != nil {
		t.logger.Debug("pull close", zap.Error(err))
	}
	for id, sock := range t.pushes {
		if err := sock.Close(); err != nil {
			t.logger.Debug("push close", zap.String("peer", string(id)), zap.Error(err))
		}
		delete(t.pushes, id)
	}
	t.mu.Unlock()

	t.book.Stop()
	t.wg.Wait()
}

// RegisterPeer adds a static peer.
func (t *NngTransport) RegisterPeer(id qnet.NodeID, address string) {
	t.book.Register(id, address)
}

// UnregisterPeer removes a peer and closes its socket.
func (t *NngTransport) UnregisterPeer(id qnet.NodeID) bool {
	return t.book.Unregister(id)
}

// SetHandler sets the packet handler callback.
func (t *NngTransport) SetHandler(handler PacketHandler) {
	t.inbox.setHandler(handler)
}

// Peers returns all known peers.
func (t *NngTransport) Peers() []PeerInfo {
	return t.book.Peers()
}

// SendDirect delivers packet for the hop from -> to. Packets addressed to
// this node are queued locally.
func (t *NngTransport) SendDirect(ctx context.Context, from, to qnet.NodeID, packet qnet.Packet) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.mu.RLock()
	running := t.running
	t.mu.RUnlock()
	if !running {
		return ErrNodeNotRunning
	}

	env := NewPacketEnvelope(t.nodeID, t.address, from, to, packet, t.config.Compress)
	if to == t.nodeID {
		t.inbox.enqueue(env)
		return nil
	}

	address, ok := t.book.Lookup(to)
	if !ok {
		return fmt.Errorf("%w: %s", ErrPeerNotFound, to)
	}

	sock, err := t.getOrCreatePush(to, address)
	if err != nil {
		return err
	}

	data, err := env.Encode()
	if err != nil {
		return err
	}

	if deadline, ok := ctx.Deadline(); ok {
		if err := sock.SetOption(mangos.OptionSendDeadline, time.Until(deadline)); err != nil {
			return fmt.Errorf("%w: %v", ErrSendFailed, err)
		}
	}
	if err := sock.Send(data); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	return nil
}

// getOrCreatePush gets or creates a PUSH socket for a peer.
func (t *NngTransport) getOrCreatePush(id qnet.NodeID, address string) (mangos.Socket, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return nil, ErrNodeNotRunning
	}
	if sock, ok := t.pushes[id]; ok {
		return sock, nil
	}

	sock, err := push.NewSocket()
	if err != nil {
		return nil, fmt.Errorf("failed to create push socket: %w", err)
	}
	if err := sock.SetOption(mangos.OptionSendDeadline, nngSendTimeout); err != nil {
		_ = sock.Close()
		return nil, fmt.Errorf("failed to set send deadline: %w", err)
	}
	if err := sock.Dial(address); err != nil {
		_ = sock.Close()
		return nil, fmt.Errorf("failed to connect to %s: %w", address, err)
	}

	t.pushes[id] = sock
	return sock, nil
}

// closePush drops the socket of an evicted peer.
func (t *NngTransport) closePush(id qnet.NodeID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if sock, ok := t.pushes[id]; ok {
		_ = sock.Close()
		delete(t.pushes, id)
	}
}

// receiverLoop receives from the PULL socket until it is closed.
func (t *NngTransport) receiverLoop() {
	for {
		data, err := t.pull.Recv()
		if err != nil {
			if errors.Is(err, mangos.ErrClosed) {
				return
			}
			select {
			case <-t.stop:
				return
			default:
				continue
			}
		}
		t.inbox.accept(data)
	}
}

// GetStats returns current transport statistics.
func (t *NngTransport) GetStats() NodeStats {
	t.mu.RLock()
	running := t.running
	t.mu.RUnlock()

	received, dropped := t.inbox.counters()
	return NodeStats{
		NodeID:    string(t.nodeID),
		Kind:      KindNNG,
		Address:   t.address,
		PeerCount: t.book.Len(),
		IsRunning: running,
		QueueSize: len(t.inbox.msgChan),
		Received:  received,
		Dropped:   dropped,
	}
}

var _ Transport = (*NngTransport)(nil)
