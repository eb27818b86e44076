package network

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-zeromq/zmq4"
	"go.uber.org/zap"

	"github.com/VanDung-dev/QNetX-Engine/qnet"
)

// ZmqNode is a ZeroMQ transport. It receives on a ROUTER socket and sends
// through one DEALER socket per peer.
type ZmqNode struct {
	config  Config
	nodeID  qnet.NodeID
	address string

	ctx    context.Context
	cancel context.CancelFunc

	router  zmq4.Socket                 // ROUTER socket for receiving
	dealers map[qnet.NodeID]zmq4.Socket // DEALER sockets for sending (per peer)

	book   *PeerBook
	inbox  *inbox
	logger *zap.Logger

	running bool
	mu      sync.RWMutex
	stop    chan struct{}
	wg      sync.WaitGroup
}

// NewZmqNode creates a new ZeroMQ node.
func NewZmqNode(config Config, logger *zap.Logger) *ZmqNode {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("zmq")

	n := &ZmqNode{
		config:  config,
		nodeID:  qnet.NodeID(config.NodeID),
		address: config.Address(),
		dealers: make(map[qnet.NodeID]zmq4.Socket),
		logger:  logger,
		stop:    make(chan struct{}),
	}
	n.ctx, n.cancel = context.WithCancel(context.Background())
	n.book = NewPeerBook(n.closeDealer)
	n.inbox = newInbox(n.book, logger)
	return n
}

// Start binds the ROUTER socket and starts the receive pipeline.
func (n *ZmqNode) Start() error {
	n.mu.Lock()
	if n.running {
		n.mu.Unlock()
		return errors.New("node already running")
	}

	n.router = zmq4.NewRouter(n.ctx, zmq4.WithID(zmq4.SocketIdentity(n.nodeID)))
	if err := n.router.Listen(n.address); err != nil {
		n.mu.Unlock()
		return fmt.Errorf("failed to bind router: %w", err)
	}

	n.running = true
	n.mu.Unlock()

	n.book.Start()

	n.wg.Add(3)
	go func() {
		defer n.wg.Done()
		n.receiverLoop()
	}()
	go func() {
		defer n.wg.Done()
		n.inbox.process(n.stop)
	}()
	go func() {
		defer n.wg.Done()
		n.inbox.replayCacheCleaner(n.stop)
	}()

	n.logger.Info("zmq transport started",
		zap.String("node_id", string(n.nodeID)),
		zap.String("address", n.address))
	return nil
}

// Stop gracefully shuts down the node.
func (n *ZmqNode) Stop() {
	n.mu.Lock()
	if !n.running {
		n.mu.Unlock()
		return
	}
	n.running = false

	n.cancel()
	close(n.stop)

	if err := n.router.Close(); err != nil {
		n.logger.Debug("router close", zap.Error(err))
	}
	for id, dealer := range n.dealers {
		if err := dealer.Close(); err != nil {
			n.logger.Debug("dealer close", zap.String("peer", string(id)), zap.Error(err))
		}
		delete(n.dealers, id)
	}
	n.mu.Unlock()

	n.book.Stop()
	n.wg.Wait()
}

// RegisterPeer adds a static peer.
func (n *ZmqNode) RegisterPeer(id qnet.NodeID, address string) {
	n.book.Register(id, address)
}

// UnregisterPeer removes a peer and closes its socket.
func (n *ZmqNode) UnregisterPeer(id qnet.NodeID) bool {
	return n.book.Unregister(id)
}

// SetHandler sets the packet handler callback.
func (n *ZmqNode) SetHandler(handler PacketHandler) {
	n.inbox.setHandler(handler)
}

// Peers returns all known peers.
func (n *ZmqNode) Peers() []PeerInfo {
	return n.book.Peers()
}

// SendDirect delivers packet for the hop from -> to. Packets addressed to
// this node are queued locally.
func (n *ZmqNode) SendDirect(ctx context.Context, from, to qnet.NodeID, packet qnet.Packet) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	n.mu.RLock()
	running := n.running
	n.mu.RUnlock()
	if !running {
		return ErrNodeNotRunning
	}

	env := NewPacketEnvelope(n.nodeID, n.address, from, to, packet, n.config.Compress)
	if to == n.nodeID {
		n.inbox.enqueue(env)
		return nil
	}

	address, ok := n.book.Lookup(to)
	if !ok {
		return fmt.Errorf("%w: %s", ErrPeerNotFound, to)
	}

	dealer, err := n.getOrCreateDealer(to, address)
	if err != nil {
		return err
	}

	data, err := env.Encode()
	if err != nil {
		return err
	}

	if err := dealer.Send(zmq4.NewMsg(data)); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	return nil
}

// getOrCreateDealer gets or creates a DEALER socket for a peer.
func (n *ZmqNode) getOrCreateDealer(id qnet.NodeID, address string) (zmq4.Socket, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.running {
		return nil, ErrNodeNotRunning
	}
	if dealer, ok := n.dealers[id]; ok {
		return dealer, nil
	}

	dealer := zmq4.NewDealer(n.ctx, zmq4.WithID(zmq4.SocketIdentity(n.nodeID)))
	if err := dealer.Dial(address); err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", address, err)
	}

	n.dealers[id] = dealer
	return dealer, nil
}

// closeDealer drops the socket of an evicted peer.
func (n *ZmqNode) closeDealer(id qnet.NodeID) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if dealer, ok := n.dealers[id]; ok {
		_ = dealer.Close()
		delete(n.dealers, id)
	}
}

// receiverLoop continuously receives messages from the ROUTER socket.
func (n *ZmqNode) receiverLoop() {
	for {
		msg, err := n.router.Recv()
		if err != nil {
			select {
			case <-n.ctx.Done():
				return
			default:
				continue
			}
		}

		// ROUTER prepends the sender identity frame; the envelope is last.
		if len(msg.Frames) == 0 {
			continue
		}
		n.inbox.accept(msg.Frames[len(msg.Frames)-1])
	}
}

// GetStats returns current node statistics.
func (n *ZmqNode) GetStats() NodeStats {
	n.mu.RLock()
	running := n.running
	n.mu.RUnlock()

	received, dropped := n.inbox.counters()
	return NodeStats{
		NodeID:    string(n.nodeID),
		Kind:      KindZMQ,
		Address:   n.address,
		PeerCount: n.book.Len(),
		IsRunning: running,
		QueueSize: len(n.inbox.msgChan),
		Received:  received,
		Dropped:   dropped,
	}
}

var _ Transport = (*ZmqNode)(nil)
