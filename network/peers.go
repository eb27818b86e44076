package network

import (
	"sort"
	"sync"
	"time"

	"github.com/VanDung-dev/QNetX-Engine/qnet"
)

// PeerInfo contains information about a network peer.
type PeerInfo struct {
	ID       qnet.NodeID `json:"id"`
	Address  string      `json:"address"`
	Static   bool        `json:"static"`
	LastSeen time.Time   `json:"last_seen"`
}

// PeerBook maps node ids to transport addresses. Statically registered peers
// are kept forever; peers learned from inbound traffic expire after
// staleTimeout without contact.
type PeerBook struct {
	peers   map[qnet.NodeID]*PeerInfo
	onEvict func(id qnet.NodeID)
	mu      sync.RWMutex

	// Configuration
	pruneInterval time.Duration
	staleTimeout  time.Duration

	// Control
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool
}

// NewPeerBook creates an empty peer book. onEvict, if non-nil, is called
// after a peer is removed.
func NewPeerBook(onEvict func(id qnet.NodeID)) *PeerBook {
	return &PeerBook{
		peers:         make(map[qnet.NodeID]*PeerInfo),
		onEvict:       onEvict,
		pruneInterval: 30 * time.Second,
		staleTimeout:  5 * time.Minute,
		stopChan:      make(chan struct{}),
	}
}

// Start begins pruning stale learned peers.
func (b *PeerBook) Start() {
	b.mu.Lock()
	if b.running {
		b.mu.Unlock()
		return
	}
	b.running = true
	b.mu.Unlock()

	b.wg.Add(1)
	go b.pruneLoop()
}

// Stop stops pruning.
func (b *PeerBook) Stop() {
	b.mu.Lock()
	if !b.running {
		b.mu.Unlock()
		return
	}
	b.running = false
	b.mu.Unlock()

	close(b.stopChan)
	b.wg.Wait()
}

// Register adds or replaces a static peer.
func (b *PeerBook) Register(id qnet.NodeID, address string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.peers[id] = &PeerInfo{
		ID:       id,
		Address:  address,
		Static:   true,
		LastSeen: time.Now(),
	}
}

// Learn records a peer seen on the wire. Static entries only get their
// LastSeen refreshed.
func (b *PeerBook) Learn(id qnet.NodeID, address string) {
	if id == "" || address == "" {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if peer, ok := b.peers[id]; ok {
		peer.LastSeen = time.Now()
		if !peer.Static {
			peer.Address = address
		}
		return
	}
	b.peers[id] = &PeerInfo{
		ID:       id,
		Address:  address,
		LastSeen: time.Now(),
	}
}

// Unregister removes a peer and reports whether it was known.
func (b *PeerBook) Unregister(id qnet.NodeID) bool {
	b.mu.Lock()
	_, ok := b.peers[id]
	delete(b.peers, id)
	b.mu.Unlock()

	if ok && b.onEvict != nil {
		b.onEvict(id)
	}
	return ok
}

// Lookup returns the address registered for id.
func (b *PeerBook) Lookup(id qnet.NodeID) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	peer, ok := b.peers[id]
	if !ok {
		return "", false
	}
	return peer.Address, true
}

// Peers returns a copy of all peers ordered by id.
func (b *PeerBook) Peers() []PeerInfo {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]PeerInfo, 0, len(b.peers))
	for _, peer := range b.peers {
		out = append(out, *peer)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of peers.
func (b *PeerBook) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.peers)
}

// Healthy returns peers that are static or were seen recently.
func (b *PeerBook) Healthy() []PeerInfo {
	cutoff := time.Now().Add(-b.staleTimeout)

	healthy := make([]PeerInfo, 0)
	for _, peer := range b.Peers() {
		if peer.Static || peer.LastSeen.After(cutoff) {
			healthy = append(healthy, peer)
		}
	}
	return healthy
}

// pruneLoop periodically removes stale learned peers.
func (b *PeerBook) pruneLoop() {
	defer b.wg.Done()

	ticker := time.NewTicker(b.pruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stopChan:
			return
		case <-ticker.C:
			b.prune(time.Now())
		}
	}
}

// prune removes learned peers not seen since staleTimeout before now.
func (b *PeerBook) prune(now time.Time) int {
	cutoff := now.Add(-b.staleTimeout)

	b.mu.Lock()
	var evicted []qnet.NodeID
	for id, peer := range b.peers {
		if !peer.Static && peer.LastSeen.Before(cutoff) {
			delete(b.peers, id)
			evicted = append(evicted, id)
		}
	}
	b.mu.Unlock()

	if b.onEvict != nil {
		for _, id := range evicted {
			b.onEvict(id)
		}
	}
	return len(evicted)
}
