// Package qnet implements probabilistic routing over an overlay graph.
//
// This package implements:
//   - Router: adjacency graph, k-path enumeration and route selection
//   - TeleportCore: whole-path delivery through a DeliveryStrategy
//   - Relay: route selection followed by teleport or per-hop fan-out
package qnet

import (
	"context"
	"strings"
)

// NodeID names a participant of the overlay.
type NodeID string

// Path is an ordered hop sequence from source to destination.
type Path []NodeID

// Hops returns the number of adjacent pairs in the path.
func (p Path) Hops() int {
	if len(p) < 2 {
		return 0
	}
	return len(p) - 1
}

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, n := range p {
		parts[i] = string(n)
	}
	return strings.Join(parts, "->")
}

// Packet is an opaque payload. Each hop receives its own copy.
type Packet []byte

// Clone returns an independent copy of the packet.
func (p Packet) Clone() Packet {
	if p == nil {
		return nil
	}
	c := make(Packet, len(p))
	copy(c, p)
	return c
}

// Transport delivers one packet across one hop.
type Transport interface {
	SendDirect(ctx context.Context, from, to NodeID, packet Packet) error
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, from, to NodeID, packet Packet) error

// SendDirect calls f.
func (f TransportFunc) SendDirect(ctx context.Context, from, to NodeID, packet Packet) error {
	return f(ctx, from, to, packet)
}

// Config holds routing configuration.
type Config struct {
	// KPaths is the maximum number of candidate paths considered per route
	KPaths int `json:"k_paths"`

	// EnableTeleport routes whole paths through a TeleportCore
	EnableTeleport bool `json:"enable_teleport"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		KPaths:         4,
		EnableTeleport: false,
	}
}
