// Package qnetx maintains correlated channels between dimensions.
//
// This package implements:
//   - Mesh: channel registry and the two-party handshake
//   - HandshakeServer: TCP acceptor feeding inbound handshakes to the Mesh
//   - ZeroPropagator, StateCondenser, AnomalyFilter: registry utilities
package qnetx

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/VanDung-dev/QNetX-Engine/qnum"
)

// SeedWidth is the number of digits of a channel seed and id.
const SeedWidth = 4

// DefaultAnomalyThreshold is the entropy threshold used when none is configured.
const DefaultAnomalyThreshold = 1.0

// MaxHandshakeSize bounds the handshake request line.
const MaxHandshakeSize = 4 * 1024

// Common errors for mesh operations
var (
	ErrHandshake    = errors.New("handshake failed")
	ErrCondensation = errors.New("condensation failed")
)

// HandshakeError reports a malformed or impossible handshake.
type HandshakeError struct {
	Reason string
	Err    error
}

func (e *HandshakeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("handshake: %s: %v", e.Reason, e.Err)
	}
	return "handshake: " + e.Reason
}

func (e *HandshakeError) Unwrap() error {
	return e.Err
}

// Is matches ErrHandshake.
func (e *HandshakeError) Is(target error) bool {
	return target == ErrHandshake
}

// Dimension names a logical partition.
type Dimension string

// ChannelID identifies a channel. It encodes in JSON as a number array.
type ChannelID []uint8

// Key returns a comparable form of the id for use as a map key.
func (id ChannelID) Key() string {
	return string(id)
}

// String renders the id as decimal digits.
func (id ChannelID) String() string {
	var b strings.Builder
	for _, d := range id {
		fmt.Fprintf(&b, "%d", d)
	}
	return b.String()
}

// MarshalJSON encodes the id as [d0,d1,...].
func (id ChannelID) MarshalJSON() ([]byte, error) {
	if id == nil {
		return []byte("[]"), nil
	}
	ints := make([]int, len(id))
	for i, d := range id {
		ints[i] = int(d)
	}
	return json.Marshal(ints)
}

// UnmarshalJSON decodes a number array.
func (id *ChannelID) UnmarshalJSON(data []byte) error {
	var ints []int
	if err := json.Unmarshal(data, &ints); err != nil {
		return err
	}
	out := make(ChannelID, len(ints))
	for i, v := range ints {
		if v < 0 || v > 255 {
			return fmt.Errorf("channel id digit %d out of range", v)
		}
		out[i] = uint8(v)
	}
	*id = out
	return nil
}

// ParseChannelID parses a string of decimal digits such as "5600".
func ParseChannelID(s string) (ChannelID, error) {
	id := make(ChannelID, len(s))
	for i, r := range s {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("invalid channel id %q", s)
		}
		id[i] = uint8(r - '0')
	}
	return id, nil
}

// Channel is a registry entry.
type Channel struct {
	ID        ChannelID  `json:"id"`
	State     *qnum.QNum `json:"-"`
	CreatedAt time.Time  `json:"created_at"`
}

// Config holds mesh configuration.
type Config struct {
	// Dimensions lists the partitions this node knows; Connect uses the first two
	Dimensions []Dimension `json:"dimensions"`

	// AnomalyThreshold overrides DefaultAnomalyThreshold when set
	AnomalyThreshold *float64 `json:"anomaly_threshold,omitempty"`

	// HandshakeTimeout bounds each handshake connection; zero means no limit
	HandshakeTimeout time.Duration `json:"handshake_timeout"`

	// HandshakeWorkers is the number of workers serving inbound handshakes
	HandshakeWorkers int `json:"handshake_workers"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Dimensions:       []Dimension{},
		HandshakeWorkers: 8,
	}
}
