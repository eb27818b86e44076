package network

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang/snappy"
	"github.com/google/uuid"

	"github.com/VanDung-dev/QNetX-Engine/qnet"
)

// MaxNetworkMessageSize bounds an encoded envelope.
const MaxNetworkMessageSize = 16 * 1024 * 1024

// Envelope types
const (
	TypePacket = "packet"
)

// Common errors for envelope decoding
var (
	ErrMessageTooLarge = errors.New("message exceeds maximum size")
	ErrInvalidEnvelope = errors.New("invalid envelope")
)

// Envelope carries one hop of a packet between transports.
type Envelope struct {
	Type       string      `json:"type"`
	Origin     qnet.NodeID `json:"origin"`
	ReplyTo    string      `json:"reply_to,omitempty"`
	From       qnet.NodeID `json:"from"`
	To         qnet.NodeID `json:"to"`
	Payload    []byte      `json:"payload"`
	Compressed bool        `json:"compressed,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
	Nonce      string      `json:"nonce"`
}

// NewPacketEnvelope wraps packet for the hop from -> to. origin and replyTo
// identify the sending transport.
func NewPacketEnvelope(origin qnet.NodeID, replyTo string, from, to qnet.NodeID, packet qnet.Packet, compress bool) *Envelope {
	payload := []byte(packet)
	if compress {
		payload = snappy.Encode(nil, payload)
	}

	return &Envelope{
		Type:       TypePacket,
		Origin:     origin,
		ReplyTo:    replyTo,
		From:       from,
		To:         to,
		Payload:    payload,
		Compressed: compress,
		Timestamp:  time.Now(),
		Nonce:      uuid.NewString(),
	}
}

// Encode serializes the envelope.
func (e *Envelope) Encode() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal envelope: %w", err)
	}
	if len(data) > MaxNetworkMessageSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrMessageTooLarge, len(data))
	}
	return data, nil
}

// Packet returns the decompressed payload.
func (e *Envelope) Packet() (qnet.Packet, error) {
	if !e.Compressed {
		return qnet.Packet(e.Payload), nil
	}
	data, err := snappy.Decode(nil, e.Payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}
	return qnet.Packet(data), nil
}

// DecodeEnvelope parses and validates an encoded envelope.
func DecodeEnvelope(data []byte) (*Envelope, error) {
	if len(data) > MaxNetworkMessageSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrMessageTooLarge, len(data))
	}

	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}
	if env.Type != TypePacket {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidEnvelope, env.Type)
	}
	if env.To == "" {
		return nil, fmt.Errorf("%w: missing destination", ErrInvalidEnvelope)
	}
	if env.Compressed {
		n, err := snappy.DecodedLen(env.Payload)
		if err != nil || n > MaxNetworkMessageSize {
			return nil, fmt.Errorf("%w: bad compressed payload", ErrInvalidEnvelope)
		}
	}
	return &env, nil
}
