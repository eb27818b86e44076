package qnetx

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"github.com/VanDung-dev/QNetX-Engine/metrics"
)

// Connect performs the initiator side of a handshake with the node at
// address, offering the first two configured dimensions. It returns the
// ChannelID chosen by the acceptor.
func (m *Mesh) Connect(ctx context.Context, address string) (ChannelID, error) {
	if len(m.config.Dimensions) < 2 {
		return nil, &HandshakeError{Reason: "at least two dimensions are required"}
	}
	dimA, dimB := m.config.Dimensions[0], m.config.Dimensions[1]

	ctx, cancel := m.handshakeContext(ctx)
	defer cancel()

	conn, err := m.dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", address, err)
	}
	defer conn.Close()

	stop := bindContext(ctx, conn)
	defer stop()

	if _, err := fmt.Fprintf(conn, "%s,%s\n", dimA, dimB); err != nil {
		return nil, fmt.Errorf("failed to send handshake: %w", err)
	}
	if cw, ok := conn.(interface{ CloseWrite() error }); ok {
		if err := cw.CloseWrite(); err != nil {
			return nil, fmt.Errorf("failed to close write side: %w", err)
		}
	}

	reply, err := io.ReadAll(io.LimitReader(conn, MaxHandshakeSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read handshake reply: %w", err)
	}

	var id ChannelID
	if err := json.Unmarshal(reply, &id); err != nil {
		return nil, &HandshakeError{Reason: "invalid reply", Err: err}
	}

	m.recorder.Inc(metrics.EventChannelCreated)
	m.logger.Info("channel created",
		zap.String("peer", address),
		zap.String("dim_a", string(dimA)),
		zap.String("dim_b", string(dimB)),
		zap.Stringer("channel_id", id))
	return id, nil
}

// HandleConnection performs the acceptor side of a handshake and closes conn.
// The request is a single line "<dimA>,<dimB>"; the reply is the JSON
// ChannelID of the new channel.
func (m *Mesh) HandleConnection(ctx context.Context, conn net.Conn) (ChannelID, error) {
	defer conn.Close()

	ctx, cancel := m.handshakeContext(ctx)
	defer cancel()

	stop := bindContext(ctx, conn)
	defer stop()

	line, err := bufio.NewReader(io.LimitReader(conn, MaxHandshakeSize)).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read handshake: %w", err)
	}

	dimA, dimB, err := ParseHandshake(line)
	if err != nil {
		return nil, err
	}

	id := m.EntangleChannel(dimA, dimB)

	reply, err := json.Marshal(id)
	if err != nil {
		return nil, fmt.Errorf("failed to encode reply: %w", err)
	}
	if _, err := conn.Write(reply); err != nil {
		return nil, fmt.Errorf("failed to write handshake reply: %w", err)
	}

	return id, nil
}

// ParseHandshake splits a handshake request into its two dimensions.
// Trailing whitespace is ignored.
func ParseHandshake(payload string) (Dimension, Dimension, error) {
	trimmed := strings.TrimRightFunc(payload, unicode.IsSpace)

	parts := strings.Split(trimmed, ",")
	if len(parts) != 2 {
		return "", "", &HandshakeError{Reason: fmt.Sprintf("expected 2 dimensions, got %d", len(parts))}
	}
	if parts[0] == "" || parts[1] == "" {
		return "", "", &HandshakeError{Reason: "empty dimension name"}
	}

	return Dimension(parts[0]), Dimension(parts[1]), nil
}

func (m *Mesh) handshakeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.config.HandshakeTimeout > 0 {
		return context.WithTimeout(ctx, m.config.HandshakeTimeout)
	}
	return context.WithCancel(ctx)
}

// bindContext unblocks pending I/O on conn once ctx is done.
func bindContext(ctx context.Context, conn net.Conn) func() bool {
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	return context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Now())
	})
}
