package qnetx

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/VanDung-dev/QNetX-Engine/engine"
)

// ErrServerStopped is returned when starting a server after Stop.
var ErrServerStopped = errors.New("handshake server stopped")

// handshakeRecorder is implemented by recorders that track handshake latency
// and pool load, such as *metrics.Metrics.
type handshakeRecorder interface {
	RecordHandshake(duration time.Duration)
	UpdateWorkerPool(active int64)
}

// HandshakeServer accepts handshake connections and serves them on a worker
// pool. A server serves once: after Stop it cannot be started again.
type HandshakeServer struct {
	mesh     *Mesh
	pool     *engine.WorkerPool
	listener net.Listener
	logger   *zap.Logger
	observer handshakeRecorder

	accepted int64
	running  bool
	stopped  bool
	mu       sync.Mutex
	quit     chan struct{}
	done     chan struct{}
}

// NewHandshakeServer creates a server for mesh. Worker count comes from the
// mesh configuration.
func NewHandshakeServer(mesh *Mesh) *HandshakeServer {
	s := &HandshakeServer{
		mesh:   mesh,
		logger: mesh.logger.Named("handshake"),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	if obs, ok := mesh.recorder.(handshakeRecorder); ok {
		s.observer = obs
	}
	s.pool = engine.NewWorkerPool("handshake", mesh.config.HandshakeWorkers, 0, s.onResult)
	return s
}

// Start listens on address and serves until Stop is called.
func (s *HandshakeServer) Start(address string) error {
	if err := s.listen(address); err != nil {
		return err
	}
	s.acceptLoop()
	return nil
}

// StartAsync listens on address and serves in a background goroutine.
func (s *HandshakeServer) StartAsync(address string) error {
	if err := s.listen(address); err != nil {
		return err
	}
	go s.acceptLoop()
	return nil
}

func (s *HandshakeServer) listen(address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return ErrServerStopped
	}
	if s.running {
		return fmt.Errorf("server is already running")
	}

	lis, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", address, err)
	}
	s.listener = lis
	s.running = true

	s.logger.Info("handshake server listening", zap.String("address", lis.Addr().String()))
	return nil
}

// Addr returns the bound listener address, or nil before Start.
func (s *HandshakeServer) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

func (s *HandshakeServer) acceptLoop() {
	defer close(s.done)

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.quit:
				return
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return
			}
			s.logger.Warn("accept failed", zap.Error(err))
			continue
		}

		id := atomic.AddInt64(&s.accepted, 1)
		job := engine.NewJob(fmt.Sprintf("handshake-%d", id), func(ctx context.Context) error {
			_, err := s.mesh.HandleConnection(ctx, conn)
			return err
		})

		if err := s.pool.Submit(job); err != nil {
			s.logger.Warn("dropping handshake",
				zap.String("remote", conn.RemoteAddr().String()),
				zap.Error(err))
			_ = conn.Close()
		}
	}
}

func (s *HandshakeServer) onResult(r *engine.Result) {
	if s.observer != nil {
		s.observer.RecordHandshake(r.Duration)
		s.observer.UpdateWorkerPool(s.pool.GetStats().Active)
	}
	if r.Err != nil {
		s.logger.Warn("handshake failed", zap.String("job", r.JobID), zap.Error(r.Err))
	}
}

// Stats returns worker pool statistics.
func (s *HandshakeServer) Stats() engine.PoolStats {
	return s.pool.GetStats()
}

// Stop closes the listener and drains in-flight handshakes. Further calls
// are no-ops.
func (s *HandshakeServer) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	if !s.running {
		s.mu.Unlock()
		s.pool.Shutdown()
		return
	}
	s.running = false
	close(s.quit)
	if err := s.listener.Close(); err != nil {
		s.logger.Debug("listener close", zap.Error(err))
	}
	s.mu.Unlock()

	<-s.done
	s.pool.Shutdown()
}
