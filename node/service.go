// Package node wires the routing, mesh, transport and admin components of a
// QNetX node into one service.
package node

import (
	"context"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/VanDung-dev/QNetX-Engine/api"
	"github.com/VanDung-dev/QNetX-Engine/config"
	"github.com/VanDung-dev/QNetX-Engine/metrics"
	"github.com/VanDung-dev/QNetX-Engine/network"
	"github.com/VanDung-dev/QNetX-Engine/qnet"
	"github.com/VanDung-dev/QNetX-Engine/qnetx"
)

// shutdownTimeout bounds the HTTP server drain on Stop.
const shutdownTimeout = 5 * time.Second

// Status represents the current status of the node.
type Status struct {
	*api.StatusResponse
	IsRunning bool  `json:"is_running"`
	Delivered int64 `json:"delivered"`
}

// Service orchestrates all node components: transport, relay, mesh, the
// maintenance loops and the admin servers.
type Service struct {
	config   *config.Config
	logger   *zap.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics

	transport  network.Transport
	router     *qnet.Router
	relay      *qnet.Relay
	mesh       *qnetx.Mesh
	propagator *qnetx.ZeroPropagator
	anomaly    *qnetx.AnomalyFilter
	condenser  *qnetx.StateCondenser
	handshake  *qnetx.HandshakeServer
	backend    *api.Backend
	httpServer *api.HTTPServer
	grpcServer *api.GRPCServer

	handler   network.PacketHandler
	handlerMu sync.RWMutex
	delivered int64

	mu      sync.RWMutex
	running bool
	stop    chan struct{}
	wg      sync.WaitGroup
}

// New builds a node from cfg. Nothing listens until Start.
func New(cfg *config.Config, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("node_id", cfg.Node.ID))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	namespace := cfg.Metrics.Namespace
	if namespace == "" {
		namespace = "qnetx"
	}
	m := metrics.NewMetrics(namespace, registry)

	transport, err := network.New(cfg.ToNetwork(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create transport: %w", err)
	}
	for _, peer := range cfg.Node.Peers {
		transport.RegisterPeer(qnet.NodeID(peer.ID), peer.Address)
	}

	routing := cfg.ToRouting()
	router := qnet.NewRouter(routing.KPaths)
	for _, e := range cfg.Routing.Edges {
		router.AddEdge(qnet.NodeID(e.From), qnet.NodeID(e.To))
	}

	relayOpts := []qnet.Option{qnet.WithRecorder(m), qnet.WithLogger(logger.Named("relay"))}
	if routing.EnableTeleport {
		core := qnet.NewTeleportCore(transport, qnet.WithRecorder(m), qnet.WithLogger(logger.Named("teleport")))
		relayOpts = append(relayOpts, qnet.WithTeleport(core))
	}
	relay := qnet.NewRelay(router, transport, relayOpts...)

	meshCfg := cfg.ToMesh()
	meshOpts := []qnetx.Option{qnetx.WithRecorder(m), qnetx.WithLogger(logger.Named("mesh"))}
	mesh := qnetx.NewMesh(meshCfg, meshOpts...)

	s := &Service{
		config:     cfg,
		logger:     logger,
		registry:   registry,
		metrics:    m,
		transport:  transport,
		router:     router,
		relay:      relay,
		mesh:       mesh,
		propagator: qnetx.NewZeroPropagator(meshOpts...),
		anomaly:    qnetx.NewAnomalyFilter(meshCfg, meshOpts...),
		condenser:  qnetx.NewStateCondenser(meshOpts...),
		stop:       make(chan struct{}),
	}

	s.backend = &api.Backend{
		NodeID:    cfg.Node.ID,
		Relay:     relay,
		Mesh:      mesh,
		Anomaly:   s.anomaly,
		Condenser: s.condenser,
		Transport: transport,
	}
	auth := api.NewAuthenticator(cfg.Admin.AuthToken)
	if cfg.Metrics.Enabled {
		s.httpServer = api.NewHTTPServer(s.backend, registry, auth, logger)
	}
	if cfg.Admin.GRPCAddress != "" {
		s.grpcServer = api.NewGRPCServer(s.backend,
			api.WithAuthenticator(auth),
			api.WithGRPCMetrics(m),
			api.WithGRPCLogger(logger))
	}
	if cfg.Node.HandshakeAddress != "" {
		s.handshake = qnetx.NewHandshakeServer(mesh)
	}

	transport.SetHandler(s.deliver)
	return s, nil
}

// Start starts the transport, the listeners and the maintenance loops.
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	if err := s.transport.Start(); err != nil {
		return fmt.Errorf("failed to start transport: %w", err)
	}

	started := []func(){s.transport.Stop}
	rollback := func() {
		for i := len(started) - 1; i >= 0; i-- {
			started[i]()
		}
	}

	if s.handshake != nil {
		if err := s.handshake.StartAsync(s.config.Node.HandshakeAddress); err != nil {
			rollback()
			return fmt.Errorf("failed to start handshake server: %w", err)
		}
		started = append(started, s.handshake.Stop)
	}
	if s.httpServer != nil {
		if err := s.httpServer.Start(s.config.Metrics.Address); err != nil {
			rollback()
			return fmt.Errorf("failed to start http server: %w", err)
		}
		started = append(started, func() { _ = s.httpServer.Stop(context.Background()) })
	}
	if s.grpcServer != nil {
		if err := s.grpcServer.StartAsync(s.config.Admin.GRPCAddress); err != nil {
			rollback()
			return fmt.Errorf("failed to start grpc server: %w", err)
		}
	}

	s.backend.StartTime = time.Now()
	s.startLoops()
	s.running = true

	s.logger.Info("node started",
		zap.String("transport", s.config.Node.Transport.Kind),
		zap.Int("edges", len(s.config.Routing.Edges)),
		zap.Bool("teleport", s.relay.Teleporting()))
	return nil
}

func (s *Service) startLoops() {
	if d := s.config.Mesh.ZeroPropagationInterval; d > 0 {
		s.wg.Add(1)
		go s.every(d, func() {
			n := s.propagator.PropagateAll(s.mesh)
			s.logger.Debug("zero propagation", zap.Int("channels", n))
		})
	}
	if d := s.config.Mesh.AnomalyInterval; s.config.Mesh.EnableAnomaly && d > 0 {
		s.wg.Add(1)
		go s.every(d, func() {
			if flagged := s.anomaly.Detect(s.mesh); len(flagged) > 0 {
				s.logger.Info("anomaly scan", zap.Int("flagged", len(flagged)))
			}
		})
	}
}

// every runs fn each interval until Stop.
func (s *Service) every(interval time.Duration, fn func()) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			fn()
		}
	}
}

// Stop gracefully shuts down the node, in reverse start order. A stopped
// Service cannot be restarted.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		// Release the handshake worker pool of a never started node.
		if s.handshake != nil {
			s.handshake.Stop()
		}
		return
	}

	close(s.stop)
	s.wg.Wait()

	if s.grpcServer != nil {
		s.grpcServer.Stop()
	}
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := s.httpServer.Stop(ctx); err != nil {
			s.logger.Warn("http shutdown", zap.Error(err))
		}
		cancel()
	}
	if s.handshake != nil {
		s.handshake.Stop()
	}
	s.transport.Stop()

	s.running = false
	s.logger.Info("node stopped")
}

// deliver handles packets whose hop ends at this node.
func (s *Service) deliver(env *network.Envelope, packet qnet.Packet) error {
	atomic.AddInt64(&s.delivered, 1)

	s.handlerMu.RLock()
	handler := s.handler
	s.handlerMu.RUnlock()

	if handler != nil {
		return handler(env, packet)
	}
	s.logger.Debug("packet delivered",
		zap.String("from", string(env.From)),
		zap.Int("bytes", len(packet)))
	return nil
}

// SetPacketHandler sets a callback for packets delivered to this node.
func (s *Service) SetPacketHandler(handler network.PacketHandler) {
	s.handlerMu.Lock()
	defer s.handlerMu.Unlock()
	s.handler = handler
}

// Relay routes packet from src to dst over the configured topology.
func (s *Service) Relay(ctx context.Context, src, dst qnet.NodeID, packet qnet.Packet) (qnet.Path, error) {
	if !s.IsRunning() {
		return nil, network.ErrNodeNotRunning
	}
	return s.relay.Relay(ctx, src, dst, packet)
}

// Connect performs an outbound handshake with the node at address.
func (s *Service) Connect(ctx context.Context, address string) (qnetx.ChannelID, error) {
	return s.mesh.Connect(ctx, address)
}

// Status returns the current status of the node.
func (s *Service) Status() Status {
	return Status{
		StatusResponse: s.backend.Status(),
		IsRunning:      s.IsRunning(),
		Delivered:      atomic.LoadInt64(&s.delivered),
	}
}

// IsRunning returns whether the node is currently running.
func (s *Service) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Mesh returns the channel registry.
func (s *Service) Mesh() *qnetx.Mesh {
	return s.mesh
}

// Registry returns the node's metrics registry.
func (s *Service) Registry() *prometheus.Registry {
	return s.registry
}

// Metrics returns the node's metrics.
func (s *Service) Metrics() *metrics.Metrics {
	return s.metrics
}

// HandshakeAddr returns the bound handshake address, or nil.
func (s *Service) HandshakeAddr() net.Addr {
	if s.handshake == nil {
		return nil
	}
	return s.handshake.Addr()
}

// HTTPAddr returns the bound admin HTTP address, or nil.
func (s *Service) HTTPAddr() net.Addr {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Addr()
}

// GRPCAddr returns the bound admin gRPC address, or nil.
func (s *Service) GRPCAddr() net.Addr {
	if s.grpcServer == nil {
		return nil
	}
	return s.grpcServer.Addr()
}
