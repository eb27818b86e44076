package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	pb "github.com/VanDung-dev/QNetX-Engine/api/proto"
	"github.com/VanDung-dev/QNetX-Engine/qnet"
	"github.com/VanDung-dev/QNetX-Engine/qnetx"
)

// grpcRecorder is implemented by metrics.Metrics.
type grpcRecorder interface {
	RecordGRPCRequest(method, status string, duration time.Duration)
}

// GRPCServer implements the qnetx.admin.v1.Admin service over a Backend.
type GRPCServer struct {
	pb.UnimplementedAdminServer

	backend  *Backend
	auth     *Authenticator
	recorder grpcRecorder
	logger   *zap.Logger

	// Server state
	grpcServer *grpc.Server
	listener   net.Listener

	// Control
	running bool
	mu      sync.RWMutex
}

// GRPCOption configures a GRPCServer.
type GRPCOption func(*GRPCServer)

// WithAuthenticator requires a token on every call.
func WithAuthenticator(a *Authenticator) GRPCOption {
	return func(s *GRPCServer) { s.auth = a }
}

// WithGRPCMetrics records per-method counts and latencies.
func WithGRPCMetrics(r grpcRecorder) GRPCOption {
	return func(s *GRPCServer) { s.recorder = r }
}

// WithGRPCLogger sets the logger.
func WithGRPCLogger(l *zap.Logger) GRPCOption {
	return func(s *GRPCServer) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewGRPCServer creates a gRPC admin server for backend.
func NewGRPCServer(backend *Backend, opts ...GRPCOption) *GRPCServer {
	s := &GRPCServer{
		backend: backend,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("grpc")
	return s
}

// Register adds the admin service to server. Callers building their own
// server should pass ServerOptions to grpc.NewServer.
func (s *GRPCServer) Register(server *grpc.Server) {
	pb.RegisterAdminServer(server, s)
}

// ServerOptions returns the interceptors this server needs.
func (s *GRPCServer) ServerOptions() []grpc.ServerOption {
	return []grpc.ServerOption{
		grpc.MaxRecvMsgSize(16 * 1024 * 1024),
		grpc.MaxSendMsgSize(16 * 1024 * 1024),
		grpc.ChainUnaryInterceptor(s.metricsInterceptor, s.auth.UnaryInterceptor),
	}
}

// prepare builds the grpc.Server for lis.
func (s *GRPCServer) prepare(lis net.Listener) (*grpc.Server, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil, fmt.Errorf("server is already running")
	}
	s.listener = lis
	s.grpcServer = grpc.NewServer(s.ServerOptions()...)
	s.Register(s.grpcServer)
	s.running = true

	s.logger.Info("grpc server started", zap.String("address", lis.Addr().String()))
	return s.grpcServer, nil
}

// Serve serves lis until Stop (blocking).
func (s *GRPCServer) Serve(lis net.Listener) error {
	server, err := s.prepare(lis)
	if err != nil {
		return err
	}
	return server.Serve(lis)
}

// StartAsync listens on address and serves in the background.
func (s *GRPCServer) StartAsync(address string) error {
	lis, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", address, err)
	}

	server, err := s.prepare(lis)
	if err != nil {
		_ = lis.Close()
		return err
	}

	go func() {
		if err := server.Serve(lis); err != nil {
			s.logger.Error("grpc server stopped", zap.Error(err))
		}
	}()
	return nil
}

// Addr returns the bound address, or nil before Serve.
func (s *GRPCServer) Addr() net.Addr {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop gracefully stops the gRPC server.
func (s *GRPCServer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.running = false

	if s.grpcServer != nil {
		s.grpcServer.GracefulStop()
	}
}

func (s *GRPCServer) metricsInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	if s.recorder != nil {
		s.recorder.RecordGRPCRequest(info.FullMethod, status.Code(err).String(), time.Since(start))
	}
	return resp, err
}

// Relay relays a packet through the node.
func (s *GRPCServer) Relay(ctx context.Context, req *pb.RelayRequest) (*pb.RelayResponse, error) {
	resp, err := s.backend.RelayPacket(ctx, &RelayRequest{
		Src:     req.GetSrc(),
		Dst:     req.GetDst(),
		Payload: req.GetPayload(),
	})
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &pb.RelayResponse{Path: resp.Path, Hops: int32(resp.Hops)}, nil
}

// GetChannel returns one channel with its probability table.
func (s *GRPCServer) GetChannel(ctx context.Context, req *pb.GetChannelRequest) (*pb.Channel, error) {
	ch, err := s.backend.Channel(req.GetId())
	if err != nil {
		return nil, s.toStatus(err)
	}

	id := make([]uint32, len(ch.ID))
	for i, d := range ch.ID {
		id[i] = uint32(d)
	}
	return &pb.Channel{
		Id:        id,
		Key:       ch.Key,
		CreatedAt: timestamppb.New(ch.CreatedAt),
		State:     toStateView(&ch.StateView),
	}, nil
}

// Condense folds channel states. Per-prefix results are ordered by prefix.
func (s *GRPCServer) Condense(ctx context.Context, req *pb.CondenseRequest) (*pb.CondenseResponse, error) {
	resp, err := s.backend.Condense(req.GetByPrefix())
	if err != nil {
		return nil, s.toStatus(err)
	}

	out := &pb.CondenseResponse{}
	if resp.All != nil {
		out.All = toStateView(resp.All)
	}
	for prefix, state := range resp.ByPrefix {
		out.ByPrefix = append(out.ByPrefix, &pb.PrefixState{Prefix: prefix, State: toStateView(state)})
	}
	sort.Slice(out.ByPrefix, func(i, j int) bool {
		return out.ByPrefix[i].Prefix < out.ByPrefix[j].Prefix
	})
	return out, nil
}

// DetectAnomalies lists the channels over the entropy threshold.
func (s *GRPCServer) DetectAnomalies(ctx context.Context, _ *pb.Empty) (*pb.AnomaliesResponse, error) {
	resp, err := s.backend.Anomalies()
	if err != nil {
		return nil, s.toStatus(err)
	}

	out := &pb.AnomaliesResponse{
		Threshold: resp.Threshold,
		Channels:  make([]string, len(resp.Channels)),
	}
	for i, id := range resp.Channels {
		out.Channels[i] = id.String()
	}
	return out, nil
}

// Health returns the health status of the node.
func (s *GRPCServer) Health(ctx context.Context, _ *pb.Empty) (*pb.HealthResponse, error) {
	h := s.backend.Health()
	return &pb.HealthResponse{
		Healthy:       h.Healthy,
		Version:       h.Version,
		NodeId:        h.NodeID,
		UptimeSeconds: h.UptimeSeconds,
		Channels:      int32(h.Channels),
	}, nil
}

func toStateView(v *StateView) *pb.StateView {
	out := &pb.StateView{
		Width:         int32(v.Width),
		Entropy:       v.Entropy,
		MostLikely:    v.MostLikely,
		Probabilities: make([]*pb.Distribution, len(v.Probabilities)),
	}
	for i, d := range v.Probabilities {
		out.Probabilities[i] = &pb.Distribution{Weights: d[:]}
	}
	return out
}

// toStatus maps domain errors to gRPC status codes.
func (s *GRPCServer) toStatus(err error) error {
	code := codes.Internal
	switch {
	case errors.Is(err, ErrInvalidRequest):
		code = codes.InvalidArgument
	case errors.Is(err, ErrChannelNotFound), errors.Is(err, qnet.ErrNoRoute):
		code = codes.NotFound
	case errors.Is(err, qnetx.ErrCondensation):
		code = codes.FailedPrecondition
	case errors.Is(err, ErrUnavailable), errors.Is(err, qnet.ErrSend):
		code = codes.Unavailable
	case errors.Is(err, qnet.ErrTeleport):
		code = codes.Aborted
	case errors.Is(err, context.Canceled):
		code = codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		code = codes.DeadlineExceeded
	}
	if code == codes.Internal {
		s.logger.Error("admin call failed", zap.Error(err))
	}
	return status.Error(code, err.Error())
}

var _ pb.AdminServer = (*GRPCServer)(nil)
