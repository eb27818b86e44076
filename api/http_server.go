package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/VanDung-dev/QNetX-Engine/network"
	"github.com/VanDung-dev/QNetX-Engine/qnet"
	"github.com/VanDung-dev/QNetX-Engine/qnetx"
)

// arrowStreamType is the media type of Arrow IPC stream bodies.
const arrowStreamType = "application/vnd.apache.arrow.stream"

// HTTPServer serves /metrics, /health and the admin JSON endpoints.
type HTTPServer struct {
	backend  *Backend
	gatherer prometheus.Gatherer
	auth     *Authenticator
	logger   *zap.Logger

	server   *http.Server
	listener net.Listener
	mu       sync.Mutex
}

// NewHTTPServer creates an HTTP server for backend. gatherer may be nil, in
// which case /metrics is not mounted.
func NewHTTPServer(backend *Backend, gatherer prometheus.Gatherer, auth *Authenticator, logger *zap.Logger) *HTTPServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPServer{
		backend:  backend,
		gatherer: gatherer,
		auth:     auth,
		logger:   logger.Named("http"),
	}
}

// Handler returns the router.
func (s *HTTPServer) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(s.auth.Middleware)
		s.RegisterRoutes(r)
	})
	return r
}

// RegisterRoutes mounts the admin endpoints on r.
func (s *HTTPServer) RegisterRoutes(r chi.Router) {
	r.Get("/status", s.handleStatus)
	r.Get("/channels", s.handleChannels)
	r.Get("/channels.arrow", s.handleChannelsArrow)
	r.Get("/channels/{id}", s.handleChannel)
	r.Get("/anomalies", s.handleAnomalies)
	r.Post("/condense", s.handleCondense)
	r.Post("/relay", s.handleRelay)
	r.Delete("/peers/{id}", s.handleForgetPeer)
}

func (s *HTTPServer) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}

func (s *HTTPServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.backend.Status())
}

func (s *HTTPServer) handleChannels(w http.ResponseWriter, r *http.Request) {
	channels, err := s.backend.Channels()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, channels)
}

func (s *HTTPServer) handleChannel(w http.ResponseWriter, r *http.Request) {
	ch, err := s.backend.Channel(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ch)
}

func (s *HTTPServer) handleChannelsArrow(w http.ResponseWriter, r *http.Request) {
	if s.backend.Mesh == nil {
		s.writeError(w, ErrUnavailable)
		return
	}
	data, err := qnetx.ExportArrow(s.backend.Mesh, s.backend.Anomaly)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", arrowStreamType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *HTTPServer) handleAnomalies(w http.ResponseWriter, r *http.Request) {
	resp, err := s.backend.Anomalies()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *HTTPServer) handleCondense(w http.ResponseWriter, r *http.Request) {
	byPrefix := r.URL.Query().Get("by") == "prefix"
	resp, err := s.backend.Condense(byPrefix)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *HTTPServer) handleRelay(w http.ResponseWriter, r *http.Request) {
	var req RelayRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		s.writeError(w, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
		return
	}
	resp, err := s.backend.RelayPacket(r.Context(), &req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *HTTPServer) handleForgetPeer(w http.ResponseWriter, r *http.Request) {
	if err := s.backend.ForgetPeer(chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeError maps err to an HTTP status.
func (s *HTTPServer) writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrInvalidRequest):
		code = http.StatusBadRequest
	case errors.Is(err, ErrChannelNotFound), errors.Is(err, qnet.ErrNoRoute):
		code = http.StatusNotFound
	case errors.Is(err, qnetx.ErrCondensation):
		code = http.StatusConflict
	case errors.Is(err, ErrUnavailable):
		code = http.StatusServiceUnavailable
	case errors.Is(err, qnet.ErrSend), errors.Is(err, qnet.ErrTeleport):
		code = http.StatusBadGateway
	case errors.Is(err, network.ErrPeerNotFound):
		code = http.StatusNotFound
	}
	if code == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// Start listens on address and serves in the background.
func (s *HTTPServer) Start(address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		return errors.New("http server is already running")
	}

	lis, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", address, err)
	}

	s.listener = lis
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.server.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server stopped", zap.Error(err))
		}
	}()

	s.logger.Info("http server started", zap.String("address", lis.Addr().String()))
	return nil
}

// Addr returns the bound address, or nil before Start.
func (s *HTTPServer) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop gracefully stops the server.
func (s *HTTPServer) Stop(ctx context.Context) error {
	s.mu.Lock()
	server := s.server
	s.server = nil
	s.mu.Unlock()

	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}
