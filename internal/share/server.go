package share

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/muurk/wifipass/internal/acquire"
	"github.com/muurk/wifipass/internal/logging"
	"github.com/muurk/wifipass/internal/platform"
	"go.uber.org/zap"
)

// DefaultPath is the WebSocket endpoint path.
const DefaultPath = "/ws"

// Config holds the server configuration
type Config struct {
	Host  string
	Port  int
	Token string // Required from clients when non-empty

	// CertPath and KeyPath enable wss:// when both are set
	CertPath string
	KeyPath  string
}

// TLS reports whether the endpoint is served over TLS
func (c Config) TLS() bool {
	return c.CertPath != "" && c.KeyPath != ""
}

// URL returns the endpoint URL for a bound address
func (c Config) URL(addr string) string {
	scheme := "ws"
	if c.TLS() {
		scheme = "wss"
	}
	return scheme + "://" + addr + DefaultPath
}

// Addr returns host:port
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Server serves acquisition outcomes over WebSocket
type Server struct {
	config       Config
	service      *acquire.Service
	capabilities func() platform.Capabilities

	upgrader   websocket.Upgrader
	httpServer *http.Server
	listener   net.Listener

	wg          sync.WaitGroup
	mu          sync.Mutex
	activeConns map[string]*websocket.Conn
}

// New creates a new Server. capabilities is evaluated per acquire request.
func New(config Config, service *acquire.Service, capabilities func() platform.Capabilities) *Server {
	s := &Server{
		config:       config,
		service:      service,
		capabilities: capabilities,
		activeConns:  make(map[string]*websocket.Conn),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 16 * 1024,
			// Clients are CLIs, not browsers; the token is the access control
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc(DefaultPath, s.handleWebSocket)
	s.httpServer = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler serving the endpoint
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Listen binds the configured address. Port 0 picks a free port.
func (s *Server) Listen() error {
	var tlsConfig *tls.Config
	if s.config.CertPath != "" || s.config.KeyPath != "" {
		var err error
		tlsConfig, err = NewTLSConfig(s.config.CertPath, s.config.KeyPath)
		if err != nil {
			return fmt.Errorf("failed to create TLS config: %w", err)
		}
	}

	listener, err := net.Listen("tcp", s.config.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Addr(), err)
	}
	if tlsConfig != nil {
		logging.Info("TLS Configuration", zap.Any("tls_info", TLSInfo(tlsConfig)))
		listener = tls.NewListener(listener, tlsConfig)
	}
	s.listener = listener
	return nil
}

// Addr returns the bound address, or nil before Listen
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Start listens (if not already listening) and serves until ctx is done
func (s *Server) Start(ctx context.Context) error {
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}

	logging.Info("Share server listening",
		zap.String("addr", s.listener.Addr().String()),
		zap.Bool("token_required", s.config.Token != ""),
		zap.Bool("tls", s.config.TLS()),
	)

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.httpServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		logging.Info("Shutdown requested, stopping share server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		logging.Error("Error stopping HTTP server", zap.Error(err))
	}

	// Hijacked WebSocket connections are not tracked by http.Server
	s.mu.Lock()
	for addr, conn := range s.activeConns {
		logging.Debug("Closing active connection", zap.String("remote_addr", addr))
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		_ = conn.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logging.Info("All connections closed gracefully")
	case <-ctx.Done():
		logging.Warn("Shutdown timeout, forcing close")
	}

	logging.Sync()
	return nil
}

// GetActiveConnections returns the number of active connections
func (s *Server) GetActiveConnections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.activeConns)
}

func (s *Server) track(remoteAddr string, conn *websocket.Conn) {
	s.mu.Lock()
	s.activeConns[remoteAddr] = conn
	s.mu.Unlock()
}

func (s *Server) untrack(remoteAddr string) {
	s.mu.Lock()
	delete(s.activeConns, remoteAddr)
	s.mu.Unlock()
}
