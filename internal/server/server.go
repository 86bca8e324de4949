// Package server serves the portfolio page, the contact API and the blob
// frame stream.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Faultbox/morphfolio/internal/blob"
	"github.com/Faultbox/morphfolio/internal/contact"
	"github.com/Faultbox/morphfolio/internal/logger"
	"github.com/Faultbox/morphfolio/internal/site"
)

// Config holds server settings.
type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64

	StreamFPS          int
	StreamWriteTimeout time.Duration

	// Blob is the template for each streamed blob.
	Blob blob.Options
}

// Server is the portfolio HTTP server.
type Server struct {
	cfg      Config
	contact  *contact.Service
	page     *site.Renderer
	upgrader websocket.Upgrader
	log      *zap.Logger
	streams  *streamRegistry
}

// New creates a server. page may be nil to serve only the API.
func New(cfg Config, svc *contact.Service, page *site.Renderer) *Server {
	if cfg.StreamFPS <= 0 {
		cfg.StreamFPS = 30
	}
	if cfg.StreamWriteTimeout <= 0 {
		cfg.StreamWriteTimeout = 2 * time.Second
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 64 << 10
	}
	return &Server{
		cfg:     cfg,
		contact: svc,
		page:    page,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 16 << 10,
		},
		log:     logger.Named("server"),
		streams: newStreamRegistry(),
	}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(site.Static())))
	mux.HandleFunc("POST /api/contact", s.handleContact)
	mux.HandleFunc("POST /api/send-email", s.handleSendEmail)
	mux.HandleFunc("GET /ws/blob", s.handleBlobStream)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	return recoverer(s.log, accessLog(s.log, mux))
}

// Run listens on cfg.Addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve runs the server on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.log.Info("shutting down", zap.Int("streams", s.streams.count()))
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.streams.wait()
	return nil
}

// ActiveStreams returns the number of open blob streams.
func (s *Server) ActiveStreams() int {
	return s.streams.count()
}
