package preview

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/jpillora/backoff"
	"github.com/raykavin/gochartjs/pkg/logger"
)

// HTTPServer defines the interface for an HTTP server the preview runs on
type HTTPServer interface {
	// RegisterHandler registers a handler for a route pattern
	RegisterHandler(pattern string, handler http.HandlerFunc)

	// Handler returns the routes registered so far
	Handler() http.Handler

	// Start serves on addr until ctx is cancelled
	Start(ctx context.Context, addr string) error
}

// HTTPOption configures a StandardHTTPServer.
type HTTPOption func(*StandardHTTPServer)

// WithListenAttempts bounds how many times Start tries to bind its address
// while it is busy.
func WithListenAttempts(attempts int) HTTPOption {
	return func(s *StandardHTTPServer) {
		s.attempts = attempts
	}
}

// WithOnListen is called with the bound address once Start is listening.
func WithOnListen(fn func(net.Addr)) HTTPOption {
	return func(s *StandardHTTPServer) {
		s.onListen = fn
	}
}

// WithHTTPLogger sets the logger.
func WithHTTPLogger(log logger.Logger) HTTPOption {
	return func(s *StandardHTTPServer) {
		s.log = log
	}
}

// StandardHTTPServer implements HTTPServer with net/http
type StandardHTTPServer struct {
	mux             *http.ServeMux
	attempts        int
	shutdownTimeout time.Duration
	onListen        func(net.Addr)
	log             logger.Logger
}

// NewStandardHTTPServer creates a new instance of StandardHTTPServer
func NewStandardHTTPServer(options ...HTTPOption) *StandardHTTPServer {
	s := &StandardHTTPServer{
		mux:             http.NewServeMux(),
		attempts:        5,
		shutdownTimeout: 5 * time.Second,
		log:             logger.Nop(),
	}

	for _, option := range options {
		option(s)
	}

	return s
}

// RegisterHandler registers a handler for a route pattern
func (s *StandardHTTPServer) RegisterHandler(pattern string, handler http.HandlerFunc) {
	s.mux.HandleFunc(pattern, handler)
}

// Handler returns the underlying mux.
func (s *StandardHTTPServer) Handler() http.Handler {
	return s.mux
}

// Start binds addr, retrying with backoff while it is in use, and serves
// until ctx is cancelled. A clean shutdown returns nil.
func (s *StandardHTTPServer) Start(ctx context.Context, addr string) error {
	listener, err := s.listen(ctx, addr)
	if err != nil {
		return err
	}

	if s.onListen != nil {
		s.onListen(listener.Addr())
	}

	server := &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			s.log.WithError(err).Warn("preview server shutdown")
		}
	}()

	err = server.Serve(listener)
	if errors.Is(err, http.ErrServerClosed) {
		<-done
		return nil
	}
	return err
}

func (s *StandardHTTPServer) listen(ctx context.Context, addr string) (net.Listener, error) {
	b := &backoff.Backoff{
		Min: 100 * time.Millisecond,
		Max: 1 * time.Second,
	}

	for attempt := 1; ; attempt++ {
		listener, err := net.Listen("tcp", addr)
		if err == nil {
			return listener, nil
		}

		if attempt >= s.attempts {
			return nil, fmt.Errorf("failed to listen on %s after %d attempts: %w", addr, attempt, err)
		}

		wait := b.Duration()
		s.log.WithError(err).Warnf("listen on %s failed, retrying in %s", addr, wait)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
}
