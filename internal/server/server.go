package server

import (
	"context"
	"net/http"
	"time"

	"daily-energy/pkg/logger"
)

type Server struct {
	server *http.Server
	logger *logger.Logger
}

// NewServer serves the health check and, when webhook is not nil, the Stripe
// webhook used for VIP upgrades.
func NewServer(port string, webhook http.HandlerFunc, logger *logger.Logger) *Server {
	mux := http.NewServeMux()

	if webhook != nil {
		mux.HandleFunc("/webhook/stripe", webhook)
	}

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		server: httpServer,
		logger: logger,
	}
}

func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start() error {
	s.logger.Infow("Starting HTTP server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Infow("Stopping HTTP server")
	return s.server.Shutdown(ctx)
}
